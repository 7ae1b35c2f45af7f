// Package llm wraps the language-model providers behind one Generator interface and turns
// their free-text answers into validated JSON structures.
package llm

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrDisabled is returned by the Disabled generator
	ErrDisabled = errors.New("llm provider is not configured")
	// ErrEmptyResponse means the provider answered without text
	ErrEmptyResponse = errors.New("llm returned an empty response")
	// ErrMalformedResponse means no valid JSON object could be extracted
	ErrMalformedResponse = errors.New("llm response is not valid JSON")
)

const (
	DefaultMaxTokens = 2048
	DefaultTimeout   = 30 * time.Second
)

// Request is one single-turn completion
type Request struct {
	System      string
	Prompt      string
	Schema      string // JSON shape the answer must follow; used by GenerateJSON
	MaxTokens   int64
	Temperature float64
	Timeout     time.Duration
}

// Generator produces a completion for a prompt
type Generator interface {
	Name() string
	Generate(ctx context.Context, req Request) (string, error)
}

// Disabled is the generator used when no provider is configured
type Disabled struct{}

func (Disabled) Name() string { return "none" }

func (Disabled) Generate(context.Context, Request) (string, error) {
	return "", ErrDisabled
}

// Enabled reports whether gen can produce completions
func Enabled(gen Generator) bool {
	if gen == nil {
		return false
	}
	_, disabled := gen.(Disabled)
	return !disabled
}

func (r Request) maxTokens() int64 {
	if r.MaxTokens > 0 {
		return r.MaxTokens
	}
	return DefaultMaxTokens
}
