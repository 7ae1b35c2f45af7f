package llm

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	reply string
	err   error
	last  Request
}

func (s *stubGenerator) Name() string { return "stub" }

func (s *stubGenerator) Generate(_ context.Context, req Request) (string, error) {
	s.last = req
	return s.reply, s.err
}

type blockingGenerator struct{}

func (blockingGenerator) Name() string { return "blocking" }

func (blockingGenerator) Generate(ctx context.Context, _ Request) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

type tipsAnswer struct {
	Summary string   `json:"summary"`
	Tips    []string `json:"tips"`
}

func (a *tipsAnswer) Validate() error {
	if a.Summary == "" {
		return errors.New("summary is required")
	}
	return nil
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "plain", raw: `{"a":1}`, want: `{"a":1}`},
		{name: "fenced", raw: "```json\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "prose around", raw: "Sure! Here it is: {\"a\":{\"b\":[1,2]}} Hope that helps.", want: `{"a":{"b":[1,2]}}`},
		{name: "brace in string", raw: `{"a":"}"} trailing }`, want: `{"a":"}"}`},
		{name: "bad first object", raw: `{oops} then {"ok":true}`, want: `{"ok":true}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSON(tt.raw)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, got)
		})
	}

	_, err := ExtractJSON("no json here")
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestExtractJSON_BraceHeavyReply(t *testing.T) {
	raw := strings.Repeat(`{"k":`, 2000) + `{"ok":true}`
	start := time.Now()

	got, err := ExtractJSON(raw)

	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, got)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestGenerateJSON_ErrorListsAnswerKeys(t *testing.T) {
	var out tipsAnswer
	gen := &stubGenerator{reply: `{"summary":"x","advice":["a"]}`}

	err := GenerateJSON(context.Background(), gen, Request{Prompt: "p"}, &out)

	assert.ErrorIs(t, err, ErrMalformedResponse)
	assert.ErrorContains(t, err, "answer keys: summary, advice")
}

func TestGenerateJSON(t *testing.T) {
	gen := &stubGenerator{reply: "```json\n{\"summary\":\"Spend less on dining\",\"tips\":[\"cook\"]}\n```"}
	var out tipsAnswer

	err := GenerateJSON(context.Background(), gen, Request{Prompt: "advise", Schema: `{"summary":"string","tips":["string"]}`}, &out)

	require.NoError(t, err)
	assert.Equal(t, "Spend less on dining", out.Summary)
	assert.Equal(t, []string{"cook"}, out.Tips)
	assert.Contains(t, gen.last.Prompt, `{"summary":"string","tips":["string"]}`)
}

func TestGenerateJSON_Failures(t *testing.T) {
	tests := []struct {
		name  string
		gen   Generator
		isErr error
	}{
		{name: "disabled", gen: Disabled{}, isErr: ErrDisabled},
		{name: "nil generator", gen: nil, isErr: ErrDisabled},
		{name: "garbage", gen: &stubGenerator{reply: "I cannot help with that"}, isErr: ErrMalformedResponse},
		{name: "unknown field", gen: &stubGenerator{reply: `{"summary":"x","extra":1}`}, isErr: ErrMalformedResponse},
		{name: "fails validation", gen: &stubGenerator{reply: `{"summary":""}`}, isErr: ErrMalformedResponse},
		{name: "provider error", gen: &stubGenerator{err: ErrEmptyResponse}, isErr: ErrEmptyResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out tipsAnswer
			err := GenerateJSON(context.Background(), tt.gen, Request{Prompt: "p"}, &out)
			assert.ErrorIs(t, err, tt.isErr)
		})
	}
}

func TestGenerateJSON_Timeout(t *testing.T) {
	var out tipsAnswer
	start := time.Now()

	err := GenerateJSON(context.Background(), blockingGenerator{}, Request{Prompt: "p", Timeout: 20 * time.Millisecond}, &out)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

func TestEnabled(t *testing.T) {
	assert.False(t, Enabled(nil))
	assert.False(t, Enabled(Disabled{}))
	assert.True(t, Enabled(&stubGenerator{}))
}
