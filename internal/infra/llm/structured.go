package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// Validatable is a structured answer that can check its own invariants
type Validatable interface {
	Validate() error
}

const jsonInstructions = "\n\nRespond with ONLY a JSON object matching this structure, no Markdown and no commentary:\n"

// GenerateJSON asks gen for a JSON answer shaped like req.Schema, decodes it into out and
// validates it. Unknown fields are rejected.
func GenerateJSON(ctx context.Context, gen Generator, req Request, out Validatable) error {
	if gen == nil {
		return ErrDisabled
	}
	timeout := req.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if req.Schema != "" {
		req.Prompt += jsonInstructions + req.Schema
	}

	raw, err := gen.Generate(ctx, req)
	if err != nil {
		return err
	}

	obj, err := ExtractJSON(raw)
	if err != nil {
		return err
	}

	dec := json.NewDecoder(strings.NewReader(obj))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("%w: %v (answer keys: %s)", ErrMalformedResponse, err, answerKeys(obj))
	}

	if err := out.Validate(); err != nil {
		return fmt.Errorf("%w: %v (answer keys: %s)", ErrMalformedResponse, err, answerKeys(obj))
	}
	return nil
}

// ExtractJSON returns the first complete JSON object in a model answer, tolerating code fences
// and prose around it. An object that starts earlier wins, so an answer's outer object is
// preferred over the objects nested in it. Each candidate is decoded at most once.
func ExtractJSON(raw string) (string, error) {
	s := stripFences(raw)

	for start := strings.IndexByte(s, '{'); start >= 0; {
		var obj json.RawMessage
		if err := json.NewDecoder(strings.NewReader(s[start:])).Decode(&obj); err == nil {
			return string(obj), nil
		}
		next := strings.IndexByte(s[start+1:], '{')
		if next < 0 {
			break
		}
		start += next + 1
	}

	return "", ErrMalformedResponse
}

// answerKeys lists obj's top-level keys in document order, so a decode failure shows which
// fields the model actually sent
func answerKeys(obj string) string {
	var keys []string
	gjson.Parse(obj).ForEach(func(key, _ gjson.Result) bool {
		keys = append(keys, key.String())
		return true
	})
	return strings.Join(keys, ", ")
}

func stripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[idx+1:]
	}
	if idx := strings.LastIndex(s, "```"); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
