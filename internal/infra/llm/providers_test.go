package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnthropic_Generate(t *testing.T) {
	var body map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/v1/messages"))
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &body)

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{
			"id": "msg_01",
			"type": "message",
			"role": "assistant",
			"model": "claude-test",
			"content": [{"type": "text", "text": "{\"summary\":\"ok\"}"}],
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 10, "output_tokens": 5}
		}`)
	}))
	t.Cleanup(srv.Close)

	gen := NewAnthropic("test-key", "claude-test", option.WithBaseURL(srv.URL), option.WithMaxRetries(0))

	out, err := gen.Generate(context.Background(), Request{System: "be brief", Prompt: "hello", MaxTokens: 256})

	require.NoError(t, err)
	assert.Equal(t, `{"summary":"ok"}`, out)
	assert.Equal(t, "claude-test", body["model"])
	assert.EqualValues(t, 256, body["max_tokens"])
}

func TestAnthropic_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"type":"error","error":{"type":"authentication_error","message":"invalid x-api-key"}}`)
	}))
	t.Cleanup(srv.Close)

	gen := NewAnthropic("bad-key", "claude-test", option.WithBaseURL(srv.URL), option.WithMaxRetries(0))

	_, err := gen.Generate(context.Background(), Request{Prompt: "hello"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "anthropic")
}

func TestGemini_Generate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "gemini-test:generateContent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{
			"candidates": [{
				"content": {"role": "model", "parts": [{"text": "{\"summary\":\"ok\"}"}]},
				"finishReason": "STOP"
			}]
		}`)
	}))
	t.Cleanup(srv.Close)

	gen, err := NewGemini(context.Background(), "test-key", "gemini-test", srv.URL)
	require.NoError(t, err)

	out, err := gen.Generate(context.Background(), Request{System: "be brief", Prompt: "hello", Schema: "{}"})

	require.NoError(t, err)
	assert.Equal(t, `{"summary":"ok"}`, out)
}
