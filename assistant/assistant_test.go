package assistant_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/royalkeys/royalkeys/assistant"
)

func candidateResponse(text string) map[string]any {
	return map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]any{{"text": text}}}},
		},
	}
}

func TestCompleteReturnsFirstCandidateText(t *testing.T) {
	var gotPath, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("X-Goog-Api-Key")

		var req map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Contains(t, req, "system_instruction")
		assert.Contains(t, req, "contents")

		json.NewEncoder(w).Encode(candidateResponse("Try Windows 11 Pro."))
	}))
	defer srv.Close()

	c := assistant.NewClient(assistant.Config{
		Endpoint: srv.URL,
		APIKey:   "test-key",
	})

	text, err := c.Complete(context.Background(), "what windows key should I buy?")
	require.NoError(t, err)
	assert.Equal(t, "Try Windows 11 Pro.", text)
	assert.Equal(t, "/v1beta/models/"+assistant.DefaultModel+":generateContent", gotPath)
	assert.Equal(t, "test-key", gotKey)
}

func TestCompleteSurfacesUpstreamErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := assistant.NewClient(assistant.Config{Endpoint: srv.URL})
	_, err := c.Complete(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestCompleteEmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"candidates": []any{}})
	}))
	defer srv.Close()

	c := assistant.NewClient(assistant.Config{Endpoint: srv.URL})
	text, err := c.Complete(context.Background(), "hello")
	require.NoError(t, err)
	assert.Empty(t, text)
}

type stubCompleter struct {
	text string
	err  error
}

func (s *stubCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	return s.text, s.err
}

func TestRespondPassesThroughText(t *testing.T) {
	got := assistant.Respond(context.Background(), &stubCompleter{text: "answer"}, "q")
	assert.Equal(t, "answer", got)
}

func TestRespondFallsBackOnError(t *testing.T) {
	got := assistant.Respond(context.Background(), &stubCompleter{err: errors.New("connection refused")}, "q")
	assert.Equal(t, "I am currently performing maintenance on my royal scrolls. How else can I assist you with our products?", got)
}

func TestRespondMissingEntityFallback(t *testing.T) {
	got := assistant.Respond(context.Background(), &stubCompleter{err: errors.New("requested entity was not found")}, "q")
	assert.Equal(t, "The connection to the AI brain is being reset. Please try again in a moment.", got)
}

func TestRespondEmptyCompletionFallback(t *testing.T) {
	got := assistant.Respond(context.Background(), &stubCompleter{}, "q")
	assert.Equal(t, "I'm here to help you find the perfect digital key!", got)
}
