package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func newCompletionServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

func testConfig(baseURL string) Config {
	return Config{BaseURL: baseURL, APIKey: "test-key", Model: "test-model"}
}

func TestComplete_Success(t *testing.T) {
	srv := newCompletionServer(t, http.StatusOK,
		`{"choices":[{"message":{"content":"  a short summary  "}}]}`)
	defer srv.Close()

	client := NewGroqClient(testConfig(srv.URL))
	out, err := client.Complete(context.Background(), "summarize this")
	require.NoError(t, err)
	require.Equal(t, "a short summary", out)
}

func TestComplete_SendsSingleUserMessage(t *testing.T) {
	var captured struct {
		Model    string        `json:"model"`
		Messages []ChatMessage `json:"messages"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	}))
	defer srv.Close()

	client := NewGroqClient(testConfig(srv.URL))
	_, err := client.Complete(context.Background(), "hello")
	require.NoError(t, err)
	require.Equal(t, "test-model", captured.Model)
	require.Equal(t, []ChatMessage{{Role: "user", Content: "hello"}}, captured.Messages)
}

func TestComplete_NonSuccessStatus(t *testing.T) {
	srv := newCompletionServer(t, http.StatusBadGateway, `upstream broken`)
	defer srv.Close()

	client := NewGroqClient(testConfig(srv.URL))
	_, err := client.Complete(context.Background(), "p")
	require.Error(t, err)
}

func TestComplete_MalformedBody(t *testing.T) {
	srv := newCompletionServer(t, http.StatusOK, `{not json`)
	defer srv.Close()

	client := NewGroqClient(testConfig(srv.URL))
	_, err := client.Complete(context.Background(), "p")
	require.Error(t, err)
}

func TestComplete_EmptyChoices(t *testing.T) {
	srv := newCompletionServer(t, http.StatusOK, `{"choices":[]}`)
	defer srv.Close()

	client := NewGroqClient(testConfig(srv.URL))
	_, err := client.Complete(context.Background(), "p")
	require.Error(t, err)
}

func TestCompleteOrFallback_NetworkFailure(t *testing.T) {
	srv := newCompletionServer(t, http.StatusOK, `{}`)
	srv.Close() // force connection errors

	client := NewGroqClient(testConfig(srv.URL))
	out := client.CompleteOrFallback(context.Background(), "p", "the fallback")
	require.Equal(t, "the fallback", out)
}

func TestCompleteOrFallback_Success(t *testing.T) {
	srv := newCompletionServer(t, http.StatusOK,
		`{"choices":[{"message":{"content":"real output"}}]}`)
	defer srv.Close()

	client := NewGroqClient(testConfig(srv.URL))
	out := client.CompleteOrFallback(context.Background(), "p", "the fallback")
	require.Equal(t, "real output", out)
}
