package openrouter_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/edugenie/edugenie/internal/llm"
	"github.com/edugenie/edugenie/internal/llm/openrouter"
)

const testAPIKey = "sk-or-test-secret"

// completionRequest mirrors the wire shape of a chat-completion request.
type completionRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

// newFakeEndpoint starts an HTTP server that records the last request it
// received and answers with the given status and body.
func newFakeEndpoint(t *testing.T, status int, body string) (*httptest.Server, *completionRequest) {
	t.Helper()
	last := &completionRequest{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			t.Errorf("request path = %q, want .../chat/completions", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer "+testAPIKey {
			t.Errorf("Authorization = %q, want bearer credential", got)
		}
		if err := json.NewDecoder(r.Body).Decode(last); err != nil {
			t.Errorf("decoding request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)
	return ts, last
}

// ---------------------------------------------------------------------------
// Success
// ---------------------------------------------------------------------------

func TestComplete_Success(t *testing.T) {
	ts, _ := newFakeEndpoint(t, http.StatusOK,
		`{"choices":[{"message":{"role":"assistant","content":"Hi there"}}]}`)

	client := openrouter.New(testAPIKey, "openrouter/free", ts.URL)
	got, err := client.Complete(context.Background(), []llm.Message{
		{Role: llm.RoleUser, Content: "Hello"},
	})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got != "Hi there" {
		t.Errorf("Complete = %q, want %q", got, "Hi there")
	}
}

func TestComplete_PreservesTranscriptOrder(t *testing.T) {
	ts, last := newFakeEndpoint(t, http.StatusOK,
		`{"choices":[{"message":{"role":"assistant","content":"ok"}}]}`)

	transcript := []llm.Message{
		{Role: llm.RoleSystem, Content: "be helpful"},
		{Role: llm.RoleUser, Content: "first"},
		{Role: llm.RoleAssistant, Content: "reply"},
		{Role: llm.RoleUser, Content: "second"},
	}
	// Keep a copy to prove the client never mutates its input.
	original := append([]llm.Message(nil), transcript...)

	client := openrouter.New(testAPIKey, "test-model", ts.URL)
	if _, err := client.Complete(context.Background(), transcript); err != nil {
		t.Fatalf("Complete: %v", err)
	}

	if last.Model != "test-model" {
		t.Errorf("request model = %q, want %q", last.Model, "test-model")
	}
	if len(last.Messages) != len(transcript) {
		t.Fatalf("request carried %d messages, want %d", len(last.Messages), len(transcript))
	}
	for i, m := range last.Messages {
		if m.Role != string(transcript[i].Role) || m.Content != transcript[i].Content {
			t.Errorf("messages[%d] = {%s %q}, want {%s %q}",
				i, m.Role, m.Content, transcript[i].Role, transcript[i].Content)
		}
	}
	for i := range transcript {
		if transcript[i] != original[i] {
			t.Errorf("transcript[%d] was mutated: %+v", i, transcript[i])
		}
	}
}

// ---------------------------------------------------------------------------
// Failures
// ---------------------------------------------------------------------------

func TestComplete_ServerError(t *testing.T) {
	ts, _ := newFakeEndpoint(t, http.StatusInternalServerError,
		`{"error":{"message":"upstream exploded"}}`)

	client := openrouter.New(testAPIKey, "", ts.URL)
	_, err := client.Complete(context.Background(), []llm.Message{
		{Role: llm.RoleUser, Content: "Hello"},
	})
	if err == nil {
		t.Fatal("expected error for HTTP 500, got nil")
	}

	var cerr *llm.CompletionError
	if !errors.As(err, &cerr) {
		t.Fatalf("error = %T, want *llm.CompletionError", err)
	}
	if cerr.Kind != llm.KindStatus {
		t.Errorf("Kind = %q, want %q", cerr.Kind, llm.KindStatus)
	}
	if cerr.Message == "" {
		t.Error("failure message is empty")
	}
	if strings.Contains(cerr.Message, testAPIKey) {
		t.Errorf("failure message leaks the API key: %q", cerr.Message)
	}
}

func TestComplete_RateLimited(t *testing.T) {
	ts, _ := newFakeEndpoint(t, http.StatusTooManyRequests,
		`{"error":{"message":"rate limited"}}`)

	client := openrouter.New(testAPIKey, "", ts.URL)
	_, err := client.Complete(context.Background(), []llm.Message{
		{Role: llm.RoleUser, Content: "Hello"},
	})

	var cerr *llm.CompletionError
	if !errors.As(err, &cerr) {
		t.Fatalf("error = %v, want *llm.CompletionError", err)
	}
	if !strings.Contains(cerr.Message, "quota or rate limit") {
		t.Errorf("rate-limit message = %q, want quota wording", cerr.Message)
	}
}

func TestComplete_NoChoices(t *testing.T) {
	ts, _ := newFakeEndpoint(t, http.StatusOK, `{"choices":[]}`)

	client := openrouter.New(testAPIKey, "", ts.URL)
	_, err := client.Complete(context.Background(), []llm.Message{
		{Role: llm.RoleUser, Content: "Hello"},
	})

	var cerr *llm.CompletionError
	if !errors.As(err, &cerr) {
		t.Fatalf("error = %v, want *llm.CompletionError", err)
	}
	if cerr.Kind != llm.KindMalformed {
		t.Errorf("Kind = %q, want %q", cerr.Kind, llm.KindMalformed)
	}
}

func TestComplete_TransportError(t *testing.T) {
	// Point the client at a closed server.
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := ts.URL
	ts.Close()

	client := openrouter.New(testAPIKey, "", url)
	_, err := client.Complete(context.Background(), []llm.Message{
		{Role: llm.RoleUser, Content: "Hello"},
	})

	var cerr *llm.CompletionError
	if !errors.As(err, &cerr) {
		t.Fatalf("error = %v, want *llm.CompletionError", err)
	}
	if cerr.Kind != llm.KindTransport {
		t.Errorf("Kind = %q, want %q", cerr.Kind, llm.KindTransport)
	}
	if strings.Contains(cerr.Message, testAPIKey) {
		t.Errorf("failure message leaks the API key: %q", cerr.Message)
	}
}
