package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/johnquangdev/minutesgen/pkg/config"
)

func TestComplete_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST got %s", r.Method)
		}
		if !strings.HasSuffix(r.URL.Path, "/v1/chat/completions") {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Fatalf("unexpected auth header %q", got)
		}
		var payload ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("invalid payload: %v", err)
		}
		if payload.Model != "gpt-4" {
			t.Fatalf("unexpected model %s", payload.Model)
		}
		if len(payload.Messages) != 2 {
			t.Fatalf("expected 2 messages got %d", len(payload.Messages))
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": "hello"}},
			},
		})
	}))
	defer ts.Close()

	client := NewClient(&config.LLMConfig{APIKey: "test-key", BaseURL: ts.URL})

	got, err := client.Complete(context.Background(), ChatRequest{
		Model: "gpt-4",
		Messages: []ChatMessage{
			{Role: "system", Content: "sys"},
			{Role: "user", Content: "hi"},
		},
		Temperature: 0.3,
		MaxTokens:   2000,
	})
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if got != "hello" {
		t.Fatalf("unexpected content %q", got)
	}
}

func TestComplete_ErrorStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	client := NewClient(&config.LLMConfig{APIKey: "test-key", BaseURL: ts.URL})
	if _, err := client.Complete(context.Background(), ChatRequest{Model: "gpt-4"}); err == nil {
		t.Fatal("expected error on 429 response")
	}
}

func TestComplete_EmptyChoices(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer ts.Close()

	client := NewClient(&config.LLMConfig{APIKey: "test-key", BaseURL: ts.URL})
	if _, err := client.Complete(context.Background(), ChatRequest{Model: "gpt-4"}); err == nil {
		t.Fatal("expected error on empty choices")
	}
}
