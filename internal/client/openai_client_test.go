package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/reelsmith/api/internal/config"
)

func newTestClient(baseURL string) *OpenAIClient {
	return NewOpenAIClient(&config.OpenAIConfig{
		APIKey:  "test-key",
		BaseURL: baseURL,
		Timeout: 5,
	})
}

func completionBody(content string) string {
	quoted, _ := json.Marshal(content)
	return `{"choices":[{"index":0,"message":{"role":"assistant","content":` + string(quoted) + `},"finish_reason":"stop"}]}`
}

func TestChatCompletion(t *testing.T) {
	var gotReq ChatCompletionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("unexpected auth header: %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(completionBody("generated text")))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	got, err := c.ChatCompletion(context.Background(), "write a hook", ChatOptions{
		Model:       "gpt-4o",
		Temperature: 0.9,
		MaxTokens:   500,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "generated text" {
		t.Errorf("got %q", got)
	}

	if gotReq.Model != "gpt-4o" {
		t.Errorf("model: got %q", gotReq.Model)
	}
	if len(gotReq.Messages) != 1 || gotReq.Messages[0].Role != "user" || gotReq.Messages[0].Content != "write a hook" {
		t.Errorf("messages: got %+v", gotReq.Messages)
	}
	if gotReq.Temperature != 0.9 || gotReq.MaxTokens != 500 {
		t.Errorf("options: got temp=%g max=%d", gotReq.Temperature, gotReq.MaxTokens)
	}
	if gotReq.ResponseFormat != nil {
		t.Error("plain completion must not set response_format")
	}
}

func TestStructuredCompletion(t *testing.T) {
	var gotReq ChatCompletionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(completionBody(`{"hook":"h","caption":"c","cta":"x"}`)))
	}))
	defer srv.Close()

	schema := json.RawMessage(`{"type":"object"}`)
	c := newTestClient(srv.URL)
	raw, err := c.StructuredCompletion(context.Background(), "prompt", "reel_caption", schema, ChatOptions{Model: "gpt-4o-mini"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var parsed map[string]string
	if err := json.Unmarshal(raw, &parsed); err != nil {
		t.Fatalf("content is not valid JSON: %v", err)
	}
	if parsed["hook"] != "h" {
		t.Errorf("parsed: %v", parsed)
	}

	if gotReq.ResponseFormat == nil {
		t.Fatal("expected response_format to be set")
	}
	if gotReq.ResponseFormat.Type != "json_schema" {
		t.Errorf("type: got %q", gotReq.ResponseFormat.Type)
	}
	if js := gotReq.ResponseFormat.JSONSchema; js == nil || js.Name != "reel_caption" || !js.Strict {
		t.Errorf("json_schema: got %+v", gotReq.ResponseFormat.JSONSchema)
	}
}

func TestChatCompletionAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"rate limited"}}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.ChatCompletion(context.Background(), "p", ChatOptions{Model: "gpt-4o"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "status 429") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestChatCompletionNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.ChatCompletion(context.Background(), "p", ChatOptions{Model: "gpt-4o"})
	if err == nil || !strings.Contains(err.Error(), "no choices") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestIsConfigured(t *testing.T) {
	if NewOpenAIClient(&config.OpenAIConfig{Timeout: 5}).IsConfigured() {
		t.Error("client without key reports configured")
	}
	if !newTestClient("http://example.com").IsConfigured() {
		t.Error("client with key reports unconfigured")
	}
}
