package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newChatServer(t *testing.T, content string, capture *map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if capture != nil {
			if err := json.NewDecoder(r.Body).Decode(capture); err != nil {
				t.Fatalf("bad request body: %v", err)
			}
		}
		resp := map[string]any{
			"id":    "chatcmpl-1",
			"model": "gpt-4o-2024-08-06",
			"choices": []map[string]any{
				{"index": 0, "message": map[string]any{"role": "assistant", "content": content}, "finish_reason": "stop"},
			},
			"usage": map[string]any{"prompt_tokens": 12, "completion_tokens": 5, "total_tokens": 17},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
}

func TestOpenAIClient_Chat(t *testing.T) {
	var captured map[string]any
	server := newChatServer(t, "drafted response", &captured)
	defer server.Close()

	client := NewOpenAIClient(OpenAIConfig{APIKey: "test-key", BaseURL: server.URL})

	result, err := client.Chat(context.Background(), &ChatRequest{
		System:      "You are a paralegal.",
		User:        "Draft a response.",
		Temperature: 0.2,
	})
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if !result.Success {
		t.Fatal("Chat() result not successful")
	}
	if result.Content != "drafted response" {
		t.Errorf("Content = %q, want drafted response", result.Content)
	}
	if result.PromptTokens != 12 || result.TotalTokens != 17 {
		t.Errorf("token counts = %d/%d, want 12/17", result.PromptTokens, result.TotalTokens)
	}
	if result.Provider != OpenAIName {
		t.Errorf("Provider = %q, want %q", result.Provider, OpenAIName)
	}

	if got := captured["model"]; got != openAIDefaultModel {
		t.Errorf("model = %v, want %v", got, openAIDefaultModel)
	}
	if got := captured["temperature"]; got != 0.2 {
		t.Errorf("temperature = %v, want 0.2", got)
	}
	msgs, ok := captured["messages"].([]any)
	if !ok || len(msgs) != 2 {
		t.Fatalf("messages = %v, want system + user", captured["messages"])
	}
}

func TestOpenAIClient_Chat_JSONMode(t *testing.T) {
	var captured map[string]any
	server := newChatServer(t, `{"requests":[{"id":1,"text":"All documents."}]}`, &captured)
	defer server.Close()

	client := NewOpenAIClient(OpenAIConfig{APIKey: "test-key", BaseURL: server.URL})

	result, err := client.Chat(context.Background(), &ChatRequest{
		System:   "sys",
		User:     "user",
		JSONMode: true,
	})
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if !result.Success {
		t.Fatalf("Chat() not successful: %s", result.ErrorMessage)
	}
	if result.ParsedJSON == nil {
		t.Fatal("ParsedJSON should be set in JSON mode")
	}

	rf, ok := captured["response_format"].(map[string]any)
	if !ok || rf["type"] != "json_object" {
		t.Errorf("response_format = %v, want json_object", captured["response_format"])
	}
}

func TestOpenAIClient_Chat_MalformedJSON(t *testing.T) {
	server := newChatServer(t, "not json at all", nil)
	defer server.Close()

	client := NewOpenAIClient(OpenAIConfig{APIKey: "test-key", BaseURL: server.URL})

	result, err := client.Chat(context.Background(), &ChatRequest{System: "s", User: "u", JSONMode: true})
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if result.Success {
		t.Error("malformed JSON content should mark result unsuccessful")
	}
	if result.ErrorType != "json_parse" {
		t.Errorf("ErrorType = %q, want json_parse", result.ErrorType)
	}
}

func TestOpenAIClient_Chat_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"overloaded"}}`, http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewOpenAIClient(OpenAIConfig{APIKey: "test-key", BaseURL: server.URL})

	result, err := client.Chat(context.Background(), &ChatRequest{System: "s", User: "u"})
	if err == nil {
		t.Fatal("Chat() expected error for 500")
	}
	if result.Success {
		t.Error("result should not be successful")
	}
	if result.ErrorType != "http_error" {
		t.Errorf("ErrorType = %q, want http_error", result.ErrorType)
	}
}
