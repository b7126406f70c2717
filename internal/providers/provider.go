// Package providers holds the external service adapters: the hosted document
// parser used for PDF/DOCX extraction and the LLM client used for document
// cleanup and response drafting. Both are consumed as black boxes; every
// failure has a local fallback upstream.
package providers

import (
	"context"
	"encoding/json"
	"time"
)

// LLMClient is the chat-completion interface used by the cleanup and
// drafting call sites.
type LLMClient interface {
	// Chat sends a chat completion request.
	Chat(ctx context.Context, req *ChatRequest) (*ChatResult, error)

	// Name returns the client identifier (e.g. "openai").
	Name() string
}

// DocumentParser extracts text from an uploaded binary via a hosted parsing
// service. A non-success response or missing file handle is a hard failure
// for the adapter; it is never retried here.
type DocumentParser interface {
	// Parse uploads the document and retrieves its extracted text.
	Parse(ctx context.Context, doc *Document) (*ParseResult, error)

	// Name returns the provider identifier (e.g. "reducto").
	Name() string
}

// Document is an uploaded binary with its declared identity. It lives only
// for the duration of one request.
type Document struct {
	FileName  string
	MediaType string
	Data      []byte
}

// ParseResult is the outcome of a remote parse.
type ParseResult struct {
	Success bool   `json:"success"`
	Text    string `json:"text"`

	// FileID is the upload handle returned by the service.
	FileID string `json:"file_id,omitempty"`

	ExecutionTime time.Duration `json:"execution_time"`
	ErrorMessage  string        `json:"error_message,omitempty"`
}

// ChatRequest is a request to an LLM.
type ChatRequest struct {
	System string `json:"system"`
	User   string `json:"user"`

	// Model selection (uses client default if empty)
	Model string `json:"model,omitempty"`

	Temperature float64 `json:"temperature,omitempty"`
	MaxTokens   int     `json:"max_tokens,omitempty"`

	// JSONMode requests a strict-JSON response from the model.
	JSONMode bool `json:"json_mode,omitempty"`

	// Request tracking
	RequestID string `json:"-"`
}

// ChatResult is the complete response from an LLM call.
type ChatResult struct {
	Content    string          `json:"content"`
	ParsedJSON json.RawMessage `json:"parsed_json,omitempty"` // Parsed if JSONMode was set

	// Token counts
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`

	// Timing
	ExecutionTime time.Duration `json:"execution_time"`

	// Provider info
	Provider  string `json:"provider"`
	ModelUsed string `json:"model_used"`

	// Request tracking
	RequestID string `json:"request_id"`

	// Success/error
	Success      bool   `json:"success"`
	ErrorType    string `json:"error_type,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
}
