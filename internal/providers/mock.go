package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"
)

// MockLLM is a mock LLM client for testing.
type MockLLM struct {
	// ResponseText is returned as the completion content.
	ResponseText string

	// ResponseJSON, if set, overrides ResponseText for JSONMode requests.
	ResponseJSON string

	// ShouldFail makes all requests fail.
	ShouldFail bool

	// FailAfter makes requests fail after N successful calls (0 = never).
	FailAfter int

	// Latency simulates processing time.
	Latency time.Duration

	// requestCount tracks calls (atomic).
	requestCount int64
}

// NewMockLLM creates a mock LLM with a canned response.
func NewMockLLM(response string) *MockLLM {
	return &MockLLM{ResponseText: response}
}

// Name returns the client identifier.
func (m *MockLLM) Name() string {
	return "mock-llm"
}

// RequestCount returns the number of Chat calls made.
func (m *MockLLM) RequestCount() int64 {
	return atomic.LoadInt64(&m.requestCount)
}

// Chat returns the canned response, honoring failure settings.
func (m *MockLLM) Chat(ctx context.Context, req *ChatRequest) (*ChatResult, error) {
	count := atomic.AddInt64(&m.requestCount, 1)
	start := time.Now()

	if m.Latency > 0 {
		select {
		case <-time.After(m.Latency):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if m.ShouldFail || (m.FailAfter > 0 && count > int64(m.FailAfter)) {
		return &ChatResult{
			RequestID:     req.RequestID,
			Provider:      m.Name(),
			Success:       false,
			ErrorType:     "mock_failure",
			ErrorMessage:  "mock failure",
			ExecutionTime: time.Since(start),
		}, fmt.Errorf("mock failure")
	}

	content := m.ResponseText
	if req.JSONMode && m.ResponseJSON != "" {
		content = m.ResponseJSON
	}

	result := &ChatResult{
		RequestID:        req.RequestID,
		Provider:         m.Name(),
		ModelUsed:        "mock-model",
		Content:          content,
		PromptTokens:     10,
		CompletionTokens: 20,
		TotalTokens:      30,
		Success:          true,
		ExecutionTime:    time.Since(start),
	}

	if req.JSONMode {
		var parsed json.RawMessage
		if err := json.Unmarshal([]byte(content), &parsed); err == nil {
			result.ParsedJSON = parsed
		} else {
			result.Success = false
			result.ErrorType = "json_parse"
			result.ErrorMessage = err.Error()
		}
	}

	return result, nil
}

// MockParser is a mock document parser for testing.
type MockParser struct {
	// ResponseText is returned as the extracted text.
	ResponseText string

	// ShouldFail makes all requests fail.
	ShouldFail bool

	// Latency simulates processing time.
	Latency time.Duration

	requestCount int64
}

// NewMockParser creates a mock parser with canned extracted text.
func NewMockParser(text string) *MockParser {
	return &MockParser{ResponseText: text}
}

// Name returns the provider identifier.
func (m *MockParser) Name() string {
	return "mock-parser"
}

// RequestCount returns the number of Parse calls made.
func (m *MockParser) RequestCount() int64 {
	return atomic.LoadInt64(&m.requestCount)
}

// Parse returns the canned text, honoring failure settings.
func (m *MockParser) Parse(ctx context.Context, doc *Document) (*ParseResult, error) {
	atomic.AddInt64(&m.requestCount, 1)
	start := time.Now()

	if m.Latency > 0 {
		select {
		case <-time.After(m.Latency):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if m.ShouldFail {
		return &ParseResult{
			Success:       false,
			ErrorMessage:  "mock failure",
			ExecutionTime: time.Since(start),
		}, fmt.Errorf("mock failure")
	}

	return &ParseResult{
		Success:       true,
		Text:          m.ResponseText,
		FileID:        "mock-file-id",
		ExecutionTime: time.Since(start),
	}, nil
}

// Verify interfaces
var (
	_ LLMClient      = (*MockLLM)(nil)
	_ DocumentParser = (*MockParser)(nil)
)
