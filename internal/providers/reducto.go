package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

const (
	ReductoName    = "reducto"
	ReductoBaseURL = "https://platform.reducto.ai"

	// ReductoChunkMode requests section chunking for better structure.
	// "disabled" would return the full text as one block.
	ReductoChunkMode = "section"
)

// ReductoConfig holds configuration for the Reducto parsing client.
type ReductoConfig struct {
	APIKey     string
	BaseURL    string
	ChunkMode  string
	Timeout    time.Duration
	HTTPClient *http.Client // Optional (tests)
}

// ReductoClient implements DocumentParser using the hosted Reducto API.
// Parsing is a two-step contract: upload the binary for a file handle, then
// parse the handle into text.
type ReductoClient struct {
	apiKey    string
	baseURL   string
	chunkMode string
	client    *http.Client
}

// NewReductoClient creates a new Reducto client.
func NewReductoClient(cfg ReductoConfig) *ReductoClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = ReductoBaseURL
	}
	if cfg.ChunkMode == "" {
		cfg.ChunkMode = ReductoChunkMode
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 120 * time.Second
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}

	return &ReductoClient{
		apiKey:    cfg.APIKey,
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		chunkMode: cfg.ChunkMode,
		client:    client,
	}
}

// Name returns the provider identifier.
func (c *ReductoClient) Name() string {
	return ReductoName
}

// Parse uploads the document and retrieves its extracted text.
func (c *ReductoClient) Parse(ctx context.Context, doc *Document) (*ParseResult, error) {
	start := time.Now()

	fileID, err := c.upload(ctx, doc)
	if err != nil {
		return &ParseResult{
			Success:       false,
			ErrorMessage:  err.Error(),
			ExecutionTime: time.Since(start),
		}, err
	}

	text, err := c.parse(ctx, fileID)
	if err != nil {
		return &ParseResult{
			Success:       false,
			FileID:        fileID,
			ErrorMessage:  err.Error(),
			ExecutionTime: time.Since(start),
		}, err
	}

	return &ParseResult{
		Success:       true,
		Text:          text,
		FileID:        fileID,
		ExecutionTime: time.Since(start),
	}, nil
}

// upload sends the binary as multipart form data and returns the file handle.
func (c *ReductoClient) upload(ctx context.Context, doc *Document) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	part, err := mw.CreateFormFile("file", doc.FileName)
	if err != nil {
		return "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(doc.Data); err != nil {
		return "", fmt.Errorf("failed to write form file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", &body)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read upload response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("Reducto upload failed (status %d): %s", resp.StatusCode, string(respBody))
	}

	var uploadResp reductoUploadResponse
	if err := json.Unmarshal(respBody, &uploadResp); err != nil {
		return "", fmt.Errorf("failed to unmarshal upload response: %w", err)
	}
	if uploadResp.FileID == "" {
		return "", fmt.Errorf("Reducto upload did not return a file_id")
	}

	return uploadResp.FileID, nil
}

// parse converts an uploaded file handle into extracted text. Chunked
// results are joined with blank lines.
func (c *ReductoClient) parse(ctx context.Context, fileID string) (string, error) {
	reqBody := reductoParseRequest{
		Input: fileID,
	}
	reqBody.Retrieval.Chunking.ChunkMode = c.chunkMode

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal parse request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/parse", bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("parse request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read parse response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("Reducto parse failed (status %d): %s", resp.StatusCode, string(respBody))
	}

	var parseResp reductoParseResponse
	if err := json.Unmarshal(respBody, &parseResp); err != nil {
		return "", fmt.Errorf("failed to unmarshal parse response: %w", err)
	}

	return flattenReductoResult(parseResp, respBody), nil
}

// flattenReductoResult extracts text from the parse response. The result is
// either a flat string, a chunk list joined with double newlines, or (for
// unrecognized shapes) the raw JSON so the caller still gets something to
// segment.
func flattenReductoResult(resp reductoParseResponse, raw []byte) string {
	if len(resp.Result) == 0 {
		return string(raw)
	}

	var flat string
	if err := json.Unmarshal(resp.Result, &flat); err == nil {
		return flat
	}

	var structured reductoStructuredResult
	if err := json.Unmarshal(resp.Result, &structured); err == nil && structured.Type == "full" && len(structured.Chunks) > 0 {
		parts := make([]string, 0, len(structured.Chunks))
		for _, chunk := range structured.Chunks {
			parts = append(parts, chunk.Content)
		}
		return strings.Join(parts, "\n\n")
	}

	return string(resp.Result)
}

// Reducto API types

type reductoUploadResponse struct {
	FileID string `json:"file_id"`
}

type reductoParseRequest struct {
	Input     string `json:"input"`
	Retrieval struct {
		Chunking struct {
			ChunkMode string `json:"chunk_mode"`
		} `json:"chunking"`
	} `json:"retrieval"`
}

type reductoParseResponse struct {
	Result json.RawMessage `json:"result"`
}

type reductoStructuredResult struct {
	Type   string `json:"type"`
	Chunks []struct {
		Content string `json:"content"`
	} `json:"chunks"`
}

// Verify interface
var _ DocumentParser = (*ReductoClient)(nil)
