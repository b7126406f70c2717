package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestReductoClient_Parse(t *testing.T) {
	var parseReq reductoParseRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q, want bearer test-key", got)
		}
		switch r.URL.Path {
		case "/upload":
			if err := r.ParseMultipartForm(1 << 20); err != nil {
				t.Fatalf("expected multipart upload: %v", err)
			}
			file, header, err := r.FormFile("file")
			if err != nil {
				t.Fatalf("missing file part: %v", err)
			}
			defer file.Close()
			if header.Filename != "rfp.pdf" {
				t.Errorf("filename = %q, want rfp.pdf", header.Filename)
			}
			json.NewEncoder(w).Encode(map[string]string{"file_id": "file-123"})
		case "/parse":
			if err := json.NewDecoder(r.Body).Decode(&parseReq); err != nil {
				t.Fatalf("bad parse request: %v", err)
			}
			w.Write([]byte(`{"result":{"type":"full","chunks":[{"content":"REQUEST NO. 1"},{"content":"All documents."}]}}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := NewReductoClient(ReductoConfig{
		APIKey:  "test-key",
		BaseURL: server.URL,
	})

	result, err := client.Parse(context.Background(), &Document{
		FileName:  "rfp.pdf",
		MediaType: "application/pdf",
		Data:      []byte("%PDF-1.4 fake"),
	})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !result.Success {
		t.Fatal("Parse() result not successful")
	}
	if result.FileID != "file-123" {
		t.Errorf("FileID = %q, want file-123", result.FileID)
	}
	if want := "REQUEST NO. 1\n\nAll documents."; result.Text != want {
		t.Errorf("Text = %q, want %q", result.Text, want)
	}
	if parseReq.Input != "file-123" {
		t.Errorf("parse request input = %q, want file-123", parseReq.Input)
	}
	if got := parseReq.Retrieval.Chunking.ChunkMode; got != ReductoChunkMode {
		t.Errorf("chunk_mode = %q, want %q", got, ReductoChunkMode)
	}
}

func TestReductoClient_Parse_FlatStringResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/upload":
			json.NewEncoder(w).Encode(map[string]string{"file_id": "file-1"})
		case "/parse":
			w.Write([]byte(`{"result":"plain extracted text"}`))
		}
	}))
	defer server.Close()

	client := NewReductoClient(ReductoConfig{APIKey: "k", BaseURL: server.URL})
	result, err := client.Parse(context.Background(), &Document{FileName: "a.pdf", Data: []byte("x")})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if result.Text != "plain extracted text" {
		t.Errorf("Text = %q, want plain extracted text", result.Text)
	}
}

func TestReductoClient_Parse_UploadMissingFileID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewReductoClient(ReductoConfig{APIKey: "k", BaseURL: server.URL})
	result, err := client.Parse(context.Background(), &Document{FileName: "a.pdf", Data: []byte("x")})
	if err == nil {
		t.Fatal("Parse() expected error for missing file_id")
	}
	if result.Success {
		t.Error("result should not be successful")
	}
	if !strings.Contains(err.Error(), "file_id") {
		t.Errorf("error = %v, want mention of file_id", err)
	}
}

func TestReductoClient_Parse_UploadServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewReductoClient(ReductoConfig{APIKey: "k", BaseURL: server.URL})
	_, err := client.Parse(context.Background(), &Document{FileName: "a.pdf", Data: []byte("x")})
	if err == nil {
		t.Fatal("Parse() expected error for 502")
	}
	if !strings.Contains(err.Error(), "status 502") {
		t.Errorf("error = %v, want status 502", err)
	}
}

func TestFlattenReductoResult_UnknownShape(t *testing.T) {
	raw := []byte(`{"result":{"unexpected":true}}`)
	var resp reductoParseResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		t.Fatal(err)
	}
	got := flattenReductoResult(resp, raw)
	if got != `{"unexpected":true}` {
		t.Errorf("flattenReductoResult = %q", got)
	}
}
