package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestClient_Get(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/health" {
			t.Errorf("path = %q, want /api/health", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	var resp struct {
		Status string `json:"status"`
	}
	if err := client.Get(context.Background(), "/api/health", &resp); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("Status = %q, want %q", resp.Status, "ok")
	}
}

func TestClient_ErrorResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"no file uploaded"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	err := client.Post(context.Background(), "/api/documents/process", nil, nil)
	if err == nil {
		t.Fatal("Post() error = nil, want error")
	}
	want := "server error (400): no file uploaded"
	if err.Error() != want {
		t.Errorf("error = %q, want %q", err.Error(), want)
	}
}

func TestClient_WaitForReady(t *testing.T) {
	var calls int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt64(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	if err := client.WaitForReady(context.Background(), 5, 10*time.Millisecond); err != nil {
		t.Fatalf("WaitForReady() error = %v", err)
	}
	if got := atomic.LoadInt64(&calls); got != 3 {
		t.Errorf("health calls = %d, want 3", got)
	}
}

func TestClient_WaitForReady_Exhausted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	err := client.WaitForReady(context.Background(), 2, time.Millisecond)
	if err == nil {
		t.Fatal("WaitForReady() error = nil, want error after exhausted attempts")
	}
}

func TestClient_Download(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="rfp_responses.txt"`)
		w.Write([]byte("RESPONSES TO REQUEST FOR PRODUCTION"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	data, fileName, err := client.Download(context.Background(), "/api/workspaces/x/export", map[string]string{"format": "text"})
	if err != nil {
		t.Fatalf("Download() error = %v", err)
	}
	if fileName != "rfp_responses.txt" {
		t.Errorf("fileName = %q, want %q", fileName, "rfp_responses.txt")
	}
	if !strings.HasPrefix(string(data), "RESPONSES") {
		t.Errorf("data = %q", data)
	}
}

func TestClient_Download_Error(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"workspace not found"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, _, err := client.Download(context.Background(), "/api/workspaces/x/export", nil)
	if err == nil {
		t.Fatal("Download() error = nil, want error")
	}
	if !strings.Contains(err.Error(), "workspace not found") {
		t.Errorf("error = %q, want it to contain the server message", err.Error())
	}
}
