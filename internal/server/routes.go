package server

import (
	"encoding/json"
	"net/http"
)

// registerRoutes sets up the bare liveness routes. The full API lives under
// /api via the endpoint registry.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /ready", s.handleReady)
	mux.HandleFunc("GET /status", s.handleStatus)
}

// HealthResponse is the response for health check endpoints.
type HealthResponse struct {
	Status    string `json:"status"`
	Providers string `json:"providers,omitempty"`
}

// handleHealth returns basic server health.
// This returns OK if the HTTP server is responding.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "ok"}
	writeJSON(w, http.StatusOK, resp)
}

// handleReady returns readiness status including provider availability.
// The server is ready without providers; uploads then fall back to local
// segmentation, so the response notes "none" rather than failing.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "ok", Providers: "ok"}
	if len(s.registry.ListParsers()) == 0 && len(s.registry.ListLLMs()) == 0 {
		resp.Providers = "none"
	}
	writeJSON(w, http.StatusOK, resp)
}

// StatusResponse reports the server and its configured providers.
type StatusResponse struct {
	Server  string   `json:"server"`
	Parsers []string `json:"parsers"`
	LLM     []string `json:"llm"`
}

// handleStatus returns the server state and registered provider names.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, StatusResponse{
		Server:  "running",
		Parsers: s.registry.ListParsers(),
		LLM:     s.registry.ListLLMs(),
	})
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
