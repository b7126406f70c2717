package endpoints

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/profferhq/proffer/internal/api"
	"github.com/profferhq/proffer/internal/draft"
	"github.com/profferhq/proffer/internal/pipeline"
	"github.com/profferhq/proffer/internal/providers"
	"github.com/profferhq/proffer/internal/segment"
	"github.com/profferhq/proffer/internal/svcctx"
	"github.com/profferhq/proffer/internal/workspace"
)

// newTestHandler wires all endpoints into a mux with the given services
// attached to every request context.
func newTestHandler(t *testing.T, svcs *svcctx.Services) http.Handler {
	t.Helper()

	registry := api.NewRegistry()
	for _, ep := range All(Config{}) {
		registry.Register(ep)
	}

	mux := http.NewServeMux()
	registry.RegisterRoutes(mux)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mux.ServeHTTP(w, r.WithContext(svcctx.WithServices(r.Context(), svcs)))
	})
}

// testServices builds services backed by mock providers. The drafter returns
// draftText for every request.
func testServices(draftText string) *svcctx.Services {
	llm := providers.NewMockLLM(draftText)
	return &svcctx.Services{
		Pipeline:   pipeline.New(nil, nil, nil, nil),
		Drafter:    draft.New(llm, nil, nil),
		Workspaces: workspace.NewStore(),
	}
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func TestHealthEndpoints(t *testing.T) {
	h := newTestHandler(t, testServices("x"))

	rec := doJSON(t, h, "GET", "/api/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("health status = %d, want %d", rec.Code, http.StatusOK)
	}
	resp := decodeBody[HealthResponse](t, rec)
	if resp.Status != "ok" {
		t.Errorf("health.Status = %q, want %q", resp.Status, "ok")
	}

	rec = doJSON(t, h, "GET", "/api/ready", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("ready status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestStatusEndpoint(t *testing.T) {
	svcs := testServices("x")
	reg := providers.NewRegistry()
	reg.RegisterLLM("mock-llm", providers.NewMockLLM("x"))
	svcs.Registry = reg
	svcs.Workspaces.Create("a.pdf", "text", "local", []segment.RequestItem{{ID: "1", Text: "req"}})

	h := newTestHandler(t, svcs)
	rec := doJSON(t, h, "GET", "/api/status", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	resp := decodeBody[StatusResponse](t, rec)
	if resp.Server != "running" {
		t.Errorf("Server = %q, want %q", resp.Server, "running")
	}
	if len(resp.Providers.LLM) != 1 {
		t.Errorf("len(Providers.LLM) = %d, want 1", len(resp.Providers.LLM))
	}
	if resp.Workspaces != 1 {
		t.Errorf("Workspaces = %d, want 1", resp.Workspaces)
	}
}

func uploadFile(t *testing.T, h http.Handler, path, fileName, content string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := io.WriteString(fw, content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	mw.Close()

	req := httptest.NewRequest("POST", path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestProcessDocument(t *testing.T) {
	h := newTestHandler(t, testServices("x"))

	doc := "REQUEST NO. 1: All bank statements.\n\nREQUEST NO. 2: All tax returns."
	rec := uploadFile(t, h, "/api/documents/process", "rfp.txt", doc)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	resp := decodeBody[ProcessDocumentResponse](t, rec)
	if !resp.Success {
		t.Error("Success = false, want true")
	}
	if resp.Source != pipeline.SourceLocal {
		t.Errorf("Source = %q, want %q", resp.Source, pipeline.SourceLocal)
	}
	if len(resp.Requests) != 2 {
		t.Fatalf("len(Requests) = %d, want 2", len(resp.Requests))
	}
	if resp.Requests[0].Text != "All bank statements." {
		t.Errorf("Requests[0].Text = %q", resp.Requests[0].Text)
	}
}

func TestProcessDocument_NoFile(t *testing.T) {
	h := newTestHandler(t, testServices("x"))

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("other", "value")
	mw.Close()

	req := httptest.NewRequest("POST", "/api/documents/process", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	resp := decodeBody[ErrorResponse](t, rec)
	if resp.Error != "no file uploaded" {
		t.Errorf("Error = %q, want %q", resp.Error, "no file uploaded")
	}
}

func TestDraftResponse(t *testing.T) {
	h := newTestHandler(t, testServices("Respondent will produce the requested documents."))

	rec := doJSON(t, h, "POST", "/api/responses/draft", DraftResponseRequest{
		RequestText: "All bank statements from 2020 to present.",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	resp := decodeBody[DraftResponseResponse](t, rec)
	if !resp.Success {
		t.Error("Success = false, want true")
	}
	if resp.Text != "Respondent will produce the requested documents." {
		t.Errorf("Text = %q", resp.Text)
	}
}

func TestDraftResponse_MissingRequestText(t *testing.T) {
	h := newTestHandler(t, testServices("x"))

	rec := doJSON(t, h, "POST", "/api/responses/draft", DraftResponseRequest{RequestText: "   "})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	resp := decodeBody[ErrorResponse](t, rec)
	if resp.Error != "Request text is required" {
		t.Errorf("Error = %q, want %q", resp.Error, "Request text is required")
	}
}

func TestComposeResponse(t *testing.T) {
	h := newTestHandler(t, testServices("x"))

	body := map[string]any{"toggles": map[string]bool{"overlyBroad": true, "vague": true}}
	rec := doJSON(t, h, "POST", "/api/responses/compose", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	resp := decodeBody[ComposeResponseResponse](t, rec)
	if !strings.Contains(resp.Text, "overly broad") {
		t.Errorf("Text missing overly broad objection: %q", resp.Text)
	}
	if !strings.Contains(resp.Text, "vague or ambiguous") {
		t.Errorf("Text missing vague objection: %q", resp.Text)
	}
	if !strings.Contains(resp.Text, "Subject to and without waiving") {
		t.Errorf("Text missing waiver transition: %q", resp.Text)
	}
}

func TestObjections(t *testing.T) {
	h := newTestHandler(t, testServices("x"))

	rec := doJSON(t, h, "GET", "/api/objections", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	resp := decodeBody[ObjectionsResponse](t, rec)
	if len(resp.Objections) != 7 {
		t.Fatalf("len(Objections) = %d, want 7", len(resp.Objections))
	}
	if resp.Objections[0].Label != "Overly Broad" {
		t.Errorf("Objections[0].Label = %q, want %q", resp.Objections[0].Label, "Overly Broad")
	}
}

func TestWorkspaceLifecycle(t *testing.T) {
	h := newTestHandler(t, testServices("x"))

	create := CreateWorkspaceRequest{
		FileName: "rfp.pdf",
		Text:     "full text",
		Source:   "local",
		Requests: []segment.RequestItem{
			{ID: "1", Text: "All bank statements."},
			{ID: "2", Text: "All tax returns."},
			{ID: "1", Text: "duplicate, dropped"},
		},
	}
	rec := doJSON(t, h, "POST", "/api/workspaces", create)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}
	ws := decodeBody[workspace.Workspace](t, rec)
	if ws.ID == "" {
		t.Fatal("created workspace has empty ID")
	}
	if len(ws.Responses) != 2 {
		t.Fatalf("len(Responses) = %d, want 2 after dedupe", len(ws.Responses))
	}

	rec = doJSON(t, h, "GET", "/api/workspaces/"+ws.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d, want %d", rec.Code, http.StatusOK)
	}

	rec = doJSON(t, h, "GET", "/api/workspaces", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d, want %d", rec.Code, http.StatusOK)
	}
	list := decodeBody[[]workspace.Workspace](t, rec)
	if len(list) != 1 {
		t.Errorf("len(list) = %d, want 1", len(list))
	}

	text := "Respondent will produce."
	rec = doJSON(t, h, "PUT", "/api/workspaces/"+ws.ID+"/responses/1", UpdateResponseRequest{Text: &text})
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	rs := decodeBody[workspace.ResponseState](t, rec)
	if rs.Response != text {
		t.Errorf("Response = %q, want %q", rs.Response, text)
	}

	rec = doJSON(t, h, "DELETE", "/api/workspaces/"+ws.ID, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d, want %d", rec.Code, http.StatusNoContent)
	}

	rec = doJSON(t, h, "GET", "/api/workspaces/"+ws.ID, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestCreateWorkspace_NoRequests(t *testing.T) {
	h := newTestHandler(t, testServices("x"))

	rec := doJSON(t, h, "POST", "/api/workspaces", CreateWorkspaceRequest{Text: "body"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestUpdateResponse_UnknownRequest(t *testing.T) {
	svcs := testServices("x")
	ws := svcs.Workspaces.Create("a.pdf", "text", "local", []segment.RequestItem{{ID: "1", Text: "req"}})

	h := newTestHandler(t, svcs)
	text := "edited"
	rec := doJSON(t, h, "PUT", "/api/workspaces/"+ws.ID+"/responses/99", UpdateResponseRequest{Text: &text})
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestWorkspaceDraft(t *testing.T) {
	svcs := testServices("Objection. This request is overly broad.")
	ws := svcs.Workspaces.Create("a.pdf", "text", "local", []segment.RequestItem{{ID: "1", Text: "All records."}})

	h := newTestHandler(t, svcs)
	rec := doJSON(t, h, "POST", "/api/workspaces/"+ws.ID+"/responses/1/draft", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	resp := decodeBody[WorkspaceDraftResponse](t, rec)
	if resp.Text != "Objection. This request is overly broad." {
		t.Errorf("Text = %q", resp.Text)
	}

	// The draft lands in workspace state and the flag is released.
	state, err := svcs.Workspaces.Get(ws.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if state.Responses[0].Response != resp.Text {
		t.Errorf("stored Response = %q, want %q", state.Responses[0].Response, resp.Text)
	}
	if state.Responses[0].Drafting {
		t.Error("Drafting = true after draft finished")
	}
}

func TestWorkspaceDraft_Conflict(t *testing.T) {
	svcs := testServices("x")
	ws := svcs.Workspaces.Create("a.pdf", "text", "local", []segment.RequestItem{{ID: "1", Text: "All records."}})

	// Simulate a draft already running for this response.
	if _, err := svcs.Workspaces.BeginDraft(ws.ID, "1"); err != nil {
		t.Fatalf("BeginDraft() error = %v", err)
	}

	h := newTestHandler(t, svcs)
	rec := doJSON(t, h, "POST", "/api/workspaces/"+ws.ID+"/responses/1/draft", nil)
	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusConflict)
	}
}

func TestWorkspaceDraft_FailureKeepsText(t *testing.T) {
	svcs := testServices("x")
	svcs.Drafter = draft.New(&providers.MockLLM{ShouldFail: true}, nil, nil)
	ws := svcs.Workspaces.Create("a.pdf", "text", "local", []segment.RequestItem{{ID: "1", Text: "All records."}})

	prev := "existing response"
	if _, err := svcs.Workspaces.UpdateResponse(ws.ID, "1", workspace.Update{Response: &prev}); err != nil {
		t.Fatalf("UpdateResponse() error = %v", err)
	}

	h := newTestHandler(t, svcs)
	rec := doJSON(t, h, "POST", "/api/workspaces/"+ws.ID+"/responses/1/draft", nil)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadGateway)
	}

	state, err := svcs.Workspaces.Get(ws.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if state.Responses[0].Response != prev {
		t.Errorf("Response = %q, want previous text preserved", state.Responses[0].Response)
	}
	if state.Responses[0].Drafting {
		t.Error("Drafting = true after failed draft, want flag released")
	}
}

func TestWorkspaceDraft_UnknownWorkspace(t *testing.T) {
	h := newTestHandler(t, testServices("x"))

	rec := doJSON(t, h, "POST", "/api/workspaces/nope/responses/1/draft", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestExportWorkspace(t *testing.T) {
	svcs := testServices("x")
	ws := svcs.Workspaces.Create("rfp.pdf", "text", "local", []segment.RequestItem{
		{ID: "1", Text: "All bank statements."},
	})
	resp := "Respondent will produce."
	if _, err := svcs.Workspaces.UpdateResponse(ws.ID, "1", workspace.Update{Response: &resp}); err != nil {
		t.Fatalf("UpdateResponse() error = %v", err)
	}

	h := newTestHandler(t, svcs)
	rec := doJSON(t, h, "POST", "/api/workspaces/"+ws.ID+"/export", ExportWorkspaceRequest{Format: "text"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	if ct := rec.Header().Get("Content-Type"); ct != "text/plain; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "rfp_responses.txt") {
		t.Errorf("Content-Disposition = %q, want filename rfp_responses.txt", cd)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "RESPONSES TO REQUEST FOR PRODUCTION") {
		t.Errorf("body missing title: %q", body)
	}
	if !strings.Contains(body, "Respondent will produce.") {
		t.Errorf("body missing response text: %q", body)
	}
}

func TestExportWorkspace_PDF(t *testing.T) {
	svcs := testServices("x")
	ws := svcs.Workspaces.Create("rfp.pdf", "text", "local", []segment.RequestItem{
		{ID: "1", Text: "All bank statements."},
	})

	h := newTestHandler(t, svcs)
	rec := doJSON(t, h, "POST", "/api/workspaces/"+ws.ID+"/export", ExportWorkspaceRequest{Format: "pdf"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")) {
		t.Error("body is not a PDF")
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Content-Type = %q, want application/pdf", ct)
	}
}

func TestExportWorkspace_BadFormat(t *testing.T) {
	svcs := testServices("x")
	ws := svcs.Workspaces.Create("rfp.pdf", "text", "local", []segment.RequestItem{{ID: "1", Text: "req"}})

	h := newTestHandler(t, svcs)
	rec := doJSON(t, h, "POST", "/api/workspaces/"+ws.ID+"/export", ExportWorkspaceRequest{Format: "xlsx"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestExportWorkspace_NotFound(t *testing.T) {
	h := newTestHandler(t, testServices("x"))

	rec := doJSON(t, h, "POST", "/api/workspaces/nope/export", ExportWorkspaceRequest{Format: "pdf"})
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
