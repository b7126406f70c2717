package endpoints

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/profferhq/proffer/internal/api"
	"github.com/profferhq/proffer/internal/draft"
	"github.com/profferhq/proffer/internal/segment"
	"github.com/profferhq/proffer/internal/svcctx"
	"github.com/profferhq/proffer/internal/workspace"
)

// WorkspaceDraftRequest triggers an AI draft for one response. With no body
// fields the stored pending instruction (if any) is used.
type WorkspaceDraftRequest struct {
	Instruction   string `json:"instruction,omitempty"`
	ObjectionType string `json:"objectionType,omitempty"`
}

// WorkspaceDraftResponse is the drafting result.
type WorkspaceDraftResponse struct {
	Success bool   `json:"success"`
	Text    string `json:"text"`
}

// WorkspaceDraftEndpoint handles POST /api/workspaces/{id}/responses/{rid}/draft.
// Drafts are single-flight per response: a second concurrent call for the
// same response is rejected with 409.
type WorkspaceDraftEndpoint struct{}

var _ api.Endpoint = (*WorkspaceDraftEndpoint)(nil)

func (e *WorkspaceDraftEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/workspaces/{id}/responses/{rid}/draft", e.handler
}

func (e *WorkspaceDraftEndpoint) RequiresProviders() bool { return true }

// handler godoc
//
//	@Summary		AI-draft a workspace response
//	@Description	Draft a response in place; a failed draft leaves the existing text unchanged
//	@Tags			workspaces
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Workspace ID"
//	@Param			rid		path		string					true	"Request ID"
//	@Param			body	body		WorkspaceDraftRequest	false	"Drafting input"
//	@Success		200		{object}	WorkspaceDraftResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Failure		502		{object}	ErrorResponse
//	@Router			/api/workspaces/{id}/responses/{rid}/draft [post]
func (e *WorkspaceDraftEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	// An empty body is allowed; the stored instruction is used instead.
	var req WorkspaceDraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	store := svcctx.WorkspacesFrom(r.Context())
	drafter := svcctx.DrafterFrom(r.Context())
	if store == nil || drafter == nil {
		writeError(w, http.StatusServiceUnavailable, "server not initialized")
		return
	}

	wsID := r.PathValue("id")
	reqID := segment.RequestID(r.PathValue("rid"))

	state, err := store.BeginDraft(wsID, reqID)
	if err != nil {
		switch {
		case errors.Is(err, workspace.ErrDraftInFlight):
			writeError(w, http.StatusConflict, err.Error())
		case errors.Is(err, workspace.ErrNotFound), errors.Is(err, workspace.ErrResponseNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	instruction := req.Instruction
	if instruction == "" {
		instruction = state.Instruction
	}

	text, err := drafter.Draft(r.Context(), &draft.Request{
		RequestText:     state.Request.Text,
		CurrentResponse: instruction,
		ObjectionType:   req.ObjectionType,
	})
	if err != nil {
		// Release the single-flight flag, keep the previous text.
		store.FinishDraft(wsID, reqID, nil)
		writeErrorDetails(w, http.StatusBadGateway, "Failed to generate response", err.Error())
		return
	}

	if _, err := store.FinishDraft(wsID, reqID, &text); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, WorkspaceDraftResponse{Success: true, Text: text})
}

func (e *WorkspaceDraftEndpoint) Command(getServerURL func() string) *cobra.Command {
	var instruction, objectionType string
	cmd := &cobra.Command{
		Use:   "ai-draft <workspace-id> <request-id>",
		Short: "AI-draft a workspace response in place",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp WorkspaceDraftResponse
			body := WorkspaceDraftRequest{Instruction: instruction, ObjectionType: objectionType}
			path := "/api/workspaces/" + args[0] + "/responses/" + args[1] + "/draft"
			if err := client.Post(cmd.Context(), path, body, &resp); err != nil {
				return err
			}
			cmd.Println(resp.Text)
			return nil
		},
	}
	cmd.Flags().StringVar(&instruction, "instruction", "", "Drafting instruction, e.g. 'limit to 12 months'")
	cmd.Flags().StringVar(&objectionType, "objection", "", "Objection ground, e.g. 'Unduly Burdensome'")
	return cmd
}
