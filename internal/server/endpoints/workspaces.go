package endpoints

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/profferhq/proffer/internal/api"
	"github.com/profferhq/proffer/internal/objection"
	"github.com/profferhq/proffer/internal/segment"
	"github.com/profferhq/proffer/internal/svcctx"
	"github.com/profferhq/proffer/internal/workspace"
)

// CreateWorkspaceRequest opens a drafting workspace from a processed
// document. Typically the body is the output of /api/documents/process plus
// the original file name.
type CreateWorkspaceRequest struct {
	FileName string                `json:"fileName,omitempty"`
	Text     string                `json:"text"`
	Requests []segment.RequestItem `json:"requests"`
	Source   string                `json:"source,omitempty"`
}

// CreateWorkspaceEndpoint handles POST /api/workspaces.
type CreateWorkspaceEndpoint struct{}

var _ api.Endpoint = (*CreateWorkspaceEndpoint)(nil)

func (e *CreateWorkspaceEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/workspaces", e.handler
}

func (e *CreateWorkspaceEndpoint) RequiresProviders() bool { return false }

// handler godoc
//
//	@Summary		Open a drafting workspace
//	@Tags			workspaces
//	@Accept			json
//	@Produce		json
//	@Param			body	body		CreateWorkspaceRequest	true	"Processed document"
//	@Success		201		{object}	workspace.Workspace
//	@Failure		400		{object}	ErrorResponse
//	@Router			/api/workspaces [post]
func (e *CreateWorkspaceEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	var req CreateWorkspaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(req.Requests) == 0 {
		writeError(w, http.StatusBadRequest, "requests are required")
		return
	}

	store := svcctx.WorkspacesFrom(r.Context())
	if store == nil {
		writeError(w, http.StatusServiceUnavailable, "workspace store not initialized")
		return
	}

	ws := store.Create(req.FileName, req.Text, req.Source, segment.Dedupe(req.Requests))
	writeJSON(w, http.StatusCreated, ws)
}

func (e *CreateWorkspaceEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Open a workspace from a processed document (JSON on stdin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			var req CreateWorkspaceRequest
			if err := json.NewDecoder(cmd.InOrStdin()).Decode(&req); err != nil {
				return err
			}

			client := api.NewClient(getServerURL())
			var resp workspace.Workspace
			if err := client.Post(cmd.Context(), "/api/workspaces", req, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

// GetWorkspaceEndpoint handles GET /api/workspaces/{id}.
type GetWorkspaceEndpoint struct{}

var _ api.Endpoint = (*GetWorkspaceEndpoint)(nil)

func (e *GetWorkspaceEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/workspaces/{id}", e.handler
}

func (e *GetWorkspaceEndpoint) RequiresProviders() bool { return false }

// handler godoc
//
//	@Summary	Get workspace state
//	@Tags		workspaces
//	@Produce	json
//	@Param		id	path		string	true	"Workspace ID"
//	@Success	200	{object}	workspace.Workspace
//	@Failure	404	{object}	ErrorResponse
//	@Router		/api/workspaces/{id} [get]
func (e *GetWorkspaceEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	store := svcctx.WorkspacesFrom(r.Context())
	if store == nil {
		writeError(w, http.StatusServiceUnavailable, "workspace store not initialized")
		return
	}

	ws, err := store.Get(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "workspace not found")
		return
	}
	writeJSON(w, http.StatusOK, ws)
}

func (e *GetWorkspaceEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "get <workspace-id>",
		Short: "Get workspace state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp workspace.Workspace
			if err := client.Get(cmd.Context(), "/api/workspaces/"+args[0], &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

// ListWorkspacesEndpoint handles GET /api/workspaces.
type ListWorkspacesEndpoint struct{}

var _ api.Endpoint = (*ListWorkspacesEndpoint)(nil)

func (e *ListWorkspacesEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/workspaces", e.handler
}

func (e *ListWorkspacesEndpoint) RequiresProviders() bool { return false }

// handler godoc
//
//	@Summary	List open workspaces
//	@Tags		workspaces
//	@Produce	json
//	@Success	200	{array}	workspace.Workspace
//	@Router		/api/workspaces [get]
func (e *ListWorkspacesEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	store := svcctx.WorkspacesFrom(r.Context())
	if store == nil {
		writeError(w, http.StatusServiceUnavailable, "workspace store not initialized")
		return
	}
	writeJSON(w, http.StatusOK, store.List())
}

func (e *ListWorkspacesEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List open workspaces",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp []workspace.Workspace
			if err := client.Get(cmd.Context(), "/api/workspaces", &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

// DeleteWorkspaceEndpoint handles DELETE /api/workspaces/{id}.
type DeleteWorkspaceEndpoint struct{}

var _ api.Endpoint = (*DeleteWorkspaceEndpoint)(nil)

func (e *DeleteWorkspaceEndpoint) Route() (string, string, http.HandlerFunc) {
	return "DELETE", "/api/workspaces/{id}", e.handler
}

func (e *DeleteWorkspaceEndpoint) RequiresProviders() bool { return false }

// handler godoc
//
//	@Summary	Close a workspace
//	@Tags		workspaces
//	@Param		id	path	string	true	"Workspace ID"
//	@Success	204
//	@Failure	404	{object}	ErrorResponse
//	@Router		/api/workspaces/{id} [delete]
func (e *DeleteWorkspaceEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	store := svcctx.WorkspacesFrom(r.Context())
	if store == nil {
		writeError(w, http.StatusServiceUnavailable, "workspace store not initialized")
		return
	}
	if err := store.Delete(r.PathValue("id")); err != nil {
		writeError(w, http.StatusNotFound, "workspace not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (e *DeleteWorkspaceEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <workspace-id>",
		Short: "Close a workspace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			return client.Delete(cmd.Context(), "/api/workspaces/"+args[0])
		},
	}
}

// UpdateResponseRequest is a manual edit to one response. Omitted fields are
// untouched.
type UpdateResponseRequest struct {
	Text        *string              `json:"text,omitempty"`
	Toggles     *objection.ToggleSet `json:"toggles,omitempty"`
	Instruction *string              `json:"instruction,omitempty"`
}

// UpdateResponseEndpoint handles PUT /api/workspaces/{id}/responses/{rid}.
type UpdateResponseEndpoint struct{}

var _ api.Endpoint = (*UpdateResponseEndpoint)(nil)

func (e *UpdateResponseEndpoint) Route() (string, string, http.HandlerFunc) {
	return "PUT", "/api/workspaces/{id}/responses/{rid}", e.handler
}

func (e *UpdateResponseEndpoint) RequiresProviders() bool { return false }

// handler godoc
//
//	@Summary		Edit a response
//	@Description	Manually edit a response's text, toggles, or pending instruction
//	@Tags			workspaces
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Workspace ID"
//	@Param			rid		path		string					true	"Request ID"
//	@Param			body	body		UpdateResponseRequest	true	"Fields to change"
//	@Success		200		{object}	workspace.ResponseState
//	@Failure		404		{object}	ErrorResponse
//	@Router			/api/workspaces/{id}/responses/{rid} [put]
func (e *UpdateResponseEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	var req UpdateResponseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	store := svcctx.WorkspacesFrom(r.Context())
	if store == nil {
		writeError(w, http.StatusServiceUnavailable, "workspace store not initialized")
		return
	}

	rs, err := store.UpdateResponse(r.PathValue("id"), segment.RequestID(r.PathValue("rid")), workspace.Update{
		Response:    req.Text,
		Toggles:     req.Toggles,
		Instruction: req.Instruction,
	})
	if err != nil {
		if errors.Is(err, workspace.ErrNotFound) || errors.Is(err, workspace.ErrResponseNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, rs)
}

func (e *UpdateResponseEndpoint) Command(getServerURL func() string) *cobra.Command {
	var text string
	cmd := &cobra.Command{
		Use:   "respond <workspace-id> <request-id>",
		Short: "Set a response's text",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp workspace.ResponseState
			body := UpdateResponseRequest{Text: &text}
			path := "/api/workspaces/" + args[0] + "/responses/" + args[1]
			if err := client.Put(cmd.Context(), path, body, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().StringVar(&text, "text", "", "Response text")
	cmd.MarkFlagRequired("text")
	return cmd
}
