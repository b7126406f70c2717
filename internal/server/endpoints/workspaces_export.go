package endpoints

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/profferhq/proffer/internal/api"
	"github.com/profferhq/proffer/internal/export"
	"github.com/profferhq/proffer/internal/svcctx"
)

// ExportWorkspaceRequest selects the export format.
type ExportWorkspaceRequest struct {
	Format string `json:"format"`
}

// ExportWorkspaceEndpoint handles POST /api/workspaces/{id}/export. The
// response body is the rendered document, not JSON.
type ExportWorkspaceEndpoint struct{}

var _ api.Endpoint = (*ExportWorkspaceEndpoint)(nil)

func (e *ExportWorkspaceEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/workspaces/{id}/export", e.handler
}

func (e *ExportWorkspaceEndpoint) RequiresProviders() bool { return false }

// handler godoc
//
//	@Summary		Export workspace responses
//	@Description	Render all responses as a downloadable PDF, DOCX, or text file
//	@Tags			workspaces
//	@Accept			json
//	@Produce		octet-stream
//	@Param			id		path	string					true	"Workspace ID"
//	@Param			body	body	ExportWorkspaceRequest	true	"Export format"
//	@Success		200		{file}	binary
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Router			/api/workspaces/{id}/export [post]
func (e *ExportWorkspaceEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	var req ExportWorkspaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	format, err := export.ParseFormat(req.Format)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

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

	items := make([]export.Item, 0, len(ws.Responses))
	for _, rs := range ws.Responses {
		items = append(items, export.Item{
			ID:       rs.Request.ID,
			Text:     rs.Request.Text,
			Response: rs.Response,
		})
	}

	data, err := export.Render(format, items)
	if err != nil {
		writeErrorDetails(w, http.StatusInternalServerError, "Failed to render export", err.Error())
		return
	}

	fileName := export.FileName(ws.FileName, format)
	w.Header().Set("Content-Type", format.MediaType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (e *ExportWorkspaceEndpoint) Command(getServerURL func() string) *cobra.Command {
	var format, output string
	cmd := &cobra.Command{
		Use:   "export <workspace-id>",
		Short: "Export workspace responses to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			data, suggested, err := client.Download(cmd.Context(), "/api/workspaces/"+args[0]+"/export", ExportWorkspaceRequest{Format: format})
			if err != nil {
				return err
			}

			out := output
			if out == "" {
				out = suggested
			}
			if out == "" {
				out = "responses." + format
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}
			cmd.Println("Wrote", out)
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "pdf", "Export format: pdf, docx, or txt")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file path")
	return cmd
}
