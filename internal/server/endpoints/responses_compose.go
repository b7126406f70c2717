package endpoints

import (
	"encoding/json"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/profferhq/proffer/internal/api"
	"github.com/profferhq/proffer/internal/objection"
)

// ComposeResponseRequest is the body for deterministic composition.
type ComposeResponseRequest struct {
	Toggles objection.ToggleSet `json:"toggles"`
}

// ComposeResponseResponse is the composition result.
type ComposeResponseResponse struct {
	Success bool   `json:"success"`
	Text    string `json:"text"`
}

// ComposeResponseEndpoint handles POST /api/responses/compose. Composition
// is pure text assembly; no provider is involved.
type ComposeResponseEndpoint struct{}

var _ api.Endpoint = (*ComposeResponseEndpoint)(nil)

func (e *ComposeResponseEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/responses/compose", e.handler
}

func (e *ComposeResponseEndpoint) RequiresProviders() bool { return false }

// handler godoc
//
//	@Summary		Compose a response from objection toggles
//	@Description	Deterministically assemble boilerplate objection text
//	@Tags			responses
//	@Accept			json
//	@Produce		json
//	@Param			body	body		ComposeResponseRequest	true	"Active toggles"
//	@Success		200		{object}	ComposeResponseResponse
//	@Failure		400		{object}	ErrorResponse
//	@Router			/api/responses/compose [post]
func (e *ComposeResponseEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	var req ComposeResponseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	writeJSON(w, http.StatusOK, ComposeResponseResponse{
		Success: true,
		Text:    objection.Compose(req.Toggles),
	})
}

func (e *ComposeResponseEndpoint) Command(getServerURL func() string) *cobra.Command {
	var toggles []string
	cmd := &cobra.Command{
		Use:   "compose",
		Short: "Compose a response from objection toggles",
		RunE: func(cmd *cobra.Command, args []string) error {
			var set objection.ToggleSet
			raw, err := json.Marshal(toggleMap(toggles))
			if err != nil {
				return err
			}
			if err := json.Unmarshal(raw, &set); err != nil {
				return err
			}

			client := api.NewClient(getServerURL())
			var resp ComposeResponseResponse
			if err := client.Post(cmd.Context(), "/api/responses/compose", ComposeResponseRequest{Toggles: set}, &resp); err != nil {
				return err
			}
			cmd.Println(resp.Text)
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&toggles, "toggle", nil, "Objection toggle to activate (repeatable), e.g. overlyBroad")
	return cmd
}

func toggleMap(names []string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, name := range names {
		m[name] = true
	}
	return m
}
