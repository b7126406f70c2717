package endpoints

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/profferhq/proffer/internal/api"
	"github.com/profferhq/proffer/internal/draft"
	"github.com/profferhq/proffer/internal/svcctx"
)

// DraftResponseRequest is the body for stateless response drafting.
// Instruction is an alternative spelling of CurrentResponse; both feed the
// refine branch, with CurrentResponse taking precedence.
type DraftResponseRequest struct {
	RequestText     string `json:"requestText"`
	CurrentResponse string `json:"currentResponse,omitempty"`
	ObjectionType   string `json:"objectionType,omitempty"`
	Instruction     string `json:"instruction,omitempty"`
}

// DraftResponseResponse is the drafting result.
type DraftResponseResponse struct {
	Success bool   `json:"success"`
	Text    string `json:"text"`
}

// DraftResponseEndpoint handles POST /api/responses/draft.
type DraftResponseEndpoint struct{}

var _ api.Endpoint = (*DraftResponseEndpoint)(nil)

func (e *DraftResponseEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/responses/draft", e.handler
}

func (e *DraftResponseEndpoint) RequiresProviders() bool { return true }

// handler godoc
//
//	@Summary		Draft a discovery response
//	@Description	Draft or refine a response to one request for production
//	@Tags			responses
//	@Accept			json
//	@Produce		json
//	@Param			body	body		DraftResponseRequest	true	"Drafting input"
//	@Success		200		{object}	DraftResponseResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/api/responses/draft [post]
func (e *DraftResponseEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	var req DraftResponseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	drafter := svcctx.DrafterFrom(r.Context())
	if drafter == nil {
		writeError(w, http.StatusServiceUnavailable, "drafter not initialized")
		return
	}

	current := req.CurrentResponse
	if current == "" {
		current = req.Instruction
	}

	text, err := drafter.Draft(r.Context(), &draft.Request{
		RequestText:     req.RequestText,
		CurrentResponse: current,
		ObjectionType:   req.ObjectionType,
	})
	if err != nil {
		if errors.Is(err, draft.ErrMissingRequestText) {
			writeError(w, http.StatusBadRequest, "Request text is required")
			return
		}
		writeErrorDetails(w, http.StatusInternalServerError, "Failed to generate response", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, DraftResponseResponse{Success: true, Text: text})
}

func (e *DraftResponseEndpoint) Command(getServerURL func() string) *cobra.Command {
	var current, objection string
	cmd := &cobra.Command{
		Use:   "draft <request-text>",
		Short: "Draft a response to a request for production",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp DraftResponseResponse
			body := DraftResponseRequest{
				RequestText:     args[0],
				CurrentResponse: current,
				ObjectionType:   objection,
			}
			if err := client.Post(cmd.Context(), "/api/responses/draft", body, &resp); err != nil {
				return err
			}
			cmd.Println(resp.Text)
			return nil
		},
	}
	cmd.Flags().StringVar(&current, "current", "", "Current draft or instruction to refine")
	cmd.Flags().StringVar(&objection, "objection", "", "Objection ground, e.g. 'Unduly Burdensome'")
	return cmd
}
