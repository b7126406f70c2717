package endpoints

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/profferhq/proffer/internal/api"
	"github.com/profferhq/proffer/internal/objection"
)

// ObjectionsResponse lists the one-click objections.
type ObjectionsResponse struct {
	Objections []objection.QuickObjection `json:"objections"`
}

// ObjectionsEndpoint handles GET /api/objections.
type ObjectionsEndpoint struct{}

var _ api.Endpoint = (*ObjectionsEndpoint)(nil)

func (e *ObjectionsEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/objections", e.handler
}

func (e *ObjectionsEndpoint) RequiresProviders() bool { return false }

// handler godoc
//
//	@Summary	List the quick objections
//	@Tags		responses
//	@Produce	json
//	@Success	200	{object}	ObjectionsResponse
//	@Router		/api/objections [get]
func (e *ObjectionsEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ObjectionsResponse{Objections: objection.QuickObjections()})
}

func (e *ObjectionsEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "objections",
		Short: "List the quick objections",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp ObjectionsResponse
			if err := client.Get(cmd.Context(), "/api/objections", &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}
