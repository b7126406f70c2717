package endpoints

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/profferhq/proffer/internal/api"
	"github.com/profferhq/proffer/internal/pipeline"
	"github.com/profferhq/proffer/internal/providers"
	"github.com/profferhq/proffer/internal/segment"
	"github.com/profferhq/proffer/internal/svcctx"
)

// ProcessDocumentResponse is the result of processing one upload.
type ProcessDocumentResponse struct {
	Success  bool                  `json:"success"`
	Text     string                `json:"text"`
	Requests []segment.RequestItem `json:"requests"`
	Source   pipeline.Source       `json:"source"`
}

// ProcessDocumentEndpoint handles POST /api/documents/process with a
// multipart file upload.
type ProcessDocumentEndpoint struct{}

var _ api.Endpoint = (*ProcessDocumentEndpoint)(nil)

func (e *ProcessDocumentEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/documents/process", e.handler
}

func (e *ProcessDocumentEndpoint) RequiresProviders() bool { return true }

// handler godoc
//
//	@Summary		Process a discovery document
//	@Description	Upload a PDF, DOCX, or text file and extract its requests for production
//	@Tags			documents
//	@Accept			mpfd
//	@Produce		json
//	@Param			file	formData	file	true	"Document to process"
//	@Success		200		{object}	ProcessDocumentResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/api/documents/process [post]
func (e *ProcessDocumentEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	const maxMemory = 50 << 20 // 50MB
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse form: %v", err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no file uploaded")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to read upload: %v", err))
		return
	}

	p := svcctx.PipelineFrom(r.Context())
	if p == nil {
		writeError(w, http.StatusServiceUnavailable, "pipeline not initialized")
		return
	}

	result, err := p.Process(r.Context(), &providers.Document{
		FileName:  header.Filename,
		MediaType: header.Header.Get("Content-Type"),
		Data:      data,
	})
	if err != nil {
		writeErrorDetails(w, http.StatusInternalServerError, "Failed to process document", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, ProcessDocumentResponse{
		Success:  true,
		Text:     result.Text,
		Requests: result.Requests,
		Source:   result.Source,
	})
}

func (e *ProcessDocumentEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "process <file>",
		Short: "Upload a document and extract its requests",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read file: %w", err)
			}

			client := api.NewClient(getServerURL())
			var resp ProcessDocumentResponse
			if err := client.PostFile(cmd.Context(), "/api/documents/process", filepath.Base(args[0]), data, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}
