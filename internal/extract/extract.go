// Package extract pulls plain text out of uploaded documents locally,
// without any hosted parsing service. It is the fallback path when the
// remote parser is unavailable, and the primary path for plain text uploads.
package extract

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	ledongthuc "github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/profferhq/proffer/internal/textutil"
)

// Kind classifies an upload by declared media type and file extension.
type Kind string

const (
	KindPDF  Kind = "pdf"
	KindDOCX Kind = "docx"
	KindText Kind = "text"
)

// Media types recognized for the remote parsing path.
const (
	MediaTypePDF  = "application/pdf"
	MediaTypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// DetectKind classifies an upload. Extension wins over a missing or generic
// media type; anything unrecognized is treated as plain text.
func DetectKind(fileName, mediaType string) Kind {
	switch {
	case mediaType == MediaTypePDF, strings.HasSuffix(strings.ToLower(fileName), ".pdf"):
		return KindPDF
	case mediaType == MediaTypeDOCX, strings.HasSuffix(strings.ToLower(fileName), ".docx"):
		return KindDOCX
	default:
		return KindText
	}
}

// FromFile extracts normalized text from an upload based on its kind.
func FromFile(fileName, mediaType string, data []byte) (string, error) {
	switch DetectKind(fileName, mediaType) {
	case KindPDF:
		return FromPDF(data)
	case KindDOCX:
		return FromDOCX(data)
	default:
		return textutil.Normalize(string(data)), nil
	}
}

// FromPDF extracts text from a PDF. The file is validated first so corrupt
// uploads fail with a useful error instead of garbage text.
func FromPDF(data []byte) (string, error) {
	pages, err := api.PageCount(bytes.NewReader(data), nil)
	if err != nil {
		return "", fmt.Errorf("invalid PDF: %w", err)
	}
	if pages == 0 {
		return "", fmt.Errorf("PDF has no pages")
	}

	reader, err := ledongthuc.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract PDF text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("failed to read PDF text: %w", err)
	}

	return textutil.Normalize(buf.String()), nil
}
