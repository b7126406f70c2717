// Package export renders finished discovery responses into downloadable
// documents. Three formats are supported: PDF, DOCX, and plain text. All
// formats share the same structure: a title, then for each request its
// number, the request text, and the response.
package export

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/profferhq/proffer/internal/segment"
)

// Title is the heading on every export.
const Title = "RESPONSES TO REQUEST FOR PRODUCTION"

// NoResponse is the placeholder for requests the user never answered.
const NoResponse = "[No response provided]"

// Format selects the export rendering.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatText Format = "txt"
)

// ParseFormat validates a format string.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatPDF:
		return FormatPDF, nil
	case FormatDOCX:
		return FormatDOCX, nil
	case FormatText, "text":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unsupported export format: %s", s)
	}
}

// MediaType returns the Content-Type for a format.
func (f Format) MediaType() string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	case FormatDOCX:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Item is one request/response pair to render.
type Item struct {
	ID       segment.RequestID `json:"id"`
	Text     string            `json:"text"`
	Response string            `json:"response"`
}

// response returns the item's response or the placeholder.
func (it Item) response() string {
	if strings.TrimSpace(it.Response) == "" {
		return NoResponse
	}
	return it.Response
}

// FileName derives the download name from the uploaded file's name, e.g.
// "smith_rfp.pdf" becomes "smith_rfp_responses.pdf".
func FileName(sourceName string, f Format) string {
	base := strings.TrimSuffix(sourceName, filepath.Ext(sourceName))
	if base == "" {
		base = "responses"
		return base + "." + string(f)
	}
	return base + "_responses." + string(f)
}

// Render renders items in the requested format.
func Render(f Format, items []Item) ([]byte, error) {
	switch f {
	case FormatPDF:
		return ToPDF(items)
	case FormatDOCX:
		return ToDOCX(items)
	case FormatText:
		return ToText(items), nil
	default:
		return nil, fmt.Errorf("unsupported export format: %s", f)
	}
}

// ToText renders the plain text export.
func ToText(items []Item) []byte {
	var sb strings.Builder
	sb.WriteString(Title)
	sb.WriteString("\n\n")

	for _, it := range items {
		fmt.Fprintf(&sb, "REQUEST NO. %s\n", it.ID)
		sb.WriteString(it.Text)
		sb.WriteString("\n\nRESPONSE:\n")
		sb.WriteString(it.response())
		sb.WriteString("\n\n")
	}

	return []byte(sb.String())
}
