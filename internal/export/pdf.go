package export

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// PDF layout constants, in millimeters on an A4 portrait page.
const (
	pdfMargin     = 20.0
	pdfPageBreakY = 270.0
	pdfLineHeight = 5.0
)

// ToPDF renders the PDF export. The cursor walks down the page and the break
// line is checked before each item and before its RESPONSE block; text inside
// a single block is never split, so an unusually long request or response can
// run past the break line until the next checkpoint.
func ToPDF(items []Item) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	pageWidth, _ := pdf.GetPageSize()
	maxLineWidth := pageWidth - pdfMargin*2

	y := pdfMargin

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Text(pdfMargin, y, Title)
	y += 15

	for _, it := range items {
		if y > pdfPageBreakY {
			pdf.AddPage()
			y = pdfMargin
		}

		pdf.SetFont("Helvetica", "B", 11)
		pdf.Text(pdfMargin, y, fmt.Sprintf("REQUEST NO. %s", it.ID))
		y += 7

		pdf.SetFont("Helvetica", "I", 10)
		y = writeLines(pdf, it.Text, maxLineWidth, y)
		y += pdfLineHeight

		if y > pdfPageBreakY {
			pdf.AddPage()
			y = pdfMargin
		}

		pdf.SetFont("Helvetica", "B", 10)
		pdf.Text(pdfMargin, y, "RESPONSE:")
		y += pdfLineHeight

		pdf.SetFont("Helvetica", "", 10)
		y = writeLines(pdf, it.response(), maxLineWidth, y)
		y += 15
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// writeLines wraps text to the line width and writes it starting at y,
// returning the new cursor position.
func writeLines(pdf *fpdf.Fpdf, text string, width, y float64) float64 {
	for _, line := range pdf.SplitText(text, width) {
		pdf.Text(pdfMargin, y, line)
		y += pdfLineHeight
	}
	return y
}
