package export

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
)

// Minimal OOXML package parts. Word accepts a package with just the content
// types, the package relationships, and the document body.
const (
	docxContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

	docxRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`
)

// ToDOCX renders the DOCX export.
func ToDOCX(items []Item) ([]byte, error) {
	var body strings.Builder
	writeParagraph(&body, Title, runBold+runSize(32))
	writeParagraph(&body, "", "")

	for _, it := range items {
		writeParagraph(&body, fmt.Sprintf("REQUEST NO. %s", it.ID), runBold)
		writeParagraph(&body, it.Text, runItalic)
		writeParagraph(&body, "RESPONSE:", runBold)
		writeParagraph(&body, it.response(), "")
		writeParagraph(&body, "", "")
	}

	document := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
` + body.String() + `</w:body>
</w:document>`

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	parts := []struct {
		name, content string
	}{
		{"[Content_Types].xml", docxContentTypes},
		{"_rels/.rels", docxRels},
		{"word/document.xml", document},
	}
	for _, part := range parts {
		w, err := zw.Create(part.name)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", part.name, err)
		}
		if _, err := w.Write([]byte(part.content)); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", part.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize DOCX: %w", err)
	}

	return buf.Bytes(), nil
}

// Run property fragments.
const (
	runBold   = "<w:b/>"
	runItalic = "<w:i/>"
)

// runSize returns a font size fragment in half-points.
func runSize(halfPoints int) string {
	return fmt.Sprintf(`<w:sz w:val="%d"/>`, halfPoints)
}

// writeParagraph emits one paragraph. Newlines in text become explicit
// breaks so multi-line responses keep their shape.
func writeParagraph(sb *strings.Builder, text, runProps string) {
	sb.WriteString("<w:p>")
	if text != "" {
		sb.WriteString("<w:r>")
		if runProps != "" {
			sb.WriteString("<w:rPr>" + runProps + "</w:rPr>")
		}
		for i, line := range strings.Split(text, "\n") {
			if i > 0 {
				sb.WriteString("<w:br/>")
			}
			sb.WriteString(`<w:t xml:space="preserve">`)
			xml.EscapeText(sb, []byte(line))
			sb.WriteString("</w:t>")
		}
		sb.WriteString("</w:r>")
	}
	sb.WriteString("</w:p>\n")
}
