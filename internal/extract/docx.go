package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/profferhq/proffer/internal/textutil"
)

const docxDocumentPath = "word/document.xml"

// FromDOCX extracts the raw text of a .docx file. Each paragraph becomes one
// line; runs within a paragraph are concatenated. Formatting is discarded.
func FromDOCX(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("invalid DOCX archive: %w", err)
	}

	var doc *zip.File
	for _, f := range zr.File {
		if f.Name == docxDocumentPath {
			doc = f
			break
		}
	}
	if doc == nil {
		return "", fmt.Errorf("DOCX missing %s", docxDocumentPath)
	}

	rc, err := doc.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", docxDocumentPath, err)
	}
	defer rc.Close()

	text, err := readDocumentXML(rc)
	if err != nil {
		return "", err
	}
	return textutil.Normalize(text), nil
}

// readDocumentXML walks the WordprocessingML token stream collecting text
// runs. Paragraph ends (w:p) emit newlines; explicit breaks (w:br) and tabs
// are mapped to their plain-text equivalents.
func readDocumentXML(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)

	var sb strings.Builder
	inText := false

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("malformed document XML: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "br":
				sb.WriteByte('\n')
			case "tab":
				sb.WriteByte('\t')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				sb.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}

	return sb.String(), nil
}
