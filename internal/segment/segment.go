// Package segment slices a discovery document into its numbered
// "REQUEST FOR PRODUCTION" items.
//
// The header scan is intentionally lenient: it accepts "REQUEST NO. 4",
// "REQUEST FOR PRODUCTION NUMBER 4", and bare "REQUEST 4". The bare form can
// false-positive on prose like "REQUEST 3 copies of..."; callers that need
// higher precision should prefer the LLM structuring path and use this
// package as the fallback.
package segment

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/profferhq/proffer/internal/textutil"
)

// RequestItem is one discovery request: its id as numbered in the document
// and the verbatim request text. Items are immutable once produced; only
// their drafted responses change downstream.
type RequestItem struct {
	ID   RequestID `json:"id"`
	Text string    `json:"text"`
}

// FallbackMessage is returned as the single item body when no request
// headers are found in a short document.
const FallbackMessage = "Could not automatically detect 'REQUEST NO.' format. Full text provided in document view."

// fallbackLineLimit caps the zero-match fallback: longer documents return an
// empty list instead of a placeholder item.
const fallbackLineLimit = 50

// headerPattern matches request headers such as "REQUEST NO. 4",
// "REQUEST FOR PRODUCTION NUMBER 12" and "REQUEST 4(a)".
var headerPattern = regexp.MustCompile(`(?i)(?:REQUEST\s+(?:FOR\s+PRODUCTION\s+)?(?:NO\.|NUMBER)?\s*(\d+(?:\([a-z]\))?)|REQUEST\s+(\d+(?:\([a-z]\))?))`)

// leadingPunct strips separator runs between a header and its body.
var leadingPunct = regexp.MustCompile(`^[\.:\-\s]+`)

// Split normalizes text and slices it into ordered request items.
//
// Each item's body runs from the end of its header to the start of the next
// header (or end of text). Zero matches is not an error: short documents
// yield a single placeholder item with id 1, long ones an empty list.
// Duplicate ids keep the first occurrence.
func Split(text string) []RequestItem {
	normalized := textutil.Normalize(text)

	matches := headerPattern.FindAllStringSubmatchIndex(normalized, -1)
	if len(matches) == 0 {
		if n := len(textutil.NonBlankLines(normalized)); n > 0 && n < fallbackLineLimit {
			return []RequestItem{{ID: "1", Text: FallbackMessage}}
		}
		return nil
	}

	items := make([]RequestItem, 0, len(matches))
	for i, m := range matches {
		id := captureID(normalized, m)

		bodyStart := m[1]
		bodyEnd := len(normalized)
		if i+1 < len(matches) {
			bodyEnd = matches[i+1][0]
		}

		body := strings.TrimSpace(normalized[bodyStart:bodyEnd])
		body = strings.TrimSpace(leadingPunct.ReplaceAllString(body, ""))
		if body == "" {
			body = fmt.Sprintf("[Empty Request Content for Request %s]", id)
		}

		items = append(items, RequestItem{ID: id, Text: body})
	}

	return Dedupe(items)
}

// captureID extracts the request id from a submatch index set. The pattern
// has two alternated capture groups; exactly one is present per match. The
// id reduces to its leading digits, so a "4(a)" header on this path is
// request 4.
func captureID(text string, m []int) RequestID {
	capture := ""
	if m[2] >= 0 {
		capture = text[m[2]:m[3]]
	} else if m[4] >= 0 {
		capture = text[m[4]:m[5]]
	}
	if digits := leadingDigits(capture); digits != "" {
		return RequestID(digits)
	}
	return RequestID(capture)
}

// Dedupe drops items whose id was already seen, preserving order. Used both
// on the regex path and on LLM-produced request lists.
func Dedupe(items []RequestItem) []RequestItem {
	seen := make(map[RequestID]bool, len(items))
	out := make([]RequestItem, 0, len(items))
	for _, item := range items {
		if seen[item.ID] {
			continue
		}
		seen[item.ID] = true
		out = append(out, item)
	}
	return out
}
