// Package cleanup holds the prompts and output schema for the LLM document
// cleanup pass, which strips OCR artifacts from extracted text and pulls out
// the individual requests for production.
package cleanup

import (
	"bytes"
	_ "embed"
	"text/template"
	"unicode/utf8"

	"github.com/profferhq/proffer/internal/prompts"
)

//go:embed system.tmpl
var systemPrompt string

//go:embed user.tmpl
var userPromptTmpl string

var userTemplate = template.Must(template.New("user").Parse(userPromptTmpl))

// MaxInputChars caps the raw text sent to the model. Longer documents are
// truncated, not rejected.
const MaxInputChars = 100000

// SystemPrompt returns the system prompt for document cleanup.
func SystemPrompt() string {
	return systemPrompt
}

// UserPrompt builds the user prompt for document cleanup, truncating the raw
// text to at most MaxInputChars bytes on a rune boundary.
func UserPrompt(rawText string) string {
	if len(rawText) > MaxInputChars {
		cut := MaxInputChars
		for cut > 0 && !utf8.RuneStart(rawText[cut]) {
			cut--
		}
		rawText = rawText[:cut]
	}
	var buf bytes.Buffer
	data := struct{ RawText string }{RawText: rawText}
	if err := userTemplate.Execute(&buf, data); err != nil {
		// Fallback to raw template on error
		return userPromptTmpl
	}
	return buf.String()
}

// Prompt keys
const (
	SystemPromptKey = "cleanup.system"
	UserPromptKey   = "cleanup.user"
)

// RegisterPrompts registers the cleanup prompts with the resolver.
func RegisterPrompts(r *prompts.Resolver) {
	r.Register(prompts.EmbeddedPrompt{
		Key:         SystemPromptKey,
		Text:        systemPrompt,
		Description: "Document cleanup system prompt - strips OCR artifacts and extracts requests",
	})
	r.Register(prompts.EmbeddedPrompt{
		Key:         UserPromptKey,
		Text:        userPromptTmpl,
		Description: "Document cleanup user prompt template",
	})
}
