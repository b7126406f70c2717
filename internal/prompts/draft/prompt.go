// Package draft holds the prompts for AI response drafting. Three user
// prompts share one system prompt: an objection branch (draft a single
// objection sentence), a refine branch (translate the user's rough note or
// instruction into legal language), and a standard branch (plain agreement
// to produce).
package draft

import (
	"bytes"
	_ "embed"
	"strings"
	"text/template"

	"github.com/profferhq/proffer/internal/prompts"
)

//go:embed system.tmpl
var systemPrompt string

//go:embed objection_user.tmpl
var objectionUserTmpl string

//go:embed refine_user.tmpl
var refineUserTmpl string

//go:embed standard_user.tmpl
var standardUserTmpl string

var (
	objectionTemplate = template.Must(template.New("objection").Parse(objectionUserTmpl))
	refineTemplate    = template.Must(template.New("refine").Parse(refineUserTmpl))
	standardTemplate  = template.Must(template.New("standard").Parse(standardUserTmpl))
)

// Temperature is the sampling temperature for all drafting calls. Low on
// purpose: legal boilerplate should not be creative.
const Temperature = 0.2

// SystemPrompt returns the shared drafting system prompt.
func SystemPrompt() string {
	return systemPrompt
}

// ObjectionUserPrompt builds the user prompt for the objection branch.
func ObjectionUserPrompt(requestText, objectionType string) string {
	var buf bytes.Buffer
	data := struct {
		RequestText        string
		ObjectionType      string
		ObjectionTypeLower string
	}{
		RequestText:        requestText,
		ObjectionType:      objectionType,
		ObjectionTypeLower: strings.ToLower(objectionType),
	}
	if err := objectionTemplate.Execute(&buf, data); err != nil {
		return objectionUserTmpl
	}
	return buf.String()
}

// RefineUserPrompt builds the user prompt for the refine branch.
func RefineUserPrompt(requestText, currentResponse string) string {
	var buf bytes.Buffer
	data := struct {
		RequestText     string
		CurrentResponse string
	}{
		RequestText:     requestText,
		CurrentResponse: currentResponse,
	}
	if err := refineTemplate.Execute(&buf, data); err != nil {
		return refineUserTmpl
	}
	return buf.String()
}

// StandardUserPrompt builds the user prompt for the standard branch.
func StandardUserPrompt(requestText string) string {
	var buf bytes.Buffer
	data := struct{ RequestText string }{RequestText: requestText}
	if err := standardTemplate.Execute(&buf, data); err != nil {
		return standardUserTmpl
	}
	return buf.String()
}

// Prompt keys
const (
	SystemPromptKey    = "draft.system"
	ObjectionPromptKey = "draft.objection_user"
	RefinePromptKey    = "draft.refine_user"
	StandardPromptKey  = "draft.standard_user"
)

// RegisterPrompts registers the drafting prompts with the resolver.
func RegisterPrompts(r *prompts.Resolver) {
	r.Register(prompts.EmbeddedPrompt{
		Key:         SystemPromptKey,
		Text:        systemPrompt,
		Description: "Drafting system prompt - senior family law attorney persona",
	})
	r.Register(prompts.EmbeddedPrompt{
		Key:         ObjectionPromptKey,
		Text:        objectionUserTmpl,
		Description: "Objection branch user prompt template",
	})
	r.Register(prompts.EmbeddedPrompt{
		Key:         RefinePromptKey,
		Text:        refineUserTmpl,
		Description: "Refine branch user prompt template",
	})
	r.Register(prompts.EmbeddedPrompt{
		Key:         StandardPromptKey,
		Text:        standardUserTmpl,
		Description: "Standard branch user prompt template",
	})
}
