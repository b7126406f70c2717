// Package objection composes deterministic discovery responses from a set of
// boilerplate objection toggles, and exports the canonical objection
// vocabulary shared with the AI drafting path.
package objection

import "strings"

// Toggle names, in fixed enumeration order. Composition order follows this
// list regardless of the order toggles were switched on.
const (
	OverlyBroad      = "overlyBroad"
	UndulyBurdensome = "undulyBurdensome"
	NotProportional  = "notProportional"
	Vague            = "vague"
	OutsideControl   = "outsideControl"
	Irrelevant       = "irrelevant"
	Confidentiality  = "confidentiality"
)

// Order is the fixed enumeration order used when composing responses.
var Order = []string{
	OverlyBroad,
	UndulyBurdensome,
	NotProportional,
	Vague,
	OutsideControl,
	Irrelevant,
	Confidentiality,
}

// StandardResponse is the unqualified agreement to produce.
const StandardResponse = "Respondent will produce non-privileged documents in Respondent’s possession, custody, or control that are responsive to this request."

// WaiverTransition joins objections to the production statement.
const WaiverTransition = "Subject to and without waiving this objection, "

// sentences maps each toggle to its canonical objection sentence.
var sentences = map[string]string{
	OverlyBroad:      "Respondent objects that this request is overly broad in time and scope.",
	UndulyBurdensome: "Respondent objects that this request is unduly burdensome.",
	NotProportional:  "Respondent objects that this request is not proportional to the needs of the case.",
	Vague:            "Respondent objects that this request is vague or ambiguous.",
	OutsideControl:   "Respondent objects that this request seeks documents not in Respondent’s possession, custody, or control.",
	Irrelevant:       "Respondent objects that this request seeks information that is not relevant to the issues in this matter.",
	Confidentiality:  "Respondent objects on grounds of confidentiality and privacy.",
}

// ToggleSet holds the active objection flags for one request. The zero value
// has no objections active.
type ToggleSet struct {
	OverlyBroad      bool `json:"overlyBroad"`
	UndulyBurdensome bool `json:"undulyBurdensome"`
	NotProportional  bool `json:"notProportional"`
	Vague            bool `json:"vague"`
	OutsideControl   bool `json:"outsideControl"`
	Irrelevant       bool `json:"irrelevant"`
	Confidentiality  bool `json:"confidentiality"`
}

// active reports whether the named toggle is set.
func (t ToggleSet) active(name string) bool {
	switch name {
	case OverlyBroad:
		return t.OverlyBroad
	case UndulyBurdensome:
		return t.UndulyBurdensome
	case NotProportional:
		return t.NotProportional
	case Vague:
		return t.Vague
	case OutsideControl:
		return t.OutsideControl
	case Irrelevant:
		return t.Irrelevant
	case Confidentiality:
		return t.Confidentiality
	}
	return false
}

// Compose builds the response text for a toggle set. Active objection
// sentences are joined with single spaces in enumeration order, followed by
// the waiver transition and the standard production sentence. With no active
// toggles the result is exactly the standard sentence. Pure and
// deterministic: equal toggle sets always produce equal output.
func Compose(t ToggleSet) string {
	var parts []string
	for _, name := range Order {
		if t.active(name) {
			parts = append(parts, sentences[name])
		}
	}
	if len(parts) == 0 {
		return StandardResponse
	}
	return strings.Join(parts, " ") + " " + WaiverTransition + StandardResponse
}

// Sentence returns the canonical objection sentence for a toggle name, or
// empty string for unknown names.
func Sentence(name string) string {
	return sentences[name]
}

// QuickObjection is a one-click objection offered in the drafting workspace.
// Text is a complete replacement response, not a composition fragment.
type QuickObjection struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Text  string `json:"text"`
}

// QuickObjections lists the workspace's one-click objections in display
// order. Labels double as the objection_type vocabulary accepted by the
// drafting endpoint.
func QuickObjections() []QuickObjection {
	return []QuickObjection{
		{Key: OverlyBroad, Label: "Overly Broad", Text: "Objection. This request is overly broad and lacks reasonable limitation in time and scope."},
		{Key: UndulyBurdensome, Label: "Unduly Burdensome", Text: "Objection. This request is unduly burdensome and oppressive, seeking documents that are not readily available."},
		{Key: NotProportional, Label: "Not Proportional", Text: "Objection. This request is not proportional to the needs of the case."},
		{Key: Vague, Label: "Vague", Text: "Objection. This request is vague, ambiguous, and fails to identify the documents with reasonable particularity."},
		{Key: OutsideControl, Label: "Outside Control", Text: "Objection. This request seeks documents that are not in the responding party's possession, custody, or control."},
		{Key: Irrelevant, Label: "Irrelevant", Text: "Objection. This request seeks information that is not relevant to the subject matter of this action."},
		{Key: Confidentiality, Label: "Confidentiality", Text: "Objection. This request seeks confidential and proprietary information."},
	}
}
