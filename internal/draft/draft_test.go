package draft

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/profferhq/proffer/internal/providers"
)

// captureLLM records the last chat request so branch selection can be
// asserted without a live model.
type captureLLM struct {
	providers.MockLLM
	last *providers.ChatRequest
}

func (c *captureLLM) Chat(ctx context.Context, req *providers.ChatRequest) (*providers.ChatResult, error) {
	c.last = req
	return c.MockLLM.Chat(ctx, req)
}

func TestDraft_ObjectionBranch(t *testing.T) {
	llm := &captureLLM{MockLLM: providers.MockLLM{ResponseText: "Respondent objects to this request as unduly burdensome."}}
	d := New(llm, nil, nil)

	got, err := d.Draft(context.Background(), &Request{
		RequestText:     "Produce all documents for 24 months.",
		CurrentResponse: "should be ignored",
		ObjectionType:   "Unduly Burdensome",
	})
	if err != nil {
		t.Fatalf("Draft() error = %v", err)
	}
	if got != "Respondent objects to this request as unduly burdensome." {
		t.Errorf("Draft() = %q", got)
	}

	// Objection branch wins over refine, and lowercases the type in the
	// inline example.
	if !strings.Contains(llm.last.User, `grounds of: "Unduly Burdensome"`) {
		t.Errorf("user prompt missing objection grounds: %q", llm.last.User)
	}
	if !strings.Contains(llm.last.User, "as unduly burdensome and") {
		t.Errorf("user prompt missing lowercased example: %q", llm.last.User)
	}
	if llm.last.Temperature != 0.2 {
		t.Errorf("Temperature = %v, want 0.2", llm.last.Temperature)
	}
	if llm.last.JSONMode {
		t.Error("drafting must not request JSON mode")
	}
}

func TestDraft_RefineBranch(t *testing.T) {
	llm := &captureLLM{MockLLM: providers.MockLLM{ResponseText: "refined"}}
	d := New(llm, nil, nil)

	if _, err := d.Draft(context.Background(), &Request{
		RequestText:     "Produce all tax returns.",
		CurrentResponse: "too much work, do 12 months",
	}); err != nil {
		t.Fatalf("Draft() error = %v", err)
	}
	if !strings.Contains(llm.last.User, `"too much work, do 12 months"`) {
		t.Errorf("user prompt missing current response: %q", llm.last.User)
	}
}

func TestDraft_StandardBranch(t *testing.T) {
	llm := &captureLLM{MockLLM: providers.MockLLM{ResponseText: "Respondent will produce."}}
	d := New(llm, nil, nil)

	if _, err := d.Draft(context.Background(), &Request{RequestText: "Produce all bank statements."}); err != nil {
		t.Fatalf("Draft() error = %v", err)
	}
	if !strings.Contains(llm.last.User, "standard, short response") {
		t.Errorf("user prompt should be the standard branch: %q", llm.last.User)
	}
}

func TestDraft_MissingRequestText(t *testing.T) {
	d := New(providers.NewMockLLM("x"), nil, nil)
	_, err := d.Draft(context.Background(), &Request{RequestText: "   "})
	if !errors.Is(err, ErrMissingRequestText) {
		t.Errorf("Draft() error = %v, want ErrMissingRequestText", err)
	}
}

func TestDraft_LLMFailure(t *testing.T) {
	llm := providers.NewMockLLM("x")
	llm.ShouldFail = true
	d := New(llm, nil, nil)

	if _, err := d.Draft(context.Background(), &Request{RequestText: "Produce."}); err == nil {
		t.Error("Draft() should propagate provider failure")
	}
}

func TestDraft_TrimsWhitespace(t *testing.T) {
	llm := providers.NewMockLLM("  drafted text \n")
	d := New(llm, nil, nil)

	got, err := d.Draft(context.Background(), &Request{RequestText: "Produce."})
	if err != nil {
		t.Fatalf("Draft() error = %v", err)
	}
	if got != "drafted text" {
		t.Errorf("Draft() = %q, want trimmed", got)
	}
}
