// Package draft turns a request for production plus the user's instruction
// into finished legal response text via the configured LLM.
package draft

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/profferhq/proffer/internal/prompts"
	promptdraft "github.com/profferhq/proffer/internal/prompts/draft"
	"github.com/profferhq/proffer/internal/providers"
)

// ErrMissingRequestText is returned when a draft is requested without the
// underlying request text.
var ErrMissingRequestText = fmt.Errorf("request text is required")

// Request describes one drafting call. Exactly one branch is taken:
// ObjectionType wins over CurrentResponse, and with neither set a standard
// will-produce response is drafted.
type Request struct {
	// RequestText is the opposing party's request. Required.
	RequestText string `json:"requestText"`

	// CurrentResponse is the user's rough draft or instruction, e.g.
	// "limit to 12 months" or "too much work".
	CurrentResponse string `json:"currentResponse,omitempty"`

	// ObjectionType is a ground for objection, e.g. "Unduly Burdensome".
	ObjectionType string `json:"objectionType,omitempty"`
}

// Drafter drafts discovery responses through an LLM.
type Drafter struct {
	llm      providers.LLMClient
	registry *providers.Registry
	resolver *prompts.Resolver
	logger   *slog.Logger
}

// New creates a drafter with a fixed LLM client. resolver may be nil, in
// which case a private one with the embedded defaults is used.
func New(llm providers.LLMClient, resolver *prompts.Resolver, logger *slog.Logger) *Drafter {
	if logger == nil {
		logger = slog.Default()
	}
	if resolver == nil {
		resolver = prompts.NewResolver(logger)
		promptdraft.RegisterPrompts(resolver)
	}
	return &Drafter{
		llm:      llm,
		resolver: resolver,
		logger:   logger,
	}
}

// NewWithRegistry creates a drafter that resolves its LLM from the registry
// on every call, so a config hot-reload takes effect immediately.
func NewWithRegistry(registry *providers.Registry, resolver *prompts.Resolver, logger *slog.Logger) *Drafter {
	d := New(nil, resolver, logger)
	d.registry = registry
	return d
}

// currentLLM resolves the LLM client for this call.
func (d *Drafter) currentLLM() providers.LLMClient {
	if d.registry != nil {
		return d.registry.DefaultLLM()
	}
	return d.llm
}

// Draft produces the response text for one request. The returned text fully
// replaces any existing draft; on error the caller keeps what it had.
func (d *Drafter) Draft(ctx context.Context, req *Request) (string, error) {
	if strings.TrimSpace(req.RequestText) == "" {
		return "", ErrMissingRequestText
	}
	llm := d.currentLLM()
	if llm == nil {
		return "", fmt.Errorf("no LLM client configured")
	}

	system, err := d.resolver.Resolve(promptdraft.SystemPromptKey)
	if err != nil {
		return "", fmt.Errorf("failed to resolve system prompt: %w", err)
	}

	var user, branch string
	switch {
	case req.ObjectionType != "":
		user = promptdraft.ObjectionUserPrompt(req.RequestText, req.ObjectionType)
		branch = "objection"
	case req.CurrentResponse != "":
		user = promptdraft.RefineUserPrompt(req.RequestText, req.CurrentResponse)
		branch = "refine"
	default:
		user = promptdraft.StandardUserPrompt(req.RequestText)
		branch = "standard"
	}

	result, err := llm.Chat(ctx, &providers.ChatRequest{
		System:      system.Text,
		User:        user,
		Temperature: promptdraft.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("drafting failed: %w", err)
	}
	if !result.Success || strings.TrimSpace(result.Content) == "" {
		return "", fmt.Errorf("drafting returned no text")
	}

	d.logger.Debug("drafted response",
		"branch", branch,
		"model", result.ModelUsed,
		"tokens", result.TotalTokens,
		"duration", result.ExecutionTime)

	return strings.TrimSpace(result.Content), nil
}
