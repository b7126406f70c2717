// Package pipeline turns an uploaded discovery document into extracted text
// and a list of individual requests for production.
//
// The path through the pipeline degrades gracefully: hosted parsing plus LLM
// cleanup when both providers are configured, hosted parsing plus regex
// segmentation when only the parser is, and fully local extraction plus
// regex segmentation otherwise. A provider failure never fails the upload;
// it falls through to the next rung.
package pipeline

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/profferhq/proffer/internal/extract"
	"github.com/profferhq/proffer/internal/prompts"
	"github.com/profferhq/proffer/internal/prompts/cleanup"
	"github.com/profferhq/proffer/internal/providers"
	"github.com/profferhq/proffer/internal/segment"
	"github.com/profferhq/proffer/internal/textutil"
)

// Source records which rung of the fallback ladder produced the result.
type Source string

const (
	// SourceRemoteLLM is hosted parsing with LLM cleanup and extraction.
	SourceRemoteLLM Source = "remote+llm"

	// SourceRemoteRegex is hosted parsing with regex segmentation.
	SourceRemoteRegex Source = "remote+regex"

	// SourceLocal is local extraction with regex segmentation.
	SourceLocal Source = "local"
)

// Result is the outcome of processing one document.
type Result struct {
	Text     string                `json:"text"`
	Requests []segment.RequestItem `json:"requests"`
	Source   Source                `json:"source"`
}

// Pipeline orchestrates document processing. Either provider may be nil;
// the pipeline routes around whatever is missing.
type Pipeline struct {
	parser   providers.DocumentParser
	llm      providers.LLMClient
	registry *providers.Registry
	resolver *prompts.Resolver
	logger   *slog.Logger
}

// New creates a pipeline with fixed providers. parser and llm may be nil.
func New(parser providers.DocumentParser, llm providers.LLMClient, resolver *prompts.Resolver, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	if resolver == nil {
		resolver = prompts.NewResolver(logger)
		cleanup.RegisterPrompts(resolver)
	}
	return &Pipeline{
		parser:   parser,
		llm:      llm,
		resolver: resolver,
		logger:   logger,
	}
}

// NewWithRegistry creates a pipeline that resolves providers from the
// registry on every call, so a config hot-reload takes effect immediately.
func NewWithRegistry(registry *providers.Registry, resolver *prompts.Resolver, logger *slog.Logger) *Pipeline {
	p := New(nil, nil, resolver, logger)
	p.registry = registry
	return p
}

// currentProviders resolves the parser and LLM for this call.
func (p *Pipeline) currentProviders() (providers.DocumentParser, providers.LLMClient) {
	if p.registry != nil {
		return p.registry.DefaultParser(), p.registry.DefaultLLM()
	}
	return p.parser, p.llm
}

// Process extracts text and requests from an uploaded document.
func (p *Pipeline) Process(ctx context.Context, doc *providers.Document) (*Result, error) {
	parser, llm := p.currentProviders()

	kind := extract.DetectKind(doc.FileName, doc.MediaType)
	useRemote := parser != nil && (kind == extract.KindPDF || kind == extract.KindDOCX)

	if useRemote {
		if result, ok := p.processRemote(ctx, doc, parser, llm); ok {
			return result, nil
		}
		p.logger.Warn("remote parsing failed, falling back to local extraction",
			"file", doc.FileName)
	}

	return p.processLocal(doc)
}

// processRemote runs the hosted parser and, when an LLM is configured, the
// cleanup pass. Returns ok=false if the hosted parser itself failed.
func (p *Pipeline) processRemote(ctx context.Context, doc *providers.Document, parser providers.DocumentParser, llm providers.LLMClient) (*Result, bool) {
	parsed, err := parser.Parse(ctx, doc)
	if err != nil || !parsed.Success {
		return nil, false
	}

	text := textutil.Normalize(parsed.Text)

	if llm != nil {
		if result, ok := p.cleanupWithLLM(ctx, llm, text); ok {
			return result, true
		}
		p.logger.Warn("LLM cleanup failed, falling back to regex segmentation",
			"file", doc.FileName)
	}

	return &Result{
		Text:     text,
		Requests: segment.Dedupe(segment.Split(text)),
		Source:   SourceRemoteRegex,
	}, true
}

// cleanupOutput mirrors the JSON contract of the cleanup prompt.
type cleanupOutput struct {
	Requests        []segment.RequestItem `json:"requests"`
	CleanedFullText string                `json:"cleaned_full_text"`
}

// cleanupWithLLM asks the model to strip artifacts and extract requests.
// Returns ok=false on any provider, schema, or empty-output failure; the
// caller regex-segments the uncleaned text instead.
func (p *Pipeline) cleanupWithLLM(ctx context.Context, llm providers.LLMClient, text string) (*Result, bool) {
	system, err := p.resolver.Resolve(cleanup.SystemPromptKey)
	if err != nil {
		return nil, false
	}

	chat, err := llm.Chat(ctx, &providers.ChatRequest{
		System:   system.Text,
		User:     cleanup.UserPrompt(text),
		JSONMode: true,
	})
	if err != nil || !chat.Success || chat.ParsedJSON == nil {
		return nil, false
	}

	// Schema check before trusting the output shape.
	var generic any
	if err := json.Unmarshal(chat.ParsedJSON, &generic); err != nil {
		return nil, false
	}
	if err := cleanup.OutputSchema.Validate(generic); err != nil {
		p.logger.Warn("cleanup output failed schema validation", "error", err)
		return nil, false
	}

	var out cleanupOutput
	if err := json.Unmarshal(chat.ParsedJSON, &out); err != nil {
		return nil, false
	}
	if len(out.Requests) == 0 {
		return nil, false
	}

	if out.CleanedFullText != "" {
		text = textutil.Normalize(out.CleanedFullText)
	}

	return &Result{
		Text:     text,
		Requests: segment.Dedupe(out.Requests),
		Source:   SourceRemoteLLM,
	}, true
}

// processLocal extracts text without any hosted service.
func (p *Pipeline) processLocal(doc *providers.Document) (*Result, error) {
	text, err := extract.FromFile(doc.FileName, doc.MediaType, doc.Data)
	if err != nil {
		return nil, err
	}

	return &Result{
		Text:     text,
		Requests: segment.Dedupe(segment.Split(text)),
		Source:   SourceLocal,
	}, nil
}
