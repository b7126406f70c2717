package providers

import (
	"fmt"
	"log/slog"
	"sync"
)

// Registry holds the configured parsing and LLM providers. It supports
// config-driven instantiation, hot-reload, and thread-safe access.
type Registry struct {
	mu      sync.RWMutex
	parsers map[string]DocumentParser
	llms    map[string]LLMClient
	logger  *slog.Logger
}

// NewRegistry creates a new empty provider registry.
func NewRegistry() *Registry {
	return &Registry{
		parsers: make(map[string]DocumentParser),
		llms:    make(map[string]LLMClient),
		logger:  slog.Default(),
	}
}

// SetLogger sets the logger for the registry.
func (r *Registry) SetLogger(logger *slog.Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logger = logger
}

// RegisterParser registers a document parser by name.
func (r *Registry) RegisterParser(name string, parser DocumentParser) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.parsers[name] = parser
	if r.logger != nil {
		r.logger.Info("registered document parser", "name", name)
	}
}

// RegisterLLM registers an LLM client by name.
func (r *Registry) RegisterLLM(name string, client LLMClient) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.llms[name] = client
	if r.logger != nil {
		r.logger.Info("registered LLM client", "name", name)
	}
}

// GetParser returns a document parser by name.
func (r *Registry) GetParser(name string) (DocumentParser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	parser, ok := r.parsers[name]
	if !ok {
		return nil, fmt.Errorf("document parser not found: %s", name)
	}
	return parser, nil
}

// GetLLM returns an LLM client by name.
func (r *Registry) GetLLM(name string) (LLMClient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	client, ok := r.llms[name]
	if !ok {
		return nil, fmt.Errorf("LLM client not found: %s", name)
	}
	return client, nil
}

// DefaultParser returns the configured document parser, or nil when none is
// registered. Call sites treat nil as "local extraction only".
func (r *Registry) DefaultParser() DocumentParser {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if parser, ok := r.parsers[ReductoName]; ok {
		return parser
	}
	for _, parser := range r.parsers {
		return parser
	}
	return nil
}

// DefaultLLM returns the configured LLM client, or nil when none is
// registered.
func (r *Registry) DefaultLLM() LLMClient {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if client, ok := r.llms[OpenAIName]; ok {
		return client
	}
	for _, client := range r.llms {
		return client
	}
	return nil
}

// HasParser checks if a document parser is registered.
func (r *Registry) HasParser(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.parsers[name]
	return ok
}

// HasLLM checks if an LLM client is registered.
func (r *Registry) HasLLM(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.llms[name]
	return ok
}

// ListParsers returns all registered document parser names.
func (r *Registry) ListParsers() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.parsers))
	for name := range r.parsers {
		names = append(names, name)
	}
	return names
}

// ListLLMs returns all registered LLM client names.
func (r *Registry) ListLLMs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.llms))
	for name := range r.llms {
		names = append(names, name)
	}
	return names
}

// RegistryConfig defines the providers to instantiate from config, with
// ${ENV_VAR} references already resolved into real API keys.
type RegistryConfig struct {
	Reducto ReductoProviderConfig
	OpenAI  OpenAIProviderConfig
}

// ReductoProviderConfig configures the hosted parsing provider.
type ReductoProviderConfig struct {
	APIKey    string
	BaseURL   string
	ChunkMode string
	Enabled   bool
}

// OpenAIProviderConfig configures the LLM provider.
type OpenAIProviderConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Enabled bool
}

// NewRegistryFromConfig creates a registry with providers based on
// configuration. Only enabled providers with API keys are registered.
func NewRegistryFromConfig(cfg RegistryConfig) *Registry {
	r := NewRegistry()
	r.Reload(cfg)
	return r
}

// Reload updates the registry based on new configuration. Providers that
// lose their key or enabled flag are unregistered.
func (r *Registry) Reload(cfg RegistryConfig) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cfg.Reducto.Enabled && cfg.Reducto.APIKey != "" {
		r.parsers[ReductoName] = NewReductoClient(ReductoConfig{
			APIKey:    cfg.Reducto.APIKey,
			BaseURL:   cfg.Reducto.BaseURL,
			ChunkMode: cfg.Reducto.ChunkMode,
		})
		if r.logger != nil {
			r.logger.Info("registered document parser", "name", ReductoName)
		}
	} else if _, ok := r.parsers[ReductoName]; ok {
		delete(r.parsers, ReductoName)
		if r.logger != nil {
			r.logger.Info("unregistered document parser", "name", ReductoName)
		}
	}

	if cfg.OpenAI.Enabled && cfg.OpenAI.APIKey != "" {
		r.llms[OpenAIName] = NewOpenAIClient(OpenAIConfig{
			APIKey:  cfg.OpenAI.APIKey,
			Model:   cfg.OpenAI.Model,
			BaseURL: cfg.OpenAI.BaseURL,
		})
		if r.logger != nil {
			r.logger.Info("registered LLM client", "name", OpenAIName)
		}
	} else if _, ok := r.llms[OpenAIName]; ok {
		delete(r.llms, OpenAIName)
		if r.logger != nil {
			r.logger.Info("unregistered LLM client", "name", OpenAIName)
		}
	}
}
