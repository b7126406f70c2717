// Package svcctx provides service context for dependency injection via context.
// This package is separate from server to avoid import cycles with endpoints.
package svcctx

import (
	"context"
	"log/slog"

	"github.com/profferhq/proffer/internal/config"
	"github.com/profferhq/proffer/internal/draft"
	"github.com/profferhq/proffer/internal/home"
	"github.com/profferhq/proffer/internal/pipeline"
	"github.com/profferhq/proffer/internal/prompts"
	"github.com/profferhq/proffer/internal/providers"
	"github.com/profferhq/proffer/internal/workspace"
)

// Services holds all core services that flow through context.
// Components extract what they need via the individual extractors.
type Services struct {
	Registry      *providers.Registry
	Pipeline      *pipeline.Pipeline
	Drafter       *draft.Drafter
	Workspaces    *workspace.Store
	Prompts       *prompts.Resolver
	ConfigManager *config.Manager
	Logger        *slog.Logger
	Home          *home.Dir
}

type servicesKey struct{}

// WithServices returns a new context with services attached.
func WithServices(ctx context.Context, s *Services) context.Context {
	return context.WithValue(ctx, servicesKey{}, s)
}

// ServicesFrom extracts the full Services struct from context.
// Returns nil if not present.
func ServicesFrom(ctx context.Context) *Services {
	s, _ := ctx.Value(servicesKey{}).(*Services)
	return s
}

// RegistryFrom extracts the provider registry from context.
func RegistryFrom(ctx context.Context) *providers.Registry {
	if s := ServicesFrom(ctx); s != nil {
		return s.Registry
	}
	return nil
}

// PipelineFrom extracts the document pipeline from context.
func PipelineFrom(ctx context.Context) *pipeline.Pipeline {
	if s := ServicesFrom(ctx); s != nil {
		return s.Pipeline
	}
	return nil
}

// DrafterFrom extracts the response drafter from context.
func DrafterFrom(ctx context.Context) *draft.Drafter {
	if s := ServicesFrom(ctx); s != nil {
		return s.Drafter
	}
	return nil
}

// WorkspacesFrom extracts the workspace store from context.
func WorkspacesFrom(ctx context.Context) *workspace.Store {
	if s := ServicesFrom(ctx); s != nil {
		return s.Workspaces
	}
	return nil
}

// PromptsFrom extracts the prompt resolver from context.
func PromptsFrom(ctx context.Context) *prompts.Resolver {
	if s := ServicesFrom(ctx); s != nil {
		return s.Prompts
	}
	return nil
}

// ConfigManagerFrom extracts the config manager from context.
func ConfigManagerFrom(ctx context.Context) *config.Manager {
	if s := ServicesFrom(ctx); s != nil {
		return s.ConfigManager
	}
	return nil
}

// LoggerFrom extracts the logger from context.
func LoggerFrom(ctx context.Context) *slog.Logger {
	if s := ServicesFrom(ctx); s != nil {
		return s.Logger
	}
	return nil
}

// HomeFrom extracts the home directory from context.
func HomeFrom(ctx context.Context) *home.Dir {
	if s := ServicesFrom(ctx); s != nil {
		return s.Home
	}
	return nil
}
