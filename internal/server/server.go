package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/profferhq/proffer/internal/api"
	"github.com/profferhq/proffer/internal/config"
	"github.com/profferhq/proffer/internal/draft"
	"github.com/profferhq/proffer/internal/home"
	"github.com/profferhq/proffer/internal/pipeline"
	"github.com/profferhq/proffer/internal/prompts"
	promptcleanup "github.com/profferhq/proffer/internal/prompts/cleanup"
	promptdraft "github.com/profferhq/proffer/internal/prompts/draft"
	"github.com/profferhq/proffer/internal/providers"
	"github.com/profferhq/proffer/internal/server/endpoints"
	"github.com/profferhq/proffer/internal/svcctx"
	"github.com/profferhq/proffer/internal/workspace"
)

// Server is the main Proffer HTTP server. All state lives in memory;
// providers are optional and reloaded on config change.
type Server struct {
	httpServer *http.Server
	registry   *providers.Registry
	resolver   *prompts.Resolver
	workspaces *workspace.Store
	configMgr  *config.Manager
	homeDir    *home.Dir
	logger     *slog.Logger

	// services holds all core services for context enrichment
	services *svcctx.Services

	// endpoints registry for HTTP routes
	endpointRegistry *api.Registry

	mu      sync.RWMutex
	running bool
}

// Config holds server configuration.
type Config struct {
	// Host is the address to bind to (default: localhost)
	Host string
	// Port is the port to listen on (default: 8585)
	Port int
	// HomePath overrides the home directory (default: ~/.proffer)
	HomePath string
	// ConfigManager provides configuration with hot-reload support
	ConfigManager *config.Manager
	// Logger is the structured logger to use
	Logger *slog.Logger
	// SwaggerSpecPath overrides the swagger.json location
	SwaggerSpecPath string
}

// New creates a new Server with the given configuration.
func New(cfg Config) (*Server, error) {
	if cfg.Host == "" {
		cfg.Host = "localhost"
	}
	if cfg.Port == 0 {
		cfg.Port = 8585
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	homeDir, err := home.New(cfg.HomePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve home directory: %w", err)
	}
	if err := homeDir.EnsureExists(); err != nil {
		return nil, err
	}

	// Prompt resolver with embedded defaults
	resolver := prompts.NewResolver(cfg.Logger)
	promptcleanup.RegisterPrompts(resolver)
	promptdraft.RegisterPrompts(resolver)

	// Create provider registry
	registry := providers.NewRegistry()
	registry.SetLogger(cfg.Logger)

	// If config manager provided, set up providers, prompt overrides,
	// and hot reload
	if cfg.ConfigManager != nil {
		c := cfg.ConfigManager.Get()
		registry.Reload(c.ToProviderRegistryConfig())
		resolver.SetOverrides(c.Prompts)

		cfg.ConfigManager.OnChange(func(c *config.Config) {
			registry.Reload(c.ToProviderRegistryConfig())
			resolver.SetOverrides(c.Prompts)
			cfg.Logger.Info("providers and prompts reloaded from config")
		})
	}

	s := &Server{
		registry:   registry,
		resolver:   resolver,
		workspaces: workspace.NewStore(),
		configMgr:  cfg.ConfigManager,
		homeDir:    homeDir,
		logger:     cfg.Logger,
	}

	s.services = &svcctx.Services{
		Registry:      registry,
		Pipeline:      pipeline.NewWithRegistry(registry, resolver, cfg.Logger),
		Drafter:       draft.NewWithRegistry(registry, resolver, cfg.Logger),
		Workspaces:    s.workspaces,
		Prompts:       resolver,
		ConfigManager: cfg.ConfigManager,
		Logger:        cfg.Logger,
		Home:          homeDir,
	}

	// Create endpoint registry and register all endpoints
	s.endpointRegistry = api.NewRegistry()
	for _, ep := range endpoints.All(endpoints.Config{SwaggerSpecPath: cfg.SwaggerSpecPath}) {
		s.endpointRegistry.Register(ep)
	}

	// Set up HTTP server
	mux := http.NewServeMux()
	s.registerRoutes(mux)
	s.endpointRegistry.RegisterRoutes(mux)

	s.httpServer = &http.Server{
		Addr:         net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Handler:      s.withServices(mux),
		ReadTimeout:  5 * time.Minute,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	return s, nil
}

// Start starts the server. It blocks until the context is cancelled or an
// error occurs. Providers are optional: without them the server still runs
// and upload falls back to local segmentation.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return errors.New("server already running")
	}
	s.running = true
	s.mu.Unlock()

	s.warnDegradedEndpoints()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			s.setNotRunning()
			return fmt.Errorf("HTTP server error: %w", err)
		}
	}

	return s.shutdown()
}

// warnDegradedEndpoints logs a startup warning when provider-backed
// endpoints will run without any provider registered.
func (s *Server) warnDegradedEndpoints() {
	if len(s.registry.ListParsers()) > 0 || len(s.registry.ListLLMs()) > 0 {
		return
	}
	for _, ep := range s.endpointRegistry.Endpoints() {
		if ep.RequiresProviders() {
			method, path, _ := ep.Route()
			s.logger.Warn("no providers configured, endpoint degraded",
				"method", method, "path", path)
		}
	}
}

// shutdown performs graceful shutdown of the HTTP server.
func (s *Server) shutdown() error {
	s.logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("HTTP server shutdown error", "error", err)
	}

	s.setNotRunning()
	s.logger.Info("server stopped")
	return nil
}

func (s *Server) setNotRunning() {
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
}

// IsRunning returns whether the server is currently running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Addr returns the server's listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Registry returns the provider registry.
func (s *Server) Registry() *providers.Registry {
	return s.registry
}

// Workspaces returns the workspace store.
func (s *Server) Workspaces() *workspace.Store {
	return s.workspaces
}

// Handler returns the fully wired HTTP handler. Useful for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// withServices wraps a handler to enrich the request context with services.
func (s *Server) withServices(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if s.services != nil {
			ctx = svcctx.WithServices(ctx, s.services)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
