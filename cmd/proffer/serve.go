package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/profferhq/proffer/internal/config"
	"github.com/profferhq/proffer/internal/server"
	"github.com/profferhq/proffer/internal/server/endpoints"
)

var (
	serveHost string
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Proffer server",
	Long: `Start the Proffer HTTP server.

The server runs entirely in memory. External providers (Reducto parsing,
OpenAI drafting) are optional: with no API keys configured, uploads fall
back to local segmentation and AI drafting is unavailable.

The server provides:
  - /health  - Basic server health check
  - /ready   - Readiness check (includes provider status)
  - /api/... - Document intake, drafting, and workspace API

Examples:
  proffer serve                    # Start on default port 8585
  proffer serve --port 3000        # Start on custom port
  proffer serve --host 0.0.0.0     # Bind to all interfaces`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		// Set up logger
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))

		// Load config with hot reload
		configMgr, err := config.NewManager(cfgFile)
		if err != nil {
			return err
		}
		configMgr.WatchConfig()

		cfg := configMgr.Get()
		host := serveHost
		if !cmd.Flags().Changed("host") && cfg.Server.Host != "" {
			host = cfg.Server.Host
		}
		port := servePort
		if !cmd.Flags().Changed("port") && cfg.Server.Port != 0 {
			port = cfg.Server.Port
		}

		srv, err := server.New(server.Config{
			Host:            host,
			Port:            port,
			HomePath:        homeDir,
			ConfigManager:   configMgr,
			Logger:          logger,
			SwaggerSpecPath: endpoints.GetSwaggerSpecPath(),
		})
		if err != nil {
			return err
		}

		// Start server (blocks until shutdown)
		return srv.Start(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "localhost", "Host to bind to")
	serveCmd.Flags().IntVar(&servePort, "port", 8585, "Port to listen on")

	rootCmd.AddCommand(serveCmd)
}
