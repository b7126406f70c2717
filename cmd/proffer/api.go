package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/profferhq/proffer/internal/api"
	"github.com/profferhq/proffer/internal/server/endpoints"
)

var (
	serverURL string
	apiWait   uint

	// apiWaitDelay is the pause between readiness polls (overridden in tests).
	apiWaitDelay = time.Second
)

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Commands that call the running server",
	Long: `API commands call the running Proffer server via HTTP.

These commands require a running server (proffer serve).
Use --server to specify a custom server URL, and --wait to poll for the
server to come up before running the command (useful right after serve).

Examples:
  proffer api health                    # Check server health
  proffer api documents process <file>  # Upload and segment a document
  proffer api workspaces list           # List open workspaces`,
	// Shadows the root hook, so output format is set here as well.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		api.SetOutputFormat(outputFormat)
		if apiWait == 0 {
			return nil
		}
		return api.NewClient(getServerURL()).WaitForReady(cmd.Context(), apiWait, apiWaitDelay)
	},
}

var documentsCmd = &cobra.Command{
	Use:   "documents",
	Short: "Document intake commands",
}

var responsesCmd = &cobra.Command{
	Use:   "responses",
	Short: "Stateless response drafting commands",
}

var workspacesCmd = &cobra.Command{
	Use:   "workspaces",
	Short: "Workspace management commands",
}

// getServerURL returns the server URL at runtime (after flag parsing).
func getServerURL() string {
	return serverURL
}

func init() {
	// Add --server flag to api command (persistent so all subcommands inherit it)
	apiCmd.PersistentFlags().StringVar(
		&serverURL, "server", "http://localhost:8585", "Server URL",
	)
	apiCmd.PersistentFlags().UintVar(
		&apiWait, "wait", 0, "poll the server this many times until it is ready (0 = fail fast)",
	)

	// Health endpoints at top level of api
	apiCmd.AddCommand((&endpoints.HealthEndpoint{}).Command(getServerURL))
	apiCmd.AddCommand((&endpoints.ReadyEndpoint{}).Command(getServerURL))
	apiCmd.AddCommand((&endpoints.StatusEndpoint{}).Command(getServerURL))

	// Documents as subcommand group
	documentsCmd.AddCommand((&endpoints.ProcessDocumentEndpoint{}).Command(getServerURL))

	// Responses as subcommand group
	responsesCmd.AddCommand((&endpoints.DraftResponseEndpoint{}).Command(getServerURL))
	responsesCmd.AddCommand((&endpoints.ComposeResponseEndpoint{}).Command(getServerURL))
	responsesCmd.AddCommand((&endpoints.ObjectionsEndpoint{}).Command(getServerURL))

	// Workspaces as subcommand group
	for _, ep := range endpoints.WorkspaceCommands() {
		workspacesCmd.AddCommand(ep.Command(getServerURL))
	}

	// Swagger at top level
	apiCmd.AddCommand((&endpoints.SwaggerEndpoint{}).Command(getServerURL))

	apiCmd.AddCommand(documentsCmd)
	apiCmd.AddCommand(responsesCmd)
	apiCmd.AddCommand(workspacesCmd)
	rootCmd.AddCommand(apiCmd)
}
