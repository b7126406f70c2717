package endpoints

import (
	"github.com/profferhq/proffer/internal/api"
)

// Config holds dependencies needed by some endpoints.
type Config struct {
	SwaggerSpecPath string
}

// All returns all endpoint instances.
func All(cfg Config) []api.Endpoint {
	return []api.Endpoint{
		// Health endpoints
		&HealthEndpoint{},
		&ReadyEndpoint{},
		&StatusEndpoint{},

		// Document intake
		&ProcessDocumentEndpoint{},

		// Response drafting
		&DraftResponseEndpoint{},
		&ComposeResponseEndpoint{},
		&ObjectionsEndpoint{},

		// Workspace endpoints
		&CreateWorkspaceEndpoint{},
		&ListWorkspacesEndpoint{},
		&GetWorkspaceEndpoint{},
		&DeleteWorkspaceEndpoint{},
		&UpdateResponseEndpoint{},
		&WorkspaceDraftEndpoint{},
		&ExportWorkspaceEndpoint{},

		// Swagger/OpenAPI endpoints
		&SwaggerEndpoint{SpecPath: cfg.SwaggerSpecPath},
		&SwaggerUIEndpoint{},
	}
}

// WorkspaceCommands groups workspace operations under a "workspaces"
// subcommand.
func WorkspaceCommands() []api.Endpoint {
	return []api.Endpoint{
		&CreateWorkspaceEndpoint{},
		&ListWorkspacesEndpoint{},
		&GetWorkspaceEndpoint{},
		&DeleteWorkspaceEndpoint{},
		&UpdateResponseEndpoint{},
		&WorkspaceDraftEndpoint{},
		&ExportWorkspaceEndpoint{},
	}
}
