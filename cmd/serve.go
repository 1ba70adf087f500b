package cmd

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/atelier-sh/atelier/internal/adapters/confirm"
	atelmcp "github.com/atelier-sh/atelier/internal/mcp"
	"github.com/atelier-sh/atelier/internal/version"
)

func newServeCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve atelier operations as MCP tools over stdio",
		RunE: func(cmd *cobra.Command, _ []string) error {
			// No terminal is attached in serve mode; mutating API calls
			// are auto-declined unless the config opts in.
			executor := app.newExecutor(confirm.Static(app.cfg.AutoConfirm))

			server := atelmcp.NewServer(version.Version, app.workDir, executor, app.concepts, app.workspaces)
			log.Debug("serving MCP over stdio")
			return server.Run(cmd.Context())
		},
	}
}
