package cmd

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	var debug bool

	rootCmd := &cobra.Command{
		Use:           "atelier",
		Short:         "atelier: gated GitHub identity, concept loading, and workspace launching for agent sessions",
		Long:          "atelier wraps the gh CLI behind a command allow-list with per-repo account switching, loads `cf:` concept documents referenced in text, and opens tmux workspace windows running a coding agent.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				log.SetLevel(log.DebugLevel)
				log.Debug("debug logging enabled")
			}
		},
	}
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newGHCmd(app),
		newWhoamiCmd(app),
		newConceptsCmd(app),
		newWorkspaceCmd(app),
		newServeCmd(app),
	)

	return rootCmd
}
