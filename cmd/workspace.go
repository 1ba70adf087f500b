package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/atelier-sh/atelier/internal/application"
	"github.com/atelier-sh/atelier/internal/domain"
)

func newWorkspaceCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workspace",
		Short: "Manage agent workspace windows",
	}

	cmd.AddCommand(newWorkspaceOpenCmd(app))

	return cmd
}

func newWorkspaceOpenCmd(app *app) *cobra.Command {
	var (
		model    string
		thinking string
		context  string
		prompt   string
		orient   bool
	)

	cmd := &cobra.Command{
		Use:   "open <owner/repo>",
		Short: "Open a tmux window at the repo's checkout and start the agent there",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := domain.ParseRepoRef(args[0])
			if err != nil {
				return err
			}

			if model == "" {
				model = app.cfg.DefaultModel
			}
			if thinking == "" {
				thinking = app.cfg.DefaultThinking
			}

			message, err := app.workspaces.Open(cmd.Context(), application.OpenParams{
				Repo:     repo,
				Model:    model,
				Thinking: thinking,
				Context:  context,
				Prompt:   prompt,
				Orient:   orient,
			})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), message)
			return err
		},
	}

	cmd.Flags().StringVar(&model, "model", "", "Model for the agent session")
	cmd.Flags().StringVar(&thinking, "thinking", "", "Thinking configuration for the agent session")
	cmd.Flags().StringVar(&context, "context", "", "Label appended to the window name")
	cmd.Flags().StringVar(&prompt, "prompt", "", "Seed prompt for the new session")
	cmd.Flags().BoolVar(&orient, "orient", false, "Prepend an orientation preamble to the seed prompt")

	return cmd
}
