package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/atelier-sh/atelier/internal/domain"
)

func newGHCmd(app *app) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "gh -- <command> [args...]",
		Short: "Run an allow-listed gh command as the account matching the repo's remote owner",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("gh requires a command after '--'")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			executor := app.newExecutor(app.confirmer)
			if dir == "" {
				dir = app.workDir
			}

			// args pass through as-is; tokens with spaces stay whole.
			result, err := executor.Execute(cmd.Context(), args, dir)
			if err != nil {
				return err
			}

			if result.Declined {
				return domain.ErrConfirmDeclined
			}
			fmt.Fprint(cmd.OutOrStdout(), result.Output)
			if !result.Success {
				return fmt.Errorf("gh exited %d", result.ExitCode)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Checkout directory used to resolve the acting account")

	return cmd
}

func newWhoamiCmd(app *app) *cobra.Command {
	var (
		dir       string
		remoteURL string
	)

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show which GitHub account the current repo resolves to",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				owner string
				err   error
			)
			if remoteURL != "" {
				owner = domain.OwnerFromRemoteURL(remoteURL)
			} else {
				if dir == "" {
					dir = app.workDir
				}
				owner, err = app.identity.ResolveOwner(cmd.Context(), dir)
				if err != nil {
					return err
				}
			}

			account := app.identity.AccountFor(owner)
			if owner == "" {
				owner = "(unknown)"
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "owner: %s\naccount: %s (%s)\n", owner, account.ID, account.User)
			return err
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Checkout directory to inspect")
	cmd.Flags().StringVar(&remoteURL, "remote-url", "", "Resolve from a remote URL instead of a checkout")

	return cmd
}
