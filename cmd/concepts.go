package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"

	rendersession "github.com/atelier-sh/atelier/internal/adapters/render/session"
	"github.com/atelier-sh/atelier/internal/domain"
)

func newConceptsCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "concepts",
		Short: "Scan text for concept markers and inspect session state",
	}

	cmd.AddCommand(
		newConceptsScanCmd(app),
		newConceptsStatusCmd(app),
	)

	return cmd
}

func newConceptsScanCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "scan [file]",
		Short: "Scan a file (or stdin) for `cf:` markers and load the referenced documents",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				data []byte
				err  error
			)
			if len(args) == 1 && args[0] != "-" {
				data, err = os.ReadFile(args[0])
			} else {
				data, err = io.ReadAll(cmd.InOrStdin())
			}
			if err != nil {
				return fmt.Errorf("read scan input: %w", err)
			}

			report, err := app.concepts.LoadFromText(cmd.Context(), string(data))
			if err != nil {
				return err
			}

			names := make([]string, 0, len(report.Counts))
			for name := range report.Counts {
				names = append(names, string(name))
			}
			sort.Strings(names)
			for _, name := range names {
				loadedMark := ""
				if _, ok := report.Loaded[domain.ConceptName(name)]; ok {
					loadedMark = " (loaded)"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\tx%d%s\n", name, report.Counts[domain.ConceptName(name)], loadedMark)
			}
			for _, name := range report.Missing {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\tmissing\n", name)
			}

			return nil
		},
	}
}

func newConceptsStatusCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Render the session's concept counts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			concepts, missing := app.concepts.Status()
			out, err := rendersession.Render(concepts, missing)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
}
