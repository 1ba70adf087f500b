// Package gh runs the GitHub CLI with an account's isolated credential
// scope injected via GH_CONFIG_DIR.
package gh

import (
	"context"

	"github.com/atelier-sh/atelier/internal/domain"
	"github.com/atelier-sh/atelier/internal/ports"
)

type CLI struct {
	runner ports.Runner
	binary string
}

var _ ports.GHRunner = CLI{}

func NewCLI(runner ports.Runner) CLI {
	return CLI{runner: runner, binary: "gh"}
}

func (c CLI) Run(ctx context.Context, account domain.Account, argv []string, dir string) (ports.RunResult, error) {
	return c.runner.Run(ctx, ports.RunSpec{
		Name: c.binary,
		Args: argv,
		Dir:  dir,
		Env:  []string{"GH_CONFIG_DIR=" + account.ConfigDir},
	})
}
