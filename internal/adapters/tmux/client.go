// Package tmux drives the terminal multiplexer through its CLI.
package tmux

import (
	"context"
	"fmt"
	"os"

	"github.com/atelier-sh/atelier/internal/ports"
)

type Client struct {
	runner ports.Runner
}

var _ ports.Multiplexer = Client{}

func NewClient(runner ports.Runner) Client {
	return Client{runner: runner}
}

// InsideSession reports whether the current process runs inside tmux.
func (Client) InsideSession() bool {
	return os.Getenv("TMUX") != ""
}

// NewWindow opens a named window rooted at dir and runs command in it.
func (c Client) NewWindow(ctx context.Context, name, dir string, command []string) error {
	args := append([]string{"new-window", "-n", name, "-c", dir}, command...)
	result, err := c.runner.Run(ctx, ports.RunSpec{Name: "tmux", Args: args})
	if err != nil {
		return err
	}
	if result.ExitCode != 0 {
		return fmt.Errorf("tmux new-window exited %d: %s", result.ExitCode, result.Output)
	}
	return nil
}
