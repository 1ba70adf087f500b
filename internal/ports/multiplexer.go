package ports

import "context"

// Multiplexer is the terminal-multiplexer boundary. InsideSession reports
// whether the current process runs inside a multiplexer session; opening a
// window is only valid when it does.
type Multiplexer interface {
	InsideSession() bool
	NewWindow(ctx context.Context, name, dir string, command []string) error
}
