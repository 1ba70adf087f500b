package ports

import "context"

// RunSpec describes one subprocess invocation.
type RunSpec struct {
	Name string
	Args []string
	Dir  string
	Env  []string // appended to the inherited environment
}

// RunResult carries the merged stdout/stderr stream and the exit code of a
// finished subprocess. ExitCode is meaningful even when the run failed.
type RunResult struct {
	Output   string
	ExitCode int
}

// Runner executes external binaries. Implementations must honor context
// cancellation by killing the child and returning domain.ErrRunCanceled.
type Runner interface {
	Run(ctx context.Context, spec RunSpec) (RunResult, error)
}
