// Package execrunner implements the Runner port over os/exec with merged
// output capture and cancellation-aware failure classification.
package execrunner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/atelier-sh/atelier/internal/domain"
	"github.com/atelier-sh/atelier/internal/ports"
)

type Runner struct{}

var _ ports.Runner = Runner{}

func New() Runner {
	return Runner{}
}

// Run executes the binary with stdout and stderr merged into one stream.
// A context-triggered kill surfaces domain.ErrRunCanceled; a plain non-zero
// exit is not an error here, it is reported through RunResult.ExitCode.
func (Runner) Run(ctx context.Context, spec ports.RunSpec) (ports.RunResult, error) {
	cmd := exec.CommandContext(ctx, spec.Name, spec.Args...)
	cmd.Dir = spec.Dir
	if len(spec.Env) > 0 {
		cmd.Env = append(os.Environ(), spec.Env...)
	}

	output, err := cmd.CombinedOutput()
	result := ports.RunResult{Output: string(output)}

	if ctxErr := ctx.Err(); ctxErr != nil {
		result.ExitCode = -1
		return result, fmt.Errorf("%w: %s", domain.ErrRunCanceled, ctxErr)
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return result, fmt.Errorf("start %s: %w", spec.Name, err)
	}

	return result, nil
}
