package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/atelier-sh/atelier/internal/domain"
	"github.com/atelier-sh/atelier/internal/ports"
)

// ExecResult is the structured outcome of a gated gh invocation. Declined
// marks a user-aborted confirmation: unsuccessful, but explicitly not to be
// retried through an alternate path.
type ExecResult struct {
	Account  domain.AccountID
	Output   string
	ExitCode int
	Success  bool
	Declined bool
}

// confirmPending is process-wide: at most one confirmation prompt may be
// outstanding no matter how many executors exist. A second concurrent
// request is rejected immediately rather than queued.
var confirmPending atomic.Bool

// GHExecutor runs the gate -> identity -> subprocess pipeline.
type GHExecutor struct {
	gate      *Gate
	identity  *IdentityService
	runner    ports.GHRunner
	confirmer ports.Confirmer
}

func NewGHExecutor(gate *Gate, identity *IdentityService, runner ports.GHRunner, confirmer ports.Confirmer) *GHExecutor {
	return &GHExecutor{
		gate:      gate,
		identity:  identity,
		runner:    runner,
		confirmer: confirmer,
	}
}

// Execute validates argv against the allow-list, resolves the acting
// account from the checkout at dir, and runs the command. Argv tokens pass
// through to the subprocess verbatim. Validation failures and cancellation
// return an error; a non-zero exit is reported in the result, never
// escalated and never retried.
func (e *GHExecutor) Execute(ctx context.Context, argv []string, dir string) (ExecResult, error) {
	decision, err := e.gate.Check(argv)
	if err != nil {
		return ExecResult{}, err
	}

	account, err := e.identity.Resolve(ctx, dir)
	if err != nil {
		return ExecResult{}, err
	}
	if !account.Configured() {
		return ExecResult{}, fmt.Errorf("%w: %s", domain.ErrAccountUnconfigured, account.ID)
	}

	if decision.Confirm {
		approved, err := e.confirm(ctx, decision)
		if err != nil {
			return ExecResult{}, err
		}
		if !approved {
			return ExecResult{
				Account:  account.ID,
				Output:   domain.ErrConfirmDeclined.Error(),
				ExitCode: 1,
				Declined: true,
			}, nil
		}
	}

	log.Debug("running gh", "account", account.ID, "argv", strings.Join(decision.Cmd.Argv, " "))
	result, err := e.runner.Run(ctx, account, decision.Cmd.Argv, dir)
	if err != nil {
		if errors.Is(err, domain.ErrRunCanceled) {
			return ExecResult{Account: account.ID, Output: result.Output, ExitCode: result.ExitCode}, err
		}
		return ExecResult{}, fmt.Errorf("run gh: %w", err)
	}

	return ExecResult{
		Account:  account.ID,
		Output:   result.Output,
		ExitCode: result.ExitCode,
		Success:  result.ExitCode == 0,
	}, nil
}

func (e *GHExecutor) confirm(ctx context.Context, decision Decision) (bool, error) {
	if !confirmPending.CompareAndSwap(false, true) {
		return false, domain.ErrConfirmPending
	}
	defer confirmPending.Store(false)

	prompt := fmt.Sprintf("Allow %s %s?", decision.Cmd.Method, decision.Cmd.Endpoint)
	approved, err := e.confirmer.Confirm(ctx, prompt)
	if err != nil {
		return false, fmt.Errorf("confirm command: %w", err)
	}
	return approved, nil
}
