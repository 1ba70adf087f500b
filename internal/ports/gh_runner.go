package ports

import (
	"context"

	"github.com/atelier-sh/atelier/internal/domain"
)

// GHRunner runs a validated gh invocation under a specific account's
// credential scope.
type GHRunner interface {
	Run(ctx context.Context, account domain.Account, argv []string, dir string) (RunResult, error)
}
