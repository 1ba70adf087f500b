package ports

import "context"

// Confirmer asks the user to approve a destructive action. A false result
// with nil error is an explicit decline, not a failure.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}
