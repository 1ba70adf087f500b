package ports

import (
	"context"

	"github.com/atelier-sh/atelier/internal/domain"
)

// ConceptSource loads concept documents by name. Load returns
// domain.ErrConceptNotFound when no document exists for the name.
type ConceptSource interface {
	Load(ctx context.Context, name domain.ConceptName) (string, error)
}
