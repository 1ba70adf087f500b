// Package fs loads concept documents from a flat directory of markdown
// files named <identifier>.md.
package fs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/atelier-sh/atelier/internal/domain"
	"github.com/atelier-sh/atelier/internal/ports"
)

type Source struct {
	dir string
}

var _ ports.ConceptSource = Source{}

func NewSource(dir string) Source {
	return Source{dir: dir}
}

func (s Source) Load(ctx context.Context, name domain.ConceptName) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := os.ReadFile(filepath.Join(s.dir, string(name)+".md"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", domain.ErrConceptNotFound, name)
		}
		return "", fmt.Errorf("read concept file: %w", err)
	}
	return string(data), nil
}
