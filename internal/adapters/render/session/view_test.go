package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelier-sh/atelier/internal/domain"
)

func TestRenderEmptySession(t *testing.T) {
	out, err := Render(nil, nil)
	require.NoError(t, err)
	assert.Contains(t, out, "Concept Session")
	assert.Contains(t, out, "No concepts referenced this session.")
}

func TestRenderConceptsAndMissing(t *testing.T) {
	concepts := []domain.Concept{
		{Name: "pairing", Content: "...", Count: 3},
		{Name: "review", Content: "...", Count: 1},
	}
	missing := []domain.ConceptName{"ghost"}

	out, err := Render(concepts, missing)
	require.NoError(t, err)

	assert.Contains(t, out, "loaded: 2, missing: 1")
	assert.Contains(t, out, "pairing")
	assert.Contains(t, out, "x3")
	assert.Contains(t, out, "review")
	assert.Contains(t, out, "ghost")
}
