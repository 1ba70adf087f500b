package session

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/atelier-sh/atelier/internal/domain"
)

func renderView(concepts []domain.Concept, missing []domain.ConceptName, s styles) string {
	lines := []string{
		s.title.Render("Concept Session"),
		s.header.Render(fmt.Sprintf("loaded: %d, missing: %d", len(concepts), len(missing))),
	}

	if len(concepts) == 0 && len(missing) == 0 {
		lines = append(lines, s.empty.Render("No concepts referenced this session."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	maxCount := 0
	for _, c := range concepts {
		if c.Count > maxCount {
			maxCount = c.Count
		}
	}

	for _, c := range concepts {
		lines = append(lines, s.section.Render(renderConcept(c, maxCount, s)))
	}

	if len(missing) > 0 {
		names := make([]string, 0, len(missing))
		for _, name := range missing {
			names = append(names, string(name))
		}
		lines = append(lines, s.section.Render(
			s.warning.Render("missing: ")+s.detail.Render(strings.Join(names, ", "))))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderConcept(c domain.Concept, maxCount int, s styles) string {
	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.concept.Render(string(c.Name)),
		" ",
		renderEmphasisBar(c.Count, maxCount, s),
		" ",
		s.barMeta.Render(fmt.Sprintf("x%d", c.Count)),
	)
}

func renderEmphasisBar(count, maxCount int, s styles) string {
	if maxCount <= 0 {
		return ""
	}
	width := count
	if width > 24 {
		width = 24
	}
	return s.barFill.Render(strings.Repeat("=", width))
}
