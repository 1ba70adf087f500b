package application

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/atelier-sh/atelier/internal/domain"
	"github.com/atelier-sh/atelier/internal/ports"
)

// LoadReport summarizes one LoadFromText pass: which documents got loaded
// during this pass, the session-cumulative counts for every concept touched,
// and the identifiers that had no document on disk.
type LoadReport struct {
	Loaded  map[domain.ConceptName]string
	Counts  map[domain.ConceptName]int
	Missing []domain.ConceptName
}

// ConceptService scans text for `cf:` markers, loads the referenced
// documents, and maintains the session's emphasis counts.
type ConceptService struct {
	source  ports.ConceptSource
	session *Session
}

func NewConceptService(source ports.ConceptSource, session *Session) *ConceptService {
	return &ConceptService{source: source, session: session}
}

// LoadFromText extracts every marker from text, loads each referenced
// document, and recursively scans loaded content for further markers using
// an explicit work queue. Identifiers are processed in the order first
// encountered. A concept is read from disk at most once per session; its
// count keeps accumulating across repeated references anywhere. Absent
// documents are recorded missing and logged, never an error.
func (s *ConceptService) LoadFromText(ctx context.Context, text string) (LoadReport, error) {
	report := LoadReport{
		Loaded: make(map[domain.ConceptName]string),
		Counts: make(map[domain.ConceptName]int),
	}

	queue, counts := domain.ExtractMarkers(text)
	for name, n := range counts {
		report.Counts[name] = s.session.bump(name, n)
	}

	missingSeen := make(map[domain.ConceptName]struct{})
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]

		if s.session.visited(name) {
			if _, miss := s.session.missing[name]; miss {
				if _, dup := missingSeen[name]; !dup {
					missingSeen[name] = struct{}{}
					report.Missing = append(report.Missing, name)
				}
			}
			continue
		}

		content, err := s.source.Load(ctx, name)
		if err != nil {
			if errors.Is(err, domain.ErrConceptNotFound) {
				log.Warn("concept document missing", "concept", name)
				s.session.missing[name] = struct{}{}
				missingSeen[name] = struct{}{}
				report.Missing = append(report.Missing, name)
				continue
			}
			return LoadReport{}, fmt.Errorf("load concept %s: %w", name, err)
		}

		s.session.recordLoaded(name, content)
		report.Loaded[name] = content

		nested, nestedCounts := domain.ExtractMarkers(content)
		for _, ref := range nested {
			report.Counts[ref] = s.session.bump(ref, nestedCounts[ref])
		}
		queue = append(queue, nested...)
	}

	return report, nil
}

// Bump adjusts a concept's emphasis count manually. A positive delta
// re-includes a previously unloaded concept.
func (s *ConceptService) Bump(name domain.ConceptName, delta int) int {
	return s.session.bump(name, delta)
}

// Unload zeroes a concept's count and excludes it from future injection.
// The concept stays visited: a later reference bumps the count again
// without re-reading the document.
func (s *ConceptService) Unload(name domain.ConceptName) {
	s.session.counts[name] = 0
	s.session.unloaded[name] = struct{}{}
}

// Injection returns the loaded, non-unloaded concepts ordered by emphasis
// count descending, then by first-load order.
func (s *ConceptService) Injection() []domain.Concept {
	concepts := s.session.Concepts()
	filtered := concepts[:0]
	for _, c := range concepts {
		if _, out := s.session.unloaded[c.Name]; !out {
			filtered = append(filtered, c)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Count > filtered[j].Count
	})
	return filtered
}

// Status reports every concept the session has seen, including unloaded
// ones, in load order, plus the missing set.
func (s *ConceptService) Status() ([]domain.Concept, []domain.ConceptName) {
	missing := make([]domain.ConceptName, 0, len(s.session.missing))
	for name := range s.session.missing {
		missing = append(missing, name)
	}
	sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })
	return s.session.Concepts(), missing
}
