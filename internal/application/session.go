package application

import "github.com/atelier-sh/atelier/internal/domain"

// Session holds all process-lifetime mutable state: concept emphasis
// counts, loaded document contents, the missing set, unload flags, and the
// per-directory repo-owner cache. One Session is created at session start
// and threaded into each handler; it is never shared across logical threads
// of control.
type Session struct {
	counts    map[domain.ConceptName]int
	loaded    map[domain.ConceptName]string
	loadOrder []domain.ConceptName
	missing   map[domain.ConceptName]struct{}
	unloaded  map[domain.ConceptName]struct{}

	ownerByDir map[string]string
}

func NewSession() *Session {
	return &Session{
		counts:     make(map[domain.ConceptName]int),
		loaded:     make(map[domain.ConceptName]string),
		missing:    make(map[domain.ConceptName]struct{}),
		unloaded:   make(map[domain.ConceptName]struct{}),
		ownerByDir: make(map[string]string),
	}
}

// visited reports whether a concept has already been resolved this session,
// either loaded or recorded missing. Visited concepts are never re-read.
func (s *Session) visited(name domain.ConceptName) bool {
	if _, ok := s.loaded[name]; ok {
		return true
	}
	_, ok := s.missing[name]
	return ok
}

func (s *Session) bump(name domain.ConceptName, delta int) int {
	s.counts[name] += delta
	if s.counts[name] < 0 {
		s.counts[name] = 0
	}
	if delta > 0 {
		delete(s.unloaded, name)
	}
	return s.counts[name]
}

func (s *Session) recordLoaded(name domain.ConceptName, content string) {
	s.loaded[name] = content
	s.loadOrder = append(s.loadOrder, name)
}

// Concepts returns a snapshot of session concept state in load order,
// missing concepts excluded.
func (s *Session) Concepts() []domain.Concept {
	out := make([]domain.Concept, 0, len(s.loadOrder))
	for _, name := range s.loadOrder {
		out = append(out, domain.Concept{
			Name:    name,
			Content: s.loaded[name],
			Count:   s.counts[name],
		})
	}
	return out
}

func (s *Session) cachedOwner(dir string) (string, bool) {
	owner, ok := s.ownerByDir[dir]
	return owner, ok
}

func (s *Session) cacheOwner(dir, owner string) {
	s.ownerByDir[dir] = owner
}
