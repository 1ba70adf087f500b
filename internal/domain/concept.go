package domain

import "regexp"

// ConceptName is the identifier inside a `cf:<name>` marker.
type ConceptName string

// Concept is a named markdown document plus the emphasis accumulated for it
// during the current session. Content is read-only at runtime; only the
// count moves.
type Concept struct {
	Name    ConceptName
	Content string
	Count   int
}

// markerPattern is the only marker form recognized: the literal substring
// `cf:` followed by [A-Za-z0-9_-]+, closed by a backtick.
var markerPattern = regexp.MustCompile("`cf:([A-Za-z0-9_-]+)`")

// ExtractMarkers scans text for concept markers and returns the distinct
// identifiers in first-encounter order together with per-identifier
// occurrence counts.
func ExtractMarkers(text string) ([]ConceptName, map[ConceptName]int) {
	var order []ConceptName
	counts := make(map[ConceptName]int)
	for _, m := range markerPattern.FindAllStringSubmatch(text, -1) {
		name := ConceptName(m[1])
		if counts[name] == 0 {
			order = append(order, name)
		}
		counts[name]++
	}
	return order, counts
}
