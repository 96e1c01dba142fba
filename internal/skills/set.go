package skills

import "strings"

// Canonical returns the canonical spelling of a known skill variant, or the
// trimmed input unchanged. Unknown skills keep their original casing.
func Canonical(skill string) string {
	trimmed := strings.TrimSpace(skill)
	if canonical, ok := canonicalNames[strings.ToLower(trimmed)]; ok {
		return canonical
	}
	return trimmed
}

// Set is an insertion-ordered skill collection that rejects case-insensitive
// duplicates. The first spelling inserted is the one kept.
type Set struct {
	items []string
	seen  map[string]struct{}
	max   int
}

// NewSet creates a set holding at most max skills. max <= 0 means unbounded.
func NewSet(max int) *Set {
	return &Set{
		items: make([]string, 0),
		seen:  make(map[string]struct{}),
		max:   max,
	}
}

// Add inserts a skill and reports whether it was added. Blank skills,
// duplicates, and inserts into a full set are ignored.
func (s *Set) Add(skill string) bool {
	skill = strings.TrimSpace(skill)
	if skill == "" || s.Full() {
		return false
	}
	key := strings.ToLower(skill)
	if _, ok := s.seen[key]; ok {
		return false
	}
	s.seen[key] = struct{}{}
	s.items = append(s.items, skill)
	return true
}

// AddAll inserts every skill in order.
func (s *Set) AddAll(skills []string) {
	for _, skill := range skills {
		s.Add(skill)
	}
}

// Full reports whether the set reached its cap.
func (s *Set) Full() bool {
	return s.max > 0 && len(s.items) >= s.max
}

// Items returns a copy of the skills in insertion order.
func (s *Set) Items() []string {
	return append([]string{}, s.items...)
}

// Dedupe canonicalizes, deduplicates (case-insensitive), drops blanks, and caps skills.
func Dedupe(skills []string, max int) []string {
	set := NewSet(max)
	for _, skill := range skills {
		set.Add(Canonical(skill))
	}
	return set.Items()
}
