package skills

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonical(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"misspelled UI library", "Shaden UI", "shadcn/ui"},
		{"golang to Go", "golang", "Go"},
		{"GOLANG to Go", "GOLANG", "Go"},
		{"reactjs to React", "reactjs", "React"},
		{"k8s to Kubernetes", "K8s", "Kubernetes"},
		{"unknown keeps casing", "pandas", "pandas"},
		{"trims whitespace", "  Docker  ", "Docker"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Canonical(tt.input))
		})
	}
}

func TestSet_CaseInsensitiveFirstSpellingWins(t *testing.T) {
	s := NewSet(0)

	assert.True(t, s.Add("React"))
	assert.False(t, s.Add("react"))
	assert.False(t, s.Add("  REACT "))
	assert.True(t, s.Add("python"))
	assert.False(t, s.Add(""))
	assert.False(t, s.Add("   "))

	assert.Equal(t, []string{"React", "python"}, s.Items())
	assert.False(t, s.Add("PYTHON"))
}

func TestSet_Cap(t *testing.T) {
	s := NewSet(2)
	s.AddAll([]string{"Go", "Rust", "Zig"})

	assert.True(t, s.Full())
	assert.Equal(t, []string{"Go", "Rust"}, s.Items())
}

func TestSet_ItemsIsCopy(t *testing.T) {
	s := NewSet(0)
	s.Add("Go")
	items := s.Items()
	items[0] = "Rust"

	assert.Equal(t, []string{"Go"}, s.Items())
}

func TestDedupe(t *testing.T) {
	got := Dedupe([]string{"React", "python", "react", "SQL", "", "golang", "Go", "shaden ui"}, 0)
	assert.Equal(t, []string{"React", "python", "SQL", "Go", "shadcn/ui"}, got)

	capped := Dedupe([]string{"a1", "b2", "c3"}, 2)
	assert.Len(t, capped, 2)
}

func TestDefaultVocabulary_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for _, skill := range DefaultVocabulary {
		key := strings.ToLower(skill)
		assert.False(t, seen[key], "duplicate vocabulary entry %q", skill)
		seen[key] = true
	}
}
