package merge

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-extractor/internal/types"
)

func record(mut func(r *types.StructuredRecord)) *types.StructuredRecord {
	r := types.NewRecord()
	mut(r)
	return r
}

func TestRecords_ScalarPrecedence(t *testing.T) {
	tests := []struct {
		name string
		det  string
		ai   string
		want string
	}{
		{"deterministic wins", "Jane", "AI-Jane", "Jane"},
		{"gap filled from model", "", "AI-Jane", "AI-Jane"},
		{"whitespace counts as empty", "   ", "AI-Jane", "AI-Jane"},
		{"both empty", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			det := record(func(r *types.StructuredRecord) { r.FirstName = tt.det })
			ai := record(func(r *types.StructuredRecord) { r.FirstName = tt.ai })
			assert.Equal(t, tt.want, Records(det, ai, Options{}).FirstName)
		})
	}
}

func TestRecords_SkillDedup(t *testing.T) {
	det := record(func(r *types.StructuredRecord) { r.Skills = []string{"React", "python"} })
	ai := record(func(r *types.StructuredRecord) { r.Skills = []string{"react", "SQL", "  "} })

	got := Records(det, ai, Options{}).Skills
	require.Len(t, got, 3)

	seen := map[string]bool{}
	for _, s := range got {
		key := strings.ToLower(s)
		assert.False(t, seen[key], "duplicate %q", s)
		seen[key] = true
	}
	assert.Equal(t, "React", got[0])
}

func TestRecords_SkillCap(t *testing.T) {
	det := record(func(r *types.StructuredRecord) { r.Skills = []string{"A1", "A2", "A3"} })
	ai := record(func(r *types.StructuredRecord) { r.Skills = []string{"B1", "B2"} })

	assert.Equal(t, []string{"A1", "A2", "A3", "B1"}, Records(det, ai, Options{MaxSkills: 4}).Skills)
}

func TestRecords_ContactAndYears(t *testing.T) {
	det := record(func(r *types.StructuredRecord) {
		r.Contact.Email = "jane@example.com"
		r.Contact.Github = "https://github.com/jane"
		r.YearsOfExperience = 0
	})
	ai := record(func(r *types.StructuredRecord) {
		r.Contact.Email = "other@example.com"
		r.Contact.Phone = "555-123-4567"
		r.Contact.Github = "https://github.com/someone"
		r.Contact.Leetcode = "https://leetcode.com/jane"
		r.YearsOfExperience = 6
		r.About = "Backend engineer"
	})

	got := Records(det, ai, Options{})
	assert.Equal(t, "jane@example.com", got.Contact.Email)
	assert.Equal(t, "555-123-4567", got.Contact.Phone)
	assert.Equal(t, "https://github.com/jane", got.Contact.Github)
	assert.Equal(t, "https://leetcode.com/jane", got.Contact.Leetcode)
	assert.Equal(t, types.Years(6), got.YearsOfExperience)
	assert.Equal(t, "Backend engineer", got.About)
}

func TestRecords_SocialLinks(t *testing.T) {
	det := record(func(r *types.StructuredRecord) {
		r.SetSocialLink(types.SlotLinkedin, "https://linkedin.com/in/jane")
		r.SetSocialLink(types.SlotGithub, "https://github.com/jane")
	})
	ai := &types.StructuredRecord{SocialLinks: []types.SocialLink{
		{PlatformName: "github", URL: "https://github.com/jane-ai"},
		{PlatformName: "Linkedin", URL: "not a url"},
		{PlatformName: "Twitter", URL: "https://x.com/jane"},
	}}

	got := Records(det, ai, Options{})

	li, _ := got.SocialLink(types.SlotLinkedin)
	gh, _ := got.SocialLink(types.SlotGithub)
	tw, ok := got.SocialLink("Twitter")
	require.True(t, ok)
	assert.Equal(t, "https://linkedin.com/in/jane", li.URL)
	assert.Equal(t, "https://github.com/jane-ai", gh.URL)
	assert.Equal(t, "https://x.com/jane", tw.URL)
	assert.Len(t, got.SocialLinks, 5, "four known slots plus Twitter, no duplicates")
}

func TestRecords_SlotsAgreeWithContact(t *testing.T) {
	det := record(func(r *types.StructuredRecord) {
		r.Contact.Linkedin = "https://linkedin.com/in/jane"
		r.SetSocialLink(types.SlotLinkedin, "https://linkedin.com/in/jane")
	})
	ai := record(func(r *types.StructuredRecord) {
		r.Contact.Linkedin = "https://linkedin.com/in/jane-ai"
		r.SetSocialLink(types.SlotLinkedin, "https://linkedin.com/in/jane-ai")
		r.Contact.Github = "github"
		r.SetSocialLink(types.SlotGithub, "https://github.com/jane")
	})

	got := Records(det, ai, Options{})
	for _, slot := range types.SocialSlots {
		link, ok := got.SocialLink(slot)
		require.True(t, ok, slot)
		assert.Equal(t, got.Contact.ContactURL(slot), link.URL, slot)
	}
	assert.Equal(t, "https://linkedin.com/in/jane", got.Contact.Linkedin)
	assert.Equal(t, "https://github.com/jane", got.Contact.Github, "invalid contact replaced by the slot URL")
}

func TestRecords_EducationAndURLs(t *testing.T) {
	det := record(func(r *types.StructuredRecord) {
		r.Education = []types.EducationEntry{{Fields: map[string]any{"degree": "BSc"}}}
		r.ExtractedURLs = []string{"https://a.dev", "https://b.dev"}
	})
	ai := record(func(r *types.StructuredRecord) { r.ExtractedURLs = []string{"https://b.dev", "https://c.dev"} })

	got := Records(det, ai, Options{})
	require.Len(t, got.Education, 1)
	assert.Equal(t, "BSc", got.Education[0].Fields["degree"])
	assert.Equal(t, []string{"https://a.dev", "https://b.dev", "https://c.dev"}, got.ExtractedURLs)

	got.Education[0].Fields["degree"] = "changed"
	assert.Equal(t, "BSc", det.Education[0].Fields["degree"], "inputs are not aliased")
}

func TestRecords_NilInputs(t *testing.T) {
	det := record(func(r *types.StructuredRecord) { r.FirstName = "Jane" })

	assert.Equal(t, "Jane", Records(det, nil, Options{}).FirstName)
	assert.Equal(t, "Jane", Records(nil, det, Options{}).FirstName)
	assert.Len(t, Records(nil, nil, Options{}).SocialLinks, len(types.SocialSlots))
}
