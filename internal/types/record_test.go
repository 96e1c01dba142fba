package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecord_HasOneSlotPerPlatform(t *testing.T) {
	r := NewRecord()

	require.Len(t, r.SocialLinks, 4)
	for i, name := range SocialSlots {
		assert.Equal(t, name, r.SocialLinks[i].PlatformName)
		assert.Empty(t, r.SocialLinks[i].URL)
	}
	assert.NotNil(t, r.Skills)
	assert.NotNil(t, r.Education)
	assert.NotNil(t, r.ExtractedURLs)
}

func TestStructuredRecord_JSONFieldNames(t *testing.T) {
	data, err := json.Marshal(NewRecord())
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))

	expected := []string{"firstName", "lastName", "about", "title", "yearsOfExperience",
		"education", "skills", "socialLinks", "contact", "extractedUrls"}
	assert.Len(t, raw, len(expected))
	for _, key := range expected {
		assert.Contains(t, raw, key)
	}
}

func TestSetSocialLink(t *testing.T) {
	t.Run("overwrites existing slot case-insensitively", func(t *testing.T) {
		r := NewRecord()
		r.SetSocialLink("github", "https://github.com/alice")

		link, ok := r.SocialLink(SlotGithub)
		require.True(t, ok)
		assert.Equal(t, "https://github.com/alice", link.URL)
		assert.Len(t, r.SocialLinks, 4)
	})

	t.Run("appends missing slot", func(t *testing.T) {
		r := &StructuredRecord{}
		r.SetSocialLink(SlotLeetcode, "https://leetcode.com/alice")
		assert.Equal(t, []SocialLink{{PlatformName: SlotLeetcode, URL: "https://leetcode.com/alice"}}, r.SocialLinks)
	})

	t.Run("collapses duplicate slots", func(t *testing.T) {
		r := &StructuredRecord{SocialLinks: []SocialLink{
			{PlatformName: "Github", URL: "a"},
			{PlatformName: "github", URL: "b"},
		}}
		r.SetSocialLink(SlotGithub, "c")
		assert.Equal(t, []SocialLink{{PlatformName: "Github", URL: "c"}}, r.SocialLinks)
	})
}

func TestEducationEntry_JSON(t *testing.T) {
	var entries []EducationEntry
	err := json.Unmarshal([]byte(`["BSc Computer Science", {"degree": "MSc", "year": 2020}]`), &entries)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "BSc Computer Science", entries[0].Text)
	assert.Equal(t, "MSc", entries[1].Fields["degree"])

	out, err := json.Marshal(entries)
	require.NoError(t, err)
	assert.JSONEq(t, `["BSc Computer Science", {"degree": "MSc", "year": 2020}]`, string(out))

	var bad EducationEntry
	assert.Error(t, json.Unmarshal([]byte(`42`), &bad))
}

func TestYears_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Years
	}{
		{"number", `5`, 5},
		{"fraction", `2.5`, 2.5},
		{"negative clamps to zero", `-3`, 0},
		{"null", `null`, 0},
		{"plus string", `"5+"`, 5},
		{"phrase", `"about 3 years"`, 3},
		{"no digits", `"several"`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var y Years
			require.NoError(t, json.Unmarshal([]byte(tt.input), &y))
			assert.Equal(t, tt.expected, y)
		})
	}
}

func TestClone_IsDeep(t *testing.T) {
	r := NewRecord()
	r.Skills = append(r.Skills, "Go")
	r.Education = append(r.Education, EducationEntry{Fields: map[string]any{"degree": "BSc"}})

	c := r.Clone()
	c.Skills[0] = "Rust"
	c.SocialLinks[0].URL = "changed"
	c.Education[0].Fields["degree"] = "PhD"

	assert.Equal(t, "Go", r.Skills[0])
	assert.Empty(t, r.SocialLinks[0].URL)
	assert.Equal(t, "BSc", r.Education[0].Fields["degree"])
}
