package parsing

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-extractor/internal/document"
	"github.com/jonathan/resume-extractor/internal/document/pdftest"
	"github.com/jonathan/resume-extractor/internal/links"
	"github.com/jonathan/resume-extractor/internal/types"
)

const sampleResume = `Jane Doe
Senior Software Engineer
jane.doe@example.com | (555) 123-4567
linkedin.com/in/janedoe | github.com/janedoe | https://janedoe.vercel.app
Leetcode: leetcode.com/u/janedoe

Summary
Backend engineer with 7+ years of experience building APIs in Go and Python.

Skills: Go, Python, Docker, gRPC, Terraform
Programming Languages: Rust, golang

Education
B.S. Computer Science, State University
M.S. Software Engineering, Tech Institute
Certificate in Cloud Architecture
Extra line

Experience
Acme Corp`

func TestExtract_FullResume(t *testing.T) {
	rec := NewExtractor(DefaultOptions()).Extract(sampleResume)

	assert.Equal(t, "Jane", rec.FirstName)
	assert.Equal(t, "Doe", rec.LastName)
	assert.Equal(t, "Senior Software Engineer", rec.Title)
	assert.Equal(t, types.Years(7), rec.YearsOfExperience)
	assert.Equal(t, "Senior Software Engineer with 7 years of experience", rec.About)

	assert.Equal(t, "jane.doe@example.com", rec.Contact.Email)
	assert.Equal(t, "(555) 123-4567", rec.Contact.Phone)
	assert.Equal(t, "https://linkedin.com/in/janedoe", rec.Contact.Linkedin)
	assert.Equal(t, "https://github.com/janedoe", rec.Contact.Github)
	assert.Equal(t, "https://janedoe.vercel.app", rec.Contact.Portfolio)
	assert.Equal(t, "https://leetcode.com/u/janedoe", rec.Contact.Leetcode)

	for _, slot := range types.SocialSlots {
		link, ok := rec.SocialLink(slot)
		require.True(t, ok)
		assert.Equal(t, rec.Contact.ContactURL(slot), link.URL)
		assert.True(t, links.IsValidURL(link.URL), slot)
	}

	assert.ElementsMatch(t, []string{"Python", "Go", "Rust", "Docker", "GitHub", "gRPC", "Terraform"}, rec.Skills)

	require.Len(t, rec.Education, 3)
	assert.Equal(t, "B.S. Computer Science, State University", rec.Education[0].Fields["degree"])
	assert.Equal(t, "Certificate in Cloud Architecture", rec.Education[2].Fields["degree"])
}

func TestExtract_DecodedPDF(t *testing.T) {
	data := pdftest.Build([]pdftest.Page{{Lines: strings.Split(sampleResume, "\n")}}, nil)
	doc, err := document.Decode(context.Background(), data, nil)
	require.NoError(t, err)

	extractor := NewExtractor(DefaultOptions())
	want := extractor.Extract(sampleResume)
	rec := extractor.Extract(doc.Text)

	assert.Equal(t, "Jane", rec.FirstName)
	assert.Equal(t, "Doe", rec.LastName)
	assert.Equal(t, want.Title, rec.Title)
	assert.Equal(t, "jane.doe@example.com", rec.Contact.Email)
	assert.Equal(t, want.Contact.Phone, rec.Contact.Phone)
	assert.Equal(t, want.Contact.Linkedin, rec.Contact.Linkedin)
	assert.Equal(t, want.YearsOfExperience, rec.YearsOfExperience)
	assert.ElementsMatch(t, want.Skills, rec.Skills)

	scorer := DefaultScorer()
	assert.Equal(t, scorer.Score(want).Score, scorer.Score(rec).Score)
}

func TestExtract_EmptyText(t *testing.T) {
	rec := NewExtractor(DefaultOptions()).Extract("   \n ")

	assert.Empty(t, rec.FirstName)
	assert.NotNil(t, rec.Skills)
	assert.Empty(t, rec.Skills)
	assert.NotNil(t, rec.Education)
	assert.Len(t, rec.SocialLinks, 4)
	assert.Equal(t, types.Years(0), rec.YearsOfExperience)
}

func TestExtract_Name(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		first string
		last  string
	}{
		{"two words", "John Smith\nDeveloper", "John", "Smith"},
		{"three words join last name", "Mary Jane Watson\nAnalyst", "Mary", "Jane Watson"},
		{"leading blank lines", "\n\n  Ada Lovelace  \n", "Ada", "Lovelace"},
		{"not on first line", "RESUME\nJohn Smith", "", ""},
		{"single word", "Madonna\n", "", ""},
	}

	e := NewExtractor(DefaultOptions())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := e.Extract(tt.text)
			assert.Equal(t, tt.first, rec.FirstName)
			assert.Equal(t, tt.last, rec.LastName)
		})
	}
}

func TestExtract_Title(t *testing.T) {
	tests := []struct {
		text     string
		expected string
	}{
		{"Working as a Data Scientist at Foo", "Data Scientist"},
		{"lead developer on payments", "lead developer"},
		{"Full Stack Developer", "Full Stack Developer"},
		{"I enjoy gardening", ""},
	}

	e := NewExtractor(DefaultOptions())
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.expected, e.Extract(tt.text).Title)
		})
	}
}

func TestExtract_SkillBoundaries(t *testing.T) {
	e := NewExtractor(DefaultOptions())

	rec := e.Extract("Expert in JavaScript and MySQL, good at teamwork")
	assert.Equal(t, []string{"JavaScript", "MySQL"}, rec.Skills)

	rec = e.Extract("Worked with c++ and node.js daily")
	assert.Equal(t, []string{"C++", "Node.js"}, rec.Skills)
}

func TestExtract_SkillCaps(t *testing.T) {
	e := NewExtractor(Options{MaxSkills: 3})
	rec := e.Extract("Python Java Go Rust Swift Docker")
	assert.Equal(t, []string{"Python", "Java", "Go"}, rec.Skills)

	section := "Skills: alpha1, beta22, gamma333, delta, epsilon, zeta1, eta22, theta, iota1, kappa2, lambda3, mu444"
	e = NewExtractor(Options{MaxSkills: 50, Vocabulary: []string{}})
	rec = e.Extract(section)
	assert.Len(t, rec.Skills, DefaultMaxSectionSkills)
	assert.Equal(t, "alpha1", rec.Skills[0])
}

func TestExtract_SectionTokenLength(t *testing.T) {
	e := NewExtractor(Options{Vocabulary: []string{}})
	rec := e.Extract("Technical Skills:\n• C\n• Terraform\n• A very long token that is definitely over the limit\n| gRPC")
	assert.Equal(t, []string{"Terraform", "gRPC"}, rec.Skills)
}

func TestExtract_SkillsSectionStopsAtHeading(t *testing.T) {
	e := NewExtractor(Options{Vocabulary: []string{}})
	rec := e.Extract("Skills\nTerraform, Ansible\nExperience\nForklift Operation")
	assert.Equal(t, []string{"Terraform", "Ansible"}, rec.Skills)
}

func TestExtract_AboutNeedsTitleAndYears(t *testing.T) {
	e := NewExtractor(DefaultOptions())
	assert.Empty(t, e.Extract("Developer with many years of experience").About)
	assert.Empty(t, e.Extract("Gardener with 3 years experience").About)
	assert.Equal(t, "Developer with 3 years of experience", e.Extract("Developer, 3 yrs exp").About)
}

func TestSectionTokens(t *testing.T) {
	got := sectionTokens(" Languages: golang | ts; - Kubernetes.\nReactJS", 10)
	assert.Equal(t, []string{"Go", "Kubernetes", "React"}, got)
}

func TestSplitName(t *testing.T) {
	first, last := splitName("Mary Jane Watson")
	assert.Equal(t, "Mary", first)
	assert.Equal(t, "Jane Watson", last)

	first, last = splitName("")
	assert.Empty(t, first)
	assert.Empty(t, last)
}
