package parsing

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/resume-extractor/internal/links"
	"github.com/jonathan/resume-extractor/internal/skills"
	"github.com/jonathan/resume-extractor/internal/types"
)

// Default extraction limits
const (
	DefaultMaxSkills        = 15
	DefaultMaxSectionSkills = 10
	DefaultMaxEducation     = 3
	// maxSectionLines bounds how far a section body may run without a heading
	maxSectionLines = 12
)

// Options configures the pattern extractor.
type Options struct {
	MaxSkills        int
	MaxSectionSkills int
	MaxEducation     int
	Vocabulary       []string
	JobTitles        []string
}

// DefaultOptions returns the reference extraction limits and tables.
func DefaultOptions() Options {
	return Options{
		MaxSkills:        DefaultMaxSkills,
		MaxSectionSkills: DefaultMaxSectionSkills,
		MaxEducation:     DefaultMaxEducation,
		Vocabulary:       skills.DefaultVocabulary,
		JobTitles:        DefaultJobTitles,
	}
}

type vocabTerm struct {
	name string
	re   *regexp.Regexp
}

// Extractor applies the field pattern tables to résumé text. It holds only
// compiled tables and is safe for concurrent use.
type Extractor struct {
	opts    Options
	vocab   []vocabTerm
	titleRe *regexp.Regexp
}

// NewExtractor compiles the tables in opts. Zero limits and nil tables take
// their defaults.
func NewExtractor(opts Options) *Extractor {
	def := DefaultOptions()
	if opts.MaxSkills <= 0 {
		opts.MaxSkills = def.MaxSkills
	}
	if opts.MaxSectionSkills <= 0 {
		opts.MaxSectionSkills = def.MaxSectionSkills
	}
	if opts.MaxEducation <= 0 {
		opts.MaxEducation = def.MaxEducation
	}
	if opts.Vocabulary == nil {
		opts.Vocabulary = def.Vocabulary
	}
	if opts.JobTitles == nil {
		opts.JobTitles = def.JobTitles
	}

	e := &Extractor{opts: opts, titleRe: compileTitles(opts.JobTitles)}
	for _, term := range opts.Vocabulary {
		e.vocab = append(e.vocab, vocabTerm{name: term, re: compileTerm(term)})
	}
	return e
}

// Extract builds a candidate record from text. Missing fields stay empty.
func (e *Extractor) Extract(text string) *types.StructuredRecord {
	rec := types.NewRecord()
	if strings.TrimSpace(text) == "" {
		return rec
	}

	rec.Contact.Email = emailRe.FindString(text)
	rec.Contact.Phone = strings.TrimSpace(phoneRe.FindString(text))

	profiles := []struct {
		slot string
		re   *regexp.Regexp
	}{
		{types.SlotLinkedin, linkedinRe},
		{types.SlotGithub, githubRe},
		{types.SlotLeetcode, leetcodeRe},
		{types.SlotPortfolio, portfolioRe},
	}
	for _, p := range profiles {
		u := links.EnsureScheme(p.re.FindString(text))
		if !links.IsValidURL(u) {
			continue
		}
		rec.Contact.SetContactURL(p.slot, u)
		rec.SetSocialLink(p.slot, u)
	}

	rec.FirstName, rec.LastName = splitName(e.findName(text))

	if m := yearsRe.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			rec.YearsOfExperience = types.Years(n)
		}
	}

	if m := e.titleRe.FindStringSubmatch(text); m != nil {
		rec.Title = strings.Join(strings.Fields(m[1]), " ")
	}

	rec.Skills = e.findSkills(text)
	rec.Education = e.findEducation(text)

	if rec.Title != "" && rec.YearsOfExperience > 0 {
		rec.About = fmt.Sprintf("%s with %s years of experience",
			rec.Title, strconv.FormatFloat(float64(rec.YearsOfExperience), 'f', -1, 64))
	}

	return rec
}

// findName matches a capitalized two or three word name on the first
// non-empty line.
func (e *Extractor) findName(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if m := nameRe.FindStringSubmatch(line); m != nil {
			return m[1]
		}
		return ""
	}
	return ""
}

// findSkills collects vocabulary terms found anywhere in the text, then
// tokens from a labelled skills section, up to MaxSkills in total.
func (e *Extractor) findSkills(text string) []string {
	set := skills.NewSet(e.opts.MaxSkills)
	for _, term := range e.vocab {
		if set.Full() {
			break
		}
		if term.re.MatchString(text) {
			set.Add(term.name)
		}
	}

	if body, ok := sectionBody(text, skillsHeadingRe); ok {
		set.AddAll(sectionTokens(body, e.opts.MaxSectionSkills))
	}
	return set.Items()
}

// findEducation takes up to MaxEducation non-empty lines after an education heading.
func (e *Extractor) findEducation(text string) []types.EducationEntry {
	entries := []types.EducationEntry{}
	body, ok := sectionBody(text, educationHeadingRe)
	if !ok {
		return entries
	}
	for _, line := range strings.Split(body, "\n") {
		if len(entries) >= e.opts.MaxEducation {
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		entries = append(entries, types.EducationEntry{Fields: map[string]any{"degree": line}})
	}
	return entries
}

// sectionBody returns the text following a heading: the remainder of the
// heading line plus the lines up to the next heading or blank-line gap.
func sectionBody(text string, heading *regexp.Regexp) (string, bool) {
	loc := heading.FindStringIndex(text)
	if loc == nil {
		return "", false
	}
	rest := text[loc[1]:]
	lines := strings.Split(rest, "\n")

	body := []string{lines[0]}
	for _, line := range lines[1:] {
		trimmed := strings.TrimSpace(line)
		if len(body) > maxSectionLines || isHeading(trimmed, heading) {
			break
		}
		if trimmed == "" {
			if strings.TrimSpace(strings.Join(body, "")) != "" {
				break
			}
			continue
		}
		body = append(body, trimmed)
	}
	return strings.Join(body, "\n"), true
}

// isHeading reports whether line starts a section other than current. Labels
// such as "Programming Languages:" inside a skills section do not end it.
func isHeading(line string, current *regexp.Regexp) bool {
	if otherHeadingRe.MatchString(line) {
		return true
	}
	for _, h := range []*regexp.Regexp{skillsHeadingRe, educationHeadingRe} {
		if h != current && h.MatchString(line) {
			return true
		}
	}
	return false
}
