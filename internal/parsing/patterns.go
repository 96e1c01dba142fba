// Package parsing provides the deterministic résumé extractor and its
// completeness scorer.
package parsing

import (
	"regexp"
	"strings"
)

// Field patterns. Each single-valued field takes the first match in the text.
var (
	emailRe     = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phoneRe     = regexp.MustCompile(`(?:\+?1[-.\s]?)?\(?[0-9]{3}\)?[-.\s]?[0-9]{3}[-.\s]?[0-9]{4}\b`)
	linkedinRe  = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?linkedin\.com/in/[A-Za-z0-9_-]+`)
	githubRe    = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?github\.com/[A-Za-z0-9_-]+`)
	leetcodeRe  = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?leetcode\.com/(?:u/)?[A-Za-z0-9_-]+`)
	portfolioRe = regexp.MustCompile(`(?i)(?:https?://)?(?:[\w-]+\.)?(?:vercel\.app|netlify\.app|herokuapp\.com|github\.io)(?:/[\w-]*)?`)
	nameRe      = regexp.MustCompile(`^([A-Z][a-z]+(?:[ \t]+[A-Z][a-z]+){1,2})\b`)
	yearsRe     = regexp.MustCompile(`(?i)(\d+)\+?\s*(?:years?|yrs?)\s*(?:of\s*)?(?:experience|exp)\b`)
)

// Section headings. A skills or education heading must end the line or be
// followed by a colon.
var (
	skillsHeadingRe    = regexp.MustCompile(`(?im)^[ \t]*(?:technical[ \t]+|core[ \t]+|key[ \t]+)?(?:skills?|technologies|tech[ \t]+stack|programming[ \t]+languages)[ \t]*(?::|$)`)
	educationHeadingRe = regexp.MustCompile(`(?im)^[ \t]*(?:education|academic(?:[ \t]+background)?|qualifications?)[ \t]*(?::|$)`)
	otherHeadingRe     = regexp.MustCompile(`(?i)^(?:(?:work|professional)[ \t]+)?(?:experience|employment|projects|certifications?|summary|profile|objective|achievements|awards|languages|interests|hobbies|references|contact|about|education|skills?)[ \t]*:?$`)
)

// SeniorityPrefixes may precede any job title keyword.
var SeniorityPrefixes = []string{"senior", "junior", "lead", "staff", "principal"}

// DefaultJobTitles are the job-title keywords, longest phrases first so the
// most specific title wins at a given position.
var DefaultJobTitles = []string{
	"software engineer", "software developer",
	"full stack developer", "full stack engineer", "full stack",
	"front end developer", "front end", "frontend developer",
	"back end developer", "back end", "backend developer",
	"devops engineer", "devops", "data scientist", "product manager",
	"developer", "programmer", "analyst", "manager", "intern",
	"consultant", "architect", "lead", "senior", "junior",
}

// compileTitles builds one alternation over the titles, allowing a seniority prefix.
func compileTitles(titles []string) *regexp.Regexp {
	alts := make([]string, 0, len(titles))
	for _, t := range titles {
		alts = append(alts, strings.ReplaceAll(regexp.QuoteMeta(t), " ", `[ \t-]+`))
	}
	prefixes := make([]string, 0, len(SeniorityPrefixes))
	for _, p := range SeniorityPrefixes {
		prefixes = append(prefixes, regexp.QuoteMeta(p))
	}
	return regexp.MustCompile(`(?i)\b((?:(?:` + strings.Join(prefixes, "|") + `)[ \t]+)?(?:` + strings.Join(alts, "|") + `))\b`)
}

// compileTerm matches a vocabulary term case-insensitively, bounded so that
// "Java" does not match inside "JavaScript" and "Go" not inside "good".
func compileTerm(term string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)(?:^|[^A-Za-z0-9+#])` + regexp.QuoteMeta(term) + `(?:$|[^A-Za-z0-9+#])`)
}
