package parsing

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-extractor/internal/skills"
)

// Section token length bounds, in characters
const (
	minTokenLen = 3
	maxTokenLen = 29
)

var tokenSplitRe = regexp.MustCompile(`[,•·|;\n]`)

// sectionTokens splits a skills section body into candidate skill names.
// A "Label:" prefix on a token ("Languages: Go") is dropped, and tokens
// outside the length bounds are skipped. At most max tokens are returned.
func sectionTokens(body string, max int) []string {
	var out []string
	for _, raw := range tokenSplitRe.Split(body, -1) {
		if max > 0 && len(out) >= max {
			break
		}
		token := cleanSectionToken(raw)
		n := utf8.RuneCountInString(token)
		if n < minTokenLen || n > maxTokenLen {
			continue
		}
		out = append(out, skills.Canonical(token))
	}
	return out
}

// cleanSectionToken strips labels, bullets and trailing punctuation from a token.
func cleanSectionToken(token string) string {
	if i := strings.LastIndex(token, ":"); i >= 0 {
		token = token[i+1:]
	}
	token = strings.TrimSpace(token)
	token = strings.TrimLeft(token, "-*–• \t")
	token = strings.TrimRight(token, ". \t")
	return strings.TrimSpace(token)
}

// splitName turns a matched name into first and last name. Any words beyond
// the second are appended to the last name.
func splitName(full string) (first, last string) {
	parts := strings.Fields(full)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	default:
		return parts[0], strings.Join(parts[1:], " ")
	}
}
