package document

import (
	"regexp"
	"strings"
)

var (
	innerSpaceRe   = regexp.MustCompile(`[ \t\f\v]+`)
	blankLineRunRe = regexp.MustCompile(`\n{3,}`)
)

// cleanText normalizes line endings, collapses runs of spaces inside each
// line, and keeps at most one blank line between paragraphs. Line structure is
// preserved since section detection depends on it.
func cleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = strings.TrimPrefix(content, "\uFEFF")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(innerSpaceRe.ReplaceAllString(line, " "))
	}

	result := strings.Join(lines, "\n")
	result = blankLineRunRe.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}
