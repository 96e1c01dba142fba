// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jonathan/resume-extractor/internal/pipeline/steps"
	"github.com/jonathan/resume-extractor/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to a terminal; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, boxWidth-4), boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "..."
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-3]) + "..."
}

// pad right-pads s with spaces to n runes
func pad(s string, n int) string {
	if c := utf8.RuneCountInString(s); c < n {
		return s + strings.Repeat(" ", n-c)
	}
	return s
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// PrintRecord outputs a human-readable summary of an extracted record.
func (p *Printer) PrintRecord(rec *types.StructuredRecord) {
	if rec == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:     %s\n", orDash(strings.TrimSpace(rec.FirstName+" "+rec.LastName))))
	sb.WriteString(fmt.Sprintf("Title:    %s\n", orDash(rec.Title)))
	sb.WriteString(fmt.Sprintf("Years:    %g\n", float64(rec.YearsOfExperience)))
	sb.WriteString(fmt.Sprintf("Email:    %s\n", orDash(rec.Contact.Email)))
	sb.WriteString(fmt.Sprintf("Phone:    %s\n", orDash(rec.Contact.Phone)))
	sb.WriteString("\n")

	sb.WriteString("Profiles:\n")
	for _, slot := range types.SocialSlots {
		sb.WriteString(fmt.Sprintf("  %-10s %s\n", slot, orDash(rec.Contact.ContactURL(slot))))
	}
	sb.WriteString("\n")

	if len(rec.Skills) > 0 {
		sb.WriteString(fmt.Sprintf("Skills (%d):\n", len(rec.Skills)))
		count := min(len(rec.Skills), maxItemsToShow)
		sb.WriteString(fmt.Sprintf("  %s\n", strings.Join(rec.Skills[:count], ", ")))
		if len(rec.Skills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(rec.Skills)-maxItemsToShow))
		}
	}

	if len(rec.Education) > 0 {
		sb.WriteString("Education:\n")
		for _, e := range rec.Education {
			sb.WriteString(fmt.Sprintf("  • %s\n", educationLine(e)))
		}
	}

	p.printBox("EXTRACTED RECORD", strings.TrimSuffix(sb.String(), "\n"))
}

// educationLine renders an entry, preferring its degree for object entries.
func educationLine(e types.EducationEntry) string {
	if len(e.Fields) == 0 {
		return e.Text
	}
	if degree, ok := e.Fields["degree"].(string); ok && degree != "" {
		return degree
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, e.Fields[k]))
	}
	return strings.Join(parts, " ")
}

// PrintScore outputs the completeness score against the threshold.
func (p *Printer) PrintScore(score types.CompletenessScore, threshold float64) {
	var sb strings.Builder
	status := "❌ INCOMPLETE (AI fallback)"
	if score.IsComplete {
		status = "✅ COMPLETE"
	}
	sb.WriteString(fmt.Sprintf("Score:     %.2f\n", score.Score))
	sb.WriteString(fmt.Sprintf("Threshold: %.2f\n", threshold))
	sb.WriteString(fmt.Sprintf("Status:    %s\n", status))
	if len(score.Populated) > 0 {
		sb.WriteString("\nPopulated:\n")
		for _, f := range score.Populated {
			sb.WriteString(fmt.Sprintf("  • %s\n", f))
		}
	}

	p.printBox("COMPLETENESS SCORE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintLinks outputs discovered raw links and their classification.
func (p *Printer) PrintLinks(raw []types.RawLink, classified []types.ClassifiedLink) {
	if len(raw) == 0 && len(classified) == 0 {
		p.printBox("DOCUMENT LINKS", "No links found")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Discovered %d links:\n", len(raw)))
	for _, l := range raw {
		page := "-"
		if l.Page != nil {
			page = fmt.Sprintf("%d", *l.Page)
		}
		sb.WriteString(fmt.Sprintf("  p.%-2s %-10s %.1f %s\n", page, l.SourceType, l.Confidence, l.URL))
	}

	if len(classified) > 0 {
		sb.WriteString(fmt.Sprintf("\nClassified %d links:\n", len(classified)))
		for _, c := range classified {
			sb.WriteString(fmt.Sprintf("  %-13s %.1f %s", c.Platform, c.Confidence, c.URL))
			if c.Username != "" {
				sb.WriteString(fmt.Sprintf(" (@%s)", c.Username))
			}
			sb.WriteString("\n")
		}
	}

	p.printBox("DOCUMENT LINKS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMetadata outputs document metadata in key order.
func (p *Printer) PrintMetadata(metadata map[string]string) {
	if len(metadata) == 0 {
		return
	}
	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		sb.WriteString(fmt.Sprintf("%-12s %s\n", k+":", metadata[k]))
	}
	p.printBox("DOCUMENT METADATA", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintTrace outputs the stages a run went through.
func (p *Printer) PrintTrace(trace []steps.StepResult) {
	if len(trace) == 0 {
		return
	}

	var sb strings.Builder
	for _, s := range trace {
		mark := "✓"
		switch s.Status {
		case steps.StatusFailed:
			mark = "✗"
		case steps.StatusSkipped:
			mark = "-"
		}
		sb.WriteString(fmt.Sprintf("%s %-12s %s\n", mark, s.Step, s.Duration.Round(time.Microsecond)))
		if s.Error != "" {
			sb.WriteString(fmt.Sprintf("  %s\n", s.Error))
		}
		if absorbed, ok := s.Metadata["absorbed"].(string); ok {
			sb.WriteString(fmt.Sprintf("  ⚠ %s\n", absorbed))
		}
	}
	p.printBox("PIPELINE STAGES", strings.TrimSuffix(sb.String(), "\n"))
}
