package document

import (
	"math"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

const (
	// rowTolerance is the share of the font size two baselines may differ by
	// and still be read as one line.
	rowTolerance = 0.5
	// wordGap is the share of the font size a horizontal gap must exceed to
	// separate two words.
	wordGap = 0.15
	// fallbackFontSize applies to glyphs that report no size
	fallbackFontSize = 10.0
)

// pageGlyphs returns the positioned glyphs of a page, or nil when its content
// stream cannot be interpreted.
func pageGlyphs(page pdf.Page) (glyphs []pdf.Text) {
	defer func() {
		if r := recover(); r != nil {
			glyphs = nil
		}
	}()
	return page.Content().Text
}

// layoutText rebuilds reading order from positioned glyphs. Rows run top to
// bottom and are joined by newlines; glyphs within a row run left to right,
// with a space wherever the gap between them is wider than a word break.
// Glyphs sharing a position keep content stream order.
func layoutText(glyphs []pdf.Text) string {
	items := make([]pdf.Text, 0, len(glyphs))
	for _, g := range glyphs {
		if g.S != "" {
			items = append(items, g)
		}
	}
	if len(items) == 0 {
		return ""
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Y > items[j].Y })

	var rows [][]pdf.Text
	for _, g := range items {
		if n := len(rows); n > 0 {
			anchor := rows[n-1][0]
			if math.Abs(anchor.Y-g.Y) <= rowTolerance*fontSize(anchor) {
				rows[n-1] = append(rows[n-1], g)
				continue
			}
		}
		rows = append(rows, []pdf.Text{g})
	}

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		sort.SliceStable(row, func(i, j int) bool { return row[i].X < row[j].X })
		var sb strings.Builder
		for i, g := range row {
			if i > 0 {
				prev := row[i-1]
				gap := g.X - (prev.X + prev.W)
				if gap > wordGap*fontSize(g) && !strings.HasSuffix(prev.S, " ") && !strings.HasPrefix(g.S, " ") {
					sb.WriteByte(' ')
				}
			}
			sb.WriteString(g.S)
		}
		lines = append(lines, sb.String())
	}
	return strings.Join(lines, "\n")
}

func fontSize(g pdf.Text) float64 {
	if g.FontSize > 0 {
		return g.FontSize
	}
	return fallbackFontSize
}
