// Package pdftest builds small PDFs for tests.
package pdftest

import (
	"bytes"
	"fmt"
	"strings"
)

// LineHeight is the vertical distance between the lines of a page
const LineHeight = 14

// Page is one page: text lines positioned with Td, top to bottom, and a
// /Link annotation per link.
type Page struct {
	Lines []string
	Links []string
}

var escaper = strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)

// Build writes a single-font PDF with a valid xref table. info becomes the
// document information dictionary when non-empty.
func Build(pages []Page, info map[string]string) []byte {
	objs := []string{"", "", "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>"}
	var kids []string
	for _, p := range pages {
		pageNum := len(objs) + 1
		contentNum := pageNum + 1
		var annotRefs []string
		for i := range p.Links {
			annotRefs = append(annotRefs, fmt.Sprintf("%d 0 R", contentNum+1+i))
		}
		objs = append(objs, fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R /Annots [%s] >>",
			contentNum, strings.Join(annotRefs, " ")))

		content := contentStream(p.Lines)
		objs = append(objs, fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content))
		for _, link := range p.Links {
			objs = append(objs, fmt.Sprintf(
				"<< /Type /Annot /Subtype /Link /Rect [72 700 200 712] /Border [0 0 0] /A << /Type /Action /S /URI /URI (%s) >> >>",
				escaper.Replace(link)))
		}
		kids = append(kids, fmt.Sprintf("%d 0 R", pageNum))
	}
	objs[0] = "<< /Type /Catalog /Pages 2 0 R >>"
	objs[1] = fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages))

	infoRef := ""
	if len(info) > 0 {
		var entries []string
		for k, v := range info {
			entries = append(entries, fmt.Sprintf("/%s (%s)", k, escaper.Replace(v)))
		}
		objs = append(objs, "<< "+strings.Join(entries, " ")+" >>")
		infoRef = fmt.Sprintf(" /Info %d 0 R", len(objs))
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objs))
	for i, body := range objs {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, body)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objs)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R%s >>\nstartxref\n%d\n%%%%EOF\n", len(objs)+1, infoRef, xref)
	return buf.Bytes()
}

// contentStream places the first line at (72, 720) and each following line
// LineHeight below the previous one with a relative Td.
func contentStream(lines []string) string {
	var sb strings.Builder
	sb.WriteString("BT /F1 12 Tf")
	for i, line := range lines {
		if i == 0 {
			sb.WriteString(" 72 720 Td")
		} else {
			fmt.Fprintf(&sb, " 0 -%d Td", LineHeight)
		}
		fmt.Fprintf(&sb, " (%s) Tj", escaper.Replace(line))
	}
	sb.WriteString(" ET")
	return sb.String()
}
