package document

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// noiseSelectors are removed before reading HTML text
const noiseSelectors = "script, style, noscript, template, svg"

func decodeHTML(data []byte) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Message: "failed to parse HTML", Cause: err}
	}

	out := &Document{
		Format:    FormatHTML,
		PageCount: 1,
		Links:     []AnnotationLink{},
		Metadata:  map[string]string{},
	}

	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		out.Metadata["Title"] = title
	}
	doc.Find("meta[name]").Each(func(_ int, s *goquery.Selection) {
		name, _ := s.Attr("name")
		content, _ := s.Attr("content")
		switch strings.ToLower(name) {
		case "author":
			out.Metadata["Author"] = strings.TrimSpace(content)
		case "description":
			out.Metadata["Subject"] = strings.TrimSpace(content)
		case "keywords":
			out.Metadata["Keywords"] = strings.TrimSpace(content)
		}
	})

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		href = strings.TrimSpace(href)
		if !isHyperlinkTarget(href) {
			return
		}
		out.Links = append(out.Links, AnnotationLink{URL: href, Page: 1})
	})

	doc.Find(noiseSelectors).Remove()
	body := doc.Find("body")
	if body.Length() == 0 {
		body = doc.Selection
	}
	out.Text = cleanText(blockText(body))

	return out, nil
}

// blockText reads the selection's text, putting block-level elements on their
// own lines so headings like "Skills:" stay at the start of a line.
func blockText(sel *goquery.Selection) string {
	sel.Find("br").ReplaceWithHtml("\n")
	sel.Find("p, div, li, h1, h2, h3, h4, h5, h6, tr, section, header, footer, article").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})
	return sel.Text()
}

// isHyperlinkTarget accepts absolute web and mail links, skipping fragments
// and script targets.
func isHyperlinkTarget(href string) bool {
	lower := strings.ToLower(href)
	return strings.HasPrefix(lower, "http://") ||
		strings.HasPrefix(lower, "https://") ||
		strings.HasPrefix(lower, "mailto:")
}
