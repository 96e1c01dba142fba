package links

import (
	"regexp"
	"strings"

	"mvdan.cc/xurls/v2"

	"github.com/jonathan/resume-extractor/internal/document"
	"github.com/jonathan/resume-extractor/internal/types"
)

// Discovery confidences
const (
	AnnotationConfidence = 1.0
	TextConfidence       = 0.8
)

var webURLRe = mustStrictWebURLs()

func mustStrictWebURLs() *regexp.Regexp {
	re, err := xurls.StrictMatchingScheme(`https?://`)
	if err != nil {
		panic(err)
	}
	return re
}

// ScanURLs returns every http(s) URL in text, in order, duplicates included.
func ScanURLs(text string) []string {
	found := webURLRe.FindAllString(text, -1)
	if found == nil {
		return []string{}
	}
	return found
}

// Discovery is the result of link discovery over one document
type Discovery struct {
	// Links are annotation links then text links, deduplicated by Normalize
	Links []types.RawLink
	// TextURLs are the URLs scanned from the text before deduplication
	TextURLs []string
	// AnnotationURLs are the raw annotation targets in document order
	AnnotationURLs []string
}

// Discover combines annotation links and URLs scanned from text. Annotations
// are processed first, so they win over a text duplicate of the same URL.
func Discover(annotations []document.AnnotationLink, text string) *Discovery {
	d := &Discovery{
		Links:          []types.RawLink{},
		TextURLs:       []string{},
		AnnotationURLs: []string{},
	}
	seen := make(map[string]bool)
	add := func(link types.RawLink) {
		key := Normalize(link.URL)
		if key == "" || seen[key] {
			return
		}
		seen[key] = true
		d.Links = append(d.Links, link)
	}

	for _, a := range annotations {
		u := strings.TrimSpace(a.URL)
		if u == "" {
			continue
		}
		d.AnnotationURLs = append(d.AnnotationURLs, u)
		link := types.RawLink{URL: u, SourceType: types.SourceAnnotation, Confidence: AnnotationConfidence}
		if a.Page > 0 {
			page := a.Page
			link.Page = &page
		}
		add(link)
	}

	for _, loc := range webURLRe.FindAllStringIndex(text, -1) {
		u := text[loc[0]:loc[1]]
		d.TextURLs = append(d.TextURLs, u)
		add(types.RawLink{
			URL:        u,
			SourceType: types.SourceText,
			Confidence: TextConfidence,
			Context:    lineAround(text, loc[0], loc[1]),
		})
	}

	return d
}

// AllURLs returns the raw annotation and text URLs, exact duplicates removed,
// in first-seen order.
func (d *Discovery) AllURLs() []string {
	if d == nil {
		return []string{}
	}
	return UniqueStrings(d.AnnotationURLs, d.TextURLs)
}

// UniqueStrings concatenates lists, dropping blanks and exact duplicates.
func UniqueStrings(lists ...[]string) []string {
	out := []string{}
	seen := make(map[string]bool)
	for _, list := range lists {
		for _, s := range list {
			if s == "" || seen[s] {
				continue
			}
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

// lineAround returns the trimmed line of text containing [start, end).
func lineAround(text string, start, end int) string {
	lineStart := strings.LastIndexByte(text[:start], '\n') + 1
	lineEnd := len(text)
	if i := strings.IndexByte(text[end:], '\n'); i >= 0 {
		lineEnd = end + i
	}
	return strings.TrimSpace(text[lineStart:lineEnd])
}
