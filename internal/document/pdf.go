package document

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"golang.org/x/sync/errgroup"
)

// pageResult holds what was read from one page
type pageResult struct {
	text  string
	links []AnnotationLink
}

func decodePDF(ctx context.Context, data []byte, workers int) (doc *Document, err error) {
	// The parser panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = &DecodeError{Message: "malformed PDF", Cause: fmt.Errorf("%v", r)}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &DecodeError{Message: "failed to open PDF", Cause: err}
	}

	numPages := reader.NumPage()
	if workers <= 0 {
		workers = DefaultWorkers
	}

	results := make([]pageResult, numPages)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := 1; i <= numPages; i++ {
		pageNum := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := readPage(reader, pageNum)
			if err != nil {
				return err
			}
			results[pageNum-1] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if ctx.Err() != nil {
			return nil, &DecodeError{Message: "decode cancelled", Cause: ctx.Err()}
		}
		return nil, &DecodeError{Message: "failed to read PDF pages", Cause: err}
	}

	texts := make([]string, 0, numPages)
	links := make([]AnnotationLink, 0)
	for _, res := range results {
		if res.text != "" {
			texts = append(texts, res.text)
		}
		links = append(links, res.links...)
	}

	return &Document{
		Format:    FormatPDF,
		PageCount: numPages,
		Text:      cleanText(strings.Join(texts, "\n")),
		Links:     links,
		Metadata:  readInfo(reader),
	}, nil
}

// readPage extracts one page's text, one line per row of positioned glyphs,
// and its /Link annotations.
// A page whose content stream cannot be interpreted contributes no text but
// keeps its links.
func readPage(reader *pdf.Reader, pageNum int) (res pageResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("page %d: %v", pageNum, r)
		}
	}()

	page := reader.Page(pageNum)
	if page.V.IsNull() {
		return pageResult{}, nil
	}

	res.text = layoutText(pageGlyphs(page))
	if strings.TrimSpace(res.text) == "" {
		if text, textErr := page.GetPlainText(nil); textErr == nil {
			res.text = text
		}
	}
	res.links = readLinkAnnotations(page.V.Key("Annots"), pageNum)
	return res, nil
}

func readLinkAnnotations(annots pdf.Value, pageNum int) []AnnotationLink {
	var links []AnnotationLink
	for i := 0; i < annots.Len(); i++ {
		annot := annots.Index(i)
		if annot.Key("Subtype").Name() != "Link" {
			continue
		}
		uri := strings.TrimSpace(annot.Key("A").Key("URI").Text())
		if uri == "" {
			continue
		}
		links = append(links, AnnotationLink{
			URL:  uri,
			Page: pageNum,
			Rect: readRect(annot.Key("Rect")),
		})
	}
	return links
}

func readRect(v pdf.Value) *Rect {
	if v.Len() != 4 {
		return nil
	}
	return &Rect{
		X1: v.Index(0).Float64(),
		Y1: v.Index(1).Float64(),
		X2: v.Index(2).Float64(),
		Y2: v.Index(3).Float64(),
	}
}

// readInfo copies the string entries of the document information dictionary.
func readInfo(reader *pdf.Reader) map[string]string {
	meta := map[string]string{}
	info := reader.Trailer().Key("Info")
	if info.IsNull() {
		return meta
	}
	for _, key := range info.Keys() {
		v := info.Key(key)
		if v.Kind() != pdf.String {
			continue
		}
		if s := strings.TrimSpace(v.Text()); s != "" {
			meta[key] = s
		}
	}
	return meta
}
