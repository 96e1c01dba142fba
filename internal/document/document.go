// Package document decodes résumé bytes (PDF, HTML or plain text) into text,
// embedded hyperlink annotations, and metadata.
package document

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
)

// Format identifies how a document was decoded
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatHTML Format = "html"
	FormatText Format = "text"
)

// DefaultWorkers is the default number of pages decoded concurrently.
const DefaultWorkers = 4

// Document is the decoded form of a résumé
type Document struct {
	Format    Format
	PageCount int
	Text      string
	Links     []AnnotationLink
	Metadata  map[string]string
}

// AnnotationLink is an embedded hyperlink and where it sits in the document
type AnnotationLink struct {
	URL  string
	Page int // 1-based
	Rect *Rect
}

// Rect is an annotation rectangle in page coordinates
type Rect struct {
	X1, Y1, X2, Y2 float64
}

// MIMEType returns the media type matching the document format.
func (d *Document) MIMEType() string {
	switch d.Format {
	case FormatPDF:
		return "application/pdf"
	case FormatHTML:
		return "text/html"
	default:
		return "text/plain"
	}
}

// DecodeError represents a document that could not be decoded.
type DecodeError struct {
	Message string
	Cause   error
}

func (e *DecodeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("decode error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("decode error: %s", e.Message)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}

// Options configures decoding.
type Options struct {
	// Workers bounds how many PDF pages are decoded at once
	Workers int
}

// DefaultOptions returns the default decode options.
func DefaultOptions() *Options {
	return &Options{Workers: DefaultWorkers}
}

// DetectFormat sniffs the document format from its leading bytes.
func DetectFormat(data []byte) (Format, error) {
	head := bytes.TrimLeft(data, " \t\r\n\uFEFF")
	if bytes.HasPrefix(head, []byte("%PDF-")) {
		return FormatPDF, nil
	}
	contentType := http.DetectContentType(data)
	switch {
	case strings.HasPrefix(contentType, "text/html"):
		return FormatHTML, nil
	case strings.HasPrefix(contentType, "text/"):
		return FormatText, nil
	}
	return "", &DecodeError{Message: fmt.Sprintf("unsupported document format %q", contentType)}
}

// Decode turns document bytes into a Document. Every failure is a *DecodeError.
func Decode(ctx context.Context, data []byte, opts *Options) (*Document, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &DecodeError{Message: "empty document"}
	}

	format, err := DetectFormat(data)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatPDF:
		return decodePDF(ctx, data, opts.Workers)
	case FormatHTML:
		return decodeHTML(data)
	default:
		return &Document{
			Format:    FormatText,
			PageCount: 1,
			Text:      cleanText(string(data)),
			Links:     []AnnotationLink{},
			Metadata:  map[string]string{},
		}, nil
	}
}
