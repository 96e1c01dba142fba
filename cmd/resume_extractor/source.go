package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-extractor/internal/document"
	"github.com/jonathan/resume-extractor/internal/fetch"
)

// sourceFlags selects the document a command reads
type sourceFlags struct {
	file string
	url  string
}

func (s *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&s.file, "file", "f", "", "Path to a local résumé file")
	cmd.Flags().StringVarP(&s.url, "url", "u", "", "URL of a remote résumé")
	cmd.MarkFlagsMutuallyExclusive("file", "url")
	cmd.MarkFlagsOneRequired("file", "url")
}

func (s *sourceFlags) ref() string {
	if s.url != "" {
		return s.url
	}
	return s.file
}

// fetchDocument reads the selected document's bytes
func (a *app) fetchDocument(ctx context.Context, src *sourceFlags) ([]byte, error) {
	res, err := fetch.Document(ctx, src.ref(), a.cfg.FetchOptions())
	if err != nil {
		return nil, err
	}
	return res.Data, nil
}

// loadDocument fetches and decodes the selected document
func (a *app) loadDocument(ctx context.Context, src *sourceFlags) (*document.Document, error) {
	data, err := a.fetchDocument(ctx, src)
	if err != nil {
		return nil, err
	}
	doc, err := document.Decode(ctx, data, a.cfg.DecodeOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", src.ref(), err)
	}
	return doc, nil
}
