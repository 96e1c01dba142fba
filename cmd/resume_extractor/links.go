package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-extractor/internal/links"
	"github.com/jonathan/resume-extractor/internal/observability"
)

func newLinksCmd(a *app) *cobra.Command {
	src := &sourceFlags{}
	cmd := &cobra.Command{
		Use:   "links",
		Short: "List the links found in a résumé",
		Long:  "Decodes a résumé and prints its embedded and text links with their classification, followed by the document metadata.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			doc, err := a.loadDocument(cmd.Context(), src)
			if err != nil {
				return err
			}
			discovery := links.Discover(doc.Links, doc.Text)
			classified := links.ClassifyMultiple(discovery.Links)

			printer := observability.NewPrinter(cmd.OutOrStdout())
			printer.PrintLinks(discovery.Links, classified.Links())
			printer.PrintMetadata(doc.Metadata)
			return nil
		},
	}
	src.register(cmd)
	return cmd
}
