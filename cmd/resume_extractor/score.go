package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-extractor/internal/logger"
	"github.com/jonathan/resume-extractor/internal/observability"
	"github.com/jonathan/resume-extractor/internal/parsing"
	"github.com/jonathan/resume-extractor/internal/pipeline"
)

func newScoreCmd(a *app) *cobra.Command {
	src := &sourceFlags{}
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score the pattern-based record of a résumé",
		Long: "Runs the deterministic stage of extract (pattern extraction enriched with the document's " +
			"embedded links) and prints the record with the completeness score extract branches on. " +
			"The generative model is never called.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			scorer, err := parsing.NewScorer(a.cfg.ScoringPolicy())
			if err != nil {
				return fmt.Errorf("invalid scoring policy: %w", err)
			}
			data, err := a.fetchDocument(cmd.Context(), src)
			if err != nil {
				return err
			}

			p := pipeline.New(parsing.NewExtractor(a.cfg.ExtractorOptions()), scorer, nil,
				pipeline.WithLogger(logger.Logger),
				pipeline.WithDecodeOptions(a.cfg.DecodeOptions()),
			)
			analysis, err := p.Analyze(cmd.Context(), data)
			if err != nil {
				return err
			}

			printer := observability.NewPrinter(cmd.OutOrStdout())
			printer.PrintRecord(analysis.Record)
			printer.PrintScore(analysis.Score, a.cfg.Scoring.Threshold)
			return nil
		},
	}
	src.register(cmd)
	return cmd
}
