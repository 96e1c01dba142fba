package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-extractor/internal/aiextract"
	"github.com/jonathan/resume-extractor/internal/llm"
	"github.com/jonathan/resume-extractor/internal/logger"
	"github.com/jonathan/resume-extractor/internal/observability"
	"github.com/jonathan/resume-extractor/internal/parsing"
	"github.com/jonathan/resume-extractor/internal/pipeline"
	"github.com/jonathan/resume-extractor/internal/schemas"
)

type extractOptions struct {
	src       sourceFlags
	out       string
	forceAI   bool
	verbose   bool
	apiKey    string
	tier      string
	threshold float64
}

func newExtractCmd(a *app) *cobra.Command {
	o := &extractOptions{}
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract a structured profile from a résumé",
		Long: "Runs the extraction pipeline on a local or remote résumé and writes the record as JSON. " +
			"The generative model is used only when the pattern-based record scores below the threshold " +
			"or --force-ai is set.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runExtract(cmd, o)
		},
	}

	o.src.register(cmd)
	cmd.Flags().StringVarP(&o.out, "out", "o", "", "Write the record JSON to this file instead of stdout")
	cmd.Flags().BoolVar(&o.forceAI, "force-ai", false, "Run the generative model even when the record is complete")
	cmd.Flags().BoolVarP(&o.verbose, "verbose", "v", false, "Print stage progress, score and links to stderr")
	cmd.Flags().StringVar(&o.apiKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	cmd.Flags().StringVar(&o.tier, "tier", "", "Model tier: lite, standard or advanced (overrides config)")
	cmd.Flags().Float64Var(&o.threshold, "threshold", 0, "Completeness threshold in [0,1] (overrides config)")
	return cmd
}

func (a *app) runExtract(cmd *cobra.Command, o *extractOptions) error {
	cfg := a.cfg
	flags := cmd.Flags()
	if flags.Changed("api-key") {
		cfg.AI.APIKey = o.apiKey
	}
	if flags.Changed("tier") {
		cfg.AI.Tier = o.tier
	}
	if flags.Changed("threshold") {
		cfg.Scoring.Threshold = o.threshold
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx := cmd.Context()

	scorer, err := parsing.NewScorer(cfg.ScoringPolicy())
	if err != nil {
		return fmt.Errorf("invalid scoring policy: %w", err)
	}

	var adapter *aiextract.Adapter
	if cfg.AI.APIKey != "" {
		client, err := llm.NewClient(ctx, cfg.LLMConfig(), cfg.AI.APIKey)
		if err != nil {
			return fmt.Errorf("failed to create model client: %w", err)
		}
		defer func() { _ = client.Close() }()
		adapter = aiextract.NewAdapter(client,
			aiextract.WithLogger(logger.Logger),
			aiextract.WithTier(llm.ModelTier(cfg.AI.Tier)),
			aiextract.WithMaxSkills(cfg.Extraction.MaxSkills),
		)
	}

	stderr := cmd.ErrOrStderr()
	opts := []pipeline.Option{
		pipeline.WithLogger(logger.Logger),
		pipeline.WithFetchOptions(cfg.FetchOptions()),
		pipeline.WithDecodeOptions(cfg.DecodeOptions()),
		pipeline.WithMaxSkills(cfg.Extraction.MaxSkills),
	}
	if o.verbose {
		opts = append(opts, pipeline.WithProgress(func(e pipeline.ProgressEvent) {
			_, _ = fmt.Fprintf(stderr, "[%s] %s (score %.2f)\n", e.Stage, e.Message, e.Score)
		}))
	}

	p := pipeline.New(parsing.NewExtractor(cfg.ExtractorOptions()), scorer, adapter, opts...)
	res, err := p.Run(ctx, pipeline.Input{Ref: o.src.ref(), ForceAI: o.forceAI})
	if err != nil {
		var failed *pipeline.ExtractionFailedError
		if errors.As(err, &failed) {
			return fmt.Errorf("extraction failed for %s: %w", o.src.ref(), err)
		}
		return err
	}

	if o.verbose {
		printer := observability.NewPrinter(stderr)
		printer.PrintScore(res.Score, cfg.Scoring.Threshold)
		printer.PrintTrace(res.Trace)
		printer.PrintMetadata(res.Metadata)
	}

	data, err := json.MarshalIndent(res.Record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	if err := schemas.ValidateRecordJSON(string(data)); err != nil {
		var schemaErr *schemas.ValidationError
		if errors.As(err, &schemaErr) {
			return fmt.Errorf("extracted record does not validate against schema: %w", err)
		}
		_, _ = fmt.Fprintf(stderr, "Warning: Could not validate output against schema: %v\n", err)
	}

	if o.out == "" {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}
	if err := os.WriteFile(o.out, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	_, _ = fmt.Fprintf(stderr, "Record written to %s (request %s, ai=%t)\n", o.out, res.RequestID, res.UsedAI)
	return nil
}
