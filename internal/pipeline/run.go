// Package pipeline sequences résumé extraction: deterministic patterns first,
// the generative model only when the deterministic record is incomplete.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jonathan/resume-extractor/internal/aiextract"
	"github.com/jonathan/resume-extractor/internal/document"
	"github.com/jonathan/resume-extractor/internal/fetch"
	"github.com/jonathan/resume-extractor/internal/links"
	"github.com/jonathan/resume-extractor/internal/logger"
	"github.com/jonathan/resume-extractor/internal/merge"
	"github.com/jonathan/resume-extractor/internal/parsing"
	"github.com/jonathan/resume-extractor/internal/pipeline/steps"
	"github.com/jonathan/resume-extractor/internal/types"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Stage     string  `json:"stage"`
	Message   string  `json:"message"`
	Score     float64 `json:"score,omitempty"`
	RequestID string  `json:"request_id,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// ExtractionFailedError means neither the deterministic pass nor the model
// produced a usable record.
type ExtractionFailedError struct {
	Message string
	Cause   error
}

func (e *ExtractionFailedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extraction failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("extraction failed: %s", e.Message)
}

func (e *ExtractionFailedError) Unwrap() error {
	return e.Cause
}

// Input is one extraction request. Data wins over Ref when both are set.
type Input struct {
	Data []byte
	Ref  string
	// ForceAI runs the model even when the deterministic record is complete
	ForceAI bool
}

// Result is the outcome of one extraction request
type Result struct {
	Record    *types.StructuredRecord
	Score     types.CompletenessScore // Deterministic record score
	Links     []types.ClassifiedLink
	Metadata  map[string]string
	UsedAI    bool
	RequestID string
	Trace     []steps.StepResult
}

// Pipeline holds the request-independent collaborators. It is safe for
// concurrent use; every Run works on request-scoped data only.
type Pipeline struct {
	extractor  *parsing.Extractor
	scorer     *parsing.Scorer
	adapter    *aiextract.Adapter
	fetchOpts  *fetch.Options
	decodeOpts *document.Options
	maxSkills  int
	logger     *zerolog.Logger
	onProgress ProgressCallback
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithLogger sets the base logger. The request id is added per run.
func WithLogger(l zerolog.Logger) Option {
	return func(p *Pipeline) { p.logger = &l }
}

// WithProgress registers a callback for stage transitions.
func WithProgress(cb ProgressCallback) Option {
	return func(p *Pipeline) { p.onProgress = cb }
}

// WithFetchOptions configures document download.
func WithFetchOptions(opts *fetch.Options) Option {
	return func(p *Pipeline) { p.fetchOpts = opts }
}

// WithDecodeOptions configures document decoding.
func WithDecodeOptions(opts *document.Options) Option {
	return func(p *Pipeline) { p.decodeOpts = opts }
}

// WithMaxSkills caps the skills of the returned record.
func WithMaxSkills(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.maxSkills = n
		}
	}
}

// New builds a pipeline. Nil collaborators take their defaults; a nil
// adapter means the generative service is not configured.
func New(extractor *parsing.Extractor, scorer *parsing.Scorer, adapter *aiextract.Adapter, opts ...Option) *Pipeline {
	if extractor == nil {
		extractor = parsing.NewExtractor(parsing.DefaultOptions())
	}
	if scorer == nil {
		scorer = parsing.DefaultScorer()
	}
	if adapter == nil {
		adapter = aiextract.NewAdapter(nil)
	}
	p := &Pipeline{
		extractor: extractor,
		scorer:    scorer,
		adapter:   adapter,
		maxSkills: parsing.DefaultMaxSkills,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run extracts a record from in.
func (p *Pipeline) Run(ctx context.Context, in Input) (*Result, error) {
	requestID := uuid.NewString()
	base := logger.Ctx(ctx)
	if p.logger != nil {
		base = p.logger
	}
	log := base.With().Str("request_id", requestID).Logger()
	ctx = logger.WithContext(ctx, log)

	run := &runState{p: p, result: &Result{RequestID: requestID}, log: &log}

	data := in.Data
	if len(data) == 0 {
		fetched, err := fetch.Document(ctx, in.Ref, p.fetchOpts)
		if err != nil {
			return nil, err
		}
		data = fetched.Data
	}

	// START
	run.enter(steps.Start, "decoding document and running pattern extraction", 0)
	a, err := p.analyze(ctx, data)
	if err != nil {
		return nil, err
	}
	run.result.Metadata = a.Document.Metadata
	run.result.Links = a.Classified.Links()
	det, doc, decoded, classified := a.Record, a.Document, a.Decoded, a.Classified
	run.complete(map[string]any{"pages": doc.PageCount, "links": len(a.Discovery.Links)})

	// SCORE
	score := p.scorer.Score(det)
	run.result.Score = score
	run.enter(steps.Score, fmt.Sprintf("deterministic score %.2f", score.Score), score.Score)
	threshold := p.scorer.Policy().Threshold
	run.complete(map[string]any{"score": score.Score, "threshold": threshold})

	if score.IsComplete && !in.ForceAI {
		log.Info().Float64("score", score.Score).Float64("threshold", threshold).Msg("deterministic record complete, skipping AI")
		run.skip(steps.AIFallback, map[string]any{"score": score.Score, "threshold": threshold})
		return run.finish(det), nil
	}
	log.Info().Float64("score", score.Score).Float64("threshold", threshold).Bool("forced", in.ForceAI).Msg("running AI extraction")

	// AI_FALLBACK
	run.enter(steps.AIFallback, "running AI extraction", score.Score)
	var fallback *types.StructuredRecord
	if score.Score > 0 {
		fallback = det
	}
	aiIn := aiextract.Input{Data: data, Classified: classified}
	if decoded {
		aiIn.Doc = doc
	}
	out, err := p.adapter.Run(ctx, aiIn, fallback)
	if err != nil {
		run.fail(err)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, err
		}
		return nil, &ExtractionFailedError{Message: "no usable record from pattern extraction or AI", Cause: err}
	}
	if out.Absorbed != nil {
		run.complete(map[string]any{"absorbed": out.Absorbed.Error()})
	} else {
		run.complete(map[string]any{"used_ai": out.UsedAI})
	}

	rec := out.Record
	if out.UsedAI && fallback == nil {
		rec = merge.Records(det, rec, merge.Options{MaxSkills: p.maxSkills})
	}
	run.result.UsedAI = out.UsedAI
	return run.finish(rec), nil
}

// Analysis is the deterministic half of a run.
type Analysis struct {
	Document   *document.Document
	Decoded    bool // false when decoding failed and Document is empty
	Discovery  *links.Discovery
	Classified *links.ClassifiedSet
	Record     *types.StructuredRecord
	Score      types.CompletenessScore
}

// Analyze decodes data, discovers and classifies its links, runs pattern
// extraction, enriches the record from the document links and scores it.
// This is exactly what Run decides the AI branch on. Only cancellation is an
// error.
func (p *Pipeline) Analyze(ctx context.Context, data []byte) (*Analysis, error) {
	if p.logger != nil {
		ctx = logger.WithContext(ctx, *p.logger)
	}
	a, err := p.analyze(ctx, data)
	if err != nil {
		return nil, err
	}
	a.Score = p.scorer.Score(a.Record)
	return a, nil
}

func (p *Pipeline) analyze(ctx context.Context, data []byte) (*Analysis, error) {
	doc, decoded, err := p.decode(ctx, data)
	if err != nil {
		return nil, err
	}

	discovery := links.Discover(doc.Links, doc.Text)
	classified := links.ClassifyMultiple(discovery.Links)
	logger.Ctx(ctx).Debug().
		Int("annotation_links", len(discovery.AnnotationURLs)).
		Int("text_links", len(discovery.TextURLs)).
		Int("unique_links", len(discovery.Links)).
		Msg("links discovered")

	det := p.extractor.Extract(doc.Text)
	enrich(det, classified)
	det.ExtractedURLs = discovery.AllURLs()

	return &Analysis{
		Document:   doc,
		Decoded:    decoded,
		Discovery:  discovery,
		Classified: classified,
		Record:     det,
	}, nil
}

// decode returns the decoded document and whether decoding succeeded. A
// malformed document degrades to empty text; only cancellation is an error.
func (p *Pipeline) decode(ctx context.Context, data []byte) (*document.Document, bool, error) {
	doc, err := document.Decode(ctx, data, p.decodeOpts)
	if err == nil {
		return doc, true, nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil, false, err
	}
	logger.Ctx(ctx).Warn().Err(err).Msg("document decode failed, continuing with empty text")
	return &document.Document{Metadata: map[string]string{}}, false, nil
}

// enrich fills empty profile URLs from high-confidence document links.
func enrich(rec *types.StructuredRecord, classified *links.ClassifiedSet) {
	for _, slot := range types.SocialSlots {
		if rec.Contact.ContactURL(slot) != "" {
			continue
		}
		cl, ok := classified.Best(types.SlotPlatforms[slot])
		if !ok || cl.Confidence < links.PortfolioConfidence {
			continue
		}
		u := links.EnsureScheme(cl.URL)
		if !links.IsValidURL(u) {
			continue
		}
		rec.Contact.SetContactURL(slot, u)
		rec.SetSocialLink(slot, u)
	}
}

// runState tracks the current stage of one run.
type runState struct {
	p       *Pipeline
	result  *Result
	log     *zerolog.Logger
	current string
	started time.Time
}

func (r *runState) enter(stage, message string, score float64) {
	if err := steps.ValidateTransition(r.current, stage); err != nil {
		r.log.Error().Err(err).Msg("unexpected stage transition")
	}
	r.current = stage
	r.started = time.Now()
	if r.p.onProgress != nil {
		r.p.onProgress(ProgressEvent{Stage: stage, Message: message, Score: score, RequestID: r.result.RequestID})
	}
}

func (r *runState) complete(metadata map[string]any) {
	r.record(steps.StatusCompleted, "", metadata)
}

func (r *runState) fail(err error) {
	r.record(steps.StatusFailed, err.Error(), nil)
}

// skip records a stage the run passed over without entering it.
func (r *runState) skip(stage string, metadata map[string]any) {
	r.result.Trace = append(r.result.Trace, steps.StepResult{
		Step:     stage,
		Status:   steps.StatusSkipped,
		Metadata: metadata,
	})
}

func (r *runState) record(status, errMsg string, metadata map[string]any) {
	r.result.Trace = append(r.result.Trace, steps.StepResult{
		Step:     r.current,
		Status:   status,
		Duration: time.Since(r.started),
		Error:    errMsg,
		Metadata: metadata,
	})
}

func (r *runState) finish(rec *types.StructuredRecord) *Result {
	r.enter(steps.Done, "extraction finished", r.result.Score.Score)
	r.result.Record = Sanitize(rec, r.p.maxSkills)
	r.complete(map[string]any{"used_ai": r.result.UsedAI})
	return r.result
}
