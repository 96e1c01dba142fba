// Package aiextract turns a résumé document into a structured record with a
// generative model, then repairs the profile links the model returns.
package aiextract

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jonathan/resume-extractor/internal/document"
	"github.com/jonathan/resume-extractor/internal/links"
	"github.com/jonathan/resume-extractor/internal/llm"
	"github.com/jonathan/resume-extractor/internal/logger"
	"github.com/jonathan/resume-extractor/internal/merge"
	"github.com/jonathan/resume-extractor/internal/prompts"
	"github.com/jonathan/resume-extractor/internal/schemas"
	"github.com/jonathan/resume-extractor/internal/skills"
	"github.com/jonathan/resume-extractor/internal/types"
)

const promptFile = "extraction.json"

// fallbackKeywords maps social slots to the URL substrings that identify them
// in a raw model response. The first matching URL per slot is kept.
var fallbackKeywords = []struct {
	slot     string
	keywords []string
}{
	{types.SlotLinkedin, []string{"linkedin.com"}},
	{types.SlotGithub, []string{"github.com"}},
	{types.SlotPortfolio, []string{"vercel.app", "netlify.app"}},
	{types.SlotLeetcode, []string{"leetcode.com"}},
}

// Input is the document handed to the model.
type Input struct {
	// Data is sent to the model as an attachment when non-empty
	Data []byte
	// Doc is the decoded document. Its text is sent inline when Data is empty.
	Doc *document.Document
	// Classified are the document's classified links, used to fill profile
	// URLs the model response does not contain
	Classified *links.ClassifiedSet
}

// Outcome describes one adapter run.
type Outcome struct {
	Record *types.StructuredRecord
	// UsedAI is true when a model record contributed to Record
	UsedAI bool
	// Absorbed is the model failure replaced by the fallback record, if any
	Absorbed error
	// RawURLs are the URLs scanned from the model response
	RawURLs []string
}

// Adapter runs model extraction. A nil client means the service is not configured.
type Adapter struct {
	client       llm.Client
	tier         llm.ModelTier
	schema       llm.ExtractionSchema
	attachedNote string
	maxSkills    int
	logger       *zerolog.Logger
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithLogger overrides the logger carried by the request context.
func WithLogger(l zerolog.Logger) Option {
	return func(a *Adapter) { a.logger = &l }
}

// WithTier selects the model tier.
func WithTier(tier llm.ModelTier) Option {
	return func(a *Adapter) { a.tier = tier }
}

// WithMaxSkills caps the skills kept from the model record.
func WithMaxSkills(n int) Option {
	return func(a *Adapter) {
		if n > 0 {
			a.maxSkills = n
		}
	}
}

// NewAdapter builds an adapter around client.
func NewAdapter(client llm.Client, opts ...Option) *Adapter {
	a := &Adapter{
		client: client,
		tier:   llm.TierStandard,
		schema: llm.ResumeProfileSchema(
			prompts.MustGet(promptFile, "profile-description"),
			prompts.MustLines(promptFile, "url-rules"),
		),
		attachedNote: prompts.MustGet(promptFile, "attached-document"),
		maxSkills:    merge.DefaultMaxSkills,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Configured reports whether a generative client is available.
func (a *Adapter) Configured() bool {
	return a != nil && a.client != nil
}

// Extract returns the model record merged with fallback. Model failures are
// absorbed when fallback is non-nil, in which case fallback is returned.
func (a *Adapter) Extract(ctx context.Context, in Input, fallback *types.StructuredRecord) (*types.StructuredRecord, error) {
	out, err := a.Run(ctx, in, fallback)
	if err != nil {
		return nil, err
	}
	return out.Record, nil
}

// Run is Extract with the details of what happened.
func (a *Adapter) Run(ctx context.Context, in Input, fallback *types.StructuredRecord) (*Outcome, error) {
	log := a.log(ctx)

	if !a.Configured() {
		if fallback != nil {
			log.Info().Msg("generative service not configured, using fallback record")
			return &Outcome{Record: fallback.Clone()}, nil
		}
		return nil, &ConfigurationError{Message: "generative service is not configured and no fallback record exists"}
	}

	rec, rawURLs, err := a.generate(ctx, in)
	if err != nil {
		if fallback == nil || ctx.Err() != nil {
			return nil, err
		}
		log.Warn().Err(err).Msg("AI extraction failed, using fallback record")
		return &Outcome{Record: fallback.Clone(), Absorbed: err}, nil
	}

	if fallback != nil {
		rec = merge.Records(fallback, rec, merge.Options{MaxSkills: a.maxSkills})
	}
	return &Outcome{Record: rec, UsedAI: true, RawURLs: rawURLs}, nil
}

// generate calls the model and returns its repaired record plus the URLs
// found in the raw response.
func (a *Adapter) generate(ctx context.Context, in Input) (*types.StructuredRecord, []string, error) {
	prompt, attachment, err := a.buildRequest(in)
	if err != nil {
		return nil, nil, err
	}

	raw, err := a.client.GenerateFromDocument(ctx, prompt, attachment, a.tier)
	if err != nil {
		return nil, nil, &AIServiceError{Message: "failed to generate record", Cause: err}
	}

	rec, err := ParseRecord(raw)
	if err != nil {
		return nil, nil, err
	}

	rawURLs := links.UniqueStrings(links.ScanURLs(raw))
	fallbackLinks := fallbackLinksFrom(rawURLs, in.Classified)
	repairLinks(rec, fallbackLinks)

	rec.Skills = skills.Dedupe(rec.Skills, a.maxSkills)
	rec.ExtractedURLs = rawURLs
	return rec, rawURLs, nil
}

func (a *Adapter) buildRequest(in Input) (string, llm.Attachment, error) {
	if len(in.Data) > 0 {
		mime := "application/pdf"
		format := document.FormatPDF
		if in.Doc != nil {
			mime, format = in.Doc.MIMEType(), in.Doc.Format
		} else if f, err := document.DetectFormat(in.Data); err == nil {
			format = f
			mime = (&document.Document{Format: f}).MIMEType()
		}
		note := prompts.Format(a.attachedNote, map[string]string{"Format": strings.ToUpper(string(format))})
		return llm.BuildExtractionPrompt(a.schema, "", note), llm.Attachment{MIMEType: mime, Data: in.Data}, nil
	}

	if in.Doc != nil && strings.TrimSpace(in.Doc.Text) != "" {
		return llm.BuildExtractionPrompt(a.schema, in.Doc.Text, ""), llm.Attachment{}, nil
	}
	return "", llm.Attachment{}, &AIServiceError{Message: "no document content to send"}
}

// ParseRecord isolates the JSON object in a model response, checks it against
// the record schema and decodes it. Anything unusable is a ModelOutputError.
func ParseRecord(raw string) (*types.StructuredRecord, error) {
	cleaned := llm.CleanJSONBlock(raw)
	if cleaned == "" {
		return nil, &ModelOutputError{Message: "empty response", Raw: truncate(raw, maxRawSnippet)}
	}

	if err := schemas.ValidateRecordJSON(cleaned); err != nil {
		var vErr *schemas.ValidationError
		if errors.As(err, &vErr) {
			return nil, &ModelOutputError{Message: "response does not match the record schema", Raw: truncate(raw, maxRawSnippet), Cause: err}
		}
		return nil, &ModelOutputError{Message: "response is not valid JSON", Raw: truncate(raw, maxRawSnippet), Cause: err}
	}

	rec := types.NewRecord()
	if err := json.Unmarshal([]byte(cleaned), rec); err != nil {
		return nil, &ModelOutputError{Message: "failed to decode record", Raw: truncate(raw, maxRawSnippet), Cause: err}
	}
	fillNilCollections(rec)
	return rec, nil
}

// fallbackLinksFrom picks one URL per social slot, from the raw response
// first and from high-confidence document links second.
func fallbackLinksFrom(rawURLs []string, classified *links.ClassifiedSet) map[string]string {
	out := make(map[string]string, len(fallbackKeywords))
	for _, fk := range fallbackKeywords {
		for _, u := range rawURLs {
			lower := strings.ToLower(u)
			if containsAny(lower, fk.keywords) && links.IsValidURL(u) {
				out[fk.slot] = u
				break
			}
		}
		if out[fk.slot] != "" {
			continue
		}
		if cl, ok := classified.Best(types.SlotPlatforms[fk.slot]); ok && cl.Confidence >= links.PortfolioConfidence {
			if u := links.EnsureScheme(cl.URL); links.IsValidURL(u) {
				out[fk.slot] = u
			}
		}
	}
	return out
}

// repairLinks replaces invalid contact URLs with the fallback (possibly empty)
// and fills missing or invalid social slots from non-empty fallbacks.
func repairLinks(rec *types.StructuredRecord, fallback map[string]string) {
	for _, fk := range fallbackKeywords {
		slot := fk.slot
		if !links.IsValidURL(rec.Contact.ContactURL(slot)) {
			rec.Contact.SetContactURL(slot, fallback[slot])
		}

		url := fallback[slot]
		if current, ok := rec.SocialLink(slot); ok && links.IsValidURL(current.URL) {
			url = current.URL
		}
		rec.SetSocialLink(slot, url)
	}
}

func fillNilCollections(rec *types.StructuredRecord) {
	if rec.Education == nil {
		rec.Education = []types.EducationEntry{}
	}
	if rec.Skills == nil {
		rec.Skills = []string{}
	}
	if rec.SocialLinks == nil {
		rec.SocialLinks = []types.SocialLink{}
	}
	if rec.ExtractedURLs == nil {
		rec.ExtractedURLs = []string{}
	}
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func (a *Adapter) log(ctx context.Context) *zerolog.Logger {
	if a.logger != nil {
		return a.logger
	}
	return logger.Ctx(ctx)
}
