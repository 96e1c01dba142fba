package parsing

import (
	"fmt"
	"math"
	"strings"

	"github.com/jonathan/resume-extractor/internal/types"
)

// Scored field names
const (
	FieldFirstName = "firstName"
	FieldLastName  = "lastName"
	FieldEmail     = "email"
	FieldPhone     = "phone"
	FieldSkills    = "skills"
	FieldTitle     = "title"
	FieldYears     = "yearsOfExperience"
	FieldLinkedin  = "linkedin"
	FieldGithub    = "github"
	FieldPortfolio = "portfolio"
)

// DefaultThreshold is the score at which a deterministic record is complete.
const DefaultThreshold = 0.6

// scoredFields fixes the order fields are summed and reported in.
var scoredFields = []string{
	FieldFirstName, FieldEmail, FieldSkills, FieldTitle,
	FieldLastName, FieldYears, FieldPhone, FieldLinkedin,
	FieldGithub, FieldPortfolio,
}

// populated reports whether a field carries a value
var populated = map[string]func(*types.StructuredRecord) bool{
	FieldFirstName: func(r *types.StructuredRecord) bool { return nonBlank(r.FirstName) },
	FieldLastName:  func(r *types.StructuredRecord) bool { return nonBlank(r.LastName) },
	FieldEmail:     func(r *types.StructuredRecord) bool { return nonBlank(r.Contact.Email) },
	FieldPhone:     func(r *types.StructuredRecord) bool { return nonBlank(r.Contact.Phone) },
	FieldSkills:    func(r *types.StructuredRecord) bool { return len(r.Skills) > 0 },
	FieldTitle:     func(r *types.StructuredRecord) bool { return nonBlank(r.Title) },
	FieldYears:     func(r *types.StructuredRecord) bool { return r.YearsOfExperience > 0 },
	FieldLinkedin:  func(r *types.StructuredRecord) bool { return nonBlank(r.Contact.Linkedin) },
	FieldGithub:    func(r *types.StructuredRecord) bool { return nonBlank(r.Contact.Github) },
	FieldPortfolio: func(r *types.StructuredRecord) bool { return nonBlank(r.Contact.Portfolio) },
}

// FieldName resolves a scored field name case-insensitively.
func FieldName(name string) (string, bool) {
	for _, f := range scoredFields {
		if strings.EqualFold(f, strings.TrimSpace(name)) {
			return f, true
		}
	}
	return name, false
}

func nonBlank(s string) bool {
	return strings.TrimSpace(s) != ""
}

// ScoringPolicy is the weight table and completeness threshold.
type ScoringPolicy struct {
	Weights   map[string]float64
	Threshold float64
}

// DefaultScoringPolicy returns the reference weights (summing to 1.0) and threshold.
func DefaultScoringPolicy() ScoringPolicy {
	return ScoringPolicy{
		Weights: map[string]float64{
			FieldFirstName: 0.15,
			FieldEmail:     0.15,
			FieldSkills:    0.20,
			FieldTitle:     0.10,
			FieldLastName:  0.10,
			FieldYears:     0.10,
			FieldPhone:     0.05,
			FieldLinkedin:  0.05,
			FieldGithub:    0.05,
			FieldPortfolio: 0.05,
		},
		Threshold: DefaultThreshold,
	}
}

// Validate checks the threshold range, the weight names and signs, and that
// the weights have a positive total.
func (p ScoringPolicy) Validate() error {
	if p.Threshold < 0 || p.Threshold > 1 || math.IsNaN(p.Threshold) {
		return &ValidationError{Field: "threshold", Message: fmt.Sprintf("must be within [0,1], got %v", p.Threshold)}
	}
	total := 0.0
	for name, w := range p.Weights {
		if _, ok := populated[name]; !ok {
			return &ValidationError{Field: "weights", Message: fmt.Sprintf("unknown field %q", name)}
		}
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return &ValidationError{Field: "weights." + name, Message: fmt.Sprintf("must be a non-negative number, got %v", w)}
		}
		total += w
	}
	if total <= 0 {
		return &ValidationError{Field: "weights", Message: "must sum to a positive value"}
	}
	return nil
}

// Scorer computes completeness scores under a fixed policy.
type Scorer struct {
	policy ScoringPolicy
	total  float64
}

// NewScorer validates the policy and returns a scorer for it.
func NewScorer(policy ScoringPolicy) (*Scorer, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	weights := make(map[string]float64, len(policy.Weights))
	total := 0.0
	for _, name := range scoredFields {
		if w, ok := policy.Weights[name]; ok {
			weights[name] = w
			total += w
		}
	}
	policy.Weights = weights
	return &Scorer{policy: policy, total: total}, nil
}

// DefaultScorer returns a scorer for DefaultScoringPolicy.
func DefaultScorer() *Scorer {
	s, err := NewScorer(DefaultScoringPolicy())
	if err != nil {
		panic(fmt.Sprintf("default scoring policy is invalid: %v", err))
	}
	return s
}

// Policy returns the scorer's policy.
func (s *Scorer) Policy() ScoringPolicy {
	return s.policy
}

// Score sums the weights of populated fields, normalized by the total weight
// and rounded to six decimals so the threshold comparison is stable.
func (s *Scorer) Score(rec *types.StructuredRecord) types.CompletenessScore {
	result := types.CompletenessScore{Populated: []string{}}
	if rec == nil {
		return result
	}

	sum := 0.0
	for _, name := range scoredFields {
		w, ok := s.policy.Weights[name]
		if !ok || !populated[name](rec) {
			continue
		}
		sum += w
		result.Populated = append(result.Populated, name)
	}

	result.Score = math.Round(sum/s.total*1e6) / 1e6
	result.IsComplete = result.Score >= s.policy.Threshold
	return result
}
