// Package steps defines the extraction stages and the transitions allowed
// between them.
package steps

import (
	"fmt"
	"time"
)

// Stage names
const (
	Start      = "START"
	Score      = "SCORE"
	AIFallback = "AI_FALLBACK"
	Done       = "DONE"
)

// Stage categories
const (
	CategoryDeterministic = "deterministic"
	CategoryAI            = "ai"
	CategoryTerminal      = "terminal"
)

// Step statuses
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusSkipped   = "skipped"
)

// StepDefinition defines metadata for a pipeline stage
type StepDefinition struct {
	Name     string
	Category string
	Next     []string
}

// StepRegistry holds every stage and where it may lead
var StepRegistry = map[string]StepDefinition{
	Start: {
		Name:     Start,
		Category: CategoryDeterministic,
		Next:     []string{Score},
	},
	Score: {
		Name:     Score,
		Category: CategoryDeterministic,
		Next:     []string{Done, AIFallback},
	},
	AIFallback: {
		Name:     AIFallback,
		Category: CategoryAI,
		Next:     []string{Done},
	},
	Done: {
		Name:     Done,
		Category: CategoryTerminal,
	},
}

// StepResult records one executed stage
type StepResult struct {
	Step     string         `json:"step"`
	Status   string         `json:"status"`
	Duration time.Duration  `json:"duration"`
	Error    string         `json:"error,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// TransitionError is an attempt to move between stages that are not connected
type TransitionError struct {
	From string
	To   string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid stage transition: %s -> %s", e.From, e.To)
}

// ValidateTransition checks that to directly follows from. An empty from
// means the run has not started, which only Start may follow.
func ValidateTransition(from, to string) error {
	if _, ok := StepRegistry[to]; !ok {
		return fmt.Errorf("unknown step: %s", to)
	}
	if from == "" {
		if to != Start {
			return &TransitionError{From: "(none)", To: to}
		}
		return nil
	}
	def, ok := StepRegistry[from]
	if !ok {
		return fmt.Errorf("unknown step: %s", from)
	}
	for _, next := range def.Next {
		if next == to {
			return nil
		}
	}
	return &TransitionError{From: from, To: to}
}
