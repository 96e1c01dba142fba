package aiextract

import "fmt"

// maxRawSnippet bounds how much of a bad model response an error carries
const maxRawSnippet = 500

// AIServiceError is a failed call to the generative service (network, quota, auth).
type AIServiceError struct {
	Message string
	Cause   error
}

func (e *AIServiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("AI service error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("AI service error: %s", e.Message)
}

func (e *AIServiceError) Unwrap() error {
	return e.Cause
}

// ModelOutputError is a model response that is not a usable JSON record.
type ModelOutputError struct {
	Message string
	Raw     string // Truncated response text
	Cause   error
}

func (e *ModelOutputError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("model output error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("model output error: %s", e.Message)
}

func (e *ModelOutputError) Unwrap() error {
	return e.Cause
}

// ConfigurationError means the generative service is not configured and no
// fallback record was supplied.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s", e.Message)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
