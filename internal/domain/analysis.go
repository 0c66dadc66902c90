package domain

import (
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// AnalysisRecord is one persisted /analyze result. Records are immutable;
// deletion by the owner is the only mutation.
type AnalysisRecord struct {
	ID             uuid.UUID
	SubjectID      string
	OwnerEmail     string
	UseCaseID      string
	UseCaseName    string
	InputText      string
	Result         string
	TargetLanguage *string
	CreatedAt      time.Time
}

// Preview returns the first n characters of the input text, followed by
// "..." when the text was truncated.
func (r AnalysisRecord) Preview(n int) string {
	return Truncate(r.InputText, n)
}

// Truncate cuts s to at most n runes and marks the cut with "...".
func Truncate(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n]) + "..."
}

// Sampling carries the generation parameters passed to the inference backend.
type Sampling struct {
	MaxTokens   int
	Temperature float64
	TopP        float64
}

// CompletionRequest is a single-shot chat-style inference request.
type CompletionRequest struct {
	SystemPrompt string
	UserPrompt   string
	Sampling     Sampling
}
