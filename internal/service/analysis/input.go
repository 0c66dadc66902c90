package analysis

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/summarizer-backend/internal/catalog"
	"github.com/heartmarshall/summarizer-backend/internal/domain"
)

// AnalyzeInput holds parameters for the analyze operation.
type AnalyzeInput struct {
	Text           string
	UseCaseID      string
	TargetLanguage string
}

// Validate checks the request shape. Lengths are counted in characters.
func (i AnalyzeInput) Validate(maxInputLength int) error {
	var errs []domain.FieldError

	n := utf8.RuneCountInString(i.Text)
	switch {
	case n < catalog.MinInputLength:
		errs = append(errs, domain.FieldError{
			Field:   "text",
			Message: fmt.Sprintf("must be at least %d characters", catalog.MinInputLength),
		})
	case n > maxInputLength:
		errs = append(errs, domain.FieldError{
			Field:   "text",
			Message: fmt.Sprintf("must be at most %d characters", maxInputLength),
		})
	}

	if strings.TrimSpace(i.UseCaseID) == "" {
		errs = append(errs, domain.FieldError{Field: "usecase_id", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ListHistoryInput holds pagination parameters. Nil means default.
type ListHistoryInput struct {
	Limit *int
	Skip  *int
}

// resolve applies defaults and validates bounds.
func (i ListHistoryInput) resolve(defaultLimit, maxLimit int) (limit, skip int, err error) {
	limit, skip = defaultLimit, 0
	if i.Limit != nil {
		limit = *i.Limit
	}
	if i.Skip != nil {
		skip = *i.Skip
	}

	var errs []domain.FieldError
	if limit < 1 || limit > maxLimit {
		errs = append(errs, domain.FieldError{Field: "limit", Message: fmt.Sprintf("must be between 1 and %d", maxLimit)})
	}
	if skip < 0 {
		errs = append(errs, domain.FieldError{Field: "skip", Message: "must be >= 0"})
	}
	if len(errs) > 0 {
		return 0, 0, &domain.ValidationError{Errors: errs}
	}
	return limit, skip, nil
}
