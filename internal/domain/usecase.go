package domain

import (
	"slices"
	"strings"
)

// Recognized prompt placeholders.
const (
	PlaceholderInputText      = "{input_text}"
	PlaceholderTargetLanguage = "{target_language}"
)

// ParamTargetLanguage is the only recognized extra parameter.
const ParamTargetLanguage = "target_language"

// UseCase is an immutable analysis template loaded from the catalog source.
type UseCase struct {
	ID             string
	Name           string
	Description    string
	OutputFormat   string
	Category       string
	PromptTemplate string
	ExtraParams    []string
}

// GlobalSettings holds catalog-wide sampling and validation parameters.
type GlobalSettings struct {
	SystemInstruction string
	Temperature       float64
	TopP              float64
	MaxInputLength    int
}

// RequiresTargetLanguage reports whether the use case declares target_language.
func (u UseCase) RequiresTargetLanguage() bool {
	return slices.Contains(u.ExtraParams, ParamTargetLanguage)
}

// BuildPrompt substitutes the input text, and the target language when the
// use case declares it, into the prompt template. Substitution is a single
// pass: placeholder tokens inside the substituted values are left untouched.
func (u UseCase) BuildPrompt(inputText, targetLanguage string) (string, error) {
	pairs := []string{PlaceholderInputText, inputText}

	if u.RequiresTargetLanguage() {
		if strings.TrimSpace(targetLanguage) == "" {
			return "", NewValidationError(ParamTargetLanguage, "'target_language' is required for this use case.")
		}
		pairs = append(pairs, PlaceholderTargetLanguage, targetLanguage)
	}

	return strings.NewReplacer(pairs...).Replace(u.PromptTemplate), nil
}
