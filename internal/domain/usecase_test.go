package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestUseCase_BuildPrompt_InputOnly(t *testing.T) {
	t.Parallel()

	uc := UseCase{ID: "summary", PromptTemplate: "Summarize:\n{input_text}"}

	got, err := uc.BuildPrompt("Cats sleep a lot.", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Summarize:\nCats sleep a lot." {
		t.Errorf("got %q", got)
	}
}

func TestUseCase_BuildPrompt_TargetLanguageRequired(t *testing.T) {
	t.Parallel()

	uc := UseCase{
		ID:             "translate",
		PromptTemplate: "Translate into {target_language}: {input_text}",
		ExtraParams:    []string{ParamTargetLanguage},
	}

	_, err := uc.BuildPrompt("Bonjour tout le monde", "  ")
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	got, err := uc.BuildPrompt("Bonjour tout le monde", "German")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Translate into German: Bonjour tout le monde" {
		t.Errorf("got %q", got)
	}
	if strings.Count(got, "German") != 1 {
		t.Errorf("expected target language exactly once, got %q", got)
	}
}

func TestUseCase_BuildPrompt_InputIsNotRescanned(t *testing.T) {
	t.Parallel()

	uc := UseCase{
		PromptTemplate: "{target_language} <- {input_text}",
		ExtraParams:    []string{ParamTargetLanguage},
	}

	got, err := uc.BuildPrompt("literal {target_language} token", "Spanish")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Spanish <- literal {target_language} token" {
		t.Errorf("got %q", got)
	}
}

func TestUseCase_BuildPrompt_IgnoresTargetLanguageWhenUndeclared(t *testing.T) {
	t.Parallel()

	uc := UseCase{PromptTemplate: "{input_text} {target_language}"}

	got, err := uc.BuildPrompt("hello there", "French")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "hello there {target_language}" {
		t.Errorf("got %q", got)
	}
}
