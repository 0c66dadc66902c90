package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/summarizer-backend/internal/domain"
	"github.com/heartmarshall/summarizer-backend/pkg/ctxutil"
)

// AnalyzeResult is returned by Analyze.
type AnalyzeResult struct {
	UseCaseID   string
	UseCaseName string
	Result      string
	UserEmail   string
	HistoryID   uuid.UUID
}

// Analyze runs text through the selected use case and records the result
// in the caller's history.
//
// Every precondition (input shape, use case, extra parameters) is checked
// before the inference call. A result that cannot be persisted is reported
// as a store error instead of being returned.
func (s *Service) Analyze(ctx context.Context, input AnalyzeInput) (*AnalyzeResult, error) {
	// Step 1: Identify caller
	principal, ok := ctxutil.PrincipalFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	settings := s.catalog.Settings()

	// Step 2: Validate input
	if err := input.Validate(settings.MaxInputLength); err != nil {
		return nil, err
	}

	// Step 3: Resolve use case
	uc, ok := s.catalog.Get(input.UseCaseID)
	if !ok {
		return nil, domain.NewValidationError("usecase_id",
			fmt.Sprintf("Unknown usecase_id '%s'. Available: %s", input.UseCaseID, strings.Join(s.catalog.IDs(), ", ")))
	}

	// Step 4: Build prompt
	prompt, err := uc.BuildPrompt(input.Text, input.TargetLanguage)
	if err != nil {
		return nil, err
	}

	// Step 5: Infer
	start := time.Now()
	result, err := s.llm.Complete(ctx, domain.CompletionRequest{
		SystemPrompt: settings.SystemInstruction,
		UserPrompt:   prompt,
		Sampling: domain.Sampling{
			MaxTokens:   s.cfg.MaxTokens,
			Temperature: settings.Temperature,
			TopP:        settings.TopP,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("analysis.Analyze: %w", err)
	}
	inferenceTook := time.Since(start)

	// Step 6: Persist record and track activity
	rec := domain.AnalysisRecord{
		SubjectID:   principal.SubjectID,
		OwnerEmail:  principal.Email,
		UseCaseID:   uc.ID,
		UseCaseName: uc.Name,
		InputText:   input.Text,
		Result:      result,
		CreatedAt:   s.timestamp(),
	}
	if uc.RequiresTargetLanguage() {
		lang := input.TargetLanguage
		rec.TargetLanguage = &lang
	}

	var historyID uuid.UUID
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := s.users.Upsert(ctx, principal, rec.CreatedAt); err != nil {
			return fmt.Errorf("upsert profile: %w", err)
		}
		id, err := s.history.Insert(ctx, rec)
		if err != nil {
			return fmt.Errorf("insert record: %w", err)
		}
		historyID = id
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("analysis.Analyze: %w", domain.NewStoreError(domain.StoreWrite, err))
	}

	s.log.InfoContext(ctx, "analysis completed",
		slog.String("subject_id", principal.SubjectID),
		slog.String("usecase_id", uc.ID),
		slog.String("history_id", historyID.String()),
		slog.Int("input_chars", len([]rune(input.Text))),
		slog.Duration("inference", inferenceTook),
	)

	return &AnalyzeResult{
		UseCaseID:   uc.ID,
		UseCaseName: uc.Name,
		Result:      result,
		UserEmail:   principal.Email,
		HistoryID:   historyID,
	}, nil
}
