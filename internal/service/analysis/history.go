package analysis

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/summarizer-backend/internal/domain"
	"github.com/heartmarshall/summarizer-backend/pkg/ctxutil"
)

// ListHistory returns the caller's records newest first.
func (s *Service) ListHistory(ctx context.Context, input ListHistoryInput) ([]domain.AnalysisRecord, error) {
	principal, ok := ctxutil.PrincipalFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	limit, skip, err := input.resolve(s.cfg.DefaultHistoryLimit, s.cfg.MaxHistoryLimit)
	if err != nil {
		return nil, err
	}

	records, err := s.history.ListByOwner(ctx, principal.SubjectID, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("analysis.ListHistory: %w", domain.NewStoreError(domain.StoreRead, err))
	}

	s.trackActivity(ctx, principal)
	return records, nil
}

// DeleteHistory removes one of the caller's records. Ids that are malformed,
// unknown or owned by someone else all yield domain.ErrNotFound.
func (s *Service) DeleteHistory(ctx context.Context, rawID string) error {
	principal, ok := ctxutil.PrincipalFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}
	subjectID := principal.SubjectID

	id, err := uuid.Parse(rawID)
	if err != nil {
		return fmt.Errorf("analysis.DeleteHistory: %w", domain.ErrNotFound)
	}

	deleted, err := s.history.DeleteByOwnerAndID(ctx, subjectID, id)
	if err != nil {
		return fmt.Errorf("analysis.DeleteHistory: %w", domain.NewStoreError(domain.StoreWrite, err))
	}
	if !deleted {
		return fmt.Errorf("analysis.DeleteHistory: %w", domain.ErrNotFound)
	}

	s.log.InfoContext(ctx, "history record deleted",
		slog.String("subject_id", subjectID),
		slog.String("history_id", id.String()))

	s.trackActivity(ctx, principal)
	return nil
}

// trackActivity upserts the caller's profile so that a first request to a
// read route still creates it. Failures are logged, never returned.
func (s *Service) trackActivity(ctx context.Context, p domain.Principal) {
	if _, err := s.users.Upsert(ctx, p, s.timestamp()); err != nil {
		s.log.WarnContext(ctx, "profile upsert failed",
			slog.String("subject_id", p.SubjectID),
			slog.String("error", err.Error()))
	}
}
