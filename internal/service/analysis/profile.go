package analysis

import (
	"context"
	"fmt"

	"github.com/heartmarshall/summarizer-backend/internal/domain"
	"github.com/heartmarshall/summarizer-backend/pkg/ctxutil"
)

// ProfileResult is the caller's identity plus their history size.
type ProfileResult struct {
	Principal     domain.Principal
	TotalAnalyses int
}

// Profile records the caller's activity and returns their identity with
// the number of stored analyses.
func (s *Service) Profile(ctx context.Context) (*ProfileResult, error) {
	principal, ok := ctxutil.PrincipalFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if _, err := s.users.Upsert(ctx, principal, s.timestamp()); err != nil {
		return nil, fmt.Errorf("analysis.Profile: %w", domain.NewStoreError(domain.StoreWrite, err))
	}

	total, err := s.history.CountByOwner(ctx, principal.SubjectID)
	if err != nil {
		return nil, fmt.Errorf("analysis.Profile: %w", domain.NewStoreError(domain.StoreRead, err))
	}

	return &ProfileResult{Principal: principal, TotalAnalyses: total}, nil
}
