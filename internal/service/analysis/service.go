// Package analysis implements the analyze pipeline and the per-user history
// and profile operations around it.
package analysis

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/summarizer-backend/internal/domain"
)

// useCaseCatalog is the read-only use-case lookup.
type useCaseCatalog interface {
	Get(id string) (domain.UseCase, bool)
	IDs() []string
	Settings() domain.GlobalSettings
}

// completer is the inference backend.
type completer interface {
	Complete(ctx context.Context, req domain.CompletionRequest) (string, error)
}

// historyRepo persists analysis records.
type historyRepo interface {
	Insert(ctx context.Context, rec domain.AnalysisRecord) (uuid.UUID, error)
	ListByOwner(ctx context.Context, subjectID string, limit, offset int) ([]domain.AnalysisRecord, error)
	CountByOwner(ctx context.Context, subjectID string) (int, error)
	DeleteByOwnerAndID(ctx context.Context, subjectID string, id uuid.UUID) (bool, error)
}

// userRepo persists user profiles.
type userRepo interface {
	Upsert(ctx context.Context, p domain.Principal, at time.Time) (domain.UserProfile, error)
}

// txManager runs fn inside a database transaction.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Config holds the service limits.
type Config struct {
	MaxTokens           int
	DefaultHistoryLimit int
	MaxHistoryLimit     int
}

// Service implements the analysis pipeline.
type Service struct {
	log     *slog.Logger
	catalog useCaseCatalog
	llm     completer
	history historyRepo
	users   userRepo
	tx      txManager
	cfg     Config
	now     func() time.Time
}

// NewService creates a new analysis service instance.
func NewService(
	logger *slog.Logger,
	catalog useCaseCatalog,
	llm completer,
	history historyRepo,
	users userRepo,
	tx txManager,
	cfg Config,
) *Service {
	return &Service{
		log:     logger.With("service", "analysis"),
		catalog: catalog,
		llm:     llm,
		history: history,
		users:   users,
		tx:      tx,
		cfg:     cfg,
		now:     time.Now,
	}
}

// timestamp returns the current time at database precision.
func (s *Service) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}
