package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/summarizer-backend/internal/adapter/identity"
	"github.com/heartmarshall/summarizer-backend/internal/adapter/inference/gemini"
	"github.com/heartmarshall/summarizer-backend/internal/adapter/inference/workersai"
	"github.com/heartmarshall/summarizer-backend/internal/adapter/postgres"
	"github.com/heartmarshall/summarizer-backend/internal/adapter/postgres/history"
	"github.com/heartmarshall/summarizer-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/summarizer-backend/internal/catalog"
	"github.com/heartmarshall/summarizer-backend/internal/config"
	"github.com/heartmarshall/summarizer-backend/internal/domain"
	"github.com/heartmarshall/summarizer-backend/internal/service/analysis"
	"github.com/heartmarshall/summarizer-backend/internal/service/diagnostics"
)

// inferenceBackend is what both model clients provide.
type inferenceBackend interface {
	Complete(ctx context.Context, req domain.CompletionRequest) (string, error)
	Ping(ctx context.Context) error
	Model() string
}

// deps holds every long-lived collaborator. They are built once at startup
// and released once by close.
type deps struct {
	pool     *pgxpool.Pool
	catalog  *catalog.Catalog
	verifier *identity.Verifier
	llm      inferenceBackend
	analysis *analysis.Service
	diag     *diagnostics.Runner
}

// buildDeps constructs the dependency graph. Any failure is fatal: the
// process must not serve with a half-initialized graph.
func buildDeps(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*deps, error) {
	cat, err := catalog.Load(cfg.UseCases.Path)
	if err != nil {
		return nil, err
	}
	logger.Info("use cases loaded",
		slog.String("source", cat.Source()),
		slog.Int("count", cat.Len()))

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	d := &deps{pool: pool, catalog: cat}

	if cfg.Database.AutoMigrate.Enabled() {
		applied, err := postgres.Migrate(ctx, pool)
		if err != nil {
			d.close()
			return nil, err
		}
		logger.Info("migrations applied", slog.Any("versions", applied))
	}

	d.verifier, err = identity.New(ctx, cfg.Identity, logger)
	if err != nil {
		d.close()
		return nil, err
	}

	d.llm, err = newInference(ctx, cfg.Inference, logger)
	if err != nil {
		d.close()
		return nil, err
	}

	d.analysis = analysis.NewService(
		logger,
		cat,
		d.llm,
		history.New(pool),
		user.New(pool),
		postgres.NewTxManager(pool),
		analysis.Config{
			MaxTokens:           cfg.Inference.MaxTokens,
			DefaultHistoryLimit: cfg.History.DefaultLimit,
			MaxHistoryLimit:     cfg.History.MaxLimit,
		},
	)

	d.diag = diagnostics.NewRunner(logger, []diagnostics.Probe{
		diagnostics.IdentityProbe(d.verifier),
		diagnostics.StoreProbe(postgres.NewProber(pool)),
		diagnostics.InferenceProbe(d.llm),
		diagnostics.UseCaseProbe(cat),
	}, diagnostics.WithProbeTimeout(cfg.Inference.ProbeTimeout+cfg.Identity.Timeout))

	return d, nil
}

func (d *deps) close() {
	if d.pool != nil {
		d.pool.Close()
	}
}

// newInference selects the model client for the configured provider.
func newInference(ctx context.Context, cfg config.InferenceConfig, logger *slog.Logger) (inferenceBackend, error) {
	switch cfg.Provider {
	case config.ProviderWorkersAI:
		return workersai.New(workersai.Config{
			BaseURL:      cfg.BaseURL,
			AccountID:    cfg.AccountID,
			APIToken:     cfg.APIToken,
			Model:        cfg.Model,
			Timeout:      cfg.Timeout,
			ProbeTimeout: cfg.ProbeTimeout,
		}, logger), nil
	case config.ProviderGemini:
		return gemini.New(ctx, gemini.Config{
			APIKey:       cfg.APIToken,
			Model:        cfg.Model,
			BaseURL:      cfg.BaseURL,
			Timeout:      cfg.Timeout,
			ProbeTimeout: cfg.ProbeTimeout,
		}, logger)
	default:
		return nil, fmt.Errorf("inference: unknown provider %q", cfg.Provider)
	}
}
