package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/heartmarshall/summarizer-backend/internal/adapter/postgres"
	"github.com/heartmarshall/summarizer-backend/internal/config"
	"github.com/heartmarshall/summarizer-backend/internal/transport/middleware"
	"github.com/heartmarshall/summarizer-backend/internal/transport/rest"
)

// ErrDegraded is returned by Diagnose when at least one dependency failed.
var ErrDegraded = errors.New("one or more dependencies are unhealthy")

// Run is the application entry point. It loads configuration, builds the
// dependency graph, logs startup diagnostics and serves HTTP until ctx is
// cancelled, then drains in-flight requests.
func Run(ctx context.Context, configPath string) error {
	cfg, err := config.LoadFile(configPath)
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("inference_provider", cfg.Inference.Provider),
	)

	d, err := buildDeps(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer d.close()

	d.diag.LogReport(ctx, d.diag.Run(ctx))

	srv := newServer(cfg, logger, d)
	return serve(ctx, srv, cfg.Server, logger)
}

// Diagnose builds the dependency graph, probes every dependency once and
// writes the report as JSON. Migrations are never applied here.
func Diagnose(ctx context.Context, configPath string, w io.Writer) error {
	cfg, err := config.LoadFile(configPath)
	if err != nil {
		return err
	}
	cfg.Database.AutoMigrate = config.SwitchOff

	logger := NewLogger(cfg.Log)

	d, err := buildDeps(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer d.close()

	rep := d.diag.Run(ctx)

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	if !rep.Healthy() {
		return ErrDegraded
	}
	return nil
}

// Migrate applies pending migrations and exits.
func Migrate(ctx context.Context, configPath string) error {
	cfg, err := config.LoadFile(configPath)
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	applied, err := postgres.Migrate(ctx, pool)
	if err != nil {
		return err
	}

	logger.Info("migrations applied", slog.Any("versions", applied))
	return nil
}

func newServer(cfg *config.Config, logger *slog.Logger, d *deps) *http.Server {
	router := rest.NewRouter(rest.Handlers{
		Health:   rest.NewHealthHandler(d.diag, BuildVersion(), cfg.Inference.ProbeTimeout+cfg.Identity.Timeout),
		UseCases: rest.NewUseCaseHandler(d.catalog),
		Analysis: rest.NewAnalysisHandler(d.analysis, cfg.History.PreviewLength,
			rest.AnalyzeBodyLimit(d.catalog.Settings().MaxInputLength), logger),
	}, middleware.Auth(d.verifier, logger))

	handler := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
	)(router)

	return &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
	}
}

// serve runs srv until ctx is done, then shuts it down within the
// configured timeout.
func serve(ctx context.Context, srv *http.Server, cfg config.ServerConfig, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down", slog.Duration("timeout", cfg.ShutdownTimeout))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	}
}
