// Package diagnostics probes every external dependency independently and
// folds the results into one health verdict.
package diagnostics

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Overall verdicts.
const (
	StatusHealthy  = "healthy"
	StatusDegraded = "degraded"
)

// defaultProbeTimeout caps a single probe unless the runner is told otherwise.
const defaultProbeTimeout = 20 * time.Second

// Finding is what a successful check reports about its component.
type Finding struct {
	Status  string
	Details map[string]any
}

// Check inspects one component. A returned error marks the component down.
type Check func(ctx context.Context) (Finding, error)

// Probe is a named Check.
type Probe struct {
	Name  string
	Check Check
}

// ServiceStatus is the outcome of one probe.
type ServiceStatus struct {
	OK      bool           `json:"ok"`
	Status  string         `json:"status"`
	Latency string         `json:"latency"`
	Details map[string]any `json:"details,omitempty"`
}

// Report is the aggregate of all probes.
type Report struct {
	Status    string                   `json:"status"`
	Services  map[string]ServiceStatus `json:"services"`
	Timestamp time.Time                `json:"timestamp"`
}

// Healthy reports whether every probe succeeded.
func (r Report) Healthy() bool { return r.Status == StatusHealthy }

// Runner executes probes concurrently.
type Runner struct {
	log     *slog.Logger
	probes  []Probe
	timeout time.Duration
	now     func() time.Time
}

// Option configures a Runner.
type Option func(*Runner)

// WithProbeTimeout bounds each probe individually.
func WithProbeTimeout(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// NewRunner creates a Runner over the given probes.
func NewRunner(logger *slog.Logger, probes []Probe, opts ...Option) *Runner {
	r := &Runner{
		log:     logger.With("service", "diagnostics"),
		probes:  probes,
		timeout: defaultProbeTimeout,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes every probe and returns the report. A failing or panicking
// probe never prevents the others from completing.
func (r *Runner) Run(ctx context.Context) Report {
	var (
		mu       sync.Mutex
		services = make(map[string]ServiceStatus, len(r.probes))
	)

	g, gctx := errgroup.WithContext(ctx)
	for _, p := range r.probes {
		g.Go(func() error {
			st := r.runOne(gctx, p)
			mu.Lock()
			services[p.Name] = st
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	overall := StatusHealthy
	for _, st := range services {
		if !st.OK {
			overall = StatusDegraded
			break
		}
	}

	return Report{
		Status:    overall,
		Services:  services,
		Timestamp: r.now().UTC(),
	}
}

func (r *Runner) runOne(ctx context.Context, p Probe) (st ServiceStatus) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	defer func() {
		st.Latency = time.Since(start).Round(time.Millisecond).String()
		if rec := recover(); rec != nil {
			st.OK = false
			st.Status = fmt.Sprintf("probe panicked: %v", rec)
			st.Details = nil
		}
	}()

	f, err := p.Check(ctx)
	if err != nil {
		return ServiceStatus{OK: false, Status: err.Error(), Details: f.Details}
	}
	status := f.Status
	if status == "" {
		status = "ok"
	}
	return ServiceStatus{OK: true, Status: status, Details: f.Details}
}

// LogReport writes one line per service plus the aggregate.
func (r *Runner) LogReport(ctx context.Context, rep Report) {
	names := make([]string, 0, len(rep.Services))
	for name := range rep.Services {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		st := rep.Services[name]
		level := slog.LevelInfo
		if !st.OK {
			level = slog.LevelWarn
		}
		r.log.Log(ctx, level, "dependency check",
			slog.String("dependency", name),
			slog.Bool("ok", st.OK),
			slog.String("status", st.Status),
			slog.String("latency", st.Latency),
		)
	}

	level := slog.LevelInfo
	if !rep.Healthy() {
		level = slog.LevelWarn
	}
	r.log.Log(ctx, level, "startup diagnostics", slog.String("overall", rep.Status))
}
