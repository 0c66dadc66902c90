package diagnostics

import (
	"context"
	"fmt"

	"github.com/heartmarshall/summarizer-backend/internal/adapter/postgres"
)

// Probe names as they appear in the report.
const (
	ProbeIdentity  = "identity"
	ProbeStore     = "store"
	ProbeInference = "inference"
	ProbeUseCases  = "usecases"
)

type identityPinger interface {
	Ping(ctx context.Context) error
	Details() map[string]any
}

type storeProber interface {
	Probe(ctx context.Context) (postgres.StoreInfo, error)
}

type inferencePinger interface {
	Ping(ctx context.Context) error
	Model() string
}

type useCaseLister interface {
	Len() int
	IDs() []string
}

// IdentityProbe confirms the signing keys of the identity authority can be fetched.
func IdentityProbe(v identityPinger) Probe {
	return Probe{Name: ProbeIdentity, Check: func(ctx context.Context) (Finding, error) {
		if err := v.Ping(ctx); err != nil {
			return Finding{Details: v.Details()}, err
		}
		return Finding{Status: "ok", Details: v.Details()}, nil
	}}
}

// StoreProbe checks the database and re-asserts the history indexes.
func StoreProbe(p storeProber) Probe {
	return Probe{Name: ProbeStore, Check: func(ctx context.Context) (Finding, error) {
		info, err := p.Probe(ctx)
		if err != nil {
			return Finding{}, err
		}
		return Finding{Status: "ok", Details: map[string]any{
			"database": info.Database,
			"indexes":  info.Indexes,
		}}, nil
	}}
}

// InferenceProbe sends a minimal prompt to the model backend.
func InferenceProbe(c inferencePinger) Probe {
	return Probe{Name: ProbeInference, Check: func(ctx context.Context) (Finding, error) {
		details := map[string]any{"model": c.Model()}
		if err := c.Ping(ctx); err != nil {
			return Finding{Details: details}, err
		}
		return Finding{Status: "ok", Details: details}, nil
	}}
}

// UseCaseProbe reports the loaded catalog. An empty catalog is a failure.
func UseCaseProbe(c useCaseLister) Probe {
	return Probe{Name: ProbeUseCases, Check: func(ctx context.Context) (Finding, error) {
		n := c.Len()
		if n == 0 {
			return Finding{}, fmt.Errorf("no use cases loaded")
		}
		return Finding{
			Status:  fmt.Sprintf("%d use cases loaded", n),
			Details: map[string]any{"count": n, "ids": c.IDs()},
		}, nil
	}}
}
