package identity

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-resty/resty/v2"
	"google.golang.org/api/option"
	"google.golang.org/api/transport"
	htransport "google.golang.org/api/transport/http"

	"github.com/heartmarshall/summarizer-backend/internal/config"
)

var lookupScopes = []string{
	"https://www.googleapis.com/auth/identitytoolkit",
	"https://www.googleapis.com/auth/cloud-platform",
}

// credentialOptions accepts either a path to a service-account file or the
// JSON document itself.
func credentialOptions(creds string) []option.ClientOption {
	creds = strings.TrimSpace(creds)
	if strings.HasPrefix(creds, "{") {
		return []option.ClientOption{option.WithCredentialsJSON([]byte(creds))}
	}
	return []option.ClientOption{option.WithCredentialsFile(creds)}
}

// New builds a Verifier from configuration. The service-account credentials
// supply the project id (unless overridden) and authorize the account
// lookups used for revocation checks. Unreadable credentials are fatal.
func New(ctx context.Context, cfg config.IdentityConfig, logger *slog.Logger) (*Verifier, error) {
	opts := append(credentialOptions(cfg.CredentialsPath), option.WithScopes(lookupScopes...))

	creds, err := transport.Creds(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("identity: load credentials: %w", err)
	}

	projectID := cfg.ProjectID
	if projectID == "" {
		projectID = creds.ProjectID
	}
	if projectID == "" {
		return nil, fmt.Errorf("identity: credentials carry no project id and none is configured")
	}

	var accounts *resty.Client
	if cfg.CheckRevoked.Enabled() {
		hc, _, err := htransport.NewClient(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("identity: authorized client: %w", err)
		}
		accounts = resty.NewWithClient(hc).
			SetBaseURL(strings.TrimRight(cfg.LookupBaseURL, "/")).
			SetTimeout(cfg.Timeout)
	}

	return NewVerifier(Options{
		ProjectID:    projectID,
		CertsURL:     cfg.CertsURL,
		IssuerPrefix: cfg.IssuerPrefix,
		CheckRevoked: cfg.CheckRevoked.Enabled(),
		Timeout:      cfg.Timeout,
	}, accounts, logger)
}
