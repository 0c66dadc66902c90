// Package identity verifies bearer ID tokens issued by the external identity
// authority and classifies every rejection.
package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/heartmarshall/summarizer-backend/internal/domain"
)

const maxSubjectLength = 128

// Options configures a Verifier.
type Options struct {
	ProjectID    string
	CertsURL     string
	IssuerPrefix string
	// CheckRevoked enables the remote account lookup after signature checks.
	CheckRevoked bool
	Timeout      time.Duration
	// Now overrides the clock; tests only.
	Now func() time.Time
}

// Verifier validates RS256 ID tokens against the authority's published
// certificates and, optionally, its account service.
type Verifier struct {
	projectID string
	issuer    string
	keys      *keyCache
	accounts  *accountChecker
	now       func() time.Time
	log       *slog.Logger
}

// tokenClaims are the claims carried by an authority-issued ID token.
type tokenClaims struct {
	jwt.RegisteredClaims
	AuthTime int64  `json:"auth_time"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Picture  string `json:"picture"`
}

// NewVerifier creates a Verifier. accounts may be nil, in which case the
// revocation lookup is skipped regardless of opts.CheckRevoked.
func NewVerifier(opts Options, accounts *resty.Client, logger *slog.Logger) (*Verifier, error) {
	if strings.TrimSpace(opts.ProjectID) == "" {
		return nil, fmt.Errorf("identity: project id is required")
	}
	if strings.TrimSpace(opts.CertsURL) == "" {
		return nil, fmt.Errorf("identity: certs url is required")
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	v := &Verifier{
		projectID: opts.ProjectID,
		issuer:    opts.IssuerPrefix + opts.ProjectID,
		keys:      newKeyCache(resty.New().SetTimeout(opts.Timeout), opts.CertsURL, now),
		now:       now,
		log:       logger.With("adapter", "identity"),
	}
	if opts.CheckRevoked && accounts != nil {
		v.accounts = &accountChecker{http: accounts, projectID: opts.ProjectID}
	}
	return v, nil
}

// ProjectID returns the authority project tokens must be issued for.
func (v *Verifier) ProjectID() string { return v.projectID }

// Verify validates a bearer token and returns the principal it names.
// Every failure is a *domain.AuthError.
func (v *Verifier) Verify(ctx context.Context, token string) (domain.Principal, error) {
	if strings.TrimSpace(token) == "" {
		return domain.Principal{}, domain.NewAuthError(domain.AuthInvalid, errors.New("token is empty"))
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithAudience(v.projectID),
		jwt.WithIssuer(v.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(v.now),
	)

	claims := &tokenClaims{}
	_, err := parser.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		kid, _ := t.Header["kid"].(string)
		if strings.TrimSpace(kid) == "" {
			return nil, fmt.Errorf("missing kid")
		}
		return v.keys.get(ctx, kid)
	})
	if err != nil {
		return domain.Principal{}, v.classify(ctx, err)
	}

	if claims.Subject == "" || len(claims.Subject) > maxSubjectLength {
		return domain.Principal{}, domain.NewAuthError(domain.AuthInvalid, fmt.Errorf("invalid sub claim"))
	}
	authTime := time.Unix(claims.AuthTime, 0)
	if claims.AuthTime <= 0 || authTime.After(v.now()) {
		return domain.Principal{}, domain.NewAuthError(domain.AuthInvalid, fmt.Errorf("invalid auth_time claim"))
	}

	if v.accounts != nil {
		if err := v.accounts.check(ctx, claims.Subject, authTime); err != nil {
			return domain.Principal{}, v.classify(ctx, err)
		}
	}

	return domain.Principal{
		SubjectID:   claims.Subject,
		Email:       claims.Email,
		DisplayName: claims.Name,
		PictureURL:  claims.Picture,
	}, nil
}

func (v *Verifier) classify(ctx context.Context, err error) *domain.AuthError {
	var kind domain.AuthFailure
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		kind = domain.AuthExpired
	case errors.Is(err, errAccountDisabled), errors.Is(err, errSessionRevoked):
		kind = domain.AuthRevoked
	case errors.Is(err, errAccountMissing):
		kind = domain.AuthInvalid
	case errors.Is(err, errKeysUnavailable):
		kind = domain.AuthUnreachable
	case errors.Is(err, jwt.ErrTokenMalformed),
		errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable),
		errors.Is(err, jwt.ErrTokenInvalidClaims):
		kind = domain.AuthInvalid
	default:
		// Account lookup transport failures land here.
		kind = domain.AuthUnreachable
	}

	level := slog.LevelDebug
	if kind == domain.AuthUnreachable {
		level = slog.LevelWarn
	}
	v.log.Log(ctx, level, "token rejected",
		slog.String("kind", kind.String()),
		slog.String("error", err.Error()),
	)
	return domain.NewAuthError(kind, err)
}

// Ping confirms the signing certificates can be fetched.
func (v *Verifier) Ping(ctx context.Context) error {
	return v.keys.refresh(ctx)
}

// Details describes the verifier for diagnostics.
func (v *Verifier) Details() map[string]any {
	return map[string]any{
		"project_id":    v.projectID,
		"signing_keys":  v.keys.size(),
		"check_revoked": v.accounts != nil,
	}
}
