package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/heartmarshall/summarizer-backend/internal/domain"
	"github.com/heartmarshall/summarizer-backend/pkg/ctxutil"
)

const msgMissingToken = "Missing or malformed Authorization header. Expected 'Bearer <token>'."

type tokenVerifier interface {
	Verify(ctx context.Context, token string) (domain.Principal, error)
}

// Auth rejects requests without a valid bearer token and stores the
// verified principal in the request context.
func Auth(verifier tokenVerifier, logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				writeUnauthorized(w, msgMissingToken)
				return
			}

			principal, err := verifier.Verify(r.Context(), token)
			if err != nil {
				msg := "Invalid authentication token."
				var authErr *domain.AuthError
				if errors.As(err, &authErr) {
					msg = authErr.Message()
					if authErr.Kind == domain.AuthUnreachable {
						logger.WarnContext(r.Context(), "token verification unavailable",
							slog.String("error", err.Error()))
					}
				}
				writeUnauthorized(w, msg)
				return
			}

			recordSubject(r.Context(), principal.SubjectID)
			ctx := ctxutil.WithPrincipal(r.Context(), principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractBearerToken(r *http.Request) string {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func writeUnauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": msg}) //nolint:errcheck
}
