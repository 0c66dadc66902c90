package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/heartmarshall/summarizer-backend/internal/domain"
	"github.com/heartmarshall/summarizer-backend/pkg/ctxutil"
)

//go:generate moq -out token_verifier_mock_test.go -pkg middleware . tokenVerifier

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(nil, &slog.HandlerOptions{Level: slog.LevelError}))
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return body["error"]
}

func TestAuth_ValidToken(t *testing.T) {
	principal := domain.Principal{SubjectID: "uid-1", Email: "ada@example.com"}
	verifier := &tokenVerifierMock{
		VerifyFunc: func(ctx context.Context, token string) (domain.Principal, error) {
			if token == "valid-token" {
				return principal, nil
			}
			return domain.Principal{}, domain.NewAuthError(domain.AuthInvalid, nil)
		},
	}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok := ctxutil.PrincipalFromCtx(r.Context())
		if !ok {
			t.Error("expected principal in context")
			return
		}
		if got != principal {
			t.Errorf("expected principal %+v, got %+v", principal, got)
		}
		w.WriteHeader(http.StatusOK)
	})

	wrappedHandler := Auth(verifier, discardLogger())(handler)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := httptest.NewRecorder()

	wrappedHandler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
}

func TestAuth_ClassifiedFailures(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"expired", domain.NewAuthError(domain.AuthExpired, nil), "Token has expired. Please sign in again."},
		{"revoked", domain.NewAuthError(domain.AuthRevoked, nil), "Token has been revoked. Please sign in again."},
		{"invalid", domain.NewAuthError(domain.AuthInvalid, errors.New("bad signature")), "Invalid authentication token."},
		{"unreachable", domain.NewAuthError(domain.AuthUnreachable, errors.New("dial tcp")), "Could not verify credentials."},
		{"unclassified", errors.New("boom"), "Invalid authentication token."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			verifier := &tokenVerifierMock{
				VerifyFunc: func(ctx context.Context, token string) (domain.Principal, error) {
					return domain.Principal{}, tc.err
				},
			}
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Error("handler should not be called for rejected token")
			})

			req := httptest.NewRequest(http.MethodPost, "/analyze", nil)
			req.Header.Set("Authorization", "Bearer some-token")
			rec := httptest.NewRecorder()

			Auth(verifier, discardLogger())(handler).ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
			}
			if got := decodeError(t, rec); got != tc.want {
				t.Errorf("expected error %q, got %q", tc.want, got)
			}
		})
	}
}

func TestAuth_MissingOrMalformedHeader(t *testing.T) {
	headers := map[string]string{
		"no header":    "",
		"basic auth":   "Basic dXNlcjpwYXNz",
		"empty bearer": "Bearer ",
		"just bearer":  "Bearer",
	}

	for name, header := range headers {
		t.Run(name, func(t *testing.T) {
			verifier := &tokenVerifierMock{
				VerifyFunc: func(ctx context.Context, token string) (domain.Principal, error) {
					t.Error("Verify should not be called without a bearer token")
					return domain.Principal{}, errors.New("should not be called")
				},
			}
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Error("handler should not be called without a bearer token")
			})

			req := httptest.NewRequest(http.MethodGet, "/history", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			rec := httptest.NewRecorder()

			Auth(verifier, discardLogger())(handler).ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
			}
			if got := decodeError(t, rec); got != msgMissingToken {
				t.Errorf("expected error %q, got %q", msgMissingToken, got)
			}
			if len(verifier.VerifyCalls()) > 0 {
				t.Error("Verify should not be called without a bearer token")
			}
		})
	}
}

func TestExtractBearerToken_Cases(t *testing.T) {
	cases := []struct {
		name   string
		header string
		want   string
	}{
		{"empty header", "", ""},
		{"bearer with token", "Bearer valid-token", "valid-token"},
		{"bearer lowercase", "bearer valid-token", "valid-token"},
		{"bearer mixed case", "BEARER valid-token", "valid-token"},
		{"basic auth", "Basic dXNlcjpwYXNz", ""},
		{"bearer no space", "Bearertoken", ""},
		{"bearer empty token", "Bearer ", ""},
		{"just bearer", "Bearer", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			got := extractBearerToken(req)
			if got != tc.want {
				t.Errorf("extractBearerToken(%q) = %q, want %q", tc.header, got, tc.want)
			}
		})
	}
}
