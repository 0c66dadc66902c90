package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/summarizer-backend/internal/domain"
)

type errorResponse struct {
	Error  string       `json:"error"`
	Fields []fieldError `json:"fields,omitempty"`
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// handleError maps a classified error to its HTTP status and body.
func handleError(log *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	var (
		ve *domain.ValidationError
		ae *domain.AuthError
		ue *domain.UpstreamError
	)

	// A StoreError also unwraps to its cause, which may be ErrNotFound or
	// ErrValidation from the driver mapping; it is always a 500.
	switch {
	case errors.Is(err, domain.ErrStore):
		log.ErrorContext(r.Context(), "store failure", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "Failed to save or read history. Please try again.")

	case errors.As(err, &ve):
		resp := errorResponse{Error: validationMessage(ve)}
		for _, fe := range ve.Errors {
			resp.Fields = append(resp.Fields, fieldError{Field: fe.Field, Message: fe.Message})
		}
		writeJSON(w, http.StatusBadRequest, resp)

	case errors.As(err, &ae):
		writeError(w, http.StatusUnauthorized, ae.Message())

	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "Invalid authentication token.")

	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "History item not found.")

	case errors.As(err, &ue):
		log.WarnContext(r.Context(), "inference failed",
			slog.Int("upstream_status", ue.StatusCode),
			slog.String("error", ue.Message))
		writeError(w, http.StatusBadGateway, upstreamMessage(ue))

	default:
		log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "Internal server error.")
	}
}

func validationMessage(ve *domain.ValidationError) string {
	if len(ve.Errors) == 1 {
		fe := ve.Errors[0]
		// Catalog and prompt errors are already full sentences.
		if fe.Field == "usecase_id" || fe.Field == domain.ParamTargetLanguage {
			return fe.Message
		}
		return fmt.Sprintf("'%s' %s.", fe.Field, fe.Message)
	}
	return "Request validation failed."
}

func upstreamMessage(ue *domain.UpstreamError) string {
	if ue.StatusCode != 0 {
		return fmt.Sprintf("Inference backend error (%d): %s", ue.StatusCode, ue.Message)
	}
	return "Inference backend unavailable: " + ue.Message
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}
