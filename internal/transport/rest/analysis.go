package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/heartmarshall/summarizer-backend/internal/domain"
	"github.com/heartmarshall/summarizer-backend/internal/service/analysis"
)

// analysisService defines the minimal interface needed by AnalysisHandler.
type analysisService interface {
	Analyze(ctx context.Context, input analysis.AnalyzeInput) (*analysis.AnalyzeResult, error)
	Profile(ctx context.Context) (*analysis.ProfileResult, error)
	ListHistory(ctx context.Context, input analysis.ListHistoryInput) ([]domain.AnalysisRecord, error)
	DeleteHistory(ctx context.Context, id string) error
}

// AnalyzeBodyLimit returns the /analyze body cap for a catalog's
// max_input_length. An escaped surrogate pair spends 12 bytes of JSON on one
// character; 4 KiB covers the remaining fields.
func AnalyzeBodyLimit(maxInputLength int) int64 {
	return int64(maxInputLength)*12 + 4<<10
}

// AnalysisHandler serves the authenticated endpoints.
type AnalysisHandler struct {
	svc          analysisService
	log          *slog.Logger
	previewChars int
	maxBodyBytes int64
}

// NewAnalysisHandler creates an AnalysisHandler. Bodies of /analyze larger
// than maxBodyBytes are rejected before decoding finishes.
func NewAnalysisHandler(svc analysisService, previewChars int, maxBodyBytes int64, logger *slog.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		svc:          svc,
		log:          logger.With("handler", "analysis"),
		previewChars: previewChars,
		maxBodyBytes: maxBodyBytes,
	}
}

type analyzeRequest struct {
	Text           string `json:"text"`
	UseCaseID      string `json:"usecase_id"`
	TargetLanguage string `json:"target_language"`
}

type analyzeResponse struct {
	UseCaseID   string `json:"usecase_id"`
	UseCaseName string `json:"usecase_name"`
	Result      string `json:"result"`
	UserEmail   string `json:"user_email,omitempty"`
	HistoryID   string `json:"history_id,omitempty"`
}

type meResponse struct {
	UID           string `json:"uid"`
	Email         string `json:"email,omitempty"`
	Name          string `json:"name,omitempty"`
	Picture       string `json:"picture,omitempty"`
	TotalAnalyses int    `json:"total_analyses"`
}

type historyItem struct {
	ID             string  `json:"id"`
	UseCaseID      string  `json:"usecase_id"`
	UseCaseName    string  `json:"usecase_name"`
	InputPreview   string  `json:"input_preview"`
	InputText      string  `json:"input_text"`
	Result         string  `json:"result"`
	TargetLanguage *string `json:"target_language,omitempty"`
	CreatedAt      string  `json:"created_at"`
}

// Me handles GET /me.
func (h *AnalysisHandler) Me(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Profile(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, meResponse{
		UID:           res.Principal.SubjectID,
		Email:         res.Principal.Email,
		Name:          res.Principal.DisplayName,
		Picture:       res.Principal.PictureURL,
		TotalAnalyses: res.TotalAnalyses,
	})
}

// Analyze handles POST /analyze.
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	body := http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "Request body too large.")
			return
		}
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	res, err := h.svc.Analyze(r.Context(), analysis.AnalyzeInput{
		Text:           req.Text,
		UseCaseID:      req.UseCaseID,
		TargetLanguage: req.TargetLanguage,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, analyzeResponse{
		UseCaseID:   res.UseCaseID,
		UseCaseName: res.UseCaseName,
		Result:      res.Result,
		UserEmail:   res.UserEmail,
		HistoryID:   res.HistoryID.String(),
	})
}

// ListHistory handles GET /history?limit=&skip=.
func (h *AnalysisHandler) ListHistory(w http.ResponseWriter, r *http.Request) {
	var input analysis.ListHistoryInput
	var fields []domain.FieldError

	q := r.URL.Query()
	for _, p := range []struct {
		name string
		dst  **int
	}{{"limit", &input.Limit}, {"skip", &input.Skip}} {
		raw := q.Get(p.name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			fields = append(fields, domain.FieldError{Field: p.name, Message: "must be an integer"})
			continue
		}
		*p.dst = &n
	}
	if len(fields) > 0 {
		handleError(h.log, w, r, domain.NewValidationErrors(fields))
		return
	}

	records, err := h.svc.ListHistory(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	items := make([]historyItem, 0, len(records))
	for _, rec := range records {
		items = append(items, historyItem{
			ID:             rec.ID.String(),
			UseCaseID:      rec.UseCaseID,
			UseCaseName:    rec.UseCaseName,
			InputPreview:   rec.Preview(h.previewChars),
			InputText:      rec.InputText,
			Result:         rec.Result,
			TargetLanguage: rec.TargetLanguage,
			CreatedAt:      rec.CreatedAt.UTC().Format(time.RFC3339Nano),
		})
	}

	writeJSON(w, http.StatusOK, items)
}

// DeleteHistory handles DELETE /history/{id}.
func (h *AnalysisHandler) DeleteHistory(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteHistory(r.Context(), r.PathValue("id")); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Deleted successfully."})
}
