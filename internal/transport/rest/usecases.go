package rest

import (
	"net/http"

	"github.com/heartmarshall/summarizer-backend/internal/domain"
)

// useCaseLister exposes the catalog in source order.
type useCaseLister interface {
	List() []domain.UseCase
}

// UseCaseHandler serves public use-case metadata.
type UseCaseHandler struct {
	catalog useCaseLister
}

// NewUseCaseHandler creates a UseCaseHandler.
func NewUseCaseHandler(catalog useCaseLister) *UseCaseHandler {
	return &UseCaseHandler{catalog: catalog}
}

type useCaseResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	OutputFormat string   `json:"output_format"`
	Category     string   `json:"category"`
	ExtraParams  []string `json:"extra_params"`
}

// List handles GET /usecases. Prompt templates are not exposed.
func (h *UseCaseHandler) List(w http.ResponseWriter, r *http.Request) {
	ucs := h.catalog.List()
	resp := make([]useCaseResponse, 0, len(ucs))
	for _, uc := range ucs {
		params := uc.ExtraParams
		if params == nil {
			params = []string{}
		}
		resp = append(resp, useCaseResponse{
			ID:           uc.ID,
			Name:         uc.Name,
			Description:  uc.Description,
			OutputFormat: uc.OutputFormat,
			Category:     uc.Category,
			ExtraParams:  params,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}
