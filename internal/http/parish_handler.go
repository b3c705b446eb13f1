package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/marcelopachecouba/sgme/internal/application"
)

type parishService interface {
	CreateParish(ctx context.Context, name string) (application.Parish, error)
	UpdateParish(ctx context.Context, id, name string) (application.Parish, error)
	GetParish(ctx context.Context, id string) (application.Parish, error)
	ListParishes(ctx context.Context) ([]application.Parish, error)
	DeleteParish(ctx context.Context, id string) error
}

// ParishHandler serves the parish bootstrap CRUD.
type ParishHandler struct {
	service   parishService
	responder responder
}

// NewParishHandler builds a parish handler.
func NewParishHandler(service parishService, logger *slog.Logger) *ParishHandler {
	return &ParishHandler{service: service, responder: newResponder(logger)}
}

type parishRequest struct {
	Name string `json:"name"`
}

type parishDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func toParishDTO(parish application.Parish) parishDTO {
	return parishDTO{
		ID:        parish.ID,
		Name:      parish.Name,
		CreatedAt: formatTimestamp(parish.CreatedAt),
		UpdatedAt: formatTimestamp(parish.UpdatedAt),
	}
}

func (h *ParishHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req parishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	parish, err := h.service.CreateParish(r.Context(), req.Name)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusCreated, toParishDTO(parish))
}

func (h *ParishHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := ParishIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidParishID)
		return
	}

	var req parishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	parish, err := h.service.UpdateParish(r.Context(), id, req.Name)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, toParishDTO(parish))
}

func (h *ParishHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := ParishIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidParishID)
		return
	}

	parish, err := h.service.GetParish(r.Context(), id)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, toParishDTO(parish))
}

func (h *ParishHandler) List(w http.ResponseWriter, r *http.Request) {
	parishes, err := h.service.ListParishes(r.Context())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	dtos := make([]parishDTO, 0, len(parishes))
	for _, parish := range parishes {
		dtos = append(dtos, toParishDTO(parish))
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, dtos)
}

func (h *ParishHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := ParishIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidParishID)
		return
	}

	if err := h.service.DeleteParish(r.Context(), id); err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}
