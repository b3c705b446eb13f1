package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/marcelopachecouba/sgme/internal/application"
)

type ministerService interface {
	CreateMinister(ctx context.Context, parishID string, input application.MinisterInput) (application.Minister, error)
	UpdateMinister(ctx context.Context, parishID, id string, input application.MinisterInput) (application.Minister, error)
	GetMinister(ctx context.Context, parishID, id string) (application.Minister, error)
	ListMinisters(ctx context.Context, parishID string) ([]application.Minister, error)
	DeleteMinister(ctx context.Context, parishID, id string) error
}

// MinisterHandler serves the minister CRUD inside a parish scope.
type MinisterHandler struct {
	service   ministerService
	responder responder
}

// NewMinisterHandler builds a minister handler.
func NewMinisterHandler(service ministerService, logger *slog.Logger) *MinisterHandler {
	return &MinisterHandler{service: service, responder: newResponder(logger)}
}

type ministerRequest struct {
	Name        string  `json:"name"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email"`
	BirthDate   *string `json:"birth_date"`
	YearsServed int     `json:"years_served"`
}

type ministerDTO struct {
	ID          string  `json:"id"`
	ParishID    string  `json:"parish_id"`
	Name        string  `json:"name"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email"`
	BirthDate   *string `json:"birth_date"`
	YearsServed int     `json:"years_served"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

func toMinisterDTO(minister application.Minister) ministerDTO {
	return ministerDTO{
		ID:          minister.ID,
		ParishID:    minister.ParishID,
		Name:        minister.Name,
		Phone:       minister.Phone,
		Email:       minister.Email,
		BirthDate:   dateString(minister.BirthDate),
		YearsServed: minister.YearsServed,
		CreatedAt:   formatTimestamp(minister.CreatedAt),
		UpdatedAt:   formatTimestamp(minister.UpdatedAt),
	}
}

func (h *MinisterHandler) decodeInput(r *http.Request) (application.MinisterInput, error) {
	var req ministerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return application.MinisterInput{}, errBadRequestBody
	}

	birthDate, err := optionalDate(req.BirthDate)
	if err != nil {
		return application.MinisterInput{}, errBadRequestBody
	}

	return application.MinisterInput{
		Name:        req.Name,
		Phone:       req.Phone,
		Email:       req.Email,
		BirthDate:   birthDate,
		YearsServed: req.YearsServed,
	}, nil
}

func (h *MinisterHandler) Create(w http.ResponseWriter, r *http.Request) {
	parishID, ok := requireParishScope(r.Context(), w, h.responder)
	if !ok {
		return
	}

	input, err := h.decodeInput(r)
	if err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, err)
		return
	}

	minister, err := h.service.CreateMinister(r.Context(), parishID, input)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusCreated, toMinisterDTO(minister))
}

func (h *MinisterHandler) Update(w http.ResponseWriter, r *http.Request) {
	parishID, ok := requireParishScope(r.Context(), w, h.responder)
	if !ok {
		return
	}

	id, ok := MinisterIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidMinisterID)
		return
	}

	input, err := h.decodeInput(r)
	if err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, err)
		return
	}

	minister, err := h.service.UpdateMinister(r.Context(), parishID, id, input)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, toMinisterDTO(minister))
}

func (h *MinisterHandler) Get(w http.ResponseWriter, r *http.Request) {
	parishID, ok := requireParishScope(r.Context(), w, h.responder)
	if !ok {
		return
	}

	id, ok := MinisterIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidMinisterID)
		return
	}

	minister, err := h.service.GetMinister(r.Context(), parishID, id)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, toMinisterDTO(minister))
}

func (h *MinisterHandler) List(w http.ResponseWriter, r *http.Request) {
	parishID, ok := requireParishScope(r.Context(), w, h.responder)
	if !ok {
		return
	}

	ministers, err := h.service.ListMinisters(r.Context(), parishID)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	dtos := make([]ministerDTO, 0, len(ministers))
	for _, minister := range ministers {
		dtos = append(dtos, toMinisterDTO(minister))
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, dtos)
}

func (h *MinisterHandler) Delete(w http.ResponseWriter, r *http.Request) {
	parishID, ok := requireParishScope(r.Context(), w, h.responder)
	if !ok {
		return
	}

	id, ok := MinisterIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidMinisterID)
		return
	}

	if err := h.service.DeleteMinister(r.Context(), parishID, id); err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}
