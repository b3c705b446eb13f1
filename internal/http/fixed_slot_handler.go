package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/marcelopachecouba/sgme/internal/application"
)

type fixedSlotService interface {
	CreateFixedSlot(ctx context.Context, parishID string, input application.FixedSlotInput) (application.FixedSlot, error)
	UpdateFixedSlot(ctx context.Context, parishID, id string, input application.FixedSlotInput) (application.FixedSlot, error)
	GetFixedSlot(ctx context.Context, parishID, id string) (application.FixedSlot, error)
	ListFixedSlots(ctx context.Context, parishID string) ([]application.FixedSlot, error)
	DeleteFixedSlot(ctx context.Context, parishID, id string) error
}

// FixedSlotHandler serves the recurring assignment rule CRUD.
type FixedSlotHandler struct {
	service   fixedSlotService
	responder responder
}

// NewFixedSlotHandler builds a fixed slot handler.
func NewFixedSlotHandler(service fixedSlotService, logger *slog.Logger) *FixedSlotHandler {
	return &FixedSlotHandler{service: service, responder: newResponder(logger)}
}

// Null JSON fields stay nil and act as wildcards.
type fixedSlotRequest struct {
	Week       *int    `json:"week"`
	Weekday    *int    `json:"weekday"`
	TimeLabel  *string `json:"time_label"`
	Community  *string `json:"community"`
	MinisterID string  `json:"minister_id"`
}

type fixedSlotDTO struct {
	ID         string  `json:"id"`
	ParishID   string  `json:"parish_id"`
	Week       *int    `json:"week"`
	Weekday    *int    `json:"weekday"`
	TimeLabel  *string `json:"time_label"`
	Community  *string `json:"community"`
	MinisterID string  `json:"minister_id"`
	CreatedAt  string  `json:"created_at"`
	UpdatedAt  string  `json:"updated_at"`
}

func toFixedSlotDTO(slot application.FixedSlot) fixedSlotDTO {
	return fixedSlotDTO{
		ID:         slot.ID,
		ParishID:   slot.ParishID,
		Week:       slot.Week,
		Weekday:    slot.Weekday,
		TimeLabel:  slot.TimeLabel,
		Community:  slot.Community,
		MinisterID: slot.MinisterID,
		CreatedAt:  formatTimestamp(slot.CreatedAt),
		UpdatedAt:  formatTimestamp(slot.UpdatedAt),
	}
}

func (h *FixedSlotHandler) decodeInput(r *http.Request) (application.FixedSlotInput, error) {
	var req fixedSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return application.FixedSlotInput{}, errBadRequestBody
	}

	return application.FixedSlotInput{
		Week:       req.Week,
		Weekday:    req.Weekday,
		TimeLabel:  req.TimeLabel,
		Community:  req.Community,
		MinisterID: req.MinisterID,
	}, nil
}

func (h *FixedSlotHandler) Create(w http.ResponseWriter, r *http.Request) {
	parishID, ok := requireParishScope(r.Context(), w, h.responder)
	if !ok {
		return
	}

	input, err := h.decodeInput(r)
	if err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, err)
		return
	}

	slot, err := h.service.CreateFixedSlot(r.Context(), parishID, input)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusCreated, toFixedSlotDTO(slot))
}

func (h *FixedSlotHandler) Update(w http.ResponseWriter, r *http.Request) {
	parishID, ok := requireParishScope(r.Context(), w, h.responder)
	if !ok {
		return
	}

	id, ok := FixedSlotIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidSlotID)
		return
	}

	input, err := h.decodeInput(r)
	if err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, err)
		return
	}

	slot, err := h.service.UpdateFixedSlot(r.Context(), parishID, id, input)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, toFixedSlotDTO(slot))
}

func (h *FixedSlotHandler) Get(w http.ResponseWriter, r *http.Request) {
	parishID, ok := requireParishScope(r.Context(), w, h.responder)
	if !ok {
		return
	}

	id, ok := FixedSlotIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidSlotID)
		return
	}

	slot, err := h.service.GetFixedSlot(r.Context(), parishID, id)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, toFixedSlotDTO(slot))
}

func (h *FixedSlotHandler) List(w http.ResponseWriter, r *http.Request) {
	parishID, ok := requireParishScope(r.Context(), w, h.responder)
	if !ok {
		return
	}

	slots, err := h.service.ListFixedSlots(r.Context(), parishID)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	dtos := make([]fixedSlotDTO, 0, len(slots))
	for _, slot := range slots {
		dtos = append(dtos, toFixedSlotDTO(slot))
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, dtos)
}

func (h *FixedSlotHandler) Delete(w http.ResponseWriter, r *http.Request) {
	parishID, ok := requireParishScope(r.Context(), w, h.responder)
	if !ok {
		return
	}

	id, ok := FixedSlotIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidSlotID)
		return
	}

	if err := h.service.DeleteFixedSlot(r.Context(), parishID, id); err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}
