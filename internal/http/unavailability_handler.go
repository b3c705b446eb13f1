package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/marcelopachecouba/sgme/internal/application"
)

type unavailabilityService interface {
	CreateUnavailability(ctx context.Context, parishID string, input application.UnavailabilityInput) (application.Unavailability, error)
	GetUnavailability(ctx context.Context, parishID, id string) (application.Unavailability, error)
	ListUnavailability(ctx context.Context, parishID string, window application.UnavailabilityWindow) ([]application.Unavailability, error)
	DeleteUnavailability(ctx context.Context, parishID, id string) error
}

// UnavailabilityHandler serves the minister absence records.
type UnavailabilityHandler struct {
	service   unavailabilityService
	responder responder
}

// NewUnavailabilityHandler builds an unavailability handler.
func NewUnavailabilityHandler(service unavailabilityService, logger *slog.Logger) *UnavailabilityHandler {
	return &UnavailabilityHandler{service: service, responder: newResponder(logger)}
}

// A null time label blocks the whole date.
type unavailabilityRequest struct {
	MinisterID string  `json:"minister_id"`
	Date       string  `json:"date"`
	TimeLabel  *string `json:"time_label"`
}

type unavailabilityDTO struct {
	ID         string  `json:"id"`
	ParishID   string  `json:"parish_id"`
	MinisterID string  `json:"minister_id"`
	Date       string  `json:"date"`
	TimeLabel  *string `json:"time_label"`
	CreatedAt  string  `json:"created_at"`
}

func toUnavailabilityDTO(record application.Unavailability) unavailabilityDTO {
	return unavailabilityDTO{
		ID:         record.ID,
		ParishID:   record.ParishID,
		MinisterID: record.MinisterID,
		Date:       formatDateValue(record.Date),
		TimeLabel:  record.TimeLabel,
		CreatedAt:  formatTimestamp(record.CreatedAt),
	}
}

func (h *UnavailabilityHandler) Create(w http.ResponseWriter, r *http.Request) {
	parishID, ok := requireParishScope(r.Context(), w, h.responder)
	if !ok {
		return
	}

	var req unavailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	input := application.UnavailabilityInput{
		MinisterID: req.MinisterID,
		TimeLabel:  req.TimeLabel,
	}
	if strings.TrimSpace(req.Date) != "" {
		date, err := parseDateValue(req.Date)
		if err != nil {
			h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
			return
		}
		input.Date = date
	}

	record, err := h.service.CreateUnavailability(r.Context(), parishID, input)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusCreated, toUnavailabilityDTO(record))
}

func (h *UnavailabilityHandler) Get(w http.ResponseWriter, r *http.Request) {
	parishID, ok := requireParishScope(r.Context(), w, h.responder)
	if !ok {
		return
	}

	id, ok := AbsenceIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidAbsenceID)
		return
	}

	record, err := h.service.GetUnavailability(r.Context(), parishID, id)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, toUnavailabilityDTO(record))
}

func (h *UnavailabilityHandler) List(w http.ResponseWriter, r *http.Request) {
	parishID, ok := requireParishScope(r.Context(), w, h.responder)
	if !ok {
		return
	}

	query := r.URL.Query()
	dateParam := query.Get("data")
	date, err := optionalDate(&dateParam)
	if err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}
	window := application.UnavailabilityWindow{
		MinisterID: strings.TrimSpace(query.Get("ministro")),
		Date:       date,
	}

	records, err := h.service.ListUnavailability(r.Context(), parishID, window)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	dtos := make([]unavailabilityDTO, 0, len(records))
	for _, record := range records {
		dtos = append(dtos, toUnavailabilityDTO(record))
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, dtos)
}

func (h *UnavailabilityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	parishID, ok := requireParishScope(r.Context(), w, h.responder)
	if !ok {
		return
	}

	id, ok := AbsenceIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidAbsenceID)
		return
	}

	if err := h.service.DeleteUnavailability(r.Context(), parishID, id); err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}
