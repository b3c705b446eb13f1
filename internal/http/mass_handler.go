package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/marcelopachecouba/sgme/internal/application"
)

type massService interface {
	CreateMass(ctx context.Context, parishID string, input application.MassInput) (application.Mass, error)
	UpdateMass(ctx context.Context, parishID, id string, input application.MassInput) (application.Mass, error)
	GetMass(ctx context.Context, parishID, id string) (application.Mass, error)
	ListMasses(ctx context.Context, parishID string, window application.MassWindow) ([]application.Mass, error)
	DeleteMass(ctx context.Context, parishID, id string) error
	MonthCalendar(ctx context.Context, parishID string, year int, month time.Month) ([]application.CalendarDay, error)
}

// MassHandler serves the mass CRUD and the month calendar.
type MassHandler struct {
	service   massService
	responder responder
}

// NewMassHandler builds a mass handler.
func NewMassHandler(service massService, logger *slog.Logger) *MassHandler {
	return &MassHandler{service: service, responder: newResponder(logger)}
}

type massRequest struct {
	Date          string `json:"date"`
	TimeLabel     string `json:"time_label"`
	Community     string `json:"community"`
	RequiredCount int    `json:"required_count"`
}

type massDTO struct {
	ID            string `json:"id"`
	ParishID      string `json:"parish_id"`
	Date          string `json:"date"`
	TimeLabel     string `json:"time_label"`
	Community     string `json:"community"`
	RequiredCount int    `json:"required_count"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

func toMassDTO(mass application.Mass) massDTO {
	return massDTO{
		ID:            mass.ID,
		ParishID:      mass.ParishID,
		Date:          formatDateValue(mass.Date),
		TimeLabel:     mass.TimeLabel,
		Community:     mass.Community,
		RequiredCount: mass.RequiredCount,
		CreatedAt:     formatTimestamp(mass.CreatedAt),
		UpdatedAt:     formatTimestamp(mass.UpdatedAt),
	}
}

func (h *MassHandler) decodeInput(r *http.Request) (application.MassInput, error) {
	var req massRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return application.MassInput{}, errBadRequestBody
	}

	input := application.MassInput{
		TimeLabel:     req.TimeLabel,
		Community:     req.Community,
		RequiredCount: req.RequiredCount,
	}
	if strings.TrimSpace(req.Date) != "" {
		date, err := parseDateValue(req.Date)
		if err != nil {
			return application.MassInput{}, errBadRequestBody
		}
		input.Date = date
	}
	return input, nil
}

func (h *MassHandler) Create(w http.ResponseWriter, r *http.Request) {
	parishID, ok := requireParishScope(r.Context(), w, h.responder)
	if !ok {
		return
	}

	input, err := h.decodeInput(r)
	if err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, err)
		return
	}

	mass, err := h.service.CreateMass(r.Context(), parishID, input)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusCreated, toMassDTO(mass))
}

func (h *MassHandler) Update(w http.ResponseWriter, r *http.Request) {
	parishID, ok := requireParishScope(r.Context(), w, h.responder)
	if !ok {
		return
	}

	id, ok := MassIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidMassID)
		return
	}

	input, err := h.decodeInput(r)
	if err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, err)
		return
	}

	mass, err := h.service.UpdateMass(r.Context(), parishID, id, input)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, toMassDTO(mass))
}

func (h *MassHandler) Get(w http.ResponseWriter, r *http.Request) {
	parishID, ok := requireParishScope(r.Context(), w, h.responder)
	if !ok {
		return
	}

	id, ok := MassIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidMassID)
		return
	}

	mass, err := h.service.GetMass(r.Context(), parishID, id)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, toMassDTO(mass))
}

func (h *MassHandler) List(w http.ResponseWriter, r *http.Request) {
	parishID, ok := requireParishScope(r.Context(), w, h.responder)
	if !ok {
		return
	}

	window, err := massWindowFromQuery(r)
	if err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	masses, err := h.service.ListMasses(r.Context(), parishID, window)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	dtos := make([]massDTO, 0, len(masses))
	for _, mass := range masses {
		dtos = append(dtos, toMassDTO(mass))
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, dtos)
}

func (h *MassHandler) Delete(w http.ResponseWriter, r *http.Request) {
	parishID, ok := requireParishScope(r.Context(), w, h.responder)
	if !ok {
		return
	}

	id, ok := MassIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidMassID)
		return
	}

	if err := h.service.DeleteMass(r.Context(), parishID, id); err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

type calendarMassDTO struct {
	MassID        string   `json:"mass_id"`
	TimeLabel     string   `json:"time_label"`
	Community     string   `json:"community"`
	RequiredCount int      `json:"required_count"`
	Ministers     []string `json:"ministers"`
}

type calendarDayDTO struct {
	Date   string            `json:"date"`
	Masses []calendarMassDTO `json:"masses"`
}

// Calendar answers the month view used by the printed roster board.
func (h *MassHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	parishID, ok := requireParishScope(r.Context(), w, h.responder)
	if !ok {
		return
	}

	year, month, err := monthFromQuery(r)
	if err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidMonth)
		return
	}

	days, err := h.service.MonthCalendar(r.Context(), parishID, year, month)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	dtos := make([]calendarDayDTO, 0, len(days))
	for _, day := range days {
		masses := make([]calendarMassDTO, 0, len(day.Masses))
		for _, mass := range day.Masses {
			ministers := mass.Ministers
			if ministers == nil {
				ministers = []string{}
			}
			masses = append(masses, calendarMassDTO{
				MassID:        mass.MassID,
				TimeLabel:     mass.TimeLabel,
				Community:     mass.Community,
				RequiredCount: mass.RequiredCount,
				Ministers:     ministers,
			})
		}
		dtos = append(dtos, calendarDayDTO{Date: formatDateValue(day.Date), Masses: masses})
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, dtos)
}

func massWindowFromQuery(r *http.Request) (application.MassWindow, error) {
	query := r.URL.Query()
	from := query.Get("inicio")
	to := query.Get("fim")

	var window application.MassWindow
	parsedFrom, err := optionalDate(&from)
	if err != nil {
		return application.MassWindow{}, err
	}
	parsedTo, err := optionalDate(&to)
	if err != nil {
		return application.MassWindow{}, err
	}
	window.From = parsedFrom
	window.To = parsedTo
	return window, nil
}

func monthFromQuery(r *http.Request) (int, time.Month, error) {
	query := r.URL.Query()
	year, err := strconv.Atoi(query.Get("ano"))
	if err != nil {
		return 0, 0, err
	}
	monthNum, err := strconv.Atoi(query.Get("mes"))
	if err != nil {
		return 0, 0, err
	}
	if monthNum < 1 || monthNum > 12 {
		return 0, 0, errInvalidMonth
	}
	return year, time.Month(monthNum), nil
}
