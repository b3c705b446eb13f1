package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/marcelopachecouba/sgme/internal/application"
)

type rosterService interface {
	ExpandMonth(ctx context.Context, parishID string, year int, month time.Month) (application.ExpandMonthResult, error)
	AutoAssign(ctx context.Context, parishID, massID string) (application.AutoAssignResult, error)
	SetRoster(ctx context.Context, parishID, massID string, ministerIDs []string) ([]application.Assignment, error)
	AddAssignment(ctx context.Context, parishID, massID, ministerID string) (application.Assignment, bool, error)
	RemoveAssignment(ctx context.Context, parishID, assignmentID string) error
	Roster(ctx context.Context, parishID, massID string) ([]application.Assignment, error)
	SetConfirmation(ctx context.Context, token, action string) (application.Assignment, error)
	SetAttendance(ctx context.Context, parishID, assignmentID string, attended bool) (application.Assignment, error)
	Stats(ctx context.Context, parishID string, window application.MassWindow) ([]application.MinisterStat, error)
}

// RosterHandler serves roster assembly, confirmation and reporting.
type RosterHandler struct {
	service   rosterService
	responder responder
}

// NewRosterHandler builds a roster handler.
func NewRosterHandler(service rosterService, logger *slog.Logger) *RosterHandler {
	return &RosterHandler{service: service, responder: newResponder(logger)}
}

type assignmentDTO struct {
	ID           string `json:"id"`
	MassID       string `json:"mass_id"`
	MinisterID   string `json:"minister_id"`
	MinisterName string `json:"minister_name,omitempty"`
	Confirmation string `json:"confirmation"`
	Attended     bool   `json:"attended"`
	Token        string `json:"token"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

func toAssignmentDTO(assignment application.Assignment) assignmentDTO {
	return assignmentDTO{
		ID:           assignment.ID,
		MassID:       assignment.MassID,
		MinisterID:   assignment.MinisterID,
		MinisterName: assignment.MinisterName,
		Confirmation: assignment.Confirmation,
		Attended:     assignment.Attended,
		Token:        assignment.Token,
		CreatedAt:    formatTimestamp(assignment.CreatedAt),
		UpdatedAt:    formatTimestamp(assignment.UpdatedAt),
	}
}

func toAssignmentDTOs(assignments []application.Assignment) []assignmentDTO {
	dtos := make([]assignmentDTO, 0, len(assignments))
	for _, assignment := range assignments {
		dtos = append(dtos, toAssignmentDTO(assignment))
	}
	return dtos
}

func (h *RosterHandler) massID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := MassIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidMassID)
		return "", false
	}
	return id, true
}

func (h *RosterHandler) assignmentID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := AssignmentIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidAssignment)
		return "", false
	}
	return id, true
}

// Roster returns the current roster of one mass.
func (h *RosterHandler) Roster(w http.ResponseWriter, r *http.Request) {
	parishID, ok := requireParishScope(r.Context(), w, h.responder)
	if !ok {
		return
	}
	massID, ok := h.massID(w, r)
	if !ok {
		return
	}

	assignments, err := h.service.Roster(r.Context(), parishID, massID)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, toAssignmentDTOs(assignments))
}

type setRosterRequest struct {
	MinisterIDs []string `json:"minister_ids"`
}

// SetRoster replaces the roster of one mass with the given ministers.
func (h *RosterHandler) SetRoster(w http.ResponseWriter, r *http.Request) {
	parishID, ok := requireParishScope(r.Context(), w, h.responder)
	if !ok {
		return
	}
	massID, ok := h.massID(w, r)
	if !ok {
		return
	}

	var req setRosterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	assignments, err := h.service.SetRoster(r.Context(), parishID, massID, req.MinisterIDs)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, toAssignmentDTOs(assignments))
}

type addAssignmentRequest struct {
	MinisterID string `json:"minister_id"`
}

// AddAssignment appends one minister to a roster. A new assignment answers
// 201; re-adding the same minister returns the existing assignment with 200.
func (h *RosterHandler) AddAssignment(w http.ResponseWriter, r *http.Request) {
	parishID, ok := requireParishScope(r.Context(), w, h.responder)
	if !ok {
		return
	}
	massID, ok := h.massID(w, r)
	if !ok {
		return
	}

	var req addAssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	assignment, created, err := h.service.AddAssignment(r.Context(), parishID, massID, req.MinisterID)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	h.responder.writeJSON(r.Context(), w, status, toAssignmentDTO(assignment))
}

type autoAssignResponse struct {
	SelectedCount int `json:"selected_count"`
	RequiredCount int `json:"required_count"`
}

// AutoAssign rebuilds one roster from the fixed rules and the minister pool.
func (h *RosterHandler) AutoAssign(w http.ResponseWriter, r *http.Request) {
	parishID, ok := requireParishScope(r.Context(), w, h.responder)
	if !ok {
		return
	}
	massID, ok := h.massID(w, r)
	if !ok {
		return
	}

	result, err := h.service.AutoAssign(r.Context(), parishID, massID)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, autoAssignResponse{
		SelectedCount: result.SelectedCount,
		RequiredCount: result.RequiredCount,
	})
}

type expandMonthRequest struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

type expandMonthResponse struct {
	MassesCreated      int `json:"masses_created"`
	MassesUpdated      int `json:"masses_updated"`
	AssignmentsCreated int `json:"assignments_created"`
}

// ExpandMonth projects the fixed rules onto one month, creating masses and
// seeding their rosters.
func (h *RosterHandler) ExpandMonth(w http.ResponseWriter, r *http.Request) {
	parishID, ok := requireParishScope(r.Context(), w, h.responder)
	if !ok {
		return
	}

	var req expandMonthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}
	if req.Month < 1 || req.Month > 12 || req.Year <= 0 {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidMonth)
		return
	}

	result, err := h.service.ExpandMonth(r.Context(), parishID, req.Year, time.Month(req.Month))
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, expandMonthResponse{
		MassesCreated:      result.MassesCreated,
		MassesUpdated:      result.MassesUpdated,
		AssignmentsCreated: result.AssignmentsCreated,
	})
}

// RemoveAssignment takes one minister off a roster.
func (h *RosterHandler) RemoveAssignment(w http.ResponseWriter, r *http.Request) {
	parishID, ok := requireParishScope(r.Context(), w, h.responder)
	if !ok {
		return
	}
	assignmentID, ok := h.assignmentID(w, r)
	if !ok {
		return
	}

	if err := h.service.RemoveAssignment(r.Context(), parishID, assignmentID); err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

type attendanceRequest struct {
	Attended bool `json:"attended"`
}

// SetAttendance records whether the minister actually served.
func (h *RosterHandler) SetAttendance(w http.ResponseWriter, r *http.Request) {
	parishID, ok := requireParishScope(r.Context(), w, h.responder)
	if !ok {
		return
	}
	assignmentID, ok := h.assignmentID(w, r)
	if !ok {
		return
	}

	var req attendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	assignment, err := h.service.SetAttendance(r.Context(), parishID, assignmentID, req.Attended)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, toAssignmentDTO(assignment))
}

type confirmationRequest struct {
	Action string `json:"action"`
}

// Confirm lets a minister answer a roster invitation through the tokenized
// link, without a parish scope.
func (h *RosterHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	token, ok := PublicTokenFromContext(r.Context())
	if !ok || strings.TrimSpace(token) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidAssignment)
		return
	}

	var req confirmationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	assignment, err := h.service.SetConfirmation(r.Context(), token, req.Action)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, toAssignmentDTO(assignment))
}

type ministerStatDTO struct {
	MinisterID   string `json:"minister_id"`
	MinisterName string `json:"minister_name"`
	Assignments  int    `json:"assignments"`
}

// Stats reports per minister assignment totals, optionally windowed by date.
func (h *RosterHandler) Stats(w http.ResponseWriter, r *http.Request) {
	parishID, ok := requireParishScope(r.Context(), w, h.responder)
	if !ok {
		return
	}

	window, err := massWindowFromQuery(r)
	if err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	stats, err := h.service.Stats(r.Context(), parishID, window)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	dtos := make([]ministerStatDTO, 0, len(stats))
	for _, stat := range stats {
		dtos = append(dtos, ministerStatDTO{
			MinisterID:   stat.MinisterID,
			MinisterName: stat.MinisterName,
			Assignments:  stat.Assignments,
		})
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, dtos)
}
