package application

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"time"

	"github.com/marcelopachecouba/sgme/internal/recurrence"
	"github.com/marcelopachecouba/sgme/internal/roster"
)

// Confirmation actions accepted by SetConfirmation.
const (
	ConfirmActionConfirm = "confirm"
	ConfirmActionDecline = "decline"
)

// RosterMassStore captures the mass interactions needed by the roster
// service. The month expander both reads and materializes masses.
type RosterMassStore interface {
	GetMass(ctx context.Context, parishID, id string) (Mass, error)
	FindMass(ctx context.Context, parishID string, date time.Time, timeLabel string) (Mass, error)
	CreateMass(ctx context.Context, mass Mass) error
	UpdateMass(ctx context.Context, mass Mass) error
}

// FixedSlotSource exposes the parish's rule set in rule order.
type FixedSlotSource interface {
	ListFixedSlots(ctx context.Context, parishID string) ([]FixedSlot, error)
}

// AbsenceSource exposes unavailability lookups for eligibility checks.
type AbsenceSource interface {
	ListUnavailability(ctx context.Context, parishID string, window UnavailabilityWindow) ([]Unavailability, error)
}

// RosterMinisterDirectory exposes the minister lookups the roster service
// needs: the ordered pool for the fill pass and per-ID existence checks.
type RosterMinisterDirectory interface {
	GetMinister(ctx context.Context, parishID, id string) (Minister, error)
	ListMinisters(ctx context.Context, parishID string) ([]Minister, error)
}

// AssignmentStore captures the roster persistence interactions.
type AssignmentStore interface {
	CreateAssignment(ctx context.Context, assignment Assignment) error
	UpdateAssignment(ctx context.Context, assignment Assignment) error
	GetAssignment(ctx context.Context, parishID, id string) (Assignment, error)
	GetAssignmentByToken(ctx context.Context, token string) (Assignment, error)
	ListAssignmentsForMass(ctx context.Context, parishID, massID string) ([]Assignment, error)
	ListBusyMinisterIDs(ctx context.Context, parishID string, date time.Time, timeLabel, excludeMassID string) ([]string, error)
	ReplaceRoster(ctx context.Context, parishID, massID string, assignments []Assignment) error
	CountByMinister(ctx context.Context, parishID string, window MassWindow) (map[string]int, error)
	DeleteAssignment(ctx context.Context, parishID, id string) error
}

// RosterService runs the month expander and the auto-assignment engine and
// owns the manual roster operations.
type RosterService struct {
	masses         RosterMassStore
	slots          FixedSlotSource
	ministers      RosterMinisterDirectory
	absences       AbsenceSource
	assignments    AssignmentStore
	engine         *recurrence.Engine
	idGenerator    func() string
	tokenGenerator func() string
	now            func() time.Time
	logger         *slog.Logger
}

// NewRosterService wires dependencies for roster operations. tokenGenerator
// must produce unguessable values; tokens are the only credential guarding
// public confirmation access.
func NewRosterService(
	masses RosterMassStore,
	slots FixedSlotSource,
	ministers RosterMinisterDirectory,
	absences AbsenceSource,
	assignments AssignmentStore,
	engine *recurrence.Engine,
	idGenerator func() string,
	tokenGenerator func() string,
	now func() time.Time,
	logger *slog.Logger,
) *RosterService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if tokenGenerator == nil {
		tokenGenerator = idGenerator
	}
	if now == nil {
		now = time.Now
	}
	return &RosterService{
		masses:         masses,
		slots:          slots,
		ministers:      ministers,
		absences:       absences,
		assignments:    assignments,
		engine:         engine,
		idGenerator:    idGenerator,
		tokenGenerator: tokenGenerator,
		now:            now,
		logger:         defaultLogger(logger),
	}
}

func (s *RosterService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "RosterService", operation, attrs...)
}

func slotRules(slots []FixedSlot) []roster.Slot {
	rules := make([]roster.Slot, 0, len(slots))
	for _, slot := range slots {
		rules = append(rules, roster.Slot{
			ID:         slot.ID,
			Week:       slot.Week,
			Weekday:    slot.Weekday,
			TimeLabel:  slot.TimeLabel,
			Community:  slot.Community,
			MinisterID: slot.MinisterID,
		})
	}
	return rules
}

func absenceRecords(records []Unavailability) []roster.Absence {
	absences := make([]roster.Absence, 0, len(records))
	for _, record := range records {
		absences = append(absences, roster.Absence{
			MinisterID: record.MinisterID,
			Date:       record.Date,
			TimeLabel:  record.TimeLabel,
		})
	}
	return absences
}

func (s *RosterService) newAssignment(parishID, massID, ministerID string) Assignment {
	createdAt := s.now()
	return Assignment{
		ID:           s.idGenerator(),
		ParishID:     parishID,
		MassID:       massID,
		MinisterID:   ministerID,
		Confirmation: ConfirmationUnset,
		Token:        s.tokenGenerator(),
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}
}

// ExpandMonth projects the parish's rule set onto the target month. Masses
// are created or updated in place and rosters are seeded with the rules'
// ministers. Re-running for the same month never duplicates assignments.
func (s *RosterService) ExpandMonth(ctx context.Context, parishID string, year int, month time.Month) (ExpandMonthResult, error) {
	logger := s.loggerWith(ctx, "ExpandMonth", "parish_id", parishID, "year", year, "month", int(month))

	slots, err := s.slots.ListFixedSlots(ctx, parishID)
	if err != nil {
		return ExpandMonthResult{}, mapRepositoryError(err)
	}

	var result ExpandMonthResult
	for _, plan := range s.engine.PlanMonth(year, month, slotRules(slots)) {
		mass, err := s.masses.FindMass(ctx, parishID, plan.Date, plan.TimeLabel)
		switch {
		case errors.Is(mapRepositoryError(err), ErrNotFound):
			createdAt := s.now()
			mass = Mass{
				ID:            s.idGenerator(),
				ParishID:      parishID,
				Date:          plan.Date,
				TimeLabel:     plan.TimeLabel,
				Community:     plan.Community,
				RequiredCount: plan.Required,
				CreatedAt:     createdAt,
				UpdatedAt:     createdAt,
			}
			if err := s.masses.CreateMass(ctx, mass); err != nil {
				return ExpandMonthResult{}, mapRepositoryError(err)
			}
			result.MassesCreated++
		case err != nil:
			return ExpandMonthResult{}, mapRepositoryError(err)
		default:
			// Last expansion wins on the required count, even over a
			// manual override.
			mass.RequiredCount = plan.Required
			mass.UpdatedAt = s.now()
			if err := s.masses.UpdateMass(ctx, mass); err != nil {
				return ExpandMonthResult{}, mapRepositoryError(err)
			}
			result.MassesUpdated++
		}

		existing, err := s.assignments.ListAssignmentsForMass(ctx, parishID, mass.ID)
		if err != nil {
			return ExpandMonthResult{}, mapRepositoryError(err)
		}
		seeded := make(map[string]struct{}, len(existing))
		for _, assignment := range existing {
			seeded[assignment.MinisterID] = struct{}{}
		}

		for _, ministerID := range plan.MinisterIDs {
			if _, ok := seeded[ministerID]; ok {
				continue
			}
			if err := s.assignments.CreateAssignment(ctx, s.newAssignment(parishID, mass.ID, ministerID)); err != nil {
				return ExpandMonthResult{}, mapRepositoryError(err)
			}
			seeded[ministerID] = struct{}{}
			result.AssignmentsCreated++
		}
	}

	logger.InfoContext(ctx, "month expanded",
		"masses_created", result.MassesCreated,
		"masses_updated", result.MassesUpdated,
		"assignments_created", result.AssignmentsCreated,
	)
	return result, nil
}

// AutoAssign rebuilds one mass's roster from scratch: matching fixed rules
// first, then the general pool in name order. The previous roster, tokens
// and confirmations included, is discarded on every run.
func (s *RosterService) AutoAssign(ctx context.Context, parishID, massID string) (AutoAssignResult, error) {
	logger := s.loggerWith(ctx, "AutoAssign", "parish_id", parishID, "mass_id", massID)

	mass, err := s.masses.GetMass(ctx, parishID, massID)
	if err != nil {
		err = mapRepositoryError(err)
		logger.ErrorContext(ctx, "auto assignment failed", "error", err, "error_kind", ErrorKind(err))
		return AutoAssignResult{}, err
	}

	occasion := roster.Occasion{Date: mass.Date, TimeLabel: mass.TimeLabel, Community: mass.Community}

	slots, err := s.slots.ListFixedSlots(ctx, parishID)
	if err != nil {
		return AutoAssignResult{}, mapRepositoryError(err)
	}
	var fixed []string
	for _, rule := range slotRules(slots) {
		if rule.Matches(occasion) {
			fixed = append(fixed, rule.MinisterID)
		}
	}

	ministers, err := s.ministers.ListMinisters(ctx, parishID)
	if err != nil {
		return AutoAssignResult{}, mapRepositoryError(err)
	}
	pool := make([]string, 0, len(ministers))
	for _, minister := range ministers {
		pool = append(pool, minister.ID)
	}

	records, err := s.absences.ListUnavailability(ctx, parishID, UnavailabilityWindow{Date: &mass.Date})
	if err != nil {
		return AutoAssignResult{}, mapRepositoryError(err)
	}

	busyIDs, err := s.assignments.ListBusyMinisterIDs(ctx, parishID, mass.Date, mass.TimeLabel, mass.ID)
	if err != nil {
		return AutoAssignResult{}, mapRepositoryError(err)
	}

	selected := roster.Select(mass.RequiredCount, fixed, pool, roster.Eligibility{
		Blocked: roster.BlockedByAbsences(absenceRecords(records), occasion),
		Busy:    roster.BusySet(busyIDs),
	})

	assignments := make([]Assignment, 0, len(selected))
	for _, ministerID := range selected {
		assignments = append(assignments, s.newAssignment(parishID, mass.ID, ministerID))
	}
	if err := s.assignments.ReplaceRoster(ctx, parishID, mass.ID, assignments); err != nil {
		return AutoAssignResult{}, mapRepositoryError(err)
	}

	logger.InfoContext(ctx, "roster rebuilt",
		"selected_count", len(selected),
		"required_count", mass.RequiredCount,
	)
	return AutoAssignResult{SelectedCount: len(selected), RequiredCount: mass.RequiredCount}, nil
}

// SetRoster bulk-replaces a mass's roster with an explicit minister list,
// preserving the given order and dropping duplicates.
func (s *RosterService) SetRoster(ctx context.Context, parishID, massID string, ministerIDs []string) ([]Assignment, error) {
	mass, err := s.masses.GetMass(ctx, parishID, massID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	seen := make(map[string]struct{}, len(ministerIDs))
	assignments := make([]Assignment, 0, len(ministerIDs))
	for _, ministerID := range ministerIDs {
		if _, ok := seen[ministerID]; ok {
			continue
		}
		seen[ministerID] = struct{}{}

		minister, err := s.ministers.GetMinister(ctx, parishID, ministerID)
		if err != nil {
			return nil, mapRepositoryError(err)
		}
		assignment := s.newAssignment(parishID, mass.ID, minister.ID)
		assignment.MinisterName = minister.Name
		assignments = append(assignments, assignment)
	}

	if err := s.assignments.ReplaceRoster(ctx, parishID, mass.ID, assignments); err != nil {
		return nil, mapRepositoryError(err)
	}
	return assignments, nil
}

// AddAssignment places one minister on a mass roster. Adding someone already
// on the roster returns the existing assignment untouched, with created set
// to false.
func (s *RosterService) AddAssignment(ctx context.Context, parishID, massID, ministerID string) (Assignment, bool, error) {
	mass, err := s.masses.GetMass(ctx, parishID, massID)
	if err != nil {
		return Assignment{}, false, mapRepositoryError(err)
	}
	minister, err := s.ministers.GetMinister(ctx, parishID, ministerID)
	if err != nil {
		return Assignment{}, false, mapRepositoryError(err)
	}

	existing, err := s.assignments.ListAssignmentsForMass(ctx, parishID, mass.ID)
	if err != nil {
		return Assignment{}, false, mapRepositoryError(err)
	}
	for _, assignment := range existing {
		if assignment.MinisterID == minister.ID {
			assignment.MinisterName = minister.Name
			return assignment, false, nil
		}
	}

	assignment := s.newAssignment(parishID, mass.ID, minister.ID)
	assignment.MinisterName = minister.Name
	if err := s.assignments.CreateAssignment(ctx, assignment); err != nil {
		return Assignment{}, false, mapRepositoryError(err)
	}
	return assignment, true, nil
}

// RemoveAssignment deletes a single roster entry.
func (s *RosterService) RemoveAssignment(ctx context.Context, parishID, assignmentID string) error {
	return mapRepositoryError(s.assignments.DeleteAssignment(ctx, parishID, assignmentID))
}

// Roster returns a mass's assignments with minister names resolved.
func (s *RosterService) Roster(ctx context.Context, parishID, massID string) ([]Assignment, error) {
	if _, err := s.masses.GetMass(ctx, parishID, massID); err != nil {
		return nil, mapRepositoryError(err)
	}

	assignments, err := s.assignments.ListAssignmentsForMass(ctx, parishID, massID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	ministers, err := s.ministers.ListMinisters(ctx, parishID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	names := make(map[string]string, len(ministers))
	for _, minister := range ministers {
		names[minister.ID] = minister.Name
	}
	for i := range assignments {
		assignments[i].MinisterName = names[assignments[i].MinisterID]
	}

	return assignments, nil
}

// SetConfirmation records the assignee's answer. The token is the only
// credential; re-toggling between confirmed and declined is allowed.
func (s *RosterService) SetConfirmation(ctx context.Context, token, action string) (Assignment, error) {
	var state string
	switch action {
	case ConfirmActionConfirm:
		state = ConfirmationConfirmed
	case ConfirmActionDecline:
		state = ConfirmationDeclined
	default:
		vErr := &ValidationError{}
		vErr.add("action", "action must be confirm or decline")
		return Assignment{}, vErr
	}

	assignment, err := s.assignments.GetAssignmentByToken(ctx, token)
	if err != nil {
		return Assignment{}, mapRepositoryError(err)
	}

	assignment.Confirmation = state
	assignment.UpdatedAt = s.now()
	if err := s.assignments.UpdateAssignment(ctx, assignment); err != nil {
		return Assignment{}, mapRepositoryError(err)
	}
	return assignment, nil
}

// SetAttendance records whether the minister actually served.
func (s *RosterService) SetAttendance(ctx context.Context, parishID, assignmentID string, attended bool) (Assignment, error) {
	assignment, err := s.assignments.GetAssignment(ctx, parishID, assignmentID)
	if err != nil {
		return Assignment{}, mapRepositoryError(err)
	}

	assignment.Attended = attended
	assignment.UpdatedAt = s.now()
	if err := s.assignments.UpdateAssignment(ctx, assignment); err != nil {
		return Assignment{}, mapRepositoryError(err)
	}
	return assignment, nil
}

// Stats aggregates assignment totals per minister within the window. Every
// minister of the parish appears, including those with zero assignments.
func (s *RosterService) Stats(ctx context.Context, parishID string, window MassWindow) ([]MinisterStat, error) {
	totals, err := s.assignments.CountByMinister(ctx, parishID, window)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	ministers, err := s.ministers.ListMinisters(ctx, parishID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	stats := make([]MinisterStat, 0, len(ministers))
	for _, minister := range ministers {
		stats = append(stats, MinisterStat{
			MinisterID:   minister.ID,
			MinisterName: minister.Name,
			Assignments:  totals[minister.ID],
		})
	}
	sort.SliceStable(stats, func(i, j int) bool {
		if stats[i].Assignments != stats[j].Assignments {
			return stats[i].Assignments > stats[j].Assignments
		}
		return stats[i].MinisterName < stats[j].MinisterName
	})

	return stats, nil
}
