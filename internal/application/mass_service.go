package application

import (
	"context"
	"strings"
	"time"

	"github.com/marcelopachecouba/sgme/internal/roster"
)

// MassWindow narrows mass listings to a date range. Nil bounds are open.
type MassWindow struct {
	From *time.Time
	To   *time.Time
}

// MassRepository captures the persistence interactions needed by the mass
// service.
type MassRepository interface {
	CreateMass(ctx context.Context, mass Mass) error
	UpdateMass(ctx context.Context, mass Mass) error
	GetMass(ctx context.Context, parishID, id string) (Mass, error)
	ListMasses(ctx context.Context, parishID string, window MassWindow) ([]Mass, error)
	DeleteMass(ctx context.Context, parishID, id string) error
}

// RosterReader exposes read access to mass rosters.
type RosterReader interface {
	ListAssignmentsForMass(ctx context.Context, parishID, massID string) ([]Assignment, error)
}

// MinisterDirectory exposes minister lookups for name resolution.
type MinisterDirectory interface {
	ListMinisters(ctx context.Context, parishID string) ([]Minister, error)
}

// MassService manages scheduled celebrations and the month calendar view.
type MassService struct {
	masses      MassRepository
	rosters     RosterReader
	ministers   MinisterDirectory
	idGenerator func() string
	now         func() time.Time
}

// NewMassService wires dependencies for mass operations.
func NewMassService(masses MassRepository, rosters RosterReader, ministers MinisterDirectory, idGenerator func() string, now func() time.Time) *MassService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &MassService{
		masses:      masses,
		rosters:     rosters,
		ministers:   ministers,
		idGenerator: idGenerator,
		now:         now,
	}
}

func validateMassInput(input MassInput, vErr *ValidationError) {
	if input.Date.IsZero() {
		vErr.add("date", "date is required")
	}
	if strings.TrimSpace(input.TimeLabel) == "" {
		vErr.add("time_label", "time label is required")
	}
	if input.RequiredCount < 0 {
		vErr.add("required_count", "required count must not be negative")
	}
}

// CreateMass validates and stores a new mass.
func (s *MassService) CreateMass(ctx context.Context, parishID string, input MassInput) (Mass, error) {
	vErr := &ValidationError{}
	validateMassInput(input, vErr)
	if vErr.HasErrors() {
		return Mass{}, vErr
	}

	createdAt := s.now()
	mass := Mass{
		ID:            s.idGenerator(),
		ParishID:      parishID,
		Date:          input.Date,
		TimeLabel:     strings.TrimSpace(input.TimeLabel),
		Community:     strings.TrimSpace(input.Community),
		RequiredCount: input.RequiredCount,
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
	}
	if err := s.masses.CreateMass(ctx, mass); err != nil {
		return Mass{}, mapRepositoryError(err)
	}
	return mass, nil
}

// UpdateMass replaces the schedule fields of an existing mass.
func (s *MassService) UpdateMass(ctx context.Context, parishID, id string, input MassInput) (Mass, error) {
	vErr := &ValidationError{}
	validateMassInput(input, vErr)
	if vErr.HasErrors() {
		return Mass{}, vErr
	}

	mass, err := s.masses.GetMass(ctx, parishID, id)
	if err != nil {
		return Mass{}, mapRepositoryError(err)
	}

	mass.Date = input.Date
	mass.TimeLabel = strings.TrimSpace(input.TimeLabel)
	mass.Community = strings.TrimSpace(input.Community)
	mass.RequiredCount = input.RequiredCount
	mass.UpdatedAt = s.now()
	if err := s.masses.UpdateMass(ctx, mass); err != nil {
		return Mass{}, mapRepositoryError(err)
	}
	return mass, nil
}

// GetMass retrieves a mass by ID within the parish.
func (s *MassService) GetMass(ctx context.Context, parishID, id string) (Mass, error) {
	mass, err := s.masses.GetMass(ctx, parishID, id)
	if err != nil {
		return Mass{}, mapRepositoryError(err)
	}
	return mass, nil
}

// ListMasses returns the parish's masses within the window, ordered by date
// then time label.
func (s *MassService) ListMasses(ctx context.Context, parishID string, window MassWindow) ([]Mass, error) {
	masses, err := s.masses.ListMasses(ctx, parishID, window)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return masses, nil
}

// DeleteMass removes a mass and its roster.
func (s *MassService) DeleteMass(ctx context.Context, parishID, id string) error {
	return mapRepositoryError(s.masses.DeleteMass(ctx, parishID, id))
}

// MonthCalendar lists the month's masses grouped by day, with each roster
// resolved to minister names. Days without masses are omitted.
func (s *MassService) MonthCalendar(ctx context.Context, parishID string, year int, month time.Month) ([]CalendarDay, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)
	masses, err := s.masses.ListMasses(ctx, parishID, MassWindow{From: &from, To: &to})
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

	var days []CalendarDay
	for _, mass := range masses {
		assignments, err := s.rosters.ListAssignmentsForMass(ctx, parishID, mass.ID)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		entry := CalendarMass{
			MassID:        mass.ID,
			TimeLabel:     mass.TimeLabel,
			Community:     mass.Community,
			RequiredCount: mass.RequiredCount,
		}
		for _, assignment := range assignments {
			name := names[assignment.MinisterID]
			if name == "" {
				name = assignment.MinisterID
			}
			entry.Ministers = append(entry.Ministers, name)
		}

		if len(days) > 0 && roster.SameDate(days[len(days)-1].Date, mass.Date) {
			last := &days[len(days)-1]
			last.Masses = append(last.Masses, entry)
			continue
		}
		days = append(days, CalendarDay{Date: mass.Date, Masses: []CalendarMass{entry}})
	}

	return days, nil
}
