package persistence

import (
	"context"
	"time"
)

// ParishRepository exposes CRUD operations for parishes.
type ParishRepository interface {
	CreateParish(ctx context.Context, parish Parish) error
	UpdateParish(ctx context.Context, parish Parish) error
	GetParish(ctx context.Context, id string) (Parish, error)
	ListParishes(ctx context.Context) ([]Parish, error)
	DeleteParish(ctx context.Context, id string) error
}

// MinisterRepository exposes CRUD operations for ministers. Listing returns
// ministers in name order; the fill pass depends on that ordering.
type MinisterRepository interface {
	CreateMinister(ctx context.Context, minister Minister) error
	UpdateMinister(ctx context.Context, minister Minister) error
	GetMinister(ctx context.Context, parishID, id string) (Minister, error)
	ListMinisters(ctx context.Context, parishID string) ([]Minister, error)
	DeleteMinister(ctx context.Context, parishID, id string) error
}

// MassFilter narrows mass queries to a date window. Nil bounds are open.
type MassFilter struct {
	From *time.Time
	To   *time.Time
}

// MassRepository stores scheduled masses.
type MassRepository interface {
	CreateMass(ctx context.Context, mass Mass) error
	UpdateMass(ctx context.Context, mass Mass) error
	GetMass(ctx context.Context, parishID, id string) (Mass, error)
	// FindMass locates a mass by calendar day and time label. The month
	// expander uses it to decide between creating and updating.
	FindMass(ctx context.Context, parishID string, date time.Time, timeLabel string) (Mass, error)
	ListMasses(ctx context.Context, parishID string, filter MassFilter) ([]Mass, error)
	DeleteMass(ctx context.Context, parishID, id string) error
}

// FixedSlotRepository stores recurring assignment rules.
type FixedSlotRepository interface {
	CreateFixedSlot(ctx context.Context, slot FixedSlot) error
	UpdateFixedSlot(ctx context.Context, slot FixedSlot) error
	GetFixedSlot(ctx context.Context, parishID, id string) (FixedSlot, error)
	ListFixedSlots(ctx context.Context, parishID string) ([]FixedSlot, error)
	DeleteFixedSlot(ctx context.Context, parishID, id string) error
}

// UnavailabilityFilter narrows unavailability queries. Zero values are open.
type UnavailabilityFilter struct {
	MinisterID string
	Date       *time.Time
}

// UnavailabilityRepository stores minister absence records.
type UnavailabilityRepository interface {
	CreateUnavailability(ctx context.Context, record Unavailability) error
	GetUnavailability(ctx context.Context, parishID, id string) (Unavailability, error)
	ListUnavailability(ctx context.Context, parishID string, filter UnavailabilityFilter) ([]Unavailability, error)
	DeleteUnavailability(ctx context.Context, parishID, id string) error
}

// AssignmentFilter narrows assignment queries for reporting.
type AssignmentFilter struct {
	From *time.Time
	To   *time.Time
}

// AssignmentRepository stores roster entries.
type AssignmentRepository interface {
	CreateAssignment(ctx context.Context, assignment Assignment) error
	UpdateAssignment(ctx context.Context, assignment Assignment) error
	GetAssignment(ctx context.Context, parishID, id string) (Assignment, error)
	// GetAssignmentByToken is deliberately unscoped; the token itself is
	// the capability.
	GetAssignmentByToken(ctx context.Context, token string) (Assignment, error)
	ListAssignmentsForMass(ctx context.Context, parishID, massID string) ([]Assignment, error)
	// ListBusyMinisterIDs returns the ministers already assigned to a mass
	// on the given date and time label, excluding the mass being refilled.
	ListBusyMinisterIDs(ctx context.Context, parishID string, date time.Time, timeLabel, excludeMassID string) ([]string, error)
	// ReplaceRoster clears the mass's roster and inserts the given records
	// in one transaction.
	ReplaceRoster(ctx context.Context, parishID, massID string, assignments []Assignment) error
	// CountByMinister aggregates assignment totals per minister within the
	// filter's date window.
	CountByMinister(ctx context.Context, parishID string, filter AssignmentFilter) (map[string]int, error)
	DeleteAssignment(ctx context.Context, parishID, id string) error
}
