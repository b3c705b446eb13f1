package application

import "time"

// Parish is the owning scope for every other record.
type Parish struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MinisterInput captures caller provided minister fields.
type MinisterInput struct {
	Name        string
	Phone       *string
	Email       *string
	BirthDate   *time.Time
	YearsServed int
}

// Minister is a volunteer eligible for mass rosters.
type Minister struct {
	ID          string
	ParishID    string
	Name        string
	Phone       *string
	Email       *string
	BirthDate   *time.Time
	YearsServed int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// MassInput captures caller provided mass fields.
type MassInput struct {
	Date          time.Time
	TimeLabel     string
	Community     string
	RequiredCount int
}

// Mass is one scheduled celebration.
type Mass struct {
	ID            string
	ParishID      string
	Date          time.Time
	TimeLabel     string
	Community     string
	RequiredCount int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// FixedSlotInput captures caller provided fixed slot fields. Nil pattern
// fields are wildcards.
type FixedSlotInput struct {
	Week       *int
	Weekday    *int
	TimeLabel  *string
	Community  *string
	MinisterID string
}

// FixedSlot is a recurring assignment rule.
type FixedSlot struct {
	ID         string
	ParishID   string
	Week       *int
	Weekday    *int
	TimeLabel  *string
	Community  *string
	MinisterID string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// UnavailabilityInput captures caller provided absence fields. A nil
// TimeLabel blocks the whole date.
type UnavailabilityInput struct {
	MinisterID string
	Date       time.Time
	TimeLabel  *string
}

// Unavailability marks a minister as unable to serve.
type Unavailability struct {
	ID         string
	ParishID   string
	MinisterID string
	Date       time.Time
	TimeLabel  *string
	CreatedAt  time.Time
}

// Confirmation states carried by an assignment.
const (
	ConfirmationUnset     = "unset"
	ConfirmationConfirmed = "confirmed"
	ConfirmationDeclined  = "declined"
)

// Assignment places one minister on one mass roster. MinisterName is filled
// on read paths that join the minister directory.
type Assignment struct {
	ID           string
	ParishID     string
	MassID       string
	MinisterID   string
	MinisterName string
	Confirmation string
	Attended     bool
	Token        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ExpandMonthResult reports what a month expansion changed.
type ExpandMonthResult struct {
	MassesCreated      int
	MassesUpdated      int
	AssignmentsCreated int
}

// AutoAssignResult reports the outcome of filling one roster. SelectedCount
// below RequiredCount is a valid partial roster, not an error.
type AutoAssignResult struct {
	SelectedCount int
	RequiredCount int
}

// CalendarMass is one celebration in the month calendar, with the roster
// resolved to minister names.
type CalendarMass struct {
	MassID        string
	TimeLabel     string
	Community     string
	RequiredCount int
	Ministers     []string
}

// CalendarDay groups one day's masses for the month calendar.
type CalendarDay struct {
	Date   time.Time
	Masses []CalendarMass
}

// MinisterStat is one row of the per-minister assignment totals.
type MinisterStat struct {
	MinisterID   string
	MinisterName string
	Assignments  int
}
