package persistence

import "time"

// Parish is the owning scope for every other record. Queries and writes are
// always partitioned by parish.
type Parish struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Minister is a volunteer eligible for mass rosters. Names are unique within
// a parish.
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

// Mass is one scheduled celebration. Date carries only the calendar day; the
// clock time lives in the free-text TimeLabel.
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

// FixedSlot is a recurring assignment rule. Every pattern field is nullable;
// nil means match-any.
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

// Unavailability marks a minister as unable to serve. A nil TimeLabel covers
// the whole date.
type Unavailability struct {
	ID         string
	ParishID   string
	MinisterID string
	Date       time.Time
	TimeLabel  *string
	CreatedAt  time.Time
}

// Confirmation states stored on an assignment.
const (
	ConfirmationUnset     = "unset"
	ConfirmationConfirmed = "confirmed"
	ConfirmationDeclined  = "declined"
)

// Assignment places one minister on one mass roster. Token grants the
// minister confirm/decline access without a login.
type Assignment struct {
	ID           string
	ParishID     string
	MassID       string
	MinisterID   string
	Confirmation string
	Attended     bool
	Token        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
