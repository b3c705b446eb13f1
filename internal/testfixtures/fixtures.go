package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/marcelopachecouba/sgme/internal/persistence"
)

var (
	parishCounter     uint64
	ministerCounter   uint64
	massCounter       uint64
	slotCounter       uint64
	absenceCounter    uint64
	assignmentCounter uint64
)

var referenceTime = time.Date(2024, time.June, 1, 8, 0, 0, 0, time.UTC)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
func ReferenceTime() time.Time {
	return referenceTime
}

// ReferenceDate returns a day inside the canonical fixture month.
func ReferenceDate(day int) time.Time {
	return time.Date(2024, time.June, day, 0, 0, 0, 0, time.UTC)
}

// IntRef returns a pointer to the given int. Fixed slot pattern fields are
// pointers because nil means match-any.
func IntRef(v int) *int {
	return &v
}

// StrRef returns a pointer to the given string.
func StrRef(v string) *string {
	return &v
}

// ---------------------------- Parish fixtures ----------------------------

// ParishOption configures a generated parish fixture.
type ParishOption func(*persistence.Parish)

// NewParishFixture returns a deterministic parish record with optional
// overrides.
func NewParishFixture(opts ...ParishOption) persistence.Parish {
	idx := atomic.AddUint64(&parishCounter, 1)
	created := referenceTime.Add(time.Duration(idx) * time.Minute)
	fixture := persistence.Parish{
		ID:        fmt.Sprintf("parish-%03d", idx),
		Name:      fmt.Sprintf("Paróquia %03d", idx),
		CreatedAt: created,
		UpdatedAt: created,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithParishID overrides the generated parish ID.
func WithParishID(id string) ParishOption {
	return func(p *persistence.Parish) {
		p.ID = id
	}
}

// WithParishName overrides the generated parish name.
func WithParishName(name string) ParishOption {
	return func(p *persistence.Parish) {
		p.Name = name
	}
}

// --------------------------- Minister fixtures ---------------------------

// MinisterOption configures a generated minister fixture.
type MinisterOption func(*persistence.Minister)

// NewMinisterFixture returns a deterministic minister record with optional
// overrides.
func NewMinisterFixture(parishID string, opts ...MinisterOption) persistence.Minister {
	idx := atomic.AddUint64(&ministerCounter, 1)
	created := referenceTime.Add(time.Duration(idx) * time.Minute)
	fixture := persistence.Minister{
		ID:        fmt.Sprintf("minister-%03d", idx),
		ParishID:  parishID,
		Name:      fmt.Sprintf("Ministro %03d", idx),
		CreatedAt: created,
		UpdatedAt: created,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithMinisterID overrides the generated minister ID.
func WithMinisterID(id string) MinisterOption {
	return func(m *persistence.Minister) {
		m.ID = id
	}
}

// WithMinisterName overrides the generated minister name.
func WithMinisterName(name string) MinisterOption {
	return func(m *persistence.Minister) {
		m.Name = name
	}
}

// WithMinisterContact sets the optional contact fields.
func WithMinisterContact(phone, email string) MinisterOption {
	return func(m *persistence.Minister) {
		m.Phone = &phone
		m.Email = &email
	}
}

// WithMinisterYearsServed sets the seniority counter.
func WithMinisterYearsServed(years int) MinisterOption {
	return func(m *persistence.Minister) {
		m.YearsServed = years
	}
}

// ----------------------------- Mass fixtures -----------------------------

// MassOption configures a generated mass fixture.
type MassOption func(*persistence.Mass)

// NewMassFixture returns a deterministic mass record on the first Sunday of
// the fixture month, with optional overrides.
func NewMassFixture(parishID string, opts ...MassOption) persistence.Mass {
	idx := atomic.AddUint64(&massCounter, 1)
	created := referenceTime.Add(time.Duration(idx) * time.Minute)
	fixture := persistence.Mass{
		ID:            fmt.Sprintf("mass-%03d", idx),
		ParishID:      parishID,
		Date:          ReferenceDate(2),
		TimeLabel:     "08:00",
		Community:     "Matriz",
		RequiredCount: 2,
		CreatedAt:     created,
		UpdatedAt:     created,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithMassID overrides the generated mass ID.
func WithMassID(id string) MassOption {
	return func(m *persistence.Mass) {
		m.ID = id
	}
}

// WithMassDate sets the celebration date.
func WithMassDate(date time.Time) MassOption {
	return func(m *persistence.Mass) {
		m.Date = date
	}
}

// WithMassTimeLabel sets the celebration time label.
func WithMassTimeLabel(label string) MassOption {
	return func(m *persistence.Mass) {
		m.TimeLabel = label
	}
}

// WithMassCommunity sets the celebration community.
func WithMassCommunity(community string) MassOption {
	return func(m *persistence.Mass) {
		m.Community = community
	}
}

// WithMassRequiredCount sets the roster size target.
func WithMassRequiredCount(count int) MassOption {
	return func(m *persistence.Mass) {
		m.RequiredCount = count
	}
}

// -------------------------- Fixed slot fixtures --------------------------

// FixedSlotOption configures a generated fixed slot fixture.
type FixedSlotOption func(*persistence.FixedSlot)

// NewFixedSlotFixture returns a deterministic all-wildcard rule for the given
// minister, with optional overrides.
func NewFixedSlotFixture(parishID, ministerID string, opts ...FixedSlotOption) persistence.FixedSlot {
	idx := atomic.AddUint64(&slotCounter, 1)
	created := referenceTime.Add(time.Duration(idx) * time.Minute)
	fixture := persistence.FixedSlot{
		ID:         fmt.Sprintf("slot-%03d", idx),
		ParishID:   parishID,
		MinisterID: ministerID,
		CreatedAt:  created,
		UpdatedAt:  created,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithSlotID overrides the generated fixed slot ID.
func WithSlotID(id string) FixedSlotOption {
	return func(s *persistence.FixedSlot) {
		s.ID = id
	}
}

// WithSlotWeek pins the rule to a week of the month.
func WithSlotWeek(week int) FixedSlotOption {
	return func(s *persistence.FixedSlot) {
		s.Week = &week
	}
}

// WithSlotWeekday pins the rule to a weekday, 0 Monday through 6 Sunday.
func WithSlotWeekday(weekday int) FixedSlotOption {
	return func(s *persistence.FixedSlot) {
		s.Weekday = &weekday
	}
}

// WithSlotTimeLabel pins the rule to a time label.
func WithSlotTimeLabel(label string) FixedSlotOption {
	return func(s *persistence.FixedSlot) {
		s.TimeLabel = &label
	}
}

// WithSlotCommunity pins the rule to a community.
func WithSlotCommunity(community string) FixedSlotOption {
	return func(s *persistence.FixedSlot) {
		s.Community = &community
	}
}

// ------------------------ Unavailability fixtures ------------------------

// UnavailabilityOption configures a generated absence fixture.
type UnavailabilityOption func(*persistence.Unavailability)

// NewUnavailabilityFixture returns a deterministic whole-day absence for the
// given minister, with optional overrides.
func NewUnavailabilityFixture(parishID, ministerID string, opts ...UnavailabilityOption) persistence.Unavailability {
	idx := atomic.AddUint64(&absenceCounter, 1)
	fixture := persistence.Unavailability{
		ID:         fmt.Sprintf("absence-%03d", idx),
		ParishID:   parishID,
		MinisterID: ministerID,
		Date:       ReferenceDate(2),
		CreatedAt:  referenceTime.Add(time.Duration(idx) * time.Minute),
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithAbsenceID overrides the generated absence ID.
func WithAbsenceID(id string) UnavailabilityOption {
	return func(u *persistence.Unavailability) {
		u.ID = id
	}
}

// WithAbsenceDate sets the blocked date.
func WithAbsenceDate(date time.Time) UnavailabilityOption {
	return func(u *persistence.Unavailability) {
		u.Date = date
	}
}

// WithAbsenceTimeLabel narrows the absence to one time label.
func WithAbsenceTimeLabel(label string) UnavailabilityOption {
	return func(u *persistence.Unavailability) {
		u.TimeLabel = &label
	}
}

// -------------------------- Assignment fixtures --------------------------

// AssignmentOption configures a generated assignment fixture.
type AssignmentOption func(*persistence.Assignment)

// NewAssignmentFixture returns a deterministic unconfirmed assignment linking
// the given mass and minister, with optional overrides.
func NewAssignmentFixture(parishID, massID, ministerID string, opts ...AssignmentOption) persistence.Assignment {
	idx := atomic.AddUint64(&assignmentCounter, 1)
	created := referenceTime.Add(time.Duration(idx) * time.Minute)
	fixture := persistence.Assignment{
		ID:           fmt.Sprintf("assignment-%03d", idx),
		ParishID:     parishID,
		MassID:       massID,
		MinisterID:   ministerID,
		Confirmation: persistence.ConfirmationUnset,
		Token:        fmt.Sprintf("token-%03d", idx),
		CreatedAt:    created,
		UpdatedAt:    created,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithAssignmentID overrides the generated assignment ID.
func WithAssignmentID(id string) AssignmentOption {
	return func(a *persistence.Assignment) {
		a.ID = id
	}
}

// WithAssignmentConfirmation sets the confirmation state.
func WithAssignmentConfirmation(state string) AssignmentOption {
	return func(a *persistence.Assignment) {
		a.Confirmation = state
	}
}

// WithAssignmentToken overrides the generated confirmation token.
func WithAssignmentToken(token string) AssignmentOption {
	return func(a *persistence.Assignment) {
		a.Token = token
	}
}

// WithAssignmentAttended sets the attendance flag.
func WithAssignmentAttended(attended bool) AssignmentOption {
	return func(a *persistence.Assignment) {
		a.Attended = attended
	}
}
