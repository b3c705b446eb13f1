package roster

import "time"

// DayOfWeek converts a calendar date to the fixed weekday convention used
// throughout the roster domain: 0 = Monday through 6 = Sunday. Go's
// time.Weekday starts the week on Sunday, so the value is rotated here and
// nowhere else.
func DayOfWeek(date time.Time) int {
	return (int(date.Weekday()) + 6) % 7
}

// WeekOfMonth returns the 1-based ordinal of the date within its month: days
// 1-7 are week 1, days 8-14 are week 2, and so on up to week 5.
func WeekOfMonth(date time.Time) int {
	return ((date.Day() - 1) / 7) + 1
}

// Slot is a fixed assignment rule. Every field except MinisterID is optional;
// a nil field is a wildcard that matches any value.
type Slot struct {
	ID         string
	Week       *int
	Weekday    *int
	TimeLabel  *string
	Community  *string
	MinisterID string
}

// Occasion identifies one concrete slot-filling opportunity: a mass on a
// specific date.
type Occasion struct {
	Date      time.Time
	TimeLabel string
	Community string
}

// Matches reports whether the slot applies to the occasion. The same
// field-level wildcard matching is used by the month expander's day
// pre-filter and the auto-assignment fixed pass, so the two can never drift.
func (s Slot) Matches(o Occasion) bool {
	return s.MatchesDay(WeekOfMonth(o.Date), DayOfWeek(o.Date)) &&
		matchString(s.TimeLabel, o.TimeLabel) &&
		matchString(s.Community, o.Community)
}

// MatchesDay applies only the week-of-month and weekday fields. The month
// expander uses it to pre-filter rules for a calendar day before grouping by
// time and community.
func (s Slot) MatchesDay(week, weekday int) bool {
	return matchInt(s.Week, week) && matchInt(s.Weekday, weekday)
}

func matchInt(field *int, value int) bool {
	return field == nil || *field == value
}

func matchString(field *string, value string) bool {
	return field == nil || *field == value
}

// Absence is an unavailability record. A nil TimeLabel blocks the minister
// for the whole date; a concrete label blocks only that time.
type Absence struct {
	MinisterID string
	Date       time.Time
	TimeLabel  *string
}

// Blocks reports whether the absence rules the minister out of serving at
// the given date and time label.
func (a Absence) Blocks(date time.Time, timeLabel string) bool {
	if !SameDate(a.Date, date) {
		return false
	}
	return a.TimeLabel == nil || *a.TimeLabel == timeLabel
}

// SameDate compares two instants by calendar day, ignoring clock time and
// location offsets within the stored day.
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
