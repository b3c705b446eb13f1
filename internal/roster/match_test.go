package roster

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptrInt(v int) *int { return &v }

func ptrString(v string) *string { return &v }

func TestDayOfWeek_MondayBasedConvention(t *testing.T) {
	t.Parallel()

	// 2024-06-03 is a Monday; the convention is 0=Monday .. 6=Sunday.
	cases := []struct {
		day  int
		want int
	}{
		{3, 0}, // Monday
		{4, 1}, // Tuesday
		{5, 2}, // Wednesday
		{6, 3}, // Thursday
		{7, 4}, // Friday
		{8, 5}, // Saturday
		{9, 6}, // Sunday
		{2, 6}, // previous Sunday
	}

	for _, tc := range cases {
		if got := DayOfWeek(date(2024, time.June, tc.day)); got != tc.want {
			t.Fatalf("DayOfWeek(2024-06-%02d) = %d, want %d", tc.day, got, tc.want)
		}
	}
}

func TestWeekOfMonth(t *testing.T) {
	t.Parallel()

	cases := []struct {
		day  int
		want int
	}{
		{1, 1},
		{7, 1},
		{8, 2},
		{14, 2},
		{15, 3},
		{28, 4},
		{29, 5},
		{31, 5},
	}

	for _, tc := range cases {
		if got := WeekOfMonth(date(2024, time.May, tc.day)); got != tc.want {
			t.Fatalf("WeekOfMonth(day %d) = %d, want %d", tc.day, got, tc.want)
		}
	}
}

func TestSlotMatches_WildcardFields(t *testing.T) {
	t.Parallel()

	// 2024-06-02 is the first Sunday of June: week 1, weekday 6.
	occasion := Occasion{Date: date(2024, time.June, 2), TimeLabel: "08:00", Community: "Matriz"}

	cases := []struct {
		name string
		slot Slot
		want bool
	}{
		{
			name: "all wildcards",
			slot: Slot{MinisterID: "m1"},
			want: true,
		},
		{
			name: "weekday and time match, rest wildcard",
			slot: Slot{Weekday: ptrInt(6), TimeLabel: ptrString("08:00"), MinisterID: "m1"},
			want: true,
		},
		{
			name: "fully specified match",
			slot: Slot{Week: ptrInt(1), Weekday: ptrInt(6), TimeLabel: ptrString("08:00"), Community: ptrString("Matriz"), MinisterID: "m2"},
			want: true,
		},
		{
			name: "wrong week",
			slot: Slot{Week: ptrInt(2), Weekday: ptrInt(6), MinisterID: "m1"},
			want: false,
		},
		{
			name: "wrong weekday",
			slot: Slot{Weekday: ptrInt(0), MinisterID: "m1"},
			want: false,
		},
		{
			name: "wrong time",
			slot: Slot{TimeLabel: ptrString("19:00"), MinisterID: "m1"},
			want: false,
		},
		{
			name: "wrong community",
			slot: Slot{Community: ptrString("Capela"), MinisterID: "m1"},
			want: false,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := tc.slot.Matches(occasion); got != tc.want {
				t.Fatalf("Matches = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestAbsenceBlocks(t *testing.T) {
	t.Parallel()

	day := date(2024, time.June, 2)

	wholeDay := Absence{MinisterID: "m1", Date: day}
	if !wholeDay.Blocks(day, "08:00") {
		t.Fatalf("date-level absence must block every time label")
	}
	if !wholeDay.Blocks(day, "19:00") {
		t.Fatalf("date-level absence must block every time label")
	}
	if wholeDay.Blocks(date(2024, time.June, 3), "08:00") {
		t.Fatalf("absence must not block other dates")
	}

	morning := Absence{MinisterID: "m1", Date: day, TimeLabel: ptrString("08:00")}
	if !morning.Blocks(day, "08:00") {
		t.Fatalf("time-scoped absence must block its own time label")
	}
	if morning.Blocks(day, "19:00") {
		t.Fatalf("time-scoped absence must not block other time labels")
	}
}

func TestSameDate_IgnoresClockTime(t *testing.T) {
	t.Parallel()

	a := time.Date(2024, time.June, 2, 0, 0, 0, 0, time.UTC)
	b := time.Date(2024, time.June, 2, 23, 30, 0, 0, time.UTC)
	if !SameDate(a, b) {
		t.Fatalf("expected same calendar day")
	}
	if SameDate(a, b.AddDate(0, 0, 1)) {
		t.Fatalf("expected different calendar days")
	}
}
