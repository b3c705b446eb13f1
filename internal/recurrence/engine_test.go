package recurrence

import (
	"reflect"
	"testing"
	"time"

	"github.com/marcelopachecouba/sgme/internal/roster"
)

func ptrInt(v int) *int { return &v }

func ptrString(v string) *string { return &v }

func TestPlanMonth_WeeklyRuleHitsEverySunday(t *testing.T) {
	t.Parallel()

	engine := NewEngine("Matriz")
	rules := []roster.Slot{
		{ID: "r1", Weekday: ptrInt(6), TimeLabel: ptrString("08:00"), MinisterID: "alice"},
	}

	planned := engine.PlanMonth(2024, time.June, rules)

	// June 2024 Sundays: 2, 9, 16, 23, 30.
	if len(planned) != 5 {
		t.Fatalf("planned %d masses, want 5", len(planned))
	}
	wantDays := []int{2, 9, 16, 23, 30}
	for i, mass := range planned {
		if mass.Date.Day() != wantDays[i] {
			t.Fatalf("mass %d on day %d, want %d", i, mass.Date.Day(), wantDays[i])
		}
		if mass.TimeLabel != "08:00" {
			t.Fatalf("mass %d time %q, want 08:00", i, mass.TimeLabel)
		}
		if mass.Community != "Matriz" {
			t.Fatalf("wildcard community must resolve to the default, got %q", mass.Community)
		}
		if mass.Required != 1 {
			t.Fatalf("mass %d required %d, want 1", i, mass.Required)
		}
		if !reflect.DeepEqual(mass.MinisterIDs, []string{"alice"}) {
			t.Fatalf("mass %d ministers %v, want [alice]", i, mass.MinisterIDs)
		}
	}
}

func TestPlanMonth_MonthlyRuleHitsOneWeek(t *testing.T) {
	t.Parallel()

	engine := NewEngine("Matriz")
	rules := []roster.Slot{
		{ID: "r1", Week: ptrInt(1), Weekday: ptrInt(6), TimeLabel: ptrString("19:00"), MinisterID: "bob"},
	}

	planned := engine.PlanMonth(2024, time.June, rules)

	if len(planned) != 1 {
		t.Fatalf("planned %d masses, want 1", len(planned))
	}
	if planned[0].Date.Day() != 2 {
		t.Fatalf("first Sunday of June 2024 is the 2nd, got day %d", planned[0].Date.Day())
	}
}

func TestPlanMonth_GroupsByTimeAndCommunity(t *testing.T) {
	t.Parallel()

	engine := NewEngine("Matriz")
	rules := []roster.Slot{
		{ID: "r1", Week: ptrInt(1), Weekday: ptrInt(6), TimeLabel: ptrString("08:00"), MinisterID: "alice"},
		{ID: "r2", Week: ptrInt(1), Weekday: ptrInt(6), TimeLabel: ptrString("08:00"), Community: ptrString("Matriz"), MinisterID: "bob"},
		{ID: "r3", Week: ptrInt(1), Weekday: ptrInt(6), TimeLabel: ptrString("08:00"), Community: ptrString("Capela"), MinisterID: "carol"},
		{ID: "r4", Week: ptrInt(1), Weekday: ptrInt(6), TimeLabel: ptrString("19:00"), MinisterID: "dave"},
	}

	planned := engine.PlanMonth(2024, time.June, rules)

	if len(planned) != 3 {
		t.Fatalf("planned %d masses, want 3", len(planned))
	}

	// Deterministic ordering: time label then community.
	first := planned[0]
	if first.TimeLabel != "08:00" || first.Community != "Capela" {
		t.Fatalf("planned[0] = %q/%q, want 08:00/Capela", first.TimeLabel, first.Community)
	}
	if !reflect.DeepEqual(first.MinisterIDs, []string{"carol"}) {
		t.Fatalf("planned[0] ministers %v, want [carol]", first.MinisterIDs)
	}

	second := planned[1]
	if second.TimeLabel != "08:00" || second.Community != "Matriz" {
		t.Fatalf("planned[1] = %q/%q, want 08:00/Matriz", second.TimeLabel, second.Community)
	}
	// Wildcard-community rule shares the default community's bucket.
	if second.Required != 2 || !reflect.DeepEqual(second.MinisterIDs, []string{"alice", "bob"}) {
		t.Fatalf("planned[1] required %d ministers %v, want 2 [alice bob]", second.Required, second.MinisterIDs)
	}

	third := planned[2]
	if third.TimeLabel != "19:00" || !reflect.DeepEqual(third.MinisterIDs, []string{"dave"}) {
		t.Fatalf("planned[2] = %q %v, want 19:00 [dave]", third.TimeLabel, third.MinisterIDs)
	}
}

func TestPlanMonth_NoMatchingRules(t *testing.T) {
	t.Parallel()

	engine := NewEngine("Matriz")
	rules := []roster.Slot{
		{ID: "r1", Week: ptrInt(5), Weekday: ptrInt(0), TimeLabel: ptrString("08:00"), MinisterID: "alice"},
	}

	// June 2024 has no fifth Monday.
	if planned := engine.PlanMonth(2024, time.June, rules); len(planned) != 0 {
		t.Fatalf("planned %d masses, want 0", len(planned))
	}
}
