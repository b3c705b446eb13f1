package testfixtures

import (
	"testing"
	"time"
)

func TestClockAdvanceAndSet(t *testing.T) {
	start := time.Date(2024, time.June, 1, 8, 0, 0, 0, time.UTC)
	clock := NewClock(start)

	updated := clock.Advance(90 * time.Minute)
	if !updated.Equal(start.Add(90 * time.Minute)) {
		t.Fatalf("advance returned %v", updated)
	}

	clock.Set(start.Add(2 * time.Hour))
	if got := clock.Now(); !got.Equal(start.Add(2 * time.Hour)) {
		t.Fatalf("expected %v, got %v", start.Add(2*time.Hour), got)
	}
}

func TestClockDefaultsToReferenceTime(t *testing.T) {
	clock := NewClock(time.Time{})
	if !clock.Now().Equal(ReferenceTime()) {
		t.Fatalf("expected ReferenceTime, got %v", clock.Now())
	}
}

func TestIDGeneratorSequence(t *testing.T) {
	gen := NewIDGenerator("mass")
	if got := gen.Next(); got != "mass-1" {
		t.Fatalf("expected mass-1, got %s", got)
	}
	if got := gen.Next(); got != "mass-2" {
		t.Fatalf("expected mass-2, got %s", got)
	}

	gen.SetCounter(41)
	if got := gen.NextFunc()(); got != "mass-42" {
		t.Fatalf("expected mass-42, got %s", got)
	}
}

func TestFixturesYieldUniqueIDs(t *testing.T) {
	first := NewMinisterFixture("parish-1")
	second := NewMinisterFixture("parish-1")
	if first.ID == second.ID {
		t.Fatalf("expected distinct IDs, got %s twice", first.ID)
	}
	if first.ParishID != "parish-1" || second.ParishID != "parish-1" {
		t.Fatalf("parish scope not applied: %+v, %+v", first, second)
	}
}

func TestFixtureOptionsOverrideDefaults(t *testing.T) {
	mass := NewMassFixture("parish-1",
		WithMassDate(ReferenceDate(16)),
		WithMassTimeLabel("19:00"),
		WithMassRequiredCount(4),
	)
	if !mass.Date.Equal(ReferenceDate(16)) || mass.TimeLabel != "19:00" || mass.RequiredCount != 4 {
		t.Fatalf("options not applied: %+v", mass)
	}

	slot := NewFixedSlotFixture("parish-1", "minister-1", WithSlotWeek(1), WithSlotWeekday(6))
	if slot.Week == nil || *slot.Week != 1 || slot.Weekday == nil || *slot.Weekday != 6 {
		t.Fatalf("slot pattern not applied: %+v", slot)
	}
	if slot.TimeLabel != nil || slot.Community != nil {
		t.Fatalf("expected wildcard time and community, got %+v", slot)
	}
}
