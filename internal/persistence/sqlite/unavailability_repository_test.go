package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/marcelopachecouba/sgme/internal/persistence"
	"github.com/marcelopachecouba/sgme/internal/testfixtures"
)

func seedAbsence(t *testing.T, h *testfixtures.SQLiteHarness, parishID, id, ministerID string, day int, timeLabel *string) {
	t.Helper()

	opts := []testfixtures.UnavailabilityOption{
		testfixtures.WithAbsenceID(id),
		testfixtures.WithAbsenceDate(june(day)),
	}
	if timeLabel != nil {
		opts = append(opts, testfixtures.WithAbsenceTimeLabel(*timeLabel))
	}
	record := testfixtures.NewUnavailabilityFixture(parishID, ministerID, opts...)
	if err := h.Unavailability.CreateUnavailability(context.Background(), record); err != nil {
		t.Fatalf("seed absence %s: %v", id, err)
	}
}

func TestUnavailabilityRepository_NilTimeLabelRoundTrips(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	seedParish(t, h, "parish-1", "São José")
	seedMinister(t, h, "parish-1", "minister-1", "Alice")
	seedAbsence(t, h, "parish-1", "absence-1", "minister-1", 2, nil)

	retrieved, err := h.Unavailability.GetUnavailability(ctx, "parish-1", "absence-1")
	if err != nil {
		t.Fatalf("GetUnavailability failed: %v", err)
	}
	if retrieved.TimeLabel != nil {
		t.Errorf("Expected whole day absence, got label %v", *retrieved.TimeLabel)
	}
	if !retrieved.Date.Equal(june(2)) {
		t.Errorf("Expected date %v, got %v", june(2), retrieved.Date)
	}
}

func TestUnavailabilityRepository_ListFilters(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	seedParish(t, h, "parish-1", "São José")
	seedMinister(t, h, "parish-1", "minister-1", "Alice")
	seedMinister(t, h, "parish-1", "minister-2", "Bob")

	label := "08:00"
	seedAbsence(t, h, "parish-1", "absence-1", "minister-1", 2, nil)
	seedAbsence(t, h, "parish-1", "absence-2", "minister-1", 9, &label)
	seedAbsence(t, h, "parish-1", "absence-3", "minister-2", 2, nil)

	byMinister, err := h.Unavailability.ListUnavailability(ctx, "parish-1", persistence.UnavailabilityFilter{MinisterID: "minister-1"})
	if err != nil {
		t.Fatalf("ListUnavailability failed: %v", err)
	}
	if len(byMinister) != 2 {
		t.Fatalf("Expected 2 absences for minister-1, got %d", len(byMinister))
	}

	date := june(2)
	byDate, err := h.Unavailability.ListUnavailability(ctx, "parish-1", persistence.UnavailabilityFilter{Date: &date})
	if err != nil {
		t.Fatalf("ListUnavailability failed: %v", err)
	}
	if len(byDate) != 2 {
		t.Fatalf("Expected 2 absences on June 2nd, got %d", len(byDate))
	}
}

func TestUnavailabilityRepository_DeleteMissing(t *testing.T) {
	h := newHarness(t)

	seedParish(t, h, "parish-1", "São José")

	err := h.Unavailability.DeleteUnavailability(context.Background(), "parish-1", "missing")
	if !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}
