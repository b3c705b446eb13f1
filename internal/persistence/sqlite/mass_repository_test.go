package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/marcelopachecouba/sgme/internal/persistence"
)

func TestMassRepository_FindMassByDateAndTime(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	seedParish(t, h, "parish-1", "São José")
	seedMass(t, h, "parish-1", "mass-1", 2, "08:00")
	seedMass(t, h, "parish-1", "mass-2", 2, "19:00")

	found, err := h.Masses.FindMass(ctx, "parish-1", june(2), "08:00")
	if err != nil {
		t.Fatalf("FindMass failed: %v", err)
	}
	if found.ID != "mass-1" {
		t.Errorf("Expected mass-1, got %s", found.ID)
	}

	_, err = h.Masses.FindMass(ctx, "parish-1", june(9), "08:00")
	if !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound for empty day, got %v", err)
	}
}

func TestMassRepository_FindMassIsParishScoped(t *testing.T) {
	h := newHarness(t)

	seedParish(t, h, "parish-1", "São José")
	seedParish(t, h, "parish-2", "Santa Rita")
	seedMass(t, h, "parish-1", "mass-1", 2, "08:00")

	_, err := h.Masses.FindMass(context.Background(), "parish-2", june(2), "08:00")
	if !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound across parishes, got %v", err)
	}
}

func TestMassRepository_ListMassesWindow(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	seedParish(t, h, "parish-1", "São José")
	seedMass(t, h, "parish-1", "mass-1", 2, "08:00")
	seedMass(t, h, "parish-1", "mass-2", 9, "08:00")
	seedMass(t, h, "parish-1", "mass-3", 16, "08:00")

	from := june(5)
	to := june(12)
	masses, err := h.Masses.ListMasses(ctx, "parish-1", persistence.MassFilter{From: &from, To: &to})
	if err != nil {
		t.Fatalf("ListMasses failed: %v", err)
	}
	if len(masses) != 1 || masses[0].ID != "mass-2" {
		t.Fatalf("Expected only mass-2 in window, got %+v", masses)
	}
}

func TestMassRepository_ListMassesOrderedByDateThenTime(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	seedParish(t, h, "parish-1", "São José")
	seedMass(t, h, "parish-1", "mass-evening", 2, "19:00")
	seedMass(t, h, "parish-1", "mass-morning", 2, "08:00")
	seedMass(t, h, "parish-1", "mass-earlier-day", 1, "19:00")

	masses, err := h.Masses.ListMasses(ctx, "parish-1", persistence.MassFilter{})
	if err != nil {
		t.Fatalf("ListMasses failed: %v", err)
	}
	if len(masses) != 3 {
		t.Fatalf("Expected 3 masses, got %d", len(masses))
	}
	if masses[0].ID != "mass-earlier-day" || masses[1].ID != "mass-morning" || masses[2].ID != "mass-evening" {
		t.Fatalf("Unexpected order: %s, %s, %s", masses[0].ID, masses[1].ID, masses[2].ID)
	}
}

func TestMassRepository_NegativeRequiredCountRejected(t *testing.T) {
	h := newHarness(t)

	seedParish(t, h, "parish-1", "São José")

	mass := persistence.Mass{
		ID:            "mass-1",
		ParishID:      "parish-1",
		Date:          june(2),
		TimeLabel:     "08:00",
		Community:     "Matriz",
		RequiredCount: -1,
	}
	err := h.Masses.CreateMass(context.Background(), mass)
	if !errors.Is(err, persistence.ErrConstraintViolation) {
		t.Fatalf("Expected ErrConstraintViolation, got %v", err)
	}
}
