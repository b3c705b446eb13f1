package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/marcelopachecouba/sgme/internal/persistence"
	"github.com/marcelopachecouba/sgme/internal/testfixtures"
)

func TestConnectionPool_ForeignKeysSurviveConnectionChurn(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	seedParish(t, h, "parish-1", "São José")
	seedMinister(t, h, "parish-1", "minister-1", "Alice")
	seedMass(t, h, "parish-1", "mass-1", 2, "08:00")
	seedAssignment(t, h, "parish-1", "a-1", "mass-1", "minister-1", "token-1")

	// Retire every pooled connection so the delete below runs on a fresh
	// one. Enforcement must come from the DSN pragma, not from whichever
	// connection happened to run a one-shot PRAGMA.
	h.Pool.DB().SetMaxIdleConns(0)
	if err := h.Pool.Ping(ctx); err != nil {
		t.Fatalf("Ping failed: %v", err)
	}
	h.Pool.DB().SetMaxIdleConns(2)

	var enabled int
	if err := h.Pool.DB().QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&enabled); err != nil {
		t.Fatalf("reading foreign_keys pragma failed: %v", err)
	}
	if enabled != 1 {
		t.Fatalf("foreign_keys = %d on a fresh connection, want 1", enabled)
	}

	if err := h.Masses.DeleteMass(ctx, "parish-1", "mass-1"); err != nil {
		t.Fatalf("DeleteMass failed: %v", err)
	}

	roster, err := h.Assignments.ListAssignmentsForMass(ctx, "parish-1", "mass-1")
	if err != nil {
		t.Fatalf("ListAssignmentsForMass failed: %v", err)
	}
	if len(roster) != 0 {
		t.Fatalf("assignments survived mass delete: %+v", roster)
	}
}

func TestConnectionPool_MinisterDeleteCascadesAcrossTables(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	seedParish(t, h, "parish-1", "São José")
	seedMinister(t, h, "parish-1", "minister-1", "Alice")
	seedMass(t, h, "parish-1", "mass-1", 2, "08:00")
	seedAssignment(t, h, "parish-1", "a-1", "mass-1", "minister-1", "token-1")

	slot := testfixtures.NewFixedSlotFixture("parish-1", "minister-1",
		testfixtures.WithSlotID("slot-1"),
	)
	if err := h.FixedSlots.CreateFixedSlot(ctx, slot); err != nil {
		t.Fatalf("CreateFixedSlot failed: %v", err)
	}
	seedAbsence(t, h, "parish-1", "absence-1", "minister-1", 2, nil)

	if err := h.Ministers.DeleteMinister(ctx, "parish-1", "minister-1"); err != nil {
		t.Fatalf("DeleteMinister failed: %v", err)
	}

	if _, err := h.FixedSlots.GetFixedSlot(ctx, "parish-1", "slot-1"); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("Expected slot to cascade away, got %v", err)
	}
	if _, err := h.Unavailability.GetUnavailability(ctx, "parish-1", "absence-1"); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("Expected absence to cascade away, got %v", err)
	}
	if _, err := h.Assignments.GetAssignment(ctx, "parish-1", "a-1"); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("Expected assignment to cascade away, got %v", err)
	}
}
