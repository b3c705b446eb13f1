package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/marcelopachecouba/sgme/internal/persistence"
	"github.com/marcelopachecouba/sgme/internal/testfixtures"
)

func TestFixedSlotRepository_WildcardsRoundTripAsNil(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	seedParish(t, h, "parish-1", "São José")
	seedMinister(t, h, "parish-1", "minister-1", "Alice")

	slot := testfixtures.NewFixedSlotFixture("parish-1", "minister-1",
		testfixtures.WithSlotID("slot-1"),
		testfixtures.WithSlotWeek(1),
		testfixtures.WithSlotTimeLabel("08:00"),
	)
	if err := h.FixedSlots.CreateFixedSlot(ctx, slot); err != nil {
		t.Fatalf("CreateFixedSlot failed: %v", err)
	}

	retrieved, err := h.FixedSlots.GetFixedSlot(ctx, "parish-1", "slot-1")
	if err != nil {
		t.Fatalf("GetFixedSlot failed: %v", err)
	}
	if retrieved.Week == nil || *retrieved.Week != 1 {
		t.Errorf("Expected week 1, got %v", retrieved.Week)
	}
	if retrieved.Weekday != nil {
		t.Errorf("Expected wildcard weekday, got %v", *retrieved.Weekday)
	}
	if retrieved.Community != nil {
		t.Errorf("Expected wildcard community, got %v", *retrieved.Community)
	}
	if retrieved.TimeLabel == nil || *retrieved.TimeLabel != "08:00" {
		t.Errorf("Expected time label 08:00, got %v", retrieved.TimeLabel)
	}
}

func TestFixedSlotRepository_ListInCreationOrder(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	seedParish(t, h, "parish-1", "São José")
	seedMinister(t, h, "parish-1", "minister-1", "Alice")
	seedMinister(t, h, "parish-1", "minister-2", "Bob")

	base := time.Date(2024, time.June, 1, 8, 0, 0, 0, time.UTC)
	first := persistence.FixedSlot{
		ID: "slot-1", ParishID: "parish-1", MinisterID: "minister-2",
		CreatedAt: base, UpdatedAt: base,
	}
	second := persistence.FixedSlot{
		ID: "slot-2", ParishID: "parish-1", MinisterID: "minister-1",
		CreatedAt: base.Add(time.Minute), UpdatedAt: base.Add(time.Minute),
	}
	if err := h.FixedSlots.CreateFixedSlot(ctx, first); err != nil {
		t.Fatalf("CreateFixedSlot failed: %v", err)
	}
	if err := h.FixedSlots.CreateFixedSlot(ctx, second); err != nil {
		t.Fatalf("CreateFixedSlot failed: %v", err)
	}

	slots, err := h.FixedSlots.ListFixedSlots(ctx, "parish-1")
	if err != nil {
		t.Fatalf("ListFixedSlots failed: %v", err)
	}
	if len(slots) != 2 || slots[0].ID != "slot-1" || slots[1].ID != "slot-2" {
		t.Fatalf("Expected creation order, got %+v", slots)
	}
}

func TestFixedSlotRepository_WeekOutOfRangeRejected(t *testing.T) {
	h := newHarness(t)

	seedParish(t, h, "parish-1", "São José")
	seedMinister(t, h, "parish-1", "minister-1", "Alice")

	slot := testfixtures.NewFixedSlotFixture("parish-1", "minister-1",
		testfixtures.WithSlotID("slot-1"),
		testfixtures.WithSlotWeek(6),
	)
	err := h.FixedSlots.CreateFixedSlot(context.Background(), slot)
	if !errors.Is(err, persistence.ErrConstraintViolation) {
		t.Fatalf("Expected ErrConstraintViolation, got %v", err)
	}
}

func TestFixedSlotRepository_DeleteWithMinisterCascade(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	seedParish(t, h, "parish-1", "São José")
	seedMinister(t, h, "parish-1", "minister-1", "Alice")

	slot := testfixtures.NewFixedSlotFixture("parish-1", "minister-1",
		testfixtures.WithSlotID("slot-1"),
	)
	if err := h.FixedSlots.CreateFixedSlot(ctx, slot); err != nil {
		t.Fatalf("CreateFixedSlot failed: %v", err)
	}

	if err := h.Ministers.DeleteMinister(ctx, "parish-1", "minister-1"); err != nil {
		t.Fatalf("DeleteMinister failed: %v", err)
	}

	_, err := h.FixedSlots.GetFixedSlot(ctx, "parish-1", "slot-1")
	if !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("Expected slot to cascade away, got %v", err)
	}
}
