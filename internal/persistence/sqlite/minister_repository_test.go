package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/marcelopachecouba/sgme/internal/persistence"
)

func TestMinisterRepository_ListOrderedByName(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	seedParish(t, h, "parish-1", "São José")
	seedMinister(t, h, "parish-1", "minister-1", "Zoe")
	seedMinister(t, h, "parish-1", "minister-2", "Alice")
	seedMinister(t, h, "parish-1", "minister-3", "Bob")

	ministers, err := h.Ministers.ListMinisters(ctx, "parish-1")
	if err != nil {
		t.Fatalf("ListMinisters failed: %v", err)
	}
	if len(ministers) != 3 {
		t.Fatalf("Expected 3 ministers, got %d", len(ministers))
	}
	if ministers[0].Name != "Alice" || ministers[1].Name != "Bob" || ministers[2].Name != "Zoe" {
		t.Fatalf("Unexpected order: %s, %s, %s", ministers[0].Name, ministers[1].Name, ministers[2].Name)
	}
}

func TestMinisterRepository_DuplicateNameWithinParish(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	seedParish(t, h, "parish-1", "São José")
	seedParish(t, h, "parish-2", "Santa Rita")
	seedMinister(t, h, "parish-1", "minister-1", "Alice")

	err := h.Ministers.CreateMinister(ctx, persistence.Minister{
		ID: "minister-2", ParishID: "parish-1", Name: "Alice",
	})
	if !errors.Is(err, persistence.ErrDuplicate) {
		t.Fatalf("Expected ErrDuplicate within the parish, got %v", err)
	}

	// Same name in another parish is fine.
	err = h.Ministers.CreateMinister(ctx, persistence.Minister{
		ID: "minister-3", ParishID: "parish-2", Name: "Alice",
	})
	if err != nil {
		t.Fatalf("Expected cross parish duplicate to succeed, got %v", err)
	}
}

func TestMinisterRepository_OptionalFieldsRoundTrip(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	seedParish(t, h, "parish-1", "São José")

	phone := "+55 71 99999-0000"
	birth := time.Date(1975, time.March, 19, 0, 0, 0, 0, time.UTC)
	now := time.Date(2024, time.June, 1, 8, 0, 0, 0, time.UTC)
	minister := persistence.Minister{
		ID:          "minister-1",
		ParishID:    "parish-1",
		Name:        "Alice",
		Phone:       &phone,
		BirthDate:   &birth,
		YearsServed: 12,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := h.Ministers.CreateMinister(ctx, minister); err != nil {
		t.Fatalf("CreateMinister failed: %v", err)
	}

	retrieved, err := h.Ministers.GetMinister(ctx, "parish-1", "minister-1")
	if err != nil {
		t.Fatalf("GetMinister failed: %v", err)
	}
	if retrieved.Phone == nil || *retrieved.Phone != phone {
		t.Errorf("Expected phone %q, got %v", phone, retrieved.Phone)
	}
	if retrieved.Email != nil {
		t.Errorf("Expected nil email, got %v", *retrieved.Email)
	}
	if retrieved.BirthDate == nil || !retrieved.BirthDate.Equal(birth) {
		t.Errorf("Expected birth date %v, got %v", birth, retrieved.BirthDate)
	}
	if retrieved.YearsServed != 12 {
		t.Errorf("Expected 12 years served, got %d", retrieved.YearsServed)
	}
}

func TestMinisterRepository_GetIsParishScoped(t *testing.T) {
	h := newHarness(t)

	seedParish(t, h, "parish-1", "São José")
	seedParish(t, h, "parish-2", "Santa Rita")
	seedMinister(t, h, "parish-1", "minister-1", "Alice")

	_, err := h.Ministers.GetMinister(context.Background(), "parish-2", "minister-1")
	if !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound across parishes, got %v", err)
	}
}
