package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/marcelopachecouba/sgme/internal/persistence"
)

func TestParishRepository_CreateAndGet(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	now := time.Date(2024, time.June, 1, 8, 0, 0, 0, time.UTC)
	parish := persistence.Parish{
		ID:        "parish-1",
		Name:      "São José",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := h.Parishes.CreateParish(ctx, parish); err != nil {
		t.Fatalf("CreateParish failed: %v", err)
	}

	retrieved, err := h.Parishes.GetParish(ctx, "parish-1")
	if err != nil {
		t.Fatalf("GetParish failed: %v", err)
	}
	if retrieved.Name != "São José" {
		t.Errorf("Expected name 'São José', got '%s'", retrieved.Name)
	}
	if !retrieved.CreatedAt.Equal(now) {
		t.Errorf("Expected created at %v, got %v", now, retrieved.CreatedAt)
	}
}

func TestParishRepository_DuplicateName(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	seedParish(t, h, "parish-1", "São José")

	now := time.Now().UTC()
	err := h.Parishes.CreateParish(ctx, persistence.Parish{
		ID:        "parish-2",
		Name:      "São José",
		CreatedAt: now,
		UpdatedAt: now,
	})
	if !errors.Is(err, persistence.ErrDuplicate) {
		t.Fatalf("Expected ErrDuplicate, got %v", err)
	}
}

func TestParishRepository_GetMissing(t *testing.T) {
	h := newHarness(t)

	_, err := h.Parishes.GetParish(context.Background(), "missing")
	if !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestParishRepository_DeleteCascades(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	seedParish(t, h, "parish-1", "São José")
	seedMinister(t, h, "parish-1", "minister-1", "Alice")

	if err := h.Parishes.DeleteParish(ctx, "parish-1"); err != nil {
		t.Fatalf("DeleteParish failed: %v", err)
	}

	_, err := h.Ministers.GetMinister(ctx, "parish-1", "minister-1")
	if !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("Expected minister to cascade away, got %v", err)
	}
}
