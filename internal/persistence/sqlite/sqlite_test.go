package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/marcelopachecouba/sgme/internal/persistence/sqlite"
	"github.com/marcelopachecouba/sgme/internal/testfixtures"
)

func newHarness(t *testing.T) *testfixtures.SQLiteHarness {
	t.Helper()
	return testfixtures.NewSQLiteHarness(t)
}

func seedParish(t *testing.T, h *testfixtures.SQLiteHarness, id, name string) {
	t.Helper()

	parish := testfixtures.NewParishFixture(
		testfixtures.WithParishID(id),
		testfixtures.WithParishName(name),
	)
	if err := h.Parishes.CreateParish(context.Background(), parish); err != nil {
		t.Fatalf("seed parish %s: %v", id, err)
	}
}

func seedMinister(t *testing.T, h *testfixtures.SQLiteHarness, parishID, id, name string) {
	t.Helper()

	minister := testfixtures.NewMinisterFixture(parishID,
		testfixtures.WithMinisterID(id),
		testfixtures.WithMinisterName(name),
	)
	if err := h.Ministers.CreateMinister(context.Background(), minister); err != nil {
		t.Fatalf("seed minister %s: %v", id, err)
	}
}

func seedMass(t *testing.T, h *testfixtures.SQLiteHarness, parishID, id string, day int, timeLabel string) {
	t.Helper()

	mass := testfixtures.NewMassFixture(parishID,
		testfixtures.WithMassID(id),
		testfixtures.WithMassDate(june(day)),
		testfixtures.WithMassTimeLabel(timeLabel),
	)
	if err := h.Masses.CreateMass(context.Background(), mass); err != nil {
		t.Fatalf("seed mass %s: %v", id, err)
	}
}

func june(day int) time.Time {
	return testfixtures.ReferenceDate(day)
}

func TestMigrate_IsIdempotent(t *testing.T) {
	h := newHarness(t)

	if err := sqlite.Migrate(context.Background(), h.Pool); err != nil {
		t.Fatalf("second Migrate failed: %v", err)
	}
}
