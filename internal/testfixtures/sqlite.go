package testfixtures

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/marcelopachecouba/sgme/internal/persistence"
	"github.com/marcelopachecouba/sgme/internal/persistence/sqlite"
)

// SQLiteHarness provides repository access backed by a temporary SQLite
// database for integration-style persistence tests. Pool exposes the shared
// connection pool for tests that need raw database access.
type SQLiteHarness struct {
	Pool           *sqlite.ConnectionPool
	Parishes       persistence.ParishRepository
	Ministers      persistence.MinisterRepository
	Masses         persistence.MassRepository
	FixedSlots     persistence.FixedSlotRepository
	Unavailability persistence.UnavailabilityRepository
	Assignments    persistence.AssignmentRepository

	cleanup func()
}

// Close releases resources associated with the harness.
func (h *SQLiteHarness) Close() {
	if h != nil && h.cleanup != nil {
		h.cleanup()
		h.cleanup = nil
	}
}

// NewSQLiteHarness constructs a SQLiteHarness over a temporary file that is
// migrated automatically. Cleanup is registered with the provided testing.TB.
func NewSQLiteHarness(tb testing.TB) *SQLiteHarness {
	tb.Helper()

	dir := tb.TempDir()
	path := filepath.Join(dir, "sgme.db")

	pool, err := sqlite.NewConnectionPool(path)
	if err != nil {
		tb.Fatalf("failed to open database: %v", err)
	}

	if err := sqlite.Migrate(context.Background(), pool); err != nil {
		_ = pool.Close()
		tb.Fatalf("failed to migrate database: %v", err)
	}

	harness := &SQLiteHarness{
		Pool:           pool,
		Parishes:       sqlite.NewParishRepository(pool),
		Ministers:      sqlite.NewMinisterRepository(pool),
		Masses:         sqlite.NewMassRepository(pool),
		FixedSlots:     sqlite.NewFixedSlotRepository(pool),
		Unavailability: sqlite.NewUnavailabilityRepository(pool),
		Assignments:    sqlite.NewAssignmentRepository(pool),
		cleanup: func() {
			_ = pool.Close()
		},
	}

	tb.Cleanup(harness.Close)
	return harness
}
