package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/marcelopachecouba/sgme/internal/persistence"
	"github.com/marcelopachecouba/sgme/internal/testfixtures"
)

func newTestMassService(store *rosterStoreStub) *MassService {
	clock := testfixtures.NewClock(time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC))
	return NewMassService(
		massStoreAdapter{store}, store, store,
		testfixtures.NewIDGenerator("mass").NextFunc(),
		clock.NowFunc(),
	)
}

// massStoreAdapter narrows the roster stub to the mass service's repository
// shape, adding the windowed list the stub does not need elsewhere.
type massStoreAdapter struct {
	store *rosterStoreStub
}

func (a massStoreAdapter) CreateMass(ctx context.Context, mass Mass) error {
	return a.store.CreateMass(ctx, mass)
}

func (a massStoreAdapter) UpdateMass(ctx context.Context, mass Mass) error {
	return a.store.UpdateMass(ctx, mass)
}

func (a massStoreAdapter) GetMass(ctx context.Context, parishID, id string) (Mass, error) {
	return a.store.GetMass(ctx, parishID, id)
}

func (a massStoreAdapter) ListMasses(ctx context.Context, parishID string, window MassWindow) ([]Mass, error) {
	var masses []Mass
	for _, mass := range a.store.masses {
		if mass.ParishID != parishID {
			continue
		}
		if window.From != nil && mass.Date.Before(*window.From) {
			continue
		}
		if window.To != nil && mass.Date.After(*window.To) {
			continue
		}
		masses = append(masses, mass)
	}
	return masses, nil
}

func (a massStoreAdapter) DeleteMass(ctx context.Context, parishID, id string) error {
	return a.store.DeleteMass(ctx, parishID, id)
}

func (s *rosterStoreStub) DeleteMass(ctx context.Context, parishID, id string) error {
	for i, mass := range s.masses {
		if mass.ParishID == parishID && mass.ID == id {
			s.masses = append(s.masses[:i], s.masses[i+1:]...)
			return nil
		}
	}
	return persistence.ErrNotFound
}

func TestCreateMass_Validation(t *testing.T) {
	t.Parallel()

	service := newTestMassService(&rosterStoreStub{})

	_, err := service.CreateMass(context.Background(), "p1", MassInput{RequiredCount: -1})
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	for _, field := range []string{"date", "time_label", "required_count"} {
		if _, ok := vErr.FieldErrors[field]; !ok {
			t.Fatalf("missing field error %q: %v", field, vErr.FieldErrors)
		}
	}
}

func TestMonthCalendar_GroupsByDayWithNames(t *testing.T) {
	t.Parallel()

	store := &rosterStoreStub{
		masses: []Mass{
			{ID: "mass-1", ParishID: "p1", Date: testDate(2), TimeLabel: "08:00", Community: "Matriz", RequiredCount: 1},
			{ID: "mass-2", ParishID: "p1", Date: testDate(2), TimeLabel: "19:00", Community: "Matriz", RequiredCount: 1},
			{ID: "mass-3", ParishID: "p1", Date: testDate(9), TimeLabel: "08:00", Community: "Capela", RequiredCount: 1},
		},
		ministers: []Minister{
			ministerFixture("p1", "alice", "Alice"),
		},
		assignments: []Assignment{
			{ID: "a1", ParishID: "p1", MassID: "mass-1", MinisterID: "alice", Token: "t1"},
		},
	}
	service := newTestMassService(store)

	days, err := service.MonthCalendar(context.Background(), "p1", 2024, time.June)
	if err != nil {
		t.Fatalf("MonthCalendar failed: %v", err)
	}
	if len(days) != 2 {
		t.Fatalf("got %d days, want 2", len(days))
	}
	if len(days[0].Masses) != 2 || len(days[1].Masses) != 1 {
		t.Fatalf("day groupings = %d/%d, want 2/1", len(days[0].Masses), len(days[1].Masses))
	}
	first := days[0].Masses[0]
	if len(first.Ministers) != 1 || first.Ministers[0] != "Alice" {
		t.Fatalf("roster names = %v, want [Alice]", first.Ministers)
	}
}
