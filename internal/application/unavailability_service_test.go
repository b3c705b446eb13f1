package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/marcelopachecouba/sgme/internal/persistence"
	"github.com/marcelopachecouba/sgme/internal/testfixtures"
)

type unavailabilityRepoStub struct {
	records []Unavailability
}

func (s *unavailabilityRepoStub) CreateUnavailability(ctx context.Context, record Unavailability) error {
	s.records = append(s.records, record)
	return nil
}

func (s *unavailabilityRepoStub) GetUnavailability(ctx context.Context, parishID, id string) (Unavailability, error) {
	for _, record := range s.records {
		if record.ParishID == parishID && record.ID == id {
			return record, nil
		}
	}
	return Unavailability{}, persistence.ErrNotFound
}

func (s *unavailabilityRepoStub) ListUnavailability(ctx context.Context, parishID string, window UnavailabilityWindow) ([]Unavailability, error) {
	var records []Unavailability
	for _, record := range s.records {
		if record.ParishID != parishID {
			continue
		}
		if window.MinisterID != "" && record.MinisterID != window.MinisterID {
			continue
		}
		if window.Date != nil && !record.Date.Equal(*window.Date) {
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

func (s *unavailabilityRepoStub) DeleteUnavailability(ctx context.Context, parishID, id string) error {
	for i, record := range s.records {
		if record.ParishID == parishID && record.ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return nil
		}
	}
	return persistence.ErrNotFound
}

func newTestUnavailabilityService(repo *unavailabilityRepoStub, ministers *ministerRepoStub) *UnavailabilityService {
	clock := testfixtures.NewClock(time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC))
	return NewUnavailabilityService(repo, ministers,
		testfixtures.NewIDGenerator("absence").NextFunc(),
		clock.NowFunc(),
	)
}

func TestCreateUnavailability_RequiresMinisterAndDate(t *testing.T) {
	t.Parallel()

	service := newTestUnavailabilityService(&unavailabilityRepoStub{}, &ministerRepoStub{})

	_, err := service.CreateUnavailability(context.Background(), "p1", UnavailabilityInput{})
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, ok := vErr.FieldErrors["minister_id"]; !ok {
		t.Fatalf("expected minister_id field error, got %v", vErr.FieldErrors)
	}
	if _, ok := vErr.FieldErrors["date"]; !ok {
		t.Fatalf("expected date field error, got %v", vErr.FieldErrors)
	}
}

func TestCreateUnavailability_RejectsUnknownMinister(t *testing.T) {
	t.Parallel()

	service := newTestUnavailabilityService(&unavailabilityRepoStub{}, &ministerRepoStub{})

	_, err := service.CreateUnavailability(context.Background(), "p1", UnavailabilityInput{
		MinisterID: "ghost",
		Date:       time.Date(2024, time.June, 2, 0, 0, 0, 0, time.UTC),
	})
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if vErr.FieldErrors["minister_id"] != "minister does not exist" {
		t.Fatalf("unexpected field errors: %v", vErr.FieldErrors)
	}
}

func TestCreateUnavailability_WholeDayHasNilTimeLabel(t *testing.T) {
	t.Parallel()

	ministers := &ministerRepoStub{ministers: []Minister{{ID: "m1", ParishID: "p1", Name: "Alice"}}}
	repo := &unavailabilityRepoStub{}
	service := newTestUnavailabilityService(repo, ministers)

	record, err := service.CreateUnavailability(context.Background(), "p1", UnavailabilityInput{
		MinisterID: "m1",
		Date:       time.Date(2024, time.June, 2, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("CreateUnavailability failed: %v", err)
	}
	if record.TimeLabel != nil {
		t.Fatalf("expected whole day absence, got label %v", *record.TimeLabel)
	}
	if record.ID != "absence-1" || record.ParishID != "p1" {
		t.Fatalf("identity not stamped: %+v", record)
	}
}

func TestListUnavailability_FiltersByMinisterAndDate(t *testing.T) {
	t.Parallel()

	day2 := time.Date(2024, time.June, 2, 0, 0, 0, 0, time.UTC)
	day9 := time.Date(2024, time.June, 9, 0, 0, 0, 0, time.UTC)
	repo := &unavailabilityRepoStub{records: []Unavailability{
		{ID: "u1", ParishID: "p1", MinisterID: "m1", Date: day2},
		{ID: "u2", ParishID: "p1", MinisterID: "m1", Date: day9},
		{ID: "u3", ParishID: "p1", MinisterID: "m2", Date: day2},
	}}
	service := newTestUnavailabilityService(repo, &ministerRepoStub{})

	records, err := service.ListUnavailability(context.Background(), "p1", UnavailabilityWindow{MinisterID: "m1", Date: &day2})
	if err != nil {
		t.Fatalf("ListUnavailability failed: %v", err)
	}
	if len(records) != 1 || records[0].ID != "u1" {
		t.Fatalf("unexpected records: %+v", records)
	}
}

func TestDeleteUnavailability_CrossParishIsNotFound(t *testing.T) {
	t.Parallel()

	repo := &unavailabilityRepoStub{records: []Unavailability{{
		ID: "u1", ParishID: "p1", MinisterID: "m1",
		Date: time.Date(2024, time.June, 2, 0, 0, 0, 0, time.UTC),
	}}}
	service := newTestUnavailabilityService(repo, &ministerRepoStub{})

	if err := service.DeleteUnavailability(context.Background(), "p2", "u1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
