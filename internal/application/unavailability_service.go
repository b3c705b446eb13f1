package application

import (
	"context"
	"errors"
	"time"
)

// UnavailabilityWindow narrows absence listings. Zero values are open.
type UnavailabilityWindow struct {
	MinisterID string
	Date       *time.Time
}

// UnavailabilityRepository captures the persistence interactions needed by
// the unavailability service.
type UnavailabilityRepository interface {
	CreateUnavailability(ctx context.Context, record Unavailability) error
	GetUnavailability(ctx context.Context, parishID, id string) (Unavailability, error)
	ListUnavailability(ctx context.Context, parishID string, window UnavailabilityWindow) ([]Unavailability, error)
	DeleteUnavailability(ctx context.Context, parishID, id string) error
}

// UnavailabilityService manages minister absence records.
type UnavailabilityService struct {
	records     UnavailabilityRepository
	ministers   MinisterChecker
	idGenerator func() string
	now         func() time.Time
}

// NewUnavailabilityService wires dependencies for unavailability operations.
func NewUnavailabilityService(records UnavailabilityRepository, ministers MinisterChecker, idGenerator func() string, now func() time.Time) *UnavailabilityService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &UnavailabilityService{
		records:     records,
		ministers:   ministers,
		idGenerator: idGenerator,
		now:         now,
	}
}

// CreateUnavailability validates and stores a new absence record.
func (s *UnavailabilityService) CreateUnavailability(ctx context.Context, parishID string, input UnavailabilityInput) (Unavailability, error) {
	vErr := &ValidationError{}
	if input.MinisterID == "" {
		vErr.add("minister_id", "minister is required")
	}
	if input.Date.IsZero() {
		vErr.add("date", "date is required")
	}
	if vErr.HasErrors() {
		return Unavailability{}, vErr
	}

	if _, err := s.ministers.GetMinister(ctx, parishID, input.MinisterID); err != nil {
		if mapped := mapRepositoryError(err); errors.Is(mapped, ErrNotFound) {
			inner := &ValidationError{}
			inner.add("minister_id", "minister does not exist")
			return Unavailability{}, inner
		}
		return Unavailability{}, mapRepositoryError(err)
	}

	record := Unavailability{
		ID:         s.idGenerator(),
		ParishID:   parishID,
		MinisterID: input.MinisterID,
		Date:       input.Date,
		TimeLabel:  input.TimeLabel,
		CreatedAt:  s.now(),
	}
	if err := s.records.CreateUnavailability(ctx, record); err != nil {
		return Unavailability{}, mapRepositoryError(err)
	}
	return record, nil
}

// GetUnavailability retrieves an absence record by ID within the parish.
func (s *UnavailabilityService) GetUnavailability(ctx context.Context, parishID, id string) (Unavailability, error) {
	record, err := s.records.GetUnavailability(ctx, parishID, id)
	if err != nil {
		return Unavailability{}, mapRepositoryError(err)
	}
	return record, nil
}

// ListUnavailability returns the parish's absence records matching the
// window.
func (s *UnavailabilityService) ListUnavailability(ctx context.Context, parishID string, window UnavailabilityWindow) ([]Unavailability, error) {
	records, err := s.records.ListUnavailability(ctx, parishID, window)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return records, nil
}

// DeleteUnavailability removes an absence record.
func (s *UnavailabilityService) DeleteUnavailability(ctx context.Context, parishID, id string) error {
	return mapRepositoryError(s.records.DeleteUnavailability(ctx, parishID, id))
}
