package application

import (
	"context"
	"strings"
	"time"
)

// ParishRepository captures the persistence interactions needed by the
// parish service.
type ParishRepository interface {
	CreateParish(ctx context.Context, parish Parish) error
	UpdateParish(ctx context.Context, parish Parish) error
	GetParish(ctx context.Context, id string) (Parish, error)
	ListParishes(ctx context.Context) ([]Parish, error)
	DeleteParish(ctx context.Context, id string) error
}

// ParishService manages the owning scopes everything else hangs off.
type ParishService struct {
	parishes    ParishRepository
	idGenerator func() string
	now         func() time.Time
}

// NewParishService wires dependencies for parish operations.
func NewParishService(parishes ParishRepository, idGenerator func() string, now func() time.Time) *ParishService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &ParishService{
		parishes:    parishes,
		idGenerator: idGenerator,
		now:         now,
	}
}

// CreateParish validates and stores a new parish.
func (s *ParishService) CreateParish(ctx context.Context, name string) (Parish, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		vErr := &ValidationError{}
		vErr.add("name", "name is required")
		return Parish{}, vErr
	}

	createdAt := s.now()
	parish := Parish{
		ID:        s.idGenerator(),
		Name:      trimmed,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	if err := s.parishes.CreateParish(ctx, parish); err != nil {
		return Parish{}, mapRepositoryError(err)
	}
	return parish, nil
}

// UpdateParish renames an existing parish.
func (s *ParishService) UpdateParish(ctx context.Context, id, name string) (Parish, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		vErr := &ValidationError{}
		vErr.add("name", "name is required")
		return Parish{}, vErr
	}

	parish, err := s.parishes.GetParish(ctx, id)
	if err != nil {
		return Parish{}, mapRepositoryError(err)
	}

	parish.Name = trimmed
	parish.UpdatedAt = s.now()
	if err := s.parishes.UpdateParish(ctx, parish); err != nil {
		return Parish{}, mapRepositoryError(err)
	}
	return parish, nil
}

// GetParish retrieves a parish by ID.
func (s *ParishService) GetParish(ctx context.Context, id string) (Parish, error) {
	parish, err := s.parishes.GetParish(ctx, id)
	if err != nil {
		return Parish{}, mapRepositoryError(err)
	}
	return parish, nil
}

// ListParishes returns all parishes.
func (s *ParishService) ListParishes(ctx context.Context) ([]Parish, error) {
	parishes, err := s.parishes.ListParishes(ctx)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return parishes, nil
}

// DeleteParish removes a parish and everything it owns.
func (s *ParishService) DeleteParish(ctx context.Context, id string) error {
	return mapRepositoryError(s.parishes.DeleteParish(ctx, id))
}
