package application

import (
	"context"
	"strings"
	"time"
)

// MinisterRepository captures the persistence interactions needed by the
// minister service.
type MinisterRepository interface {
	CreateMinister(ctx context.Context, minister Minister) error
	UpdateMinister(ctx context.Context, minister Minister) error
	GetMinister(ctx context.Context, parishID, id string) (Minister, error)
	ListMinisters(ctx context.Context, parishID string) ([]Minister, error)
	DeleteMinister(ctx context.Context, parishID, id string) error
}

// MinisterService manages the volunteer directory of a parish.
type MinisterService struct {
	ministers   MinisterRepository
	idGenerator func() string
	now         func() time.Time
}

// NewMinisterService wires dependencies for minister operations.
func NewMinisterService(ministers MinisterRepository, idGenerator func() string, now func() time.Time) *MinisterService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &MinisterService{
		ministers:   ministers,
		idGenerator: idGenerator,
		now:         now,
	}
}

func validateMinisterInput(input MinisterInput, vErr *ValidationError) {
	if strings.TrimSpace(input.Name) == "" {
		vErr.add("name", "name is required")
	}
	if input.YearsServed < 0 {
		vErr.add("years_served", "years served must not be negative")
	}
}

// CreateMinister validates and stores a new minister. Name uniqueness per
// parish is enforced by the repository.
func (s *MinisterService) CreateMinister(ctx context.Context, parishID string, input MinisterInput) (Minister, error) {
	vErr := &ValidationError{}
	validateMinisterInput(input, vErr)
	if vErr.HasErrors() {
		return Minister{}, vErr
	}

	createdAt := s.now()
	minister := Minister{
		ID:          s.idGenerator(),
		ParishID:    parishID,
		Name:        strings.TrimSpace(input.Name),
		Phone:       input.Phone,
		Email:       input.Email,
		BirthDate:   input.BirthDate,
		YearsServed: input.YearsServed,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
	if err := s.ministers.CreateMinister(ctx, minister); err != nil {
		return Minister{}, mapRepositoryError(err)
	}
	return minister, nil
}

// UpdateMinister replaces the mutable fields of an existing minister.
func (s *MinisterService) UpdateMinister(ctx context.Context, parishID, id string, input MinisterInput) (Minister, error) {
	vErr := &ValidationError{}
	validateMinisterInput(input, vErr)
	if vErr.HasErrors() {
		return Minister{}, vErr
	}

	minister, err := s.ministers.GetMinister(ctx, parishID, id)
	if err != nil {
		return Minister{}, mapRepositoryError(err)
	}

	minister.Name = strings.TrimSpace(input.Name)
	minister.Phone = input.Phone
	minister.Email = input.Email
	minister.BirthDate = input.BirthDate
	minister.YearsServed = input.YearsServed
	minister.UpdatedAt = s.now()
	if err := s.ministers.UpdateMinister(ctx, minister); err != nil {
		return Minister{}, mapRepositoryError(err)
	}
	return minister, nil
}

// GetMinister retrieves a minister by ID within the parish.
func (s *MinisterService) GetMinister(ctx context.Context, parishID, id string) (Minister, error) {
	minister, err := s.ministers.GetMinister(ctx, parishID, id)
	if err != nil {
		return Minister{}, mapRepositoryError(err)
	}
	return minister, nil
}

// ListMinisters returns the parish's ministers in name order.
func (s *MinisterService) ListMinisters(ctx context.Context, parishID string) ([]Minister, error) {
	ministers, err := s.ministers.ListMinisters(ctx, parishID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return ministers, nil
}

// DeleteMinister removes a minister along with their fixed slots, absences
// and assignments.
func (s *MinisterService) DeleteMinister(ctx context.Context, parishID, id string) error {
	return mapRepositoryError(s.ministers.DeleteMinister(ctx, parishID, id))
}
