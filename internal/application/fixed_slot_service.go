package application

import (
	"context"
	"errors"
	"time"
)

// FixedSlotRepository captures the persistence interactions needed by the
// fixed slot service.
type FixedSlotRepository interface {
	CreateFixedSlot(ctx context.Context, slot FixedSlot) error
	UpdateFixedSlot(ctx context.Context, slot FixedSlot) error
	GetFixedSlot(ctx context.Context, parishID, id string) (FixedSlot, error)
	ListFixedSlots(ctx context.Context, parishID string) ([]FixedSlot, error)
	DeleteFixedSlot(ctx context.Context, parishID, id string) error
}

// MinisterChecker verifies that a minister exists within a parish.
type MinisterChecker interface {
	GetMinister(ctx context.Context, parishID, id string) (Minister, error)
}

// FixedSlotService manages the recurring assignment rules of a parish.
type FixedSlotService struct {
	slots       FixedSlotRepository
	ministers   MinisterChecker
	idGenerator func() string
	now         func() time.Time
}

// NewFixedSlotService wires dependencies for fixed slot operations.
func NewFixedSlotService(slots FixedSlotRepository, ministers MinisterChecker, idGenerator func() string, now func() time.Time) *FixedSlotService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &FixedSlotService{
		slots:       slots,
		ministers:   ministers,
		idGenerator: idGenerator,
		now:         now,
	}
}

func validateFixedSlotInput(input FixedSlotInput, vErr *ValidationError) {
	if input.Week != nil && (*input.Week < 1 || *input.Week > 5) {
		vErr.add("week", "week must be between 1 and 5")
	}
	if input.Weekday != nil && (*input.Weekday < 0 || *input.Weekday > 6) {
		vErr.add("weekday", "weekday must be between 0 (Monday) and 6 (Sunday)")
	}
	if input.MinisterID == "" {
		vErr.add("minister_id", "minister is required")
	}
}

func (s *FixedSlotService) ensureMinisterExists(ctx context.Context, parishID, ministerID string) error {
	_, err := s.ministers.GetMinister(ctx, parishID, ministerID)
	if err != nil {
		if mapped := mapRepositoryError(err); errors.Is(mapped, ErrNotFound) {
			vErr := &ValidationError{}
			vErr.add("minister_id", "minister does not exist")
			return vErr
		}
		return mapRepositoryError(err)
	}
	return nil
}

// CreateFixedSlot validates and stores a new rule.
func (s *FixedSlotService) CreateFixedSlot(ctx context.Context, parishID string, input FixedSlotInput) (FixedSlot, error) {
	vErr := &ValidationError{}
	validateFixedSlotInput(input, vErr)
	if vErr.HasErrors() {
		return FixedSlot{}, vErr
	}
	if err := s.ensureMinisterExists(ctx, parishID, input.MinisterID); err != nil {
		return FixedSlot{}, err
	}

	createdAt := s.now()
	slot := FixedSlot{
		ID:         s.idGenerator(),
		ParishID:   parishID,
		Week:       input.Week,
		Weekday:    input.Weekday,
		TimeLabel:  input.TimeLabel,
		Community:  input.Community,
		MinisterID: input.MinisterID,
		CreatedAt:  createdAt,
		UpdatedAt:  createdAt,
	}
	if err := s.slots.CreateFixedSlot(ctx, slot); err != nil {
		return FixedSlot{}, mapRepositoryError(err)
	}
	return slot, nil
}

// UpdateFixedSlot replaces the pattern fields of an existing rule.
func (s *FixedSlotService) UpdateFixedSlot(ctx context.Context, parishID, id string, input FixedSlotInput) (FixedSlot, error) {
	vErr := &ValidationError{}
	validateFixedSlotInput(input, vErr)
	if vErr.HasErrors() {
		return FixedSlot{}, vErr
	}
	if err := s.ensureMinisterExists(ctx, parishID, input.MinisterID); err != nil {
		return FixedSlot{}, err
	}

	slot, err := s.slots.GetFixedSlot(ctx, parishID, id)
	if err != nil {
		return FixedSlot{}, mapRepositoryError(err)
	}

	slot.Week = input.Week
	slot.Weekday = input.Weekday
	slot.TimeLabel = input.TimeLabel
	slot.Community = input.Community
	slot.MinisterID = input.MinisterID
	slot.UpdatedAt = s.now()
	if err := s.slots.UpdateFixedSlot(ctx, slot); err != nil {
		return FixedSlot{}, mapRepositoryError(err)
	}
	return slot, nil
}

// GetFixedSlot retrieves a rule by ID within the parish.
func (s *FixedSlotService) GetFixedSlot(ctx context.Context, parishID, id string) (FixedSlot, error) {
	slot, err := s.slots.GetFixedSlot(ctx, parishID, id)
	if err != nil {
		return FixedSlot{}, mapRepositoryError(err)
	}
	return slot, nil
}

// ListFixedSlots returns the parish's rules in creation order.
func (s *FixedSlotService) ListFixedSlots(ctx context.Context, parishID string) ([]FixedSlot, error) {
	slots, err := s.slots.ListFixedSlots(ctx, parishID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return slots, nil
}

// DeleteFixedSlot removes a rule.
func (s *FixedSlotService) DeleteFixedSlot(ctx context.Context, parishID, id string) error {
	return mapRepositoryError(s.slots.DeleteFixedSlot(ctx, parishID, id))
}
