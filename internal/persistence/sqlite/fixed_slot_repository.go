package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/marcelopachecouba/sgme/internal/persistence"
)

// FixedSlotRepository implements persistence.FixedSlotRepository using SQLite.
type FixedSlotRepository struct {
	helper *QueryHelper
	mapper *ErrorMapper
}

// NewFixedSlotRepository creates a new SQLite fixed slot repository.
func NewFixedSlotRepository(pool *ConnectionPool) *FixedSlotRepository {
	return &FixedSlotRepository{
		helper: NewQueryHelper(pool),
		mapper: NewErrorMapper(),
	}
}

// CreateFixedSlot inserts a new fixed slot rule.
func (r *FixedSlotRepository) CreateFixedSlot(ctx context.Context, slot persistence.FixedSlot) error {
	if slot.ID == "" || slot.ParishID == "" {
		return persistence.ErrConstraintViolation
	}

	query := `
		INSERT INTO fixed_slots (id, parish_id, week, weekday, time_label, community, minister_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.helper.Exec(ctx, query,
		slot.ID,
		slot.ParishID,
		nullInt(slot.Week),
		nullInt(slot.Weekday),
		nullString(slot.TimeLabel),
		nullString(slot.Community),
		slot.MinisterID,
		formatTimestamp(slot.CreatedAt),
		formatTimestamp(slot.UpdatedAt),
	)
	return r.mapper.MapError(err)
}

// UpdateFixedSlot updates an existing fixed slot rule within its parish.
func (r *FixedSlotRepository) UpdateFixedSlot(ctx context.Context, slot persistence.FixedSlot) error {
	query := `
		UPDATE fixed_slots
		SET week = ?, weekday = ?, time_label = ?, community = ?, minister_id = ?, updated_at = ?
		WHERE parish_id = ? AND id = ?
	`

	result, err := r.helper.Exec(ctx, query,
		nullInt(slot.Week),
		nullInt(slot.Weekday),
		nullString(slot.TimeLabel),
		nullString(slot.Community),
		slot.MinisterID,
		formatTimestamp(slot.UpdatedAt),
		slot.ParishID,
		slot.ID,
	)
	if err != nil {
		return r.mapper.MapError(err)
	}

	return requireRowsAffected(result)
}

// GetFixedSlot retrieves a fixed slot rule by ID within a parish.
func (r *FixedSlotRepository) GetFixedSlot(ctx context.Context, parishID, id string) (persistence.FixedSlot, error) {
	query := `
		SELECT id, parish_id, week, weekday, time_label, community, minister_id, created_at, updated_at
		FROM fixed_slots
		WHERE parish_id = ? AND id = ?
	`

	row := r.helper.QueryRow(ctx, query, parishID, id)
	return scanFixedSlot(row.Scan)
}

// ListFixedSlots returns the parish's fixed slot rules in creation order.
// Rule order decides who is seated first during the fixed pass.
func (r *FixedSlotRepository) ListFixedSlots(ctx context.Context, parishID string) ([]persistence.FixedSlot, error) {
	query := `
		SELECT id, parish_id, week, weekday, time_label, community, minister_id, created_at, updated_at
		FROM fixed_slots
		WHERE parish_id = ?
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.helper.Query(ctx, query, parishID)
	if err != nil {
		return nil, r.mapper.MapError(err)
	}
	defer rows.Close()

	var slots []persistence.FixedSlot
	for rows.Next() {
		slot, err := scanFixedSlot(rows.Scan)
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, r.mapper.MapError(err)
	}

	return slots, nil
}

// DeleteFixedSlot removes a fixed slot rule.
func (r *FixedSlotRepository) DeleteFixedSlot(ctx context.Context, parishID, id string) error {
	result, err := r.helper.Exec(ctx,
		"DELETE FROM fixed_slots WHERE parish_id = ? AND id = ?", parishID, id)
	if err != nil {
		return r.mapper.MapError(err)
	}
	return requireRowsAffected(result)
}

func scanFixedSlot(scan func(...any) error) (persistence.FixedSlot, error) {
	var slot persistence.FixedSlot
	var week, weekday sql.NullInt64
	var timeLabel, community sql.NullString
	var createdAtStr, updatedAtStr string

	err := scan(
		&slot.ID,
		&slot.ParishID,
		&week,
		&weekday,
		&timeLabel,
		&community,
		&slot.MinisterID,
		&createdAtStr,
		&updatedAtStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return persistence.FixedSlot{}, persistence.ErrNotFound
		}
		return persistence.FixedSlot{}, err
	}

	slot.Week = intPtr(week)
	slot.Weekday = intPtr(weekday)
	slot.TimeLabel = stringPtr(timeLabel)
	slot.Community = stringPtr(community)
	if slot.CreatedAt, err = parseTimestamp(createdAtStr); err != nil {
		return persistence.FixedSlot{}, err
	}
	if slot.UpdatedAt, err = parseTimestamp(updatedAtStr); err != nil {
		return persistence.FixedSlot{}, err
	}

	return slot, nil
}
