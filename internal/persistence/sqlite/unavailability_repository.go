package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/marcelopachecouba/sgme/internal/persistence"
)

// UnavailabilityRepository implements persistence.UnavailabilityRepository
// using SQLite.
type UnavailabilityRepository struct {
	helper *QueryHelper
	mapper *ErrorMapper
}

// NewUnavailabilityRepository creates a new SQLite unavailability repository.
func NewUnavailabilityRepository(pool *ConnectionPool) *UnavailabilityRepository {
	return &UnavailabilityRepository{
		helper: NewQueryHelper(pool),
		mapper: NewErrorMapper(),
	}
}

// CreateUnavailability inserts a new absence record.
func (r *UnavailabilityRepository) CreateUnavailability(ctx context.Context, record persistence.Unavailability) error {
	if record.ID == "" || record.ParishID == "" {
		return persistence.ErrConstraintViolation
	}

	query := `
		INSERT INTO unavailability (id, parish_id, minister_id, absence_date, time_label, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.helper.Exec(ctx, query,
		record.ID,
		record.ParishID,
		record.MinisterID,
		formatDate(record.Date),
		nullString(record.TimeLabel),
		formatTimestamp(record.CreatedAt),
	)
	return r.mapper.MapError(err)
}

// GetUnavailability retrieves an absence record by ID within a parish.
func (r *UnavailabilityRepository) GetUnavailability(ctx context.Context, parishID, id string) (persistence.Unavailability, error) {
	query := `
		SELECT id, parish_id, minister_id, absence_date, time_label, created_at
		FROM unavailability
		WHERE parish_id = ? AND id = ?
	`

	row := r.helper.QueryRow(ctx, query, parishID, id)
	return scanUnavailability(row.Scan)
}

// ListUnavailability returns the parish's absence records matching the
// filter, ordered by date.
func (r *UnavailabilityRepository) ListUnavailability(ctx context.Context, parishID string, filter persistence.UnavailabilityFilter) ([]persistence.Unavailability, error) {
	query := `
		SELECT id, parish_id, minister_id, absence_date, time_label, created_at
		FROM unavailability
		WHERE parish_id = ?
	`
	args := []any{parishID}

	if filter.MinisterID != "" {
		query += " AND minister_id = ?"
		args = append(args, filter.MinisterID)
	}
	if filter.Date != nil {
		query += " AND absence_date = ?"
		args = append(args, formatDate(*filter.Date))
	}
	query += " ORDER BY absence_date ASC, id ASC"

	rows, err := r.helper.Query(ctx, query, args...)
	if err != nil {
		return nil, r.mapper.MapError(err)
	}
	defer rows.Close()

	var records []persistence.Unavailability
	for rows.Next() {
		record, err := scanUnavailability(rows.Scan)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, r.mapper.MapError(err)
	}

	return records, nil
}

// DeleteUnavailability removes an absence record.
func (r *UnavailabilityRepository) DeleteUnavailability(ctx context.Context, parishID, id string) error {
	result, err := r.helper.Exec(ctx,
		"DELETE FROM unavailability WHERE parish_id = ? AND id = ?", parishID, id)
	if err != nil {
		return r.mapper.MapError(err)
	}
	return requireRowsAffected(result)
}

func scanUnavailability(scan func(...any) error) (persistence.Unavailability, error) {
	var record persistence.Unavailability
	var timeLabel sql.NullString
	var dateStr, createdAtStr string

	err := scan(
		&record.ID,
		&record.ParishID,
		&record.MinisterID,
		&dateStr,
		&timeLabel,
		&createdAtStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return persistence.Unavailability{}, persistence.ErrNotFound
		}
		return persistence.Unavailability{}, err
	}

	record.TimeLabel = stringPtr(timeLabel)
	if record.Date, err = parseDate(dateStr); err != nil {
		return persistence.Unavailability{}, err
	}
	if record.CreatedAt, err = parseTimestamp(createdAtStr); err != nil {
		return persistence.Unavailability{}, err
	}

	return record, nil
}
