package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/marcelopachecouba/sgme/internal/persistence"
)

// MassRepository implements persistence.MassRepository using SQLite.
type MassRepository struct {
	helper *QueryHelper
	mapper *ErrorMapper
}

// NewMassRepository creates a new SQLite mass repository.
func NewMassRepository(pool *ConnectionPool) *MassRepository {
	return &MassRepository{
		helper: NewQueryHelper(pool),
		mapper: NewErrorMapper(),
	}
}

// CreateMass inserts a new mass.
func (r *MassRepository) CreateMass(ctx context.Context, mass persistence.Mass) error {
	if mass.ID == "" || mass.ParishID == "" {
		return persistence.ErrConstraintViolation
	}

	query := `
		INSERT INTO masses (id, parish_id, mass_date, time_label, community, required_count, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.helper.Exec(ctx, query,
		mass.ID,
		mass.ParishID,
		formatDate(mass.Date),
		mass.TimeLabel,
		mass.Community,
		mass.RequiredCount,
		formatTimestamp(mass.CreatedAt),
		formatTimestamp(mass.UpdatedAt),
	)
	return r.mapper.MapError(err)
}

// UpdateMass updates an existing mass within its parish.
func (r *MassRepository) UpdateMass(ctx context.Context, mass persistence.Mass) error {
	query := `
		UPDATE masses
		SET mass_date = ?, time_label = ?, community = ?, required_count = ?, updated_at = ?
		WHERE parish_id = ? AND id = ?
	`

	result, err := r.helper.Exec(ctx, query,
		formatDate(mass.Date),
		mass.TimeLabel,
		mass.Community,
		mass.RequiredCount,
		formatTimestamp(mass.UpdatedAt),
		mass.ParishID,
		mass.ID,
	)
	if err != nil {
		return r.mapper.MapError(err)
	}

	return requireRowsAffected(result)
}

// GetMass retrieves a mass by ID within a parish.
func (r *MassRepository) GetMass(ctx context.Context, parishID, id string) (persistence.Mass, error) {
	query := `
		SELECT id, parish_id, mass_date, time_label, community, required_count, created_at, updated_at
		FROM masses
		WHERE parish_id = ? AND id = ?
	`

	row := r.helper.QueryRow(ctx, query, parishID, id)
	return scanMass(row.Scan)
}

// FindMass locates a mass by calendar day and time label. Community is not
// part of the lookup key; the month expander relies on that.
func (r *MassRepository) FindMass(ctx context.Context, parishID string, date time.Time, timeLabel string) (persistence.Mass, error) {
	query := `
		SELECT id, parish_id, mass_date, time_label, community, required_count, created_at, updated_at
		FROM masses
		WHERE parish_id = ? AND mass_date = ? AND time_label = ?
		ORDER BY id ASC
		LIMIT 1
	`

	row := r.helper.QueryRow(ctx, query, parishID, formatDate(date), timeLabel)
	return scanMass(row.Scan)
}

// ListMasses returns the parish's masses within the filter window, ordered
// by date then time label.
func (r *MassRepository) ListMasses(ctx context.Context, parishID string, filter persistence.MassFilter) ([]persistence.Mass, error) {
	query := `
		SELECT id, parish_id, mass_date, time_label, community, required_count, created_at, updated_at
		FROM masses
		WHERE parish_id = ?
	`
	args := []any{parishID}

	if filter.From != nil {
		query += " AND mass_date >= ?"
		args = append(args, formatDate(*filter.From))
	}
	if filter.To != nil {
		query += " AND mass_date <= ?"
		args = append(args, formatDate(*filter.To))
	}
	query += " ORDER BY mass_date ASC, time_label ASC, id ASC"

	rows, err := r.helper.Query(ctx, query, args...)
	if err != nil {
		return nil, r.mapper.MapError(err)
	}
	defer rows.Close()

	var masses []persistence.Mass
	for rows.Next() {
		mass, err := scanMass(rows.Scan)
		if err != nil {
			return nil, err
		}
		masses = append(masses, mass)
	}
	if err := rows.Err(); err != nil {
		return nil, r.mapper.MapError(err)
	}

	return masses, nil
}

// DeleteMass removes a mass. Cascades remove its roster.
func (r *MassRepository) DeleteMass(ctx context.Context, parishID, id string) error {
	result, err := r.helper.Exec(ctx,
		"DELETE FROM masses WHERE parish_id = ? AND id = ?", parishID, id)
	if err != nil {
		return r.mapper.MapError(err)
	}
	return requireRowsAffected(result)
}

func scanMass(scan func(...any) error) (persistence.Mass, error) {
	var mass persistence.Mass
	var dateStr, createdAtStr, updatedAtStr string

	err := scan(
		&mass.ID,
		&mass.ParishID,
		&dateStr,
		&mass.TimeLabel,
		&mass.Community,
		&mass.RequiredCount,
		&createdAtStr,
		&updatedAtStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return persistence.Mass{}, persistence.ErrNotFound
		}
		return persistence.Mass{}, err
	}

	if mass.Date, err = parseDate(dateStr); err != nil {
		return persistence.Mass{}, err
	}
	if mass.CreatedAt, err = parseTimestamp(createdAtStr); err != nil {
		return persistence.Mass{}, err
	}
	if mass.UpdatedAt, err = parseTimestamp(updatedAtStr); err != nil {
		return persistence.Mass{}, err
	}

	return mass, nil
}
