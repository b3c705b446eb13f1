package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/marcelopachecouba/sgme/internal/persistence"
)

// MinisterRepository implements persistence.MinisterRepository using SQLite.
type MinisterRepository struct {
	helper *QueryHelper
	mapper *ErrorMapper
}

// NewMinisterRepository creates a new SQLite minister repository.
func NewMinisterRepository(pool *ConnectionPool) *MinisterRepository {
	return &MinisterRepository{
		helper: NewQueryHelper(pool),
		mapper: NewErrorMapper(),
	}
}

// CreateMinister inserts a new minister.
func (r *MinisterRepository) CreateMinister(ctx context.Context, minister persistence.Minister) error {
	if minister.ID == "" || minister.ParishID == "" {
		return persistence.ErrConstraintViolation
	}

	query := `
		INSERT INTO ministers (id, parish_id, name, phone, email, birth_date, years_served, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.helper.Exec(ctx, query,
		minister.ID,
		minister.ParishID,
		minister.Name,
		nullString(minister.Phone),
		nullString(minister.Email),
		nullDate(minister.BirthDate),
		minister.YearsServed,
		formatTimestamp(minister.CreatedAt),
		formatTimestamp(minister.UpdatedAt),
	)
	return r.mapper.MapError(err)
}

// UpdateMinister updates an existing minister within its parish.
func (r *MinisterRepository) UpdateMinister(ctx context.Context, minister persistence.Minister) error {
	query := `
		UPDATE ministers
		SET name = ?, phone = ?, email = ?, birth_date = ?, years_served = ?, updated_at = ?
		WHERE parish_id = ? AND id = ?
	`

	result, err := r.helper.Exec(ctx, query,
		minister.Name,
		nullString(minister.Phone),
		nullString(minister.Email),
		nullDate(minister.BirthDate),
		minister.YearsServed,
		formatTimestamp(minister.UpdatedAt),
		minister.ParishID,
		minister.ID,
	)
	if err != nil {
		return r.mapper.MapError(err)
	}

	return requireRowsAffected(result)
}

// GetMinister retrieves a minister by ID within a parish.
func (r *MinisterRepository) GetMinister(ctx context.Context, parishID, id string) (persistence.Minister, error) {
	query := `
		SELECT id, parish_id, name, phone, email, birth_date, years_served, created_at, updated_at
		FROM ministers
		WHERE parish_id = ? AND id = ?
	`

	row := r.helper.QueryRow(ctx, query, parishID, id)
	return scanMinister(row.Scan)
}

// ListMinisters returns the parish's ministers in name order. The roster
// fill pass walks this exact ordering.
func (r *MinisterRepository) ListMinisters(ctx context.Context, parishID string) ([]persistence.Minister, error) {
	query := `
		SELECT id, parish_id, name, phone, email, birth_date, years_served, created_at, updated_at
		FROM ministers
		WHERE parish_id = ?
		ORDER BY name ASC, id ASC
	`

	rows, err := r.helper.Query(ctx, query, parishID)
	if err != nil {
		return nil, r.mapper.MapError(err)
	}
	defer rows.Close()

	var ministers []persistence.Minister
	for rows.Next() {
		minister, err := scanMinister(rows.Scan)
		if err != nil {
			return nil, err
		}
		ministers = append(ministers, minister)
	}
	if err := rows.Err(); err != nil {
		return nil, r.mapper.MapError(err)
	}

	return ministers, nil
}

// DeleteMinister removes a minister. Cascades remove their fixed slots,
// unavailability records and assignments.
func (r *MinisterRepository) DeleteMinister(ctx context.Context, parishID, id string) error {
	result, err := r.helper.Exec(ctx,
		"DELETE FROM ministers WHERE parish_id = ? AND id = ?", parishID, id)
	if err != nil {
		return r.mapper.MapError(err)
	}
	return requireRowsAffected(result)
}

func scanMinister(scan func(...any) error) (persistence.Minister, error) {
	var minister persistence.Minister
	var phone, email, birthDate sql.NullString
	var createdAtStr, updatedAtStr string

	err := scan(
		&minister.ID,
		&minister.ParishID,
		&minister.Name,
		&phone,
		&email,
		&birthDate,
		&minister.YearsServed,
		&createdAtStr,
		&updatedAtStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return persistence.Minister{}, persistence.ErrNotFound
		}
		return persistence.Minister{}, err
	}

	minister.Phone = stringPtr(phone)
	minister.Email = stringPtr(email)
	if minister.BirthDate, err = datePtr(birthDate); err != nil {
		return persistence.Minister{}, err
	}
	if minister.CreatedAt, err = parseTimestamp(createdAtStr); err != nil {
		return persistence.Minister{}, err
	}
	if minister.UpdatedAt, err = parseTimestamp(updatedAtStr); err != nil {
		return persistence.Minister{}, err
	}

	return minister, nil
}
