package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/marcelopachecouba/sgme/internal/persistence"
)

// ParishRepository implements persistence.ParishRepository using SQLite.
type ParishRepository struct {
	helper *QueryHelper
	mapper *ErrorMapper
}

// NewParishRepository creates a new SQLite parish repository.
func NewParishRepository(pool *ConnectionPool) *ParishRepository {
	return &ParishRepository{
		helper: NewQueryHelper(pool),
		mapper: NewErrorMapper(),
	}
}

// CreateParish inserts a new parish.
func (r *ParishRepository) CreateParish(ctx context.Context, parish persistence.Parish) error {
	if parish.ID == "" {
		return persistence.ErrConstraintViolation
	}

	query := `
		INSERT INTO parishes (id, name, created_at, updated_at)
		VALUES (?, ?, ?, ?)
	`

	_, err := r.helper.Exec(ctx, query,
		parish.ID,
		parish.Name,
		formatTimestamp(parish.CreatedAt),
		formatTimestamp(parish.UpdatedAt),
	)
	return r.mapper.MapError(err)
}

// UpdateParish updates an existing parish.
func (r *ParishRepository) UpdateParish(ctx context.Context, parish persistence.Parish) error {
	query := `
		UPDATE parishes
		SET name = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.helper.Exec(ctx, query,
		parish.Name,
		formatTimestamp(parish.UpdatedAt),
		parish.ID,
	)
	if err != nil {
		return r.mapper.MapError(err)
	}

	return requireRowsAffected(result)
}

// GetParish retrieves a parish by ID.
func (r *ParishRepository) GetParish(ctx context.Context, id string) (persistence.Parish, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM parishes
		WHERE id = ?
	`

	row := r.helper.QueryRow(ctx, query, id)
	return scanParish(row.Scan)
}

// ListParishes returns all parishes ordered by name.
func (r *ParishRepository) ListParishes(ctx context.Context) ([]persistence.Parish, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM parishes
		ORDER BY name ASC, id ASC
	`

	rows, err := r.helper.Query(ctx, query)
	if err != nil {
		return nil, r.mapper.MapError(err)
	}
	defer rows.Close()

	var parishes []persistence.Parish
	for rows.Next() {
		parish, err := scanParish(rows.Scan)
		if err != nil {
			return nil, err
		}
		parishes = append(parishes, parish)
	}
	if err := rows.Err(); err != nil {
		return nil, r.mapper.MapError(err)
	}

	return parishes, nil
}

// DeleteParish removes a parish. Foreign key cascades remove everything the
// parish owns.
func (r *ParishRepository) DeleteParish(ctx context.Context, id string) error {
	result, err := r.helper.Exec(ctx, "DELETE FROM parishes WHERE id = ?", id)
	if err != nil {
		return r.mapper.MapError(err)
	}
	return requireRowsAffected(result)
}

func scanParish(scan func(...any) error) (persistence.Parish, error) {
	var parish persistence.Parish
	var createdAtStr, updatedAtStr string

	err := scan(&parish.ID, &parish.Name, &createdAtStr, &updatedAtStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return persistence.Parish{}, persistence.ErrNotFound
		}
		return persistence.Parish{}, err
	}

	if parish.CreatedAt, err = parseTimestamp(createdAtStr); err != nil {
		return persistence.Parish{}, err
	}
	if parish.UpdatedAt, err = parseTimestamp(updatedAtStr); err != nil {
		return persistence.Parish{}, err
	}

	return parish, nil
}

func requireRowsAffected(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return persistence.ErrNotFound
	}
	return nil
}
