package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/marcelopachecouba/sgme/internal/persistence"
)

// AssignmentRepository implements persistence.AssignmentRepository using
// SQLite.
type AssignmentRepository struct {
	pool   *ConnectionPool
	helper *QueryHelper
	mapper *ErrorMapper
}

// NewAssignmentRepository creates a new SQLite assignment repository.
func NewAssignmentRepository(pool *ConnectionPool) *AssignmentRepository {
	return &AssignmentRepository{
		pool:   pool,
		helper: NewQueryHelper(pool),
		mapper: NewErrorMapper(),
	}
}

const assignmentColumns = "id, parish_id, mass_id, minister_id, confirmation, attended, token, created_at, updated_at"

// CreateAssignment inserts a new roster entry.
func (r *AssignmentRepository) CreateAssignment(ctx context.Context, assignment persistence.Assignment) error {
	if assignment.ID == "" || assignment.ParishID == "" {
		return persistence.ErrConstraintViolation
	}

	query := `
		INSERT INTO assignments (` + assignmentColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.helper.Exec(ctx, query,
		assignment.ID,
		assignment.ParishID,
		assignment.MassID,
		assignment.MinisterID,
		assignment.Confirmation,
		boolToInt(assignment.Attended),
		assignment.Token,
		formatTimestamp(assignment.CreatedAt),
		formatTimestamp(assignment.UpdatedAt),
	)
	return r.mapper.MapError(err)
}

// UpdateAssignment updates the mutable fields of a roster entry.
func (r *AssignmentRepository) UpdateAssignment(ctx context.Context, assignment persistence.Assignment) error {
	query := `
		UPDATE assignments
		SET confirmation = ?, attended = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.helper.Exec(ctx, query,
		assignment.Confirmation,
		boolToInt(assignment.Attended),
		formatTimestamp(assignment.UpdatedAt),
		assignment.ID,
	)
	if err != nil {
		return r.mapper.MapError(err)
	}

	return requireRowsAffected(result)
}

// GetAssignment retrieves a roster entry by ID within a parish.
func (r *AssignmentRepository) GetAssignment(ctx context.Context, parishID, id string) (persistence.Assignment, error) {
	query := `
		SELECT ` + assignmentColumns + `
		FROM assignments
		WHERE parish_id = ? AND id = ?
	`

	row := r.helper.QueryRow(ctx, query, parishID, id)
	return scanAssignment(row.Scan)
}

// GetAssignmentByToken retrieves a roster entry by its confirmation token.
// The lookup crosses parish scopes on purpose; possessing the token is the
// authorization.
func (r *AssignmentRepository) GetAssignmentByToken(ctx context.Context, token string) (persistence.Assignment, error) {
	query := `
		SELECT ` + assignmentColumns + `
		FROM assignments
		WHERE token = ?
	`

	row := r.helper.QueryRow(ctx, query, token)
	return scanAssignment(row.Scan)
}

// ListAssignmentsForMass returns the mass's roster in creation order.
func (r *AssignmentRepository) ListAssignmentsForMass(ctx context.Context, parishID, massID string) ([]persistence.Assignment, error) {
	query := `
		SELECT ` + assignmentColumns + `
		FROM assignments
		WHERE parish_id = ? AND mass_id = ?
		ORDER BY created_at ASC, id ASC
	`

	return r.queryAssignments(ctx, query, parishID, massID)
}

// ListBusyMinisterIDs returns the ministers holding an assignment on another
// mass at the same date and time label.
func (r *AssignmentRepository) ListBusyMinisterIDs(ctx context.Context, parishID string, date time.Time, timeLabel, excludeMassID string) ([]string, error) {
	query := `
		SELECT DISTINCT a.minister_id
		FROM assignments a
		JOIN masses m ON m.id = a.mass_id
		WHERE a.parish_id = ? AND m.mass_date = ? AND m.time_label = ? AND a.mass_id != ?
		ORDER BY a.minister_id ASC
	`

	rows, err := r.helper.Query(ctx, query, parishID, formatDate(date), timeLabel, excludeMassID)
	if err != nil {
		return nil, r.mapper.MapError(err)
	}
	defer rows.Close()

	var ministerIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, r.mapper.MapError(err)
		}
		ministerIDs = append(ministerIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, r.mapper.MapError(err)
	}

	return ministerIDs, nil
}

// ReplaceRoster clears the mass's roster and inserts the given records in
// one transaction. A failed insert rolls back the clear, leaving the prior
// roster intact.
func (r *AssignmentRepository) ReplaceRoster(ctx context.Context, parishID, massID string, assignments []persistence.Assignment) error {
	return r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		_, err := r.helper.ExecTx(tx,
			"DELETE FROM assignments WHERE parish_id = ? AND mass_id = ?", parishID, massID)
		if err != nil {
			return r.mapper.MapError(err)
		}

		insert := `
			INSERT INTO assignments (` + assignmentColumns + `)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`
		for _, assignment := range assignments {
			_, err := r.helper.ExecTx(tx, insert,
				assignment.ID,
				assignment.ParishID,
				assignment.MassID,
				assignment.MinisterID,
				assignment.Confirmation,
				boolToInt(assignment.Attended),
				assignment.Token,
				formatTimestamp(assignment.CreatedAt),
				formatTimestamp(assignment.UpdatedAt),
			)
			if err != nil {
				return r.mapper.MapError(err)
			}
		}
		return nil
	})
}

// CountByMinister aggregates assignment totals per minister within the
// filter's date window.
func (r *AssignmentRepository) CountByMinister(ctx context.Context, parishID string, filter persistence.AssignmentFilter) (map[string]int, error) {
	query := `
		SELECT a.minister_id, COUNT(*)
		FROM assignments a
		JOIN masses m ON m.id = a.mass_id
		WHERE a.parish_id = ?
	`
	args := []any{parishID}

	if filter.From != nil {
		query += " AND m.mass_date >= ?"
		args = append(args, formatDate(*filter.From))
	}
	if filter.To != nil {
		query += " AND m.mass_date <= ?"
		args = append(args, formatDate(*filter.To))
	}
	query += " GROUP BY a.minister_id"

	rows, err := r.helper.Query(ctx, query, args...)
	if err != nil {
		return nil, r.mapper.MapError(err)
	}
	defer rows.Close()

	totals := make(map[string]int)
	for rows.Next() {
		var ministerID string
		var count int
		if err := rows.Scan(&ministerID, &count); err != nil {
			return nil, r.mapper.MapError(err)
		}
		totals[ministerID] = count
	}
	if err := rows.Err(); err != nil {
		return nil, r.mapper.MapError(err)
	}

	return totals, nil
}

// DeleteAssignment removes one roster entry.
func (r *AssignmentRepository) DeleteAssignment(ctx context.Context, parishID, id string) error {
	result, err := r.helper.Exec(ctx,
		"DELETE FROM assignments WHERE parish_id = ? AND id = ?", parishID, id)
	if err != nil {
		return r.mapper.MapError(err)
	}
	return requireRowsAffected(result)
}

func (r *AssignmentRepository) queryAssignments(ctx context.Context, query string, args ...any) ([]persistence.Assignment, error) {
	rows, err := r.helper.Query(ctx, query, args...)
	if err != nil {
		return nil, r.mapper.MapError(err)
	}
	defer rows.Close()

	var assignments []persistence.Assignment
	for rows.Next() {
		assignment, err := scanAssignment(rows.Scan)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, assignment)
	}
	if err := rows.Err(); err != nil {
		return nil, r.mapper.MapError(err)
	}

	return assignments, nil
}

func scanAssignment(scan func(...any) error) (persistence.Assignment, error) {
	var assignment persistence.Assignment
	var attended int
	var createdAtStr, updatedAtStr string

	err := scan(
		&assignment.ID,
		&assignment.ParishID,
		&assignment.MassID,
		&assignment.MinisterID,
		&assignment.Confirmation,
		&attended,
		&assignment.Token,
		&createdAtStr,
		&updatedAtStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return persistence.Assignment{}, persistence.ErrNotFound
		}
		return persistence.Assignment{}, err
	}

	assignment.Attended = attended != 0
	if assignment.CreatedAt, err = parseTimestamp(createdAtStr); err != nil {
		return persistence.Assignment{}, err
	}
	if assignment.UpdatedAt, err = parseTimestamp(updatedAtStr); err != nil {
		return persistence.Assignment{}, err
	}

	return assignment, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
