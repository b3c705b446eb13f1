package persistence

import "errors"

var (
	// ErrNotFound is returned when the requested record does not exist
	// within the caller's parish scope.
	ErrNotFound = errors.New("persistence: not found")
	// ErrDuplicate is returned when a write violates a uniqueness rule,
	// such as two ministers with the same name in one parish.
	ErrDuplicate = errors.New("persistence: duplicate record")
	// ErrConstraintViolation is returned when a write violates a check
	// constraint, such as a negative required minister count.
	ErrConstraintViolation = errors.New("persistence: constraint violation")
	// ErrForeignKeyViolation is returned when a write references a record
	// that does not exist.
	ErrForeignKeyViolation = errors.New("persistence: foreign key violation")
)
