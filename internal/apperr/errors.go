// Package apperr defines the error taxonomy surfaced by the persistence
// layer. Callers are expected to branch with errors.Is / errors.As: the
// appropriate reaction differs between invalid input, a lost write race,
// and a dangling reference.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a lookup by key yields no row.
	ErrNotFound = errors.New("record not found")

	// ErrUniqueViolation is returned when the storage backend rejects a
	// write because of a unique index (e.g. duplicate product name).
	ErrUniqueViolation = errors.New("unique constraint violation")

	// ErrForeignKeyViolation is returned when a write references a missing
	// row or a delete is blocked by a restricted dependent.
	ErrForeignKeyViolation = errors.New("foreign key violation")

	// ErrConcurrencyConflict is returned when a versioned write carries a
	// stale version token: another writer committed first. The caller must
	// re-read and re-apply; there is no automatic retry.
	ErrConcurrencyConflict = errors.New("concurrency conflict: stale version token")

	// ErrTransactionDone is returned when an operation is attempted on a
	// transaction that has already been committed or rolled back.
	ErrTransactionDone = errors.New("transaction already finished")
)

// ValidationError reports a write that violates a declared constraint
// before it reaches the storage backend.
type ValidationError struct {
	Entity string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s.%s %s", e.Entity, e.Field, e.Reason)
}

// Validation builds a ValidationError.
func Validation(entity, field, reason string) error {
	return &ValidationError{Entity: entity, Field: field, Reason: reason}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// MappingError reports a polymorphic row that cannot be materialized:
// the discriminator is unrecognized or the populated columns do not
// match it.
type MappingError struct {
	Discriminator string
	Reason        string
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("payment mapping failed (discriminator %q): %s", e.Discriminator, e.Reason)
}

// Mapping builds a MappingError.
func Mapping(discriminator, reason string) error {
	return &MappingError{Discriminator: discriminator, Reason: reason}
}

// IsMapping reports whether err is (or wraps) a MappingError.
func IsMapping(err error) bool {
	var me *MappingError
	return errors.As(err, &me)
}
