// Package journal provides the use cases of the journal catalogue:
// creating, listing, fetching, updating and deleting Journal aggregates
// together with their single Article.
package journal

import (
	"errors"
	"fmt"

	"journal-api/internal/domain/entity"
)

// Sentinel errors for journal use case operations.
var (
	// ErrJournalNotFound is returned by GetByID, UpdateByID and DeleteByID
	// when no journal has the requested id. It matches entity.ErrNotFound.
	ErrJournalNotFound = fmt.Errorf("journal %w", entity.ErrNotFound)

	// ErrMalformedDate is returned under PolicyReject when a date string
	// cannot be parsed. It matches entity.ErrInvalidInput.
	ErrMalformedDate = fmt.Errorf("malformed date: %w", entity.ErrInvalidInput)
)

// malformedDate wraps ErrMalformedDate with the offending field.
func malformedDate(field, value string) error {
	return fmt.Errorf("%w: %w", ErrMalformedDate, &entity.ValidationError{
		Field:   field,
		Message: fmt.Sprintf("cannot parse %q as an ISO-8601 date-time", value),
	})
}

// IsNotFound reports whether err means the journal does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, entity.ErrNotFound)
}
