package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// NewID mints a feature ID for a new waypoint or route.
//
// IDs are UUIDv7 values rendered in canonical string form: globally unique,
// and because the high bits are a timestamp, lexically sortable in creation
// order. IDs are assigned once at construction and never change.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// uuid.NewV7 only fails if the random source fails, which is not
		// recoverable in any meaningful way here.
		panic(fmt.Sprintf("domain.NewID: %v", err))
	}
	return id.String()
}

// ParseID validates an ID read back from storage. Records are reconstructed
// with their persisted ID rather than a freshly minted one, so the value is
// parsed and checked for well-formedness instead of being trusted.
func ParseID(s string) (string, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return "", fmt.Errorf("domain.ParseID: %q is not a valid feature ID: %w", s, ErrValidation)
	}
	return id.String(), nil
}
