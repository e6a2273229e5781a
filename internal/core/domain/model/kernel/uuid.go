package kernel

import (
	"fmt"

	"warehouse/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed is returned when validating a zero-value UUID.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID or parsed from a valid value")

// UUID is the identifier value object used by every aggregate in the
// warehouse domain: orders, drivers, products and users.
//
// The zero value is invalid. Build one with NewUUID, UUIDFromString,
// UUIDFromBytes or UUIDFromGoogle.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	driverUserID, err := kernel.UUIDFromString(claims.Subject)
//	if err != nil {
//	    return err
//	}
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a random (version 4) identifier.
func NewUUID() UUID {
	return UUID{id: uuid.New()}
}

// UUIDFromString parses the textual form of a UUID. The nil UUID is
// rejected because it can never identify an aggregate.
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, errs.NewValueIsInvalidErrorWithCause("uuid", fmt.Errorf("invalid UUID format: %w", err))
	}
	return UUIDFromGoogle(id)
}

// UUIDFromBytes builds a UUID from its 16-byte binary form, as stored in
// PostgreSQL uuid columns.
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, errs.NewValueIsInvalidErrorWithCause("uuid", fmt.Errorf("invalid UUID format: %w", err))
	}
	return UUIDFromGoogle(id)
}

// UUIDFromGoogle wraps an already parsed google/uuid value.
func UUIDFromGoogle(id uuid.UUID) (UUID, error) {
	u := UUID{id: id}
	if err := u.Validate(); err != nil {
		return UUID{}, err
	}
	return u, nil
}

// MustUUIDFromString is UUIDFromString for literals known to be valid.
// It panics on malformed input.
func MustUUIDFromString(s string) UUID {
	u, err := UUIDFromString(s)
	if err != nil {
		panic(err)
	}
	return u
}

func (u UUID) String() string {
	return u.id.String()
}

// Bytes returns the underlying google/uuid value for persistence adapters.
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Validate returns ErrUUIDIsNotConstructed for the zero value.
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
