package ports

import (
	"context"
	"time"

	"warehouse/internal/core/domain/model/driver"
	"warehouse/internal/core/domain/model/kernel"
)

// DriverRepository defines the persistence contract for driver aggregates.
type DriverRepository interface {
	// GetOrCreateByUserID returns the driver linked to userID, creating an
	// Idle one on first use. The row is locked for the rest of the
	// transaction, so concurrent callers for the same user serialise and
	// never create duplicates.
	GetOrCreateByUserID(ctx context.Context, userID kernel.UUID, now time.Time) (*driver.Driver, error)

	Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error)

	Update(ctx context.Context, aggregate *driver.Driver) error

	// CountActiveAssignments counts the orders the driver currently holds
	// Out for Delivery.
	CountActiveAssignments(ctx context.Context, driverID kernel.UUID) (int64, error)

	// ListMismatched returns drivers whose status disagrees with their
	// assignments: Assigned without an active order, or Idle with one.
	ListMismatched(ctx context.Context) ([]*driver.Driver, error)
}
