// Package ports defines the contracts between the warehouse domain and its
// infrastructure: repositories, the unit of work and event publishing.
package ports

import (
	"context"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates,
// their items and their driver assignment.
type OrderRepository interface {
	// Add persists a new order with its items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the order row and its assignment. The write is a
	// compare-and-swap on the aggregate version: if another transaction
	// changed the order since it was loaded, a ConflictError is returned
	// and nothing is written.
	//
	// Example:
	//   if err := o.Claim(driverID, now); err != nil {
	//       return err
	//   }
	//   if err := repo.Update(ctx, o); errors.Is(err, errs.ErrConflict) {
	//       // someone else claimed it first
	//   }
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with items and assignment. Returns an
	// ObjectNotFoundError when the id is unknown.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
