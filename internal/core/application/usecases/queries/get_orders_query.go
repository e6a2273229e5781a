package queries

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/pkg/guard"
)

var ErrGetOrdersQueryIsNotConstructed = errors.New(
	"GetOrdersQuery must be created via NewGetOrdersQuery constructor",
)

// GetOrdersQuery lists orders, newest first, optionally filtered by status
// and by customer.
//
// Example:
//
//	ready := order.ReadyForPickup
//	query, err := NewGetOrdersQuery(&ready, nil)
//	orders, err := handler.Handle(ctx, query)
type GetOrdersQuery struct {
	status     *order.Status
	customerID *kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrdersQuery(status *order.Status, customerID *kernel.UUID) (GetOrdersQuery, error) {
	if status != nil {
		if err := status.Validate(); err != nil {
			return GetOrdersQuery{}, err
		}
	}
	if customerID != nil {
		if err := customerID.Validate(); err != nil {
			return GetOrdersQuery{}, err
		}
	}
	return GetOrdersQuery{
		status:     status,
		customerID: customerID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}

func (q GetOrdersQuery) Status() *order.Status {
	return q.status
}

func (q GetOrdersQuery) CustomerID() *kernel.UUID {
	return q.customerID
}
