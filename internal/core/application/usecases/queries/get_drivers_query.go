package queries

import (
	"errors"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/guard"
)

var ErrGetDriversQueryIsNotConstructed = errors.New(
	"GetDriversQuery must be created via NewGetDriversQuery constructor",
)

// GetDriversQuery lists drivers with their status and current workload.
type GetDriversQuery struct {
	guard guard.ConstructorGuard
}

func NewGetDriversQuery() GetDriversQuery {
	return GetDriversQuery{guard: guard.NewConstructorGuard()}
}

func (q GetDriversQuery) Validate() error {
	return q.guard.Validate(ErrGetDriversQueryIsNotConstructed)
}

// GetDriversQueryResponse is one driver. ActiveOrders counts assignments
// still Out for Delivery.
type GetDriversQueryResponse struct {
	ID           kernel.UUID
	UserID       kernel.UUID
	Status       string
	ActiveTime   time.Duration
	LastUpdated  time.Time
	ActiveOrders int64
}
