package queries

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"
)

var ErrGetDriverOrdersQueryIsNotConstructed = errors.New(
	"GetDriverOrdersQuery must be created via NewGetDriverOrdersQuery constructor",
)

// GetDriverOrdersQuery lists every order assigned to the driver of a user,
// most recently claimed first. A user who never claimed anything gets an
// empty list.
type GetDriverOrdersQuery struct {
	driverUserID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetDriverOrdersQuery(driverUserID kernel.UUID) (GetDriverOrdersQuery, error) {
	if err := driverUserID.Validate(); err != nil {
		return GetDriverOrdersQuery{}, errs.NewValueIsRequiredErrorWithCause("driver user", err)
	}
	return GetDriverOrdersQuery{
		driverUserID: driverUserID,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (q GetDriverOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetDriverOrdersQueryIsNotConstructed)
}

func (q GetDriverOrdersQuery) DriverUserID() kernel.UUID {
	return q.driverUserID
}
