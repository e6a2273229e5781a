package commands

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"
)

var ErrClaimOrderCommandIsNotConstructed = errors.New(
	"ClaimOrderCommand must be created via NewClaimOrderCommand constructor",
)

// ClaimOrderCommand asks for a Ready for Pickup order to be assigned to the
// driver behind driverUserID.
//
// Example:
//
//	cmd, err := NewClaimOrderCommand(orderID, principal.UserID)
//	if err != nil {
//	    return err
//	}
//	switch err := handler.Handle(ctx, cmd); {
//	case errors.Is(err, errs.ErrConflict):
//	    // another driver was faster
//	case errors.Is(err, errs.ErrInvalidState):
//	    // order is not Ready for Pickup
//	}
type ClaimOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	driverUserID kernel.UUID

	guard guard.ConstructorGuard
}

func NewClaimOrderCommand(orderID kernel.UUID, driverUserID kernel.UUID) (ClaimOrderCommand, error) {
	cmd := ClaimOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setDriverUserID(driverUserID),
	); err != nil {
		return ClaimOrderCommand{}, err
	}

	return cmd, nil
}

func (c ClaimOrderCommand) Validate() error {
	return c.guard.Validate(ErrClaimOrderCommandIsNotConstructed)
}

func (c ClaimOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c ClaimOrderCommand) DriverUserID() kernel.UUID {
	return c.driverUserID
}

func (c *ClaimOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *ClaimOrderCommand) setDriverUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("driver user", err)
	}
	c.driverUserID = userID
	return nil
}
