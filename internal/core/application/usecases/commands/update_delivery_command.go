package commands

import (
	"errors"
	"strings"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"
)

var ErrUpdateDeliveryCommandIsNotConstructed = errors.New(
	"UpdateDeliveryCommand must be created via NewUpdateDeliveryCommand constructor",
)

// UpdateDeliveryCommand carries the outcome a driver reports for an order
// they hold. Notes are optional for every outcome, Not Delivered included.
type UpdateDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	driverUserID   kernel.UUID
	deliveryStatus order.DeliveryStatus
	notes          string

	guard guard.ConstructorGuard
}

func NewUpdateDeliveryCommand(
	orderID kernel.UUID,
	driverUserID kernel.UUID,
	deliveryStatus order.DeliveryStatus,
	notes string,
) (UpdateDeliveryCommand, error) {
	cmd := UpdateDeliveryCommand{
		notes: strings.TrimSpace(notes),
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setDriverUserID(driverUserID),
		cmd.setDeliveryStatus(deliveryStatus),
	); err != nil {
		return UpdateDeliveryCommand{}, err
	}

	return cmd, nil
}

func (c UpdateDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDeliveryCommandIsNotConstructed)
}

func (c UpdateDeliveryCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c UpdateDeliveryCommand) DriverUserID() kernel.UUID {
	return c.driverUserID
}

func (c UpdateDeliveryCommand) DeliveryStatus() order.DeliveryStatus {
	return c.deliveryStatus
}

func (c UpdateDeliveryCommand) Notes() string {
	return c.notes
}

func (c *UpdateDeliveryCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *UpdateDeliveryCommand) setDriverUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("driver user", err)
	}
	c.driverUserID = userID
	return nil
}

func (c *UpdateDeliveryCommand) setDeliveryStatus(status order.DeliveryStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	c.deliveryStatus = status
	return nil
}
