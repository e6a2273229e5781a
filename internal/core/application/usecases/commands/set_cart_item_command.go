package commands

import (
	"errors"
	"fmt"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"
)

var (
	ErrSetCartItemCommandIsNotConstructed = errors.New(
		"SetCartItemCommand must be created via NewSetCartItemCommand constructor",
	)
	ErrClearCartCommandIsNotConstructed = errors.New(
		"ClearCartCommand must be created via NewClearCartCommand constructor",
	)
)

// SetCartItemCommand sets how many units of a product sit in the customer's
// cart. Zero removes the line.
type SetCartItemCommand struct { //nolint:recvcheck //using for validation
	customerID kernel.UUID
	productID  kernel.UUID
	quantity   int

	guard guard.ConstructorGuard
}

func NewSetCartItemCommand(customerID, productID kernel.UUID, quantity int) (SetCartItemCommand, error) {
	cmd := SetCartItemCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setProductID(productID),
		cmd.setQuantity(quantity),
	); err != nil {
		return SetCartItemCommand{}, err
	}

	return cmd, nil
}

func (c SetCartItemCommand) Validate() error {
	return c.guard.Validate(ErrSetCartItemCommandIsNotConstructed)
}

func (c SetCartItemCommand) CustomerID() kernel.UUID {
	return c.customerID
}

func (c SetCartItemCommand) ProductID() kernel.UUID {
	return c.productID
}

func (c SetCartItemCommand) Quantity() int {
	return c.quantity
}

func (c *SetCartItemCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customer", err)
	}
	c.customerID = customerID
	return nil
}

func (c *SetCartItemCommand) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	c.productID = productID
	return nil
}

func (c *SetCartItemCommand) setQuantity(quantity int) error {
	if quantity < 0 {
		return errs.NewValueIsInvalidErrorWithCause("cart quantity", fmt.Errorf("%d is negative", quantity))
	}
	c.quantity = quantity
	return nil
}

// ClearCartCommand empties the customer's cart.
type ClearCartCommand struct {
	customerID kernel.UUID

	guard guard.ConstructorGuard
}

func NewClearCartCommand(customerID kernel.UUID) (ClearCartCommand, error) {
	if err := customerID.Validate(); err != nil {
		return ClearCartCommand{}, errs.NewValueIsRequiredErrorWithCause("customer", err)
	}
	return ClearCartCommand{
		customerID: customerID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c ClearCartCommand) Validate() error {
	return c.guard.Validate(ErrClearCartCommandIsNotConstructed)
}

func (c ClearCartCommand) CustomerID() kernel.UUID {
	return c.customerID
}
