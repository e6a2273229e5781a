package commands

import (
	"errors"
	"fmt"
	"strings"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/core/domain/model/product"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"
)

var (
	ErrCheckoutCommandIsNotConstructed = errors.New(
		"CheckoutCommand must be created via NewCheckoutCommand constructor",
	)
	ErrCheckoutItemsAreRequired = errs.NewValueIsRequiredError("items")
)

// CheckoutItem is one requested line: a product and how many units to buy.
// Name and price are taken from the catalogue, never from the caller.
type CheckoutItem struct {
	ProductID kernel.UUID
	Quantity  int
}

// CheckoutCommand turns a customer's purchase into a Pending order.
//
// Example:
//
//	shipping, _ := order.NewShippingInfo("Ann Lee", "555-0100", "", "1 Dock Rd", "Toronto", "", "CA")
//	cmd, err := NewCheckoutCommand(kernel.NewUUID(), customerID, "Ann Lee",
//	    []CheckoutItem{{ProductID: productID, Quantity: 2}}, shipping)
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
type CheckoutCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	customerID   kernel.UUID
	customerName string
	items        []CheckoutItem
	shipping     order.ShippingInfo

	guard guard.ConstructorGuard
}

// NewCheckoutCommand validates identifiers, quantities and shipping details.
// All problems are reported at once.
func NewCheckoutCommand(
	orderID kernel.UUID,
	customerID kernel.UUID,
	customerName string,
	items []CheckoutItem,
	shipping order.ShippingInfo,
) (CheckoutCommand, error) {
	cmd := CheckoutCommand{
		customerName: strings.TrimSpace(customerName),
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomerID(customerID),
		cmd.setItems(items),
		cmd.setShipping(shipping),
	); err != nil {
		return CheckoutCommand{}, err
	}

	return cmd, nil
}

func (c CheckoutCommand) Validate() error {
	return c.guard.Validate(ErrCheckoutCommandIsNotConstructed)
}

func (c CheckoutCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CheckoutCommand) CustomerID() kernel.UUID {
	return c.customerID
}

func (c CheckoutCommand) CustomerName() string {
	return c.customerName
}

func (c CheckoutCommand) Items() []CheckoutItem {
	return append([]CheckoutItem(nil), c.items...)
}

func (c CheckoutCommand) Shipping() order.ShippingInfo {
	return c.shipping
}

func (c *CheckoutCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CheckoutCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customer", err)
	}
	c.customerID = customerID
	return nil
}

func (c *CheckoutCommand) setItems(items []CheckoutItem) error {
	if len(items) == 0 {
		return ErrCheckoutItemsAreRequired
	}

	var errList []error
	for i, item := range items {
		if err := item.ProductID.Validate(); err != nil {
			errList = append(errList, fmt.Errorf("item %d: %w", i, err))
		}
		if err := product.ValidateQuantity(item.Quantity); err != nil {
			errList = append(errList, fmt.Errorf("item %d: %w", i, err))
		}
	}
	if len(errList) > 0 {
		return errors.Join(errList...)
	}

	c.items = append([]CheckoutItem(nil), items...)
	return nil
}

func (c *CheckoutCommand) setShipping(shipping order.ShippingInfo) error {
	if err := shipping.Validate(); err != nil {
		return err
	}
	c.shipping = shipping
	return nil
}
