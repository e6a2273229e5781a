package cart

import (
	"fmt"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
)

// Item is a product and the quantity the customer intends to buy.
type Item struct {
	ProductID kernel.UUID
	Quantity  int
}

// Cart is the per-customer list of intended purchases. Checkout snapshots
// it into an order and clears it afterwards.
type Cart struct {
	customerID kernel.UUID
	items      []Item
}

// NewCart creates an empty cart for customerID.
func NewCart(customerID kernel.UUID) (*Cart, error) {
	if err := customerID.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("customer", err)
	}
	return &Cart{customerID: customerID}, nil
}

// RestoreCart rebuilds a cart loaded from storage, dropping empty lines.
func RestoreCart(customerID kernel.UUID, items []Item) (*Cart, error) {
	c, err := NewCart(customerID)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if err := c.SetItem(item.ProductID, item.Quantity); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Cart) CustomerID() kernel.UUID {
	return c.customerID
}

func (c *Cart) Items() []Item {
	return append([]Item(nil), c.items...)
}

func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// SetItem sets the quantity of productID. A zero quantity removes the line.
func (c *Cart) SetItem(productID kernel.UUID, quantity int) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	if quantity < 0 {
		return errs.NewValueIsInvalidErrorWithCause("cart quantity", fmt.Errorf("%d is negative", quantity))
	}

	for i, item := range c.items {
		if !item.ProductID.IsEqual(productID) {
			continue
		}
		if quantity == 0 {
			c.items = append(c.items[:i], c.items[i+1:]...)
		} else {
			c.items[i].Quantity = quantity
		}
		return nil
	}

	if quantity > 0 {
		c.items = append(c.items, Item{ProductID: productID, Quantity: quantity})
	}
	return nil
}

func (c *Cart) Clear() {
	c.items = nil
}
