package ports

import (
	"context"

	"warehouse/internal/core/domain/model/cart"
	"warehouse/internal/core/domain/model/kernel"
)

// CartRepository stores shopping carts outside the order transaction.
type CartRepository interface {
	// Get returns the customer's cart, empty if none was stored.
	Get(ctx context.Context, customerID kernel.UUID) (*cart.Cart, error)

	// SetItem sets the quantity of one product; zero removes it.
	SetItem(ctx context.Context, customerID kernel.UUID, productID kernel.UUID, quantity int) error

	Clear(ctx context.Context, customerID kernel.UUID) error
}
