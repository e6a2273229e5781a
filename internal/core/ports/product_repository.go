package ports

import (
	"context"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/product"
)

// ProductRepository defines the persistence contract for catalogue entries.
type ProductRepository interface {
	Add(ctx context.Context, aggregate *product.Product) error

	Get(ctx context.Context, id kernel.UUID) (*product.Product, error)

	// DecreaseStock atomically takes quantity units out of stock. It fails
	// with an ObjectNotFoundError for unknown products and with an error
	// matching product.ErrInsufficientStock when stock is short; stock is
	// left untouched in both cases.
	DecreaseStock(ctx context.Context, id kernel.UUID, quantity int) error
}
