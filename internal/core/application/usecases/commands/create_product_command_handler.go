package commands

import (
	"context"
	"time"

	"warehouse/internal/core/domain/model/product"
)

type CreateProductCommandHandler struct {
	uowFactory ProductUoWFactory
}

func NewCreateProductCommandHandler(uowFactory ProductUoWFactory) CreateProductCommandHandler {
	return CreateProductCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle validates the product and inserts it. A duplicate id surfaces as a
// ConflictError from the repository.
func (h CreateProductCommandHandler) Handle(ctx context.Context, cmd CreateProductCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	p, err := product.NewProduct(
		cmd.ProductID(),
		cmd.Name(),
		cmd.Description(),
		cmd.Price(),
		cmd.StockQuantity(),
		time.Now().UTC(),
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ProductRepository().Add(ctx, p); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
