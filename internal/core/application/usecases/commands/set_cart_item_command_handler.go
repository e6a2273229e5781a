package commands

import (
	"context"

	"warehouse/internal/core/ports"
)

// SetCartItemCommandHandler writes cart lines. Carts live outside the order
// database; the product is looked up first so a cart never references an
// unknown product.
type SetCartItemCommandHandler struct {
	uowFactory ProductUoWFactory
	carts      ports.CartRepository
}

func NewSetCartItemCommandHandler(uowFactory ProductUoWFactory, carts ports.CartRepository) SetCartItemCommandHandler {
	return SetCartItemCommandHandler{
		uowFactory: uowFactory,
		carts:      carts,
	}
}

func (h SetCartItemCommandHandler) Handle(ctx context.Context, cmd SetCartItemCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if cmd.Quantity() > 0 {
		if err := h.ensureProductExists(ctx, cmd); err != nil {
			return err
		}
	}

	return h.carts.SetItem(ctx, cmd.CustomerID(), cmd.ProductID(), cmd.Quantity())
}

func (h SetCartItemCommandHandler) ensureProductExists(ctx context.Context, cmd SetCartItemCommand) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	_, err := uow.ProductRepository().Get(ctx, cmd.ProductID())
	return err
}

type ClearCartCommandHandler struct {
	carts ports.CartRepository
}

func NewClearCartCommandHandler(carts ports.CartRepository) ClearCartCommandHandler {
	return ClearCartCommandHandler{
		carts: carts,
	}
}

func (h ClearCartCommandHandler) Handle(ctx context.Context, cmd ClearCartCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return h.carts.Clear(ctx, cmd.CustomerID())
}
