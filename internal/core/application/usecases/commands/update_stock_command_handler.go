package commands

import (
	"context"
)

// UpdateStockCommandHandler applies a stock batch in one transaction. Lines
// for the same product are merged and products are decremented in id order.
// The first failing item aborts the batch and every earlier decrement is
// rolled back with it.
type UpdateStockCommandHandler struct {
	uowFactory ProductUoWFactory
}

func NewUpdateStockCommandHandler(uowFactory ProductUoWFactory) UpdateStockCommandHandler {
	return UpdateStockCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h UpdateStockCommandHandler) Handle(ctx context.Context, cmd UpdateStockCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	productRepo := uow.ProductRepository()
	for _, item := range inLockOrder(mergeStockItems(cmd.Items())) {
		if err := productRepo.DecreaseStock(ctx, item.ProductID, item.Quantity); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
