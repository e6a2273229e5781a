package commands

import (
	"errors"
	"fmt"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/product"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"
)

var (
	ErrUpdateStockCommandIsNotConstructed = errors.New(
		"UpdateStockCommand must be created via NewUpdateStockCommand constructor",
	)
	ErrStockItemsAreRequired = errs.NewValueIsRequiredError("stock items")
)

// StockItem takes Quantity units of ProductID out of stock.
type StockItem struct {
	ProductID kernel.UUID
	Quantity  int
}

// UpdateStockCommand is a batch of stock decrements applied all-or-nothing.
type UpdateStockCommand struct { //nolint:recvcheck //using for validation
	items []StockItem

	guard guard.ConstructorGuard
}

func NewUpdateStockCommand(items []StockItem) (UpdateStockCommand, error) {
	cmd := UpdateStockCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setItems(items); err != nil {
		return UpdateStockCommand{}, err
	}

	return cmd, nil
}

func (c UpdateStockCommand) Validate() error {
	return c.guard.Validate(ErrUpdateStockCommandIsNotConstructed)
}

func (c UpdateStockCommand) Items() []StockItem {
	return append([]StockItem(nil), c.items...)
}

func (c *UpdateStockCommand) setItems(items []StockItem) error {
	if len(items) == 0 {
		return ErrStockItemsAreRequired
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

	c.items = append([]StockItem(nil), items...)
	return nil
}
