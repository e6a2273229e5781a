package commands

import (
	"context"
	"log/slog"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/core/domain/model/product"
	"warehouse/internal/core/ports"
)

// CheckoutCommandHandler creates orders from checkout requests.
//
// Repeated products are merged and stock is decremented with a conditional
// update in product id order. The order is inserted in the same transaction,
// so a missing product or short stock on any line leaves stock and orders
// untouched. The customer's cart is cleared only after the commit; a
// failure there is logged and does not fail the checkout.
type CheckoutCommandHandler struct {
	uowFactory CheckoutUoWFactory
	carts      ports.CartRepository
	logger     *slog.Logger
}

// NewCheckoutCommandHandler creates the handler. carts may be nil when no
// cart store is configured.
func NewCheckoutCommandHandler(
	uowFactory CheckoutUoWFactory,
	carts ports.CartRepository,
	logger *slog.Logger,
) CheckoutCommandHandler {
	return CheckoutCommandHandler{
		uowFactory: uowFactory,
		carts:      carts,
		logger:     logger.With("component", "checkout"),
	}
}

func (h CheckoutCommandHandler) Handle(ctx context.Context, cmd CheckoutCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	productRepo := uow.ProductRepository()
	orderRepo := uow.OrderRepository()

	lines := checkoutStockItems(cmd.Items())
	products := make(map[kernel.UUID]*product.Product, len(lines))
	for _, line := range inLockOrder(lines) {
		if err := productRepo.DecreaseStock(ctx, line.ProductID, line.Quantity); err != nil {
			return err
		}

		p, err := productRepo.Get(ctx, line.ProductID)
		if err != nil {
			return err
		}
		products[line.ProductID] = p
	}

	items := make([]order.Item, 0, len(lines))
	for _, line := range lines {
		p := products[line.ProductID]
		item, err := order.NewItem(p.ID(), p.Name(), line.Quantity, p.Price())
		if err != nil {
			return err
		}
		items = append(items, item)
	}

	o, err := order.NewOrder(cmd.OrderID(), cmd.CustomerID(), cmd.CustomerName(), items, cmd.Shipping(), now)
	if err != nil {
		return err
	}

	if err = orderRepo.Add(ctx, o); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.clearCart(ctx, cmd)
	return nil
}

func (h CheckoutCommandHandler) clearCart(ctx context.Context, cmd CheckoutCommand) {
	if h.carts == nil {
		return
	}
	if err := h.carts.Clear(ctx, cmd.CustomerID()); err != nil {
		h.logger.WarnContext(ctx, "failed to clear cart after checkout",
			"customer_id", cmd.CustomerID().String(),
			"order_id", cmd.OrderID().String(),
			"error", err,
		)
	}
}

func checkoutStockItems(items []CheckoutItem) []StockItem {
	stock := make([]StockItem, 0, len(items))
	for _, item := range items {
		stock = append(stock, StockItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return mergeStockItems(stock)
}
