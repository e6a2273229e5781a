package commands_test

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/core/domain/model/product"
	"warehouse/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCheckoutCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	crate := newProductWithID(t, productID2, "Crate", "100.00", 5)
	wrap := newProductWithID(t, productID1, "Pallet wrap", "12.50", 10)
	customerID := kernel.NewUUID()

	cmd, err := commands.NewCheckoutCommand(kernel.NewUUID(), customerID, "Ann Lee", []commands.CheckoutItem{
		{ProductID: crate.ID(), Quantity: 1},
		{ProductID: wrap.ID(), Quantity: 2},
	}, newShipping(t))
	require.NoError(t, err)

	productRepo := new(MockProductRepository)
	orderRepo := new(MockOrderRepository)
	carts := new(MockCartRepository)
	uow := new(MockUoW)

	var saved *order.Order
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ProductRepository").Return(productRepo).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		productRepo.On("DecreaseStock", ctx, wrap.ID(), 2).Return(nil).Once(),
		productRepo.On("Get", ctx, wrap.ID()).Return(wrap, nil).Once(),
		productRepo.On("DecreaseStock", ctx, crate.ID(), 1).Return(nil).Once(),
		productRepo.On("Get", ctx, crate.ID()).Return(crate, nil).Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Run(func(args mock.Arguments) {
			saved = args.Get(1).(*order.Order)
		}).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		carts.On("Clear", ctx, customerID).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCheckoutUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCheckoutCommandHandler(factory, carts, discardLogger())
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.True(t, saved.ID().IsEqual(cmd.OrderID()))
	assert.Equal(t, order.Pending, saved.Status())
	require.Len(t, saved.Items(), 2)
	assert.Equal(t, "Crate", saved.Items()[0].Name(), "items keep the requested order")
	assert.Equal(t, "Pallet wrap", saved.Items()[1].Name())
	assert.True(t, saved.Billing().Subtotal().Decimal.Equal(decimal.RequireFromString("125.00")))
	productRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	carts.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCheckoutCommandHandler_Handle_MergesRepeatedProducts(t *testing.T) {
	ctx := t.Context()
	crate := newProductWithID(t, productID1, "Crate", "100.00", 5)

	cmd, err := commands.NewCheckoutCommand(kernel.NewUUID(), kernel.NewUUID(), "Ann Lee", []commands.CheckoutItem{
		{ProductID: crate.ID(), Quantity: 1},
		{ProductID: crate.ID(), Quantity: 2},
	}, newShipping(t))
	require.NoError(t, err)

	productRepo := new(MockProductRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	var saved *order.Order
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ProductRepository").Return(productRepo).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		productRepo.On("DecreaseStock", ctx, crate.ID(), 3).Return(nil).Once(),
		productRepo.On("Get", ctx, crate.ID()).Return(crate, nil).Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Run(func(args mock.Arguments) {
			saved = args.Get(1).(*order.Order)
		}).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCheckoutUoWFactory)
	factory.On("Create").Return(uow).Once()

	err = commands.NewCheckoutCommandHandler(factory, nil, discardLogger()).Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, saved)
	require.Len(t, saved.Items(), 1)
	assert.Equal(t, 3, saved.Items()[0].Quantity())
	productRepo.AssertNumberOfCalls(t, "DecreaseStock", 1)
	uow.AssertExpectations(t)
}

func TestCheckoutCommandHandler_Handle_InsufficientStockAbortsEverything(t *testing.T) {
	ctx := t.Context()
	crate := newProductWithID(t, productID1, "Crate", "100.00", 5)
	scarceID := productID2

	cmd, err := commands.NewCheckoutCommand(kernel.NewUUID(), kernel.NewUUID(), "Ann Lee", []commands.CheckoutItem{
		{ProductID: crate.ID(), Quantity: 1},
		{ProductID: scarceID, Quantity: 3},
	}, newShipping(t))
	require.NoError(t, err)

	productRepo := new(MockProductRepository)
	orderRepo := new(MockOrderRepository)
	carts := new(MockCartRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ProductRepository").Return(productRepo).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		productRepo.On("DecreaseStock", ctx, crate.ID(), 1).Return(nil).Once(),
		productRepo.On("Get", ctx, crate.ID()).Return(crate, nil).Once(),
		productRepo.On("DecreaseStock", ctx, scarceID, 3).
			Return(product.NewInsufficientStockError("Pallet", 1, 3)).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCheckoutUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCheckoutCommandHandler(factory, carts, discardLogger())
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, product.ErrInsufficientStock)
	assert.Equal(t, errs.KindInvalidState, errs.KindOf(err))
	orderRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	carts.AssertNotCalled(t, "Clear", mock.Anything, mock.Anything)
}

func TestCheckoutCommandHandler_Handle_UnknownProduct(t *testing.T) {
	ctx := t.Context()
	missingID := kernel.NewUUID()
	cmd, err := commands.NewCheckoutCommand(kernel.NewUUID(), kernel.NewUUID(), "Ann Lee",
		[]commands.CheckoutItem{{ProductID: missingID, Quantity: 1}}, newShipping(t))
	require.NoError(t, err)

	productRepo := new(MockProductRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ProductRepository").Return(productRepo).Once(),
		uow.On("OrderRepository").Return(new(MockOrderRepository)).Once(),
		productRepo.On("DecreaseStock", ctx, missingID, 1).
			Return(errs.NewObjectNotFoundError("product", missingID.String())).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCheckoutUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCheckoutCommandHandler(factory, nil, discardLogger())
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.Contains(t, err.Error(), missingID.String())
}

func TestCheckoutCommandHandler_Handle_CartClearFailureIsNotFatal(t *testing.T) {
	ctx := t.Context()
	crate := newProduct(t, "Crate", "100.00", 5)
	customerID := kernel.NewUUID()
	cmd, err := commands.NewCheckoutCommand(kernel.NewUUID(), customerID, "Ann Lee",
		[]commands.CheckoutItem{{ProductID: crate.ID(), Quantity: 1}}, newShipping(t))
	require.NoError(t, err)

	productRepo := new(MockProductRepository)
	orderRepo := new(MockOrderRepository)
	carts := new(MockCartRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ProductRepository").Return(productRepo).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	productRepo.On("DecreaseStock", ctx, crate.ID(), 1).Return(nil).Once()
	productRepo.On("Get", ctx, crate.ID()).Return(crate, nil).Once()
	orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	carts.On("Clear", ctx, customerID).Return(errors.New("mongo unavailable")).Once()

	factory := new(MockCheckoutUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCheckoutCommandHandler(factory, carts, discardLogger())
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	carts.AssertExpectations(t)
}

func TestCheckoutCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	crate := newProduct(t, "Crate", "100.00", 5)
	cmd, err := commands.NewCheckoutCommand(kernel.NewUUID(), kernel.NewUUID(), "Ann Lee",
		[]commands.CheckoutItem{{ProductID: crate.ID(), Quantity: 1}}, newShipping(t))
	require.NoError(t, err)

	productRepo := new(MockProductRepository)
	orderRepo := new(MockOrderRepository)
	carts := new(MockCartRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ProductRepository").Return(productRepo).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	productRepo.On("DecreaseStock", ctx, crate.ID(), 1).Return(nil).Once()
	productRepo.On("Get", ctx, crate.ID()).Return(crate, nil).Once()
	orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once()
	uow.On("Commit", ctx).Return(errors.New("commit failed")).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockCheckoutUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCheckoutCommandHandler(factory, carts, discardLogger())
	err = handler.Handle(ctx, cmd)

	require.EqualError(t, err, "commit failed")
	carts.AssertNotCalled(t, "Clear", mock.Anything, mock.Anything)
}

func TestCheckoutCommandHandler_Handle_ValidationError(t *testing.T) {
	factory := new(MockCheckoutUoWFactory)
	handler := commands.NewCheckoutCommandHandler(factory, nil, discardLogger())

	err := handler.Handle(t.Context(), commands.CheckoutCommand{})

	require.ErrorIs(t, err, commands.ErrCheckoutCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
