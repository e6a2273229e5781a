package commands_test

import (
	"testing"

	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewSetCartItemCommand(t *testing.T) {
	_, err := commands.NewSetCartItemCommand(kernel.NewUUID(), kernel.NewUUID(), -1)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = commands.NewSetCartItemCommand(kernel.UUID{}, kernel.NewUUID(), 1)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestSetCartItemCommandHandler_Handle_ChecksProduct(t *testing.T) {
	ctx := t.Context()
	p := newProduct(t, "Crate", "10.00", 3)
	customerID := kernel.NewUUID()
	cmd, err := commands.NewSetCartItemCommand(customerID, p.ID(), 2)
	require.NoError(t, err)

	productRepo := new(MockProductRepository)
	carts := new(MockCartRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ProductRepository").Return(productRepo).Once(),
		productRepo.On("Get", ctx, p.ID()).Return(p, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
		carts.On("SetItem", ctx, customerID, p.ID(), 2).Return(nil).Once(),
	)

	factory := new(MockProductUoWFactory)
	factory.On("Create").Return(uow).Once()

	err = commands.NewSetCartItemCommandHandler(factory, carts).Handle(ctx, cmd)

	require.NoError(t, err)
	carts.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestSetCartItemCommandHandler_Handle_UnknownProduct(t *testing.T) {
	ctx := t.Context()
	productID := kernel.NewUUID()
	cmd, err := commands.NewSetCartItemCommand(kernel.NewUUID(), productID, 1)
	require.NoError(t, err)

	productRepo := new(MockProductRepository)
	carts := new(MockCartRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ProductRepository").Return(productRepo).Once()
	productRepo.On("Get", ctx, productID).Return(nil, errs.NewObjectNotFoundError("product", productID.String())).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockProductUoWFactory)
	factory.On("Create").Return(uow).Once()

	err = commands.NewSetCartItemCommandHandler(factory, carts).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	carts.AssertNotCalled(t, "SetItem", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSetCartItemCommandHandler_Handle_RemoveSkipsLookup(t *testing.T) {
	ctx := t.Context()
	customerID, productID := kernel.NewUUID(), kernel.NewUUID()
	cmd, err := commands.NewSetCartItemCommand(customerID, productID, 0)
	require.NoError(t, err)

	carts := new(MockCartRepository)
	carts.On("SetItem", ctx, customerID, productID, 0).Return(nil).Once()
	factory := new(MockProductUoWFactory)

	err = commands.NewSetCartItemCommandHandler(factory, carts).Handle(ctx, cmd)

	require.NoError(t, err)
	factory.AssertNotCalled(t, "Create")
	carts.AssertExpectations(t)
}

func TestClearCartCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()
	cmd, err := commands.NewClearCartCommand(customerID)
	require.NoError(t, err)

	carts := new(MockCartRepository)
	carts.On("Clear", ctx, customerID).Return(nil).Once()

	err = commands.NewClearCartCommandHandler(carts).Handle(ctx, cmd)

	require.NoError(t, err)
	carts.AssertExpectations(t)

	require.ErrorIs(t,
		commands.NewClearCartCommandHandler(carts).Handle(ctx, commands.ClearCartCommand{}),
		commands.ErrClearCartCommandIsNotConstructed,
	)
}
