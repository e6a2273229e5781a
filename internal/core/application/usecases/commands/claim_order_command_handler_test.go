package commands_test

import (
	"errors"
	"testing"

	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/domain/model/driver"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewClaimOrderCommand(t *testing.T) {
	_, err := commands.NewClaimOrderCommand(kernel.UUID{}, kernel.UUID{})
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	cmd, err := commands.NewClaimOrderCommand(kernel.NewUUID(), kernel.NewUUID())
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())

	require.ErrorIs(t, commands.ClaimOrderCommand{}.Validate(), commands.ErrClaimOrderCommandIsNotConstructed)
}

func TestClaimOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	userID := kernel.NewUUID()
	d := newDriver(t, userID)
	o := newReadyOrder(t)

	cmd, err := commands.NewClaimOrderCommand(o.ID(), userID)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	driverRepo := new(MockDriverRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DriverRepository").Return(driverRepo).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		driverRepo.On("GetOrCreateByUserID", ctx, userID, mock.AnythingOfType("time.Time")).Return(d, nil).Once(),
		orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		orderRepo.On("Update", ctx, o).Return(nil).Once(),
		driverRepo.On("Update", ctx, d).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewClaimOrderCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.OutForDelivery, o.Status())
	assert.True(t, o.IsAssignedTo(d.ID()))
	assert.Equal(t, driver.Assigned, d.Status())
	orderRepo.AssertExpectations(t)
	driverRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestClaimOrderCommandHandler_Handle_Failures(t *testing.T) {
	tests := []struct {
		name      string
		order     func(t *testing.T) *order.Order
		getErr    error
		updateErr error
		wantKind  errs.Kind
		wantWrite bool
	}{
		{
			name:     "order not found",
			getErr:   errs.NewObjectNotFoundError("order", "x"),
			wantKind: errs.KindNotFound,
		},
		{
			name:     "order not ready",
			order:    newPendingOrder,
			wantKind: errs.KindInvalidState,
		},
		{
			name: "already claimed",
			order: func(t *testing.T) *order.Order {
				return newClaimedOrder(t, kernel.NewUUID())
			},
			wantKind: errs.KindConflict,
		},
		{
			name: "order already delivered",
			order: func(t *testing.T) *order.Order {
				driverID := kernel.NewUUID()
				o := newClaimedOrder(t, driverID)
				_, err := o.UpdateDelivery(driverID, order.DeliveryDelivered, "", fixtureTime)
				require.NoError(t, err)
				return o
			},
			wantKind: errs.KindInvalidState,
		},
		{
			name:      "lost the race on write",
			order:     newReadyOrder,
			updateErr: errs.NewConflictError("order", "x"),
			wantKind:  errs.KindConflict,
			wantWrite: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			userID := kernel.NewUUID()
			d := newDriver(t, userID)
			orderID := kernel.NewUUID()
			var o *order.Order
			if tt.order != nil {
				o = tt.order(t)
				orderID = o.ID()
			}

			cmd, err := commands.NewClaimOrderCommand(orderID, userID)
			require.NoError(t, err)

			orderRepo := new(MockOrderRepository)
			driverRepo := new(MockDriverRepository)
			uow := new(MockUoW)

			uow.On("Begin", ctx).Return(nil).Once()
			uow.On("DriverRepository").Return(driverRepo).Once()
			uow.On("OrderRepository").Return(orderRepo).Once()
			driverRepo.On("GetOrCreateByUserID", ctx, userID, mock.AnythingOfType("time.Time")).Return(d, nil).Once()
			if o != nil {
				orderRepo.On("Get", ctx, orderID).Return(o, nil).Once()
			} else {
				orderRepo.On("Get", ctx, orderID).Return(nil, tt.getErr).Once()
			}
			if tt.wantWrite {
				orderRepo.On("Update", ctx, o).Return(tt.updateErr).Once()
			}
			uow.On("Rollback", ctx).Return(nil).Once()

			factory := new(MockUoWFactory)
			factory.On("Create").Return(uow).Once()

			err = commands.NewClaimOrderCommandHandler(factory).Handle(ctx, cmd)

			require.Error(t, err)
			assert.Equal(t, tt.wantKind, errs.KindOf(err))
			driverRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
			uow.AssertNotCalled(t, "Commit", mock.Anything)
			uow.AssertExpectations(t)
		})
	}
}

func TestClaimOrderCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewClaimOrderCommand(kernel.NewUUID(), kernel.NewUUID())
	require.NoError(t, err)

	uow := new(MockUoW)
	factory := new(MockUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	err = commands.NewClaimOrderCommandHandler(factory).Handle(ctx, cmd)

	require.EqualError(t, err, "begin error")
}
