package commands

import (
	"context"
	"time"

	"warehouse/internal/core/domain/services"
)

// UpdateDeliveryCommandHandler records a driver's delivery outcome.
//
// On a terminal outcome the driver goes back to Idle unless they still hold
// another order Out for Delivery. The count is taken after the order write,
// inside the same transaction, so it already excludes this order.
type UpdateDeliveryCommandHandler struct {
	uowFactory UoWFactory
	dispatcher services.DeliveryDispatcher
}

func NewUpdateDeliveryCommandHandler(uowFactory UoWFactory) UpdateDeliveryCommandHandler {
	return UpdateDeliveryCommandHandler{
		uowFactory: uowFactory,
		dispatcher: services.NewDeliveryDispatcher(),
	}
}

func (h UpdateDeliveryCommandHandler) Handle(ctx context.Context, cmd UpdateDeliveryCommand) error {
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

	driverRepo := uow.DriverRepository()
	orderRepo := uow.OrderRepository()

	d, err := driverRepo.GetOrCreateByUserID(ctx, cmd.DriverUserID(), now)
	if err != nil {
		return err
	}

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	terminal, err := h.dispatcher.ReportDelivery(o, d, cmd.DeliveryStatus(), cmd.Notes(), now)
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if terminal {
		active, err := driverRepo.CountActiveAssignments(ctx, d.ID())
		if err != nil {
			return err
		}
		if h.dispatcher.Release(d, active, now) {
			if err = driverRepo.Update(ctx, d); err != nil {
				return err
			}
		}
	}

	return uow.Commit(ctx)
}
