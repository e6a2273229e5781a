package commands

import (
	"context"
	"time"

	"warehouse/internal/core/domain/services"
)

// ClaimOrderCommandHandler assigns an order to the calling driver.
//
// The driver row is resolved (and locked) before the order is loaded, the
// same order every driver-and-order transaction uses. The order write is a
// compare-and-swap on its version, so of two concurrent claims exactly one
// commits and the other fails with a ConflictError.
type ClaimOrderCommandHandler struct {
	uowFactory UoWFactory
	dispatcher services.DeliveryDispatcher
}

func NewClaimOrderCommandHandler(uowFactory UoWFactory) ClaimOrderCommandHandler {
	return ClaimOrderCommandHandler{
		uowFactory: uowFactory,
		dispatcher: services.NewDeliveryDispatcher(),
	}
}

func (h ClaimOrderCommandHandler) Handle(ctx context.Context, cmd ClaimOrderCommand) error {
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

	if err = h.dispatcher.Claim(o, d, now); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if err = driverRepo.Update(ctx, d); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
