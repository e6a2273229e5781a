package commands

import (
	"context"
	"time"
)

// ReconcileDriversCommandHandler marks Assigned drivers without an active
// order Idle, and Idle drivers holding one Assigned. Mismatched rows are
// locked for the transaction, so a concurrent claim waits for the repair.
type ReconcileDriversCommandHandler struct {
	uowFactory DriverUoWFactory
}

func NewReconcileDriversCommandHandler(uowFactory DriverUoWFactory) ReconcileDriversCommandHandler {
	return ReconcileDriversCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns the number of drivers whose status was changed.
func (h ReconcileDriversCommandHandler) Handle(ctx context.Context, cmd ReconcileDriversCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	driverRepo := uow.DriverRepository()

	drivers, err := driverRepo.ListMismatched(ctx)
	if err != nil {
		return 0, err
	}

	repaired := 0
	for _, d := range drivers {
		active, err := driverRepo.CountActiveAssignments(ctx, d.ID())
		if err != nil {
			return 0, err
		}
		if !d.SyncWithAssignments(active > 0, now) {
			continue
		}
		if err = driverRepo.Update(ctx, d); err != nil {
			return 0, err
		}
		repaired++
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return repaired, nil
}
