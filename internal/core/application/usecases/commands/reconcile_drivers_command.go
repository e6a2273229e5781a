package commands

import (
	"errors"

	"warehouse/internal/pkg/guard"
)

var ErrReconcileDriversCommandIsNotConstructed = errors.New(
	"ReconcileDriversCommand must be created via NewReconcileDriversCommand constructor",
)

// ReconcileDriversCommand repairs driver statuses that drifted from the
// orders the drivers actually hold. It is parameterless and issued by the
// reconciliation job.
type ReconcileDriversCommand struct {
	guard guard.ConstructorGuard
}

func NewReconcileDriversCommand() ReconcileDriversCommand {
	return ReconcileDriversCommand{
		guard: guard.NewConstructorGuard(),
	}
}

func (c ReconcileDriversCommand) Validate() error {
	return c.guard.Validate(ErrReconcileDriversCommandIsNotConstructed)
}
