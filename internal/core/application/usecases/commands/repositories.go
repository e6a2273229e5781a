// Package commands contains business operations that modify system state.
// Every handler follows the same shape: validate the command, open a unit of
// work, mutate aggregates through their repositories and commit.
package commands

import (
	"context"

	"warehouse/internal/core/ports"
)

// Unit of Work interfaces narrow ports.UnitOfWork to the repositories a
// handler actually touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	DriverRepoFactory interface {
		DriverRepository() ports.DriverRepository
	}

	ProductRepoFactory interface {
		ProductRepository() ports.ProductRepository
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// ProductUoW manages transactions for catalogue and stock operations.
	ProductUoW interface {
		TxManager
		ProductRepoFactory
	}

	ProductUoWFactory interface {
		Create() ProductUoW
	}

	// DriverUoW manages transactions that only touch drivers.
	DriverUoW interface {
		TxManager
		DriverRepoFactory
	}

	DriverUoWFactory interface {
		Create() DriverUoW
	}

	// CheckoutUoW spans stock decrements and the new order so that a failing
	// item leaves no trace.
	CheckoutUoW interface {
		TxManager
		OrderRepoFactory
		ProductRepoFactory
	}

	CheckoutUoWFactory interface {
		Create() CheckoutUoW
	}

	// UoW manages transactions across orders and drivers. Used by the claim
	// and delivery workflow, which must change both in one commit.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   d, err := uow.DriverRepository().GetOrCreateByUserID(ctx, userID, now)
	//   o, err := uow.OrderRepository().Get(ctx, orderID)
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		DriverRepoFactory
		OrderRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)
