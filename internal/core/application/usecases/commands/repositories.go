// Package commands contains the write operations of the ordering
// engine. Every command follows the same shape: a validated command
// object, a handler owning a unit-of-work factory, and an all-or-
// nothing transaction around every multi-row write. Side effects that
// leave the process (events) are dispatched only after commit.
package commands

import (
	"context"

	"fooddelivery/internal/core/ports"
)

// Narrow unit-of-work interfaces per command family. Handlers depend
// only on the repositories they actually touch, which keeps the mocks
// in tests small.
type (
	// TxManager handles the transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// CheckoutUoW covers order intake: catalogs for pricing, the order
	// repository for the atomic order+items write, coupons for
	// redemption in the same transaction.
	CheckoutUoW interface {
		TxManager
		OrderRepository() ports.OrderRepository
		CouponRepository() ports.CouponRepository
		MealCatalog() ports.MealCatalog
		SellerCatalog() ports.SellerCatalog
		AddressBook() ports.AddressBook
	}

	// CheckoutUoWFactory creates checkout units of work.
	CheckoutUoWFactory interface {
		Create() CheckoutUoW
	}

	// OrderUoW covers status transitions on a single order.
	OrderUoW interface {
		TxManager
		OrderRepository() ports.OrderRepository
	}

	// OrderUoWFactory creates order units of work.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// DispatchUoW covers the claim: the conditional order update, the
	// task row created in the same transaction, courier eligibility
	// and the catalogs supplying task snapshots.
	DispatchUoW interface {
		TxManager
		OrderRepository() ports.OrderRepository
		CourierRepository() ports.CourierRepository
		TaskRepository() ports.TaskRepository
		SellerCatalog() ports.SellerCatalog
		AddressBook() ports.AddressBook
	}

	// DispatchUoWFactory creates dispatch units of work.
	DispatchUoWFactory interface {
		Create() DispatchUoW
	}

	// TaskUoW covers the task sub-lifecycle, including the order flip
	// to delivered on completion.
	TaskUoW interface {
		TxManager
		TaskRepository() ports.TaskRepository
		OrderRepository() ports.OrderRepository
	}

	// TaskUoWFactory creates task units of work.
	TaskUoWFactory interface {
		Create() TaskUoW
	}

	// CourierUoW covers courier registration and availability.
	CourierUoW interface {
		TxManager
		CourierRepository() ports.CourierRepository
	}

	// CourierUoWFactory creates courier units of work.
	CourierUoWFactory interface {
		Create() CourierUoW
	}
)
