package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per request/command so
// concurrent operations stay isolated.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Every cross-row
// invariant in the engine — order plus items, claim plus task, coupon
// decision plus redemption — executes inside one of these. Repositories
// obtained from an active unit of work share its transaction.
type UnitOfWork interface {
	// Begin starts the database transaction.
	Begin(ctx context.Context) error

	// Commit makes all changes permanent. After commit the unit of
	// work is spent.
	Commit(ctx context.Context) error

	// Rollback discards all changes. Safe to defer after Begin; a
	// rollback after a successful commit is a no-op error.
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	CourierRepository() CourierRepository
	TaskRepository() TaskRepository
	CouponRepository() CouponRepository
	MealCatalog() MealCatalog
	SellerCatalog() SellerCatalog
	AddressBook() AddressBook
}
