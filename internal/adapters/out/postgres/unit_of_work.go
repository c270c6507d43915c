// Package postgres provides the GORM-based unit of work and wires the
// per-table repositories onto a shared transaction.
//
// Every command handler runs this way:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	// repository operations share uow's transaction
//
//	return uow.Commit(ctx)
//
// Repositories obtained before Begin use the bare connection; after
// Begin they all share the transaction, which is what makes the
// claim-plus-task write and the order-plus-redemption write atomic.
package postgres

import (
	"context"

	"fooddelivery/internal/adapters/out/postgres/catalogrepo"
	"fooddelivery/internal/adapters/out/postgres/couponrepo"
	"fooddelivery/internal/adapters/out/postgres/courierrepo"
	"fooddelivery/internal/adapters/out/postgres/orderrepo"
	"fooddelivery/internal/adapters/out/postgres/taskrepo"
	"fooddelivery/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates a fresh unit of work per business
// operation so concurrent requests never share transaction state.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory bound to the given
// connection.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

// GormUnitOfWork implements ports.UnitOfWork on a GORM transaction.
type GormUnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB
}

// Begin starts the transaction. Calling Begin on an already-begun unit
// of work is a no-op rather than a nested transaction.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	return uow.tx.Error
}

// Commit makes all changes permanent and spends the unit of work.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards all changes. After a successful commit it returns
// gorm.ErrInvalidTransaction, which deferred cleanup ignores.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// OrderRepository returns the order repository on the current
// transaction.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn())
}

// CourierRepository returns the courier repository on the current
// transaction.
func (uow *GormUnitOfWork) CourierRepository() ports.CourierRepository {
	return courierrepo.NewGormCourierRepository(uow.conn())
}

// TaskRepository returns the task repository on the current
// transaction.
func (uow *GormUnitOfWork) TaskRepository() ports.TaskRepository {
	return taskrepo.NewGormTaskRepository(uow.conn())
}

// CouponRepository returns the coupon repository on the current
// transaction.
func (uow *GormUnitOfWork) CouponRepository() ports.CouponRepository {
	return couponrepo.NewGormCouponRepository(uow.conn())
}

// MealCatalog returns the meal catalog on the current transaction.
func (uow *GormUnitOfWork) MealCatalog() ports.MealCatalog {
	return catalogrepo.NewGormMealCatalog(uow.conn())
}

// SellerCatalog returns the seller catalog on the current transaction.
func (uow *GormUnitOfWork) SellerCatalog() ports.SellerCatalog {
	return catalogrepo.NewGormSellerCatalog(uow.conn())
}

// AddressBook returns the address book on the current transaction.
func (uow *GormUnitOfWork) AddressBook() ports.AddressBook {
	return catalogrepo.NewGormAddressBook(uow.conn())
}
