package taskrepo

import (
	"context"
	"errors"

	"fooddelivery/internal/core/domain/model/courier"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormTaskRepository implements ports.TaskRepository using GORM.
type GormTaskRepository struct {
	db *gorm.DB
}

// NewGormTaskRepository creates a new GORM task repository.
func NewGormTaskRepository(db *gorm.DB) *GormTaskRepository {
	return &GormTaskRepository{db: db}
}

// Add saves a freshly created task. A duplicate order reference hits
// the unique index and surfaces as a conflict.
func (r *GormTaskRepository) Add(ctx context.Context, aggregate *courier.Task) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause("task already exists for this order", err)
		}
		return err
	}

	return nil
}

// Update saves task sub-lifecycle changes.
func (r *GormTaskRepository) Update(ctx context.Context, aggregate *courier.Task) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&TaskDTO{}).
		Where("id = ?", dto.ID).
		Select("Status", "PickedUpAt", "DeliveredAt", "ActualPayout", "UpdatedAt").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("task", aggregate.ID().String())
	}

	return nil
}

// Get retrieves a task by ID.
func (r *GormTaskRepository) Get(ctx context.Context, id kernel.UUID) (*courier.Task, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto TaskDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("task", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByOrderID retrieves the unique task for an order.
func (r *GormTaskRepository) GetByOrderID(ctx context.Context, orderID kernel.UUID) (*courier.Task, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto TaskDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_id = ?", orderID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("task for order", orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
