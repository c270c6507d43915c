// Package taskrepo persists delivery tasks. The unique index on
// order_id backs the one-task-per-order invariant at the storage
// level: even a logic bug upstream cannot create a second task row.
package taskrepo

import (
	"time"

	"fooddelivery/internal/core/domain/model/courier"
	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// TaskDTO is the database representation of a delivery task.
type TaskDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID          uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	CourierID        uuid.UUID `gorm:"type:uuid;index"`
	PickupLocation   string    `gorm:"size:512"`
	DeliveryLocation string    `gorm:"size:512"`
	EstimatedPayout  float64
	Status           string `gorm:"size:16;index"`
	PickedUpAt       *time.Time
	DeliveredAt      *time.Time
	ActualPayout     *float64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName maps the DTO to the "tasks" table.
func (TaskDTO) TableName() string {
	return "tasks"
}

func fromDomain(aggregate *courier.Task) TaskDTO {
	return TaskDTO{
		ID:               aggregate.ID().Bytes(),
		OrderID:          aggregate.OrderID().Bytes(),
		CourierID:        aggregate.CourierID().Bytes(),
		PickupLocation:   aggregate.PickupLocation(),
		DeliveryLocation: aggregate.DeliveryLocation(),
		EstimatedPayout:  aggregate.EstimatedPayout(),
		Status:           string(aggregate.Status()),
		PickedUpAt:       aggregate.PickedUpAt(),
		DeliveredAt:      aggregate.DeliveredAt(),
		ActualPayout:     aggregate.ActualPayout(),
		CreatedAt:        aggregate.CreatedAt(),
		UpdatedAt:        aggregate.UpdatedAt(),
	}
}

func toDomain(dto TaskDTO) (*courier.Task, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	courierID, err := kernel.UUIDFromBytes(dto.CourierID[:])
	if err != nil {
		return nil, err
	}

	return courier.RestoreTask(
		id, orderID, courierID,
		dto.PickupLocation, dto.DeliveryLocation, dto.EstimatedPayout,
		courier.TaskStatus(dto.Status),
		dto.PickedUpAt, dto.DeliveredAt, dto.ActualPayout,
		dto.CreatedAt, dto.UpdatedAt,
	)
}
