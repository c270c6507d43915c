// Package courierrepo persists couriers.
package courierrepo

import (
	"fooddelivery/internal/core/domain/model/courier"
	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CourierDTO is the database representation of a courier. Availability
// is the only mutable column.
type CourierDTO struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name   string    `gorm:"size:255"`
	Status string    `gorm:"size:16;index"`
}

// TableName maps the DTO to the "couriers" table.
func (CourierDTO) TableName() string {
	return "couriers"
}

func fromDomain(aggregate *courier.Courier) CourierDTO {
	return CourierDTO{
		ID:     aggregate.ID().Bytes(),
		Name:   aggregate.Name(),
		Status: string(aggregate.Status()),
	}
}

func toDomain(dto CourierDTO) (*courier.Courier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := courier.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return courier.RestoreCourier(id, dto.Name, status)
}
