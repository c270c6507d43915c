// Package catalogrepo reads the catalog tables the engine does not
// own: meals, sellers and delivery addresses. These rows are written
// by other parts of the platform; the engine only reads them, plus the
// one exception of creating a placeholder default address for a buyer
// who has none.
package catalogrepo

import (
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/ports"

	"github.com/google/uuid"
)

// MealDTO mirrors one menu item row.
type MealDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	SellerID  uuid.UUID `gorm:"type:uuid;index"`
	Name      string    `gorm:"size:255"`
	Price     float64
	Available bool
}

// TableName maps the DTO to the "meals" table.
func (MealDTO) TableName() string {
	return "meals"
}

// SellerDTO mirrors one restaurant row.
type SellerDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"size:255"`
	Address     string    `gorm:"size:512"`
	DeliveryFee *float64
}

// TableName maps the DTO to the "sellers" table.
func (SellerDTO) TableName() string {
	return "sellers"
}

// AddressDTO mirrors one delivery address row.
type AddressDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `gorm:"type:uuid;index"`
	AddressText string    `gorm:"size:512"`
	IsDefault   bool
}

// TableName maps the DTO to the "addresses" table.
func (AddressDTO) TableName() string {
	return "addresses"
}

func mealToPort(dto MealDTO) (ports.Meal, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.Meal{}, err
	}
	sellerID, err := kernel.UUIDFromBytes(dto.SellerID[:])
	if err != nil {
		return ports.Meal{}, err
	}

	return ports.Meal{
		ID:        id,
		SellerID:  sellerID,
		Name:      dto.Name,
		Price:     dto.Price,
		Available: dto.Available,
	}, nil
}

func sellerToPort(dto SellerDTO) (ports.Seller, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.Seller{}, err
	}

	return ports.Seller{
		ID:          id,
		Name:        dto.Name,
		Address:     dto.Address,
		DeliveryFee: dto.DeliveryFee,
	}, nil
}

func addressToPort(dto AddressDTO) (ports.Address, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.Address{}, err
	}
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return ports.Address{}, err
	}

	return ports.Address{
		ID:        id,
		UserID:    userID,
		Text:      dto.AddressText,
		IsDefault: dto.IsDefault,
	}, nil
}
