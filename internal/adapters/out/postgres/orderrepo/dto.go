// Package orderrepo persists order aggregates. An order row and its
// item snapshot rows are always written together; items are immutable
// after checkout and never updated.
package orderrepo

import (
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the database representation of an order aggregate. The
// partial index-friendly combination of status and courier_id is what
// the claim update races on.
type OrderDTO struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderNumber    string     `gorm:"uniqueIndex;size:32"`
	UserID         uuid.UUID  `gorm:"type:uuid;index"`
	SellerID       uuid.UUID  `gorm:"type:uuid;index"`
	CourierID      *uuid.UUID `gorm:"type:uuid;index"`
	AddressID      uuid.UUID  `gorm:"type:uuid"`
	Status         string     `gorm:"size:16;index"`
	PaymentMethod  string     `gorm:"size:32"`
	Subtotal       float64
	DeliveryFee    float64
	DiscountAmount float64
	TotalAmount    float64
	CreatedAt      time.Time `gorm:"index"`
	UpdatedAt      time.Time
	Items          []OrderItemDTO `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName maps the DTO to the "orders" table.
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO is one immutable priced line on an order.
type OrderItemDTO struct {
	ID       uint      `gorm:"primaryKey;autoIncrement"`
	OrderID  uuid.UUID `gorm:"type:uuid;index"`
	MealID   uuid.UUID `gorm:"type:uuid"`
	MealName string    `gorm:"size:255"`
	Price    float64
	Quantity int
	Subtotal float64
}

// TableName maps the DTO to the "order_items" table.
func (OrderItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	var courierID *uuid.UUID
	if id := aggregate.CourierID(); id != nil {
		raw := id.Bytes()
		courierID = &raw
	}

	items := make([]OrderItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, OrderItemDTO{
			OrderID:  aggregate.ID().Bytes(),
			MealID:   item.MealID().Bytes(),
			MealName: item.MealName(),
			Price:    item.Price(),
			Quantity: item.Quantity(),
			Subtotal: item.Subtotal(),
		})
	}

	return OrderDTO{
		ID:             aggregate.ID().Bytes(),
		OrderNumber:    aggregate.OrderNumber(),
		UserID:         aggregate.UserID().Bytes(),
		SellerID:       aggregate.SellerID().Bytes(),
		CourierID:      courierID,
		AddressID:      aggregate.AddressID().Bytes(),
		Status:         aggregate.Status().String(),
		PaymentMethod:  aggregate.PaymentMethod(),
		Subtotal:       aggregate.Subtotal(),
		DeliveryFee:    aggregate.DeliveryFee(),
		DiscountAmount: aggregate.DiscountAmount(),
		TotalAmount:    aggregate.TotalAmount(),
		CreatedAt:      aggregate.CreatedAt(),
		UpdatedAt:      aggregate.UpdatedAt(),
		Items:          items,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}
	sellerID, err := kernel.UUIDFromBytes(dto.SellerID[:])
	if err != nil {
		return nil, err
	}
	addressID, err := kernel.UUIDFromBytes(dto.AddressID[:])
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, courierErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if courierErr != nil {
			return nil, courierErr
		}
		courierID = &cID
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		mealID, mealErr := kernel.UUIDFromBytes(itemDTO.MealID[:])
		if mealErr != nil {
			return nil, mealErr
		}
		items = append(items, order.RestoreItem(
			mealID, itemDTO.MealName, itemDTO.Price, itemDTO.Quantity, itemDTO.Subtotal,
		))
	}

	return order.RestoreOrder(
		id, dto.OrderNumber, userID, sellerID, courierID, addressID,
		status, dto.PaymentMethod, items,
		dto.Subtotal, dto.DeliveryFee, dto.DiscountAmount, dto.TotalAmount,
		dto.CreatedAt, dto.UpdatedAt,
	)
}
