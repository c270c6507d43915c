// Package queries contains the read side of the ordering engine.
// Query handlers bypass the domain aggregates and read the database
// directly; they never mutate anything.
package queries

import (
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrGetOrdersQueryIsNotConstructed = errors.New(
	"GetOrdersQuery must be created via NewGetOrdersQuery constructor",
)

// OrderScope selects which slice of a buyer's history to read.
type OrderScope string

const (
	// ScopeActive covers orders still moving: pending through
	// on_delivery.
	ScopeActive OrderScope = "active"
	// ScopePast covers finished orders: delivered and cancelled.
	ScopePast OrderScope = "past"
)

// GetOrdersQuery retrieves a buyer's orders, split into active and
// past history.
type GetOrdersQuery struct {
	userID kernel.UUID
	scope  OrderScope

	guard guard.ConstructorGuard
}

// NewGetOrdersQuery creates an order history query.
func NewGetOrdersQuery(userID kernel.UUID, scope OrderScope) (GetOrdersQuery, error) {
	if err := userID.Validate(); err != nil {
		return GetOrdersQuery{}, err
	}
	if scope != ScopeActive && scope != ScopePast {
		return GetOrdersQuery{}, errs.NewValueIsInvalidError("scope")
	}

	return GetOrdersQuery{
		userID: userID,
		scope:  scope,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// UserID returns the buyer whose history is read.
func (q GetOrdersQuery) UserID() kernel.UUID { return q.userID }

// Scope returns the history slice.
func (q GetOrdersQuery) Scope() OrderScope { return q.scope }

// Validate ensures the query was created through the constructor.
func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}

// OrderItemResponse is one immutable item snapshot on an order.
type OrderItemResponse struct {
	MealName string  `json:"meal_name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Subtotal float64 `json:"subtotal"`
}

// GetOrdersQueryResponse is one order in the buyer's history with its
// full money breakdown. Identifiers are plain strings; responses go
// straight onto the wire.
type GetOrdersQueryResponse struct {
	ID             string              `json:"id"`
	OrderNumber    string              `json:"order_number"`
	Status         string              `json:"status"`
	SellerID       string              `json:"seller_id"`
	Subtotal       float64             `json:"subtotal"`
	DeliveryFee    float64             `json:"delivery_fee"`
	DiscountAmount float64             `json:"discount_amount"`
	TotalAmount    float64             `json:"total_amount"`
	CreatedAt      time.Time           `json:"created_at"`
	Items          []OrderItemResponse `json:"items"`
}
