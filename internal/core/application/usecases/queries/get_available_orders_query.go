package queries

import (
	"errors"
	"time"

	"fooddelivery/internal/pkg/guard"
)

var ErrGetAvailableOrdersQueryIsNotConstructed = errors.New(
	"GetAvailableOrdersQuery must be created via NewGetAvailableOrdersQuery constructor",
)

// availableWindow bounds how old a ready order may be and still show
// up in the courier-facing listing. Matches the dispatch retry window.
const availableWindow = 2 * time.Hour

// GetAvailableOrdersQuery lists ready, unassigned orders for couriers
// browsing work to claim.
type GetAvailableOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAvailableOrdersQuery creates an available-orders query.
func NewGetAvailableOrdersQuery() GetAvailableOrdersQuery {
	return GetAvailableOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetAvailableOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailableOrdersQueryIsNotConstructed)
}

// GetAvailableOrdersQueryResponse is one claimable order as shown to a
// courier: where to pick up, where to deliver, what it pays.
type GetAvailableOrdersQueryResponse struct {
	ID              string    `json:"id"`
	OrderNumber     string    `json:"order_number"`
	PickupAddress   string    `json:"pickup_address"`
	DeliveryAddress string    `json:"delivery_address"`
	EstimatedPayout float64   `json:"estimated_payout"`
	CreatedAt       time.Time `json:"created_at"`
}
