package queries

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrGetCourierEarningsQueryIsNotConstructed = errors.New(
	"GetCourierEarningsQuery must be created via NewGetCourierEarningsQuery constructor",
)

// GetCourierEarningsQuery aggregates a courier's completed deliveries
// into a payout summary.
type GetCourierEarningsQuery struct {
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetCourierEarningsQuery creates an earnings summary query.
func NewGetCourierEarningsQuery(courierID kernel.UUID) (GetCourierEarningsQuery, error) {
	if err := courierID.Validate(); err != nil {
		return GetCourierEarningsQuery{}, err
	}

	return GetCourierEarningsQuery{
		courierID: courierID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// CourierID returns the courier whose earnings are summed.
func (q GetCourierEarningsQuery) CourierID() kernel.UUID { return q.courierID }

// Validate ensures the query was created through the constructor.
func (q GetCourierEarningsQuery) Validate() error {
	return q.guard.Validate(ErrGetCourierEarningsQueryIsNotConstructed)
}

// GetCourierEarningsQueryResponse is the payout summary over all
// delivered tasks.
type GetCourierEarningsQueryResponse struct {
	TotalEarnings  float64 `json:"total_earnings"`
	DeliveredTasks int     `json:"delivered_tasks"`
}
