package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetCourierEarningsQueryHandler sums delivered-task payouts for one
// courier. Only the actual payout counts; a delivered task always has
// one by the time completion commits.
type GetCourierEarningsQueryHandler struct {
	db *gorm.DB
}

// NewGetCourierEarningsQueryHandler creates a handler for earnings
// summaries.
func NewGetCourierEarningsQueryHandler(db *gorm.DB) GetCourierEarningsQueryHandler {
	return GetCourierEarningsQueryHandler{db: db}
}

// Handle executes the earnings aggregate. A courier with no delivered
// tasks gets a zero summary, not an error.
func (h GetCourierEarningsQueryHandler) Handle(
	ctx context.Context,
	query GetCourierEarningsQuery,
) (GetCourierEarningsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCourierEarningsQueryResponse{}, err
	}

	var resp GetCourierEarningsQueryResponse
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			COALESCE(SUM(actual_payout), 0),
			COUNT(*)
		FROM tasks
		WHERE courier_id = ? AND status = 'delivered'
	`, query.CourierID().String()).Row()

	if err := row.Scan(&resp.TotalEarnings, &resp.DeliveredTasks); err != nil {
		return GetCourierEarningsQueryResponse{}, err
	}

	return resp, nil
}
