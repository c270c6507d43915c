package queries

import (
	"context"
	"time"

	"fooddelivery/internal/core/domain/model/courier"

	"gorm.io/gorm"
)

// GetAvailableOrdersQueryHandler reads the claimable listing. The
// listing is a snapshot: by the time a courier taps accept, the order
// may already be gone, and the claim path resolves that race.
type GetAvailableOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetAvailableOrdersQueryHandler creates a handler for the
// courier-facing order listing.
func NewGetAvailableOrdersQueryHandler(db *gorm.DB) GetAvailableOrdersQueryHandler {
	return GetAvailableOrdersQueryHandler{db: db}
}

// Handle executes the listing query: ready, unassigned, inside the
// recency window, oldest first so long-waiting orders surface on top.
func (h GetAvailableOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetAvailableOrdersQuery,
) ([]GetAvailableOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	cutoff := time.Now().UTC().Add(-availableWindow)
	available := make([]GetAvailableOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.order_number,
			s.address,
			a.address_text,
			COALESCE(s.delivery_fee, ?),
			o.created_at
		FROM orders o
		JOIN sellers s ON s.id = o.seller_id
		JOIN addresses a ON a.id = o.address_id
		WHERE o.status = 'ready'
		  AND o.courier_id IS NULL
		  AND o.created_at >= ?
		ORDER BY o.created_at ASC
	`, courier.DefaultEstimatedPayout, cutoff).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetAvailableOrdersQueryResponse
		err = rows.Scan(
			&resp.ID,
			&resp.OrderNumber,
			&resp.PickupAddress,
			&resp.DeliveryAddress,
			&resp.EstimatedPayout,
			&resp.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		available = append(available, resp)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return available, nil
}
