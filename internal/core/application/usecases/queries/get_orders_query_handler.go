package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetOrdersQueryHandler reads a buyer's order history straight from
// the database. Items are fetched in one extra round trip and stitched
// onto their orders in memory.
type GetOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersQueryHandler creates a handler for order history
// queries.
func NewGetOrdersQueryHandler(db *gorm.DB) GetOrdersQueryHandler {
	return GetOrdersQueryHandler{db: db}
}

// Handle executes the history query, newest orders first.
func (h GetOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersQuery,
) ([]GetOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	statuses := []string{"pending", "confirmed", "preparing", "ready", "on_delivery"}
	if query.Scope() == ScopePast {
		statuses = []string{"delivered", "cancelled"}
	}

	orders := make([]GetOrdersQueryResponse, 0)
	index := make(map[string]int)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_number,
			status,
			seller_id,
			subtotal,
			delivery_fee,
			discount_amount,
			total_amount,
			created_at
		FROM orders
		WHERE user_id = ? AND status IN ?
		ORDER BY created_at DESC
	`, query.UserID().String(), statuses).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetOrdersQueryResponse
		err = rows.Scan(
			&resp.ID,
			&resp.OrderNumber,
			&resp.Status,
			&resp.SellerID,
			&resp.Subtotal,
			&resp.DeliveryFee,
			&resp.DiscountAmount,
			&resp.TotalAmount,
			&resp.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		resp.Items = make([]OrderItemResponse, 0)
		index[resp.ID] = len(orders)
		orders = append(orders, resp)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	if len(orders) == 0 {
		return orders, nil
	}

	orderIDs := make([]string, 0, len(orders))
	for _, resp := range orders {
		orderIDs = append(orderIDs, resp.ID)
	}

	itemRows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			order_id,
			meal_name,
			price,
			quantity,
			subtotal
		FROM order_items
		WHERE order_id IN ?
		ORDER BY order_id
	`, orderIDs).Rows()
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var orderID string
		var item OrderItemResponse
		err = itemRows.Scan(&orderID, &item.MealName, &item.Price, &item.Quantity, &item.Subtotal)
		if err != nil {
			return nil, err
		}
		if i, ok := index[orderID]; ok {
			orders[i].Items = append(orders[i].Items, item)
		}
	}
	if err = itemRows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
