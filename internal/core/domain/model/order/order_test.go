package order_test

import (
	"math/rand"
	"testing"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustItem(t *testing.T, name string, price float64, qty int) order.Item {
	t.Helper()
	item, err := order.NewItem(kernel.NewUUID(), name, price, qty)
	require.NoError(t, err)
	return item
}

func newTestOrder(t *testing.T, items []order.Item, deliveryFee, discount float64) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(),
		"ORD-20250901120000-0042",
		kernel.NewUUID(),
		kernel.NewUUID(),
		kernel.NewUUID(),
		"card",
		items,
		deliveryFee,
		discount,
		time.Now(),
	)
	require.NoError(t, err)
	return o
}

func TestNewItem(t *testing.T) {
	t.Run("snapshots_price_and_computes_subtotal", func(t *testing.T) {
		item, err := order.NewItem(kernel.NewUUID(), "Pad Thai", 110.00, 2)

		require.NoError(t, err)
		assert.Equal(t, "Pad Thai", item.MealName())
		assert.InDelta(t, 110.00, item.Price(), 0.001)
		assert.InDelta(t, 220.00, item.Subtotal(), 0.001)
	})

	t.Run("rejects_zero_quantity", func(t *testing.T) {
		_, err := order.NewItem(kernel.NewUUID(), "Soup", 60.00, 0)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects_negative_price", func(t *testing.T) {
		_, err := order.NewItem(kernel.NewUUID(), "Soup", -1, 1)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects_missing_name", func(t *testing.T) {
		_, err := order.NewItem(kernel.NewUUID(), "", 5, 1)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestNewOrder(t *testing.T) {
	t.Run("reference_cart_prices_to_295", func(t *testing.T) {
		// Two of meal at 110.00 plus one at 60.00, fee 15.00, no coupon.
		items := []order.Item{
			mustItem(t, "Green Curry", 110.00, 2),
			mustItem(t, "Spring Rolls", 60.00, 1),
		}

		o := newTestOrder(t, items, 15.00, 0)

		assert.InDelta(t, 280.00, o.Subtotal(), 0.001)
		assert.InDelta(t, 15.00, o.DeliveryFee(), 0.001)
		assert.InDelta(t, 0.0, o.DiscountAmount(), 0.001)
		assert.InDelta(t, 295.00, o.TotalAmount(), 0.001)
		assert.Equal(t, order.StatusPending, o.Status())
		assert.Nil(t, o.CourierID())
	})

	t.Run("subtotal_is_sum_of_item_subtotals", func(t *testing.T) {
		items := []order.Item{
			mustItem(t, "A", 9.99, 3),
			mustItem(t, "B", 0.01, 7),
		}

		o := newTestOrder(t, items, 0, 0)

		sum := 0.0
		for _, item := range o.Items() {
			sum += item.Subtotal()
		}
		assert.InDelta(t, sum, o.Subtotal(), 0.01)
	})

	t.Run("total_conserves_money_with_discount", func(t *testing.T) {
		items := []order.Item{mustItem(t, "A", 100.00, 1)}

		o := newTestOrder(t, items, 10.00, 20.00)

		assert.InDelta(t, o.Subtotal()+o.DeliveryFee()-o.DiscountAmount(), o.TotalAmount(), 0.001)
		assert.GreaterOrEqual(t, o.TotalAmount(), 0.0)
	})

	t.Run("rejects_discount_exceeding_subtotal", func(t *testing.T) {
		items := []order.Item{mustItem(t, "A", 10.00, 1)}

		_, err := order.NewOrder(
			kernel.NewUUID(), "ORD-1", kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			"cash", items, 5.00, 11.00, time.Now(),
		)

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects_empty_cart", func(t *testing.T) {
		_, err := order.NewOrder(
			kernel.NewUUID(), "ORD-1", kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			"cash", nil, 5.00, 0, time.Now(),
		)

		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects_missing_payment_method", func(t *testing.T) {
		items := []order.Item{mustItem(t, "A", 10.00, 1)}

		_, err := order.NewOrder(
			kernel.NewUUID(), "ORD-1", kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			"", items, 5.00, 0, time.Now(),
		)

		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("zero_value_is_not_constructed", func(t *testing.T) {
		var o order.Order
		assert.Equal(t, order.ErrOrderIsNotConstructed, o.Validate())
	})

	t.Run("nil_order_is_not_constructed", func(t *testing.T) {
		var o *order.Order
		assert.Equal(t, order.ErrOrderIsNotConstructed, o.Validate())
	})
}

func TestOrder_ChangeStatusBy(t *testing.T) {
	items := func() []order.Item {
		return []order.Item{mustItem(t, "A", 10.00, 1)}
	}
	now := time.Now()

	sellerOrder := func(t *testing.T) (*order.Order, kernel.UUID) {
		o := newTestOrder(t, items(), 5, 0)
		return o, o.SellerID()
	}

	t.Run("seller_drives_through_ready", func(t *testing.T) {
		o, sellerID := sellerOrder(t)

		require.NoError(t, o.ChangeStatusBy(order.RoleSeller, sellerID, order.StatusConfirmed, now))
		require.NoError(t, o.ChangeStatusBy(order.RoleSeller, sellerID, order.StatusPreparing, now))
		require.NoError(t, o.ChangeStatusBy(order.RoleSeller, sellerID, order.StatusReady, now))
		assert.Equal(t, order.StatusReady, o.Status())
		assert.True(t, o.IsClaimable())
	})

	t.Run("other_seller_is_rejected", func(t *testing.T) {
		o, _ := sellerOrder(t)

		err := o.ChangeStatusBy(order.RoleSeller, kernel.NewUUID(), order.StatusConfirmed, now)

		assert.ErrorIs(t, err, errs.ErrNotAuthorized)
		assert.Equal(t, order.StatusPending, o.Status())
	})

	t.Run("seller_cannot_skip_to_ready", func(t *testing.T) {
		o, sellerID := sellerOrder(t)

		err := o.ChangeStatusBy(order.RoleSeller, sellerID, order.StatusReady, now)

		assert.ErrorIs(t, err, errs.ErrConflict)
	})

	t.Run("nobody_enters_on_delivery_directly", func(t *testing.T) {
		o, sellerID := sellerOrder(t)
		require.NoError(t, o.ChangeStatusBy(order.RoleSeller, sellerID, order.StatusConfirmed, now))
		require.NoError(t, o.ChangeStatusBy(order.RoleSeller, sellerID, order.StatusPreparing, now))
		require.NoError(t, o.ChangeStatusBy(order.RoleSeller, sellerID, order.StatusReady, now))

		err := o.ChangeStatusBy(order.RoleAdmin, kernel.NewUUID(), order.StatusOnDelivery, now)

		assert.ErrorIs(t, err, errs.ErrNotAuthorized)
	})

	t.Run("buyer_cancels_own_pending_order", func(t *testing.T) {
		o, _ := sellerOrder(t)

		require.NoError(t, o.ChangeStatusBy(order.RoleBuyer, o.UserID(), order.StatusCancelled, now))
		assert.Equal(t, order.StatusCancelled, o.Status())
	})

	t.Run("buyer_cannot_confirm", func(t *testing.T) {
		o, _ := sellerOrder(t)

		err := o.ChangeStatusBy(order.RoleBuyer, o.UserID(), order.StatusConfirmed, now)

		assert.ErrorIs(t, err, errs.ErrNotAuthorized)
	})

	t.Run("courier_completes_own_delivery", func(t *testing.T) {
		o, sellerID := sellerOrder(t)
		courierID := kernel.NewUUID()
		require.NoError(t, o.ChangeStatusBy(order.RoleSeller, sellerID, order.StatusConfirmed, now))
		require.NoError(t, o.ChangeStatusBy(order.RoleSeller, sellerID, order.StatusPreparing, now))
		require.NoError(t, o.ChangeStatusBy(order.RoleSeller, sellerID, order.StatusReady, now))
		require.NoError(t, o.RestoreClaim(courierID, now))

		require.NoError(t, o.ChangeStatusBy(order.RoleCourier, courierID, order.StatusDelivered, now))
		assert.Equal(t, order.StatusDelivered, o.Status())
	})

	t.Run("wrong_courier_cannot_complete", func(t *testing.T) {
		o, sellerID := sellerOrder(t)
		require.NoError(t, o.ChangeStatusBy(order.RoleSeller, sellerID, order.StatusConfirmed, now))
		require.NoError(t, o.ChangeStatusBy(order.RoleSeller, sellerID, order.StatusPreparing, now))
		require.NoError(t, o.ChangeStatusBy(order.RoleSeller, sellerID, order.StatusReady, now))
		require.NoError(t, o.RestoreClaim(kernel.NewUUID(), now))

		err := o.ChangeStatusBy(order.RoleCourier, kernel.NewUUID(), order.StatusDelivered, now)

		assert.ErrorIs(t, err, errs.ErrNotAuthorized)
	})
}

func TestOrder_RestoreClaim(t *testing.T) {
	now := time.Now()

	t.Run("claim_on_ready_order_assigns_courier", func(t *testing.T) {
		o := newTestOrder(t, []order.Item{mustItem(t, "A", 10, 1)}, 5, 0)
		sellerID := o.SellerID()
		require.NoError(t, o.ChangeStatusBy(order.RoleSeller, sellerID, order.StatusConfirmed, now))
		require.NoError(t, o.ChangeStatusBy(order.RoleSeller, sellerID, order.StatusPreparing, now))
		require.NoError(t, o.ChangeStatusBy(order.RoleSeller, sellerID, order.StatusReady, now))

		courierID := kernel.NewUUID()
		require.NoError(t, o.RestoreClaim(courierID, now))

		assert.Equal(t, order.StatusOnDelivery, o.Status())
		require.NotNil(t, o.CourierID())
		assert.True(t, o.CourierID().IsEqual(courierID))
		assert.False(t, o.IsClaimable())
	})

	t.Run("claim_on_pending_order_is_conflict", func(t *testing.T) {
		o := newTestOrder(t, []order.Item{mustItem(t, "A", 10, 1)}, 5, 0)

		err := o.RestoreClaim(kernel.NewUUID(), now)

		assert.ErrorIs(t, err, errs.ErrConflict)
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("rejects_broken_money_conservation", func(t *testing.T) {
		items := []order.Item{order.RestoreItem(kernel.NewUUID(), "A", 10, 1, 10)}

		_, err := order.RestoreOrder(
			kernel.NewUUID(), "ORD-1", kernel.NewUUID(), kernel.NewUUID(), nil, kernel.NewUUID(),
			order.StatusPending, "cash", items,
			10.00, 5.00, 0.00, 99.00, // total does not add up
			time.Now(), time.Now(),
		)

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestNewOrderNumber(t *testing.T) {
	t.Run("embeds_timestamp_and_suffix", func(t *testing.T) {
		rng := rand.New(rand.NewSource(1))
		at := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)

		number := order.NewOrderNumber(at, rng)

		assert.Contains(t, number, "ORD-20250901120000-")
		assert.Len(t, number, len("ORD-20250901120000-0000"))
	})

	t.Run("same_seed_is_deterministic", func(t *testing.T) {
		at := time.Now()
		first := order.NewOrderNumber(at, rand.New(rand.NewSource(7)))
		second := order.NewOrderNumber(at, rand.New(rand.NewSource(7)))
		assert.Equal(t, first, second)
	})
}
