package order_test

import (
	"testing"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allStatuses() []order.Status {
	return []order.Status{
		order.StatusPending,
		order.StatusConfirmed,
		order.StatusPreparing,
		order.StatusReady,
		order.StatusOnDelivery,
		order.StatusDelivered,
		order.StatusCancelled,
	}
}

func TestStatus_Validate(t *testing.T) {
	for _, s := range allStatuses() {
		t.Run(string(s), func(t *testing.T) {
			require.NoError(t, s.Validate())
		})
	}

	t.Run("unknown_status_is_invalid", func(t *testing.T) {
		err := order.Status("shipped").Validate()
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("empty_status_is_invalid", func(t *testing.T) {
		err := order.Status("").Validate()
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestStatus_TransitionTo(t *testing.T) {
	legal := map[order.Status][]order.Status{
		order.StatusPending:    {order.StatusConfirmed, order.StatusCancelled},
		order.StatusConfirmed:  {order.StatusPreparing, order.StatusCancelled},
		order.StatusPreparing:  {order.StatusReady, order.StatusCancelled},
		order.StatusReady:      {order.StatusOnDelivery, order.StatusCancelled},
		order.StatusOnDelivery: {order.StatusDelivered},
		order.StatusDelivered:  {},
		order.StatusCancelled:  {},
	}

	// Walk the full cartesian product so no edge is legal by accident.
	for _, from := range allStatuses() {
		for _, to := range allStatuses() {
			from, to := from, to
			t.Run(string(from)+"_to_"+string(to), func(t *testing.T) {
				allowed := false
				for _, next := range legal[from] {
					if next == to {
						allowed = true
					}
				}

				got, err := from.TransitionTo(to)

				if allowed {
					require.NoError(t, err)
					assert.Equal(t, to, got)
				} else {
					require.Error(t, err)
					assert.ErrorIs(t, err, errs.ErrConflict)
					assert.Contains(t, err.Error(), string(from))
					assert.Contains(t, err.Error(), string(to))
				}
			})
		}
	}
}

func TestStatus_CannotSkipOnDelivery(t *testing.T) {
	// delivered is reachable only from on_delivery.
	for _, from := range allStatuses() {
		if from == order.StatusOnDelivery {
			continue
		}
		_, err := from.TransitionTo(order.StatusDelivered)
		require.Error(t, err, "delivered must not be reachable from %s", from)
	}
}

func TestStatus_IsFinal(t *testing.T) {
	assert.True(t, order.StatusDelivered.IsFinal())
	assert.True(t, order.StatusCancelled.IsFinal())
	assert.False(t, order.StatusPending.IsFinal())
	assert.False(t, order.StatusOnDelivery.IsFinal())
}

func TestStatusFromString(t *testing.T) {
	t.Run("parses_valid_status", func(t *testing.T) {
		s, err := order.StatusFromString("ready")
		require.NoError(t, err)
		assert.Equal(t, order.StatusReady, s)
	})

	t.Run("rejects_unknown_status", func(t *testing.T) {
		_, err := order.StatusFromString("refunded")
		require.Error(t, err)
	})
}
