package errs_test

import (
	"errors"
	"testing"

	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("mealId", "123")

		assert.Equal(t, "mealId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("orderId", "456", cause)

		assert.Equal(t, "orderId", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: orderId, ID is: 456 (cause: database connection failed)",
			err.Error())
		assert.True(t, errors.Is(err, errs.ErrObjectNotFound))
	})
}

func TestValueIsRequiredError(t *testing.T) {
	t.Run("NewValueIsRequiredError", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("paymentMethod")

		assert.Equal(t, "paymentMethod", err.ParamName)
		assert.Equal(t, "value is required: paymentMethod", err.Error())
		assert.True(t, errors.Is(err, errs.ErrValueIsRequired))
	})

	t.Run("NewValueIsRequiredErrorWithCause", func(t *testing.T) {
		cause := errors.New("missing field")
		err := errs.NewValueIsRequiredErrorWithCause("cart", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is required: cart (cause: missing field)", err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("quantity")

		assert.Equal(t, "quantity", err.ParamName)
		assert.Equal(t, "value is invalid: quantity", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("sanitizes_newlines", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("line\nbreak")
		assert.Contains(t, err.Error(), "line break")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestConflictError(t *testing.T) {
	t.Run("NewConflictError", func(t *testing.T) {
		err := errs.NewConflictError("order already assigned")

		assert.Equal(t, "order already assigned", err.Message)
		assert.Equal(t, "conflict: order already assigned", err.Error())
		assert.True(t, errors.Is(err, errs.ErrConflict))
	})

	t.Run("NewConflictErrorWithCause", func(t *testing.T) {
		cause := errors.New("duplicate key value violates unique constraint")
		err := errs.NewConflictErrorWithCause("coupon already redeemed for this order", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"conflict: coupon already redeemed for this order (cause: duplicate key value violates unique constraint)",
			err.Error())
	})
}

func TestNotAuthorizedError(t *testing.T) {
	t.Run("NewNotAuthorizedError", func(t *testing.T) {
		err := errs.NewNotAuthorizedError("complete task")

		assert.Equal(t, "complete task", err.Action)
		assert.Equal(t, "not authorized: complete task", err.Error())
		assert.True(t, errors.Is(err, errs.ErrNotAuthorized))
	})
}
