package errs_test

import (
	"errors"
	"testing"

	"rateshop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueIsRequiredError(t *testing.T) {
	t.Run("should format without cause", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("orderKey")

		assert.Equal(t, "orderKey", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is required: orderKey", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})

	t.Run("should format with cause", func(t *testing.T) {
		cause := errors.New("missing required field")
		err := errs.NewValueIsRequiredErrorWithCause("orderKey", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is required: orderKey (cause: missing required field)", err.Error())
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("should format without cause", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("carrierCode")

		assert.Equal(t, "value is invalid: carrierCode", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("should format with cause", func(t *testing.T) {
		cause := errors.New("unknown carrier")
		err := errs.NewValueIsInvalidErrorWithCause("carrierCode", cause)

		assert.Equal(t, "value is invalid: carrierCode (cause: unknown carrier)", err.Error())
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("should include value and bounds", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("weight", 151, 1, 150)

		assert.Equal(t, 151, err.Value)
		assert.Equal(t, "value is invalid: 151 is weight, min value is 1, max value is 150", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("should sanitize newlines in values", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("text", "hello\nworld", 0, 10)

		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestObjectNotFoundError(t *testing.T) {
	t.Run("should format without cause", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("orderId", "123")

		assert.Equal(t, "orderId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		assert.Equal(t, "object not found: 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("should format with cause", func(t *testing.T) {
		cause := errors.New("queue is empty")
		err := errs.NewObjectNotFoundErrorWithCause("orderId", "123", cause)

		assert.Equal(t,
			"object not found: param is: orderId, ID is: 123 (cause: queue is empty)",
			err.Error())
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}
