package kernel_test

import (
	"testing"

	"rateshop/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDimensions(t *testing.T) {
	t.Run("should create valid dimensions", func(t *testing.T) {
		d, err := kernel.NewDimensions(12, 9, 5)

		require.NoError(t, err)
		require.NoError(t, d.Validate())
		assert.InDelta(t, 12.0, d.Length(), 0.001)
		assert.InDelta(t, 9.0, d.Width(), 0.001)
		assert.InDelta(t, 5.0, d.Height(), 0.001)
	})

	t.Run("should fail with zero side", func(t *testing.T) {
		_, err := kernel.NewDimensions(12, 0, 5)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "not greater than 0")
	})

	t.Run("should fail with negative side", func(t *testing.T) {
		_, err := kernel.NewDimensions(-1, 9, 5)

		require.Error(t, err)
	})

	t.Run("should fail validation for zero value", func(t *testing.T) {
		var d kernel.Dimensions

		require.Error(t, d.Validate())
		assert.Equal(t, kernel.ErrDimensionsNotConstructed, d.Validate())
	})
}

func TestNewWeight(t *testing.T) {
	t.Run("should create valid weight", func(t *testing.T) {
		w, err := kernel.NewWeight(67)

		require.NoError(t, err)
		require.NoError(t, w.Validate())
		assert.InDelta(t, 67.0, w.Ounces(), 0.001)
	})

	t.Run("should convert ounces to kilograms", func(t *testing.T) {
		w, err := kernel.NewWeight(35.274)

		require.NoError(t, err)
		assert.InDelta(t, 1.0, w.Kilograms(), 0.001)
	})

	t.Run("should fail with non-positive value", func(t *testing.T) {
		_, err := kernel.NewWeight(0)

		require.Error(t, err)
	})

	t.Run("should fail validation for zero value", func(t *testing.T) {
		var w kernel.Weight

		assert.Equal(t, kernel.ErrWeightNotConstructed, w.Validate())
	})
}
