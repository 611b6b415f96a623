package services

import (
	"testing"
	"time"

	"rateshop/internal/core/domain/model/order"
	"rateshop/internal/core/domain/model/rate"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidate(t *testing.T, carrier, service string, price float64, deliveryDay int) rate.Candidate {
	t.Helper()
	eta := time.Date(2026, 3, deliveryDay, 0, 0, 0, 0, time.UTC)
	c, err := rate.NewCandidate(carrier, service, decimal.NewFromFloat(price), &eta)
	require.NoError(t, err)
	return c
}

func selectorOrder(t *testing.T, singleStream bool) *order.Order {
	t.Helper()
	sku := "SOLTR001"
	if singleStream {
		sku = "MGLMP001"
	}
	o := newTestOrder(t, sku)
	require.NoError(t, o.MarkClassified(order.Flags{SingleStream: singleStream}, "Amazon",
		[]string{order.CarrierUPS, order.CarrierFedEx, order.CarrierUSPS}))
	return o
}

func Test_ChampionSelector_SelectWinner(t *testing.T) {
	selector := NewChampionSelector()

	t.Run("should pick the cheapest candidate across carriers", func(t *testing.T) {
		o := selectorOrder(t, false)
		ups := []rate.Candidate{
			candidate(t, order.CarrierUPS, "UPS® Ground", 6.72, 6),
			candidate(t, order.CarrierUPS, "UPS 2nd Day Air®", 14.00, 4),
		}
		fedex := []rate.Candidate{
			candidate(t, order.CarrierFedEx, "FedEx Ground®", 7.45, 6),
		}

		winner, err := selector.SelectWinner(o, ups, fedex)

		require.NoError(t, err)
		assert.Equal(t, "UPS® Ground", winner.Service())
		assert.True(t, winner.Price().Equal(decimal.NewFromFloat(6.72)))
	})

	t.Run("should break price ties by merge order", func(t *testing.T) {
		o := selectorOrder(t, false)
		ups := []rate.Candidate{candidate(t, order.CarrierUPS, "UPS® Ground", 7.00, 6)}
		usps := []rate.Candidate{candidate(t, order.CarrierUSPS, "USPS Ground Advantage", 7.00, 6)}

		winner, err := selector.SelectWinner(o, ups, usps)

		require.NoError(t, err)
		assert.Equal(t, order.CarrierUPS, winner.Carrier())
	})

	t.Run("should skip ground saver for single stream orders", func(t *testing.T) {
		o := selectorOrder(t, true)
		ups := []rate.Candidate{
			candidate(t, order.CarrierUPS, rate.GroundSaverService, 6.72, 7),
			candidate(t, order.CarrierUPS, "UPS® Ground", 6.72, 6),
			candidate(t, order.CarrierUPS, "UPS 2nd Day Air®", 14.00, 4),
		}

		winner, err := selector.SelectWinner(o, ups)

		require.NoError(t, err)
		assert.Equal(t, "UPS® Ground", winner.Service())
	})

	t.Run("should allow ground saver for regular orders", func(t *testing.T) {
		o := selectorOrder(t, false)
		ups := []rate.Candidate{
			candidate(t, order.CarrierUPS, rate.GroundSaverService, 6.10, 7),
			candidate(t, order.CarrierUPS, "UPS® Ground", 6.72, 6),
		}

		winner, err := selector.SelectWinner(o, ups)

		require.NoError(t, err)
		assert.True(t, winner.IsGroundSaver())
	})

	t.Run("should fail when ground saver is the only candidate for single stream", func(t *testing.T) {
		o := selectorOrder(t, true)
		ups := []rate.Candidate{candidate(t, order.CarrierUPS, rate.GroundSaverService, 6.10, 7)}

		_, err := selector.SelectWinner(o, ups)

		assert.ErrorIs(t, err, ErrNoEligibleCarriers)
	})

	t.Run("should fail when every carrier returned nothing", func(t *testing.T) {
		o := selectorOrder(t, false)

		_, err := selector.SelectWinner(o, nil, []rate.Candidate{})

		assert.ErrorIs(t, err, ErrNoEligibleCarriers)
	})
}

func Test_ChampionSelector_SelectPostal(t *testing.T) {
	selector := NewChampionSelector()

	t.Run("should pick the cheapest postal candidate", func(t *testing.T) {
		candidates := []rate.Candidate{
			candidate(t, order.CarrierUPS, "UPS® Ground", 5.10, 6),
			candidate(t, order.CarrierUSPS, "USPS Priority Mail", 9.30, 5),
			candidate(t, order.CarrierUSPS, "USPS Ground Advantage", 7.10, 6),
		}

		winner, err := selector.SelectPostal(candidates)

		require.NoError(t, err)
		assert.Equal(t, order.CarrierUSPS, winner.Carrier())
		assert.Equal(t, "USPS Ground Advantage", winner.Service())
	})

	t.Run("should fail without a postal candidate", func(t *testing.T) {
		candidates := []rate.Candidate{
			candidate(t, order.CarrierUPS, "UPS® Ground", 5.10, 6),
		}

		_, err := selector.SelectPostal(candidates)

		assert.ErrorIs(t, err, ErrNoEligibleCarriers)
	})
}
