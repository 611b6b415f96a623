package carriers

import (
	"context"
	"errors"
	"testing"
	"time"

	"rateshop/internal/core/domain/model/kernel"
	"rateshop/internal/core/domain/model/order"
	"rateshop/internal/core/domain/model/rate"
	"rateshop/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTransit struct {
	estimates []ports.TransitEstimate
	err       error
	lastQuery ports.TransitQuery
}

func (s *stubTransit) EstimateTransit(_ context.Context, query ports.TransitQuery) ([]ports.TransitEstimate, error) {
	s.lastQuery = query
	return s.estimates, s.err
}

func day(d int) time.Time {
	return time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC)
}

func ratedUPSOrder(t *testing.T, residential, singleStream bool, deadline time.Time) *order.Order {
	t.Helper()
	sku := "SOLTR001"
	if singleStream {
		sku = "MGLMP001"
	}
	o, err := order.NewOrder(8001, "113-8001", "key-8001", "Amazon",
		order.Customer{ShipTo: order.Address{
			Street1: "10 Main St", City: "Columbus", State: "OH",
			PostalCode: "43004", Country: "US", Residential: residential,
		}},
		[]order.Item{{SKU: sku, Name: sku, Quantity: 1, UnitPrice: decimal.NewFromFloat(29.99), ProductID: 1}},
		&order.Shipment{AdvancedOptions: map[string]string{}},
		&deadline, nil)
	require.NoError(t, err)
	require.NoError(t, o.MarkClassified(order.Flags{SingleStream: singleStream}, "Amazon",
		[]string{order.CarrierUPS, order.CarrierFedEx, order.CarrierUSPS, order.CarrierUPSWalleted}))
	require.NoError(t, o.RecordCarrierRates(order.CarrierUPS, []order.RatedService{
		{Name: "UPS® Ground", Code: "ups_ground", Price: decimal.NewFromFloat(6.72)},
		{Name: "UPS 2nd Day Air®", Code: "ups_2nd_day_air", Price: decimal.NewFromFloat(14.00)},
		{Name: rate.GroundSaverService, Code: "ups_ground_saver", Price: decimal.NewFromFloat(6.10)},
	}))
	return o
}

func Test_UPSRater_Candidates(t *testing.T) {
	t.Run("should join transit estimates with priced services by name", func(t *testing.T) {
		// deadline Friday March 6th
		o := ratedUPSOrder(t, false, false, day(6))
		transit := &stubTransit{estimates: []ports.TransitEstimate{
			{Service: "UPS Ground", DeliveryDate: day(6), BusinessDays: 4},
			{Service: "UPS 2nd Day Air®", DeliveryDate: day(4), BusinessDays: 2},
			{Service: "UPS Next Day Air®", DeliveryDate: day(3), BusinessDays: 1},
		}}
		rater, err := NewUPSRater(transit)
		require.NoError(t, err)

		candidates, err := rater.Candidates(context.Background(), o)

		require.NoError(t, err)
		// Next Day Air has no priced row and is dropped
		require.Len(t, candidates, 2)
		assert.Equal(t, "UPS® Ground", candidates[0].Service())
		assert.True(t, candidates[0].Price().Equal(decimal.NewFromFloat(6.72)))
		require.NotNil(t, candidates[0].DeliveryDate())
		assert.Equal(t, 6, candidates[0].DeliveryDate().Day())
		assert.Equal(t, "UPS 2nd Day Air®", candidates[1].Service())
	})

	t.Run("should normalize the ground glyph before joining", func(t *testing.T) {
		o := ratedUPSOrder(t, false, false, day(6))
		transit := &stubTransit{estimates: []ports.TransitEstimate{
			{Service: "UPS Ground", DeliveryDate: day(5), BusinessDays: 3},
		}}
		rater, err := NewUPSRater(transit)
		require.NoError(t, err)

		candidates, err := rater.Candidates(context.Background(), o)

		require.NoError(t, err)
		require.Len(t, candidates, 1)
		assert.Equal(t, "UPS® Ground", candidates[0].Service())
	})

	t.Run("should synthesize ground saver for residential orders", func(t *testing.T) {
		o := ratedUPSOrder(t, true, false, day(7))
		transit := &stubTransit{estimates: []ports.TransitEstimate{
			{Service: "UPS Ground", DeliveryDate: day(5), BusinessDays: 3},
		}}
		rater, err := NewUPSRater(transit)
		require.NoError(t, err)

		candidates, err := rater.Candidates(context.Background(), o)

		require.NoError(t, err)
		require.Len(t, candidates, 2)
		saver := candidates[1]
		assert.True(t, saver.IsGroundSaver())
		assert.True(t, saver.Price().Equal(decimal.NewFromFloat(6.10)))
		require.NotNil(t, saver.DeliveryDate())
		assert.Equal(t, 6, saver.DeliveryDate().Day())
	})

	t.Run("should skip sunday when ground delivers saturday", func(t *testing.T) {
		o := ratedUPSOrder(t, true, false, day(12))
		// March 7th 2026 is a Saturday
		transit := &stubTransit{estimates: []ports.TransitEstimate{
			{Service: "UPS Ground", DeliveryDate: day(7), BusinessDays: 5},
		}}
		rater, err := NewUPSRater(transit)
		require.NoError(t, err)

		candidates, err := rater.Candidates(context.Background(), o)

		require.NoError(t, err)
		require.Len(t, candidates, 2)
		assert.Equal(t, 9, candidates[1].DeliveryDate().Day())
		assert.Equal(t, time.Monday, candidates[1].DeliveryDate().Weekday())
	})

	t.Run("should not synthesize ground saver for commercial destinations", func(t *testing.T) {
		o := ratedUPSOrder(t, false, false, day(7))
		transit := &stubTransit{estimates: []ports.TransitEstimate{
			{Service: "UPS Ground", DeliveryDate: day(5), BusinessDays: 3},
		}}
		rater, err := NewUPSRater(transit)
		require.NoError(t, err)

		candidates, err := rater.Candidates(context.Background(), o)

		require.NoError(t, err)
		require.Len(t, candidates, 1)
	})

	t.Run("should not synthesize ground saver for single stream orders", func(t *testing.T) {
		o := ratedUPSOrder(t, true, true, day(7))
		transit := &stubTransit{estimates: []ports.TransitEstimate{
			{Service: "UPS Ground", DeliveryDate: day(5), BusinessDays: 3},
		}}
		rater, err := NewUPSRater(transit)
		require.NoError(t, err)

		candidates, err := rater.Candidates(context.Background(), o)

		require.NoError(t, err)
		require.Len(t, candidates, 1)
		assert.False(t, candidates[0].IsGroundSaver())
	})

	t.Run("should exclude candidates past the deadline including the synthetic one", func(t *testing.T) {
		// deadline Thursday March 5th, ground arrives in time but saver a day late
		o := ratedUPSOrder(t, true, false, day(5))
		transit := &stubTransit{estimates: []ports.TransitEstimate{
			{Service: "UPS Ground", DeliveryDate: day(5), BusinessDays: 3},
			{Service: "UPS 2nd Day Air®", DeliveryDate: day(6), BusinessDays: 2},
		}}
		rater, err := NewUPSRater(transit)
		require.NoError(t, err)

		candidates, err := rater.Candidates(context.Background(), o)

		require.NoError(t, err)
		require.Len(t, candidates, 1)
		assert.Equal(t, "UPS® Ground", candidates[0].Service())
	})

	t.Run("should fail definitively when nothing survives the deadline", func(t *testing.T) {
		o := ratedUPSOrder(t, false, false, day(2))
		transit := &stubTransit{estimates: []ports.TransitEstimate{
			{Service: "UPS Ground", DeliveryDate: day(6), BusinessDays: 4},
		}}
		rater, err := NewUPSRater(transit)
		require.NoError(t, err)

		_, err = rater.Candidates(context.Background(), o)

		assert.ErrorIs(t, err, ErrNoCandidates)
	})

	t.Run("should propagate transit estimator failure", func(t *testing.T) {
		o := ratedUPSOrder(t, false, false, day(6))
		wantErr := errors.New("transit api unavailable")
		rater, err := NewUPSRater(&stubTransit{err: wantErr})
		require.NoError(t, err)

		_, err = rater.Candidates(context.Background(), o)

		assert.ErrorIs(t, err, wantErr)
	})

	t.Run("should build the transit query from shipment and destination", func(t *testing.T) {
		o := ratedUPSOrder(t, true, false, day(6))
		o.Shipment().Warehouse = order.Address{City: "INDIANAPOLIS", State: "IN", PostalCode: "46203", Country: "US"}
		shipDate := day(2)
		o.Shipment().ShipDate = &shipDate
		weight, err := kernel.NewWeight(67)
		require.NoError(t, err)
		o.Shipment().Weight = &weight
		transit := &stubTransit{estimates: []ports.TransitEstimate{
			{Service: "UPS Ground", DeliveryDate: day(5), BusinessDays: 3},
		}}
		rater, err := NewUPSRater(transit)
		require.NoError(t, err)

		_, err = rater.Candidates(context.Background(), o)

		require.NoError(t, err)
		assert.Equal(t, "46203", transit.lastQuery.FromPostal)
		assert.Equal(t, "43004", transit.lastQuery.ToPostal)
		assert.Equal(t, "US", transit.lastQuery.ToCountry)
		assert.True(t, transit.lastQuery.Residential)
		assert.Equal(t, 2, transit.lastQuery.ShipDate.Day())
		assert.InDelta(t, 67, transit.lastQuery.Weight.Ounces(), 0.001)
	})
}
