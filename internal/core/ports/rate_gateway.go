package ports

import (
	"context"
	"errors"

	"rateshop/internal/core/domain/model/kernel"
	"rateshop/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

var (
	// ErrNoRateAvailable signals the platform returned an empty rate list
	// for the carrier. The carrier is skipped, not the whole order.
	ErrNoRateAvailable = errors.New("carrier returned no rates for this shipment")

	// ErrDimensionsMissing signals the shipment lacks the package profile
	// required to ask for rates.
	ErrDimensionsMissing = errors.New("shipment has no dimensions or weight")
)

// RateQuery describes one shipment for carrier rating.
type RateQuery struct {
	Carrier     string
	FromPostal  string
	ToPostal    string
	ToState     string
	ToCountry   string
	Dimensions  kernel.Dimensions
	Weight      kernel.Weight
	Residential bool
}

// ServiceRate is one priced service returned by the platform's rating API.
type ServiceRate struct {
	ServiceName  string
	ServiceCode  string
	ShipmentCost decimal.Decimal
	OtherCost    decimal.Decimal
}

// Total returns the full charge for the service.
func (r ServiceRate) Total() decimal.Decimal {
	return r.ShipmentCost.Add(r.OtherCost)
}

// RateGateway quotes carrier rates for a shipment through the platform.
type RateGateway interface {
	// GetRates returns all priced services one carrier offers for the
	// shipment. Returns ErrNoRateAvailable when the carrier has none.
	GetRates(ctx context.Context, query RateQuery) ([]ServiceRate, error)
}

// NewRateQuery builds a RateQuery from a classified order for one carrier.
// Returns ErrDimensionsMissing when the shipment has no package profile.
func NewRateQuery(aggregate *order.Order, carrier string) (RateQuery, error) {
	shipment := aggregate.Shipment()
	if !shipment.HasPackageProfile() {
		return RateQuery{}, ErrDimensionsMissing
	}

	shipTo := aggregate.Customer().ShipTo
	return RateQuery{
		Carrier:     carrier,
		FromPostal:  shipment.Warehouse.PostalCode,
		ToPostal:    shipTo.PostalCode,
		ToState:     shipTo.State,
		ToCountry:   shipTo.Country,
		Dimensions:  *shipment.Dimensions,
		Weight:      *shipment.Weight,
		Residential: shipTo.Residential,
	}, nil
}
