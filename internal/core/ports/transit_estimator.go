package ports

import (
	"context"
	"time"

	"rateshop/internal/core/domain/model/kernel"
)

// TransitQuery asks a carrier's own network for delivery commitments between
// two points for a given ship date and package weight.
type TransitQuery struct {
	FromPostal  string
	FromState   string
	FromCity    string
	ToPostal    string
	ToState     string
	ToCity      string
	ToCountry   string
	ShipDate    time.Time
	Weight      kernel.Weight
	Residential bool
}

// TransitEstimate is one service's delivery commitment.
type TransitEstimate struct {
	Service      string
	DeliveryDate time.Time
	BusinessDays int
}

// TransitEstimator returns per-service delivery commitments from a carrier's
// transit-time API. An empty slice means the carrier offered no commitments
// for the lane.
type TransitEstimator interface {
	EstimateTransit(ctx context.Context, query TransitQuery) ([]TransitEstimate, error)
}
