package carriers

import (
	"context"
	"errors"
	"time"

	"rateshop/internal/core/domain/model/kernel"
	"rateshop/internal/core/domain/model/order"
	"rateshop/internal/core/domain/model/rate"
	"rateshop/internal/core/ports"
	"rateshop/internal/pkg/errs"
)

// ErrNoCandidates is the definite per-family failure: the family was
// eligible but produced no deadline-satisfying candidate.
var ErrNoCandidates = errors.New("carrier family produced no candidates")

// The transit API reports plain "UPS Ground" while the rate table carries
// the registered-trademark glyph. Normalized at this boundary only.
const (
	transitGroundService = "UPS Ground"
	pricedGroundService  = "UPS® Ground"
)

var upsFamily = []string{order.CarrierUPS, order.CarrierUPSWalleted}

// UPSRater joins UPS transit commitments with the order's rate-table prices
// and synthesizes the Ground Saver candidate where it applies.
type UPSRater struct {
	transit ports.TransitEstimator
}

// NewUPSRater creates a rater over the given transit estimator.
func NewUPSRater(transit ports.TransitEstimator) (*UPSRater, error) {
	if transit == nil {
		return nil, errs.NewValueIsRequiredError("transit")
	}
	return &UPSRater{transit: transit}, nil
}

// Carrier implements ports.CarrierRater.
func (r *UPSRater) Carrier() string {
	return order.CarrierUPS
}

// Candidates builds the UPS family candidate list for the order.
//
// Transit estimates are joined against the rate table by service name; rows
// present in only one source are dropped. A Ground Saver candidate is
// synthesized from the ground estimate for residential, non-single-stream
// orders: one day slower, two when ground delivers on Saturday. Candidates
// past the deliver-by deadline are excluded, the synthetic one included.
func (r *UPSRater) Candidates(ctx context.Context, aggregate *order.Order) ([]rate.Candidate, error) {
	if err := aggregate.Validate(); err != nil {
		return nil, err
	}
	deadline := aggregate.DeliverBy()
	if deadline == nil {
		return nil, errs.NewValueIsRequiredError("deliver by date")
	}

	estimates, err := r.transit.EstimateTransit(ctx, transitQuery(aggregate))
	if err != nil {
		return nil, err
	}

	accounts := upsAccounts(aggregate)
	if len(accounts) == 0 {
		return nil, ErrNoCandidates
	}

	var candidates []rate.Candidate
	for _, estimate := range estimates {
		pricedName := estimate.Service
		if pricedName == transitGroundService {
			pricedName = pricedGroundService
		}

		for _, account := range accounts {
			price, ok := aggregate.PriceFor(account, pricedName)
			if !ok {
				continue
			}
			candidate, err := rate.NewCandidate(account, pricedName, price, &estimate.DeliveryDate)
			if err != nil {
				return nil, err
			}
			candidates = append(candidates, candidate)
		}

		if estimate.Service == transitGroundService && groundSaverApplies(aggregate) {
			saverDate := groundSaverDate(estimate.DeliveryDate)
			for _, account := range accounts {
				price, ok := aggregate.PriceFor(account, rate.GroundSaverService)
				if !ok {
					continue
				}
				candidate, err := rate.NewCandidate(account, rate.GroundSaverService, price, &saverDate)
				if err != nil {
					return nil, err
				}
				candidates = append(candidates, candidate)
			}
		}
	}

	candidates = withinDeadline(candidates, *deadline)
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}
	return candidates, nil
}

func transitQuery(aggregate *order.Order) ports.TransitQuery {
	shipment := aggregate.Shipment()
	shipTo := aggregate.Customer().ShipTo

	country := shipTo.Country
	if country != "US" && country != "CA" {
		country = "US"
	}

	shipDate := time.Now()
	if shipment.ShipDate != nil {
		shipDate = *shipment.ShipDate
	}

	var weight kernel.Weight
	if shipment.Weight != nil {
		weight = *shipment.Weight
	}

	return ports.TransitQuery{
		FromPostal:  shipment.Warehouse.PostalCode,
		FromState:   shipment.Warehouse.State,
		FromCity:    shipment.Warehouse.City,
		ToPostal:    shipTo.PostalCode,
		ToState:     shipTo.State,
		ToCity:      shipTo.City,
		ToCountry:   country,
		ShipDate:    shipDate,
		Weight:      weight,
		Residential: shipTo.Residential,
	}
}

// upsAccounts returns the UPS accounts the order actually has rates for.
func upsAccounts(aggregate *order.Order) []string {
	var accounts []string
	for _, account := range upsFamily {
		if len(aggregate.CarrierRates(account)) > 0 {
			accounts = append(accounts, account)
		}
	}
	return accounts
}

func groundSaverApplies(aggregate *order.Order) bool {
	return aggregate.Customer().ShipTo.Residential && !aggregate.IsSingleStream()
}

// groundSaverDate shifts the ground date one day, skipping Sunday when
// ground delivers on Saturday.
func groundSaverDate(groundDate time.Time) time.Time {
	if groundDate.Weekday() == time.Saturday {
		return groundDate.AddDate(0, 0, 2)
	}
	return groundDate.AddDate(0, 0, 1)
}

func withinDeadline(candidates []rate.Candidate, deadline time.Time) []rate.Candidate {
	var kept []rate.Candidate
	for _, candidate := range candidates {
		if date := candidate.DeliveryDate(); date != nil && date.After(deadline) {
			continue
		}
		kept = append(kept, candidate)
	}
	return kept
}
