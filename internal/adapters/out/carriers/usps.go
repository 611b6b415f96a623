package carriers

import (
	"context"

	"rateshop/internal/core/domain/model/order"
	"rateshop/internal/core/domain/model/rate"
)

// USPSRater rates the postal family from the order's rate table. The postal
// platform reports no delivery commitments, so candidates carry no date and
// always pass deadline filtering.
type USPSRater struct{}

// NewUSPSRater creates a postal rater.
func NewUSPSRater() *USPSRater {
	return &USPSRater{}
}

// Carrier implements ports.CarrierRater.
func (r *USPSRater) Carrier() string {
	return order.CarrierUSPS
}

// Candidates turns every postal rate-table row into an undated candidate.
func (r *USPSRater) Candidates(_ context.Context, aggregate *order.Order) ([]rate.Candidate, error) {
	if err := aggregate.Validate(); err != nil {
		return nil, err
	}
	return tableCandidates(aggregate, order.CarrierUSPS)
}

func tableCandidates(aggregate *order.Order, carrier string) ([]rate.Candidate, error) {
	rows := aggregate.CarrierRates(carrier)
	if len(rows) == 0 {
		return nil, ErrNoCandidates
	}

	candidates := make([]rate.Candidate, 0, len(rows))
	for _, row := range rows {
		candidate, err := rate.NewCandidate(carrier, row.Service, row.Price, nil)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, candidate)
	}
	return candidates, nil
}
