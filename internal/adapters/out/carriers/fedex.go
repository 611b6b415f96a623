package carriers

import (
	"context"

	"rateshop/internal/core/domain/model/order"
	"rateshop/internal/core/domain/model/rate"
)

// FedExRater rates the FedEx family from the order's rate table.
type FedExRater struct{}

// NewFedExRater creates a FedEx rater.
func NewFedExRater() *FedExRater {
	return &FedExRater{}
}

// Carrier implements ports.CarrierRater.
func (r *FedExRater) Carrier() string {
	return order.CarrierFedEx
}

// Candidates turns every FedEx rate-table row into an undated candidate.
func (r *FedExRater) Candidates(_ context.Context, aggregate *order.Order) ([]rate.Candidate, error) {
	if err := aggregate.Validate(); err != nil {
		return nil, err
	}
	return tableCandidates(aggregate, order.CarrierFedEx)
}
