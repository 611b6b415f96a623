package ports

import (
	"context"

	"rateshop/internal/core/domain/model/order"
	"rateshop/internal/core/domain/model/rate"
)

// CarrierRater turns one carrier family's rate-table rows into delivery-dated
// candidates for champion selection.
//
// A nil candidate slice with a nil error means the carrier produced no
// usable candidates but the attempt may continue without it. A non-nil
// error means the family definitively failed and the attempt must halt.
type CarrierRater interface {
	// Carrier returns the carrier code the rater serves.
	Carrier() string

	// Candidates builds deadline-eligible candidates for the order from
	// its recorded rate-table rows.
	Candidates(ctx context.Context, aggregate *order.Order) ([]rate.Candidate, error)
}
