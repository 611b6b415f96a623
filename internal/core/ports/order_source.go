package ports

import (
	"context"

	"rateshop/internal/core/domain/model/order"
)

// OrderSource is the order-management platform the engine reads orders from
// and writes decisions back to.
type OrderSource interface {
	// FetchAwaitingShipment lists orders currently awaiting shipment,
	// paged through internally, oldest first.
	FetchAwaitingShipment(ctx context.Context) ([]*order.Order, error)

	// CreateOrUpdate writes the order's current shipment configuration
	// back to the platform, keyed by the order key.
	CreateOrUpdate(ctx context.Context, aggregate *order.Order) error

	// AddTag attaches a platform tag to the order.
	AddTag(ctx context.Context, orderID int64, tagID int) error
}
