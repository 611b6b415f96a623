package ports

import (
	"context"

	"rateshop/internal/core/domain/model/kernel"
)

// ProductCatalog exposes per-product package profiles maintained on the
// platform. Used as a fallback when the SKU tables cannot resolve dimensions.
type ProductCatalog interface {
	// GetDimensions returns the dimensions stored on the product record.
	// Returns errs.ErrObjectNotFound when the product has none.
	GetDimensions(ctx context.Context, productID int64) (kernel.Dimensions, error)
}
