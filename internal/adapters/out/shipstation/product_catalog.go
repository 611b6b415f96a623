package shipstation

import (
	"context"
	"strconv"

	"rateshop/internal/core/domain/model/kernel"
	"rateshop/internal/pkg/errs"
)

// ProductCatalog implements the product catalog port on the ShipStation
// products endpoint. It serves as the fallback when a SKU has no known
// package profile.
type ProductCatalog struct {
	client *Client
}

// NewProductCatalog creates the adapter.
func NewProductCatalog(client *Client) *ProductCatalog {
	return &ProductCatalog{client: client}
}

// GetDimensions returns the package dimensions registered on the product.
// Returns errs.ErrObjectNotFound when the product is unknown or carries
// no dimensions.
func (c *ProductCatalog) GetDimensions(ctx context.Context, productID int64) (kernel.Dimensions, error) {
	var res productResource
	if err := c.client.get(ctx, "/products/"+strconv.FormatInt(productID, 10), nil, &res); err != nil {
		return kernel.Dimensions{}, err
	}

	if res.Length <= 0 || res.Width <= 0 || res.Height <= 0 {
		return kernel.Dimensions{}, errs.NewObjectNotFoundError("product dimensions", productID)
	}

	return kernel.NewDimensions(res.Length, res.Width, res.Height)
}
