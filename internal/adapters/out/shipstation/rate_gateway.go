package shipstation

import (
	"context"
	"errors"
	"net/http"

	"rateshop/internal/core/ports"

	"github.com/shopspring/decimal"
)

// RateGateway implements the rating port on the ShipStation rating endpoint.
type RateGateway struct {
	client *Client
}

// NewRateGateway creates the adapter.
func NewRateGateway(client *Client) *RateGateway {
	return &RateGateway{client: client}
}

type rateRequest struct {
	CarrierCode    string             `json:"carrierCode"`
	ServiceCode    *string            `json:"serviceCode"`
	PackageCode    string             `json:"packageCode"`
	FromPostalCode string             `json:"fromPostalCode"`
	ToState        string             `json:"toState"`
	ToCountry      string             `json:"toCountry"`
	ToPostalCode   string             `json:"toPostalCode"`
	Weight         weightResource     `json:"weight"`
	Dimensions     dimensionsResource `json:"dimensions"`
	Confirmation   string             `json:"confirmation"`
	Residential    bool               `json:"residential"`
}

// GetRates asks the platform to price every service the carrier offers for
// the shipment. The platform answers 500 when the package is not rateable
// by the carrier at all; that maps to ErrNoRateAvailable so the caller can
// move on to the next carrier.
func (g *RateGateway) GetRates(ctx context.Context, query ports.RateQuery) ([]ports.ServiceRate, error) {
	country := query.ToCountry
	if country != "US" && country != "CA" {
		country = "US"
	}

	request := rateRequest{
		CarrierCode:    query.Carrier,
		PackageCode:    "package",
		FromPostalCode: query.FromPostal,
		ToState:        query.ToState,
		ToCountry:      country,
		ToPostalCode:   query.ToPostal,
		Weight:         weightResource{Value: query.Weight.Ounces(), Units: "ounces"},
		Dimensions: dimensionsResource{
			Units:  "inches",
			Length: query.Dimensions.Length(),
			Width:  query.Dimensions.Width(),
			Height: query.Dimensions.Height(),
		},
		Confirmation: "delivery",
		Residential:  query.Residential,
	}

	var resources []rateResource
	if err := g.client.post(ctx, "/shipments/getrates", request, &resources); err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.Code == http.StatusInternalServerError {
			return nil, ports.ErrNoRateAvailable
		}
		return nil, err
	}
	if len(resources) == 0 {
		return nil, ports.ErrNoRateAvailable
	}

	rates := make([]ports.ServiceRate, 0, len(resources))
	for _, res := range resources {
		rates = append(rates, ports.ServiceRate{
			ServiceName:  res.ServiceName,
			ServiceCode:  res.ServiceCode,
			ShipmentCost: decimal.NewFromFloat(res.ShipmentCost).Round(2),
			OtherCost:    decimal.NewFromFloat(res.OtherCost).Round(2),
		})
	}
	return rates, nil
}
