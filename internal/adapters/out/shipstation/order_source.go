package shipstation

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"rateshop/internal/core/domain/model/order"
)

const ordersPageSize = 250

// OrderSource implements the order source port on the ShipStation API.
type OrderSource struct {
	client *Client
}

// NewOrderSource creates the adapter.
func NewOrderSource(client *Client) *OrderSource {
	return &OrderSource{client: client}
}

// FetchAwaitingShipment pages through every order awaiting shipment.
// Orders the platform serves in a shape the domain rejects are logged
// and skipped rather than failing the whole batch.
func (s *OrderSource) FetchAwaitingShipment(ctx context.Context) ([]*order.Order, error) {
	var orders []*order.Order

	page := 1
	for {
		query := url.Values{}
		query.Set("orderStatus", "awaiting_shipment")
		query.Set("page", strconv.Itoa(page))
		query.Set("pageSize", strconv.Itoa(ordersPageSize))

		var response listOrdersResponse
		if err := s.client.get(ctx, "/orders", query, &response); err != nil {
			return nil, fmt.Errorf("fetch orders page %d: %w", page, err)
		}

		for _, res := range response.Orders {
			aggregate, err := toDomain(res)
			if err != nil {
				s.client.logger.Warn("skipping malformed order",
					"order_id", res.OrderID, "error", err)
				continue
			}
			orders = append(orders, aggregate)
		}

		if page >= response.Pages || len(response.Orders) == 0 {
			break
		}
		page++
	}

	return orders, nil
}

// CreateOrUpdate writes the order's routing decision back to the platform.
// The create endpoint replaces the whole order document, so the current
// document is fetched first and only the decided fields are overlaid.
func (s *OrderSource) CreateOrUpdate(ctx context.Context, aggregate *order.Order) error {
	var res orderResource
	path := "/orders/" + strconv.FormatInt(aggregate.ID(), 10)
	if err := s.client.get(ctx, path, nil, &res); err != nil {
		return fmt.Errorf("fetch order %d for write back: %w", aggregate.ID(), err)
	}

	overlayDecision(&res, aggregate)

	if err := s.client.post(ctx, "/orders/createorder", res, nil); err != nil {
		return fmt.Errorf("write back order %d: %w", aggregate.ID(), err)
	}
	return nil
}

// AddTag tags the order on the platform's front end.
func (s *OrderSource) AddTag(ctx context.Context, orderID int64, tagID int) error {
	var response addTagResponse
	err := s.client.post(ctx, "/orders/addtag", addTagRequest{OrderID: orderID, TagID: tagID}, &response)
	if err != nil {
		return err
	}
	if !response.Success {
		return fmt.Errorf("tag %d on order %d not applied: %s", tagID, orderID, response.Message)
	}
	return nil
}

// overlayDecision copies the pipeline's decisions onto the platform document.
func overlayDecision(res *orderResource, aggregate *order.Order) {
	shipment := aggregate.Shipment()

	if shipment.ShipDate != nil {
		res.ShipDate = shipment.ShipDate.Format(shipDateLayout)
		res.ShipByDate = res.ShipDate
	}
	if shipment.Dimensions != nil {
		res.Dimensions = &dimensionsResource{
			Units:  "inches",
			Length: shipment.Dimensions.Length(),
			Width:  shipment.Dimensions.Width(),
			Height: shipment.Dimensions.Height(),
		}
	}
	if shipment.Weight != nil {
		res.Weight = &weightResource{Value: shipment.Weight.Ounces(), Units: "ounces"}
	}
	if shipment.Confirmation != "" {
		res.Confirmation = shipment.Confirmation
	}

	if winner := aggregate.WinningRate(); winner != nil {
		res.RequestedShippingService = winner.Service()
		res.CarrierCode = winner.Carrier()
		if code, ok := aggregate.ServiceCode(winner.Service()); ok {
			res.ServiceCode = code
		}
		res.PackageCode = "package"
	}

	if res.AdvancedOptions == nil {
		res.AdvancedOptions = map[string]any{}
	}
	for key, value := range shipment.AdvancedOptions {
		if number, err := strconv.ParseInt(value, 10, 64); err == nil {
			res.AdvancedOptions[key] = number
			continue
		}
		res.AdvancedOptions[key] = value
	}

	res.TagIDs = aggregate.TagIDs()
}
