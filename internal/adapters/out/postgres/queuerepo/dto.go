// Package queuerepo persists the batch queue that decouples order fetching
// from order processing. Fetched orders are stored as snapshots and handed
// back to the drain job in arrival order.
package queuerepo

import (
	"time"

	"rateshop/internal/core/domain/model/kernel"
	"rateshop/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// QueuedOrderDTO is one queued order. The platform order id is the primary
// key, so re-fetching an order that is already queued replaces its snapshot
// instead of duplicating it.
type QueuedOrderDTO struct {
	OrderID    int64       `gorm:"primaryKey;autoIncrement:false"`
	Number     string      `gorm:"index"`
	StoreName  string      `gorm:"index"`
	Document   documentDTO `gorm:"type:jsonb;serializer:json"`
	EnqueuedAt time.Time   `gorm:"index"`
}

// TableName overrides GORM's default naming to use "order_queue".
func (QueuedOrderDTO) TableName() string {
	return "order_queue"
}

// documentDTO is the JSON snapshot of everything the processing pipeline
// needs that has no query use of its own.
type documentDTO struct {
	Key       string      `json:"key"`
	Customer  customerDTO `json:"customer"`
	Items     []itemDTO   `json:"items"`
	Shipment  shipmentDTO `json:"shipment"`
	DeliverBy *time.Time  `json:"deliver_by,omitempty"`
	TagIDs    []int       `json:"tag_ids,omitempty"`
}

type customerDTO struct {
	ID       int64      `json:"id"`
	Username string     `json:"username"`
	Email    string     `json:"email"`
	BillTo   addressDTO `json:"bill_to"`
	ShipTo   addressDTO `json:"ship_to"`
}

type addressDTO struct {
	Name        string `json:"name"`
	Company     string `json:"company,omitempty"`
	Street1     string `json:"street1"`
	Street2     string `json:"street2,omitempty"`
	City        string `json:"city"`
	State       string `json:"state"`
	PostalCode  string `json:"postal_code"`
	Country     string `json:"country"`
	Phone       string `json:"phone,omitempty"`
	Residential bool   `json:"residential"`
}

type itemDTO struct {
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	ProductID int64           `json:"product_id"`
}

type shipmentDTO struct {
	Confirmation     string            `json:"confirmation,omitempty"`
	RequestedService string            `json:"requested_service,omitempty"`
	ShipDate         *time.Time        `json:"ship_date,omitempty"`
	Dimensions       *dimensionsDTO    `json:"dimensions,omitempty"`
	WeightOunces     *float64          `json:"weight_ounces,omitempty"`
	AdvancedOptions  map[string]string `json:"advanced_options,omitempty"`
}

type dimensionsDTO struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func addressFromDomain(a order.Address) addressDTO {
	return addressDTO{
		Name:        a.Name,
		Company:     a.Company,
		Street1:     a.Street1,
		Street2:     a.Street2,
		City:        a.City,
		State:       a.State,
		PostalCode:  a.PostalCode,
		Country:     a.Country,
		Phone:       a.Phone,
		Residential: a.Residential,
	}
}

func addressToDomain(dto addressDTO) order.Address {
	return order.Address{
		Name:        dto.Name,
		Company:     dto.Company,
		Street1:     dto.Street1,
		Street2:     dto.Street2,
		City:        dto.City,
		State:       dto.State,
		PostalCode:  dto.PostalCode,
		Country:     dto.Country,
		Phone:       dto.Phone,
		Residential: dto.Residential,
	}
}

// fromDomain converts an order aggregate to its queued snapshot.
// Only freshly fetched orders are queued, so the snapshot carries the
// pre-classification state.
func fromDomain(aggregate *order.Order, enqueuedAt time.Time) QueuedOrderDTO {
	items := make([]itemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, itemDTO{
			SKU:       item.SKU,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			ProductID: item.ProductID,
		})
	}

	shipment := aggregate.Shipment()
	shipmentDoc := shipmentDTO{
		Confirmation:     shipment.Confirmation,
		RequestedService: shipment.RequestedService,
		ShipDate:         shipment.ShipDate,
		AdvancedOptions:  shipment.AdvancedOptions,
	}
	if shipment.Dimensions != nil {
		shipmentDoc.Dimensions = &dimensionsDTO{
			Length: shipment.Dimensions.Length(),
			Width:  shipment.Dimensions.Width(),
			Height: shipment.Dimensions.Height(),
		}
	}
	if shipment.Weight != nil {
		ounces := shipment.Weight.Ounces()
		shipmentDoc.WeightOunces = &ounces
	}

	customer := aggregate.Customer()

	return QueuedOrderDTO{
		OrderID:    aggregate.ID(),
		Number:     aggregate.Number(),
		StoreName:  aggregate.StoreName(),
		EnqueuedAt: enqueuedAt,
		Document: documentDTO{
			Key: aggregate.Key(),
			Customer: customerDTO{
				ID:       customer.ID,
				Username: customer.Username,
				Email:    customer.Email,
				BillTo:   addressFromDomain(customer.BillTo),
				ShipTo:   addressFromDomain(customer.ShipTo),
			},
			Items:     items,
			Shipment:  shipmentDoc,
			DeliverBy: aggregate.DeliverBy(),
			TagIDs:    aggregate.TagIDs(),
		},
	}
}

// toDomain reconstructs the order aggregate from its queued snapshot.
func toDomain(dto QueuedOrderDTO) (*order.Order, error) {
	items := make([]order.Item, 0, len(dto.Document.Items))
	for _, item := range dto.Document.Items {
		items = append(items, order.Item{
			SKU:       item.SKU,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			ProductID: item.ProductID,
		})
	}

	shipment := &order.Shipment{
		Confirmation:     dto.Document.Shipment.Confirmation,
		RequestedService: dto.Document.Shipment.RequestedService,
		ShipDate:         dto.Document.Shipment.ShipDate,
		AdvancedOptions:  dto.Document.Shipment.AdvancedOptions,
	}
	if shipment.AdvancedOptions == nil {
		shipment.AdvancedOptions = map[string]string{}
	}
	if dims := dto.Document.Shipment.Dimensions; dims != nil {
		restored, err := kernel.NewDimensions(dims.Length, dims.Width, dims.Height)
		if err != nil {
			return nil, err
		}
		shipment.Dimensions = &restored
	}
	if ounces := dto.Document.Shipment.WeightOunces; ounces != nil {
		restored, err := kernel.NewWeight(*ounces)
		if err != nil {
			return nil, err
		}
		shipment.Weight = &restored
	}

	customer := order.Customer{
		ID:       dto.Document.Customer.ID,
		Username: dto.Document.Customer.Username,
		Email:    dto.Document.Customer.Email,
		BillTo:   addressToDomain(dto.Document.Customer.BillTo),
		ShipTo:   addressToDomain(dto.Document.Customer.ShipTo),
	}

	return order.NewOrder(
		dto.OrderID,
		dto.Number,
		dto.Document.Key,
		dto.StoreName,
		customer,
		items,
		shipment,
		dto.Document.DeliverBy,
		dto.Document.TagIDs,
	)
}
