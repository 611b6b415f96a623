package shipstation

import (
	"encoding/json"
	"strconv"
	"time"

	"rateshop/internal/core/domain/model/kernel"
	"rateshop/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// storeNames maps the platform store (sales channel) id to the store name
// the classifier keys its profiles on.
var storeNames = map[int64]string{
	315885: "Amazon",
	341077: "HSN",
	332340: "JoAnn Fabric & Crafts",
	264327: "Manual Orders",
	333906: "Replacement",
	336544: "Sharper Image",
	307866: "Sporticulture",
	320975: "Sporticulture Wholesale",
	319722: "Stadium Allstars",
	337523: "TC EDI",
	334045: "Walmart Wholesale",
}

// deliverByLayout is the format of the delivery deadline the sales channel
// writes into the first custom field.
const deliverByLayout = "01/02/2006 15:04:05"

const shipDateLayout = "2006-01-02"

type listOrdersResponse struct {
	Orders []orderResource `json:"orders"`
	Total  int             `json:"total"`
	Page   int             `json:"page"`
	Pages  int             `json:"pages"`
}

// orderResource is the order document as the platform serves it. The write
// back POSTs the same shape, so unknown sub-documents ride along untouched.
type orderResource struct {
	OrderID                  int64               `json:"orderId"`
	OrderNumber              string              `json:"orderNumber"`
	OrderKey                 string              `json:"orderKey"`
	OrderDate                string              `json:"orderDate,omitempty"`
	CreateDate               string              `json:"createDate,omitempty"`
	ModifyDate               string              `json:"modifyDate,omitempty"`
	PaymentDate              string              `json:"paymentDate,omitempty"`
	OrderStatus              string              `json:"orderStatus,omitempty"`
	CustomerID               *int64              `json:"customerId"`
	CustomerUsername         string              `json:"customerUsername,omitempty"`
	CustomerEmail            string              `json:"customerEmail,omitempty"`
	BillTo                   addressResource     `json:"billTo"`
	ShipTo                   addressResource     `json:"shipTo"`
	Items                    []itemResource      `json:"items"`
	AmountPaid               float64             `json:"amountPaid"`
	TaxAmount                float64             `json:"taxAmount"`
	ShippingAmount           float64             `json:"shippingAmount"`
	CustomerNotes            string              `json:"customerNotes,omitempty"`
	InternalNotes            string              `json:"internalNotes,omitempty"`
	Gift                     bool                `json:"gift"`
	GiftMessage              string              `json:"giftMessage,omitempty"`
	PaymentMethod            string              `json:"paymentMethod,omitempty"`
	RequestedShippingService string              `json:"requestedShippingService,omitempty"`
	CarrierCode              string              `json:"carrierCode,omitempty"`
	ServiceCode              string              `json:"serviceCode,omitempty"`
	PackageCode              string              `json:"packageCode,omitempty"`
	Confirmation             string              `json:"confirmation,omitempty"`
	ShipByDate               string              `json:"shipByDate,omitempty"`
	ShipDate                 string              `json:"shipDate,omitempty"`
	Weight                   *weightResource     `json:"weight,omitempty"`
	Dimensions               *dimensionsResource `json:"dimensions,omitempty"`
	InsuranceOptions         json.RawMessage     `json:"insuranceOptions,omitempty"`
	InternationalOptions     json.RawMessage     `json:"internationalOptions,omitempty"`
	AdvancedOptions          map[string]any      `json:"advancedOptions,omitempty"`
	TagIDs                   []int               `json:"tagIds,omitempty"`
}

type addressResource struct {
	Name        string `json:"name"`
	Company     string `json:"company,omitempty"`
	Street1     string `json:"street1"`
	Street2     string `json:"street2,omitempty"`
	Street3     string `json:"street3,omitempty"`
	City        string `json:"city"`
	State       string `json:"state"`
	PostalCode  string `json:"postalCode"`
	Country     string `json:"country"`
	Phone       string `json:"phone,omitempty"`
	Residential bool   `json:"residential"`
}

type itemResource struct {
	OrderItemID int64   `json:"orderItemId,omitempty"`
	SKU         string  `json:"sku"`
	Name        string  `json:"name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	ProductID   int64   `json:"productId"`
}

type weightResource struct {
	Value float64 `json:"value"`
	Units string  `json:"units"`
}

type dimensionsResource struct {
	Units  string  `json:"units"`
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type productResource struct {
	ProductID    int64   `json:"productId"`
	SKU          string  `json:"sku"`
	Length       float64 `json:"length"`
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	WeightOunces float64 `json:"weightOz"`
}

type rateResource struct {
	ServiceName  string  `json:"serviceName"`
	ServiceCode  string  `json:"serviceCode"`
	ShipmentCost float64 `json:"shipmentCost"`
	OtherCost    float64 `json:"otherCost"`
}

type addTagRequest struct {
	OrderID int64 `json:"orderId"`
	TagID   int   `json:"tagId"`
}

type addTagResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func addressToDomain(res addressResource) order.Address {
	return order.Address{
		Name:        res.Name,
		Company:     res.Company,
		Street1:     res.Street1,
		Street2:     res.Street2,
		City:        res.City,
		State:       res.State,
		PostalCode:  res.PostalCode,
		Country:     res.Country,
		Phone:       res.Phone,
		Residential: res.Residential,
	}
}

// optionString renders an advanced option value the way it appears on the
// platform's front end. Numbers come over the wire as float64.
func optionString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case nil:
		return ""
	default:
		raw, _ := json.Marshal(v)
		return string(raw)
	}
}

// optionInt64 reads a numeric advanced option.
func optionInt64(options map[string]any, key string) int64 {
	if v, ok := options[key].(float64); ok {
		return int64(v)
	}
	return 0
}

// weightOunces normalizes a platform weight to ounces.
func weightOunces(w weightResource) float64 {
	switch w.Units {
	case "pounds":
		return w.Value * 16
	case "grams":
		return w.Value / 28.3495
	default:
		return w.Value
	}
}

// toDomain builds the order aggregate from the platform document.
func toDomain(res orderResource) (*order.Order, error) {
	items := make([]order.Item, 0, len(res.Items))
	for _, item := range res.Items {
		items = append(items, order.Item{
			SKU:       item.SKU,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: decimal.NewFromFloat(item.UnitPrice),
			ProductID: item.ProductID,
		})
	}

	shipment := &order.Shipment{
		Confirmation:     res.Confirmation,
		RequestedService: res.RequestedShippingService,
		WarehouseID:      optionInt64(res.AdvancedOptions, "warehouseId"),
		AdvancedOptions:  map[string]string{},
	}
	for key, value := range res.AdvancedOptions {
		shipment.AdvancedOptions[key] = optionString(value)
	}
	if res.ShipDate != "" {
		if shipDate, err := time.Parse(shipDateLayout, res.ShipDate); err == nil {
			shipment.ShipDate = &shipDate
		}
	}
	if res.Dimensions != nil && res.Dimensions.Length > 0 {
		dims, err := kernel.NewDimensions(res.Dimensions.Length, res.Dimensions.Width, res.Dimensions.Height)
		if err == nil {
			shipment.Dimensions = &dims
		}
	}
	if res.Weight != nil && res.Weight.Value > 0 {
		weight, err := kernel.NewWeight(weightOunces(*res.Weight))
		if err == nil {
			shipment.Weight = &weight
		}
	}

	var customerID int64
	if res.CustomerID != nil {
		customerID = *res.CustomerID
	}
	customer := order.Customer{
		ID:       customerID,
		Username: res.CustomerUsername,
		Email:    res.CustomerEmail,
		BillTo:   addressToDomain(res.BillTo),
		ShipTo:   addressToDomain(res.ShipTo),
	}

	storeName := "Unknown"
	if name, ok := storeNames[optionInt64(res.AdvancedOptions, "storeId")]; ok {
		storeName = name
	}

	var deliverBy *time.Time
	if raw, ok := res.AdvancedOptions["customField1"].(string); ok && raw != "" {
		if deadline, err := time.Parse(deliverByLayout, raw); err == nil {
			deliverBy = &deadline
		}
	}

	return order.NewOrder(
		res.OrderID,
		res.OrderNumber,
		res.OrderKey,
		storeName,
		customer,
		items,
		shipment,
		deliverBy,
		res.TagIDs,
	)
}
