package order

import (
	"time"

	"rateshop/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// Address is a postal address record carried through from the
// order-management platform. Correctness of the address itself is
// guaranteed upstream; this system only reads it.
type Address struct {
	Name        string
	Company     string
	Street1     string
	Street2     string
	City        string
	State       string
	PostalCode  string
	Country     string
	Phone       string
	Residential bool
}

// Item is one order line item.
type Item struct {
	SKU       string
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	ProductID int64
}

// Customer identifies the buyer and the billing/shipping addresses.
type Customer struct {
	ID       int64
	Username string
	Email    string
	BillTo   Address
	ShipTo   Address
}

// Shipment is the mutable packaging and routing sub-record of an order.
// Pipeline stages fill it in place: the dimension resolver writes Dimensions
// and Weight, the classifier writes the ship date and warehouse of origin.
type Shipment struct {
	// Confirmation is the delivery confirmation type requested upstream.
	Confirmation string

	// RequestedService is the shipping service the merchant asked for;
	// an "Express"/"Expedited" prefix marks the order expedited.
	RequestedService string

	// ShipDate is the chosen date the package is tendered to the carrier.
	ShipDate *time.Time

	// Warehouse is the resolved origin address.
	Warehouse Address

	// WarehouseID is the platform identifier of the origin warehouse.
	WarehouseID int64

	// Dimensions and Weight define the package. Both must be present
	// before any carrier can be queried for rates.
	Dimensions *kernel.Dimensions
	Weight     *kernel.Weight

	// AdvancedOptions carries platform pass-through options such as the
	// billing account override applied after carrier selection.
	AdvancedOptions map[string]string
}

// HasPackageProfile reports whether both dimensions and weight are known.
// Rate shopping must not start without a complete package profile.
func (s *Shipment) HasPackageProfile() bool {
	return s != nil && s.Dimensions != nil && s.Weight != nil
}
