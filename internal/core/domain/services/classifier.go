package services

import (
	"errors"
	"strings"
	"time"

	"rateshop/internal/core/domain/model/order"
)

// ErrNoWarehouse is returned when no warehouse table entry matches the
// order's first SKU. Rate shopping cannot run without an origin address.
var ErrNoWarehouse = errors.New("no warehouse resolvable for order")

// singleStreamPrefixes marks protected SKU families that must never ship
// through degraded networks such as SurePost or Ground Saver.
var singleStreamPrefixes = []string{"MGLMP", "SCARL", "CER"}

// ShipDatePolicy selects how a merchant's ship date is derived.
type ShipDatePolicy int

const (
	// ShipDateKeep leaves the upstream ship date untouched.
	ShipDateKeep ShipDatePolicy = iota
	// ShipDateTomorrow sets the next business day, skipping weekends.
	ShipDateTomorrow
	// ShipDateCutoff applies the 11:00 Eastern cutoff: before the cutoff
	// ships today unless the order needs assembly, after it ships
	// tomorrow, weekends roll to Monday.
	ShipDateCutoff
)

// StoreProfile is the classification outcome for one sales channel.
// Orders from channels with RateShop false but Processed true only get their
// shipment configuration written back; channels with Processed false are
// fulfilled entirely outside this system and are skipped.
type StoreProfile struct {
	TradingPartner string
	Carriers       []string
	ShipDate       ShipDatePolicy
	RateShop       bool
	Processed      bool
}

// warehouseEntry binds a SKU prefix to its warehouse of origin.
type warehouseEntry struct {
	prefix      string
	warehouseID int64
}

const (
	warehouseIndianapolis  int64 = 590152
	warehouseGlenwood      int64 = 791225
	warehouseWalnutSprings int64 = 729388
)

var warehouseTable = []warehouseEntry{
	{"INFL-CCSNTA", warehouseGlenwood},
	{"1216FL3D", warehouseIndianapolis},
	{"CARDL-LS", warehouseIndianapolis},
	{"1216F3D", warehouseIndianapolis},
	{"1216U3D", warehouseIndianapolis},
	{"CRDP-CC", warehouseGlenwood},
	{"INFLCSF", warehouseIndianapolis},
	{"INFLSMP", warehouseGlenwood},
	{"17523F", warehouseGlenwood},
	{"CCERSM", warehouseIndianapolis},
	{"INFLCP", warehouseIndianapolis},
	{"INFLJH", warehouseIndianapolis},
	{"INFLSB", warehouseIndianapolis},
	{"INFLSD", warehouseIndianapolis},
	{"1212F", warehouseGlenwood},
	{"1218F", warehouseGlenwood},
	{"2335F", warehouseGlenwood},
	{"BBRIT", warehouseGlenwood},
	{"BCHPD", warehouseIndianapolis},
	{"CARDL", warehouseIndianapolis},
	{"CERPM", warehouseGlenwood},
	{"CERSM", warehouseIndianapolis},
	{"CERSN", warehouseGlenwood},
	{"CRCCS", warehouseGlenwood},
	{"CRDDT", warehouseIndianapolis},
	{"CRDPP", warehouseGlenwood},
	{"GDPWT", warehouseGlenwood},
	{"INFLH", warehouseGlenwood},
	{"INFLJ", warehouseGlenwood},
	{"INFTY", warehouseGlenwood},
	{"MAFBL", warehouseIndianapolis},
	{"MGLMP", warehouseIndianapolis},
	{"PCRSM", warehouseIndianapolis},
	{"SCARL", warehouseIndianapolis},
	{"SOLTR", warehouseIndianapolis},
	{"SPOTL", warehouseIndianapolis},
	{"STRBL", warehouseIndianapolis},
	{"ZNCN9", warehouseGlenwood},
	{"624F", warehouseGlenwood},
	{"832F", warehouseGlenwood},
	{"912F", warehouseGlenwood},
	{"BPOT", warehouseIndianapolis},
	{"SAND", warehouseGlenwood},
	{"SCRT", warehouseGlenwood},
	{"PLNF", warehouseWalnutSprings},
	{"PLNP", warehouseWalnutSprings},
	{"PLSA", warehouseWalnutSprings},
	{"28F", warehouseGlenwood},
	{"MTS", warehouseGlenwood},
}

// warehouseAddresses are the origin addresses keyed by warehouse id.
// Walnut Springs ships from the Glenwood site under its own account name.
var warehouseAddresses = map[int64]order.Address{
	warehouseIndianapolis: {
		Name:       "Stallion Wholesale",
		Street1:    "1435 E NAOMI ST",
		City:       "INDIANAPOLIS",
		State:      "IN",
		PostalCode: "46203",
		Country:    "US",
		Phone:      "3174064033",
	},
	warehouseGlenwood: {
		Name:       "Warehouse Location 1",
		Street1:    "14812 Burntwoods Road",
		City:       "Glenwood",
		State:      "MD",
		PostalCode: "21738",
		Country:    "US",
		Phone:      "4432667788",
	},
	warehouseWalnutSprings: {
		Name:       "Walnut Springs Nursery",
		Street1:    "14812 Burntwoods Rd",
		City:       "Glenwood",
		State:      "MD",
		PostalCode: "21738",
		Country:    "US",
		Phone:      "4432667788",
	},
}

// Classifier derives per-order eligibility flags, the merchant profile and
// the warehouse of origin. Time-dependent decisions use the injected clock.
type Classifier struct {
	now      func() time.Time
	location *time.Location
}

// NewClassifier creates a classifier with the given clock. The Eastern
// timezone database must be available on the host.
func NewClassifier(now func() time.Time) (*Classifier, error) {
	if now == nil {
		now = time.Now
	}
	location, err := time.LoadLocation("America/New_York")
	if err != nil {
		return nil, err
	}
	return &Classifier{now: now, location: location}, nil
}

// Classify computes the order's flags and merchant profile and records them
// on the aggregate. Returns the resolved profile so the caller can branch
// on RateShop and Processed.
func (c *Classifier) Classify(aggregate *order.Order) (StoreProfile, error) {
	if err := aggregate.Validate(); err != nil {
		return StoreProfile{}, err
	}

	flags := c.deriveFlags(aggregate)
	profile := ResolveStoreProfile(aggregate.StoreName(), aggregate.Number())

	var carriers []string
	if profile.RateShop {
		carriers = profile.Carriers
	}
	if err := aggregate.MarkClassified(flags, profile.TradingPartner, carriers); err != nil {
		return StoreProfile{}, err
	}
	return profile, nil
}

func (c *Classifier) deriveFlags(aggregate *order.Order) order.Flags {
	items := aggregate.Items()

	totalQuantity := 0
	flags := order.Flags{}
	for _, item := range items {
		totalQuantity += item.Quantity
		if item.Quantity > 1 {
			flags.Double = true
		}
		for _, prefix := range singleStreamPrefixes {
			if strings.HasPrefix(item.SKU, prefix) {
				flags.SingleStream = true
			}
		}
	}
	flags.Multi = len(items) > 1
	flags.Complex = totalQuantity >= 4

	street := aggregate.Customer().ShipTo.Street1
	flags.POBox = strings.Contains(strings.ToUpper(street), "PO BOX")

	service := aggregate.Shipment().RequestedService
	flags.Expedited = strings.HasPrefix(service, "Express") || strings.HasPrefix(service, "Expedited")

	return flags
}

// ResolveStoreProfile maps a sales channel and order number to its merchant
// profile. Unknown channels come back with Processed false.
func ResolveStoreProfile(storeName, orderNumber string) StoreProfile {
	switch storeName {
	case "TC EDI":
		switch {
		case strings.HasPrefix(orderNumber, "DS"):
			return StoreProfile{TradingPartner: "Fanatics"}
		case strings.HasPrefix(orderNumber, "7"):
			return StoreProfile{TradingPartner: "Target"}
		case strings.HasPrefix(orderNumber, "3"):
			return StoreProfile{TradingPartner: "Rally House", Processed: true}
		default:
			return StoreProfile{TradingPartner: "Unknown"}
		}
	case "Amazon":
		return StoreProfile{
			TradingPartner: "Amazon",
			Carriers:       []string{order.CarrierUPS, order.CarrierFedEx, order.CarrierUSPS, order.CarrierUPSWalleted},
			ShipDate:       ShipDateCutoff,
			RateShop:       true,
			Processed:      true,
		}
	case "Sporticulture":
		partner := "Sporticulture"
		for _, keyword := range []string{"CBSD", "RSAD", "AMSD"} {
			if strings.Contains(orderNumber, keyword) {
				partner = "CBS"
				break
			}
		}
		return StoreProfile{
			TradingPartner: partner,
			Carriers:       []string{order.CarrierUPS, order.CarrierUPSWalleted, order.CarrierFedEx, order.CarrierUSPS},
			RateShop:       true,
			Processed:      true,
		}
	case "JoAnn Fabric & Crafts":
		return StoreProfile{TradingPartner: "JoAnn", ShipDate: ShipDateTomorrow, Processed: true}
	case "Sharper Image":
		return StoreProfile{TradingPartner: "Sharper Image", ShipDate: ShipDateTomorrow, Processed: true}
	case "Stadium Allstars":
		return StoreProfile{TradingPartner: "Stadium Allstars", ShipDate: ShipDateTomorrow, Processed: true}
	case "Sporticulture Wholesale":
		// No carrier list is configured for this channel upstream.
		return StoreProfile{TradingPartner: "Sporticulture Wholesale"}
	case "Walmart Wholesale":
		return StoreProfile{TradingPartner: "Walmart"}
	default:
		return StoreProfile{TradingPartner: "Unknown"}
	}
}

// ApplyShipDate writes the profile's ship date into the shipment.
// An order needing assembly, any SKU starting with a digit, ships a day
// later under the cutoff policy.
func (c *Classifier) ApplyShipDate(aggregate *order.Order, policy ShipDatePolicy) {
	switch policy {
	case ShipDateTomorrow:
		shipDate := skipWeekend(c.now().AddDate(0, 0, 1))
		aggregate.Shipment().ShipDate = &shipDate
	case ShipDateCutoff:
		now := c.now().In(c.location)
		cutoff := time.Date(now.Year(), now.Month(), now.Day(), 11, 0, 0, 0, c.location)

		shipDate := now
		if !now.Before(cutoff) || needsAssembly(aggregate) {
			shipDate = now.AddDate(0, 0, 1)
		}
		shipDate = skipWeekend(shipDate)
		aggregate.Shipment().ShipDate = &shipDate
	}
}

func needsAssembly(aggregate *order.Order) bool {
	for _, item := range aggregate.Items() {
		if item.SKU != "" && item.SKU[0] >= '0' && item.SKU[0] <= '9' {
			return true
		}
	}
	return false
}

func skipWeekend(t time.Time) time.Time {
	switch t.Weekday() {
	case time.Saturday:
		return t.AddDate(0, 0, 2)
	case time.Sunday:
		return t.AddDate(0, 0, 1)
	}
	return t
}

// ResolveWarehouse matches the order's first SKU against the warehouse table
// and writes the origin address into the shipment. Returns ErrNoWarehouse
// when nothing matches.
func (c *Classifier) ResolveWarehouse(aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	sku := aggregate.Items()[0].SKU
	for _, entry := range warehouseTable {
		if strings.HasPrefix(sku, entry.prefix) {
			shipment := aggregate.Shipment()
			shipment.WarehouseID = entry.warehouseID
			shipment.Warehouse = warehouseAddresses[entry.warehouseID]
			return nil
		}
	}
	return ErrNoWarehouse
}
