package order

// Carrier codes as used by the order-management platform.
const (
	CarrierUPS         = "ups"
	CarrierUPSWalleted = "ups_walleted"
	CarrierFedEx       = "fedex"
	CarrierUSPS        = "stamps_com"
)

// IsUPSFamily reports whether the carrier code belongs to a UPS account.
// Both the direct and the platform-walleted account rate the same services.
func IsUPSFamily(code string) bool {
	return code == CarrierUPS || code == CarrierUPSWalleted
}

// IsPostalFamily reports whether the carrier code is a postal carrier.
// Only postal carriers may deliver to PO Box addresses.
func IsPostalFamily(code string) bool {
	return code == CarrierUSPS
}

// Flags holds the per-order classification derived by the eligibility
// classifier. All flags default to false and are set exactly once per
// processing attempt.
type Flags struct {
	// Multi is true iff the order contains more than one line item.
	Multi bool

	// Double is true iff any line item has quantity greater than one.
	Double bool

	// Complex is true iff the summed quantity of all line items is 4 or more.
	Complex bool

	// SingleStream is true iff any SKU carries a protected prefix; these
	// SKUs must not use the degraded Ground Saver delivery network.
	SingleStream bool

	// POBox is true iff the shipping address is a PO Box. PO Box orders may
	// only ship with a postal carrier.
	POBox bool

	// Expedited is true iff the requested service implies an expedited
	// shipping promise.
	Expedited bool
}

// FailureReason tags a failed processing attempt. The string values double as
// the platform tag names applied to orders escalated for manual handling.
type FailureReason string

const (
	ReasonNoDimensions    FailureReason = "No-Dims"
	ReasonNoWarehouse     FailureReason = "No-Warehouse"
	ReasonNoDeliveryDate  FailureReason = "No-DeliveryDate"
	ReasonNoCarrierRates  FailureReason = "No SS Carrier Rates"
	ReasonNoUPSRate       FailureReason = "No UPS Rate"
	ReasonNoUSPSRate      FailureReason = "No USPS Rate"
	ReasonNoFedExRate     FailureReason = "No Fedex Rate"
	ReasonWriteBackFailed FailureReason = "Shipping not set"
)

// Retryable reports whether the failure is replayed once by the batch retry
// pass. Missing dimensions and unresolvable warehouses are data problems that
// cannot self-heal within a run, so they fail the order immediately.
func (r FailureReason) Retryable() bool {
	switch r {
	case ReasonNoDeliveryDate, ReasonNoCarrierRates,
		ReasonNoUPSRate, ReasonNoUSPSRate, ReasonNoFedExRate,
		ReasonWriteBackFailed:
		return true
	default:
		return false
	}
}

func (r FailureReason) String() string {
	return string(r)
}
