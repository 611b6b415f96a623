package order

import (
	"errors"
	"fmt"
	"time"

	"rateshop/internal/core/domain/model/rate"
	"rateshop/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder factory method.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrRateNotInTable is returned when a winning rate references a
	// (carrier, service) pair that was never observed in this attempt's
	// rate table. Selecting an unverified price is never allowed.
	ErrRateNotInTable = errors.New("winning rate is not present in the order's rate table")
)

// ServicePrice is one (service, price) row of the rate table.
type ServicePrice struct {
	Service string
	Price   decimal.Decimal
}

// RatedService is a priced service reported by the rating gateway for one
// carrier, including the platform service code needed for write-back.
type RatedService struct {
	Name  string
	Code  string
	Price decimal.Decimal
}

// Order is the aggregate root for one order-processing attempt. It carries
// the raw order data, the mutable Shipment sub-record, the decision state
// derived by the classifier, the rate table accumulated during rate
// shopping, and the winning rate once selected.
//
// Order follows these invariants:
//   - Must have a positive platform id and a non-empty order key
//   - Must have at least one line item and a Shipment sub-record
//   - Status transitions follow the attempt state machine in status.go
//   - A winning rate must reference a (carrier, service) pair present in
//     the rate table at the recorded price
//   - Can only be created through the NewOrder constructor
type Order struct {
	id        int64
	number    string
	key       string
	storeName string
	customer  Customer
	items     []Item
	shipment  *Shipment
	deliverBy *time.Time
	tagIDs    []int

	flags            Flags
	tradingPartner   string
	eligibleCarriers []string

	rates        map[string][]ServicePrice
	ratedOrder   []string
	serviceCodes map[string]string

	winningRate *rate.Candidate

	status        Status
	failureReason FailureReason

	isConstructed bool
}

// NewOrder creates a new Order attempt from raw platform data.
// The deliver-by deadline may be nil; its absence halts the attempt later,
// at the transition into rate shopping.
func NewOrder(
	id int64,
	number string,
	key string,
	storeName string,
	customer Customer,
	items []Item,
	shipment *Shipment,
	deliverBy *time.Time,
	tagIDs []int,
) (*Order, error) {
	if id <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("order id",
			fmt.Errorf("%d is not greater than 0", id))
	}
	if key == "" {
		return nil, errs.NewValueIsRequiredError("order key")
	}
	if number == "" {
		return nil, errs.NewValueIsRequiredError("order number")
	}
	if len(items) == 0 {
		return nil, errs.NewValueIsRequiredError("order items")
	}
	if shipment == nil {
		return nil, errs.NewValueIsRequiredError("shipment")
	}

	var deadline *time.Time
	if deliverBy != nil {
		d := *deliverBy
		deadline = &d
	}

	return &Order{
		id:            id,
		number:        number,
		key:           key,
		storeName:     storeName,
		customer:      customer,
		items:         items,
		shipment:      shipment,
		deliverBy:     deadline,
		tagIDs:        append([]int(nil), tagIDs...),
		rates:         make(map[string][]ServicePrice),
		serviceCodes:  make(map[string]string),
		status:        Setup,
		isConstructed: true,
	}, nil
}

// Validate ensures the Order instance was properly constructed through NewOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// ID returns the platform order id.
func (o *Order) ID() int64 { return o.id }

// Number returns the merchant-facing order number.
func (o *Order) Number() string { return o.number }

// Key returns the platform order key.
func (o *Order) Key() string { return o.key }

// StoreName returns the sales-channel (store) name the order came from.
func (o *Order) StoreName() string { return o.storeName }

// Customer returns the buyer record including both addresses.
func (o *Order) Customer() Customer { return o.customer }

// Items returns the order line items.
func (o *Order) Items() []Item { return o.items }

// Shipment returns the mutable packaging sub-record.
// Pipeline stages write resolved dimensions, ship date and warehouse into it.
func (o *Order) Shipment() *Shipment { return o.shipment }

// DeliverBy returns the delivery deadline, or nil when upstream data
// carried none.
func (o *Order) DeliverBy() *time.Time {
	if o.deliverBy == nil {
		return nil
	}
	d := *o.deliverBy
	return &d
}

// TagIDs returns the platform tags currently known for the order.
func (o *Order) TagIDs() []int {
	return append([]int(nil), o.tagIDs...)
}

// HasTag reports whether the order already carries the given platform tag.
func (o *Order) HasTag(tagID int) bool {
	for _, id := range o.tagIDs {
		if id == tagID {
			return true
		}
	}
	return false
}

// RecordTag remembers a platform tag applied during this attempt.
func (o *Order) RecordTag(tagID int) {
	if !o.HasTag(tagID) {
		o.tagIDs = append(o.tagIDs, tagID)
	}
}

// MarkClassified records the classifier's output and advances the attempt
// to Classified. The eligible carrier list order is preserved: it is the
// tie-break order for rate merging.
func (o *Order) MarkClassified(flags Flags, tradingPartner string, eligibleCarriers []string) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if tradingPartner == "" {
		return errs.NewValueIsRequiredError("trading partner")
	}

	newStatus, err := o.status.Classify()
	if err != nil {
		return err
	}

	o.flags = flags
	o.tradingPartner = tradingPartner
	o.eligibleCarriers = append([]string(nil), eligibleCarriers...)
	o.status = newStatus
	return nil
}

// Flags returns the classification flags.
func (o *Order) Flags() Flags { return o.flags }

// IsSingleStream reports whether the order carries a protected SKU.
func (o *Order) IsSingleStream() bool { return o.flags.SingleStream }

// IsPOBox reports whether the order ships to a PO Box.
func (o *Order) IsPOBox() bool { return o.flags.POBox }

// IsExpedited reports whether the order requested an expedited service.
func (o *Order) IsExpedited() bool { return o.flags.Expedited }

// TradingPartner returns the canonical trading-partner name.
func (o *Order) TradingPartner() string { return o.tradingPartner }

// EligibleCarriers returns the merchant's ordered eligible carrier codes.
// Carriers not in this list are never queried for rates.
func (o *Order) EligibleCarriers() []string {
	return append([]string(nil), o.eligibleCarriers...)
}

// HasEligibleCarrier reports whether the carrier may be queried for this order.
func (o *Order) HasEligibleCarrier(code string) bool {
	for _, c := range o.eligibleCarriers {
		if c == code {
			return true
		}
	}
	return false
}

// RecordCarrierRates appends one carrier's priced services to the rate table
// and records the service-name-to-code mapping needed for write-back.
// Only allowed while the attempt is in Classified, i.e. during the
// rate-gathering stage.
func (o *Order) RecordCarrierRates(carrier string, services []RatedService) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if carrier == "" {
		return errs.NewValueIsRequiredError("carrier")
	}
	if o.status != Classified {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to record rates", o.status))
	}

	if _, seen := o.rates[carrier]; !seen {
		o.ratedOrder = append(o.ratedOrder, carrier)
	}
	for _, svc := range services {
		o.rates[carrier] = append(o.rates[carrier], ServicePrice{Service: svc.Name, Price: svc.Price})
		o.serviceCodes[svc.Name] = svc.Code
	}
	return nil
}

// RatedCarriers returns the carriers with rate-table entries, in the order
// they were queried.
func (o *Order) RatedCarriers() []string {
	return append([]string(nil), o.ratedOrder...)
}

// CarrierRates returns the rate-table rows observed for one carrier.
func (o *Order) CarrierRates(carrier string) []ServicePrice {
	return append([]ServicePrice(nil), o.rates[carrier]...)
}

// HasRates reports whether any carrier produced at least one priced service.
func (o *Order) HasRates() bool {
	for _, rows := range o.rates {
		if len(rows) > 0 {
			return true
		}
	}
	return false
}

// PriceFor looks up the observed price for a (carrier, service) pair.
func (o *Order) PriceFor(carrier, service string) (decimal.Decimal, bool) {
	for _, row := range o.rates[carrier] {
		if row.Service == service {
			return row.Price, true
		}
	}
	return decimal.Decimal{}, false
}

// ServiceCode returns the platform service code for a service name observed
// while gathering rates.
func (o *Order) ServiceCode(serviceName string) (string, bool) {
	code, ok := o.serviceCodes[serviceName]
	return code, ok
}

// ClearRates discards the rate table so a replayed attempt can gather rates
// from scratch. Only allowed while rates are still being gathered.
func (o *Order) ClearRates() error {
	if err := o.Validate(); err != nil {
		return err
	}
	if o.status != Classified {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to clear rates", o.status))
	}

	o.rates = make(map[string][]ServicePrice)
	o.ratedOrder = nil
	o.serviceCodes = make(map[string]string)
	return nil
}

// MarkRatesGathered advances the attempt to RatesGathered once every
// eligible carrier has been queried.
func (o *Order) MarkRatesGathered() error {
	if err := o.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.GatherRates()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// SetWinningRate records the champion candidate and advances the attempt to
// Selected.
//
// The candidate must reference a (carrier, service) pair present in the rate
// table at the same price; otherwise ErrRateNotInTable is returned. This is
// the aggregate's guard against selecting a price that was never actually
// quoted for this package.
func (o *Order) SetWinningRate(candidate rate.Candidate) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := candidate.Validate(); err != nil {
		return err
	}

	price, ok := o.PriceFor(candidate.Carrier(), candidate.Service())
	if !ok || !price.Equal(candidate.Price()) {
		return ErrRateNotInTable
	}

	newStatus, err := o.status.Select()
	if err != nil {
		return err
	}

	o.winningRate = &candidate
	o.status = newStatus
	return nil
}

// WinningRate returns the selected rate, or nil before selection.
func (o *Order) WinningRate() *rate.Candidate {
	return o.winningRate
}

// MarkWrittenBack records a successful write-back, the terminal success state.
func (o *Order) MarkWrittenBack() error {
	if err := o.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.CompleteWriteBack()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Fail moves the attempt into the absorbing Failed state with the given reason.
func (o *Order) Fail(reason FailureReason) error {
	if err := o.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.Fail()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.failureReason = reason
	return nil
}

// Status returns the current attempt status.
func (o *Order) Status() Status { return o.status }

// FailureReason returns the reason recorded by Fail, or the zero value while
// the attempt has not failed.
func (o *Order) FailureReason() FailureReason { return o.failureReason }
