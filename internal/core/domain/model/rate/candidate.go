package rate

import (
	"fmt"
	"time"

	"rateshop/internal/core/domain/model/kernel"
	"rateshop/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrCandidateIsNotConstructed is returned when a Candidate instance was not
// created through the NewCandidate factory method.
var ErrCandidateIsNotConstructed = errs.NewValueIsRequiredError("Candidate must be created via NewCandidate")

// GroundSaverService is the service name of the degraded ground-delivery
// network. It is synthesized from the regular ground transit estimate by the
// UPS rater and is never permitted for single-stream (protected SKU) orders.
const GroundSaverService = "UPS Ground Saver"

// Candidate is an immutable value object representing one shippable option
// returned by a carrier rater: a (carrier, service, price) tuple plus the
// estimated delivery date when the carrier's transit API provides one.
//
// Candidates are only comparable when produced for the same package
// definition and currency; the raters guarantee this by building every
// candidate from the same order snapshot.
type Candidate struct {
	carrier      string
	service      string
	price        decimal.Decimal
	deliveryDate *time.Time

	guard kernel.ConstructorGuard
}

// NewCandidate creates a validated rate candidate.
// The carrier and service must be non-empty and the price must be positive.
// deliveryDate may be nil for carriers whose pricing source carries no
// transit estimate.
func NewCandidate(carrier, service string, price decimal.Decimal, deliveryDate *time.Time) (Candidate, error) {
	if carrier == "" {
		return Candidate{}, errs.NewValueIsRequiredError("carrier")
	}
	if service == "" {
		return Candidate{}, errs.NewValueIsRequiredError("service")
	}
	if price.Sign() <= 0 {
		return Candidate{}, errs.NewValueIsInvalidErrorWithCause("price",
			fmt.Errorf("%s is not greater than 0", price))
	}

	var date *time.Time
	if deliveryDate != nil {
		d := *deliveryDate
		date = &d
	}

	return Candidate{
		carrier:      carrier,
		service:      service,
		price:        price,
		deliveryDate: date,
		guard:        kernel.NewConstructorGuard(),
	}, nil
}

// Carrier returns the carrier code, e.g. "ups_walleted".
func (c Candidate) Carrier() string {
	return c.carrier
}

// Service returns the carrier service name, e.g. "UPS® Ground".
func (c Candidate) Service() string {
	return c.service
}

// Price returns the total shippable price for this candidate.
func (c Candidate) Price() decimal.Decimal {
	return c.price
}

// DeliveryDate returns the estimated delivery date, or nil when the rater
// had no transit estimate for this service.
func (c Candidate) DeliveryDate() *time.Time {
	if c.deliveryDate == nil {
		return nil
	}
	d := *c.deliveryDate
	return &d
}

// IsGroundSaver reports whether this candidate is the synthesized
// degraded-network ground service.
func (c Candidate) IsGroundSaver() bool {
	return c.service == GroundSaverService
}

// Validate ensures the Candidate was created via NewCandidate.
func (c Candidate) Validate() error {
	return c.guard.Validate(ErrCandidateIsNotConstructed)
}

func (c Candidate) String() string {
	if c.deliveryDate != nil {
		return fmt.Sprintf("%s/%s $%s by %s", c.carrier, c.service, c.price, c.deliveryDate.Format("2006-01-02"))
	}
	return fmt.Sprintf("%s/%s $%s", c.carrier, c.service, c.price)
}
