package kernel

import (
	"fmt"

	"rateshop/internal/pkg/errs"
)

var (
	// ErrDimensionsNotConstructed indicates a Dimensions value that was not created
	// via NewDimensions.
	ErrDimensionsNotConstructed = errs.NewValueIsRequiredError("Dimensions must be created via NewDimensions")

	// ErrWeightNotConstructed indicates a Weight value that was not created via NewWeight.
	ErrWeightNotConstructed = errs.NewValueIsRequiredError("Weight must be created via NewWeight")
)

// ouncesPerKilogram converts package weight for carriers whose transit APIs
// take metric weight.
const ouncesPerKilogram = 35.274

// Dimensions is a value object describing the outer package size in inches.
// It is immutable once constructed; all three sides must be positive.
//
// Dimensions are derived once per order by the dimension resolver and must
// never be overwritten by a later resolution pass.
type Dimensions struct {
	length float64
	width  float64
	height float64

	guard ConstructorGuard
}

// NewDimensions creates a validated Dimensions value.
// All sides are in inches and must be greater than zero.
func NewDimensions(length, width, height float64) (Dimensions, error) {
	for name, side := range map[string]float64{"length": length, "width": width, "height": height} {
		if side <= 0 {
			return Dimensions{}, errs.NewValueIsInvalidErrorWithCause(name,
				fmt.Errorf("%v is not greater than 0", side))
		}
	}

	return Dimensions{
		length: length,
		width:  width,
		height: height,
		guard:  NewConstructorGuard(),
	}, nil
}

// Length returns the package length in inches.
func (d Dimensions) Length() float64 {
	return d.length
}

// Width returns the package width in inches.
func (d Dimensions) Width() float64 {
	return d.width
}

// Height returns the package height in inches.
func (d Dimensions) Height() float64 {
	return d.height
}

// Validate ensures the Dimensions value was created via NewDimensions.
func (d Dimensions) Validate() error {
	return d.guard.Validate(ErrDimensionsNotConstructed)
}

// Weight is a value object describing package weight in ounces.
// It is immutable once constructed and must be positive.
type Weight struct {
	ounces float64

	guard ConstructorGuard
}

// NewWeight creates a validated Weight value from ounces.
func NewWeight(ounces float64) (Weight, error) {
	if ounces <= 0 {
		return Weight{}, errs.NewValueIsInvalidErrorWithCause("ounces",
			fmt.Errorf("%v is not greater than 0", ounces))
	}

	return Weight{
		ounces: ounces,
		guard:  NewConstructorGuard(),
	}, nil
}

// Ounces returns the weight in ounces.
func (w Weight) Ounces() float64 {
	return w.ounces
}

// Kilograms returns the weight converted to kilograms, rounded by the caller
// as needed for carrier APIs.
func (w Weight) Kilograms() float64 {
	return w.ounces / ouncesPerKilogram
}

// Validate ensures the Weight value was created via NewWeight.
func (w Weight) Validate() error {
	return w.guard.Validate(ErrWeightNotConstructed)
}
