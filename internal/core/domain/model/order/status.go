package order

import (
	"fmt"

	"rateshop/internal/pkg/errs"
)

// Status represents the lifecycle state of a single order-processing attempt.
// It implements a state machine with defined transitions so an attempt always
// moves forward through the pipeline or into the absorbing Failed state.
//
// State transitions:
//
//	Setup ──> Classified ──> RatesGathered ──> Selected ──> WrittenBack
//	              │                                             ▲
//	              └─────────────────────────────────────────────┘
//	        (externally-routed orders skip rate shopping)
//
//	any non-terminal state ──> Failed(reason)
//
// WrittenBack and Failed are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Setup is the initial status of a processing attempt, before package
	// dimensions and the ship date have been resolved.
	Setup

	// Classified indicates the order's flags, trading partner and eligible
	// carrier set have been derived.
	Classified

	// RatesGathered indicates the rate table has been populated from every
	// eligible carrier that accepted the package.
	RatesGathered

	// Selected indicates a winning rate has been chosen from the rate table.
	Selected

	// WrittenBack indicates the decision was successfully written to the
	// order-management platform. Terminal success state.
	WrittenBack

	// Failed is the absorbing failure state, reachable from any
	// non-terminal status. The failure reason is kept on the Order.
	Failed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:       "Unknown",
		Setup:         "Setup",
		Classified:    "Classified",
		RatesGathered: "RatesGathered",
		Selected:      "Selected",
		WrittenBack:   "WrittenBack",
		Failed:        "Failed",
	}
}

// String returns the human-readable name of the status.
// It implements fmt.Stringer and is safe on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Validate checks if the Status value is one of the defined states.
func (s Status) Validate() error {
	if s <= Unknown || s > Failed {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// IsTerminal reports whether no further transitions are allowed.
func (s Status) IsTerminal() bool {
	return s == WrittenBack || s == Failed
}

// Classify transitions the attempt to Classified.
// Only valid from Setup.
func (s Status) Classify() (Status, error) {
	if s != Setup {
		return 0, transitionError(s, Classified)
	}
	return Classified, nil
}

// GatherRates transitions the attempt to RatesGathered.
// Only valid from Classified; the caller must additionally guarantee a
// deliver-by deadline is present before rate shopping begins.
func (s Status) GatherRates() (Status, error) {
	if s != Classified {
		return 0, transitionError(s, RatesGathered)
	}
	return RatesGathered, nil
}

// Select transitions the attempt to Selected.
// Only valid from RatesGathered.
func (s Status) Select() (Status, error) {
	if s != RatesGathered {
		return 0, transitionError(s, Selected)
	}
	return Selected, nil
}

// CompleteWriteBack transitions the attempt to WrittenBack.
//
// Valid transitions:
//   - Selected -> WrittenBack (rate-shopped orders)
//   - Classified -> WrittenBack (orders whose carrier is managed externally
//     and which only receive a ship-date update)
func (s Status) CompleteWriteBack() (Status, error) {
	if s != Selected && s != Classified {
		return 0, transitionError(s, WrittenBack)
	}
	return WrittenBack, nil
}

// Fail transitions the attempt to Failed.
// Valid from every state except WrittenBack; Failed absorbs repeated failures.
func (s Status) Fail() (Status, error) {
	if s == WrittenBack {
		return 0, transitionError(s, Failed)
	}
	return Failed, nil
}

func transitionError(from, to Status) error {
	return errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%s is not a valid status to transition to %s", from, to))
}
