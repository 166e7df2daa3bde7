package booking

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the booking workflow.  Catalog implementations must
// return the matching sentinel (possibly wrapped) so that validation can
// classify failures; handlers translate them into HTTP responses.
var (
	// ErrEmptyOrder rejects a booking request with no tickets.
	ErrEmptyOrder = errors.New("order must contain at least one ticket")
	// ErrFlightNotFound signals a ticket referencing a missing flight.
	ErrFlightNotFound = errors.New("flight not found")
	// ErrInvalidSeat signals a seat coordinate outside the airplane grid.
	ErrInvalidSeat = errors.New("invalid seat")
	// ErrSeatOccupied signals a seat already sold on the flight.
	ErrSeatOccupied = errors.New("seat already taken")
	// ErrInvalidLuggageWeight signals a negative luggage weight.
	ErrInvalidLuggageWeight = errors.New("invalid luggage weight")
	// ErrMissingMealOption signals an absent or unresolvable meal option.
	ErrMissingMealOption = errors.New("meal option missing")
	// ErrUnknownItem signals an entertainment or snack id that does not exist.
	ErrUnknownItem = errors.New("unknown add-on item")
	// ErrUnknownCoupon signals a coupon code with no matching coupon.
	ErrUnknownCoupon = errors.New("unknown coupon code")
)

// FieldError ties a validation failure to the ticket and field it
// concerns.  Err wraps one of the sentinel errors above.
type FieldError struct {
	Ticket  int    `json:"ticket"`
	Field   string `json:"field"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("ticket %d: %s: %s", e.Ticket, e.Field, e.Message)
}

// Unwrap exposes the sentinel for errors.Is.
func (e FieldError) Unwrap() error { return e.Err }

// ValidationErrors accumulates every field error found across all tickets of
// a booking request.  The request fails as a whole: when this is non-empty
// nothing is persisted and the caller receives the full list at once.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, fe := range v {
		msgs[i] = fe.Error()
	}
	return strings.Join(msgs, "; ")
}

// Unwrap lets errors.Is match any of the accumulated sentinels.
func (v ValidationErrors) Unwrap() []error {
	errs := make([]error, len(v))
	for i, fe := range v {
		errs[i] = fe
	}
	return errs
}
