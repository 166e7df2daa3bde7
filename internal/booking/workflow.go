package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/airline-ticket-booking/internal/model"
)

// TicketSpec is one requested ticket of a booking request, exactly as the
// client sent it.  A zero MealOptionID means no meal was selected and an
// empty CouponCode means no coupon was supplied.
type TicketSpec struct {
	FlightID        uint64
	Row             int
	Letter          string
	HasLuggage      bool
	LuggageWeightKg *decimal.Decimal
	IsChild         bool
	MealOptionID    uint64
	ExtraIDs        []uint64
	SnackIDs        []uint64
	CouponCode      string
}

// Catalog is the read side the workflow depends on.  Implementations must
// return the package sentinels (ErrFlightNotFound, ErrMissingMealOption,
// ErrUnknownItem, ErrUnknownCoupon), possibly wrapped, when a reference
// cannot be resolved; any other error is treated as infrastructure failure
// and aborts the whole request.
type Catalog interface {
	FlightByID(ctx context.Context, id uint64) (*model.Flight, *model.Airplane, error)
	MealOptionByID(ctx context.Context, id uint64) (*model.MealOption, error)
	EntertainmentByIDs(ctx context.Context, ids []uint64) ([]model.EntertainmentItem, error)
	SnacksByIDs(ctx context.Context, ids []uint64) ([]model.SnackItem, error)
	CouponByCode(ctx context.Context, code string) (*model.DiscountCoupon, error)
	SoldSeats(ctx context.Context, flightID uint64) ([]Seat, error)
}

// PricedTicket is a fully validated and priced ticket, ready to persist.
// Coupon is non-nil only when a coupon discount actually fired.
type PricedTicket struct {
	Spec            TicketSpec
	Flight          *model.Flight
	IsBusiness      bool
	HasLuggage      bool
	DiscountPercent int
	Price           decimal.Decimal
	Meal            *model.MealOption
	Extras          []model.EntertainmentItem
	Snacks          []model.SnackItem
	Coupon          *model.DiscountCoupon
}

// PreparedOrder is the outcome of a successful Prepare: every ticket priced
// and the order total rounded to cents.
type PreparedOrder struct {
	Tickets []PricedTicket
	Total   decimal.Decimal
}

// Workflow validates and prices booking requests.  It holds no mutable
// state; the seat-uniqueness constraint in the database remains the final
// arbiter against concurrent bookings, the occupancy check here is a
// best-effort pre-check.
type Workflow struct {
	Catalog Catalog
}

// NewWorkflow constructs a Workflow over the given catalog.
func NewWorkflow(catalog Catalog) *Workflow {
	if catalog == nil {
		panic("nil catalog passed to NewWorkflow")
	}
	return &Workflow{Catalog: catalog}
}

// staged carries one ticket's resolved references between the validation
// and pricing phases.
type staged struct {
	spec     TicketSpec
	flight   *model.Flight
	airplane *model.Airplane
	meal     *model.MealOption
	extras   []model.EntertainmentItem
	snacks   []model.SnackItem
	coupon   *model.DiscountCoupon
}

// Prepare runs the Validating and Pricing phases over a booking request.
// Every ticket is validated before anything is priced, and all field errors
// are accumulated and returned together as a ValidationErrors value; the
// request fails atomically when any ticket is invalid.  An empty request
// fails with ErrEmptyOrder.  Persisting the returned PreparedOrder is the
// caller's transaction.
func (w *Workflow) Prepare(ctx context.Context, specs []TicketSpec, now time.Time) (*PreparedOrder, error) {
	if len(specs) == 0 {
		return nil, ErrEmptyOrder
	}

	var verrs ValidationErrors
	fail := func(i int, field, msg string, sentinel error) {
		verrs = append(verrs, FieldError{Ticket: i, Field: field, Message: msg, Err: sentinel})
	}

	// Occupancy sets are cached per flight so a multi-ticket order hits the
	// catalog once per flight, and requested seats are tracked so two
	// tickets in the same request cannot claim one seat.
	soldByFlight := make(map[uint64]map[Seat]struct{})
	requested := make(map[uint64]map[Seat]struct{})

	stagedTickets := make([]staged, 0, len(specs))
	for i, spec := range specs {
		st := staged{spec: spec}

		flight, airplane, err := w.Catalog.FlightByID(ctx, spec.FlightID)
		if err != nil {
			if errors.Is(err, ErrFlightNotFound) {
				fail(i, "flight", fmt.Sprintf("flight %d does not exist", spec.FlightID), ErrFlightNotFound)
				stagedTickets = append(stagedTickets, st)
				continue
			}
			return nil, err
		}
		st.flight, st.airplane = flight, airplane

		layout := SeatLayout{Rows: airplane.Rows, Letters: airplane.LettersInRow}
		seat := Seat{Row: spec.Row, Letter: spec.Letter}
		if !layout.Contains(seat) {
			fail(i, "seat", fmt.Sprintf("the row must be in range 1 - %d and the letter one of %q",
				airplane.Rows, airplane.LettersInRow), ErrInvalidSeat)
		} else {
			sold, ok := soldByFlight[spec.FlightID]
			if !ok {
				list, err := w.Catalog.SoldSeats(ctx, spec.FlightID)
				if err != nil {
					return nil, err
				}
				sold = make(map[Seat]struct{}, len(list))
				for _, s := range list {
					sold[s] = struct{}{}
				}
				soldByFlight[spec.FlightID] = sold
			}
			_, taken := sold[seat]
			if !taken {
				if req := requested[spec.FlightID]; req != nil {
					_, taken = req[seat]
				}
			}
			if taken {
				fail(i, "seat", fmt.Sprintf("seat %d%s is already taken on flight %d",
					seat.Row, seat.Letter, spec.FlightID), ErrSeatOccupied)
			} else {
				if requested[spec.FlightID] == nil {
					requested[spec.FlightID] = make(map[Seat]struct{})
				}
				requested[spec.FlightID][seat] = struct{}{}
			}
		}

		if spec.LuggageWeightKg != nil && spec.LuggageWeightKg.IsNegative() {
			fail(i, "luggage_weight_kg", "luggage weight cannot be negative", ErrInvalidLuggageWeight)
		}

		if spec.MealOptionID == 0 {
			fail(i, "meal_option", "a meal option is required", ErrMissingMealOption)
		} else if meal, err := w.Catalog.MealOptionByID(ctx, spec.MealOptionID); err != nil {
			if !errors.Is(err, ErrMissingMealOption) {
				return nil, err
			}
			fail(i, "meal_option", fmt.Sprintf("meal option %d does not exist", spec.MealOptionID), ErrMissingMealOption)
		} else {
			st.meal = meal
		}

		if len(spec.ExtraIDs) > 0 {
			extras, err := w.Catalog.EntertainmentByIDs(ctx, spec.ExtraIDs)
			if err != nil {
				if !errors.Is(err, ErrUnknownItem) {
					return nil, err
				}
				fail(i, "extra_entertainment_and_comfort", "one or more items do not exist", ErrUnknownItem)
			} else {
				st.extras = extras
			}
		}
		if len(spec.SnackIDs) > 0 {
			snacks, err := w.Catalog.SnacksByIDs(ctx, spec.SnackIDs)
			if err != nil {
				if !errors.Is(err, ErrUnknownItem) {
					return nil, err
				}
				fail(i, "snacks_and_drinks", "one or more items do not exist", ErrUnknownItem)
			} else {
				st.snacks = snacks
			}
		}

		if spec.CouponCode != "" && !ValidCouponCode(spec.CouponCode) {
			fail(i, "discount_coupon", fmt.Sprintf("coupon code %q is malformed", spec.CouponCode), ErrUnknownCoupon)
		} else if spec.CouponCode != "" {
			coupon, err := w.Catalog.CouponByCode(ctx, spec.CouponCode)
			if err != nil {
				if !errors.Is(err, ErrUnknownCoupon) {
					return nil, err
				}
				fail(i, "discount_coupon", fmt.Sprintf("coupon code %q does not exist", spec.CouponCode), ErrUnknownCoupon)
			} else {
				st.coupon = coupon
			}
		}

		stagedTickets = append(stagedTickets, st)
	}

	if len(verrs) > 0 {
		return nil, verrs
	}

	prepared := &PreparedOrder{Tickets: make([]PricedTicket, 0, len(stagedTickets))}
	total := decimal.Zero
	for _, st := range stagedTickets {
		disc := ResolveDiscount(st.coupon, now)
		res := PriceTicket(FareInput{
			Row:             st.spec.Row,
			HasLuggage:      st.spec.HasLuggage,
			LuggageWeightKg: st.spec.LuggageWeightKg,
			IsChild:         st.spec.IsChild,
			Meal:            st.meal,
			Extras:          st.extras,
			Snacks:          st.snacks,
		}, st.flight, disc)

		// The coupon is recorded on the ticket only when its discount is the
		// one that fired; a child fare, an expired coupon or a zero-percent
		// coupon leaves it off.
		var coupon *model.DiscountCoupon
		if !st.spec.IsChild && disc.Coupon != nil && disc.Percent > 0 && res.DiscountPercent == disc.Percent {
			coupon = disc.Coupon
		}

		prepared.Tickets = append(prepared.Tickets, PricedTicket{
			Spec:            st.spec,
			Flight:          st.flight,
			IsBusiness:      IsBusinessRow(st.spec.Row, st.flight.RowsEconomyFrom),
			HasLuggage:      res.HasLuggage,
			DiscountPercent: res.DiscountPercent,
			Price:           res.Price,
			Meal:            st.meal,
			Extras:          st.extras,
			Snacks:          st.snacks,
			Coupon:          coupon,
		})
		total = total.Add(res.Price)
	}
	prepared.Total = total.Round(2)
	return prepared, nil
}
