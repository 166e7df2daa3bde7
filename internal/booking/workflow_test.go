package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/airline-ticket-booking/internal/model"
)

// fakeCatalog serves the workflow from in-memory maps, returning the
// package sentinels exactly like the repository-backed implementation.
type fakeCatalog struct {
	flights  map[uint64]*model.Flight
	airplane *model.Airplane
	meals    map[uint64]*model.MealOption
	extras   map[uint64]model.EntertainmentItem
	snacks   map[uint64]model.SnackItem
	coupons  map[string]*model.DiscountCoupon
	sold     map[uint64][]Seat
}

func (f *fakeCatalog) FlightByID(_ context.Context, id uint64) (*model.Flight, *model.Airplane, error) {
	fl, ok := f.flights[id]
	if !ok {
		return nil, nil, ErrFlightNotFound
	}
	return fl, f.airplane, nil
}

func (f *fakeCatalog) MealOptionByID(_ context.Context, id uint64) (*model.MealOption, error) {
	m, ok := f.meals[id]
	if !ok {
		return nil, ErrMissingMealOption
	}
	return m, nil
}

func (f *fakeCatalog) EntertainmentByIDs(_ context.Context, ids []uint64) ([]model.EntertainmentItem, error) {
	out := make([]model.EntertainmentItem, 0, len(ids))
	for _, id := range ids {
		item, ok := f.extras[id]
		if !ok {
			return nil, ErrUnknownItem
		}
		out = append(out, item)
	}
	return out, nil
}

func (f *fakeCatalog) SnacksByIDs(_ context.Context, ids []uint64) ([]model.SnackItem, error) {
	out := make([]model.SnackItem, 0, len(ids))
	for _, id := range ids {
		item, ok := f.snacks[id]
		if !ok {
			return nil, ErrUnknownItem
		}
		out = append(out, item)
	}
	return out, nil
}

func (f *fakeCatalog) CouponByCode(_ context.Context, code string) (*model.DiscountCoupon, error) {
	c, ok := f.coupons[code]
	if !ok {
		return nil, ErrUnknownCoupon
	}
	return c, nil
}

func (f *fakeCatalog) SoldSeats(_ context.Context, flightID uint64) ([]Seat, error) {
	return f.sold[flightID], nil
}

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		flights: map[uint64]*model.Flight{
			1: {
				ID:                1,
				FareEconomy:       dec("175.00"),
				FareBusiness:      dec("420.00"),
				RowsEconomyFrom:   4,
				LuggagePricePerKg: dec("1.99"),
			},
		},
		airplane: &model.Airplane{ID: 1, Name: "B737", Rows: 10, LettersInRow: "ABCDEFGH"},
		meals: map[uint64]*model.MealOption{
			1: {ID: 1, Name: "Chicken", Price: dec("8.99")},
		},
		extras: map[uint64]model.EntertainmentItem{
			1: {ID: 1, Name: "Headphones", Price: dec("4.99")},
		},
		snacks: map[uint64]model.SnackItem{
			1: {ID: 1, Name: "Cola", Price: dec("2.99")},
		},
		coupons: map[string]*model.DiscountCoupon{
			"SUMMER2025": {ID: 7, Code: "SUMMER2025", DiscountPercent: 30, ValidUntil: testNow.Add(24 * time.Hour)},
			"WINTER2024": {ID: 8, Code: "WINTER2024", DiscountPercent: 40, ValidUntil: testNow.Add(-24 * time.Hour)},
			"FREEBIE000": {ID: 9, Code: "FREEBIE000", DiscountPercent: 0, ValidUntil: testNow.Add(24 * time.Hour)},
		},
		sold: map[uint64][]Seat{
			1: {{Row: 5, Letter: "A"}},
		},
	}
}

func validSpec() TicketSpec {
	return TicketSpec{FlightID: 1, Row: 7, Letter: "C", MealOptionID: 1}
}

func TestPrepareEmptyOrder(t *testing.T) {
	w := NewWorkflow(newFakeCatalog())

	_, err := w.Prepare(context.Background(), nil, testNow)

	require.ErrorIs(t, err, ErrEmptyOrder)
}

func TestPrepareUnknownFlight(t *testing.T) {
	w := NewWorkflow(newFakeCatalog())
	spec := validSpec()
	spec.FlightID = 99

	_, err := w.Prepare(context.Background(), []TicketSpec{spec}, testNow)

	require.ErrorIs(t, err, ErrFlightNotFound)
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	require.Len(t, verrs, 1)
	assert.Equal(t, "flight", verrs[0].Field)
}

func TestPrepareIllegalSeat(t *testing.T) {
	w := NewWorkflow(newFakeCatalog())
	spec := validSpec()
	spec.Row = 11

	_, err := w.Prepare(context.Background(), []TicketSpec{spec}, testNow)

	require.ErrorIs(t, err, ErrInvalidSeat)
}

func TestPrepareOccupiedSeat(t *testing.T) {
	w := NewWorkflow(newFakeCatalog())
	spec := validSpec()
	spec.Row, spec.Letter = 5, "A"

	_, err := w.Prepare(context.Background(), []TicketSpec{spec}, testNow)

	require.ErrorIs(t, err, ErrSeatOccupied)
}

func TestPrepareDuplicateSeatInRequest(t *testing.T) {
	w := NewWorkflow(newFakeCatalog())
	first := validSpec()
	second := validSpec() // same seat on the same flight

	_, err := w.Prepare(context.Background(), []TicketSpec{first, second}, testNow)

	require.ErrorIs(t, err, ErrSeatOccupied)
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	require.Len(t, verrs, 1)
	assert.Equal(t, 1, verrs[0].Ticket, "the second ticket is the offender")
}

func TestPrepareMissingMeal(t *testing.T) {
	w := NewWorkflow(newFakeCatalog())
	spec := validSpec()
	spec.MealOptionID = 0

	_, err := w.Prepare(context.Background(), []TicketSpec{spec}, testNow)

	require.ErrorIs(t, err, ErrMissingMealOption)
}

func TestPrepareUnknownAddOn(t *testing.T) {
	w := NewWorkflow(newFakeCatalog())
	spec := validSpec()
	spec.SnackIDs = []uint64{42}

	_, err := w.Prepare(context.Background(), []TicketSpec{spec}, testNow)

	require.ErrorIs(t, err, ErrUnknownItem)
}

func TestPrepareUnknownCoupon(t *testing.T) {
	w := NewWorkflow(newFakeCatalog())
	spec := validSpec()
	spec.CouponCode = "NOSUCHCODE"

	_, err := w.Prepare(context.Background(), []TicketSpec{spec}, testNow)

	require.ErrorIs(t, err, ErrUnknownCoupon)
}

func TestPrepareMalformedCouponCode(t *testing.T) {
	w := NewWorkflow(newFakeCatalog())
	spec := validSpec()
	spec.CouponCode = "bad code!"

	_, err := w.Prepare(context.Background(), []TicketSpec{spec}, testNow)

	require.ErrorIs(t, err, ErrUnknownCoupon, "malformed codes are rejected without a lookup")
}

func TestPrepareAccumulatesErrorsAcrossTickets(t *testing.T) {
	w := NewWorkflow(newFakeCatalog())
	first := validSpec()
	first.Letter = "Z" // off the grid
	first.MealOptionID = 0
	second := validSpec()
	second.FlightID = 99

	_, err := w.Prepare(context.Background(), []TicketSpec{first, second}, testNow)

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	require.Len(t, verrs, 3, "every failure is reported, not just the first")
	assert.Equal(t, 0, verrs[0].Ticket)
	assert.Equal(t, 0, verrs[1].Ticket)
	assert.Equal(t, 1, verrs[2].Ticket)
}

func TestPrepareHappyPath(t *testing.T) {
	w := NewWorkflow(newFakeCatalog())
	weight := dec("10")
	spec := validSpec()
	spec.LuggageWeightKg = &weight
	spec.ExtraIDs = []uint64{1}
	spec.SnackIDs = []uint64{1}
	spec.CouponCode = "SUMMER2025"

	prepared, err := w.Prepare(context.Background(), []TicketSpec{spec}, testNow)

	require.NoError(t, err)
	require.Len(t, prepared.Tickets, 1)
	ticket := prepared.Tickets[0]
	// (175 + 8.99 + 10*1.99 + 4.99 + 2.99) * 0.70 = 148.31
	assert.True(t, ticket.Price.Equal(dec("148.31")), "got %s", ticket.Price)
	assert.Equal(t, 30, ticket.DiscountPercent)
	assert.True(t, ticket.HasLuggage, "positive weight normalizes the flag")
	assert.False(t, ticket.IsBusiness)
	require.NotNil(t, ticket.Coupon)
	assert.Equal(t, uint64(7), ticket.Coupon.ID)
	assert.True(t, prepared.Total.Equal(dec("148.31")))
}

func TestPrepareExpiredCouponDegradesSilently(t *testing.T) {
	w := NewWorkflow(newFakeCatalog())
	spec := validSpec()
	spec.CouponCode = "WINTER2024"

	prepared, err := w.Prepare(context.Background(), []TicketSpec{spec}, testNow)

	require.NoError(t, err, "expired coupon never fails the booking")
	ticket := prepared.Tickets[0]
	assert.Zero(t, ticket.DiscountPercent)
	assert.Nil(t, ticket.Coupon)
	assert.True(t, ticket.Price.Equal(dec("183.99")), "got %s", ticket.Price)
}

func TestPrepareZeroPercentCouponNotRecorded(t *testing.T) {
	w := NewWorkflow(newFakeCatalog())
	spec := validSpec()
	spec.CouponCode = "FREEBIE000"

	prepared, err := w.Prepare(context.Background(), []TicketSpec{spec}, testNow)

	require.NoError(t, err)
	ticket := prepared.Tickets[0]
	assert.Zero(t, ticket.DiscountPercent)
	assert.Nil(t, ticket.Coupon, "a coupon that discounts nothing leaves no reference")
	assert.True(t, ticket.Price.Equal(dec("183.99")), "got %s", ticket.Price)
}

func TestPrepareNegativeLuggageWeightRejected(t *testing.T) {
	w := NewWorkflow(newFakeCatalog())
	weight := dec("-5")
	spec := validSpec()
	spec.HasLuggage = true
	spec.LuggageWeightKg = &weight

	_, err := w.Prepare(context.Background(), []TicketSpec{spec}, testNow)

	require.ErrorIs(t, err, ErrInvalidLuggageWeight)
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	require.Len(t, verrs, 1)
	assert.Equal(t, "luggage_weight_kg", verrs[0].Field)
}

func TestPrepareChildKeepsCouponOffTicket(t *testing.T) {
	w := NewWorkflow(newFakeCatalog())
	spec := validSpec()
	spec.IsChild = true
	spec.CouponCode = "SUMMER2025"

	prepared, err := w.Prepare(context.Background(), []TicketSpec{spec}, testNow)

	require.NoError(t, err)
	ticket := prepared.Tickets[0]
	assert.Equal(t, ChildDiscountPercent, ticket.DiscountPercent)
	assert.Nil(t, ticket.Coupon, "child fare fired, the coupon is not recorded")
	// (175 + 8.99) * 0.5 = 92.00 rounded from 91.995
	assert.True(t, ticket.Price.Equal(dec("92.00")), "got %s", ticket.Price)
}

func TestPrepareMultiTicketTotal(t *testing.T) {
	w := NewWorkflow(newFakeCatalog())
	first := validSpec() // 175 + 8.99 = 183.99
	second := validSpec()
	second.Row, second.Letter = 2, "B" // business: 420 + 8.99 = 428.99

	prepared, err := w.Prepare(context.Background(), []TicketSpec{first, second}, testNow)

	require.NoError(t, err)
	require.Len(t, prepared.Tickets, 2)
	assert.False(t, prepared.Tickets[0].IsBusiness)
	assert.True(t, prepared.Tickets[1].IsBusiness)
	assert.True(t, prepared.Total.Equal(dec("612.98")), "got %s", prepared.Total)
}
