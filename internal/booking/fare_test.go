package booking

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/airline-ticket-booking/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testFlight() *model.Flight {
	return &model.Flight{
		ID:                1,
		FareEconomy:       dec("175.00"),
		FareBusiness:      dec("420.00"),
		RowsEconomyFrom:   4,
		LuggagePricePerKg: dec("1.99"),
	}
}

func TestPriceTicketEconomyWithAddOnsAndCoupon(t *testing.T) {
	weight := dec("10")
	in := FareInput{
		Row:             7,
		HasLuggage:      true,
		LuggageWeightKg: &weight,
		Meal:            &model.MealOption{ID: 1, Price: dec("8.99")},
		Extras:          []model.EntertainmentItem{{ID: 1, Price: dec("4.99")}},
		Snacks:          []model.SnackItem{{ID: 1, Price: dec("2.99")}},
	}
	// 175 + 8.99 + 10*1.99 + 4.99 + 2.99 = 211.87
	res := PriceTicket(in, testFlight(), ResolvedDiscount{})
	require.True(t, res.Price.Equal(dec("211.87")), "got %s", res.Price)
	assert.Zero(t, res.DiscountPercent)

	// 30% off: 211.87 * 0.70 = 148.309 -> 148.31
	coupon := &model.DiscountCoupon{ID: 9, DiscountPercent: 30}
	res = PriceTicket(in, testFlight(), ResolvedDiscount{Percent: 30, Coupon: coupon})
	require.True(t, res.Price.Equal(dec("148.31")), "got %s", res.Price)
	assert.Equal(t, 30, res.DiscountPercent)
}

func TestPriceTicketBusinessFare(t *testing.T) {
	in := FareInput{Row: 2, Meal: &model.MealOption{Price: dec("8.99")}}

	res := PriceTicket(in, testFlight(), ResolvedDiscount{})

	require.True(t, res.Price.Equal(dec("428.99")), "got %s", res.Price)
}

func TestPriceTicketChildDiscountBeatsCoupon(t *testing.T) {
	in := FareInput{Row: 7, IsChild: true, Meal: &model.MealOption{Price: dec("5.00")}}
	coupon := &model.DiscountCoupon{DiscountPercent: 30}

	// (175 + 5) * 0.5 = 90, the 30% coupon never fires
	res := PriceTicket(in, testFlight(), ResolvedDiscount{Percent: 30, Coupon: coupon})

	require.True(t, res.Price.Equal(dec("90.00")), "got %s", res.Price)
	assert.Equal(t, ChildDiscountPercent, res.DiscountPercent)
}

func TestPriceTicketLuggageNormalization(t *testing.T) {
	weight := dec("5")
	in := FareInput{Row: 7, HasLuggage: false, LuggageWeightKg: &weight}

	// positive weight forces has_luggage true and charges for it
	res := PriceTicket(in, testFlight(), ResolvedDiscount{})

	assert.True(t, res.HasLuggage)
	require.True(t, res.Price.Equal(dec("184.95")), "got %s", res.Price)
}

func TestPriceTicketLuggageFlagWithoutWeight(t *testing.T) {
	in := FareInput{Row: 7, HasLuggage: true}

	res := PriceTicket(in, testFlight(), ResolvedDiscount{})

	assert.True(t, res.HasLuggage)
	require.True(t, res.Price.Equal(dec("175.00")), "flag without weight adds nothing, got %s", res.Price)
}

func TestPriceTicketDeterministic(t *testing.T) {
	weight := dec("12.5")
	in := FareInput{
		Row:             3,
		LuggageWeightKg: &weight,
		Meal:            &model.MealOption{Price: dec("12.49")},
		Snacks:          []model.SnackItem{{Price: dec("1.99")}, {Price: dec("3.49")}},
	}
	disc := ResolvedDiscount{Percent: 15, Coupon: &model.DiscountCoupon{DiscountPercent: 15}}

	first := PriceTicket(in, testFlight(), disc)
	second := PriceTicket(in, testFlight(), disc)

	require.True(t, first.Price.Equal(second.Price))
	assert.Equal(t, first, second)
}
