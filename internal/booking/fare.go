package booking

import (
	"github.com/shopspring/decimal"

	"github.com/iliyamo/airline-ticket-booking/internal/model"
)

// ChildDiscountPercent is the fixed discount applied to child tickets.  It
// takes precedence over any coupon.
const ChildDiscountPercent = 50

var oneHundred = decimal.NewFromInt(100)

// FareInput is everything needed to price one ticket.  The referenced
// catalog records are passed in resolved form so that pricing stays a pure
// computation.
type FareInput struct {
	Row             int
	HasLuggage      bool
	LuggageWeightKg *decimal.Decimal
	IsChild         bool
	Meal            *model.MealOption
	Extras          []model.EntertainmentItem
	Snacks          []model.SnackItem
}

// FareResult is the priced outcome.  HasLuggage carries the normalized flag:
// a positive luggage weight forces it to true even when the request said
// otherwise, so inconsistent client input still gets charged.
type FareResult struct {
	Price           decimal.Decimal
	DiscountPercent int
	HasLuggage      bool
}

// PriceTicket computes a single ticket's price, in this fixed order:
//
//  1. base fare by cabin class (business when the row is below the
//     flight's economy boundary, economy otherwise)
//  2. plus the meal option's price
//  3. luggage normalization (positive weight implies luggage)
//  4. plus luggage weight times the flight's per-kg rate
//  5. plus every selected entertainment and snack item
//  6. discount: child fare beats coupon beats none
//  7. round half-up to 2 decimal places
//
// All arithmetic is exact decimal; binary floating point never enters the
// pipeline.  The input is not mutated.
func PriceTicket(in FareInput, flight *model.Flight, disc ResolvedDiscount) FareResult {
	price := flight.FareEconomy
	if IsBusinessRow(in.Row, flight.RowsEconomyFrom) {
		price = flight.FareBusiness
	}

	if in.Meal != nil {
		price = price.Add(in.Meal.Price)
	}

	hasLuggage := in.HasLuggage
	if !hasLuggage && in.LuggageWeightKg != nil && in.LuggageWeightKg.IsPositive() {
		hasLuggage = true
	}
	if hasLuggage && in.LuggageWeightKg != nil {
		price = price.Add(in.LuggageWeightKg.Mul(flight.LuggagePricePerKg))
	}

	for _, item := range in.Extras {
		price = price.Add(item.Price)
	}
	for _, item := range in.Snacks {
		price = price.Add(item.Price)
	}

	discount := 0
	switch {
	case in.IsChild:
		discount = ChildDiscountPercent
	case disc.Percent > 0:
		discount = disc.Percent
	}
	if discount > 0 {
		factor := oneHundred.Sub(decimal.NewFromInt(int64(discount))).Div(oneHundred)
		price = price.Mul(factor)
	}

	// Round is half away from zero, which equals round-half-up for the
	// non-negative amounts produced here.
	return FareResult{
		Price:           price.Round(2),
		DiscountPercent: discount,
		HasLuggage:      hasLuggage,
	}
}
