package model

import "github.com/shopspring/decimal"

// Meal types as stored in meal_options.meal_type.
const (
	MealStandard   = "STANDARD"
	MealVegetarian = "VEGETARIAN"
	MealChildren   = "CHILDREN"
	MealNone       = "NO_MEAL"
)

// MealOption is a priced in-flight meal choice.  Every ticket references
// exactly one meal option.  Reference data; immutable from the booking
// workflow's point of view.
type MealOption struct {
	ID       uint64          // meal_options.id
	Name     string          // meal_options.name
	MealType string          // meal_options.meal_type
	WeightG  *int            // meal_options.weight_g (nullable)
	Price    decimal.Decimal // meal_options.price
}

// EntertainmentItem is an optional comfort or entertainment extra (pillow,
// tablet, wifi...) attachable to a ticket via the ticket_extras join table.
type EntertainmentItem struct {
	ID    uint64          // entertainment_items.id
	Name  string          // entertainment_items.name
	Price decimal.Decimal // entertainment_items.price
}

// SnackItem is an optional snack or drink attachable to a ticket via the
// ticket_snacks join table.
type SnackItem struct {
	ID    uint64          // snack_items.id
	Name  string          // snack_items.name
	Price decimal.Decimal // snack_items.price
}
