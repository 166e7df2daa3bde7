package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order groups the tickets bought in one booking request.  It is created
// exactly once, owns its tickets (deleting an order cascades to them) and is
// never mutated afterwards.  TotalPrice is the sum of the ticket prices,
// rounded half-up to cents at creation time.
//
// Fields:
//  ID         – primary key identifier.
//  Reference  – public UUID handed to clients.
//  UserID     – authenticated user who placed the order.
//  TotalPrice – order total, 2 decimal places.
//  CreatedAt  – server-assigned creation timestamp.
type Order struct {
	ID         uint64          // orders.id
	Reference  string          // orders.reference
	UserID     uint64          // orders.user_id
	TotalPrice decimal.Decimal // orders.total_price
	CreatedAt  time.Time       // orders.created_at
}

// Ticket is a single priced seat on a flight, created only as part of an
// order's atomic creation and immutable once priced.  The database enforces
// at most one ticket per (flight_id, row, letter).
//
// Fields:
//  ID              – primary key identifier.
//  OrderID         – owning order.
//  FlightID        – flight the seat is booked on.
//  Row, Letter     – seat coordinate on the airplane grid.
//  IsBusiness      – cabin class derived from the flight's boundary row.
//  HasLuggage      – whether checked luggage was booked (normalized: a
//                    positive LuggageWeightKg forces this to true).
//  LuggageWeightKg – checked luggage weight (nullable).
//  IsChild         – child fare flag; grants the fixed child discount.
//  DiscountPercent – the discount that actually fired (0 if none).
//  Price           – final unit price, 2 decimal places.
//  MealOptionID    – selected meal option.
//  CouponID        – coupon recorded on the ticket when one applied.
type Ticket struct {
	ID              uint64           // tickets.id
	OrderID         uint64           // tickets.order_id
	FlightID        uint64           // tickets.flight_id
	Row             int              // tickets.row
	Letter          string           // tickets.letter
	IsBusiness      bool             // tickets.is_business
	HasLuggage      bool             // tickets.has_luggage
	LuggageWeightKg *decimal.Decimal // tickets.luggage_weight_kg (nullable)
	IsChild         bool             // tickets.is_child
	DiscountPercent int              // tickets.discount_percent
	Price           decimal.Decimal  // tickets.price
	MealOptionID    uint64           // tickets.meal_option_id
	CouponID        *uint64          // tickets.coupon_id (nullable)
}
