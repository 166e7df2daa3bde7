package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Flight schedules an airplane on a route with per-cabin fares and a
// per-kilogram luggage rate.  Rows strictly below RowsEconomyFrom form the
// business cabin; rows at or above it form the economy cabin.  The booking
// workflow treats flights as read-only.
//
// Fields:
//  ID                – primary key identifier.
//  RouteID           – route the flight operates on.
//  AirplaneID        – airplane serving the flight.
//  DepartureTime     – scheduled departure (nullable).
//  ArrivalTime       – scheduled arrival (nullable).
//  FareEconomy       – base fare for economy seats.
//  FareBusiness      – base fare for business seats.
//  RowsEconomyFrom   – first economy row; 1 <= value <= airplane rows.
//  LuggagePricePerKg – surcharge per kilogram of checked luggage.
type Flight struct {
	ID                uint64          // flights.id
	RouteID           uint64          // flights.route_id
	AirplaneID        uint64          // flights.airplane_id
	DepartureTime     *time.Time      // flights.departure_time (nullable)
	ArrivalTime       *time.Time      // flights.arrival_time (nullable)
	FareEconomy       decimal.Decimal // flights.fare_economy
	FareBusiness      decimal.Decimal // flights.fare_business
	RowsEconomyFrom   int             // flights.rows_economy_from
	LuggagePricePerKg decimal.Decimal // flights.luggage_price_per_kg
}
