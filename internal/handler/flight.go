// Package handler exposes HTTP handlers for both authenticated and public
// endpoints.  This file defines the public flight browsing API: listing
// flights with seat availability counts and retrieving a single flight with
// its full free-seat map.  Sensitive fields are never exposed.
package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/iliyamo/airline-ticket-booking/internal/booking"
	"github.com/iliyamo/airline-ticket-booking/internal/repository"
)

// FlightHandler serves unauthenticated flight reads.  Availability figures
// are recomputed from sold tickets on every request; the response cache in
// front of these routes keeps that affordable.
type FlightHandler struct {
	FlightRepo *repository.FlightRepo // access to flights and sold seats
}

// NewFlightHandler constructs a FlightHandler.  The repository must be
// non-nil.
func NewFlightHandler(flightRepo *repository.FlightRepo) *FlightHandler {
	if flightRepo == nil {
		panic("nil repository passed to NewFlightHandler")
	}
	return &FlightHandler{FlightRepo: flightRepo}
}

// FlightSummary is one flight in list responses.  The availability counts
// are derived, not stored.
type FlightSummary struct {
	ID                      uint64          `json:"id"`
	Source                  *string         `json:"source,omitempty"`
	Destination             *string         `json:"destination,omitempty"`
	Airplane                string          `json:"airplane"`
	DepartureTime           *time.Time      `json:"departure_time,omitempty"`
	ArrivalTime             *time.Time      `json:"arrival_time,omitempty"`
	FareEconomy             decimal.Decimal `json:"fare_economy"`
	FareBusiness            decimal.Decimal `json:"fare_business"`
	PlacesAvailable         int             `json:"places_available"`
	BusinessPlacesAvailable int             `json:"business_places_available"`
	EconomyPlacesAvailable  int             `json:"economy_places_available"`
}

// FlightCrewMember is a crew entry in detail responses.
type FlightCrewMember struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Position  string `json:"position"`
}

// FreePlaces partitions the unsold seats of a flight by cabin class, each
// list in row-major order.
type FreePlaces struct {
	Business []booking.Seat `json:"business"`
	Economy  []booking.Seat `json:"economy"`
}

// FlightDetail is the full single-flight response.
type FlightDetail struct {
	ID                uint64             `json:"id"`
	Source            *string            `json:"source,omitempty"`
	Destination       *string            `json:"destination,omitempty"`
	Airplane          string             `json:"airplane"`
	DepartureTime     *time.Time         `json:"departure_time,omitempty"`
	ArrivalTime       *time.Time         `json:"arrival_time,omitempty"`
	FareEconomy       decimal.Decimal    `json:"fare_economy"`
	FareBusiness      decimal.Decimal    `json:"fare_business"`
	LuggagePricePerKg decimal.Decimal    `json:"luggage_price_per_kg"`
	Crew              []FlightCrewMember `json:"crew"`
	FreePlaces        FreePlaces         `json:"free_places"`
	PlacesAvailable   int                `json:"places_available"`
	TakenBusiness     int                `json:"taken_business_places"`
	TakenEconomy      int                `json:"taken_economy_places"`
}

// ListFlights handles GET /v1/flights.  Optional query parameters "source",
// "destination", "airplane" and "departure_after" (RFC3339) narrow the
// result; all supplied filters must match.  Each item carries availability
// counts computed from the tickets already sold.
func (h *FlightHandler) ListFlights(c echo.Context) error {
	filter := repository.FlightFilter{
		SourceCity:      c.QueryParam("source"),
		DestinationCity: c.QueryParam("destination"),
		AirplaneName:    c.QueryParam("airplane"),
	}
	if raw := c.QueryParam("departure_after"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "departure_after must be RFC3339"})
		}
		utc := t.UTC()
		filter.DepartureAfter = &utc
	}
	ctx := c.Request().Context()
	flights, err := h.FlightRepo.List(ctx, filter)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	ids := make([]uint64, 0, len(flights))
	for _, fr := range flights {
		ids = append(ids, fr.Flight.ID)
	}
	soldByFlight, err := h.FlightRepo.SoldSeatsByFlights(ctx, ids)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	items := make([]FlightSummary, 0, len(flights))
	for _, fr := range flights {
		layout := booking.SeatLayout{Rows: fr.Airplane.Rows, Letters: fr.Airplane.LettersInRow}
		av := booking.ComputeAvailability(layout, fr.Flight.RowsEconomyFrom, soldByFlight[fr.Flight.ID])
		items = append(items, FlightSummary{
			ID:                      fr.Flight.ID,
			Source:                  fr.SourceAirport.ClosestBigCity,
			Destination:             fr.DestinationAirport.ClosestBigCity,
			Airplane:                fr.Airplane.Name,
			DepartureTime:           fr.Flight.DepartureTime,
			ArrivalTime:             fr.Flight.ArrivalTime,
			FareEconomy:             fr.Flight.FareEconomy,
			FareBusiness:            fr.Flight.FareBusiness,
			PlacesAvailable:         av.PlacesAvailable(),
			BusinessPlacesAvailable: len(av.FreeBusiness),
			EconomyPlacesAvailable:  len(av.FreeEconomy),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetFlight handles GET /v1/flights/:id.  It returns the flight with its
// crew and the full free-seat map partitioned into business and economy
// lists, both in row-major order.
func (h *FlightHandler) GetFlight(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid flight id"})
	}
	ctx := c.Request().Context()
	fr, err := h.FlightRepo.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrFlightNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "flight not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	sold, err := h.FlightRepo.SoldSeats(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	crew, err := h.FlightRepo.CrewByFlight(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	layout := booking.SeatLayout{Rows: fr.Airplane.Rows, Letters: fr.Airplane.LettersInRow}
	av := booking.ComputeAvailability(layout, fr.Flight.RowsEconomyFrom, sold)
	crewOut := make([]FlightCrewMember, 0, len(crew))
	for _, m := range crew {
		crewOut = append(crewOut, FlightCrewMember{FirstName: m.FirstName, LastName: m.LastName, Position: m.Position})
	}
	resp := FlightDetail{
		ID:                fr.Flight.ID,
		Source:            fr.SourceAirport.ClosestBigCity,
		Destination:       fr.DestinationAirport.ClosestBigCity,
		Airplane:          fr.Airplane.Name,
		DepartureTime:     fr.Flight.DepartureTime,
		ArrivalTime:       fr.Flight.ArrivalTime,
		FareEconomy:       fr.Flight.FareEconomy,
		FareBusiness:      fr.Flight.FareBusiness,
		LuggagePricePerKg: fr.Flight.LuggagePricePerKg,
		Crew:              crewOut,
		FreePlaces:        FreePlaces{Business: av.FreeBusiness, Economy: av.FreeEconomy},
		PlacesAvailable:   av.PlacesAvailable(),
		TakenBusiness:     av.TakenBusiness,
		TakenEconomy:      av.TakenEconomy,
	}
	return c.JSON(http.StatusOK, resp)
}
