package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/airline-ticket-booking/internal/booking"
	"github.com/iliyamo/airline-ticket-booking/internal/model"
)

// FlightRepo provides read access to flights together with their airplane
// and route.  The booking workflow treats everything here as read-only
// reference data; flight management lives outside this service.
type FlightRepo struct {
	db *sql.DB
}

// NewFlightRepo returns a new FlightRepo bound to the given database.
func NewFlightRepo(db *sql.DB) *FlightRepo { return &FlightRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions.
func (r *FlightRepo) DB() *sql.DB { return r.db }

// FlightRow joins a flight with its airplane and the two route airports.
type FlightRow struct {
	Flight             model.Flight
	Airplane           model.Airplane
	SourceAirport      model.Airport
	DestinationAirport model.Airport
}

// FlightFilter enumerates the optional list predicates.  Set fields are
// composed with AND; city and name filters are case-insensitive substring
// matches.
type FlightFilter struct {
	SourceCity      string
	DestinationCity string
	AirplaneName    string
	DepartureAfter  *time.Time
}

const flightSelect = `SELECT f.id, f.route_id, f.airplane_id, f.departure_time, f.arrival_time,
                             f.fare_economy, f.fare_business, f.rows_economy_from, f.luggage_price_per_kg,
                             a.id, a.name, a.rows, a.letters_in_row, a.airplane_type_id,
                             src.id, src.name, src.closest_big_city,
                             dst.id, dst.name, dst.closest_big_city
                      FROM flights f
                      JOIN airplanes a ON a.id = f.airplane_id
                      JOIN routes rt ON rt.id = f.route_id
                      JOIN airports src ON src.id = rt.source_id
                      JOIN airports dst ON dst.id = rt.destination_id`

func scanFlightRow(scan func(dest ...interface{}) error) (*FlightRow, error) {
	var fr FlightRow
	var dep, arr sql.NullTime
	var typeID sql.NullInt64
	var srcCity, dstCity sql.NullString
	err := scan(
		&fr.Flight.ID, &fr.Flight.RouteID, &fr.Flight.AirplaneID, &dep, &arr,
		&fr.Flight.FareEconomy, &fr.Flight.FareBusiness, &fr.Flight.RowsEconomyFrom, &fr.Flight.LuggagePricePerKg,
		&fr.Airplane.ID, &fr.Airplane.Name, &fr.Airplane.Rows, &fr.Airplane.LettersInRow, &typeID,
		&fr.SourceAirport.ID, &fr.SourceAirport.Name, &srcCity,
		&fr.DestinationAirport.ID, &fr.DestinationAirport.Name, &dstCity,
	)
	if err != nil {
		return nil, err
	}
	if dep.Valid {
		t := dep.Time.UTC()
		fr.Flight.DepartureTime = &t
	}
	if arr.Valid {
		t := arr.Time.UTC()
		fr.Flight.ArrivalTime = &t
	}
	if typeID.Valid {
		id := uint64(typeID.Int64)
		fr.Airplane.AirplaneTypeID = &id
	}
	if srcCity.Valid {
		c := srcCity.String
		fr.SourceAirport.ClosestBigCity = &c
	}
	if dstCity.Valid {
		c := dstCity.String
		fr.DestinationAirport.ClosestBigCity = &c
	}
	return &fr, nil
}

// GetByID loads one flight with its airplane and route airports.  It
// returns ErrFlightNotFound when the id resolves to no row.
func (r *FlightRepo) GetByID(ctx context.Context, id uint64) (*FlightRow, error) {
	row := r.db.QueryRowContext(ctx, flightSelect+` WHERE f.id = ?`, id)
	fr, err := scanFlightRow(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrFlightNotFound
	}
	if err != nil {
		return nil, err
	}
	return fr, nil
}

// List returns flights matching the filter, ordered by departure time.
// Each optional predicate is appended explicitly; there is no dynamic
// field lookup.
func (r *FlightRepo) List(ctx context.Context, f FlightFilter) ([]FlightRow, error) {
	query := flightSelect + ` WHERE 1=1`
	args := make([]interface{}, 0, 4)
	if f.SourceCity != "" {
		query += ` AND src.closest_big_city LIKE ?`
		args = append(args, "%"+f.SourceCity+"%")
	}
	if f.DestinationCity != "" {
		query += ` AND dst.closest_big_city LIKE ?`
		args = append(args, "%"+f.DestinationCity+"%")
	}
	if f.AirplaneName != "" {
		query += ` AND a.name LIKE ?`
		args = append(args, "%"+f.AirplaneName+"%")
	}
	if f.DepartureAfter != nil {
		query += ` AND f.departure_time >= ?`
		args = append(args, f.DepartureAfter.UTC())
	}
	query += ` ORDER BY f.departure_time`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]FlightRow, 0)
	for rows.Next() {
		fr, err := scanFlightRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *fr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// CrewByFlight returns the crew assigned to a flight via the flight_crew
// join table, captains first.
func (r *FlightRepo) CrewByFlight(ctx context.Context, flightID uint64) ([]model.Crew, error) {
	const q = `SELECT c.id, c.first_name, c.last_name, c.position
	           FROM flight_crew fc
	           JOIN crews c ON c.id = fc.crew_id
	           WHERE fc.flight_id = ?
	           ORDER BY FIELD(c.position, 'CAPTAIN', 'FIRST_OFFICER', 'LEAD_FLIGHT_ATTENDANT', 'FLIGHT_ATTENDANT'), c.last_name`
	rows, err := r.db.QueryContext(ctx, q, flightID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	crew := make([]model.Crew, 0)
	for rows.Next() {
		var c model.Crew
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Position); err != nil {
			return nil, err
		}
		crew = append(crew, c)
	}
	return crew, rows.Err()
}

// SoldSeats returns the coordinates of every ticket sold on a flight.
func (r *FlightRepo) SoldSeats(ctx context.Context, flightID uint64) ([]booking.Seat, error) {
	const q = `SELECT t.row, t.letter FROM tickets t WHERE t.flight_id = ?`
	rows, err := r.db.QueryContext(ctx, q, flightID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	seats := make([]booking.Seat, 0)
	for rows.Next() {
		var s booking.Seat
		if err := rows.Scan(&s.Row, &s.Letter); err != nil {
			return nil, err
		}
		seats = append(seats, s)
	}
	return seats, rows.Err()
}

// SoldSeatsByFlights returns the sold-seat sets for several flights in a
// single query, keyed by flight id.  Flights with no tickets are absent
// from the result map.
func (r *FlightRepo) SoldSeatsByFlights(ctx context.Context, flightIDs []uint64) (map[uint64][]booking.Seat, error) {
	out := make(map[uint64][]booking.Seat)
	if len(flightIDs) == 0 {
		return out, nil
	}
	query := `SELECT t.flight_id, t.row, t.letter FROM tickets t WHERE t.flight_id IN (`
	args := make([]interface{}, 0, len(flightIDs))
	for i, id := range flightIDs {
		if i > 0 {
			query += ","
		}
		query += "?"
		args = append(args, id)
	}
	query += ")"
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var fid uint64
		var s booking.Seat
		if err := rows.Scan(&fid, &s.Row, &s.Letter); err != nil {
			return nil, err
		}
		out[fid] = append(out[fid], s)
	}
	return out, rows.Err()
}
