// Package repository implements the database/sql data access layer.  This
// file defines sentinel error values reused across repositories so that
// handlers can distinguish failure scenarios with errors.Is.  ErrSeatTaken
// deserves a note: the application-level occupancy check in the booking
// workflow is only a pre-check, the UNIQUE KEY on (flight_id, row, letter)
// is the final arbiter, and a losing concurrent insert surfaces here as
// ErrSeatTaken after the transaction rolls back.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// ErrFlightNotFound is returned when a flight id resolves to no row.
var ErrFlightNotFound = errors.New("flight not found")

// ErrMealOptionNotFound is returned when a meal option id resolves to no row.
var ErrMealOptionNotFound = errors.New("meal option not found")

// ErrItemNotFound is returned when an add-on item id resolves to no row.
var ErrItemNotFound = errors.New("add-on item not found")

// ErrCouponNotFound is returned when a coupon code resolves to no row.
var ErrCouponNotFound = errors.New("coupon not found")

// ErrOrderNotFound is returned when an order id resolves to no row for the
// requesting user.
var ErrOrderNotFound = errors.New("order not found")

// ErrSeatTaken is returned when inserting a ticket violates the seat
// uniqueness constraint.  Handlers should translate this into an HTTP 409
// response telling the client to retry with another seat.
var ErrSeatTaken = errors.New("seat already taken")

// mysqlDuplicateEntry is the server error number for unique key violations.
const mysqlDuplicateEntry = 1062

// IsDuplicateEntry reports whether err is a MySQL duplicate-key violation.
func IsDuplicateEntry(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlDuplicateEntry
}
