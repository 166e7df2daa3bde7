package model

// AirplaneType classifies airplanes into broad categories (e.g. "Passenger",
// "Cargo").  It corresponds to a row in the `airplane_types` table.
//
// Fields:
//  ID   – primary key identifier.
//  Name – unique type name.
type AirplaneType struct {
	ID   uint64 // airplane_types.id
	Name string // airplane_types.name
}

// Airplane describes a physical aircraft and its seating configuration.
// The seat grid is fixed for the lifetime of the airplane: Rows numbered
// 1..Rows and one seat per letter of LettersInRow in each row.  A ticket's
// (row, letter) coordinate must lie within this grid.
//
// Fields:
//  ID             – primary key identifier.
//  Name           – airplane name (e.g. "Boeing").
//  Rows           – number of seat rows (at most 200).
//  LettersInRow   – ordered seat letters per row, e.g. "ABCDEFGH".
//  AirplaneTypeID – optional reference to the airplane type.
type Airplane struct {
	ID             uint64  // airplanes.id
	Name           string  // airplanes.name
	Rows           int     // airplanes.rows
	LettersInRow   string  // airplanes.letters_in_row
	AirplaneTypeID *uint64 // airplanes.airplane_type_id (nullable)
}

// Capacity returns the total number of seats on the airplane.
func (a *Airplane) Capacity() int {
	return a.Rows * len(a.LettersInRow)
}
