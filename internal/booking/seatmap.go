// Package booking implements the order pricing and seat allocation core:
// seat map derivation, per-cabin availability, coupon resolution, fare
// calculation and the order-creation workflow.  Everything in this package
// is a pure function of its inputs; persistence is reached only through the
// Catalog interface.
package booking

import "strings"

// Seat is the (row, letter) address of a single seat on an airplane grid.
type Seat struct {
	Row    int    `json:"row"`
	Letter string `json:"letter"`
}

// SeatLayout is an airplane's seating configuration: rows numbered 1..Rows,
// each holding one seat per letter of Letters, in letter order.
type SeatLayout struct {
	Rows    int
	Letters string
}

// Coordinates enumerates every seat of the layout in row-major order:
// ascending row, then letters in configuration order.  The ordering is part
// of the availability contract because free-seat lists are returned to
// clients as a browsing aid.
func (l SeatLayout) Coordinates() []Seat {
	out := make([]Seat, 0, l.Rows*len(l.Letters))
	for row := 1; row <= l.Rows; row++ {
		for _, letter := range l.Letters {
			out = append(out, Seat{Row: row, Letter: string(letter)})
		}
	}
	return out
}

// Contains reports whether the seat coordinate lies on the grid: the row is
// within [1, Rows] and the letter is one of the configured letters.
func (l SeatLayout) Contains(s Seat) bool {
	if s.Row < 1 || s.Row > l.Rows {
		return false
	}
	if len(s.Letter) == 0 {
		return false
	}
	return strings.Contains(l.Letters, s.Letter) && len([]rune(s.Letter)) == 1
}

// IsBusinessRow reports whether a row belongs to the business cabin for a
// flight whose economy cabin starts at rowsEconomyFrom.  Rows strictly below
// the boundary are business; the boundary row itself is economy.
func IsBusinessRow(row, rowsEconomyFrom int) bool {
	return row < rowsEconomyFrom
}
