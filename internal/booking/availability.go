package booking

// Availability partitions a flight's unsold seats by cabin class and counts
// the sold seats per cabin.  Free lists are in row-major order.
type Availability struct {
	FreeBusiness  []Seat `json:"business"`
	FreeEconomy   []Seat `json:"economy"`
	TakenBusiness int    `json:"-"`
	TakenEconomy  int    `json:"-"`
}

// PlacesAvailable returns the total number of unsold seats.
func (a Availability) PlacesAvailable() int {
	return len(a.FreeBusiness) + len(a.FreeEconomy)
}

// ComputeAvailability derives free and taken seats for a flight from its
// layout, its cabin boundary and the seats already sold.  It is a pure
// function: calling it twice with the same inputs yields identical results.
// Sold coordinates that do not lie on the grid are ignored.  Zero sold seats
// (full availability) and zero free seats (fully booked) are both valid.
func ComputeAvailability(layout SeatLayout, rowsEconomyFrom int, sold []Seat) Availability {
	taken := make(map[Seat]struct{}, len(sold))
	for _, s := range sold {
		taken[s] = struct{}{}
	}
	av := Availability{
		FreeBusiness: make([]Seat, 0),
		FreeEconomy:  make([]Seat, 0),
	}
	for _, seat := range layout.Coordinates() {
		business := IsBusinessRow(seat.Row, rowsEconomyFrom)
		if _, ok := taken[seat]; ok {
			if business {
				av.TakenBusiness++
			} else {
				av.TakenEconomy++
			}
			continue
		}
		if business {
			av.FreeBusiness = append(av.FreeBusiness, seat)
		} else {
			av.FreeEconomy = append(av.FreeEconomy, seat)
		}
	}
	return av
}
