package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeAvailabilityPartition(t *testing.T) {
	layout := SeatLayout{Rows: 10, Letters: "ABCDEFGH"}
	sold := []Seat{
		{Row: 1, Letter: "A"}, // business
		{Row: 2, Letter: "C"}, // business
		{Row: 4, Letter: "H"}, // economy (boundary row)
		{Row: 9, Letter: "B"}, // economy
	}

	av := ComputeAvailability(layout, 4, sold)

	assert.Equal(t, 2, av.TakenBusiness)
	assert.Equal(t, 2, av.TakenEconomy)
	// 3 business rows * 8 letters - 2 sold
	assert.Len(t, av.FreeBusiness, 22)
	// 7 economy rows * 8 letters - 2 sold
	assert.Len(t, av.FreeEconomy, 54)
	assert.Equal(t, 76, av.PlacesAvailable())

	// free and sold sets are disjoint and together cover the whole grid
	free := make(map[Seat]struct{})
	for _, s := range av.FreeBusiness {
		free[s] = struct{}{}
	}
	for _, s := range av.FreeEconomy {
		free[s] = struct{}{}
	}
	for _, s := range sold {
		_, ok := free[s]
		assert.False(t, ok, "sold seat %v must not be free", s)
	}
	assert.Len(t, free, 76)
}

func TestComputeAvailabilityRowMajorOrder(t *testing.T) {
	layout := SeatLayout{Rows: 3, Letters: "AB"}

	av := ComputeAvailability(layout, 2, []Seat{{Row: 2, Letter: "A"}})

	require.Equal(t, []Seat{{Row: 1, Letter: "A"}, {Row: 1, Letter: "B"}}, av.FreeBusiness)
	require.Equal(t, []Seat{
		{Row: 2, Letter: "B"},
		{Row: 3, Letter: "A"}, {Row: 3, Letter: "B"},
	}, av.FreeEconomy)
}

func TestComputeAvailabilityNoSales(t *testing.T) {
	layout := SeatLayout{Rows: 4, Letters: "AB"}

	av := ComputeAvailability(layout, 3, nil)

	assert.Equal(t, 8, av.PlacesAvailable())
	assert.Zero(t, av.TakenBusiness)
	assert.Zero(t, av.TakenEconomy)
}

func TestComputeAvailabilityFullyBooked(t *testing.T) {
	layout := SeatLayout{Rows: 2, Letters: "AB"}

	av := ComputeAvailability(layout, 2, layout.Coordinates())

	assert.Zero(t, av.PlacesAvailable())
	assert.Empty(t, av.FreeBusiness)
	assert.Empty(t, av.FreeEconomy)
	assert.Equal(t, 2, av.TakenBusiness)
	assert.Equal(t, 2, av.TakenEconomy)
}

func TestComputeAvailabilityIgnoresOffGridSales(t *testing.T) {
	layout := SeatLayout{Rows: 2, Letters: "AB"}

	av := ComputeAvailability(layout, 2, []Seat{{Row: 99, Letter: "Z"}})

	assert.Equal(t, 4, av.PlacesAvailable())
	assert.Zero(t, av.TakenBusiness+av.TakenEconomy)
}

func TestComputeAvailabilityIdempotent(t *testing.T) {
	layout := SeatLayout{Rows: 5, Letters: "ABCD"}
	sold := []Seat{{Row: 1, Letter: "B"}, {Row: 5, Letter: "D"}}

	first := ComputeAvailability(layout, 3, sold)
	second := ComputeAvailability(layout, 3, sold)

	require.Equal(t, first, second)
}
