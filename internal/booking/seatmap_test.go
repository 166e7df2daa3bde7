package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeatLayoutContains(t *testing.T) {
	layout := SeatLayout{Rows: 10, Letters: "ABCDEFGH"}

	assert.True(t, layout.Contains(Seat{Row: 1, Letter: "A"}))
	assert.True(t, layout.Contains(Seat{Row: 10, Letter: "H"}))
	assert.True(t, layout.Contains(Seat{Row: 5, Letter: "D"}))

	assert.False(t, layout.Contains(Seat{Row: 0, Letter: "A"}), "row below range")
	assert.False(t, layout.Contains(Seat{Row: 11, Letter: "A"}), "row above range")
	assert.False(t, layout.Contains(Seat{Row: -3, Letter: "B"}))
	assert.False(t, layout.Contains(Seat{Row: 3, Letter: "Z"}), "letter not configured")
	assert.False(t, layout.Contains(Seat{Row: 3, Letter: ""}))
	assert.False(t, layout.Contains(Seat{Row: 3, Letter: "AB"}), "multi-letter is not a seat")
}

func TestSeatLayoutCoordinatesRowMajor(t *testing.T) {
	layout := SeatLayout{Rows: 2, Letters: "ABC"}

	got := layout.Coordinates()
	want := []Seat{
		{Row: 1, Letter: "A"}, {Row: 1, Letter: "B"}, {Row: 1, Letter: "C"},
		{Row: 2, Letter: "A"}, {Row: 2, Letter: "B"}, {Row: 2, Letter: "C"},
	}
	require.Equal(t, want, got)
}

func TestSeatLayoutCoordinatesCount(t *testing.T) {
	layout := SeatLayout{Rows: 10, Letters: "ABCDEFGH"}
	assert.Len(t, layout.Coordinates(), 80)
}

func TestIsBusinessRow(t *testing.T) {
	// economy starts at row 4: rows 1-3 are business, 4 and up economy
	assert.True(t, IsBusinessRow(1, 4))
	assert.True(t, IsBusinessRow(3, 4))
	assert.False(t, IsBusinessRow(4, 4), "boundary row is economy")
	assert.False(t, IsBusinessRow(5, 4))
	assert.False(t, IsBusinessRow(10, 4))
}
