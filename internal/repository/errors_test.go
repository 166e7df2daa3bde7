package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsDuplicateEntry(t *testing.T) {
	dup := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry '1-7-C' for key 'tickets.flight_id'"}

	assert.True(t, IsDuplicateEntry(dup))
	assert.True(t, IsDuplicateEntry(fmt.Errorf("insert ticket: %w", dup)), "wrapped errors are recognized")

	assert.False(t, IsDuplicateEntry(&mysql.MySQLError{Number: 1213, Message: "Deadlock found"}))
	assert.False(t, IsDuplicateEntry(errors.New("duplicate entry")), "only the driver's typed error counts")
	assert.False(t, IsDuplicateEntry(nil))
}

func TestSeatInsertErrorMapsDuplicateToSeatTaken(t *testing.T) {
	dup := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry '1-7-C' for key 'tickets.flight_id'"}

	// a booking that loses the race on the unique seat key surfaces as
	// ErrSeatTaken so the handler can answer 409
	require.ErrorIs(t, seatInsertError(dup), ErrSeatTaken)
	require.ErrorIs(t, seatInsertError(fmt.Errorf("insert ticket: %w", dup)), ErrSeatTaken)
}

func TestSeatInsertErrorPassesOtherErrorsThrough(t *testing.T) {
	deadlock := &mysql.MySQLError{Number: 1213, Message: "Deadlock found"}

	got := seatInsertError(deadlock)

	require.NotErrorIs(t, got, ErrSeatTaken)
	assert.Same(t, deadlock, got)
}
