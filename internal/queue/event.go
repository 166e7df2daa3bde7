// Package queue defines message payloads exchanged over the message broker.
package queue

// OrderCreatedEvent is published when an order is successfully committed.
// It contains enough information for downstream consumers to log, notify,
// or trigger analytics without querying the primary database.  Seats are
// encoded as "rowLetter@flightID" labels (e.g. "7C@12") and monetary
// amounts as decimal strings.
type OrderCreatedEvent struct {
	OrderID        uint64   `json:"order_id"`
	Reference      string   `json:"reference"`
	UserID         uint64   `json:"user_id"`
	TotalPrice     string   `json:"total_price"`
	CountOfTickets int      `json:"count_of_tickets"`
	Seats          []string `json:"seats"`
	CreatedAt      string   `json:"created_at"`
}
