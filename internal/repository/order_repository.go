package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/airline-ticket-booking/internal/model"
)

// OrderRepo persists orders and their tickets.  Creation always happens
// inside a caller-owned transaction: the order header, every ticket and the
// add-on join rows commit together or not at all.
type OrderRepo struct {
	db *sql.DB
}

// NewOrderRepo returns a new OrderRepo bound to the given database.
func NewOrderRepo(db *sql.DB) *OrderRepo { return &OrderRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions.
func (r *OrderRepo) DB() *sql.DB { return r.db }

// CreateTx inserts the order header within the given transaction and
// populates the generated id and server-assigned creation timestamp on the
// passed record.
func (r *OrderRepo) CreateTx(ctx context.Context, tx *sql.Tx, o *model.Order) error {
	const q = `INSERT INTO orders (reference, user_id, total_price) VALUES (?, ?, ?)`
	result, err := tx.ExecContext(ctx, q, o.Reference, o.UserID, o.TotalPrice)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	o.ID = uint64(id)
	const sel = `SELECT created_at FROM orders WHERE id = ?`
	if err := tx.QueryRowContext(ctx, sel, o.ID).Scan(&o.CreatedAt); err != nil {
		return err
	}
	o.CreatedAt = o.CreatedAt.UTC()
	return nil
}

// CreateTicketTx inserts one ticket within the given transaction and
// populates its generated id.  A violation of the (flight_id, row, letter)
// uniqueness constraint is mapped to ErrSeatTaken; this is where a lost
// booking race ultimately surfaces.
func (r *OrderRepo) CreateTicketTx(ctx context.Context, tx *sql.Tx, t *model.Ticket) error {
	const q = `INSERT INTO tickets
	           (order_id, flight_id, ` + "`row`" + `, letter, is_business, has_luggage,
	            luggage_weight_kg, is_child, discount_percent, price, meal_option_id, coupon_id)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	var weight interface{}
	if t.LuggageWeightKg != nil {
		weight = *t.LuggageWeightKg
	}
	var coupon interface{}
	if t.CouponID != nil {
		coupon = *t.CouponID
	}
	result, err := tx.ExecContext(ctx, q,
		t.OrderID, t.FlightID, t.Row, t.Letter, t.IsBusiness, t.HasLuggage,
		weight, t.IsChild, t.DiscountPercent, t.Price, t.MealOptionID, coupon,
	)
	if err != nil {
		return seatInsertError(err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	return nil
}

// seatInsertError classifies a failed ticket insert: a duplicate-key
// violation means another booking claimed the seat between the workflow's
// occupancy pre-check and this insert, so the caller gets ErrSeatTaken;
// anything else passes through untouched.
func seatInsertError(err error) error {
	if IsDuplicateEntry(err) {
		return ErrSeatTaken
	}
	return err
}

// AddExtrasTx attaches entertainment items to a ticket in one statement.
// Passing no ids is a no-op.
func (r *OrderRepo) AddExtrasTx(ctx context.Context, tx *sql.Tx, ticketID uint64, itemIDs []uint64) error {
	return addJoinRowsTx(ctx, tx, `INSERT INTO ticket_extras (ticket_id, item_id) VALUES `, ticketID, itemIDs)
}

// AddSnacksTx attaches snack items to a ticket in one statement.  Passing
// no ids is a no-op.
func (r *OrderRepo) AddSnacksTx(ctx context.Context, tx *sql.Tx, ticketID uint64, itemIDs []uint64) error {
	return addJoinRowsTx(ctx, tx, `INSERT INTO ticket_snacks (ticket_id, item_id) VALUES `, ticketID, itemIDs)
}

func addJoinRowsTx(ctx context.Context, tx *sql.Tx, prefix string, ticketID uint64, itemIDs []uint64) error {
	if len(itemIDs) == 0 {
		return nil
	}
	query := prefix
	args := make([]interface{}, 0, len(itemIDs)*2)
	for i, id := range itemIDs {
		if i > 0 {
			query += ","
		}
		query += "(?, ?)"
		args = append(args, ticketID, id)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// OrderSummary is one row of a user's order list: the header plus a ticket
// count and the route cities of the booked flight, for display.
type OrderSummary struct {
	ID              uint64          `json:"id"`
	Reference       string          `json:"reference"`
	CreatedAt       time.Time       `json:"created_at"`
	TotalPrice      decimal.Decimal `json:"total_price"`
	TicketCount     int             `json:"count_of_tickets"`
	SourceCity      *string         `json:"source,omitempty"`
	DestinationCity *string         `json:"destination,omitempty"`
}

// ListByUser returns the caller's orders, newest first.
func (r *OrderRepo) ListByUser(ctx context.Context, userID uint64) ([]OrderSummary, error) {
	const q = `SELECT o.id, o.reference, o.created_at, o.total_price,
	                  COUNT(t.id),
	                  MIN(src.closest_big_city), MIN(dst.closest_big_city)
	           FROM orders o
	           LEFT JOIN tickets t ON t.order_id = o.id
	           LEFT JOIN flights f ON f.id = t.flight_id
	           LEFT JOIN routes rt ON rt.id = f.route_id
	           LEFT JOIN airports src ON src.id = rt.source_id
	           LEFT JOIN airports dst ON dst.id = rt.destination_id
	           WHERE o.user_id = ?
	           GROUP BY o.id, o.reference, o.created_at, o.total_price
	           ORDER BY o.created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]OrderSummary, 0)
	for rows.Next() {
		var s OrderSummary
		var srcCity, dstCity sql.NullString
		if err := rows.Scan(&s.ID, &s.Reference, &s.CreatedAt, &s.TotalPrice, &s.TicketCount, &srcCity, &dstCity); err != nil {
			return nil, err
		}
		s.CreatedAt = s.CreatedAt.UTC()
		if srcCity.Valid {
			c := srcCity.String
			s.SourceCity = &c
		}
		if dstCity.Valid {
			c := dstCity.String
			s.DestinationCity = &c
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// TicketItem is a named priced add-on as rendered in an order detail.
type TicketItem struct {
	ID    uint64          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// TicketCoupon is the coupon recorded on a ticket, name and percent only.
type TicketCoupon struct {
	ID       uint64 `json:"id"`
	Name     string `json:"name"`
	Discount int    `json:"discount"`
}

// TicketFlight is the flight slice of an order detail: route cities and
// schedule, enough for a boarding summary.
type TicketFlight struct {
	ID              uint64     `json:"id"`
	SourceCity      *string    `json:"source,omitempty"`
	DestinationCity *string    `json:"destination,omitempty"`
	DepartureTime   *time.Time `json:"departure_time,omitempty"`
	ArrivalTime     *time.Time `json:"arrival_time,omitempty"`
}

// TicketDetail is one fully expanded ticket of an order detail response.
type TicketDetail struct {
	ID              uint64           `json:"id"`
	Row             int              `json:"row"`
	Letter          string           `json:"letter"`
	IsBusiness      bool             `json:"is_business"`
	HasLuggage      bool             `json:"has_luggage"`
	LuggageWeightKg *decimal.Decimal `json:"luggage_weight_kg,omitempty"`
	IsChild         bool             `json:"is_child"`
	Discount        int              `json:"discount"`
	Price           decimal.Decimal  `json:"price"`
	Flight          TicketFlight     `json:"flight"`
	MealOption      TicketItem       `json:"meal_option"`
	Extras          []TicketItem     `json:"extra_entertainment_and_comfort"`
	Snacks          []TicketItem     `json:"snacks_and_drinks"`
	Coupon          *TicketCoupon    `json:"discount_coupon,omitempty"`
}

// OrderDetail is a single order with all of its tickets expanded.
type OrderDetail struct {
	ID         uint64          `json:"id"`
	Reference  string          `json:"reference"`
	CreatedAt  time.Time       `json:"created_at"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Tickets    []TicketDetail  `json:"tickets"`
}

// GetByIDForUser loads one order with its tickets for the given user.
// Ownership is enforced in the query; a foreign user's order id behaves
// like a missing one and returns ErrOrderNotFound.
func (r *OrderRepo) GetByIDForUser(ctx context.Context, orderID, userID uint64) (*OrderDetail, error) {
	const q = `SELECT id, reference, created_at, total_price FROM orders WHERE id = ? AND user_id = ?`
	var det OrderDetail
	err := r.db.QueryRowContext(ctx, q, orderID, userID).Scan(&det.ID, &det.Reference, &det.CreatedAt, &det.TotalPrice)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	det.CreatedAt = det.CreatedAt.UTC()

	const ticketQ = `SELECT t.id, t.row, t.letter, t.is_business, t.has_luggage, t.luggage_weight_kg,
	                        t.is_child, t.discount_percent, t.price,
	                        f.id, f.departure_time, f.arrival_time,
	                        src.closest_big_city, dst.closest_big_city,
	                        m.id, m.name, m.price,
	                        dc.id, dc.name, dc.discount_percent
	                 FROM tickets t
	                 JOIN flights f ON f.id = t.flight_id
	                 JOIN routes rt ON rt.id = f.route_id
	                 JOIN airports src ON src.id = rt.source_id
	                 JOIN airports dst ON dst.id = rt.destination_id
	                 JOIN meal_options m ON m.id = t.meal_option_id
	                 LEFT JOIN discount_coupons dc ON dc.id = t.coupon_id
	                 WHERE t.order_id = ?
	                 ORDER BY t.id`
	rows, err := r.db.QueryContext(ctx, ticketQ, det.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	det.Tickets = make([]TicketDetail, 0)
	index := make(map[uint64]int)
	for rows.Next() {
		var td TicketDetail
		var weight decimal.NullDecimal
		var dep, arr sql.NullTime
		var srcCity, dstCity sql.NullString
		var couponID sql.NullInt64
		var couponName sql.NullString
		var couponPct sql.NullInt64
		if err := rows.Scan(
			&td.ID, &td.Row, &td.Letter, &td.IsBusiness, &td.HasLuggage, &weight,
			&td.IsChild, &td.Discount, &td.Price,
			&td.Flight.ID, &dep, &arr,
			&srcCity, &dstCity,
			&td.MealOption.ID, &td.MealOption.Name, &td.MealOption.Price,
			&couponID, &couponName, &couponPct,
		); err != nil {
			return nil, err
		}
		if weight.Valid {
			w := weight.Decimal
			td.LuggageWeightKg = &w
		}
		if dep.Valid {
			t := dep.Time.UTC()
			td.Flight.DepartureTime = &t
		}
		if arr.Valid {
			t := arr.Time.UTC()
			td.Flight.ArrivalTime = &t
		}
		if srcCity.Valid {
			c := srcCity.String
			td.Flight.SourceCity = &c
		}
		if dstCity.Valid {
			c := dstCity.String
			td.Flight.DestinationCity = &c
		}
		if couponID.Valid {
			td.Coupon = &TicketCoupon{
				ID:       uint64(couponID.Int64),
				Name:     couponName.String,
				Discount: int(couponPct.Int64),
			}
		}
		td.Extras = make([]TicketItem, 0)
		td.Snacks = make([]TicketItem, 0)
		index[td.ID] = len(det.Tickets)
		det.Tickets = append(det.Tickets, td)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(det.Tickets) == 0 {
		return &det, nil
	}

	ticketIDs := make([]uint64, 0, len(det.Tickets))
	for _, td := range det.Tickets {
		ticketIDs = append(ticketIDs, td.ID)
	}
	extraQ, extraArgs := inQuery(`SELECT te.ticket_id, i.id, i.name, i.price
	                              FROM ticket_extras te
	                              JOIN entertainment_items i ON i.id = te.item_id
	                              WHERE te.ticket_id IN `, ticketIDs)
	if err := r.appendItems(ctx, extraQ, extraArgs, index, det.Tickets, false); err != nil {
		return nil, err
	}
	snackQ, snackArgs := inQuery(`SELECT ts.ticket_id, i.id, i.name, i.price
	                              FROM ticket_snacks ts
	                              JOIN snack_items i ON i.id = ts.item_id
	                              WHERE ts.ticket_id IN `, ticketIDs)
	if err := r.appendItems(ctx, snackQ, snackArgs, index, det.Tickets, true); err != nil {
		return nil, err
	}
	return &det, nil
}

// appendItems runs an add-on join query and distributes the rows onto the
// tickets slice, into Snacks when snacks is true, else into Extras.
func (r *OrderRepo) appendItems(ctx context.Context, query string, args []interface{}, index map[uint64]int, tickets []TicketDetail, snacks bool) error {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var ticketID uint64
		var item TicketItem
		if err := rows.Scan(&ticketID, &item.ID, &item.Name, &item.Price); err != nil {
			return err
		}
		i, ok := index[ticketID]
		if !ok {
			continue
		}
		if snacks {
			tickets[i].Snacks = append(tickets[i].Snacks, item)
		} else {
			tickets[i].Extras = append(tickets[i].Extras, item)
		}
	}
	return rows.Err()
}
