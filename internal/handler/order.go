package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/iliyamo/airline-ticket-booking/internal/booking"
	"github.com/iliyamo/airline-ticket-booking/internal/model"
	"github.com/iliyamo/airline-ticket-booking/internal/queue"
	"github.com/iliyamo/airline-ticket-booking/internal/repository"
	"github.com/iliyamo/airline-ticket-booking/internal/service"
)

// OrderHandler creates and lists ticket orders on behalf of authenticated
// users.  All methods assume that JWT authentication has already been
// performed by middleware and may return 401 Unauthorized if the user ID
// cannot be extracted from the context.  Order creation runs all DB writes
// inside a single transaction to guarantee atomicity.
type OrderHandler struct {
	OrderRepo *repository.OrderRepo // order and ticket persistence
	Workflow  *booking.Workflow     // validation and pricing
}

// NewOrderHandler constructs an OrderHandler.  All dependencies must be
// non-nil.
func NewOrderHandler(orderRepo *repository.OrderRepo, workflow *booking.Workflow) *OrderHandler {
	if orderRepo == nil || workflow == nil {
		panic("nil dependency passed to NewOrderHandler")
	}
	return &OrderHandler{OrderRepo: orderRepo, Workflow: workflow}
}

// ticketRequest mirrors one element of the "tickets" array in the request
// body.  Field names follow the public API contract.
type ticketRequest struct {
	FlightID        uint64           `json:"flight"`
	Row             int              `json:"row"`
	Letter          string           `json:"letter"`
	HasLuggage      bool             `json:"has_luggage"`
	LuggageWeightKg *decimal.Decimal `json:"luggage_weight_kg"`
	IsChild         bool             `json:"is_child"`
	MealOptionID    uint64           `json:"meal_option"`
	ExtraIDs        []uint64         `json:"extra_entertainment_and_comfort"`
	SnackIDs        []uint64         `json:"snacks_and_drinks"`
	CouponCode      string           `json:"discount_coupon"`
}

// fieldErrorOut is one accumulated validation failure in a 400 response.
type fieldErrorOut struct {
	Ticket  int    `json:"ticket"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// CreateOrder handles POST /v1/orders.  It validates and prices every
// requested ticket, then persists the order, its tickets and their add-on
// links in one transaction.  Validation failures across all tickets are
// accumulated and returned together with a 400.  A booking race lost on the
// unique seat constraint surfaces as a 409.
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		Tickets []ticketRequest `json:"tickets"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	specs := make([]booking.TicketSpec, 0, len(body.Tickets))
	for _, t := range body.Tickets {
		specs = append(specs, booking.TicketSpec{
			FlightID:        t.FlightID,
			Row:             t.Row,
			Letter:          t.Letter,
			HasLuggage:      t.HasLuggage,
			LuggageWeightKg: t.LuggageWeightKg,
			IsChild:         t.IsChild,
			MealOptionID:    t.MealOptionID,
			ExtraIDs:        t.ExtraIDs,
			SnackIDs:        t.SnackIDs,
			CouponCode:      t.CouponCode,
		})
	}
	ctx := c.Request().Context()
	prepared, err := h.Workflow.Prepare(ctx, specs, time.Now().UTC())
	if err != nil {
		var verrs booking.ValidationErrors
		if errors.As(err, &verrs) {
			out := make([]fieldErrorOut, 0, len(verrs))
			for _, fe := range verrs {
				out = append(out, fieldErrorOut{Ticket: fe.Ticket, Field: fe.Field, Message: fe.Message})
			}
			return c.JSON(http.StatusBadRequest, echo.Map{"errors": out})
		}
		if errors.Is(err, booking.ErrEmptyOrder) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "tickets is required"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to prepare order"})
	}

	tx, err := h.OrderRepo.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	order := &model.Order{
		Reference:  uuid.NewString(),
		UserID:     userID,
		TotalPrice: prepared.Total,
	}
	if err := h.OrderRepo.CreateTx(ctx, tx, order); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create order"})
	}
	seatLabels := make([]string, 0, len(prepared.Tickets))
	for _, pt := range prepared.Tickets {
		ticket := &model.Ticket{
			OrderID:         order.ID,
			FlightID:        pt.Flight.ID,
			Row:             pt.Spec.Row,
			Letter:          pt.Spec.Letter,
			IsBusiness:      pt.IsBusiness,
			HasLuggage:      pt.HasLuggage,
			LuggageWeightKg: pt.Spec.LuggageWeightKg,
			IsChild:         pt.Spec.IsChild,
			DiscountPercent: pt.DiscountPercent,
			Price:           pt.Price,
			MealOptionID:    pt.Meal.ID,
		}
		if pt.Coupon != nil {
			id := pt.Coupon.ID
			ticket.CouponID = &id
		}
		if err := h.OrderRepo.CreateTicketTx(ctx, tx, ticket); err != nil {
			if errors.Is(err, repository.ErrSeatTaken) {
				return c.JSON(http.StatusConflict, echo.Map{
					"error": fmt.Sprintf("seat %d%s on flight %d was just taken", ticket.Row, ticket.Letter, ticket.FlightID),
				})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create ticket"})
		}
		if err := h.OrderRepo.AddExtrasTx(ctx, tx, ticket.ID, pt.Spec.ExtraIDs); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to attach items"})
		}
		if err := h.OrderRepo.AddSnacksTx(ctx, tx, ticket.ID, pt.Spec.SnackIDs); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to attach items"})
		}
		seatLabels = append(seatLabels, fmt.Sprintf("%d%s@%d", ticket.Row, ticket.Letter, ticket.FlightID))
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true

	// fire-and-forget; a broker outage must not fail the booking
	event := queue.OrderCreatedEvent{
		OrderID:        order.ID,
		Reference:      order.Reference,
		UserID:         userID,
		TotalPrice:     order.TotalPrice.String(),
		CountOfTickets: len(prepared.Tickets),
		Seats:          seatLabels,
		CreatedAt:      order.CreatedAt.Format(time.RFC3339),
	}
	go func() {
		pubCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = service.PublishOrderCreated(pubCtx, event)
	}()

	detail, err := h.OrderRepo.GetByIDForUser(ctx, order.ID, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch order"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": detail})
}

// ListOrders handles GET /v1/orders.  It returns the caller's orders,
// newest first, each with its ticket count and route cities.  When no
// orders exist it returns an empty array.
func (h *OrderHandler) ListOrders(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	items, err := h.OrderRepo.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load orders"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetOrder handles GET /v1/orders/:id.  It returns one order with all of
// its tickets expanded.  A foreign user's order behaves like a missing one
// and responds with 404; ownership is enforced in the repository query.
func (h *OrderHandler) GetOrder(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order id"})
	}
	detail, err := h.OrderRepo.GetByIDForUser(c.Request().Context(), orderID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch order"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": detail})
}
