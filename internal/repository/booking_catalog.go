package repository

import (
	"context"
	"errors"

	"github.com/iliyamo/airline-ticket-booking/internal/booking"
	"github.com/iliyamo/airline-ticket-booking/internal/model"
)

// BookingCatalog adapts the flight, catalog and coupon repositories to the
// lookup interface the booking workflow consumes, translating repository
// sentinels into the booking package's own.
type BookingCatalog struct {
	flights *FlightRepo
	catalog *CatalogRepo
	coupons *CouponRepo
}

// NewBookingCatalog wires the three repositories behind one lookup surface.
func NewBookingCatalog(flights *FlightRepo, catalog *CatalogRepo, coupons *CouponRepo) *BookingCatalog {
	return &BookingCatalog{flights: flights, catalog: catalog, coupons: coupons}
}

func (c *BookingCatalog) FlightByID(ctx context.Context, id uint64) (*model.Flight, *model.Airplane, error) {
	fr, err := c.flights.GetByID(ctx, id)
	if errors.Is(err, ErrFlightNotFound) {
		return nil, nil, booking.ErrFlightNotFound
	}
	if err != nil {
		return nil, nil, err
	}
	return &fr.Flight, &fr.Airplane, nil
}

func (c *BookingCatalog) MealOptionByID(ctx context.Context, id uint64) (*model.MealOption, error) {
	m, err := c.catalog.MealOptionByID(ctx, id)
	if errors.Is(err, ErrMealOptionNotFound) {
		return nil, booking.ErrMissingMealOption
	}
	return m, err
}

func (c *BookingCatalog) EntertainmentByIDs(ctx context.Context, ids []uint64) ([]model.EntertainmentItem, error) {
	items, err := c.catalog.EntertainmentByIDs(ctx, ids)
	if errors.Is(err, ErrItemNotFound) {
		return nil, booking.ErrUnknownItem
	}
	return items, err
}

func (c *BookingCatalog) SnacksByIDs(ctx context.Context, ids []uint64) ([]model.SnackItem, error) {
	items, err := c.catalog.SnacksByIDs(ctx, ids)
	if errors.Is(err, ErrItemNotFound) {
		return nil, booking.ErrUnknownItem
	}
	return items, err
}

func (c *BookingCatalog) CouponByCode(ctx context.Context, code string) (*model.DiscountCoupon, error) {
	coupon, err := c.coupons.GetByCode(ctx, code)
	if errors.Is(err, ErrCouponNotFound) {
		return nil, booking.ErrUnknownCoupon
	}
	return coupon, err
}

func (c *BookingCatalog) SoldSeats(ctx context.Context, flightID uint64) ([]booking.Seat, error) {
	return c.flights.SoldSeats(ctx, flightID)
}
