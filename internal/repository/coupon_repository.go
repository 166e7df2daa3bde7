package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/airline-ticket-booking/internal/model"
)

// CouponRepo resolves discount coupons by code.  Coupon management is
// administrative and out of scope; the booking path only reads.
type CouponRepo struct {
	db *sql.DB
}

// NewCouponRepo returns a new CouponRepo bound to the given database.
func NewCouponRepo(db *sql.DB) *CouponRepo { return &CouponRepo{db: db} }

// GetByCode resolves a coupon by exact code match.  Returns
// ErrCouponNotFound when no coupon carries the code.  Expiry is not checked
// here; the booking workflow decides what an expired coupon means.
func (r *CouponRepo) GetByCode(ctx context.Context, code string) (*model.DiscountCoupon, error) {
	const q = `SELECT id, name, code, discount_percent, valid_until, is_active FROM discount_coupons WHERE code = ?`
	var c model.DiscountCoupon
	err := r.db.QueryRowContext(ctx, q, code).Scan(&c.ID, &c.Name, &c.Code, &c.DiscountPercent, &c.ValidUntil, &c.Active)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCouponNotFound
	}
	if err != nil {
		return nil, err
	}
	c.ValidUntil = c.ValidUntil.UTC()
	return &c, nil
}
