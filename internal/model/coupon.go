package model

import "time"

// DiscountCoupon is a coded, time-bounded percentage discount applicable to
// one ticket (e.g. "new year discount 5%").  A coupon is usable while
// ValidUntil has not passed.  The Active flag is stored alongside but no
// code path gates on it; expiry alone decides usability.
//
// Fields:
//  ID              – primary key identifier.
//  Name            – human readable coupon name.
//  Code            – exactly 10 alphanumeric characters, unique.
//  DiscountPercent – percentage in [0, 100].
//  ValidUntil      – last moment the coupon grants its discount.
//  Active          – administrative flag, currently informational only.
type DiscountCoupon struct {
	ID              uint64    // discount_coupons.id
	Name            string    // discount_coupons.name
	Code            string    // discount_coupons.code
	DiscountPercent int       // discount_coupons.discount_percent
	ValidUntil      time.Time // discount_coupons.valid_until
	Active          bool      // discount_coupons.is_active
}
