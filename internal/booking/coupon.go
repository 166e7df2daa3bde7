package booking

import (
	"time"

	"github.com/iliyamo/airline-ticket-booking/internal/model"
)

// CouponCodeLength is the exact length of a discount coupon code.
const CouponCodeLength = 10

// ValidCouponCode reports whether code is exactly CouponCodeLength
// alphanumeric ASCII characters.
func ValidCouponCode(code string) bool {
	if len(code) != CouponCodeLength {
		return false
	}
	for i := 0; i < len(code); i++ {
		c := code[i]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		default:
			return false
		}
	}
	return true
}

// ResolvedDiscount is the outcome of coupon resolution for one ticket.
// A zero value means no discount applies.  Coupon carries the
// back-reference recorded on the ticket when the discount fired.
type ResolvedDiscount struct {
	Percent int
	Coupon  *model.DiscountCoupon
}

// ResolveDiscount evaluates an already looked-up coupon at time now.  A nil
// coupon (no code supplied) yields zero discount with no error.  An expired
// coupon also yields zero discount: expiry silently degrades to "no
// discount" instead of rejecting the booking, while an unknown code is
// rejected earlier with ErrUnknownCoupon.  That asymmetry is deliberate and
// load-bearing for existing clients.
func ResolveDiscount(coupon *model.DiscountCoupon, now time.Time) ResolvedDiscount {
	if coupon == nil {
		return ResolvedDiscount{}
	}
	if coupon.ValidUntil.Before(now) {
		return ResolvedDiscount{}
	}
	return ResolvedDiscount{Percent: coupon.DiscountPercent, Coupon: coupon}
}
