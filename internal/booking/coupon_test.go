package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/airline-ticket-booking/internal/model"
)

func TestValidCouponCode(t *testing.T) {
	assert.True(t, ValidCouponCode("SUMMER2025"))
	assert.True(t, ValidCouponCode("abcDEF1234"))

	assert.False(t, ValidCouponCode(""))
	assert.False(t, ValidCouponCode("SHORT"))
	assert.False(t, ValidCouponCode("WAYTOOLONGCODE"))
	assert.False(t, ValidCouponCode("SUMMER 25!"))
	assert.False(t, ValidCouponCode("SUMMER_25A"))
}

func TestResolveDiscountNoCoupon(t *testing.T) {
	res := ResolveDiscount(nil, time.Now().UTC())

	assert.Zero(t, res.Percent)
	assert.Nil(t, res.Coupon)
}

func TestResolveDiscountExpired(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	coupon := &model.DiscountCoupon{
		ID:              3,
		Code:            "SPRING2025",
		DiscountPercent: 25,
		ValidUntil:      now.Add(-time.Hour),
	}

	// expiry degrades silently to no discount, the booking still succeeds
	res := ResolveDiscount(coupon, now)

	assert.Zero(t, res.Percent)
	assert.Nil(t, res.Coupon)
}

func TestResolveDiscountValid(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	coupon := &model.DiscountCoupon{
		ID:              3,
		Code:            "SUMMER2025",
		DiscountPercent: 25,
		ValidUntil:      now.Add(24 * time.Hour),
	}

	res := ResolveDiscount(coupon, now)

	assert.Equal(t, 25, res.Percent)
	assert.Same(t, coupon, res.Coupon)
}
