package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCoupon() *Coupon {
	limit := 5
	max := MoneyFromInt(100)
	return &Coupon{
		Code:        "SAVE10",
		Percent:     10,
		MinOrder:    MoneyFromInt(500),
		MaxDiscount: &max,
		UsageLimit:  &limit,
		Used:        0,
		ValidFrom:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		ValidUntil:  time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		Active:      true,
	}
}

func TestCouponValidate(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

	t.Run("valid", func(t *testing.T) {
		c := testCoupon()
		require.NoError(t, c.Validate(MoneyFromInt(1000), now))
	})

	t.Run("inactive", func(t *testing.T) {
		c := testCoupon()
		c.Active = false
		assert.ErrorIs(t, c.Validate(MoneyFromInt(1000), now), ErrCouponInactive)
	})

	t.Run("not yet valid", func(t *testing.T) {
		c := testCoupon()
		early := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
		assert.ErrorIs(t, c.Validate(MoneyFromInt(1000), early), ErrCouponNotYetValid)
	})

	t.Run("expired", func(t *testing.T) {
		c := testCoupon()
		late := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)
		assert.ErrorIs(t, c.Validate(MoneyFromInt(1000), late), ErrCouponExpired)
	})

	t.Run("below minimum", func(t *testing.T) {
		c := testCoupon()
		assert.ErrorIs(t, c.Validate(MoneyFromInt(400), now), ErrMinimumNotMet)
	})

	t.Run("usage limit reached", func(t *testing.T) {
		c := testCoupon()
		c.Used = *c.UsageLimit
		assert.ErrorIs(t, c.Validate(MoneyFromInt(1000), now), ErrUsageLimitReached)
	})

	t.Run("inactive reported before expiry", func(t *testing.T) {
		c := testCoupon()
		c.Active = false
		late := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)
		assert.ErrorIs(t, c.Validate(MoneyFromInt(1000), late), ErrCouponInactive)
	})

	t.Run("no usage limit", func(t *testing.T) {
		c := testCoupon()
		c.UsageLimit = nil
		c.Used = 10_000
		require.NoError(t, c.Validate(MoneyFromInt(1000), now))
	})
}

func TestCouponDiscountFor(t *testing.T) {
	t.Run("percent of total", func(t *testing.T) {
		c := testCoupon()
		d := c.DiscountFor(MoneyFromInt(600))
		assert.True(t, d.Equal(MoneyFromInt(60).Decimal), "want 60, got %s", d)
	})

	t.Run("capped at max discount", func(t *testing.T) {
		c := testCoupon()
		d := c.DiscountFor(MoneyFromInt(2000))
		assert.True(t, d.Equal(MoneyFromInt(100).Decimal), "want 100, got %s", d)
	})

	t.Run("cap boundary", func(t *testing.T) {
		c := testCoupon()
		d := c.DiscountFor(MoneyFromInt(1000))
		assert.True(t, d.Equal(MoneyFromInt(100).Decimal), "want 100, got %s", d)
	})

	t.Run("no cap", func(t *testing.T) {
		c := testCoupon()
		c.MaxDiscount = nil
		d := c.DiscountFor(MoneyFromInt(2000))
		assert.True(t, d.Equal(MoneyFromInt(200).Decimal), "want 200, got %s", d)
	})
}
