package models

import "time"

// Validate checks whether the coupon may be applied to an order of the given
// total. Rules are checked in a fixed order so callers always see the most
// specific failure. Validation is read-only; the usage allowance is consumed
// only when an order is actually placed.
func (c *Coupon) Validate(total Money, now time.Time) error {
	if !c.Active {
		return ErrCouponInactive
	}
	if now.Before(c.ValidFrom) {
		return ErrCouponNotYetValid
	}
	if now.After(c.ValidUntil) {
		return ErrCouponExpired
	}
	if total.LessThan(c.MinOrder) {
		return ErrMinimumNotMet
	}
	if c.UsageLimit != nil && c.Used >= *c.UsageLimit {
		return ErrUsageLimitReached
	}
	return nil
}

// DiscountFor computes the discount amount for the given total, capped at
// MaxDiscount when one is set.
func (c *Coupon) DiscountFor(total Money) Money {
	d := total.PercentOf(c.Percent)
	if c.MaxDiscount != nil && d.GreaterThan(*c.MaxDiscount) {
		return *c.MaxDiscount
	}
	return d
}
