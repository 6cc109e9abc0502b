package models

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateEmail     = errors.New("email address is already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrMedicineNotFound = errors.New("medicine not found")
	ErrOutOfStock       = errors.New("requested quantity exceeds available stock")
	ErrInvalidQuantity  = errors.New("quantity must be at least 1")

	ErrEmptyCart = errors.New("cart is empty")

	ErrCouponNotFound    = errors.New("coupon not found")
	ErrCouponExists      = errors.New("coupon code already exists")
	ErrCouponInactive    = errors.New("coupon is not active")
	ErrCouponExpired     = errors.New("coupon has expired")
	ErrCouponNotYetValid = errors.New("coupon is not valid yet")
	ErrMinimumNotMet     = errors.New("order total is below the coupon minimum")
	ErrUsageLimitReached = errors.New("coupon usage limit reached")

	ErrOrderNotFound     = errors.New("order not found")
	ErrAccessDenied      = errors.New("access denied")
	ErrInvalidTransition = errors.New("order status transition not allowed")
	ErrCancelNotAllowed  = errors.New("order can no longer be cancelled")
	ErrPaymentNotPending = errors.New("payment is not pending")

	ErrPrescriptionNotFound = errors.New("prescription not found")
	ErrAlreadyDecided       = errors.New("prescription has already been decided")
	ErrReasonRequired       = errors.New("a rejection reason is required")

	ErrTicketNotFound  = errors.New("support ticket not found")
	ErrRequestNotFound = errors.New("medicine request not found")
)
