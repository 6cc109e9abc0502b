package main

import (
	"net/http"
	"time"

	"medicart/internal/models"
)

type validateCouponRequest struct {
	Code string `json:"code" validate:"required"`
}

type validateCouponResponse struct {
	Code     string       `json:"code"`
	Percent  int          `json:"percent"`
	Subtotal models.Money `json:"subtotal"`
	Discount models.Money `json:"discount"`
	Total    models.Money `json:"total"`
}

// validateCoupon is read-only: it never consumes a usage allowance, so two
// concurrent validations of the last allowance can both succeed. The
// allowance is only taken at order placement.
func (app *application) validateCoupon(w http.ResponseWriter, r *http.Request) {
	userID, err := app.currentUserID(r)
	if err != nil {
		app.serverError(w, err)
		return
	}

	var req validateCouponRequest
	if err := app.readJSON(w, r, &req); err != nil {
		app.clientError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := app.validate.Struct(req); err != nil {
		app.failedValidation(w, err)
		return
	}

	lines, err := app.store.CartLines(r.Context(), userID)
	if err != nil {
		app.serverError(w, err)
		return
	}
	subtotal := models.CartSubtotal(lines)

	coupon, err := app.store.CouponByCode(r.Context(), req.Code)
	if err != nil {
		app.businessError(w, err)
		return
	}
	if err := coupon.Validate(subtotal, time.Now()); err != nil {
		app.businessError(w, err)
		return
	}

	discount := coupon.DiscountFor(subtotal)
	app.writeJSON(w, http.StatusOK, validateCouponResponse{
		Code:     coupon.Code,
		Percent:  coupon.Percent,
		Subtotal: subtotal,
		Discount: discount,
		Total:    subtotal.Sub(discount),
	})
}

// --- Admin ---

type couponRequest struct {
	Code        string        `json:"code" validate:"required"`
	Percent     int           `json:"percent" validate:"required,min=1,max=100"`
	MinOrder    models.Money  `json:"min_order"`
	MaxDiscount *models.Money `json:"max_discount"`
	UsageLimit  *int          `json:"usage_limit"`
	ValidFrom   time.Time     `json:"valid_from"`
	ValidUntil  time.Time     `json:"valid_until" validate:"required"`
	Active      bool          `json:"active"`
}

func (app *application) adminListCoupons(w http.ResponseWriter, r *http.Request) {
	coupons, err := app.store.ListCoupons(r.Context())
	if err != nil {
		app.serverError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, coupons)
}

func (app *application) adminCreateCoupon(w http.ResponseWriter, r *http.Request) {
	var req couponRequest
	if err := app.readJSON(w, r, &req); err != nil {
		app.clientError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := app.validate.Struct(req); err != nil {
		app.failedValidation(w, err)
		return
	}

	coupon := &models.Coupon{
		Code:        req.Code,
		Percent:     req.Percent,
		MinOrder:    req.MinOrder,
		MaxDiscount: req.MaxDiscount,
		UsageLimit:  req.UsageLimit,
		ValidFrom:   req.ValidFrom,
		ValidUntil:  req.ValidUntil,
		Active:      req.Active,
		CreatedAt:   time.Now(),
	}
	if err := app.store.CreateCoupon(r.Context(), coupon); err != nil {
		app.businessError(w, err)
		return
	}
	app.writeJSON(w, http.StatusCreated, coupon)
}

func (app *application) adminUpdateCoupon(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		app.clientError(w, http.StatusNotFound, models.ErrCouponNotFound.Error())
		return
	}

	var req couponRequest
	if err := app.readJSON(w, r, &req); err != nil {
		app.clientError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := app.validate.Struct(req); err != nil {
		app.failedValidation(w, err)
		return
	}

	coupon := &models.Coupon{
		ID:          id,
		Percent:     req.Percent,
		MinOrder:    req.MinOrder,
		MaxDiscount: req.MaxDiscount,
		UsageLimit:  req.UsageLimit,
		ValidFrom:   req.ValidFrom,
		ValidUntil:  req.ValidUntil,
		Active:      req.Active,
	}
	if err := app.store.UpdateCoupon(r.Context(), coupon); err != nil {
		app.businessError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, map[string]string{"message": "coupon updated"})
}

func (app *application) adminDeleteCoupon(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		app.clientError(w, http.StatusNotFound, models.ErrCouponNotFound.Error())
		return
	}
	if err := app.store.DeleteCoupon(r.Context(), id); err != nil {
		app.businessError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, map[string]string{"message": "coupon deleted"})
}
