package main

import (
	"fmt"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"medicart/internal/models"
	"medicart/internal/payments"
	"medicart/internal/repository"
)

type placeOrderRequest struct {
	Shipping      models.Address `json:"shipping"`
	PaymentMethod string         `json:"payment_method" validate:"required,oneof=cod razorpay"`
	CouponCode    string         `json:"coupon_code"`
}

type placeOrderResponse struct {
	Order   *models.Order     `json:"order"`
	Payment *payments.Session `json:"payment,omitempty"`
}

// placeOrder snapshots the cart into an immutable order. Placement is
// atomic: if any line cannot be reserved, if the coupon cannot be redeemed,
// or if the gateway session cannot be opened, every stock decrement and the
// coupon allowance are given back and no order document is written.
func (app *application) placeOrder(w http.ResponseWriter, r *http.Request) {
	userID, err := app.currentUserID(r)
	if err != nil {
		app.serverError(w, err)
		return
	}

	var req placeOrderRequest
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
	if len(lines) == 0 {
		app.businessError(w, models.ErrEmptyCart)
		return
	}

	subtotal := models.CartSubtotal(lines)
	discount := models.MoneyFromInt(0)

	var coupon *models.Coupon
	if req.CouponCode != "" {
		coupon, err = app.store.CouponByCode(r.Context(), req.CouponCode)
		if err != nil {
			app.businessError(w, err)
			return
		}
		if err := coupon.Validate(subtotal, time.Now()); err != nil {
			app.businessError(w, err)
			return
		}
		discount = coupon.DiscountFor(subtotal)
	}

	// Reserve stock line by line; each decrement only succeeds while enough
	// stock remains. On the first failure everything already taken is given
	// back, so no partial decrement survives.
	items := make([]models.OrderItem, 0, len(lines))
	var reserved []models.OrderItem
	for _, line := range lines {
		if err := app.store.DecrementStock(r.Context(), line.MedicineID, line.Quantity); err != nil {
			app.restock(r, reserved)
			app.businessError(w, fmt.Errorf("%s: %w", line.Name, err))
			return
		}
		item := models.OrderItem{
			MedicineID: line.MedicineID,
			Name:       line.Name,
			Price:      line.Price,
			Quantity:   line.Quantity,
		}
		reserved = append(reserved, item)
		items = append(items, item)
	}

	if coupon != nil {
		if err := app.store.RedeemCoupon(r.Context(), coupon.Code); err != nil {
			app.restock(r, reserved)
			app.businessError(w, err)
			return
		}
	}

	order := &models.Order{
		ID:            primitive.NewObjectID(),
		UserID:        userID,
		Items:         items,
		Shipping:      req.Shipping,
		PaymentMethod: models.PaymentMethod(req.PaymentMethod),
		Subtotal:      subtotal,
		Discount:      discount,
		Total:         subtotal.Sub(discount),
		Status:        models.OrderProcessing,
		PaymentStatus: models.PaymentStatusPending,
		CreatedAt:     time.Now(),
	}
	if coupon != nil {
		order.CouponCode = coupon.Code
	}

	// For gateway payments the session is opened before the order document
	// is written, so a gateway failure leaves nothing behind.
	var session *payments.Session
	if order.PaymentMethod == models.PaymentRazorpay {
		session, err = app.gateway.CreateSession(r.Context(), order.ID.Hex(), order.Total.Decimal)
		if err != nil {
			app.rollbackPlacement(r, reserved, coupon)
			app.errorLog.Println("create payment session:", err)
			app.clientError(w, http.StatusBadGateway, "payment gateway unavailable, please try again")
			return
		}
	}

	if err := app.store.CreateOrder(r.Context(), order); err != nil {
		app.rollbackPlacement(r, reserved, coupon)
		app.serverError(w, err)
		return
	}

	// COD completes immediately. Gateway orders keep the cart until the
	// signed callback confirms payment.
	if order.PaymentMethod == models.PaymentCOD {
		if err := app.store.ClearCart(r.Context(), userID); err != nil {
			app.errorLog.Println("clear cart after order:", err)
		}
	}

	app.writeJSON(w, http.StatusCreated, placeOrderResponse{Order: order, Payment: session})
}

func (app *application) restock(r *http.Request, reserved []models.OrderItem) {
	for _, item := range reserved {
		if err := app.store.IncrementStock(r.Context(), item.MedicineID, item.Quantity); err != nil {
			app.errorLog.Println("restock after failed placement:", err)
		}
	}
}

func (app *application) rollbackPlacement(r *http.Request, reserved []models.OrderItem, coupon *models.Coupon) {
	app.restock(r, reserved)
	if coupon != nil {
		if err := app.store.ReleaseCoupon(r.Context(), coupon.Code); err != nil {
			app.errorLog.Println("release coupon after failed placement:", err)
		}
	}
}

func (app *application) listOrders(w http.ResponseWriter, r *http.Request) {
	userID, err := app.currentUserID(r)
	if err != nil {
		app.serverError(w, err)
		return
	}
	orders, err := app.store.OrdersByUser(r.Context(), userID)
	if err != nil {
		app.serverError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, orders)
}

// ownedOrder loads an order and verifies it belongs to the session user.
func (app *application) ownedOrder(r *http.Request) (*models.Order, error) {
	userID, err := app.currentUserID(r)
	if err != nil {
		return nil, err
	}
	id, err := pathID(r, "id")
	if err != nil {
		return nil, models.ErrOrderNotFound
	}
	order, err := app.store.OrderByID(r.Context(), id)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, models.ErrAccessDenied
	}
	return order, nil
}

func (app *application) showOrder(w http.ResponseWriter, r *http.Request) {
	order, err := app.ownedOrder(r)
	if err != nil {
		app.businessError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, order)
}

// cancelOrder is the user-facing side branch of the lifecycle. It never
// touches the payment status; refunds are a manual admin process.
func (app *application) cancelOrder(w http.ResponseWriter, r *http.Request) {
	order, err := app.ownedOrder(r)
	if err != nil {
		app.businessError(w, err)
		return
	}
	if !order.Cancellable() {
		app.businessError(w, models.ErrCancelNotAllowed)
		return
	}
	if err := app.store.SetOrderStatus(r.Context(), order.ID, models.OrderCancelled); err != nil {
		app.businessError(w, err)
		return
	}
	order.Status = models.OrderCancelled
	app.writeJSON(w, http.StatusOK, order)
}

func (app *application) retryPayment(w http.ResponseWriter, r *http.Request) {
	order, err := app.ownedOrder(r)
	if err != nil {
		app.businessError(w, err)
		return
	}
	if order.PaymentMethod != models.PaymentRazorpay || order.PaymentStatus == models.PaymentStatusPaid {
		app.businessError(w, models.ErrPaymentNotPending)
		return
	}
	if order.Status == models.OrderCancelled {
		app.businessError(w, models.ErrCancelNotAllowed)
		return
	}

	session, err := app.gateway.CreateSession(r.Context(), order.ID.Hex(), order.Total.Decimal)
	if err != nil {
		app.errorLog.Println("create payment session:", err)
		app.clientError(w, http.StatusBadGateway, "payment gateway unavailable, please try again")
		return
	}
	app.writeJSON(w, http.StatusOK, placeOrderResponse{Order: order, Payment: session})
}

// --- Admin ---

func (app *application) adminListOrders(w http.ResponseWriter, r *http.Request) {
	f := repository.OrderFilter{
		Status: models.OrderStatus(r.URL.Query().Get("status")),
		Page:   queryInt(r, "page", 1),
		Limit:  queryInt(r, "limit", 20),
	}
	orders, total, err := app.store.ListOrders(r.Context(), f)
	if err != nil {
		app.serverError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, newPaginated(orders, f.Page, f.Limit, total))
}

type updateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" validate:"required"`
}

// adminUpdateOrderStatus moves an order along the fulfillment pipeline. The
// transition is checked against the allowed table, so jumps like delivered
// back to processing are rejected rather than silently accepted.
func (app *application) adminUpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		app.clientError(w, http.StatusNotFound, models.ErrOrderNotFound.Error())
		return
	}

	var req updateOrderStatusRequest
	if err := app.readJSON(w, r, &req); err != nil {
		app.clientError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !req.Status.Valid() {
		app.clientError(w, http.StatusBadRequest, "unknown order status")
		return
	}

	order, err := app.store.OrderByID(r.Context(), id)
	if err != nil {
		app.businessError(w, err)
		return
	}
	if !order.Status.CanTransitionTo(req.Status) {
		app.businessError(w, models.ErrInvalidTransition)
		return
	}

	if err := app.store.SetOrderStatus(r.Context(), id, req.Status); err != nil {
		app.businessError(w, err)
		return
	}
	order.Status = req.Status
	app.writeJSON(w, http.StatusOK, order)
}
