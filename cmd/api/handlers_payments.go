package main

import (
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"medicart/internal/models"
)

type verifyPaymentRequest struct {
	OrderID   string `json:"order_id" validate:"required"`
	PaymentID string `json:"payment_id" validate:"required"`
	Signature string `json:"signature" validate:"required"`
}

// verifyPayment handles the gateway's signed success callback. A valid
// signature marks the order paid and finally clears the cart; a bad one
// marks the payment failed and leaves the order retryable. The fulfillment
// status is never touched here.
func (app *application) verifyPayment(w http.ResponseWriter, r *http.Request) {
	userID, err := app.currentUserID(r)
	if err != nil {
		app.serverError(w, err)
		return
	}

	var req verifyPaymentRequest
	if err := app.readJSON(w, r, &req); err != nil {
		app.clientError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := app.validate.Struct(req); err != nil {
		app.failedValidation(w, err)
		return
	}

	orderID, err := primitive.ObjectIDFromHex(req.OrderID)
	if err != nil {
		app.clientError(w, http.StatusNotFound, models.ErrOrderNotFound.Error())
		return
	}
	order, err := app.store.OrderByID(r.Context(), orderID)
	if err != nil {
		app.businessError(w, err)
		return
	}
	if order.UserID != userID {
		app.businessError(w, models.ErrAccessDenied)
		return
	}
	if order.PaymentStatus == models.PaymentStatusPaid {
		app.writeJSON(w, http.StatusOK, order)
		return
	}

	if !app.gateway.VerifySignature(req.OrderID, req.PaymentID, req.Signature) {
		if err := app.store.SetPaymentStatus(r.Context(), orderID, models.PaymentStatusFailed, req.PaymentID); err != nil {
			app.businessError(w, err)
			return
		}
		app.clientError(w, http.StatusBadRequest, "payment signature verification failed")
		return
	}

	if err := app.store.SetPaymentStatus(r.Context(), orderID, models.PaymentStatusPaid, req.PaymentID); err != nil {
		app.businessError(w, err)
		return
	}
	if err := app.store.ClearCart(r.Context(), userID); err != nil {
		app.errorLog.Println("clear cart after payment:", err)
	}

	order.PaymentStatus = models.PaymentStatusPaid
	order.PaymentID = req.PaymentID
	app.writeJSON(w, http.StatusOK, order)
}

type paymentFailedRequest struct {
	OrderID string `json:"order_id" validate:"required"`
}

// paymentFailed records a dismissed or failed payment dialog. The order
// stays in processing with a failed payment so the user can retry or cancel.
func (app *application) paymentFailed(w http.ResponseWriter, r *http.Request) {
	userID, err := app.currentUserID(r)
	if err != nil {
		app.serverError(w, err)
		return
	}

	var req paymentFailedRequest
	if err := app.readJSON(w, r, &req); err != nil {
		app.clientError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := app.validate.Struct(req); err != nil {
		app.failedValidation(w, err)
		return
	}

	orderID, err := primitive.ObjectIDFromHex(req.OrderID)
	if err != nil {
		app.clientError(w, http.StatusNotFound, models.ErrOrderNotFound.Error())
		return
	}
	order, err := app.store.OrderByID(r.Context(), orderID)
	if err != nil {
		app.businessError(w, err)
		return
	}
	if order.UserID != userID {
		app.businessError(w, models.ErrAccessDenied)
		return
	}
	if order.PaymentStatus == models.PaymentStatusPaid {
		app.businessError(w, models.ErrPaymentNotPending)
		return
	}

	if err := app.store.SetPaymentStatus(r.Context(), orderID, models.PaymentStatusFailed, ""); err != nil {
		app.businessError(w, err)
		return
	}
	order.PaymentStatus = models.PaymentStatusFailed
	app.writeJSON(w, http.StatusOK, order)
}
