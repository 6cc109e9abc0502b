package main

import (
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"medicart/internal/models"
)

type cartResponse struct {
	Items    []*models.CartLine `json:"items"`
	Subtotal models.Money       `json:"subtotal"`
	Delivery models.Money       `json:"delivery"`
	Total    models.Money       `json:"total"`
}

func (app *application) getCart(w http.ResponseWriter, r *http.Request) {
	userID, err := app.currentUserID(r)
	if err != nil {
		app.serverError(w, err)
		return
	}
	lines, err := app.store.CartLines(r.Context(), userID)
	if err != nil {
		app.serverError(w, err)
		return
	}

	subtotal := models.CartSubtotal(lines)
	app.writeJSON(w, http.StatusOK, cartResponse{
		Items:    lines,
		Subtotal: subtotal,
		Delivery: models.MoneyFromInt(0), // free delivery in this deployment
		Total:    subtotal,
	})
}

type addToCartRequest struct {
	MedicineID string `json:"medicine_id" validate:"required"`
	Quantity   int    `json:"quantity" validate:"required,min=1"`
}

// addToCart creates the line or increments the existing one. The resulting
// quantity is checked against current stock before anything is written, so a
// rejected add leaves the cart untouched.
func (app *application) addToCart(w http.ResponseWriter, r *http.Request) {
	userID, err := app.currentUserID(r)
	if err != nil {
		app.serverError(w, err)
		return
	}

	var req addToCartRequest
	if err := app.readJSON(w, r, &req); err != nil {
		app.clientError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := app.validate.Struct(req); err != nil {
		app.failedValidation(w, err)
		return
	}
	medID, err := primitive.ObjectIDFromHex(req.MedicineID)
	if err != nil {
		app.clientError(w, http.StatusNotFound, models.ErrMedicineNotFound.Error())
		return
	}

	med, err := app.store.MedicineByID(r.Context(), medID)
	if err != nil {
		app.businessError(w, err)
		return
	}

	qty := req.Quantity
	if existing, err := app.store.CartItem(r.Context(), userID, medID); err != nil {
		app.serverError(w, err)
		return
	} else if existing != nil {
		qty += existing.Quantity
	}

	if qty > med.Stock {
		app.businessError(w, models.ErrOutOfStock)
		return
	}
	if err := app.store.SetCartItem(r.Context(), userID, medID, qty); err != nil {
		app.serverError(w, err)
		return
	}
	app.getCart(w, r)
}

type updateCartRequest struct {
	Quantity int `json:"quantity"`
}

func (app *application) updateCartItem(w http.ResponseWriter, r *http.Request) {
	userID, err := app.currentUserID(r)
	if err != nil {
		app.serverError(w, err)
		return
	}
	medID, err := pathID(r, "medicineID")
	if err != nil {
		app.clientError(w, http.StatusNotFound, models.ErrMedicineNotFound.Error())
		return
	}

	var req updateCartRequest
	if err := app.readJSON(w, r, &req); err != nil {
		app.clientError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Quantity < 1 {
		app.businessError(w, models.ErrInvalidQuantity)
		return
	}

	med, err := app.store.MedicineByID(r.Context(), medID)
	if err != nil {
		app.businessError(w, err)
		return
	}
	if req.Quantity > med.Stock {
		app.businessError(w, models.ErrOutOfStock)
		return
	}

	if err := app.store.SetCartItem(r.Context(), userID, medID, req.Quantity); err != nil {
		app.serverError(w, err)
		return
	}
	app.getCart(w, r)
}

func (app *application) removeCartItem(w http.ResponseWriter, r *http.Request) {
	userID, err := app.currentUserID(r)
	if err != nil {
		app.serverError(w, err)
		return
	}
	medID, err := pathID(r, "medicineID")
	if err != nil {
		app.clientError(w, http.StatusNotFound, models.ErrMedicineNotFound.Error())
		return
	}
	// Removal is idempotent: deleting an absent line is not an error.
	if err := app.store.RemoveCartItem(r.Context(), userID, medID); err != nil {
		app.serverError(w, err)
		return
	}
	app.getCart(w, r)
}

func (app *application) clearCart(w http.ResponseWriter, r *http.Request) {
	userID, err := app.currentUserID(r)
	if err != nil {
		app.serverError(w, err)
		return
	}
	if err := app.store.ClearCart(r.Context(), userID); err != nil {
		app.serverError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, map[string]string{"message": "cart cleared"})
}
