package main

import (
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"medicart/internal/models"
)

func (app *application) getWishlist(w http.ResponseWriter, r *http.Request) {
	userID, err := app.currentUserID(r)
	if err != nil {
		app.serverError(w, err)
		return
	}
	meds, err := app.store.WishlistMedicines(r.Context(), userID)
	if err != nil {
		app.serverError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, meds)
}

type wishlistRequest struct {
	MedicineID string `json:"medicine_id" validate:"required"`
}

func (app *application) addToWishlist(w http.ResponseWriter, r *http.Request) {
	userID, err := app.currentUserID(r)
	if err != nil {
		app.serverError(w, err)
		return
	}

	var req wishlistRequest
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
	if _, err := app.store.MedicineByID(r.Context(), medID); err != nil {
		app.businessError(w, err)
		return
	}

	if err := app.store.AddWishlistItem(r.Context(), userID, medID); err != nil {
		app.serverError(w, err)
		return
	}
	app.getWishlist(w, r)
}

func (app *application) removeFromWishlist(w http.ResponseWriter, r *http.Request) {
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
	if err := app.store.RemoveWishlistItem(r.Context(), userID, medID); err != nil {
		app.serverError(w, err)
		return
	}
	app.getWishlist(w, r)
}
