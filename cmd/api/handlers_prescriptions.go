package main

import (
	"net/http"
	"time"

	"medicart/internal/models"
)

func (app *application) uploadPrescription(w http.ResponseWriter, r *http.Request) {
	userID, err := app.currentUserID(r)
	if err != nil {
		app.serverError(w, err)
		return
	}

	url, err := app.saveUpload(r, "file")
	if err != nil {
		app.clientError(w, http.StatusBadRequest, err.Error())
		return
	}

	p := &models.Prescription{
		UserID:    userID,
		FileURL:   url,
		Status:    models.PrescriptionPending,
		CreatedAt: time.Now(),
	}
	if err := app.store.CreatePrescription(r.Context(), p); err != nil {
		app.serverError(w, err)
		return
	}
	app.writeJSON(w, http.StatusCreated, p)
}

func (app *application) listMyPrescriptions(w http.ResponseWriter, r *http.Request) {
	userID, err := app.currentUserID(r)
	if err != nil {
		app.serverError(w, err)
		return
	}
	ps, err := app.store.PrescriptionsByUser(r.Context(), userID)
	if err != nil {
		app.serverError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, ps)
}

// --- Admin ---

func (app *application) adminListPrescriptions(w http.ResponseWriter, r *http.Request) {
	status := models.PrescriptionStatus(r.URL.Query().Get("status"))
	ps, err := app.store.ListPrescriptions(r.Context(), status)
	if err != nil {
		app.serverError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, ps)
}

type decidePrescriptionRequest struct {
	Status models.PrescriptionStatus `json:"status" validate:"required,oneof=approved rejected"`
	Notes  string                    `json:"notes"`
}

// adminDecidePrescription approves or rejects a pending prescription. A
// rejection without a reason persists nothing, and a decision is terminal.
// The decision is advisory: checkout never consults it.
func (app *application) adminDecidePrescription(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		app.clientError(w, http.StatusNotFound, models.ErrPrescriptionNotFound.Error())
		return
	}

	var req decidePrescriptionRequest
	if err := app.readJSON(w, r, &req); err != nil {
		app.clientError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := app.validate.Struct(req); err != nil {
		app.failedValidation(w, err)
		return
	}
	if req.Status == models.PrescriptionRejected && req.Notes == "" {
		app.businessError(w, models.ErrReasonRequired)
		return
	}

	if err := app.store.DecidePrescription(r.Context(), id, req.Status, req.Notes); err != nil {
		app.businessError(w, err)
		return
	}
	p, err := app.store.PrescriptionByID(r.Context(), id)
	if err != nil {
		app.businessError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, p)
}
