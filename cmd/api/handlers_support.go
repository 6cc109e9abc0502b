package main

import (
	"net/http"
	"time"

	"medicart/internal/models"
)

type createTicketRequest struct {
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}

func (app *application) createTicket(w http.ResponseWriter, r *http.Request) {
	userID, err := app.currentUserID(r)
	if err != nil {
		app.serverError(w, err)
		return
	}

	var req createTicketRequest
	if err := app.readJSON(w, r, &req); err != nil {
		app.clientError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := app.validate.Struct(req); err != nil {
		app.failedValidation(w, err)
		return
	}

	t := &models.SupportTicket{
		UserID:    userID,
		Subject:   req.Subject,
		Message:   req.Message,
		Status:    models.TicketOpen,
		CreatedAt: time.Now(),
	}
	if err := app.store.CreateTicket(r.Context(), t); err != nil {
		app.serverError(w, err)
		return
	}
	app.writeJSON(w, http.StatusCreated, t)
}

func (app *application) listMyTickets(w http.ResponseWriter, r *http.Request) {
	userID, err := app.currentUserID(r)
	if err != nil {
		app.serverError(w, err)
		return
	}
	ts, err := app.store.TicketsByUser(r.Context(), userID)
	if err != nil {
		app.serverError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, ts)
}

type createMedicineRequestRequest struct {
	Medicine string `json:"medicine" validate:"required"`
	Note     string `json:"note"`
}

func (app *application) createMedicineRequest(w http.ResponseWriter, r *http.Request) {
	userID, err := app.currentUserID(r)
	if err != nil {
		app.serverError(w, err)
		return
	}

	var req createMedicineRequestRequest
	if err := app.readJSON(w, r, &req); err != nil {
		app.clientError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := app.validate.Struct(req); err != nil {
		app.failedValidation(w, err)
		return
	}

	mr := &models.MedicineRequest{
		UserID:    userID,
		Medicine:  req.Medicine,
		Note:      req.Note,
		Status:    models.RequestPending,
		CreatedAt: time.Now(),
	}
	if err := app.store.CreateMedicineRequest(r.Context(), mr); err != nil {
		app.serverError(w, err)
		return
	}
	app.writeJSON(w, http.StatusCreated, mr)
}

func (app *application) listMyMedicineRequests(w http.ResponseWriter, r *http.Request) {
	userID, err := app.currentUserID(r)
	if err != nil {
		app.serverError(w, err)
		return
	}
	rs, err := app.store.MedicineRequestsByUser(r.Context(), userID)
	if err != nil {
		app.serverError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, rs)
}

// --- Admin ---

func (app *application) adminListTickets(w http.ResponseWriter, r *http.Request) {
	status := models.TicketStatus(r.URL.Query().Get("status"))
	ts, err := app.store.ListTickets(r.Context(), status)
	if err != nil {
		app.serverError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, ts)
}

type replyTicketRequest struct {
	Reply  string              `json:"reply" validate:"required"`
	Status models.TicketStatus `json:"status" validate:"required,oneof=open answered closed"`
}

func (app *application) adminReplyTicket(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		app.clientError(w, http.StatusNotFound, models.ErrTicketNotFound.Error())
		return
	}

	var req replyTicketRequest
	if err := app.readJSON(w, r, &req); err != nil {
		app.clientError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := app.validate.Struct(req); err != nil {
		app.failedValidation(w, err)
		return
	}

	if err := app.store.ReplyTicket(r.Context(), id, req.Reply, req.Status); err != nil {
		app.businessError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, map[string]string{"message": "reply sent"})
}

func (app *application) adminListMedicineRequests(w http.ResponseWriter, r *http.Request) {
	status := models.RequestStatus(r.URL.Query().Get("status"))
	rs, err := app.store.ListMedicineRequests(r.Context(), status)
	if err != nil {
		app.serverError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, rs)
}

type triageRequestRequest struct {
	Status models.RequestStatus `json:"status" validate:"required,oneof=pending approved unavailable"`
	Notes  string               `json:"notes"`
}

func (app *application) adminTriageMedicineRequest(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		app.clientError(w, http.StatusNotFound, models.ErrRequestNotFound.Error())
		return
	}

	var req triageRequestRequest
	if err := app.readJSON(w, r, &req); err != nil {
		app.clientError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := app.validate.Struct(req); err != nil {
		app.failedValidation(w, err)
		return
	}

	if err := app.store.TriageMedicineRequest(r.Context(), id, req.Status, req.Notes); err != nil {
		app.businessError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, map[string]string{"message": "request updated"})
}
