package main

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medicart/internal/models"
)

func TestSupportTicketFlow(t *testing.T) {
	app, store, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())
	ts.register(t, "asel@example.com")

	var ticket models.SupportTicket
	status := ts.doJSON(t, http.MethodPost, "/support", map[string]string{
		"subject": "Late delivery",
		"message": "My order has not arrived yet.",
	}, &ticket)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, models.TicketOpen, ticket.Status)

	status = ts.doJSON(t, http.MethodPost, "/support", map[string]string{"subject": "no message"}, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	admin := newTestServer(t, app.routes())
	admin.loginAsAdmin(t, store)

	var open []*models.SupportTicket
	status = admin.doJSON(t, http.MethodGet, "/admin/support?status=open", nil, &open)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, open, 1)

	status = admin.doJSON(t, http.MethodPut, "/admin/support/"+ticket.ID.Hex(), map[string]string{
		"reply":  "The courier will arrive tomorrow.",
		"status": "answered",
	}, nil)
	require.Equal(t, http.StatusOK, status)

	var mine []*models.SupportTicket
	status = ts.doJSON(t, http.MethodGet, "/support", nil, &mine)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, mine, 1)
	assert.Equal(t, models.TicketAnswered, mine[0].Status)
	assert.Equal(t, "The courier will arrive tomorrow.", mine[0].AdminReply)

	// the status value is constrained
	status = admin.doJSON(t, http.MethodPut, "/admin/support/"+ticket.ID.Hex(), map[string]string{
		"reply":  "x",
		"status": "escalated",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestMedicineRequestFlow(t *testing.T) {
	app, store, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())
	ts.register(t, "asel@example.com")

	var mr models.MedicineRequest
	status := ts.doJSON(t, http.MethodPost, "/medicine-requests", map[string]string{
		"medicine": "Insulin glargine",
		"note":     "Needed monthly.",
	}, &mr)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, models.RequestPending, mr.Status)

	admin := newTestServer(t, app.routes())
	admin.loginAsAdmin(t, store)

	var pending []*models.MedicineRequest
	status = admin.doJSON(t, http.MethodGet, "/admin/medicine-requests?status=pending", nil, &pending)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, pending, 1)

	status = admin.doJSON(t, http.MethodPut, "/admin/medicine-requests/"+mr.ID.Hex(), map[string]string{
		"status": "unavailable",
		"notes":  "Supplier discontinued this one.",
	}, nil)
	require.Equal(t, http.StatusOK, status)

	var mine []*models.MedicineRequest
	status = ts.doJSON(t, http.MethodGet, "/medicine-requests", nil, &mine)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, mine, 1)
	assert.Equal(t, models.RequestUnavailable, mine[0].Status)
	assert.Equal(t, "Supplier discontinued this one.", mine[0].AdminNotes)

	status = admin.doJSON(t, http.MethodPut, "/admin/medicine-requests/"+mr.ID.Hex(), map[string]string{
		"status": "fulfilled",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}
