package main

import (
	"net/http"
	"time"

	"medicart/internal/models"
	"medicart/internal/repository"
)

func (app *application) adminListUsers(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 20)
	users, total, err := app.store.ListUsers(r.Context(), page, limit)
	if err != nil {
		app.serverError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, newPaginated(users, page, limit, total))
}

type setRoleRequest struct {
	Role models.Role `json:"role" validate:"required,oneof=user admin"`
}

func (app *application) adminSetUserRole(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		app.clientError(w, http.StatusNotFound, models.ErrUserNotFound.Error())
		return
	}

	var req setRoleRequest
	if err := app.readJSON(w, r, &req); err != nil {
		app.clientError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := app.validate.Struct(req); err != nil {
		app.failedValidation(w, err)
		return
	}

	if err := app.store.SetUserRole(r.Context(), id, req.Role); err != nil {
		app.businessError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, map[string]string{"message": "role updated"})
}

type dashboardResponse struct {
	Users     int64        `json:"users"`
	Orders    int64        `json:"orders"`
	Medicines int64        `json:"medicines"`
	LowStock  int64        `json:"low_stock"`
	Revenue   models.Money `json:"revenue"`
}

// adminDashboard aggregates each stat with an independent best-effort
// query: a failing source is logged and zeroed, never a 500 for the whole
// view.
func (app *application) adminDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	resp := dashboardResponse{Revenue: models.MoneyFromInt(0)}

	var err error
	if resp.Users, err = app.store.CountUsers(ctx); err != nil {
		app.errorLog.Println("dashboard users:", err)
	}
	if resp.Orders, err = app.store.CountOrders(ctx); err != nil {
		app.errorLog.Println("dashboard orders:", err)
	}
	if resp.Medicines, err = app.store.CountMedicines(ctx); err != nil {
		app.errorLog.Println("dashboard medicines:", err)
	}
	if resp.LowStock, err = app.store.CountLowStock(ctx, app.cfg.LowStock); err != nil {
		app.errorLog.Println("dashboard low stock:", err)
	}

	from := queryTime(r, "from")
	to := queryTime(r, "to")
	if revenue, err := app.store.Revenue(ctx, from, to); err != nil {
		app.errorLog.Println("dashboard revenue:", err)
	} else {
		resp.Revenue = revenue
	}

	app.writeJSON(w, http.StatusOK, resp)
}

type analyticsResponse struct {
	RevenueByMonth  []repository.MonthlyRevenue  `json:"revenue_by_month"`
	SalesByCategory []repository.CategorySales   `json:"sales_by_category"`
	PaymentMethods  []repository.MethodCount     `json:"payment_methods"`
	TopMedicines    []repository.MedicineRevenue `json:"top_medicines"`
}

func (app *application) adminAnalytics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var resp analyticsResponse

	var err error
	if resp.RevenueByMonth, err = app.store.RevenueByMonth(ctx); err != nil {
		app.errorLog.Println("analytics revenue by month:", err)
	}
	if resp.SalesByCategory, err = app.store.SalesByCategory(ctx); err != nil {
		app.errorLog.Println("analytics sales by category:", err)
	}
	if resp.PaymentMethods, err = app.store.OrdersByPaymentMethod(ctx); err != nil {
		app.errorLog.Println("analytics payment methods:", err)
	}
	if resp.TopMedicines, err = app.store.TopMedicines(ctx, queryInt(r, "top", 5)); err != nil {
		app.errorLog.Println("analytics top medicines:", err)
	}

	app.writeJSON(w, http.StatusOK, resp)
}

func queryTime(r *http.Request, name string) time.Time {
	v := r.URL.Query().Get(name)
	if v == "" {
		return time.Time{}
	}
	if t, err := time.Parse("2006-01-02", v); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t
	}
	return time.Time{}
}
