package main

import (
	"net/http"

	"github.com/bmizerany/pat"
)

func (app *application) routes() http.Handler {
	mux := pat.New()

	// auth
	mux.Post("/auth/register", http.HandlerFunc(app.register))
	mux.Post("/auth/login", http.HandlerFunc(app.login))
	mux.Post("/auth/logout", app.requireAuth(app.logout))
	mux.Get("/auth/me", app.requireAuth(app.me))
	mux.Put("/auth/me", app.requireAuth(app.updateProfile))
	mux.Put("/auth/password", app.requireAuth(app.changePassword))

	// catalog
	mux.Get("/medicines/categories", http.HandlerFunc(app.listCategories))
	mux.Get("/medicines/:id", http.HandlerFunc(app.showMedicine))
	mux.Get("/medicines", http.HandlerFunc(app.listMedicines))

	// cart
	mux.Get("/cart", app.requireAuth(app.getCart))
	mux.Post("/cart", app.requireAuth(app.addToCart))
	mux.Put("/cart/:medicineID", app.requireAuth(app.updateCartItem))
	mux.Del("/cart/:medicineID", app.requireAuth(app.removeCartItem))
	mux.Del("/cart", app.requireAuth(app.clearCart))

	// wishlist
	mux.Get("/wishlist", app.requireAuth(app.getWishlist))
	mux.Post("/wishlist", app.requireAuth(app.addToWishlist))
	mux.Del("/wishlist/:medicineID", app.requireAuth(app.removeFromWishlist))

	// coupons
	mux.Post("/coupons/validate", app.requireAuth(app.validateCoupon))

	// orders
	mux.Post("/orders", app.requireAuth(app.placeOrder))
	mux.Get("/orders/:id", app.requireAuth(app.showOrder))
	mux.Get("/orders", app.requireAuth(app.listOrders))
	mux.Post("/orders/:id/cancel", app.requireAuth(app.cancelOrder))
	mux.Post("/orders/:id/retry-payment", app.requireAuth(app.retryPayment))

	// payment collaborator callbacks
	mux.Post("/payments/verify", app.requireAuth(app.verifyPayment))
	mux.Post("/payments/failed", app.requireAuth(app.paymentFailed))

	// prescriptions
	mux.Post("/prescriptions", app.requireAuth(app.uploadPrescription))
	mux.Get("/prescriptions", app.requireAuth(app.listMyPrescriptions))

	// support and medicine requests
	mux.Post("/support", app.requireAuth(app.createTicket))
	mux.Get("/support", app.requireAuth(app.listMyTickets))
	mux.Post("/medicine-requests", app.requireAuth(app.createMedicineRequest))
	mux.Get("/medicine-requests", app.requireAuth(app.listMyMedicineRequests))

	// admin
	mux.Post("/admin/medicines", app.requireRole("admin", app.createMedicine))
	mux.Put("/admin/medicines/:id", app.requireRole("admin", app.updateMedicine))
	mux.Del("/admin/medicines/:id", app.requireRole("admin", app.deleteMedicine))
	mux.Post("/admin/medicines/:id/image", app.requireRole("admin", app.uploadMedicineImage))

	mux.Get("/admin/orders", app.requireRole("admin", app.adminListOrders))
	mux.Put("/admin/orders/:id/status", app.requireRole("admin", app.adminUpdateOrderStatus))

	mux.Get("/admin/users", app.requireRole("admin", app.adminListUsers))
	mux.Put("/admin/users/:id/role", app.requireRole("admin", app.adminSetUserRole))

	mux.Get("/admin/coupons", app.requireRole("admin", app.adminListCoupons))
	mux.Post("/admin/coupons", app.requireRole("admin", app.adminCreateCoupon))
	mux.Put("/admin/coupons/:id", app.requireRole("admin", app.adminUpdateCoupon))
	mux.Del("/admin/coupons/:id", app.requireRole("admin", app.adminDeleteCoupon))

	mux.Get("/admin/prescriptions", app.requireRole("admin", app.adminListPrescriptions))
	mux.Put("/admin/prescriptions/:id", app.requireRole("admin", app.adminDecidePrescription))

	mux.Get("/admin/support", app.requireRole("admin", app.adminListTickets))
	mux.Put("/admin/support/:id", app.requireRole("admin", app.adminReplyTicket))

	mux.Get("/admin/medicine-requests", app.requireRole("admin", app.adminListMedicineRequests))
	mux.Put("/admin/medicine-requests/:id", app.requireRole("admin", app.adminTriageMedicineRequest))

	mux.Get("/admin/dashboard", app.requireRole("admin", app.adminDashboard))
	mux.Get("/admin/analytics", app.requireRole("admin", app.adminAnalytics))

	uploads := http.StripPrefix("/uploads/", http.FileServer(http.Dir(app.cfg.UploadDir)))
	mux.Get("/uploads/:file", uploads)

	return app.session.LoadAndSave(app.logRequest(app.recoverPanic(mux)))
}
