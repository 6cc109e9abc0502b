package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"medicart/internal/models"
)

type MedicineFilter struct {
	Search   string
	Category string
	Page     int
	Limit    int
}

type OrderFilter struct {
	Status models.OrderStatus
	Page   int
	Limit  int
}

type MonthlyRevenue struct {
	Month   string       `json:"month"` // "2026-01"
	Orders  int64        `json:"orders"`
	Revenue models.Money `json:"revenue"`
}

type CategorySales struct {
	Category string       `json:"category"`
	Quantity int64        `json:"quantity"`
	Revenue  models.Money `json:"revenue"`
}

type MethodCount struct {
	Method models.PaymentMethod `json:"method"`
	Count  int64                `json:"count"`
}

type MedicineRevenue struct {
	MedicineID primitive.ObjectID `json:"medicine_id"`
	Name       string             `json:"name"`
	Quantity   int64              `json:"quantity"`
	Revenue    models.Money       `json:"revenue"`
}

// Store is everything the handlers need from persistence. The mongo
// implementation is the production one; the memory implementation backs
// STORE=memory and the handler tests.
//
// Lookups return the package sentinel errors from internal/models when a
// document is missing, except CartItem which returns (nil, nil) for an
// absent line because absence is a normal state there.
type Store interface {
	// Users
	CreateUser(ctx context.Context, u *models.User) error
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	UserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	UpdateUserProfile(ctx context.Context, id primitive.ObjectID, name, phone, address string) error
	UpdateUserPassword(ctx context.Context, id primitive.ObjectID, hash string) error
	ListUsers(ctx context.Context, page, limit int) ([]*models.User, int64, error)
	SetUserRole(ctx context.Context, id primitive.ObjectID, role models.Role) error

	// Medicines
	CreateMedicine(ctx context.Context, m *models.Medicine) error
	MedicineByID(ctx context.Context, id primitive.ObjectID) (*models.Medicine, error)
	UpdateMedicine(ctx context.Context, m *models.Medicine) error
	SetMedicineImage(ctx context.Context, id primitive.ObjectID, url string) error
	DeleteMedicine(ctx context.Context, id primitive.ObjectID) error
	ListMedicines(ctx context.Context, f MedicineFilter) ([]*models.Medicine, int64, error)
	Categories(ctx context.Context) ([]string, error)
	// DecrementStock subtracts qty only while stock >= qty and returns
	// ErrOutOfStock otherwise, so stock can never go negative.
	DecrementStock(ctx context.Context, id primitive.ObjectID, qty int) error
	IncrementStock(ctx context.Context, id primitive.ObjectID, qty int) error

	// Cart
	CartLines(ctx context.Context, userID primitive.ObjectID) ([]*models.CartLine, error)
	CartItem(ctx context.Context, userID, medicineID primitive.ObjectID) (*models.CartItem, error)
	SetCartItem(ctx context.Context, userID, medicineID primitive.ObjectID, qty int) error
	RemoveCartItem(ctx context.Context, userID, medicineID primitive.ObjectID) error
	ClearCart(ctx context.Context, userID primitive.ObjectID) error

	// Wishlist
	AddWishlistItem(ctx context.Context, userID, medicineID primitive.ObjectID) error
	RemoveWishlistItem(ctx context.Context, userID, medicineID primitive.ObjectID) error
	WishlistMedicines(ctx context.Context, userID primitive.ObjectID) ([]*models.Medicine, error)

	// Coupons
	CreateCoupon(ctx context.Context, c *models.Coupon) error
	CouponByCode(ctx context.Context, code string) (*models.Coupon, error)
	UpdateCoupon(ctx context.Context, c *models.Coupon) error
	DeleteCoupon(ctx context.Context, id primitive.ObjectID) error
	ListCoupons(ctx context.Context) ([]*models.Coupon, error)
	// RedeemCoupon consumes one use, guarded by the usage limit in the same
	// update so two concurrent redemptions cannot both take the last slot.
	RedeemCoupon(ctx context.Context, code string) error
	ReleaseCoupon(ctx context.Context, code string) error

	// Orders
	CreateOrder(ctx context.Context, o *models.Order) error
	OrderByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	OrdersByUser(ctx context.Context, userID primitive.ObjectID) ([]*models.Order, error)
	ListOrders(ctx context.Context, f OrderFilter) ([]*models.Order, int64, error)
	SetOrderStatus(ctx context.Context, id primitive.ObjectID, status models.OrderStatus) error
	SetPaymentStatus(ctx context.Context, id primitive.ObjectID, status models.PaymentStatus, paymentID string) error

	// Prescriptions
	CreatePrescription(ctx context.Context, p *models.Prescription) error
	PrescriptionByID(ctx context.Context, id primitive.ObjectID) (*models.Prescription, error)
	PrescriptionsByUser(ctx context.Context, userID primitive.ObjectID) ([]*models.Prescription, error)
	ListPrescriptions(ctx context.Context, status models.PrescriptionStatus) ([]*models.Prescription, error)
	// DecidePrescription flips a pending prescription to approved or
	// rejected. Decided prescriptions are terminal.
	DecidePrescription(ctx context.Context, id primitive.ObjectID, status models.PrescriptionStatus, notes string) error

	// Support
	CreateTicket(ctx context.Context, t *models.SupportTicket) error
	TicketsByUser(ctx context.Context, userID primitive.ObjectID) ([]*models.SupportTicket, error)
	ListTickets(ctx context.Context, status models.TicketStatus) ([]*models.SupportTicket, error)
	ReplyTicket(ctx context.Context, id primitive.ObjectID, reply string, status models.TicketStatus) error

	// Medicine requests
	CreateMedicineRequest(ctx context.Context, r *models.MedicineRequest) error
	MedicineRequestsByUser(ctx context.Context, userID primitive.ObjectID) ([]*models.MedicineRequest, error)
	ListMedicineRequests(ctx context.Context, status models.RequestStatus) ([]*models.MedicineRequest, error)
	TriageMedicineRequest(ctx context.Context, id primitive.ObjectID, status models.RequestStatus, notes string) error

	// Analytics. Each method is an independent best-effort source for the
	// admin dashboard; callers tolerate individual failures.
	CountUsers(ctx context.Context) (int64, error)
	CountMedicines(ctx context.Context) (int64, error)
	CountOrders(ctx context.Context) (int64, error)
	CountLowStock(ctx context.Context, threshold int) (int64, error)
	Revenue(ctx context.Context, from, to time.Time) (models.Money, error)
	RevenueByMonth(ctx context.Context) ([]MonthlyRevenue, error)
	SalesByCategory(ctx context.Context) ([]CategorySales, error)
	OrdersByPaymentMethod(ctx context.Context) ([]MethodCount, error)
	TopMedicines(ctx context.Context, n int) ([]MedicineRevenue, error)
}
