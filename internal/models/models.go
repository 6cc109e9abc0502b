package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	Role         Role               `bson:"role" json:"role"`
	Phone        string             `bson:"phone" json:"phone"`
	Address      string             `bson:"address" json:"address"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
}

type Medicine struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name                 string             `bson:"name" json:"name"`
	Brand                string             `bson:"brand" json:"brand"`
	Category             string             `bson:"category" json:"category"`
	Price                Money              `bson:"price" json:"price"`
	Stock                int                `bson:"stock" json:"stock"`
	RequiresPrescription bool               `bson:"requires_prescription" json:"requires_prescription"`
	Description          string             `bson:"description" json:"description"`
	ImageURL             string             `bson:"image_url" json:"image_url"`
	CreatedAt            time.Time          `bson:"created_at" json:"created_at"`
}

type CartItem struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     primitive.ObjectID `bson:"user_id" json:"user_id"`
	MedicineID primitive.ObjectID `bson:"medicine_id" json:"medicine_id"`
	Quantity   int                `bson:"quantity" json:"quantity"`
	AddedAt    time.Time          `bson:"added_at" json:"added_at"`
}

// CartLine is a cart item joined with its medicine for display.
type CartLine struct {
	MedicineID           primitive.ObjectID `json:"medicine_id"`
	Name                 string             `json:"name"`
	Brand                string             `json:"brand"`
	Price                Money              `json:"price"`
	Quantity             int                `json:"quantity"`
	LineTotal            Money              `json:"line_total"`
	RequiresPrescription bool               `json:"requires_prescription"`
}

type WishlistItem struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     primitive.ObjectID `bson:"user_id" json:"user_id"`
	MedicineID primitive.ObjectID `bson:"medicine_id" json:"medicine_id"`
	AddedAt    time.Time          `bson:"added_at" json:"added_at"`
}

type PaymentMethod string

const (
	PaymentCOD      PaymentMethod = "cod"
	PaymentRazorpay PaymentMethod = "razorpay"
)

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

type Address struct {
	Name       string `bson:"name" json:"name" validate:"required"`
	Email      string `bson:"email" json:"email" validate:"required,email"`
	Phone      string `bson:"phone" json:"phone" validate:"required,min=7,max=15,numeric"`
	Street     string `bson:"street" json:"street" validate:"required"`
	City       string `bson:"city" json:"city" validate:"required"`
	PostalCode string `bson:"postal_code" json:"postal_code" validate:"required,len=6,numeric"`
}

// OrderItem snapshots a cart line at placement time. Price is the price at
// purchase and never tracks later catalog edits.
type OrderItem struct {
	MedicineID primitive.ObjectID `bson:"medicine_id" json:"medicine_id"`
	Name       string             `bson:"name" json:"name"`
	Price      Money              `bson:"price" json:"price"`
	Quantity   int                `bson:"quantity" json:"quantity"`
}

type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID        primitive.ObjectID `bson:"user_id" json:"user_id"`
	Items         []OrderItem        `bson:"items" json:"items"`
	Shipping      Address            `bson:"shipping" json:"shipping"`
	PaymentMethod PaymentMethod      `bson:"payment_method" json:"payment_method"`
	CouponCode    string             `bson:"coupon_code,omitempty" json:"coupon_code,omitempty"`
	Subtotal      Money              `bson:"subtotal" json:"subtotal"`
	Discount      Money              `bson:"discount" json:"discount"`
	Total         Money              `bson:"total" json:"total"`
	Status        OrderStatus        `bson:"status" json:"status"`
	PaymentStatus PaymentStatus      `bson:"payment_status" json:"payment_status"`
	PaymentID     string             `bson:"payment_id,omitempty" json:"payment_id,omitempty"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
}

type Coupon struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Code        string             `bson:"code" json:"code"`
	Percent     int                `bson:"percent" json:"percent"`
	MinOrder    Money              `bson:"min_order" json:"min_order"`
	MaxDiscount *Money             `bson:"max_discount,omitempty" json:"max_discount,omitempty"`
	UsageLimit  *int               `bson:"usage_limit,omitempty" json:"usage_limit,omitempty"`
	Used        int                `bson:"used" json:"used"`
	ValidFrom   time.Time          `bson:"valid_from" json:"valid_from"`
	ValidUntil  time.Time          `bson:"valid_until" json:"valid_until"`
	Active      bool               `bson:"active" json:"active"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

type PrescriptionStatus string

const (
	PrescriptionPending  PrescriptionStatus = "pending"
	PrescriptionApproved PrescriptionStatus = "approved"
	PrescriptionRejected PrescriptionStatus = "rejected"
)

type Prescription struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	FileURL   string             `bson:"file_url" json:"file_url"`
	Status    PrescriptionStatus `bson:"status" json:"status"`
	Notes     string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	DecidedAt *time.Time         `bson:"decided_at,omitempty" json:"decided_at,omitempty"`
}

type TicketStatus string

const (
	TicketOpen     TicketStatus = "open"
	TicketAnswered TicketStatus = "answered"
	TicketClosed   TicketStatus = "closed"
)

type SupportTicket struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     primitive.ObjectID `bson:"user_id" json:"user_id"`
	Subject    string             `bson:"subject" json:"subject"`
	Message    string             `bson:"message" json:"message"`
	Status     TicketStatus       `bson:"status" json:"status"`
	AdminReply string             `bson:"admin_reply,omitempty" json:"admin_reply,omitempty"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
}

type RequestStatus string

const (
	RequestPending     RequestStatus = "pending"
	RequestApproved    RequestStatus = "approved"
	RequestUnavailable RequestStatus = "unavailable"
)

type MedicineRequest struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     primitive.ObjectID `bson:"user_id" json:"user_id"`
	Medicine   string             `bson:"medicine" json:"medicine"`
	Note       string             `bson:"note,omitempty" json:"note,omitempty"`
	Status     RequestStatus      `bson:"status" json:"status"`
	AdminNotes string             `bson:"admin_notes,omitempty" json:"admin_notes,omitempty"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
}
