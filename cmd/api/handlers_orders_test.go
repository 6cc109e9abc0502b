package main

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medicart/internal/models"
	"medicart/internal/repository"
)

func seedTestCoupon(t *testing.T, store *repository.Memory) *models.Coupon {
	t.Helper()
	max := models.MoneyFromInt(100)
	c := &models.Coupon{
		Code:        "SAVE10",
		Percent:     10,
		MinOrder:    models.MoneyFromInt(100),
		MaxDiscount: &max,
		ValidFrom:   time.Now().Add(-time.Hour),
		ValidUntil:  time.Now().Add(24 * time.Hour),
		Active:      true,
	}
	require.NoError(t, store.CreateCoupon(context.Background(), c))
	return c
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	app, _, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())
	ts.register(t, "asel@example.com")

	status := ts.doJSON(t, http.MethodPost, "/orders", map[string]interface{}{
		"shipping":       testShipping(),
		"payment_method": "cod",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	var orders []*models.Order
	ts.doJSON(t, http.MethodGet, "/orders", nil, &orders)
	assert.Empty(t, orders)
}

func TestPlaceOrderCOD(t *testing.T) {
	app, store, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())
	ts.register(t, "asel@example.com")

	para := seedTestMedicine(t, store, "Paracetamol", 50, 10)
	ibu := seedTestMedicine(t, store, "Ibuprofen", 120, 5)
	seedTestCoupon(t, store)

	require.Equal(t, http.StatusOK, ts.addToCart(t, para.ID.Hex(), 2))
	require.Equal(t, http.StatusOK, ts.addToCart(t, ibu.ID.Hex(), 1))

	var placed placeOrderResponse
	status := ts.doJSON(t, http.MethodPost, "/orders", map[string]interface{}{
		"shipping":       testShipping(),
		"payment_method": "cod",
		"coupon_code":    "SAVE10",
	}, &placed)
	require.Equal(t, http.StatusCreated, status)

	order := placed.Order
	require.NotNil(t, order)
	assert.Nil(t, placed.Payment, "cod opens no gateway session")
	assert.Equal(t, models.OrderProcessing, order.Status)
	assert.Equal(t, models.PaymentStatusPending, order.PaymentStatus)
	assert.True(t, order.Subtotal.Equal(models.MoneyFromInt(220).Decimal), "subtotal %s", order.Subtotal)
	assert.True(t, order.Discount.Equal(models.MoneyFromInt(22).Decimal), "discount %s", order.Discount)
	assert.True(t, order.Total.Equal(models.MoneyFromInt(198).Decimal), "total %s", order.Total)
	assert.Equal(t, "SAVE10", order.CouponCode)
	require.Len(t, order.Items, 2)

	// stock was reserved and the cart cleared
	got, err := store.MedicineByID(context.Background(), para.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, got.Stock)

	var cart cartResponse
	ts.doJSON(t, http.MethodGet, "/cart", nil, &cart)
	assert.Empty(t, cart.Items)

	// the coupon allowance was consumed
	c, err := store.CouponByCode(context.Background(), "SAVE10")
	require.NoError(t, err)
	assert.Equal(t, 1, c.Used)
}

func TestOrderItemsSnapshotPrices(t *testing.T) {
	app, store, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())
	ts.register(t, "asel@example.com")

	med := seedTestMedicine(t, store, "Paracetamol", 50, 10)
	require.Equal(t, http.StatusOK, ts.addToCart(t, med.ID.Hex(), 1))

	var placed placeOrderResponse
	status := ts.doJSON(t, http.MethodPost, "/orders", map[string]interface{}{
		"shipping":       testShipping(),
		"payment_method": "cod",
	}, &placed)
	require.Equal(t, http.StatusCreated, status)

	// a later catalog edit must not rewrite history
	med.Price = models.MoneyFromInt(999)
	require.NoError(t, store.UpdateMedicine(context.Background(), med))

	var order models.Order
	status = ts.doJSON(t, http.MethodGet, "/orders/"+placed.Order.ID.Hex(), nil, &order)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, order.Items[0].Price.Equal(models.MoneyFromInt(50).Decimal))
	assert.True(t, order.Total.Equal(models.MoneyFromInt(50).Decimal))
}

func TestPlaceOrderInsufficientStock(t *testing.T) {
	app, store, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())
	ts.register(t, "asel@example.com")

	med := seedTestMedicine(t, store, "Paracetamol", 50, 5)
	require.Equal(t, http.StatusOK, ts.addToCart(t, med.ID.Hex(), 5))

	// stock drains between carting and checkout
	require.NoError(t, store.DecrementStock(context.Background(), med.ID, 3))

	status := ts.doJSON(t, http.MethodPost, "/orders", map[string]interface{}{
		"shipping":       testShipping(),
		"payment_method": "cod",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	got, err := store.MedicineByID(context.Background(), med.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Stock, "failed placement must not leak reservations")

	var orders []*models.Order
	ts.doJSON(t, http.MethodGet, "/orders", nil, &orders)
	assert.Empty(t, orders)
}

func TestPlaceOrderGatewayDown(t *testing.T) {
	app, store, gateway := newTestApplication(t)
	ts := newTestServer(t, app.routes())
	ts.register(t, "asel@example.com")

	med := seedTestMedicine(t, store, "Paracetamol", 50, 10)
	seedTestCoupon(t, store)
	require.Equal(t, http.StatusOK, ts.addToCart(t, med.ID.Hex(), 4))

	gateway.fail = true
	status := ts.doJSON(t, http.MethodPost, "/orders", map[string]interface{}{
		"shipping":       testShipping(),
		"payment_method": "razorpay",
		"coupon_code":    "SAVE10",
	}, nil)
	assert.Equal(t, http.StatusBadGateway, status)

	// the whole placement rolled back: stock, coupon, no order
	got, err := store.MedicineByID(context.Background(), med.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.Stock)

	c, err := store.CouponByCode(context.Background(), "SAVE10")
	require.NoError(t, err)
	assert.Equal(t, 0, c.Used)

	var orders []*models.Order
	ts.doJSON(t, http.MethodGet, "/orders", nil, &orders)
	assert.Empty(t, orders)
}

func TestPlaceOrderCouponBelowMinimum(t *testing.T) {
	app, store, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())
	ts.register(t, "asel@example.com")

	med := seedTestMedicine(t, store, "Paracetamol", 50, 10)
	seedTestCoupon(t, store) // min order 100
	require.Equal(t, http.StatusOK, ts.addToCart(t, med.ID.Hex(), 1))

	status := ts.doJSON(t, http.MethodPost, "/orders", map[string]interface{}{
		"shipping":       testShipping(),
		"payment_method": "cod",
		"coupon_code":    "SAVE10",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	got, err := store.MedicineByID(context.Background(), med.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.Stock)
}

func TestCancelOrder(t *testing.T) {
	app, store, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())
	ts.register(t, "asel@example.com")

	med := seedTestMedicine(t, store, "Paracetamol", 50, 10)
	require.Equal(t, http.StatusOK, ts.addToCart(t, med.ID.Hex(), 1))

	var placed placeOrderResponse
	require.Equal(t, http.StatusCreated, ts.doJSON(t, http.MethodPost, "/orders", map[string]interface{}{
		"shipping":       testShipping(),
		"payment_method": "cod",
	}, &placed))

	var cancelled models.Order
	status := ts.doJSON(t, http.MethodPost, "/orders/"+placed.Order.ID.Hex()+"/cancel", nil, &cancelled)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, models.OrderCancelled, cancelled.Status)
	assert.Equal(t, models.PaymentStatusPending, cancelled.PaymentStatus, "cancellation never touches the payment status")

	// a second cancel is past the point of cancellation
	status = ts.doJSON(t, http.MethodPost, "/orders/"+placed.Order.ID.Hex()+"/cancel", nil, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestCancelShippedOrderRejected(t *testing.T) {
	app, store, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())
	ts.register(t, "asel@example.com")

	med := seedTestMedicine(t, store, "Paracetamol", 50, 10)
	require.Equal(t, http.StatusOK, ts.addToCart(t, med.ID.Hex(), 1))

	var placed placeOrderResponse
	require.Equal(t, http.StatusCreated, ts.doJSON(t, http.MethodPost, "/orders", map[string]interface{}{
		"shipping":       testShipping(),
		"payment_method": "cod",
	}, &placed))

	require.NoError(t, store.SetOrderStatus(context.Background(), placed.Order.ID, models.OrderShipped))

	status := ts.doJSON(t, http.MethodPost, "/orders/"+placed.Order.ID.Hex()+"/cancel", nil, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	order, err := store.OrderByID(context.Background(), placed.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderShipped, order.Status)
}

func TestShowOrderOwnership(t *testing.T) {
	app, store, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())
	ts.register(t, "asel@example.com")

	med := seedTestMedicine(t, store, "Paracetamol", 50, 10)
	require.Equal(t, http.StatusOK, ts.addToCart(t, med.ID.Hex(), 1))

	var placed placeOrderResponse
	require.Equal(t, http.StatusCreated, ts.doJSON(t, http.MethodPost, "/orders", map[string]interface{}{
		"shipping":       testShipping(),
		"payment_method": "cod",
	}, &placed))

	other := newTestServer(t, app.routes())
	other.register(t, "bolat@example.com")

	status := other.doJSON(t, http.MethodGet, "/orders/"+placed.Order.ID.Hex(), nil, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status = other.doJSON(t, http.MethodPost, "/orders/"+placed.Order.ID.Hex()+"/cancel", nil, nil)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestAdminOrderTransitions(t *testing.T) {
	app, store, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())
	ts.register(t, "asel@example.com")

	med := seedTestMedicine(t, store, "Paracetamol", 50, 10)
	require.Equal(t, http.StatusOK, ts.addToCart(t, med.ID.Hex(), 1))

	var placed placeOrderResponse
	require.Equal(t, http.StatusCreated, ts.doJSON(t, http.MethodPost, "/orders", map[string]interface{}{
		"shipping":       testShipping(),
		"payment_method": "cod",
	}, &placed))

	admin := newTestServer(t, app.routes())
	admin.loginAsAdmin(t, store)
	path := "/admin/orders/" + placed.Order.ID.Hex() + "/status"

	// processing cannot jump straight to delivered
	status := admin.doJSON(t, http.MethodPut, path, map[string]string{"status": "delivered"}, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status = admin.doJSON(t, http.MethodPut, path, map[string]string{"status": "refunded"}, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	var order models.Order
	status = admin.doJSON(t, http.MethodPut, path, map[string]string{"status": "shipped"}, &order)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, models.OrderShipped, order.Status)

	status = admin.doJSON(t, http.MethodPut, path, map[string]string{"status": "delivered"}, &order)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, models.OrderDelivered, order.Status)

	// delivered is terminal
	status = admin.doJSON(t, http.MethodPut, path, map[string]string{"status": "processing"}, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestAdminListOrders(t *testing.T) {
	app, store, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())
	ts.register(t, "asel@example.com")

	med := seedTestMedicine(t, store, "Paracetamol", 50, 10)
	require.Equal(t, http.StatusOK, ts.addToCart(t, med.ID.Hex(), 1))
	require.Equal(t, http.StatusCreated, ts.doJSON(t, http.MethodPost, "/orders", map[string]interface{}{
		"shipping":       testShipping(),
		"payment_method": "cod",
	}, nil))

	admin := newTestServer(t, app.routes())
	admin.loginAsAdmin(t, store)

	var page paginated
	status := admin.doJSON(t, http.MethodGet, "/admin/orders?status=processing", nil, &page)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 1, page.Total)

	status = admin.doJSON(t, http.MethodGet, "/admin/orders?status=shipped", nil, &page)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 0, page.Total)
}
