package main

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"medicart/internal/models"
)

func TestAddToCart(t *testing.T) {
	app, store, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())
	ts.register(t, "asel@example.com")

	med := seedTestMedicine(t, store, "Paracetamol", 50, 10)

	status := ts.addToCart(t, med.ID.Hex(), 2)
	require.Equal(t, http.StatusOK, status)

	// adding again increments the existing line instead of duplicating it
	status = ts.addToCart(t, med.ID.Hex(), 1)
	require.Equal(t, http.StatusOK, status)

	var cart cartResponse
	status = ts.doJSON(t, http.MethodGet, "/cart", nil, &cart)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.True(t, cart.Subtotal.Equal(models.MoneyFromInt(150).Decimal))
	assert.True(t, cart.Total.Equal(models.MoneyFromInt(150).Decimal))
}

func TestAddToCartOverStock(t *testing.T) {
	app, store, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())
	ts.register(t, "asel@example.com")

	med := seedTestMedicine(t, store, "Paracetamol", 50, 3)
	require.Equal(t, http.StatusOK, ts.addToCart(t, med.ID.Hex(), 2))

	// 2 in the cart + 2 requested exceeds stock of 3
	status := ts.addToCart(t, med.ID.Hex(), 2)
	assert.Equal(t, http.StatusBadRequest, status)

	var cart cartResponse
	ts.doJSON(t, http.MethodGet, "/cart", nil, &cart)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity, "rejected add must leave the cart unchanged")
}

func TestAddToCartUnknownMedicine(t *testing.T) {
	app, _, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())
	ts.register(t, "asel@example.com")

	status := ts.addToCart(t, primitive.NewObjectID().Hex(), 1)
	assert.Equal(t, http.StatusNotFound, status)

	status = ts.addToCart(t, "not-an-id", 1)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestUpdateCartItem(t *testing.T) {
	app, store, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())
	ts.register(t, "asel@example.com")

	med := seedTestMedicine(t, store, "Paracetamol", 50, 10)
	require.Equal(t, http.StatusOK, ts.addToCart(t, med.ID.Hex(), 1))

	var cart cartResponse
	status := ts.doJSON(t, http.MethodPut, "/cart/"+med.ID.Hex(), map[string]int{"quantity": 5}, &cart)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 5, cart.Items[0].Quantity)

	status = ts.doJSON(t, http.MethodPut, "/cart/"+med.ID.Hex(), map[string]int{"quantity": 0}, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status = ts.doJSON(t, http.MethodPut, "/cart/"+med.ID.Hex(), map[string]int{"quantity": 99}, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestRemoveCartItemIdempotent(t *testing.T) {
	app, store, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())
	ts.register(t, "asel@example.com")

	med := seedTestMedicine(t, store, "Paracetamol", 50, 10)
	require.Equal(t, http.StatusOK, ts.addToCart(t, med.ID.Hex(), 1))

	status := ts.doJSON(t, http.MethodDelete, "/cart/"+med.ID.Hex(), nil, nil)
	require.Equal(t, http.StatusOK, status)

	// deleting the already-absent line is still a success
	status = ts.doJSON(t, http.MethodDelete, "/cart/"+med.ID.Hex(), nil, nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestWishlist(t *testing.T) {
	app, store, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())
	ts.register(t, "asel@example.com")

	med := seedTestMedicine(t, store, "Vitamin C", 80, 10)

	status := ts.doJSON(t, http.MethodPost, "/wishlist", map[string]string{"medicine_id": med.ID.Hex()}, nil)
	require.Equal(t, http.StatusOK, status)

	// duplicates collapse
	status = ts.doJSON(t, http.MethodPost, "/wishlist", map[string]string{"medicine_id": med.ID.Hex()}, nil)
	require.Equal(t, http.StatusOK, status)

	var meds []*models.Medicine
	status = ts.doJSON(t, http.MethodGet, "/wishlist", nil, &meds)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, meds, 1)
	assert.Equal(t, "Vitamin C", meds[0].Name)

	status = ts.doJSON(t, http.MethodDelete, "/wishlist/"+med.ID.Hex(), nil, nil)
	require.Equal(t, http.StatusOK, status)

	ts.doJSON(t, http.MethodGet, "/wishlist", nil, &meds)
	assert.Empty(t, meds)
}
