package main

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medicart/internal/models"
)

func TestValidateCoupon(t *testing.T) {
	app, store, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())
	ts.register(t, "asel@example.com")

	med := seedTestMedicine(t, store, "Paracetamol", 50, 10)
	seedTestCoupon(t, store) // 10%, min order 100, cap 100
	require.Equal(t, http.StatusOK, ts.addToCart(t, med.ID.Hex(), 4))

	var resp validateCouponResponse
	status := ts.doJSON(t, http.MethodPost, "/coupons/validate", map[string]string{"code": "SAVE10"}, &resp)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "SAVE10", resp.Code)
	assert.Equal(t, 10, resp.Percent)
	assert.True(t, resp.Subtotal.Equal(models.MoneyFromInt(200).Decimal))
	assert.True(t, resp.Discount.Equal(models.MoneyFromInt(20).Decimal))
	assert.True(t, resp.Total.Equal(models.MoneyFromInt(180).Decimal))

	status = ts.doJSON(t, http.MethodPost, "/coupons/validate", map[string]string{"code": "NOPE"}, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestValidateCouponIsReadOnly(t *testing.T) {
	app, store, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())
	ts.register(t, "asel@example.com")

	med := seedTestMedicine(t, store, "Paracetamol", 50, 10)
	c := seedTestCoupon(t, store)
	require.Equal(t, http.StatusOK, ts.addToCart(t, med.ID.Hex(), 4))

	for i := 0; i < 3; i++ {
		status := ts.doJSON(t, http.MethodPost, "/coupons/validate", map[string]string{"code": c.Code}, nil)
		require.Equal(t, http.StatusOK, status)
	}

	got, err := store.CouponByCode(context.Background(), c.Code)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Used, "validation must not consume the allowance")
}

func TestAdminCouponCRUD(t *testing.T) {
	app, store, _ := newTestApplication(t)
	admin := newTestServer(t, app.routes())
	admin.loginAsAdmin(t, store)

	var created models.Coupon
	status := admin.doJSON(t, http.MethodPost, "/admin/coupons", map[string]interface{}{
		"code":        "NEWYEAR",
		"percent":     15,
		"min_order":   "250",
		"valid_until": time.Now().Add(48 * time.Hour).Format(time.RFC3339),
		"active":      true,
	}, &created)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "NEWYEAR", created.Code)
	assert.Equal(t, 15, created.Percent)

	// duplicate code
	status = admin.doJSON(t, http.MethodPost, "/admin/coupons", map[string]interface{}{
		"code":        "NEWYEAR",
		"percent":     20,
		"valid_until": time.Now().Add(48 * time.Hour).Format(time.RFC3339),
	}, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	// percent outside 1..100
	status = admin.doJSON(t, http.MethodPost, "/admin/coupons", map[string]interface{}{
		"code":        "TOOMUCH",
		"percent":     150,
		"valid_until": time.Now().Add(48 * time.Hour).Format(time.RFC3339),
	}, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status = admin.doJSON(t, http.MethodPut, "/admin/coupons/"+created.ID.Hex(), map[string]interface{}{
		"code":        "NEWYEAR",
		"percent":     25,
		"valid_until": time.Now().Add(48 * time.Hour).Format(time.RFC3339),
		"active":      false,
	}, nil)
	require.Equal(t, http.StatusOK, status)

	var coupons []*models.Coupon
	status = admin.doJSON(t, http.MethodGet, "/admin/coupons", nil, &coupons)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, coupons, 1)
	assert.Equal(t, 25, coupons[0].Percent)
	assert.False(t, coupons[0].Active)

	status = admin.doJSON(t, http.MethodDelete, "/admin/coupons/"+created.ID.Hex(), nil, nil)
	require.Equal(t, http.StatusOK, status)

	admin.doJSON(t, http.MethodGet, "/admin/coupons", nil, &coupons)
	assert.Empty(t, coupons)
}
