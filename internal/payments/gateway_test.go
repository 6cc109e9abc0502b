package payments

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientCreateSession(t *testing.T) {
	var got createSessionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/orders", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "key_test", user)
		assert.Equal(t, "secret_test", pass)

		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"id": "sess_123"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "key_test", "secret_test")
	sess, err := c.CreateSession(context.Background(), "order_abc", decimal.NewFromFloat(198.50))
	require.NoError(t, err)

	assert.Equal(t, "sess_123", sess.SessionID)
	assert.Equal(t, "order_abc", sess.OrderID)
	assert.Equal(t, int64(19850), sess.Amount)
	assert.Equal(t, "INR", sess.Currency)
	assert.Equal(t, "key_test", sess.KeyID)
	assert.Equal(t, int64(19850), got.Amount)
	assert.NotEmpty(t, got.Receipt)
}

func TestClientCreateSessionGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "key_test", "wrong")
	_, err := c.CreateSession(context.Background(), "order_abc", decimal.NewFromInt(100))
	assert.ErrorContains(t, err, "401")
}

func TestVerifySignature(t *testing.T) {
	c := NewClient("http://gateway.invalid", "key_test", "secret_test")

	sig := Sign("secret_test", "order_abc", "pay_9")
	assert.True(t, c.VerifySignature("order_abc", "pay_9", sig))

	assert.False(t, c.VerifySignature("order_abc", "pay_9", "tampered"))
	assert.False(t, c.VerifySignature("order_other", "pay_9", sig))
	assert.False(t, c.VerifySignature("order_abc", "pay_9", Sign("other_secret", "order_abc", "pay_9")))
}
