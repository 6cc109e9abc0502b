package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"medicart/internal/config"
	"medicart/internal/models"
	"medicart/internal/payments"
	"medicart/internal/repository"
)

const testGatewaySecret = "test_secret"

// fakeGateway stands in for the payment collaborator. It signs callbacks
// with the same scheme as the real client, so handler tests can produce
// valid and invalid signatures.
type fakeGateway struct {
	fail  bool
	calls int
}

func (g *fakeGateway) CreateSession(_ context.Context, orderID string, amount decimal.Decimal) (*payments.Session, error) {
	g.calls++
	if g.fail {
		return nil, errors.New("gateway down")
	}
	return &payments.Session{
		SessionID: "sess_test",
		OrderID:   orderID,
		Amount:    amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart(),
		Currency:  "INR",
		KeyID:     "key_test",
	}, nil
}

func (g *fakeGateway) VerifySignature(orderID, paymentID, signature string) bool {
	return payments.Sign(testGatewaySecret, orderID, paymentID) == signature
}

func newTestApplication(t *testing.T) (*application, *repository.Memory, *fakeGateway) {
	t.Helper()

	store := repository.NewMemory()
	gateway := &fakeGateway{}

	session := scs.New()
	session.Lifetime = time.Hour
	session.Cookie.HttpOnly = true

	app := &application{
		errorLog: log.New(io.Discard, "", 0),
		infoLog:  log.New(io.Discard, "", 0),
		cfg: &config.Config{
			BcryptCost: bcrypt.MinCost,
			UploadDir:  t.TempDir(),
			LowStock:   10,
		},
		store:    store,
		session:  session,
		gateway:  gateway,
		validate: validator.New(),
	}
	return app, store, gateway
}

// testServer wraps httptest.Server with a cookie jar, so one server is one
// logged-in identity.
type testServer struct {
	*httptest.Server
}

func newTestServer(t *testing.T, h http.Handler) *testServer {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	ts.Client().Jar = jar
	return &testServer{ts}
}

// doJSON sends body as JSON and decodes the response into dst when dst is
// non-nil. It returns the response status code.
func (ts *testServer) doJSON(t *testing.T, method, path string, body, dst interface{}) int {
	t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, ts.URL+path, rd)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if dst != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
	}
	return resp.StatusCode
}

func decodeBody(resp *http.Response, dst interface{}) error {
	return json.NewDecoder(resp.Body).Decode(dst)
}

func (ts *testServer) register(t *testing.T, email string) *models.User {
	t.Helper()
	var user models.User
	status := ts.doJSON(t, http.MethodPost, "/auth/register", map[string]string{
		"name":     "Test User",
		"email":    email,
		"password": "pa55word123",
		"phone":    "7700900000",
	}, &user)
	require.Equal(t, http.StatusCreated, status)
	return &user
}

// loginAsAdmin seeds an admin user directly in the store and logs in
// through the API so the session carries the admin role.
func (ts *testServer) loginAsAdmin(t *testing.T, store *repository.Memory) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("adminpass123"), bcrypt.MinCost)
	require.NoError(t, err)

	admin := &models.User{
		Name:         "Admin",
		Email:        fmt.Sprintf("admin-%d@example.com", time.Now().UnixNano()),
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
		CreatedAt:    time.Now(),
	}
	require.NoError(t, store.CreateUser(context.Background(), admin))

	status := ts.doJSON(t, http.MethodPost, "/auth/login", map[string]string{
		"email":    admin.Email,
		"password": "adminpass123",
	}, nil)
	require.Equal(t, http.StatusOK, status)
	return admin
}

func seedTestMedicine(t *testing.T, store *repository.Memory, name string, price int64, stock int) *models.Medicine {
	t.Helper()
	med := &models.Medicine{
		Name:      name,
		Brand:     "Acme",
		Category:  "painkillers",
		Price:     models.MoneyFromInt(price),
		Stock:     stock,
		CreatedAt: time.Now(),
	}
	require.NoError(t, store.CreateMedicine(context.Background(), med))
	return med
}

func (ts *testServer) addToCart(t *testing.T, medID string, qty int) int {
	t.Helper()
	return ts.doJSON(t, http.MethodPost, "/cart", map[string]interface{}{
		"medicine_id": medID,
		"quantity":    qty,
	}, nil)
}

func testShipping() map[string]string {
	return map[string]string{
		"name":        "Test User",
		"email":       "user@example.com",
		"phone":       "7700900000",
		"street":      "12 Abay Ave",
		"city":        "Almaty",
		"postal_code": "050000",
	}
}
