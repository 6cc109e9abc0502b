// Package payments wraps the external payment collaborator. The platform
// only ever asks it two things: open a checkout session for an order, and
// verify the signature on the gateway's callback. Everything else about the
// gateway is opaque.
package payments

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Session is an open checkout dialog at the gateway, keyed by our order id.
type Session struct {
	SessionID string `json:"session_id"`
	OrderID   string `json:"order_id"`
	Amount    int64  `json:"amount"` // minor units
	Currency  string `json:"currency"`
	KeyID     string `json:"key_id"`
}

type Gateway interface {
	CreateSession(ctx context.Context, orderID string, amount decimal.Decimal) (*Session, error)
	VerifySignature(orderID, paymentID, signature string) bool
}

type Client struct {
	baseURL   string
	keyID     string
	keySecret string
	http      *http.Client
}

func NewClient(baseURL, keyID, keySecret string) *Client {
	return &Client{
		baseURL:   baseURL,
		keyID:     keyID,
		keySecret: keySecret,
		http:      &http.Client{Timeout: 10 * time.Second},
	}
}

type createSessionRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

type createSessionResponse struct {
	ID string `json:"id"`
}

func (c *Client) CreateSession(ctx context.Context, orderID string, amount decimal.Decimal) (*Session, error) {
	minor := amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	body, err := json.Marshal(createSessionRequest{
		Amount:   minor,
		Currency: "INR",
		Receipt:  uuid.NewString(),
	})
	if err != nil {
		return nil, fmt.Errorf("marshal session request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build session request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.keyID, c.keySecret)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("payment gateway: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("payment gateway returned %d", resp.StatusCode)
	}

	var out createSessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode gateway response: %w", err)
	}

	return &Session{
		SessionID: out.ID,
		OrderID:   orderID,
		Amount:    minor,
		Currency:  "INR",
		KeyID:     c.keyID,
	}, nil
}

// VerifySignature checks the callback HMAC the gateway computes over
// "<orderID>|<paymentID>" with the shared key secret.
func (c *Client) VerifySignature(orderID, paymentID, signature string) bool {
	return hmac.Equal([]byte(Sign(c.keySecret, orderID, paymentID)), []byte(signature))
}

// Sign computes the callback signature. Exported so tests and local tooling
// can produce valid callbacks.
func Sign(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%s|%s", orderID, paymentID)
	return hex.EncodeToString(mac.Sum(nil))
}
