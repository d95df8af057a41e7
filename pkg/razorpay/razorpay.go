// Package razorpay is a thin client for the Razorpay orders API plus the
// payment-signature verification performed after checkout.
package razorpay

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.razorpay.com"

// Config holds Razorpay credentials. BaseURL is overridable for tests.
type Config struct {
	KeyID     string
	KeySecret string
	BaseURL   string
}

// Client talks to the Razorpay REST API.
type Client struct {
	keyID     string
	keySecret string
	baseURL   string
	http      *http.Client
}

// Session is a payment session handle returned by the gateway. The amount is
// in paise, the smallest currency unit.
type Session struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// NewClient creates a new Razorpay client.
func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		keyID:     cfg.KeyID,
		keySecret: cfg.KeySecret,
		baseURL:   baseURL,
		http:      &http.Client{Timeout: 15 * time.Second},
	}
}

// CreateOrder opens a payment session for the given amount in paise. The
// returned session ID is handed to the client-side checkout widget.
func (c *Client) CreateOrder(amountPaise int64, currency string) (*Session, error) {
	payload := map[string]interface{}{
		"amount":   amountPaise,
		"currency": currency,
		"receipt":  fmt.Sprintf("receipt_%d", time.Now().UnixMilli()),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal order payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.keyID, c.keySecret)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("razorpay order request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("razorpay order request returned status %d: %s", resp.StatusCode, string(data))
	}

	var session Session
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("failed to decode razorpay order response: %w", err)
	}
	return &session, nil
}

// VerifySignature reports whether signature is the authentic HMAC-SHA256 hex
// digest of "orderRef|paymentRef" under the shared key secret. The comparison
// is constant-time.
func (c *Client) VerifySignature(orderRef, paymentRef, signature string) bool {
	return VerifySignature(c.keySecret, orderRef, paymentRef, signature)
}

// VerifySignature is the bare signature check, exposed for callers that hold
// the secret directly.
func VerifySignature(secret, orderRef, paymentRef, signature string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderRef + "|" + paymentRef))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
