package toss

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultConfirmURL is the live payment confirmation endpoint.
const DefaultConfirmURL = "https://api.tosspayments.com/v1/payments/confirm"

const defaultTimeout = 10 * time.Second
const maxResponseBytes = 1 << 20

// ConfirmError carries a non-2xx answer from the confirmation endpoint. The
// status and body are passed through opaquely; deciding what to do with a
// kept order record is the caller's policy.
type ConfirmError struct {
	Status int
	Body   []byte
}

func (e *ConfirmError) Error() string {
	return fmt.Sprintf("toss confirm failed: status %d", e.Status)
}

// Client talks server-to-server to the Toss payments confirmation API.
type Client struct {
	secretKey  string
	confirmURL string
	httpClient *http.Client
}

func NewClient(secretKey string, opts ...Option) *Client {
	c := &Client{
		secretKey:  secretKey,
		confirmURL: DefaultConfirmURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type Option func(*Client)

// WithConfirmURL overrides the confirmation endpoint (sandbox, tests).
func WithConfirmURL(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.confirmURL = url
		}
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

type confirmRequest struct {
	PaymentKey string `json:"paymentKey"`
	OrderID    string `json:"orderId"`
	Amount     int64  `json:"amount"`
}

// Confirm posts a payment confirmation. On 2xx it returns the upstream
// status and raw body; on any other status it returns a *ConfirmError with
// both attached. The request is bounded by the client timeout (and ctx), so
// a hung processor cannot park a request forever.
func (c *Client) Confirm(ctx context.Context, orderID string, amount int64, paymentKey string) (int, []byte, error) {
	payload, err := json.Marshal(confirmRequest{
		PaymentKey: paymentKey,
		OrderID:    orderID,
		Amount:     amount,
	})
	if err != nil {
		return 0, nil, fmt.Errorf("encode confirm request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.confirmURL, bytes.NewReader(payload))
	if err != nil {
		return 0, nil, fmt.Errorf("build confirm request: %w", err)
	}
	req.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(c.secretKey+":")))
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("confirm request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return 0, nil, fmt.Errorf("read confirm response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, nil, &ConfirmError{Status: resp.StatusCode, Body: body}
	}
	return resp.StatusCode, body, nil
}
