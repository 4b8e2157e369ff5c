package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// ConfirmCall records one confirmation request received by the fake server.
type ConfirmCall struct {
	Authorization string
	PaymentKey    string
	OrderID       string
	Amount        int64
}

// FakeToss is an httptest stand-in for the Toss payments confirmation
// endpoint. It records every call and answers with a configurable status
// and body.
type FakeToss struct {
	URL string

	mu     sync.Mutex
	status int
	body   string
	calls  []ConfirmCall
}

// NewFakeToss starts a fake confirmation endpoint answering with status and
// body. The server is shut down via t.Cleanup.
func NewFakeToss(t *testing.T, status int, body string) *FakeToss {
	t.Helper()

	f := &FakeToss{status: status, body: body}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			PaymentKey string `json:"paymentKey"`
			OrderID    string `json:"orderId"`
			Amount     int64  `json:"amount"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		f.mu.Lock()
		f.calls = append(f.calls, ConfirmCall{
			Authorization: r.Header.Get("Authorization"),
			PaymentKey:    req.PaymentKey,
			OrderID:       req.OrderID,
			Amount:        req.Amount,
		})
		status, respBody := f.status, f.body
		f.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(respBody))
	}))
	t.Cleanup(srv.Close)

	f.URL = srv.URL
	return f
}

// Respond changes the status and body of subsequent answers.
func (f *FakeToss) Respond(status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status = status
	f.body = body
}

// Calls returns a copy of the recorded confirmation requests.
func (f *FakeToss) Calls() []ConfirmCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]ConfirmCall, len(f.calls))
	copy(out, f.calls)
	return out
}
