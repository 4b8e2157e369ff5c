package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pjm714059-code/baro-toss-test/internal/app"
	"github.com/pjm714059-code/baro-toss-test/internal/domain"
	"github.com/pjm714059-code/baro-toss-test/internal/toss"
)

// OrderConfirmer is the minimal interface needed to verify and confirm an order.
type OrderConfirmer interface {
	Confirm(ctx context.Context, in app.ConfirmInput) (app.ConfirmResult, error)
}

// HandleConfirm returns an HTTP handler for the payment confirmation
// callback. Verification failures are 400s with a stable code; upstream
// rejections pass the processor's status and body through.
func HandleConfirm(svc OrderConfirmer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var req confirmRequest
		dec := json.NewDecoder(r.Body)
		dec.UseNumber()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeMissingFields, "invalid request body")
			return
		}

		amount, err := coerceAmount(req.Amount)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeMissingFields, "paymentKey, orderId and amount are required")
			return
		}

		res, err := svc.Confirm(r.Context(), app.ConfirmInput{
			OrderID:    req.OrderID,
			Amount:     amount,
			PaymentKey: req.PaymentKey,
		})
		if err != nil {
			writeConfirmError(w, err)
			return
		}

		writeJSON(w, res.Status, confirmResponse{
			OK: true,
			Order: confirmedOrder{
				OrderID: res.Order.ID,
				Amount:  res.Order.Amount,
			},
			Toss: rawOrQuoted(res.Body),
		})
	}
}

func writeConfirmError(w http.ResponseWriter, err error) {
	var mismatchErr *domain.AmountMismatchError
	var confirmErr *toss.ConfirmError
	switch {
	case errors.Is(err, domain.ErrMissingFields):
		writeError(w, http.StatusBadRequest, codeMissingFields, "paymentKey, orderId and amount are required")
	case errors.Is(err, domain.ErrInvalidOrderID):
		writeError(w, http.StatusBadRequest, codeInvalidOrderID, "malformed order id")
	case errors.Is(err, domain.ErrOrderNotFound):
		writeError(w, http.StatusBadRequest, codeOrderNotFound, "order not found or expired")
	case errors.Is(err, domain.ErrOrderTampered):
		writeError(w, http.StatusBadRequest, codeOrderTampered, "order signature mismatch")
	case errors.As(err, &mismatchErr):
		writeErrorResponse(w, http.StatusBadRequest, errorResponse{
			Code:          codeAmountMismatch,
			Message:       mismatchErr.Error(),
			OrderAmount:   int64Ptr(mismatchErr.OrderAmount),
			ClaimedAmount: int64Ptr(mismatchErr.ClaimedAmount),
		})
	case errors.As(err, &confirmErr):
		writeErrorResponse(w, confirmErr.Status, errorResponse{
			Code:    codeTossConfirmFailed,
			Message: "payment confirmation rejected by processor",
			Toss:    rawOrQuoted(confirmErr.Body),
		})
	default:
		// Transport-level relay failure: no upstream status to pass through.
		writeError(w, http.StatusBadGateway, codeTossConfirmFailed, "payment processor unreachable")
	}
}

type confirmRequest struct {
	PaymentKey string `json:"paymentKey"`
	OrderID    string `json:"orderId"`
	Amount     any    `json:"amount"`
}

type confirmResponse struct {
	OK    bool            `json:"ok"`
	Order confirmedOrder  `json:"order"`
	Toss  json.RawMessage `json:"toss"`
}

type confirmedOrder struct {
	OrderID string `json:"orderId"`
	Amount  int64  `json:"amount"`
}
