package http

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/pjm714059-code/baro-toss-test/internal/app"
	"github.com/pjm714059-code/baro-toss-test/internal/domain"
)

// OrderCreator is the minimal interface needed to issue an order.
type OrderCreator interface {
	CreateOrder(ctx context.Context, in app.CreateOrderInput) (app.CreateOrderResult, error)
}

// HandleCreateOrder returns an HTTP handler for issuing order identifiers.
func HandleCreateOrder(svc OrderCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var req createOrderRequest
		dec := json.NewDecoder(r.Body)
		dec.UseNumber()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidAmount, "invalid request body")
			return
		}

		amount, err := coerceAmount(req.Amount)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidAmount, "amount must be a positive integer")
			return
		}

		res, err := svc.CreateOrder(r.Context(), app.CreateOrderInput{
			Amount:      amount,
			OrderName:   req.OrderName,
			ClientIP:    clientIP(r),
			ClientAgent: r.UserAgent(),
		})
		if err != nil {
			var exceedsErr *domain.AmountExceedsMaxError
			switch {
			case errors.Is(err, domain.ErrInvalidAmount):
				writeError(w, http.StatusBadRequest, codeInvalidAmount, err.Error())
			case errors.As(err, &exceedsErr):
				writeErrorResponse(w, http.StatusBadRequest, errorResponse{
					Code:      codeAmountExceedsMax,
					Message:   exceedsErr.Error(),
					MaxAmount: int64Ptr(exceedsErr.Max),
				})
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}

		writeJSON(w, http.StatusOK, createOrderResponse{
			OK:        true,
			OrderID:   res.OrderID,
			Amount:    res.Amount,
			OrderName: res.OrderName,
			MaxAmount: res.MaxAmount,
			TTLMS:     res.TTL.Milliseconds(),
		})
	}
}

type createOrderRequest struct {
	Amount    any    `json:"amount"`
	OrderName string `json:"orderName"`
}

type createOrderResponse struct {
	OK        bool   `json:"ok"`
	OrderID   string `json:"orderId"`
	Amount    int64  `json:"amount"`
	OrderName string `json:"orderName"`
	MaxAmount int64  `json:"maxAmount"`
	TTLMS     int64  `json:"ttlMs"`
}

// coerceAmount accepts a JSON number or numeric string and requires it to be
// a finite integer. Positivity and the ceiling are the service's checks.
func coerceAmount(v any) (int64, error) {
	var s string
	switch n := v.(type) {
	case json.Number:
		s = n.String()
	case string:
		s = strings.TrimSpace(n)
	default:
		return 0, domain.ErrInvalidAmount
	}
	if s == "" {
		return 0, domain.ErrInvalidAmount
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, domain.ErrInvalidAmount
	}
	if f != math.Trunc(f) || f >= math.MaxInt64 || f <= math.MinInt64 {
		return 0, domain.ErrInvalidAmount
	}
	return int64(f), nil
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if first, _, ok := strings.Cut(fwd, ","); ok {
			return strings.TrimSpace(first)
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
