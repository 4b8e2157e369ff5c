package http

import (
	"encoding/json"
	"net/http"
)

const (
	codeInvalidAmount     = "INVALID_AMOUNT"
	codeAmountExceedsMax  = "AMOUNT_EXCEEDS_MAX"
	codeMissingFields     = "MISSING_FIELDS"
	codeInvalidOrderID    = "INVALID_ORDER_ID"
	codeOrderNotFound     = "ORDER_NOT_FOUND"
	codeOrderTampered     = "ORDER_TAMPERED"
	codeAmountMismatch    = "AMOUNT_MISMATCH"
	codeTossConfirmFailed = "TOSS_CONFIRM_FAILED"
	codeMethodNotAllowed  = "METHOD_NOT_ALLOWED"
	codeNotFound          = "NOT_FOUND"
	codeForbidden         = "FORBIDDEN"
	codeInternalError     = "INTERNAL_ERROR"
)

type errorResponse struct {
	OK            bool            `json:"ok"`
	Code          string          `json:"code"`
	Message       string          `json:"message"`
	MaxAmount     *int64          `json:"maxAmount,omitempty"`
	OrderAmount   *int64          `json:"orderAmount,omitempty"`
	ClaimedAmount *int64          `json:"claimedAmount,omitempty"`
	Toss          json.RawMessage `json:"toss,omitempty"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeErrorResponse(w, status, errorResponse{Code: code, Message: msg})
}

func writeErrorResponse(w http.ResponseWriter, status int, resp errorResponse) {
	resp.OK = false
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(resp)
	if err != nil {
		_, _ = w.Write([]byte(`{"ok":false,"code":"INTERNAL_ERROR","message":"internal error"}`))
		return
	}
	_, _ = w.Write(payload)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func int64Ptr(v int64) *int64 {
	return &v
}

// rawOrQuoted keeps an upstream body verbatim when it is valid JSON and
// degrades to a JSON string otherwise, so responses always stay well-formed.
func rawOrQuoted(body []byte) json.RawMessage {
	if len(body) == 0 {
		return nil
	}
	if json.Valid(body) {
		return json.RawMessage(body)
	}
	quoted, err := json.Marshal(string(body))
	if err != nil {
		return nil
	}
	return json.RawMessage(quoted)
}
