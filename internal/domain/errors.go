package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidAmount  = errors.New("invalid amount")
	ErrMissingFields  = errors.New("missing required fields")
	ErrInvalidOrderID = errors.New("invalid order id")
	// ErrOrderNotFound covers never-issued, already-consumed, expired and
	// post-restart lookups alike; callers must not be able to tell which.
	ErrOrderNotFound = errors.New("order not found")
	ErrOrderTampered = errors.New("order tampered")
)

// AmountExceedsMaxError reports an amount above the configured ceiling.
type AmountExceedsMaxError struct {
	Max int64
}

func (e *AmountExceedsMaxError) Error() string {
	return fmt.Sprintf("amount exceeds maximum of %d", e.Max)
}

// AmountMismatchError reports a claimed amount that differs from the amount
// bound at issuance.
type AmountMismatchError struct {
	OrderAmount   int64
	ClaimedAmount int64
}

func (e *AmountMismatchError) Error() string {
	return fmt.Sprintf("amount mismatch: order amount %d, claimed %d", e.OrderAmount, e.ClaimedAmount)
}
