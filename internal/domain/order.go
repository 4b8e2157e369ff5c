package domain

import "time"

// Order is an issued payment order awaiting confirmation. Amount and
// OrderName are immutable once the record exists: they are the values the
// order signature was computed over.
type Order struct {
	ID          string
	Amount      int64
	OrderName   string
	CreatedAt   time.Time
	ClientIP    string
	ClientAgent string
}

// Expired reports whether the order is past its lifetime at now. An expired
// record must be treated as absent even if it has not been swept yet.
func (o Order) Expired(now time.Time, ttl time.Duration) bool {
	return now.Sub(o.CreatedAt) > ttl
}
