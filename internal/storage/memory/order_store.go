package memory

import (
	"sync"
	"time"

	"github.com/pjm714059-code/baro-toss-test/internal/domain"
)

// OrderStore holds issued orders in memory, keyed by order identifier. It is
// the exclusive owner of order records: there is no persistence and no
// cross-process sharing, so a restart forgets every outstanding order.
//
// The mutex is held only for the duration of a single map operation; callers
// must never need it across an outbound network call.
type OrderStore struct {
	mu     sync.Mutex
	ttl    time.Duration
	orders map[string]domain.Order
}

// NewOrderStore returns an empty store whose records live for ttl after
// their CreatedAt.
func NewOrderStore(ttl time.Duration) *OrderStore {
	return &OrderStore{
		ttl:    ttl,
		orders: make(map[string]domain.Order),
	}
}

// TTL returns the configured record lifetime.
func (s *OrderStore) TTL() time.Duration {
	return s.ttl
}

// Put stores an order under its identifier.
func (s *OrderStore) Put(id string, order domain.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[id] = order
}

// Get returns the order stored under id at now. A record past its TTL is
// reported absent even when it has not been swept yet.
func (s *OrderStore) Get(id string, now time.Time) (domain.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[id]
	if !ok || order.Expired(now, s.ttl) {
		return domain.Order{}, false
	}
	return order, true
}

// Delete removes the order stored under id, if any.
func (s *OrderStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.orders, id)
}

// Sweep removes every record older than the TTL at now. It is invoked
// opportunistically on each issuance and verification, which bounds memory
// to recent traffic without a background timer.
func (s *OrderStore) Sweep(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, order := range s.orders {
		if order.Expired(now, s.ttl) {
			delete(s.orders, id)
		}
	}
}

// Len reports the number of physically present records, expired or not.
func (s *OrderStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}
