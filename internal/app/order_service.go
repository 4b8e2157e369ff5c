package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pjm714059-code/baro-toss-test/internal/clock"
	"github.com/pjm714059-code/baro-toss-test/internal/domain"
	"github.com/pjm714059-code/baro-toss-test/internal/token"
)

// OrderWriter is the minimal store surface the issuer needs.
type OrderWriter interface {
	Put(id string, order domain.Order)
	Sweep(now time.Time)
}

const (
	defaultMaxAmount = 1_000_000
	defaultOrderTTL  = 10 * time.Minute
	defaultOrderName = "주문"
	maxOrderNameLen  = 40
)

// OrderService issues signed order identifiers. This is the only place an
// amount and order name are bound to a signature: the identifier is useless
// without the matching stored record and vice versa.
type OrderService struct {
	store     OrderWriter
	signer    *token.Signer
	clock     clock.Clock
	maxAmount int64
	ttl       time.Duration
	nonce     func() (string, error)
}

func NewOrderService(store OrderWriter, signer *token.Signer, clk clock.Clock, opts ...OrderServiceOption) *OrderService {
	svc := &OrderService{
		store:     store,
		signer:    signer,
		clock:     clk,
		maxAmount: defaultMaxAmount,
		ttl:       defaultOrderTTL,
		nonce:     token.NewNonce,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type OrderServiceOption func(*OrderService)

// WithMaxAmount overrides the default amount ceiling.
func WithMaxAmount(max int64) OrderServiceOption {
	return func(s *OrderService) {
		if max > 0 {
			s.maxAmount = max
		}
	}
}

// WithOrderTTL overrides the default order lifetime.
func WithOrderTTL(d time.Duration) OrderServiceOption {
	return func(s *OrderService) {
		if d > 0 {
			s.ttl = d
		}
	}
}

// WithNonceFunc overrides the random nonce source (useful for tests).
func WithNonceFunc(fn func() (string, error)) OrderServiceOption {
	return func(s *OrderService) {
		if fn != nil {
			s.nonce = fn
		}
	}
}

type CreateOrderInput struct {
	Amount      int64
	OrderName   string
	ClientIP    string
	ClientAgent string
}

type CreateOrderResult struct {
	OrderID   string
	Amount    int64
	OrderName string
	MaxAmount int64
	TTL       time.Duration
}

func (s *OrderService) CreateOrder(_ context.Context, in CreateOrderInput) (CreateOrderResult, error) {
	if in.Amount <= 0 {
		return CreateOrderResult{}, domain.ErrInvalidAmount
	}
	if in.Amount > s.maxAmount {
		return CreateOrderResult{}, &domain.AmountExceedsMaxError{Max: s.maxAmount}
	}
	name := normalizeOrderName(in.OrderName)

	now := s.clock.Now()
	s.store.Sweep(now)

	nonce, err := s.nonce()
	if err != nil {
		return CreateOrderResult{}, fmt.Errorf("generate nonce: %w", err)
	}

	ts := now.UnixMilli()
	sig := s.signer.Sign(
		strconv.FormatInt(in.Amount, 10),
		name,
		strconv.FormatInt(ts, 10),
		nonce,
	)
	id := token.Encode(ts, nonce, sig)

	s.store.Put(id, domain.Order{
		ID:          id,
		Amount:      in.Amount,
		OrderName:   name,
		CreatedAt:   now,
		ClientIP:    in.ClientIP,
		ClientAgent: in.ClientAgent,
	})

	return CreateOrderResult{
		OrderID:   id,
		Amount:    in.Amount,
		OrderName: name,
		MaxAmount: s.maxAmount,
		TTL:       s.ttl,
	}, nil
}

// MaxAmount returns the configured amount ceiling.
func (s *OrderService) MaxAmount() int64 {
	return s.maxAmount
}

// normalizeOrderName never rejects: blank names get the placeholder, long
// names are cut to maxOrderNameLen runes.
func normalizeOrderName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return defaultOrderName
	}
	runes := []rune(name)
	if len(runes) > maxOrderNameLen {
		return string(runes[:maxOrderNameLen])
	}
	return name
}
