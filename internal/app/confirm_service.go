package app

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/pjm714059-code/baro-toss-test/internal/clock"
	"github.com/pjm714059-code/baro-toss-test/internal/domain"
	"github.com/pjm714059-code/baro-toss-test/internal/token"
)

// OrderReader is the minimal store surface the verifier needs.
type OrderReader interface {
	Get(id string, now time.Time) (domain.Order, bool)
	Delete(id string)
	Sweep(now time.Time)
}

// ConfirmRelay forwards an authorized confirmation to the payment processor.
// A nil error means the processor accepted the payment; upstream rejections
// come back as an error carrying the processor's status and body.
type ConfirmRelay interface {
	Confirm(ctx context.Context, orderID string, amount int64, paymentKey string) (status int, body []byte, err error)
}

// ConfirmService verifies an order identifier against the stored record and,
// only then, relays the confirmation to the processor.
type ConfirmService struct {
	store  OrderReader
	signer *token.Signer
	clock  clock.Clock
	relay  ConfirmRelay
}

func NewConfirmService(store OrderReader, signer *token.Signer, clk clock.Clock, relay ConfirmRelay) *ConfirmService {
	return &ConfirmService{
		store:  store,
		signer: signer,
		clock:  clk,
		relay:  relay,
	}
}

type ConfirmInput struct {
	OrderID    string
	Amount     int64
	PaymentKey string
}

type ConfirmResult struct {
	Order  domain.Order
	Status int
	Body   json.RawMessage
}

// Confirm runs the verification chain and relays on success. Each failure
// mode is distinct; lookup failures stay a single generic error on purpose,
// so a caller cannot tell expired from never-issued from restarted.
//
// On processor success the record is deleted (single use). On processor
// failure it is kept, so the client may retry until the TTL runs out.
func (s *ConfirmService) Confirm(ctx context.Context, in ConfirmInput) (ConfirmResult, error) {
	if in.PaymentKey == "" || in.OrderID == "" || in.Amount <= 0 {
		return ConfirmResult{}, domain.ErrMissingFields
	}

	tok, err := token.Parse(in.OrderID)
	if err != nil {
		return ConfirmResult{}, err
	}

	now := s.clock.Now()
	s.store.Sweep(now)

	order, ok := s.store.Get(in.OrderID, now)
	if !ok {
		return ConfirmResult{}, domain.ErrOrderNotFound
	}

	// Recompute the signature from the STORED amount/name and the token's
	// embedded timestamp/nonce. The caller is not trusted for any of these.
	expected := s.signer.Sign(
		strconv.FormatInt(order.Amount, 10),
		order.OrderName,
		strconv.FormatInt(tok.TimestampMS, 10),
		tok.Nonce,
	)
	if !token.Equal(expected, tok.Signature) {
		return ConfirmResult{}, domain.ErrOrderTampered
	}

	// Second, independent check: the amount claimed in the processor's
	// redirect must match the amount bound at issuance.
	if in.Amount != order.Amount {
		return ConfirmResult{}, &domain.AmountMismatchError{
			OrderAmount:   order.Amount,
			ClaimedAmount: in.Amount,
		}
	}

	// Store lock is not held here; the relay may block on the network.
	status, body, err := s.relay.Confirm(ctx, order.ID, order.Amount, in.PaymentKey)
	if err != nil {
		return ConfirmResult{}, err
	}

	s.store.Delete(in.OrderID)
	return ConfirmResult{Order: order, Status: status, Body: body}, nil
}
