package token

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/pjm714059-code/baro-toss-test/internal/domain"
)

// Prefix is the fixed leading segment of every order identifier.
const Prefix = "BARO"

const nonceBytes = 8

// Token is the parsed form of an order identifier:
// BARO_<decimal ms timestamp>_<hex nonce>_<24-hex signature>.
// The identifier is derived data; the signature binds the amount and order
// name held server-side to the timestamp and nonce embedded here.
type Token struct {
	TimestampMS int64
	Nonce       string
	Signature   string
}

// Encode assembles an order identifier from its segments.
func Encode(timestampMS int64, nonce, signature string) string {
	return fmt.Sprintf("%s_%d_%s_%s", Prefix, timestampMS, nonce, signature)
}

// NewNonce returns a fresh random hex nonce with 64 bits of entropy.
func NewNonce() (string, error) {
	b := make([]byte, nonceBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("read nonce: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// Parse splits an order identifier into its segments. Any deviation from the
// expected shape maps to domain.ErrInvalidOrderID; whether the signature is
// the right one for the stored order is the verifier's concern, not Parse's.
func Parse(id string) (Token, error) {
	parts := strings.Split(id, "_")
	if len(parts) != 4 || parts[0] != Prefix {
		return Token{}, domain.ErrInvalidOrderID
	}
	ts, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || ts <= 0 {
		return Token{}, domain.ErrInvalidOrderID
	}
	if !isLowerHex(parts[2]) {
		return Token{}, domain.ErrInvalidOrderID
	}
	if len(parts[3]) != SignatureLength || !isLowerHex(parts[3]) {
		return Token{}, domain.ErrInvalidOrderID
	}
	return Token{TimestampMS: ts, Nonce: parts[2], Signature: parts[3]}, nil
}

func isLowerHex(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return false
		}
	}
	return true
}
