package token

import (
	"strings"
	"testing"
)

func TestSigner_Sign(t *testing.T) {
	t.Parallel()

	t.Run("deterministic for same fields and key", func(t *testing.T) {
		s := NewSigner("secret-1")
		a := s.Sign("1000", "Widget", "1735813200000", "a1b2c3d4e5f60718")
		b := s.Sign("1000", "Widget", "1735813200000", "a1b2c3d4e5f60718")
		if a != b {
			t.Fatalf("expected deterministic tag, got %q and %q", a, b)
		}
	})

	t.Run("fixed length lowercase hex", func(t *testing.T) {
		s := NewSigner("secret-1")
		tag := s.Sign("1000", "Widget")
		if len(tag) != SignatureLength {
			t.Fatalf("expected %d hex chars, got %d", SignatureLength, len(tag))
		}
		if tag != strings.ToLower(tag) {
			t.Fatalf("expected lowercase tag, got %q", tag)
		}
		for _, r := range tag {
			if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
				t.Fatalf("non-hex rune %q in tag %q", r, tag)
			}
		}
	})

	t.Run("different key produces different tag", func(t *testing.T) {
		a := NewSigner("secret-1").Sign("1000", "Widget")
		b := NewSigner("secret-2").Sign("1000", "Widget")
		if a == b {
			t.Fatalf("expected key to change tag")
		}
	})

	t.Run("any field change produces different tag", func(t *testing.T) {
		s := NewSigner("secret-1")
		base := s.Sign("1000", "Widget", "1735813200000", "a1b2c3d4e5f60718")
		variants := [][]string{
			{"1001", "Widget", "1735813200000", "a1b2c3d4e5f60718"},
			{"1000", "Gadget", "1735813200000", "a1b2c3d4e5f60718"},
			{"1000", "Widget", "1735813200001", "a1b2c3d4e5f60718"},
			{"1000", "Widget", "1735813200000", "a1b2c3d4e5f60719"},
		}
		for _, v := range variants {
			if s.Sign(v...) == base {
				t.Fatalf("expected fields %v to change tag", v)
			}
		}
	})

	t.Run("field order matters", func(t *testing.T) {
		s := NewSigner("secret-1")
		if s.Sign("a", "b") == s.Sign("b", "a") {
			t.Fatalf("expected field order to change tag")
		}
	})

	t.Run("empty secret panics", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Fatalf("expected panic for empty secret")
			}
		}()
		NewSigner("")
	})
}

func TestEqual(t *testing.T) {
	t.Parallel()

	if !Equal("abc123", "abc123") {
		t.Fatalf("expected equal tags to match")
	}
	if Equal("abc123", "abc124") {
		t.Fatalf("expected different tags not to match")
	}
}
