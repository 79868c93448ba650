package password

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerify(t *testing.T) {
	h, err := NewBcrypt(Config{Cost: bcrypt.MinCost})
	if err != nil {
		t.Fatalf("new bcrypt: %v", err)
	}

	hash, err := h.Hash("correct-password-123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Fatalf("unexpected hash format: %q", hash)
	}

	ok, err := h.Verify("correct-password-123", hash)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !ok {
		t.Fatal("expected password to verify")
	}

	ok, err = h.Verify("wrong-password", hash)
	if err != nil {
		t.Fatalf("verify mismatch must not error: %v", err)
	}
	if ok {
		t.Fatal("expected mismatch to fail verification")
	}
}

func TestHashesAreSalted(t *testing.T) {
	h, err := NewBcrypt(Config{Cost: bcrypt.MinCost})
	if err != nil {
		t.Fatalf("new bcrypt: %v", err)
	}

	first, err := h.Hash("correct-password-123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	second, err := h.Hash("correct-password-123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if first == second {
		t.Fatal("two hashes of the same password must differ")
	}
}

func TestHashRejectsLengthBounds(t *testing.T) {
	h, err := NewBcrypt(Config{})
	if err != nil {
		t.Fatalf("new bcrypt: %v", err)
	}

	if _, err := h.Hash("short"); err == nil {
		t.Fatal("expected short password to be rejected")
	}
	if _, err := h.Hash(strings.Repeat("a", maxPasswordLength+1)); err == nil {
		t.Fatal("expected over-long password to be rejected")
	}
}

func TestVerifyMalformedHash(t *testing.T) {
	h, err := NewBcrypt(Config{})
	if err != nil {
		t.Fatalf("new bcrypt: %v", err)
	}

	ok, err := h.Verify("whatever-password", "not-a-bcrypt-hash")
	if err == nil {
		t.Fatal("expected malformed hash to error")
	}
	if ok {
		t.Fatal("malformed hash must not verify")
	}
}

func TestNewBcryptCostBounds(t *testing.T) {
	if _, err := NewBcrypt(Config{Cost: bcrypt.MaxCost + 1}); err == nil {
		t.Fatal("expected out-of-range cost to be rejected")
	}
	if _, err := NewBcrypt(Config{Cost: -1}); err == nil {
		t.Fatal("expected negative cost to be rejected")
	}

	h, err := NewBcrypt(Config{})
	if err != nil {
		t.Fatalf("zero cost must fall back to default: %v", err)
	}
	if h.cost != bcrypt.DefaultCost {
		t.Fatalf("expected default cost %d, got %d", bcrypt.DefaultCost, h.cost)
	}
}
