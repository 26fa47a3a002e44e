package password

import (
	"errors"
	"strings"
	"testing"
)

func TestHashAndCompare(t *testing.T) {
	hash, err := Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Fatalf("expected argon2id PHC format, got %q", hash)
	}

	if err := Compare(hash, "correct horse battery staple"); err != nil {
		t.Fatalf("Compare rejected the right password: %v", err)
	}
	if err := Compare(hash, "wrong password"); !errors.Is(err, ErrMismatch) {
		t.Fatalf("expected ErrMismatch for wrong password, got %v", err)
	}
}

func TestHashesAreSalted(t *testing.T) {
	first, err := Hash("s3cret")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	second, err := Hash("s3cret")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if first == second {
		t.Fatal("expected distinct hashes for the same password")
	}
}

func TestCompareRejectsMalformedHash(t *testing.T) {
	cases := []string{
		"",
		"plaintext",
		"$argon2i$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=65536,t=3,p=2$not-base64!$aGFzaA",
	}
	for _, encoded := range cases {
		if err := Compare(encoded, "whatever"); !errors.Is(err, ErrInvalidHash) {
			t.Fatalf("expected ErrInvalidHash for %q, got %v", encoded, err)
		}
	}
}
