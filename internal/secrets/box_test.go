package secrets

import (
	"errors"
	"strings"
	"testing"
)

func TestSealOpenRoundTrip(t *testing.T) {
	box, err := NewBox(strings.Repeat("ab", 32))
	if err != nil {
		t.Fatal(err)
	}
	cipher, err := box.Seal("shpat_secret")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(cipher), "shpat_secret") {
		t.Fatal("plaintext visible in ciphertext")
	}
	got, err := box.Open(cipher)
	if err != nil {
		t.Fatal(err)
	}
	if got != "shpat_secret" {
		t.Fatalf("round trip mangled: %q", got)
	}
}

func TestOpenWithWrongKeyFails(t *testing.T) {
	a, _ := NewBox(strings.Repeat("ab", 32))
	b, _ := NewBox(strings.Repeat("cd", 32))
	cipher, err := a.Seal("token")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := b.Open(cipher); !errors.Is(err, ErrDecrypt) {
		t.Fatalf("want ErrDecrypt, got %v", err)
	}
}

func TestBadKeyRejected(t *testing.T) {
	if _, err := NewBox("deadbeef"); err == nil {
		t.Fatal("short key must be rejected")
	}
	if _, err := NewBox("zz" + strings.Repeat("ab", 31)); err == nil {
		t.Fatal("non-hex key must be rejected")
	}
}

func TestOpenTruncatedCiphertext(t *testing.T) {
	box, _ := NewBox("")
	if _, err := box.Open([]byte("short")); !errors.Is(err, ErrDecrypt) {
		t.Fatalf("want ErrDecrypt, got %v", err)
	}
}
