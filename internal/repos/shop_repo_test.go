package repos_test

import (
	"errors"
	"testing"

	"restockly/internal/apperr"
	"restockly/internal/repos"
	"restockly/internal/secrets"
)

func TestShopTokenRoundTrip(t *testing.T) {
	box, err := secrets.NewBox("")
	if err != nil {
		t.Fatal(err)
	}
	r := repos.NewShopRepo(memdb(t), box)

	if err := r.Install(shop, "shpat_abc123"); err != nil {
		t.Fatal(err)
	}
	tok, err := r.Token(shop)
	if err != nil {
		t.Fatal(err)
	}
	if tok != "shpat_abc123" {
		t.Fatalf("token mangled: %q", tok)
	}

	// Reinstall replaces the token
	if err := r.Install(shop, "shpat_rotated"); err != nil {
		t.Fatal(err)
	}
	tok, err = r.Token(shop)
	if err != nil {
		t.Fatal(err)
	}
	if tok != "shpat_rotated" {
		t.Fatalf("rotation lost: %q", tok)
	}

	if _, err := r.Token("unknown.myshopify.com"); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("want validation error for uninstalled shop, got %v", err)
	}
}
