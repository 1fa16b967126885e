package validate_test

import (
	"reflect"
	"testing"

	"restockly/internal/validate"
)

func TestShop(t *testing.T) {
	if s, ok := validate.Shop(" A-Store.myshopify.com "); !ok || s != "a-store.myshopify.com" {
		t.Fatalf("want normalized shop, got %q ok=%v", s, ok)
	}
	for _, bad := range []string{"", "example.com", "myshopify.com", "a b.myshopify.com", "javascript:alert(1)"} {
		if _, ok := validate.Shop(bad); ok {
			t.Fatalf("%q should be rejected", bad)
		}
	}
}

func TestProductID(t *testing.T) {
	if _, ok := validate.ProductID("gid://shopify/Product/123"); !ok {
		t.Fatal("well-formed gid rejected")
	}
	for _, bad := range []string{"", "123", "gid://shopify/Product/", "gid://shopify/Collection/1", "not-a-gid"} {
		if _, ok := validate.ProductID(bad); ok {
			t.Fatalf("%q should be rejected", bad)
		}
	}
}

func TestProductIDsDropsMalformed(t *testing.T) {
	got := validate.ProductIDs("gid://shopify/Product/1,not-a-gid,gid://shopify/Product/2")
	want := []string{"gid://shopify/Product/1", "gid://shopify/Product/2"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("want %v, got %v", want, got)
	}
	if got := validate.ProductIDs(""); got != nil {
		t.Fatalf("empty input should yield nothing, got %v", got)
	}
}

func TestColor(t *testing.T) {
	if _, ok := validate.Color("#1A2b3C"); !ok {
		t.Fatal("hex color rejected")
	}
	if _, ok := validate.Color(""); !ok {
		t.Fatal("empty color is allowed (theme default)")
	}
	for _, bad := range []string{"red", "#fff", "#12345G"} {
		if _, ok := validate.Color(bad); ok {
			t.Fatalf("%q should be rejected", bad)
		}
	}
}

func TestEmail(t *testing.T) {
	if _, ok := validate.Email("jo@example.com"); !ok {
		t.Fatal("valid email rejected")
	}
	for _, bad := range []string{"", "jo", "jo@", "@example.com"} {
		if _, ok := validate.Email(bad); ok {
			t.Fatalf("%q should be rejected", bad)
		}
	}
}
