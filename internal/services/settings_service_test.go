package services_test

import (
	"errors"
	"testing"

	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"restockly/internal/apperr"
	"restockly/internal/domain"
	"restockly/internal/repos"
	"restockly/internal/services"
)

func newSettings(t *testing.T) *services.SettingsService {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return services.NewSettingsService(repos.NewSettingsRepo(db))
}

func TestSettingsFlow_SaveAndResolve(t *testing.T) {
	svc := newSettings(t)
	shop := "a.myshopify.com"
	pid := "gid://shopify/Product/1"

	on := true
	pct := 15.0
	if _, err := svc.SaveDefaults(shop, domain.DefaultsPatch{WarrantyEnabled: &on, WarrantyPercentage: &pct}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.SaveOutOfStock(shop, pid, domain.OutOfStockBlock{Enabled: true, ButtonText: "Notify me"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := svc.Effective(shop, pid)
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.OutOfStock.Enabled || cfg.OutOfStock.ButtonText != "Notify me" {
		t.Fatalf("out-of-stock not applied: %+v", cfg.OutOfStock)
	}
	if !cfg.Warranty.Enabled || cfg.Warranty.PriceValue != 15.0 {
		t.Fatalf("warranty should inherit shop defaults: %+v", cfg.Warranty)
	}
	if cfg.Preorder.Enabled {
		t.Fatal("preorder has no shop fallback and must stay disabled")
	}
}

func TestSettingsValidation(t *testing.T) {
	svc := newSettings(t)
	shop := "a.myshopify.com"
	pid := "gid://shopify/Product/1"

	if _, err := svc.SaveOutOfStock("bad-domain", pid, domain.OutOfStockBlock{}); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("want validation error for bad shop, got %v", err)
	}
	if _, err := svc.SaveOutOfStock(shop, "not-a-gid", domain.OutOfStockBlock{}); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("want validation error for bad product id, got %v", err)
	}
	if _, err := svc.SaveOutOfStock(shop, pid, domain.OutOfStockBlock{ButtonColor: "blue"}); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("want validation error for bad color, got %v", err)
	}

	// Partial payment without a value is rejected at save time
	if _, err := svc.SavePreorder(shop, pid, domain.PreorderBlock{
		Enabled: true, PaymentType: domain.PaymentPartialFixed,
	}); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("want validation error for missing payment value, got %v", err)
	}

	// Product-specific warranty price without a value likewise
	if _, err := svc.SaveWarranty(shop, pid, domain.WarrantyBlock{
		PriceType: domain.PriceProductFixed,
	}); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("want validation error for missing price value, got %v", err)
	}

	bad := 120.0
	if _, err := svc.SaveDefaults(shop, domain.DefaultsPatch{WarrantyPercentage: &bad}); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("want validation error for out-of-range percentage, got %v", err)
	}
}

func TestSaveOutOfStockDropsMalformedRecommendations(t *testing.T) {
	svc := newSettings(t)
	ov, err := svc.SaveOutOfStock("a.myshopify.com", "gid://shopify/Product/1", domain.OutOfStockBlock{
		Enabled:      true,
		Recommend:    true,
		RecommendIDs: []string{"gid://shopify/Product/2", "not-a-gid", "gid://shopify/Product/3"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(ov.OutOfStock.RecommendIDs) != 2 {
		t.Fatalf("malformed recommendation ids must be dropped: %v", ov.OutOfStock.RecommendIDs)
	}
}

func TestDefaultsSynthesizedForFreshShop(t *testing.T) {
	svc := newSettings(t)
	d, err := svc.Defaults("fresh.myshopify.com")
	if err != nil {
		t.Fatal(err)
	}
	if d.WarrantyEnabled || d.WarrantyPresentation != domain.PresentationPopup || d.WarrantyPercentage != 10.0 {
		t.Fatalf("system defaults not applied: %+v", d)
	}
}
