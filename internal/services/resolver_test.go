package services_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"restockly/internal/apperr"
	"restockly/internal/domain"
	"restockly/internal/services"
)

func f64(v float64) *float64 { return &v }

func TestResolveSystemDefaults(t *testing.T) {
	// No shop defaults row, no override row: warranty falls back to the
	// hard-coded system defaults, out-of-stock and preorder stay disabled.
	cfg, err := services.Resolve(nil, nil)
	require.NoError(t, err)

	require.False(t, cfg.Warranty.Enabled)
	require.Equal(t, domain.PresentationPopup, cfg.Warranty.Presentation)
	require.Equal(t, domain.PriceGlobalPercent, cfg.Warranty.PriceType)
	require.Equal(t, 10.0, cfg.Warranty.PriceValue)

	require.False(t, cfg.OutOfStock.Enabled)
	require.False(t, cfg.Preorder.Enabled)
}

func TestResolveOverrideWins(t *testing.T) {
	defaults := &domain.ShopDefaults{
		Shop:                 "a.myshopify.com",
		WarrantyEnabled:      false,
		WarrantyPresentation: domain.PresentationEmbed,
		WarrantyPercentage:   15.0,
	}
	ov := &domain.ProductOverride{
		Shop:      "a.myshopify.com",
		ProductID: "gid://shopify/Product/1",
		Warranty: domain.WarrantyBlock{
			Enabled:   domain.OverrideBool(true),
			PriceType: domain.PriceGlobalPercent,
		},
	}

	cfg, err := services.Resolve(defaults, ov)
	require.NoError(t, err)
	require.True(t, cfg.Warranty.Enabled, "explicit override beats shop default")
	require.Equal(t, domain.PresentationEmbed, cfg.Warranty.Presentation, "unset presentation inherits")
	require.Equal(t, 15.0, cfg.Warranty.PriceValue, "global percentage comes from shop defaults")
}

func TestResolveInheritKeepsShopDefault(t *testing.T) {
	defaults := &domain.ShopDefaults{
		Shop:                 "a.myshopify.com",
		WarrantyEnabled:      true,
		WarrantyPresentation: domain.PresentationPopup,
		WarrantyPercentage:   12.5,
	}
	ov := &domain.ProductOverride{
		Shop:      "a.myshopify.com",
		ProductID: "gid://shopify/Product/2",
		Warranty: domain.WarrantyBlock{
			Enabled:      domain.InheritBool(),
			Presentation: domain.OverrideMode(domain.PresentationEmbed),
		},
	}

	cfg, err := services.Resolve(defaults, ov)
	require.NoError(t, err)
	require.True(t, cfg.Warranty.Enabled)
	require.Equal(t, domain.PresentationEmbed, cfg.Warranty.Presentation)
}

func TestResolveProductPrice(t *testing.T) {
	ov := &domain.ProductOverride{
		ProductID: "gid://shopify/Product/3",
		Warranty: domain.WarrantyBlock{
			PriceType:  domain.PriceProductFixed,
			PriceValue: f64(4.99),
			VariantID:  "gid://shopify/ProductVariant/9",
		},
	}
	cfg, err := services.Resolve(nil, ov)
	require.NoError(t, err)
	require.Equal(t, domain.PriceProductFixed, cfg.Warranty.PriceType)
	require.Equal(t, 4.99, cfg.Warranty.PriceValue)
	require.Equal(t, "gid://shopify/ProductVariant/9", cfg.Warranty.VariantID)
}

func TestResolveMissingPriceValueIsIntegrityError(t *testing.T) {
	ov := &domain.ProductOverride{
		ProductID: "gid://shopify/Product/4",
		Warranty: domain.WarrantyBlock{
			PriceType: domain.PriceProductPercent, // value missing
		},
	}
	_, err := services.Resolve(nil, ov)
	require.ErrorIs(t, err, apperr.ErrIntegrity)
}

func TestResolveNoShopFallbackForOOSAndPreorder(t *testing.T) {
	// Shop defaults exist but there is no override: both per-product
	// features must be fully disabled with all display fields unset.
	defaults := &domain.ShopDefaults{Shop: "a.myshopify.com", WarrantyEnabled: true, WarrantyPercentage: 10}
	cfg, err := services.Resolve(defaults, nil)
	require.NoError(t, err)
	require.Equal(t, domain.OutOfStockBlock{}, cfg.OutOfStock)
	require.Equal(t, domain.PreorderBlock{}, cfg.Preorder)
}

func TestResolveCopiesOverrideBlocks(t *testing.T) {
	ov := &domain.ProductOverride{
		ProductID: "gid://shopify/Product/5",
		OutOfStock: domain.OutOfStockBlock{
			Enabled:    true,
			ButtonText: "Email me",
			NotifyForm: true,
		},
		Preorder: domain.PreorderBlock{
			Enabled:      true,
			PaymentType:  domain.PaymentPartialPercent,
			PaymentValue: f64(25),
			TermsDisplay: domain.TermsPopup,
		},
	}
	cfg, err := services.Resolve(nil, ov)
	require.NoError(t, err)
	require.True(t, cfg.OutOfStock.Enabled)
	require.Equal(t, "Email me", cfg.OutOfStock.ButtonText)
	require.True(t, cfg.Preorder.Enabled)
	require.Equal(t, 25.0, *cfg.Preorder.PaymentValue)
}
