package services

import (
	"restockly/internal/apperr"
	"restockly/internal/domain"
)

// Resolve computes the effective per-product configuration from the shop
// defaults and the product override. Pure: no I/O, deterministic.
//
// Only warranty has a shop-level fallback chain (override, then shop
// default, then system default). Out-of-stock and preorder are per-product
// only: no override row means the feature is fully disabled.
func Resolve(defaults *domain.ShopDefaults, ov *domain.ProductOverride) (domain.EffectiveConfig, error) {
	var cfg domain.EffectiveConfig

	if ov != nil {
		cfg.OutOfStock = ov.OutOfStock
		cfg.Preorder = ov.Preorder
	}

	w, err := resolveWarranty(defaults, ov)
	if err != nil {
		return domain.EffectiveConfig{}, err
	}
	cfg.Warranty = w
	return cfg, nil
}

func resolveWarranty(defaults *domain.ShopDefaults, ov *domain.ProductOverride) (domain.EffectiveWarranty, error) {
	baseEnabled := false
	basePresentation := domain.DefaultPresentation
	basePercentage := domain.DefaultWarrantyPercentage
	description := ""
	if defaults != nil {
		baseEnabled = defaults.WarrantyEnabled
		basePresentation = defaults.WarrantyPresentation
		basePercentage = defaults.WarrantyPercentage
		description = defaults.WarrantyDescription
	}

	w := domain.EffectiveWarranty{
		Enabled:      baseEnabled,
		Presentation: basePresentation,
		PriceType:    domain.PriceGlobalPercent,
		PriceValue:   basePercentage,
		Description:  description,
	}
	if ov == nil {
		return w, nil
	}

	w.Enabled = ov.Warranty.Enabled.Or(baseEnabled)
	w.Presentation = ov.Warranty.Presentation.Or(basePresentation)
	w.VariantID = ov.Warranty.VariantID

	switch ov.Warranty.PriceType {
	case domain.PriceProductPercent, domain.PriceProductFixed:
		if ov.Warranty.PriceValue == nil {
			// Never silently defaulted: a product-specific price type
			// without a value is broken data the merchant must fix.
			return domain.EffectiveWarranty{}, apperr.Integrity(
				"product %s: warranty price type %s has no value", ov.ProductID, ov.Warranty.PriceType)
		}
		w.PriceType = ov.Warranty.PriceType
		w.PriceValue = *ov.Warranty.PriceValue
	case domain.PriceGlobalPercent, "":
		// keep the shop-level percentage
	default:
		return domain.EffectiveWarranty{}, apperr.Integrity(
			"product %s: unknown warranty price type %q", ov.ProductID, ov.Warranty.PriceType)
	}
	return w, nil
}
