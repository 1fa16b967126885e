package services

import (
	"restockly/internal/apperr"
	"restockly/internal/domain"
	"restockly/internal/repos"
	"restockly/internal/validate"
)

// SettingsService fronts the settings store with input validation and the
// resolution engine.
type SettingsService struct {
	Store *repos.SettingsRepo
}

func NewSettingsService(store *repos.SettingsRepo) *SettingsService {
	return &SettingsService{Store: store}
}

// Defaults returns the shop defaults, synthesizing the system defaults when
// the shop has never saved anything.
func (s *SettingsService) Defaults(shop string) (*domain.ShopDefaults, error) {
	shop, err := checkShop(shop)
	if err != nil {
		return nil, err
	}
	d, err := s.Store.GetShopDefaults(shop)
	if err != nil {
		return nil, err
	}
	if d == nil {
		d = &domain.ShopDefaults{
			Shop:                 shop,
			WarrantyEnabled:      false,
			WarrantyPresentation: domain.DefaultPresentation,
			WarrantyPercentage:   domain.DefaultWarrantyPercentage,
		}
	}
	return d, nil
}

func (s *SettingsService) SaveDefaults(shop string, patch domain.DefaultsPatch) (*domain.ShopDefaults, error) {
	shop, err := checkShop(shop)
	if err != nil {
		return nil, err
	}
	if patch.WarrantyPercentage != nil && (*patch.WarrantyPercentage < 0 || *patch.WarrantyPercentage > 100) {
		return nil, apperr.Validation("warranty percentage must be within 0..100")
	}
	if patch.WarrantyProductID != nil && *patch.WarrantyProductID != "" {
		if _, ok := validate.ProductID(*patch.WarrantyProductID); !ok {
			return nil, apperr.Validation("invalid warranty product id")
		}
	}
	return s.Store.UpsertShopDefaults(shop, patch)
}

func (s *SettingsService) Config(shop, productID string) (*domain.ProductOverride, error) {
	shop, productID, err := checkShopProduct(shop, productID)
	if err != nil {
		return nil, err
	}
	return s.Store.GetProductOverride(shop, productID)
}

// Effective resolves the merged configuration a storefront widget consumes.
func (s *SettingsService) Effective(shop, productID string) (domain.EffectiveConfig, error) {
	shop, productID, err := checkShopProduct(shop, productID)
	if err != nil {
		return domain.EffectiveConfig{}, err
	}
	defaults, err := s.Store.GetShopDefaults(shop)
	if err != nil {
		return domain.EffectiveConfig{}, err
	}
	ov, err := s.Store.GetProductOverride(shop, productID)
	if err != nil {
		return domain.EffectiveConfig{}, err
	}
	return Resolve(defaults, ov)
}

func (s *SettingsService) SaveOutOfStock(shop, productID string, b domain.OutOfStockBlock) (*domain.ProductOverride, error) {
	shop, productID, err := checkShopProduct(shop, productID)
	if err != nil {
		return nil, err
	}
	if _, ok := validate.Color(b.ButtonColor); !ok {
		return nil, apperr.Validation("invalid button color")
	}
	// Malformed recommendation ids are dropped, not rejected.
	b.RecommendIDs = keepValidIDs(b.RecommendIDs)
	return s.Store.UpsertOutOfStock(shop, productID, b)
}

func (s *SettingsService) SavePreorder(shop, productID string, b domain.PreorderBlock) (*domain.ProductOverride, error) {
	shop, productID, err := checkShopProduct(shop, productID)
	if err != nil {
		return nil, err
	}
	if _, ok := validate.Color(b.ButtonColor); !ok {
		return nil, apperr.Validation("invalid button color")
	}
	switch b.PaymentType {
	case "", domain.PaymentFull:
	case domain.PaymentPartialPercent, domain.PaymentPartialFixed:
		if b.PaymentValue == nil || *b.PaymentValue <= 0 {
			return nil, apperr.Validation("payment type %s requires a positive value", b.PaymentType)
		}
	default:
		return nil, apperr.Validation("unknown payment type %q", b.PaymentType)
	}
	switch b.TermsDisplay {
	case "", domain.TermsInline, domain.TermsPopup:
	default:
		return nil, apperr.Validation("unknown terms display %q", b.TermsDisplay)
	}
	return s.Store.UpsertPreorder(shop, productID, b)
}

func (s *SettingsService) SaveWarranty(shop, productID string, b domain.WarrantyBlock) (*domain.ProductOverride, error) {
	shop, productID, err := checkShopProduct(shop, productID)
	if err != nil {
		return nil, err
	}
	switch b.PriceType {
	case "", domain.PriceGlobalPercent:
	case domain.PriceProductPercent, domain.PriceProductFixed:
		if b.PriceValue == nil || *b.PriceValue < 0 {
			return nil, apperr.Validation("price type %s requires a value", b.PriceType)
		}
	default:
		return nil, apperr.Validation("unknown price type %q", b.PriceType)
	}
	if b.VariantID != "" {
		if _, ok := validate.VariantID(b.VariantID); !ok {
			return nil, apperr.Validation("invalid warranty variant id")
		}
	}
	return s.Store.UpsertWarranty(shop, productID, b)
}

func (s *SettingsService) ListConfigured(shop string) ([]string, error) {
	shop, err := checkShop(shop)
	if err != nil {
		return nil, err
	}
	return s.Store.ListConfiguredProducts(shop, true)
}

func checkShop(shop string) (string, error) {
	shop, ok := validate.Shop(shop)
	if !ok {
		return "", apperr.Validation("invalid shop domain")
	}
	return shop, nil
}

func checkShopProduct(shop, productID string) (string, string, error) {
	shop, err := checkShop(shop)
	if err != nil {
		return "", "", err
	}
	productID, ok := validate.ProductID(productID)
	if !ok {
		return "", "", apperr.Validation("invalid productId")
	}
	return shop, productID, nil
}

func keepValidIDs(ids []string) []string {
	var out []string
	for _, id := range ids {
		if v, ok := validate.ProductID(id); ok {
			out = append(out, v)
		}
	}
	return out
}
