package services

import (
	"context"

	"restockly/internal/apperr"
	"restockly/internal/catalog"
	"restockly/internal/validate"
)

// ProductsService resolves product identity and display metadata through
// the external catalog.
type ProductsService struct {
	Catalog  catalog.Client
	Settings *SettingsService
}

func NewProductsService(c catalog.Client, settings *SettingsService) *ProductsService {
	return &ProductsService{Catalog: c, Settings: settings}
}

// Search validates the query before any catalog traffic: an empty or
// malformed query never reaches the adapter.
func (s *ProductsService) Search(ctx context.Context, shop, query string, limit int) ([]catalog.Product, error) {
	shop, err := checkShop(shop)
	if err != nil {
		return nil, err
	}
	q, ok := validate.Q(query)
	if !ok {
		return nil, apperr.Validation("enter a search term")
	}
	return s.Catalog.SearchProducts(ctx, shop, q, limit)
}

// Details resolves a raw comma-delimited id list. Ids that don't match the
// catalog identity format are dropped before lookup; unknown ids are
// omitted from the result.
func (s *ProductsService) Details(ctx context.Context, shop, idsCSV string) ([]catalog.Product, error) {
	shop, err := checkShop(shop)
	if err != nil {
		return nil, err
	}
	ids := validate.ProductIDs(idsCSV)
	if len(ids) == 0 {
		return []catalog.Product{}, nil
	}
	return s.Catalog.ProductsByIDs(ctx, shop, ids)
}

// ConfiguredProduct pairs a configured id with whatever catalog metadata
// still resolves for it.
type ConfiguredProduct struct {
	ID           string `json:"id"`
	Title        string `json:"title,omitempty"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
	InCatalog    bool   `json:"inCatalog"`
}

// Configured lists the shop's configured products, newest change first,
// hydrated from the catalog. Products the catalog no longer knows are kept
// in the list but flagged, so the merchant can clean them up.
func (s *ProductsService) Configured(ctx context.Context, shop string) ([]ConfiguredProduct, error) {
	ids, err := s.Settings.ListConfigured(shop)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []ConfiguredProduct{}, nil
	}
	byID := map[string]catalog.Product{}
	if found, err := s.Catalog.ProductsByIDs(ctx, shop, ids); err == nil {
		for _, p := range found {
			byID[p.ID] = p
		}
	}
	// A catalog outage degrades the overview to bare ids instead of failing it.
	out := make([]ConfiguredProduct, 0, len(ids))
	for _, id := range ids {
		cp := ConfiguredProduct{ID: id}
		if p, ok := byID[id]; ok {
			cp.Title = p.Title
			cp.ThumbnailURL = p.ThumbnailURL
			cp.InCatalog = true
		}
		out = append(out, cp)
	}
	return out, nil
}
