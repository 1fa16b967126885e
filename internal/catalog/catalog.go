// Package catalog talks to the storefront platform's product catalog. The
// config core never owns product data; it resolves identity and display
// metadata through this adapter.
package catalog

import "context"

// Product is the slice of catalog metadata the admin UI needs.
type Product struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
}

// Client is the lookup contract. Implementations must tolerate partially
// resolvable id batches: unknown ids are omitted, never an error.
type Client interface {
	SearchProducts(ctx context.Context, shop, query string, limit int) ([]Product, error)
	ProductsByIDs(ctx context.Context, shop string, ids []string) ([]Product, error)
}

// TokenSource supplies the per-shop API token. *repos.ShopRepo satisfies it.
type TokenSource interface {
	Token(shop string) (string, error)
}
