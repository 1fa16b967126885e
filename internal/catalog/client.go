package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"restockly/internal/apperr"
)

const searchQuery = `query($q: String!, $first: Int!) {
  products(first: $first, query: $q) {
    edges { node { id title featuredImage { url } } }
  }
}`

const nodesQuery = `query($ids: [ID!]!) {
  nodes(ids: $ids) {
    ... on Product { id title featuredImage { url } }
  }
}`

// GraphQLClient implements Client against the platform Admin GraphQL API.
// Every call is bounded by Timeout; expiry surfaces as a transient upstream
// error so the admin UI can retry.
type GraphQLClient struct {
	HTTP       *http.Client
	Tokens     TokenSource
	APIVersion string
	Timeout    time.Duration
	BaseURL    string // override for tests; default https://{shop}

	cache *ttlCache
}

func NewGraphQLClient(tokens TokenSource, apiVersion string, timeout, cacheTTL time.Duration) *GraphQLClient {
	return &GraphQLClient{
		HTTP:       &http.Client{},
		Tokens:     tokens,
		APIVersion: apiVersion,
		Timeout:    timeout,
		cache:      newTTLCache(cacheTTL),
	}
}

type gqlNode struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	FeaturedImage *struct {
		URL string `json:"url"`
	} `json:"featuredImage"`
}

type gqlResponse struct {
	Data struct {
		Products struct {
			Edges []struct {
				Node gqlNode `json:"node"`
			} `json:"edges"`
		} `json:"products"`
		Nodes []*gqlNode `json:"nodes"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func (c *GraphQLClient) SearchProducts(ctx context.Context, shop, query string, limit int) ([]Product, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	resp, err := c.post(ctx, shop, searchQuery, map[string]any{"q": query, "first": limit})
	if err != nil {
		return nil, err
	}
	out := make([]Product, 0, len(resp.Data.Products.Edges))
	for _, e := range resp.Data.Products.Edges {
		out = append(out, toProduct(e.Node))
	}
	return out, nil
}

// ProductsByIDs resolves a batch of ids. Nulls in the response (deleted or
// foreign ids) are filtered out; one bad id never fails the batch.
func (c *GraphQLClient) ProductsByIDs(ctx context.Context, shop string, ids []string) ([]Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	key := cacheKey(shop, ids)
	if hit, ok := c.cache.get(key); ok {
		return hit, nil
	}
	resp, err := c.post(ctx, shop, nodesQuery, map[string]any{"ids": ids})
	if err != nil {
		return nil, err
	}
	out := make([]Product, 0, len(ids))
	for _, n := range resp.Data.Nodes {
		if n == nil || n.ID == "" {
			continue
		}
		out = append(out, toProduct(*n))
	}
	c.cache.put(key, out)
	return out, nil
}

func (c *GraphQLClient) post(ctx context.Context, shop, query string, vars map[string]any) (*gqlResponse, error) {
	token, err := c.Tokens.Token(shop)
	if err != nil {
		return nil, err
	}
	body, _ := json.Marshal(map[string]any{"query": query, "variables": vars})

	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	base := c.BaseURL
	if base == "" {
		base = "https://" + shop
	}
	url := fmt.Sprintf("%s/admin/api/%s/graphql.json", base, c.APIVersion)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, apperr.Upstream(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", token)

	res, err := c.HTTP.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, apperr.Upstream(fmt.Errorf("catalog call timed out after %s", c.Timeout))
		}
		return nil, apperr.Upstream(err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return nil, apperr.Upstream(fmt.Errorf("catalog returned %d: %s", res.StatusCode, strings.TrimSpace(string(b))))
	}
	var out gqlResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, apperr.Upstream(err)
	}
	if len(out.Errors) > 0 {
		return nil, apperr.Upstream(fmt.Errorf("catalog: %s", out.Errors[0].Message))
	}
	return &out, nil
}

func toProduct(n gqlNode) Product {
	p := Product{ID: n.ID, Title: n.Title}
	if n.FeaturedImage != nil {
		p.ThumbnailURL = n.FeaturedImage.URL
	}
	return p
}

func cacheKey(shop string, ids []string) string {
	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)
	return shop + "|" + strings.Join(sorted, ",")
}
