package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"storefront/internal/logger"
)

const apiVersion = "2024-07"

var (
	// ErrCatalogUnavailable marks the source as unreachable or unconfigured.
	// Callers degrade to an empty state instead of failing.
	ErrCatalogUnavailable = errors.New("catalog unavailable")

	// ErrNotFound is returned for a lookup of a nonexistent handle.
	ErrNotFound = errors.New("product not found")
)

type Client struct {
	endpoint    string
	accessToken string
	httpClient  *http.Client
	logger      *logger.Logger
}

func NewClient(shopDomain, accessToken string, logger *logger.Logger) *Client {
	c := &Client{
		accessToken: accessToken,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
	if shopDomain != "" && accessToken != "" {
		c.endpoint = fmt.Sprintf("https://%s.myshopify.com/api/%s/graphql.json", shopDomain, apiVersion)
	}
	return c
}

func (c *Client) Configured() bool {
	return c.endpoint != ""
}

type graphqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func (c *Client) query(ctx context.Context, query string, variables map[string]interface{}, out interface{}) error {
	if !c.Configured() {
		return fmt.Errorf("storefront client not configured: %w", ErrCatalogUnavailable)
	}

	payload, err := json.Marshal(graphqlRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("failed to marshal query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.endpoint, bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Shopify-Storefront-Access-Token", c.accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w: %v", ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API request failed: %w: %d - %s", ErrCatalogUnavailable, resp.StatusCode, string(body))
	}

	var envelope graphqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if len(envelope.Errors) > 0 {
		return fmt.Errorf("query rejected: %w: %s", ErrCatalogUnavailable, envelope.Errors[0].Message)
	}

	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("failed to decode data: %w", err)
	}
	return nil
}

const summaryFields = `
	id
	title
	handle
	description
	vendor
	productType
	tags
	availableForSale
	images(first: 1) { edges { node { url } } }
	priceRange { minVariantPrice { amount currencyCode } }`

const productsQuery = `
query products($first: Int!, $after: String, $query: String) {
	products(first: $first, after: $after, query: $query, sortKey: CREATED_AT, reverse: true) {
		pageInfo { hasNextPage endCursor }
		edges { node {` + summaryFields + `
		} }
	}
}`

// PageQuery describes one paged catalog fetch.
type PageQuery struct {
	PageSize int
	After    string
	Filter   string
}

// QueryProducts fetches one page of products, newest first.
func (c *Client) QueryProducts(ctx context.Context, q PageQuery) (*CatalogPage, error) {
	variables := map[string]interface{}{
		"first": q.PageSize,
	}
	if q.After != "" {
		variables["after"] = q.After
	}
	if q.Filter != "" {
		variables["query"] = q.Filter
	}

	var result struct {
		Products productsConnection `json:"products"`
	}
	if err := c.query(ctx, productsQuery, variables, &result); err != nil {
		return nil, err
	}
	return toCatalogPage(result.Products), nil
}

// LatestProducts returns the newest products for marketing surfaces.
func (c *Client) LatestProducts(ctx context.Context, limit int) ([]ProductSummary, error) {
	page, err := c.QueryProducts(ctx, PageQuery{PageSize: limit})
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

// ProductsByVendor returns up to limit products from a single vendor.
func (c *Client) ProductsByVendor(ctx context.Context, vendor string, limit int) ([]ProductSummary, error) {
	page, err := c.QueryProducts(ctx, PageQuery{
		PageSize: limit,
		Filter:   "vendor:" + vendor,
	})
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

const productByHandleQuery = `
query productByHandle($handle: String!) {
	product(handle: $handle) {
		id
		title
		handle
		description
		descriptionHtml
		vendor
		productType
		tags
		availableForSale
		images(first: 10) { edges { node { id url altText width height } } }
		variants(first: 10) {
			edges {
				node {
					id
					title
					sku
					availableForSale
					quantityAvailable
					price { amount currencyCode }
					compareAtPrice { amount currencyCode }
					selectedOptions { name value }
					image { id url altText }
				}
			}
		}
		options { id name values }
		priceRange {
			minVariantPrice { amount currencyCode }
			maxVariantPrice { amount currencyCode }
		}
		metafields(identifiers: [
			{namespace: "custom", key: "ingredients"},
			{namespace: "custom", key: "how_to_use"},
			{namespace: "custom", key: "benefits"},
			{namespace: "custom", key: "skin_type"}
		]) {
			namespace
			key
			value
			type
		}
	}
}`

// ProductByHandle fetches the full product record, or ErrNotFound when the
// handle does not exist.
func (c *Client) ProductByHandle(ctx context.Context, handle string) (*ProductDetail, error) {
	var result struct {
		Product *productDetailNode `json:"product"`
	}
	err := c.query(ctx, productByHandleQuery, map[string]interface{}{"handle": handle}, &result)
	if err != nil {
		return nil, err
	}
	if result.Product == nil {
		return nil, fmt.Errorf("handle %q: %w", handle, ErrNotFound)
	}
	return toProductDetail(result.Product), nil
}

// RelatedQuery asks for products similar to one being viewed. The source
// matches on tags or vendor and does not honor exclusion, so results are
// post-filtered here.
type RelatedQuery struct {
	ExcludeID string
	Tags      []string
	Vendor    string
	Limit     int
}

func (c *Client) RelatedProducts(ctx context.Context, q RelatedQuery) ([]ProductSummary, error) {
	clauses := make([]string, 0, 4)
	for _, tag := range q.Tags {
		if len(clauses) == 3 {
			break
		}
		clauses = append(clauses, "tag:"+tag)
	}
	if q.Vendor != "" {
		clauses = append(clauses, "vendor:"+q.Vendor)
	}
	if len(clauses) == 0 {
		return nil, nil
	}

	// Over-fetch by one so the excluded product does not eat a slot.
	page, err := c.QueryProducts(ctx, PageQuery{
		PageSize: q.Limit + 1,
		Filter:   strings.Join(clauses, " OR "),
	})
	if err != nil {
		return nil, err
	}

	related := make([]ProductSummary, 0, q.Limit)
	for _, item := range page.Items {
		if item.ID == q.ExcludeID {
			continue
		}
		related = append(related, item)
		if len(related) == q.Limit {
			break
		}
	}
	return related, nil
}
