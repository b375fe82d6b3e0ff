package catalog

import (
	"math"
	"sort"
	"strings"

	"storefront/internal/services/shopify"
)

type SortKey string

const (
	SortNewest    SortKey = "newest"
	SortOldest    SortKey = "oldest"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
	SortNameAsc   SortKey = "name-asc"
	SortNameDesc  SortKey = "name-desc"
)

// FilterState is owned by the presentation layer and passed by value.
// Changing it never triggers a fetch; it only changes what is derived from
// the already-buffered products.
type FilterState struct {
	Search   string
	Category string
	Vendor   string
	MinPrice float64
	MaxPrice float64 // 0 means no upper bound
	Sort     SortKey
}

func (f FilterState) matches(p shopify.ProductSummary) bool {
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(p.Title), needle) &&
			!strings.Contains(strings.ToLower(p.Description), needle) {
			return false
		}
	}
	if f.Vendor != "" && !strings.EqualFold(p.Vendor, f.Vendor) {
		return false
	}
	if f.Category != "" && !strings.EqualFold(p.Category, f.Category) {
		return false
	}
	if p.Price < f.MinPrice {
		return false
	}
	if f.MaxPrice > 0 && p.Price > f.MaxPrice {
		return false
	}
	return true
}

// DeriveView filters and sorts the buffer into a fresh slice. Pure: the input
// is never mutated, and the sort is stable so ties keep buffer order.
func DeriveView(buffer []shopify.ProductSummary, filters FilterState) []shopify.ProductSummary {
	view := make([]shopify.ProductSummary, 0, len(buffer))
	for _, p := range buffer {
		if filters.matches(p) {
			view = append(view, p)
		}
	}

	switch filters.Sort {
	case SortOldest:
		// The buffer arrives newest first, so oldest is a reversal.
		for i, j := 0, len(view)-1; i < j; i, j = i+1, j-1 {
			view[i], view[j] = view[j], view[i]
		}
	case SortPriceAsc:
		sort.SliceStable(view, func(i, j int) bool {
			return view[i].Price < view[j].Price
		})
	case SortPriceDesc:
		sort.SliceStable(view, func(i, j int) bool {
			return view[i].Price > view[j].Price
		})
	case SortNameAsc:
		sort.SliceStable(view, func(i, j int) bool {
			return strings.ToLower(view[i].Title) < strings.ToLower(view[j].Title)
		})
	case SortNameDesc:
		sort.SliceStable(view, func(i, j int) bool {
			return strings.ToLower(view[i].Title) > strings.ToLower(view[j].Title)
		})
	}
	return view
}

// Facets are the distinct filterable values present in the buffer, used to
// build filter controls.
type Facets struct {
	Vendors    []string `json:"vendors"`
	Categories []string `json:"categories"`
	MaxPrice   float64  `json:"max_price"`
}

func DeriveFacets(buffer []shopify.ProductSummary) Facets {
	vendorSet := make(map[string]struct{})
	categorySet := make(map[string]struct{})
	var maxPrice float64

	for _, p := range buffer {
		if p.Vendor != "" {
			vendorSet[p.Vendor] = struct{}{}
		}
		if p.Category != "" {
			categorySet[p.Category] = struct{}{}
		}
		if p.Price > maxPrice {
			maxPrice = p.Price
		}
	}

	facets := Facets{
		Vendors:    make([]string, 0, len(vendorSet)),
		Categories: make([]string, 0, len(categorySet)),
		MaxPrice:   math.Ceil(maxPrice),
	}
	for vendor := range vendorSet {
		facets.Vendors = append(facets.Vendors, vendor)
	}
	for category := range categorySet {
		facets.Categories = append(facets.Categories, category)
	}
	sort.Strings(facets.Vendors)
	sort.Strings(facets.Categories)
	return facets
}
