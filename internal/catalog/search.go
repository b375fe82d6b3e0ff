package catalog

import (
	"context"
	"regexp"
	"strings"

	"storefront/internal/logger"
	"storefront/internal/services/shopify"
)

const (
	searchFetchSize  = 50
	maxSearchResults = 10
	maxSnippetLength = 100
)

type SearchResult struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Handle      string  `json:"handle"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
}

// Searcher answers free-text queries with a bounded ranked list, matching by
// substring over title, description and vendor.
type Searcher struct {
	source Source
	logger *logger.Logger
}

func NewSearcher(source Source, logger *logger.Logger) *Searcher {
	return &Searcher{
		source: source,
		logger: logger,
	}
}

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// Search returns up to 10 matches. An empty or whitespace query returns an
// empty list without touching the source.
func (s *Searcher) Search(ctx context.Context, query string) ([]SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []SearchResult{}, nil
	}

	page, err := s.source.QueryProducts(ctx, shopify.PageQuery{PageSize: searchFetchSize})
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)
	results := make([]SearchResult, 0, maxSearchResults)
	for _, p := range page.Items {
		if !strings.Contains(strings.ToLower(p.Title), needle) &&
			!strings.Contains(strings.ToLower(p.Description), needle) &&
			!strings.Contains(strings.ToLower(p.Vendor), needle) {
			continue
		}
		results = append(results, SearchResult{
			ID:          p.ID,
			Title:       p.Title,
			Handle:      p.Handle,
			Price:       p.Price,
			Image:       p.ImageURL,
			Description: snippet(p.Description),
		})
		if len(results) == maxSearchResults {
			break
		}
	}
	return results, nil
}

// snippet strips markup and truncates for the search dropdown.
func snippet(description string) string {
	plain := htmlTagPattern.ReplaceAllString(description, "")
	runes := []rune(plain)
	if len(runes) <= maxSnippetLength {
		return plain
	}
	return string(runes[:maxSnippetLength]) + "..."
}
