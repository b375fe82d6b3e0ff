package catalog

import (
	"context"
	"sync"

	"storefront/internal/logger"
	"storefront/internal/services/shopify"
)

// Source is the external system of record for product data.
type Source interface {
	QueryProducts(ctx context.Context, q shopify.PageQuery) (*shopify.CatalogPage, error)
}

const (
	DefaultPageSize    = 24
	DefaultRevealCount = 12
	RevealStep         = 6
)

// Loader accumulates catalog pages into an append-only buffer and exposes a
// filtered, sorted, incrementally-revealed window over it. Filtering never
// discards fetched data; loosening a filter shows more of the buffer without
// another round-trip.
type Loader struct {
	mu       sync.Mutex
	source   Source
	logger   *logger.Logger
	pageSize int

	buffer   []shopify.ProductSummary
	cursor   string
	hasMore  bool
	reveal   int
	fetching bool
	lastErr  error
	filters  FilterState

	// seq invalidates in-flight fetches when the buffer is replaced, so a
	// late result cannot corrupt a buffer it no longer belongs to.
	seq uint64
}

func NewLoader(source Source, pageSize int, logger *logger.Logger) *Loader {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Loader{
		source:   source,
		pageSize: pageSize,
		logger:   logger,
		reveal:   DefaultRevealCount,
	}
}

// LoadInitialPage fetches the first page, replacing the buffer. On failure
// the buffer is left empty and the error recorded; callers render an empty
// state and may retry.
func (l *Loader) LoadInitialPage(ctx context.Context) error {
	l.mu.Lock()
	l.seq++
	seq := l.seq
	l.fetching = true
	l.mu.Unlock()

	page, err := l.source.QueryProducts(ctx, shopify.PageQuery{PageSize: l.pageSize})

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.seq != seq {
		// Superseded by a newer reload; discard.
		return nil
	}
	l.fetching = false
	l.reveal = DefaultRevealCount
	if err != nil {
		l.buffer = nil
		l.cursor = ""
		l.hasMore = false
		l.lastErr = err
		l.logger.Error("Initial catalog load failed: %v", err)
		return err
	}
	l.buffer = append([]shopify.ProductSummary(nil), page.Items...)
	l.cursor = page.PageInfo.EndCursor
	l.hasMore = page.PageInfo.HasNextPage
	l.lastErr = nil
	return nil
}

// LoadNextPage appends the next page to the buffer. No-op when the cursor is
// exhausted or a fetch is already in flight, which both serializes page
// fetches and keeps results in request order. Failure leaves the buffer
// unchanged.
func (l *Loader) LoadNextPage(ctx context.Context) error {
	l.mu.Lock()
	if !l.hasMore || l.fetching {
		l.mu.Unlock()
		return nil
	}
	l.fetching = true
	seq := l.seq
	cursor := l.cursor
	l.mu.Unlock()

	page, err := l.source.QueryProducts(ctx, shopify.PageQuery{PageSize: l.pageSize, After: cursor})

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.seq != seq {
		// The buffer was replaced while this page was in flight; discard.
		return nil
	}
	l.fetching = false
	if err != nil {
		l.lastErr = err
		l.logger.Error("Failed to load next catalog page: %v", err)
		return err
	}
	l.buffer = append(l.buffer, page.Items...)
	l.cursor = page.PageInfo.EndCursor
	l.hasMore = page.PageInfo.HasNextPage
	l.lastErr = nil
	return nil
}

// Apply records the presentation layer's filter state. A change resets the
// reveal window to its default; it never fetches.
func (l *Loader) Apply(filters FilterState) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if filters != l.filters {
		l.filters = filters
		l.reveal = DefaultRevealCount
	}
}

// RevealMore grows the window by RevealStep, capped at the filtered length.
// When the window already covers everything buffered and the source has more,
// it fetches the next page instead.
func (l *Loader) RevealMore(ctx context.Context) error {
	l.mu.Lock()
	derived := DeriveView(l.buffer, l.filters)
	if l.reveal < len(derived) {
		l.reveal = l.reveal + RevealStep
		if l.reveal > len(derived) {
			l.reveal = len(derived)
		}
		l.mu.Unlock()
		return nil
	}
	hasMore := l.hasMore
	fetching := l.fetching
	l.mu.Unlock()

	if hasMore && !fetching {
		return l.LoadNextPage(ctx)
	}
	return nil
}

// View is the currently revealed slice of the filtered buffer plus the state
// the presentation needs around it.
type View struct {
	Items       []shopify.ProductSummary `json:"items"`
	Total       int                      `json:"total"`
	RevealCount int                      `json:"reveal_count"`
	HasMore     bool                     `json:"has_more"`
	Fetching    bool                     `json:"fetching"`
}

func (l *Loader) Window() View {
	l.mu.Lock()
	defer l.mu.Unlock()
	derived := DeriveView(l.buffer, l.filters)
	visible := l.reveal
	if visible > len(derived) {
		visible = len(derived)
	}
	return View{
		Items:       derived[:visible],
		Total:       len(derived),
		RevealCount: visible,
		HasMore:     l.hasMore,
		Fetching:    l.fetching,
	}
}

// Buffer returns a copy of everything fetched so far.
func (l *Loader) Buffer() []shopify.ProductSummary {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]shopify.ProductSummary(nil), l.buffer...)
}

func (l *Loader) Facets() Facets {
	l.mu.Lock()
	defer l.mu.Unlock()
	return DeriveFacets(l.buffer)
}

func (l *Loader) LastError() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastErr
}
