package store

import (
	"sync"

	"storefront/internal/logger"
)

type RecentlyViewedItem struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Handle string  `json:"handle"`
	Image  string  `json:"image"`
	Price  float64 `json:"price"`
}

const maxRecentlyViewed = 8

// RecentlyViewed keeps the last few products a session looked at,
// most-recent-first, deduplicated by id.
type RecentlyViewed struct {
	mu      sync.Mutex
	session string
	blobs   Blobs
	logger  *logger.Logger

	items []RecentlyViewedItem
}

func NewRecentlyViewed(session string, blobs Blobs, logger *logger.Logger) *RecentlyViewed {
	r := &RecentlyViewed{
		session: session,
		blobs:   blobs,
		logger:  logger,
	}
	load(blobs, logger, session, recentlyViewedKey, &r.items)
	return r
}

func (r *RecentlyViewed) Record(item RecentlyViewedItem) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := make([]RecentlyViewedItem, 0, len(r.items)+1)
	kept = append(kept, item)
	for _, existing := range r.items {
		if existing.ID != item.ID {
			kept = append(kept, existing)
		}
	}
	if len(kept) > maxRecentlyViewed {
		kept = kept[:maxRecentlyViewed]
	}
	r.items = kept
	persist(r.blobs, r.logger, r.session, recentlyViewedKey, r.items)
}

func (r *RecentlyViewed) Items() []RecentlyViewedItem {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]RecentlyViewedItem(nil), r.items...)
}
