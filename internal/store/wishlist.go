package store

import (
	"sync"
	"time"

	"storefront/internal/logger"
)

type WishlistItem struct {
	ID      string  `json:"id"`
	Title   string  `json:"title"`
	Handle  string  `json:"handle"`
	Image   string  `json:"image"`
	Price   float64 `json:"price"`
	AddedAt int64   `json:"addedAt"` // milliseconds since epoch, for display ordering
}

const maxWishlistItems = 50

// Wishlist is a capped, most-recent-first collection deduplicated by id:
// re-adding an item moves it to the front instead of duplicating it.
type Wishlist struct {
	mu      sync.Mutex
	session string
	blobs   Blobs
	logger  *logger.Logger

	items []WishlistItem
	subs  []func()
}

func NewWishlist(session string, blobs Blobs, logger *logger.Logger) *Wishlist {
	w := &Wishlist{
		session: session,
		blobs:   blobs,
		logger:  logger,
	}
	load(blobs, logger, session, wishlistKey, &w.items)
	return w
}

func (w *Wishlist) Subscribe(fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.subs = append(w.subs, fn)
}

func (w *Wishlist) notify() {
	w.mu.Lock()
	subs := append([]func(){}, w.subs...)
	w.mu.Unlock()
	for _, fn := range subs {
		fn()
	}
}

func (w *Wishlist) Add(item WishlistItem) {
	item.AddedAt = time.Now().UnixMilli()

	w.mu.Lock()
	kept := make([]WishlistItem, 0, len(w.items)+1)
	kept = append(kept, item)
	for _, existing := range w.items {
		if existing.ID != item.ID {
			kept = append(kept, existing)
		}
	}
	if len(kept) > maxWishlistItems {
		kept = kept[:maxWishlistItems]
	}
	w.items = kept
	persist(w.blobs, w.logger, w.session, wishlistKey, w.items)
	w.mu.Unlock()

	w.notify()
}

func (w *Wishlist) Remove(id string) {
	w.mu.Lock()
	kept := w.items[:0]
	for _, item := range w.items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	w.items = kept
	persist(w.blobs, w.logger, w.session, wishlistKey, w.items)
	w.mu.Unlock()

	w.notify()
}

func (w *Wishlist) Clear() {
	w.mu.Lock()
	w.items = []WishlistItem{}
	persist(w.blobs, w.logger, w.session, wishlistKey, w.items)
	w.mu.Unlock()

	w.notify()
}

func (w *Wishlist) Contains(id string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, item := range w.items {
		if item.ID == id {
			return true
		}
	}
	return false
}

func (w *Wishlist) Items() []WishlistItem {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]WishlistItem(nil), w.items...)
}
