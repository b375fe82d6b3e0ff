package store

import (
	"sync"

	"storefront/internal/logger"
)

// Manager hands out per-session store instances. Each session gets exactly
// one instance of each store, so every surface reading it observes the same
// state.
type Manager struct {
	mu      sync.Mutex
	blobs   Blobs
	logger  *logger.Logger
	pricing Pricing

	carts     map[string]*Cart
	wishlists map[string]*Wishlist
	recents   map[string]*RecentlyViewed
}

func NewManager(blobs Blobs, pricing Pricing, logger *logger.Logger) *Manager {
	return &Manager{
		blobs:     blobs,
		logger:    logger,
		pricing:   pricing,
		carts:     make(map[string]*Cart),
		wishlists: make(map[string]*Wishlist),
		recents:   make(map[string]*RecentlyViewed),
	}
}

func (m *Manager) Cart(session string) *Cart {
	m.mu.Lock()
	defer m.mu.Unlock()
	cart, ok := m.carts[session]
	if !ok {
		cart = NewCart(session, m.blobs, m.pricing, m.logger)
		m.carts[session] = cart
	}
	return cart
}

func (m *Manager) Wishlist(session string) *Wishlist {
	m.mu.Lock()
	defer m.mu.Unlock()
	wishlist, ok := m.wishlists[session]
	if !ok {
		wishlist = NewWishlist(session, m.blobs, m.logger)
		m.wishlists[session] = wishlist
	}
	return wishlist
}

func (m *Manager) RecentlyViewed(session string) *RecentlyViewed {
	m.mu.Lock()
	defer m.mu.Unlock()
	recent, ok := m.recents[session]
	if !ok {
		recent = NewRecentlyViewed(session, m.blobs, m.logger)
		m.recents[session] = recent
	}
	return recent
}
