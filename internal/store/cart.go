package store

import (
	"sync"

	"storefront/internal/logger"
)

// CartItem is one purchasable line: a variant reference with a price snapshot
// taken at add time.
type CartItem struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
	Quantity int     `json:"quantity"`
}

type Pricing struct {
	ShippingFee      float64
	FreeShippingOver float64
}

// Totals are derived from the current items on every read, never cached.
type Totals struct {
	ItemCount int     `json:"item_count"`
	Subtotal  float64 `json:"subtotal"`
	Shipping  float64 `json:"shipping"`
	Total     float64 `json:"total"`
}

// Cart owns a session's line items and the drawer visibility flag. Items hold
// at most one entry per id; every mutation persists synchronously. The
// visibility flag is deliberately not persisted, so every reload starts
// closed.
type Cart struct {
	mu      sync.Mutex
	session string
	blobs   Blobs
	logger  *logger.Logger
	pricing Pricing

	items []CartItem
	saved []CartItem
	open  bool
	subs  []func()
}

func NewCart(session string, blobs Blobs, pricing Pricing, logger *logger.Logger) *Cart {
	c := &Cart{
		session: session,
		blobs:   blobs,
		logger:  logger,
		pricing: pricing,
	}
	load(blobs, logger, session, cartKey, &c.items)
	load(blobs, logger, session, savedForLaterKey, &c.saved)
	return c
}

// Subscribe registers a callback invoked after every mutation, so surfaces
// observe the store instead of polling it.
func (c *Cart) Subscribe(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subs = append(c.subs, fn)
}

func (c *Cart) notify() {
	c.mu.Lock()
	subs := append([]func(){}, c.subs...)
	c.mu.Unlock()
	for _, fn := range subs {
		fn()
	}
}

// AddItem merges quantities when the id is already present rather than
// duplicating the entry, and opens the drawer.
func (c *Cart) AddItem(item CartItem) {
	if item.Quantity < 1 {
		item.Quantity = 1
	}

	c.mu.Lock()
	merged := false
	for i := range c.items {
		if c.items[i].ID == item.ID {
			c.items[i].Quantity += item.Quantity
			merged = true
			break
		}
	}
	if !merged {
		c.items = append(c.items, item)
	}
	c.open = true
	persist(c.blobs, c.logger, c.session, cartKey, c.items)
	c.mu.Unlock()

	c.notify()
}

// RemoveItem deletes the entry if present; an absent id is a no-op.
func (c *Cart) RemoveItem(id string) {
	c.mu.Lock()
	kept := c.items[:0]
	for _, item := range c.items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	c.items = kept
	persist(c.blobs, c.logger, c.session, cartKey, c.items)
	c.mu.Unlock()

	c.notify()
}

// UpdateQuantity sets an entry's quantity; zero or less removes the entry.
func (c *Cart) UpdateQuantity(id string, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(id)
		return
	}

	c.mu.Lock()
	for i := range c.items {
		if c.items[i].ID == id {
			c.items[i].Quantity = quantity
			break
		}
	}
	persist(c.blobs, c.logger, c.session, cartKey, c.items)
	c.mu.Unlock()

	c.notify()
}

func (c *Cart) Clear() {
	c.mu.Lock()
	c.items = []CartItem{}
	persist(c.blobs, c.logger, c.session, cartKey, c.items)
	c.mu.Unlock()

	c.notify()
}

// SaveForLater moves a cart line into the saved collection, merging
// quantities if it was saved before.
func (c *Cart) SaveForLater(id string) {
	c.mu.Lock()
	var extracted *CartItem
	kept := c.items[:0]
	for _, item := range c.items {
		if item.ID == id {
			item := item
			extracted = &item
			continue
		}
		kept = append(kept, item)
	}
	if extracted == nil {
		c.mu.Unlock()
		return
	}
	c.items = kept

	merged := false
	for i := range c.saved {
		if c.saved[i].ID == id {
			c.saved[i].Quantity += extracted.Quantity
			merged = true
			break
		}
	}
	if !merged {
		c.saved = append(c.saved, *extracted)
	}
	persist(c.blobs, c.logger, c.session, cartKey, c.items)
	persist(c.blobs, c.logger, c.session, savedForLaterKey, c.saved)
	c.mu.Unlock()

	c.notify()
}

// MoveToCart restores a saved line through AddItem, so it merges and opens
// the drawer like any other add.
func (c *Cart) MoveToCart(id string) {
	c.mu.Lock()
	var extracted *CartItem
	kept := c.saved[:0]
	for _, item := range c.saved {
		if item.ID == id {
			item := item
			extracted = &item
			continue
		}
		kept = append(kept, item)
	}
	if extracted == nil {
		c.mu.Unlock()
		return
	}
	c.saved = kept
	persist(c.blobs, c.logger, c.session, savedForLaterKey, c.saved)
	c.mu.Unlock()

	c.AddItem(*extracted)
}

func (c *Cart) RemoveSaved(id string) {
	c.mu.Lock()
	kept := c.saved[:0]
	for _, item := range c.saved {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	c.saved = kept
	persist(c.blobs, c.logger, c.session, savedForLaterKey, c.saved)
	c.mu.Unlock()

	c.notify()
}

func (c *Cart) Open() {
	c.mu.Lock()
	c.open = true
	c.mu.Unlock()
	c.notify()
}

func (c *Cart) Close() {
	c.mu.Lock()
	c.open = false
	c.mu.Unlock()
	c.notify()
}

func (c *Cart) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open
}

func (c *Cart) Items() []CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]CartItem(nil), c.items...)
}

func (c *Cart) SavedItems() []CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]CartItem(nil), c.saved...)
}

// Totals recomputes count, subtotal, shipping and grand total from the
// current items. Shipping is a flat fee, waived above the free-shipping
// threshold; an empty cart ships nothing.
func (c *Cart) Totals() Totals {
	c.mu.Lock()
	defer c.mu.Unlock()

	var totals Totals
	for _, item := range c.items {
		totals.ItemCount += item.Quantity
		totals.Subtotal += item.Price * float64(item.Quantity)
	}
	if totals.ItemCount > 0 && totals.Subtotal <= c.pricing.FreeShippingOver {
		totals.Shipping = c.pricing.ShippingFee
	}
	totals.Total = totals.Subtotal + totals.Shipping
	return totals
}
