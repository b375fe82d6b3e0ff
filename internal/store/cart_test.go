package store

import (
	"errors"
	"sync"
	"testing"

	"storefront/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logger.Logger {
	return logger.New("error")
}

var testPricing = Pricing{ShippingFee: 5.99, FreeShippingOver: 50}

// memBlobs is an in-memory Blobs for tests, with switchable failure modes.
type memBlobs struct {
	mu      sync.Mutex
	data    map[string][]byte
	failGet bool
	failPut bool
}

func newMemBlobs() *memBlobs {
	return &memBlobs{data: make(map[string][]byte)}
}

func (b *memBlobs) GetState(sessionID, key string) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.failGet {
		return nil, errors.New("storage read failed")
	}
	return b.data[sessionID+"/"+key], nil
}

func (b *memBlobs) PutState(sessionID, key string, value []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.failPut {
		return errors.New("storage write failed")
	}
	b.data[sessionID+"/"+key] = value
	return nil
}

func TestCartAddItem(t *testing.T) {
	t.Run("MergesQuantitiesForSameID", func(t *testing.T) {
		cart := NewCart("s1", newMemBlobs(), testPricing, testLogger())

		cart.AddItem(CartItem{ID: "v1", Title: "Serum", Price: 10, Quantity: 1})
		cart.AddItem(CartItem{ID: "v1", Title: "Serum", Price: 10, Quantity: 2})
		cart.AddItem(CartItem{ID: "v2", Title: "Mask", Price: 22, Quantity: 1})

		items := cart.Items()
		require.Len(t, items, 2)
		assert.Equal(t, 3, items[0].Quantity)

		totals := cart.Totals()
		assert.Equal(t, 4, totals.ItemCount)
		assert.InDelta(t, 52, totals.Subtotal, 0.001)
	})

	t.Run("OpensTheDrawer", func(t *testing.T) {
		cart := NewCart("s1", newMemBlobs(), testPricing, testLogger())
		require.False(t, cart.IsOpen())

		cart.AddItem(CartItem{ID: "v1", Price: 10, Quantity: 1})
		assert.True(t, cart.IsOpen())
	})

	t.Run("QuantityFloorsAtOne", func(t *testing.T) {
		cart := NewCart("s1", newMemBlobs(), testPricing, testLogger())
		cart.AddItem(CartItem{ID: "v1", Price: 10})

		require.Len(t, cart.Items(), 1)
		assert.Equal(t, 1, cart.Items()[0].Quantity)
	})
}

func TestCartRemoveAndUpdate(t *testing.T) {
	t.Run("UpdateQuantityZeroEqualsRemove", func(t *testing.T) {
		removed := NewCart("s1", newMemBlobs(), testPricing, testLogger())
		updated := NewCart("s2", newMemBlobs(), testPricing, testLogger())

		for _, cart := range []*Cart{removed, updated} {
			cart.AddItem(CartItem{ID: "v1", Price: 10, Quantity: 2})
			cart.AddItem(CartItem{ID: "v2", Price: 20, Quantity: 1})
		}

		removed.RemoveItem("v1")
		updated.UpdateQuantity("v1", 0)

		assert.Equal(t, removed.Items(), updated.Items())
	})

	t.Run("RemoveAbsentIDIsNoop", func(t *testing.T) {
		cart := NewCart("s1", newMemBlobs(), testPricing, testLogger())
		cart.AddItem(CartItem{ID: "v1", Price: 10, Quantity: 1})

		cart.RemoveItem("missing")
		assert.Len(t, cart.Items(), 1)
	})

	t.Run("UpdateQuantityReplaces", func(t *testing.T) {
		cart := NewCart("s1", newMemBlobs(), testPricing, testLogger())
		cart.AddItem(CartItem{ID: "v1", Price: 10, Quantity: 2})

		cart.UpdateQuantity("v1", 5)
		assert.Equal(t, 5, cart.Items()[0].Quantity)
	})

	t.Run("Clear", func(t *testing.T) {
		cart := NewCart("s1", newMemBlobs(), testPricing, testLogger())
		cart.AddItem(CartItem{ID: "v1", Price: 10, Quantity: 2})

		cart.Clear()
		assert.Empty(t, cart.Items())
		assert.Zero(t, cart.Totals().Total)
	})
}

func TestCartPersistence(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		blobs := newMemBlobs()
		cart := NewCart("s1", blobs, testPricing, testLogger())
		cart.AddItem(CartItem{ID: "v1", Title: "Serum", Price: 10, Quantity: 2})
		cart.AddItem(CartItem{ID: "v2", Title: "Mask", Price: 22, Quantity: 1})

		reloaded := NewCart("s1", blobs, testPricing, testLogger())
		assert.Equal(t, cart.Items(), reloaded.Items())
	})

	t.Run("VisibilityIsNeverPersisted", func(t *testing.T) {
		blobs := newMemBlobs()
		cart := NewCart("s1", blobs, testPricing, testLogger())
		cart.AddItem(CartItem{ID: "v1", Price: 10, Quantity: 1})
		require.True(t, cart.IsOpen())

		reloaded := NewCart("s1", blobs, testPricing, testLogger())
		assert.False(t, reloaded.IsOpen())
	})

	t.Run("CorruptBlobResetsToEmpty", func(t *testing.T) {
		blobs := newMemBlobs()
		blobs.data["s1/cart"] = []byte("{not json")

		cart := NewCart("s1", blobs, testPricing, testLogger())
		assert.Empty(t, cart.Items())
	})

	t.Run("TypeMismatchBlobResetsToEmpty", func(t *testing.T) {
		// Valid JSON with a wrong field type must not leak a half-decoded
		// line with a zero quantity.
		blobs := newMemBlobs()
		blobs.data["s1/cart"] = []byte(`[{"id":"v1","title":"Serum","price":10,"quantity":"three"}]`)

		cart := NewCart("s1", blobs, testPricing, testLogger())
		assert.Empty(t, cart.Items())
	})

	t.Run("StorageReadFailureIsSwallowed", func(t *testing.T) {
		blobs := newMemBlobs()
		blobs.failGet = true

		cart := NewCart("s1", blobs, testPricing, testLogger())
		assert.Empty(t, cart.Items())
	})

	t.Run("SessionsAreIsolated", func(t *testing.T) {
		blobs := newMemBlobs()
		first := NewCart("s1", blobs, testPricing, testLogger())
		first.AddItem(CartItem{ID: "v1", Price: 10, Quantity: 1})

		second := NewCart("s2", blobs, testPricing, testLogger())
		assert.Empty(t, second.Items())
	})
}

func TestCartTotals(t *testing.T) {
	t.Run("ShippingChargedBelowThreshold", func(t *testing.T) {
		cart := NewCart("s1", newMemBlobs(), testPricing, testLogger())
		cart.AddItem(CartItem{ID: "v1", Price: 45, Quantity: 1})

		totals := cart.Totals()
		assert.InDelta(t, 45, totals.Subtotal, 0.001)
		assert.InDelta(t, 5.99, totals.Shipping, 0.001)
		assert.InDelta(t, 50.99, totals.Total, 0.001)
	})

	t.Run("ShippingWaivedAboveThreshold", func(t *testing.T) {
		cart := NewCart("s1", newMemBlobs(), testPricing, testLogger())
		cart.AddItem(CartItem{ID: "v1", Price: 55, Quantity: 1})

		totals := cart.Totals()
		assert.Zero(t, totals.Shipping)
		assert.InDelta(t, 55, totals.Total, 0.001)
	})

	t.Run("EmptyCartShipsNothing", func(t *testing.T) {
		cart := NewCart("s1", newMemBlobs(), testPricing, testLogger())
		assert.Zero(t, cart.Totals().Shipping)
	})

	t.Run("RecomputedAfterEveryMutation", func(t *testing.T) {
		cart := NewCart("s1", newMemBlobs(), testPricing, testLogger())
		cart.AddItem(CartItem{ID: "v1", Price: 10, Quantity: 1})
		require.Equal(t, 1, cart.Totals().ItemCount)

		cart.UpdateQuantity("v1", 4)
		assert.Equal(t, 4, cart.Totals().ItemCount)
		assert.InDelta(t, 40, cart.Totals().Subtotal, 0.001)
	})
}

func TestCartSaveForLater(t *testing.T) {
	t.Run("ExtractsLine", func(t *testing.T) {
		cart := NewCart("s1", newMemBlobs(), testPricing, testLogger())
		cart.AddItem(CartItem{ID: "v1", Price: 10, Quantity: 2})
		cart.AddItem(CartItem{ID: "v2", Price: 20, Quantity: 1})

		cart.SaveForLater("v1")

		require.Len(t, cart.Items(), 1)
		require.Len(t, cart.SavedItems(), 1)
		assert.Equal(t, "v1", cart.SavedItems()[0].ID)
		assert.Equal(t, 2, cart.SavedItems()[0].Quantity)
	})

	t.Run("MoveToCartMergesBack", func(t *testing.T) {
		cart := NewCart("s1", newMemBlobs(), testPricing, testLogger())
		cart.AddItem(CartItem{ID: "v1", Price: 10, Quantity: 2})
		cart.SaveForLater("v1")
		cart.AddItem(CartItem{ID: "v1", Price: 10, Quantity: 1})
		cart.Close()

		cart.MoveToCart("v1")

		require.Len(t, cart.Items(), 1)
		assert.Equal(t, 3, cart.Items()[0].Quantity)
		assert.Empty(t, cart.SavedItems())
		assert.True(t, cart.IsOpen(), "moving back to the cart opens the drawer")
	})

	t.Run("SavedSurvivesReload", func(t *testing.T) {
		blobs := newMemBlobs()
		cart := NewCart("s1", blobs, testPricing, testLogger())
		cart.AddItem(CartItem{ID: "v1", Price: 10, Quantity: 1})
		cart.SaveForLater("v1")

		reloaded := NewCart("s1", blobs, testPricing, testLogger())
		require.Len(t, reloaded.SavedItems(), 1)
		assert.Empty(t, reloaded.Items())
	})

	t.Run("SaveAbsentIDIsNoop", func(t *testing.T) {
		cart := NewCart("s1", newMemBlobs(), testPricing, testLogger())
		cart.SaveForLater("missing")
		assert.Empty(t, cart.SavedItems())
	})
}

func TestCartSubscribers(t *testing.T) {
	cart := NewCart("s1", newMemBlobs(), testPricing, testLogger())

	var notifications int
	cart.Subscribe(func() { notifications++ })

	cart.AddItem(CartItem{ID: "v1", Price: 10, Quantity: 1})
	cart.UpdateQuantity("v1", 2)
	cart.Close()

	assert.Equal(t, 3, notifications)
}
