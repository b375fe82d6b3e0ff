package store

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWishlist(t *testing.T) {
	t.Run("AddStampsTimestampAndPrepends", func(t *testing.T) {
		wishlist := NewWishlist("s1", newMemBlobs(), testLogger())

		wishlist.Add(WishlistItem{ID: "1", Title: "Serum"})
		wishlist.Add(WishlistItem{ID: "2", Title: "Mask"})

		items := wishlist.Items()
		require.Len(t, items, 2)
		assert.Equal(t, "2", items[0].ID)
		assert.Positive(t, items[0].AddedAt)
	})

	t.Run("ReAddMovesToFront", func(t *testing.T) {
		wishlist := NewWishlist("s1", newMemBlobs(), testLogger())
		wishlist.Add(WishlistItem{ID: "1"})
		wishlist.Add(WishlistItem{ID: "2"})
		wishlist.Add(WishlistItem{ID: "1"})

		items := wishlist.Items()
		require.Len(t, items, 2)
		assert.Equal(t, "1", items[0].ID)
		assert.Equal(t, "2", items[1].ID)
	})

	t.Run("CappedAtFifty", func(t *testing.T) {
		wishlist := NewWishlist("s1", newMemBlobs(), testLogger())
		for i := 0; i < 55; i++ {
			wishlist.Add(WishlistItem{ID: fmt.Sprintf("p-%d", i)})
		}

		items := wishlist.Items()
		require.Len(t, items, 50)
		assert.Equal(t, "p-54", items[0].ID)
		assert.Equal(t, "p-5", items[49].ID)
	})

	t.Run("Contains", func(t *testing.T) {
		wishlist := NewWishlist("s1", newMemBlobs(), testLogger())
		wishlist.Add(WishlistItem{ID: "1"})

		assert.True(t, wishlist.Contains("1"))
		assert.False(t, wishlist.Contains("2"))
	})

	t.Run("PersistsAcrossReload", func(t *testing.T) {
		blobs := newMemBlobs()
		wishlist := NewWishlist("s1", blobs, testLogger())
		wishlist.Add(WishlistItem{ID: "1", Title: "Serum", Price: 35})

		reloaded := NewWishlist("s1", blobs, testLogger())
		assert.Equal(t, wishlist.Items(), reloaded.Items())
	})

	t.Run("TypeMismatchBlobResetsToEmpty", func(t *testing.T) {
		blobs := newMemBlobs()
		blobs.data["s1/wishlist"] = []byte(`[{"id":"1","addedAt":"yesterday"}]`)

		wishlist := NewWishlist("s1", blobs, testLogger())
		assert.Empty(t, wishlist.Items())
	})

	t.Run("NotifiesSubscribersOnEveryMutation", func(t *testing.T) {
		wishlist := NewWishlist("s1", newMemBlobs(), testLogger())

		var notifications int
		wishlist.Subscribe(func() { notifications++ })

		wishlist.Add(WishlistItem{ID: "1"})
		wishlist.Remove("1")
		wishlist.Clear()

		assert.Equal(t, 3, notifications)
	})

	t.Run("RemoveAndClear", func(t *testing.T) {
		wishlist := NewWishlist("s1", newMemBlobs(), testLogger())
		wishlist.Add(WishlistItem{ID: "1"})
		wishlist.Add(WishlistItem{ID: "2"})

		wishlist.Remove("1")
		require.Len(t, wishlist.Items(), 1)

		wishlist.Clear()
		assert.Empty(t, wishlist.Items())
	})
}

func TestRecentlyViewed(t *testing.T) {
	t.Run("MostRecentFirst", func(t *testing.T) {
		recent := NewRecentlyViewed("s1", newMemBlobs(), testLogger())
		recent.Record(RecentlyViewedItem{ID: "1"})
		recent.Record(RecentlyViewedItem{ID: "2"})

		items := recent.Items()
		require.Len(t, items, 2)
		assert.Equal(t, "2", items[0].ID)
	})

	t.Run("ReviewMovesToFrontWithoutDuplicating", func(t *testing.T) {
		recent := NewRecentlyViewed("s1", newMemBlobs(), testLogger())
		recent.Record(RecentlyViewedItem{ID: "1"})
		recent.Record(RecentlyViewedItem{ID: "2"})
		recent.Record(RecentlyViewedItem{ID: "1"})

		items := recent.Items()
		require.Len(t, items, 2)
		assert.Equal(t, "1", items[0].ID)
	})

	t.Run("CappedAtEight", func(t *testing.T) {
		recent := NewRecentlyViewed("s1", newMemBlobs(), testLogger())
		for i := 0; i < 12; i++ {
			recent.Record(RecentlyViewedItem{ID: fmt.Sprintf("p-%d", i)})
		}

		items := recent.Items()
		require.Len(t, items, 8)
		assert.Equal(t, "p-11", items[0].ID)
		assert.Equal(t, "p-4", items[7].ID)
	})

	t.Run("CorruptBlobResetsToEmpty", func(t *testing.T) {
		blobs := newMemBlobs()
		blobs.data["s1/recently-viewed"] = []byte("[[[")

		recent := NewRecentlyViewed("s1", blobs, testLogger())
		assert.Empty(t, recent.Items())
	})
}
