package store

import (
	"encoding/json"

	"storefront/internal/logger"
)

// Blobs is durable client storage: one opaque record per (session, key).
// A missing record reads as nil.
type Blobs interface {
	GetState(sessionID, key string) ([]byte, error)
	PutState(sessionID, key string, value []byte) error
}

const (
	cartKey           = "cart"
	wishlistKey       = "wishlist"
	recentlyViewedKey = "recently-viewed"
	savedForLaterKey  = "saved-for-later"
)

// load fills out from the persisted blob. Missing or corrupt blobs leave out
// untouched (the empty state); both conditions are logged, never surfaced.
// Decoding goes through a local value so a blob that fails partway through
// cannot leak half-decoded items into the store.
func load[T any](blobs Blobs, logger *logger.Logger, sessionID, key string, out *[]T) {
	raw, err := blobs.GetState(sessionID, key)
	if err != nil {
		logger.Warn("Failed to load %s state for session %s: %v", key, sessionID, err)
		return
	}
	if len(raw) == 0 {
		return
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		logger.Warn("Corrupt %s state for session %s, resetting: %v", key, sessionID, err)
		return
	}
	*out = items
}

func persist(blobs Blobs, logger *logger.Logger, sessionID, key string, items interface{}) {
	raw, err := json.Marshal(items)
	if err != nil {
		logger.Error("Failed to encode %s state: %v", key, err)
		return
	}
	if err := blobs.PutState(sessionID, key, raw); err != nil {
		logger.Error("Failed to persist %s state for session %s: %v", key, sessionID, err)
	}
}
