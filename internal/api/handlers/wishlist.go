package handlers

import (
	"net/http"

	"storefront/internal/logger"
	"storefront/internal/store"

	"github.com/gin-gonic/gin"
)

type WishlistHandler struct {
	stores *store.Manager
	logger *logger.Logger
}

func NewWishlistHandler(stores *store.Manager, logger *logger.Logger) *WishlistHandler {
	return &WishlistHandler{
		stores: stores,
		logger: logger,
	}
}

func (h *WishlistHandler) List(c *gin.Context) {
	wishlist := h.stores.Wishlist(sessionID(c))
	c.JSON(http.StatusOK, gin.H{"data": wishlist.Items()})
}

func (h *WishlistHandler) Add(c *gin.Context) {
	var item store.WishlistItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if item.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "item id is required"})
		return
	}

	wishlist := h.stores.Wishlist(sessionID(c))
	wishlist.Add(item)
	c.JSON(http.StatusOK, gin.H{"data": wishlist.Items()})
}

func (h *WishlistHandler) Remove(c *gin.Context) {
	wishlist := h.stores.Wishlist(sessionID(c))
	wishlist.Remove(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"data": wishlist.Items()})
}

func (h *WishlistHandler) Clear(c *gin.Context) {
	wishlist := h.stores.Wishlist(sessionID(c))
	wishlist.Clear()
	c.JSON(http.StatusOK, gin.H{"data": wishlist.Items()})
}
