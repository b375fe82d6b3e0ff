package handlers

import (
	"net/http"

	"storefront/internal/logger"
	"storefront/internal/store"

	"github.com/gin-gonic/gin"
)

type RecentHandler struct {
	stores *store.Manager
	logger *logger.Logger
}

func NewRecentHandler(stores *store.Manager, logger *logger.Logger) *RecentHandler {
	return &RecentHandler{
		stores: stores,
		logger: logger,
	}
}

func (h *RecentHandler) List(c *gin.Context) {
	recent := h.stores.RecentlyViewed(sessionID(c))
	c.JSON(http.StatusOK, gin.H{"data": recent.Items()})
}
