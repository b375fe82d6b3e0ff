package handlers

import (
	"net/http"

	"storefront/internal/catalog"
	"storefront/internal/logger"

	"github.com/gin-gonic/gin"
)

type SearchHandler struct {
	searcher *catalog.Searcher
	logger   *logger.Logger
}

func NewSearchHandler(searcher *catalog.Searcher, logger *logger.Logger) *SearchHandler {
	return &SearchHandler{
		searcher: searcher,
		logger:   logger,
	}
}

func (h *SearchHandler) Search(c *gin.Context) {
	results, err := h.searcher.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.logger.Error("Search failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search products"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": results})
}
