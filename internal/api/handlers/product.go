package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"storefront/internal/events"
	"storefront/internal/logger"
	"storefront/internal/services/shopify"
	"storefront/internal/store"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	client    *shopify.Client
	stores    *store.Manager
	publisher *events.Publisher
	logger    *logger.Logger
}

func NewProductHandler(client *shopify.Client, stores *store.Manager, publisher *events.Publisher, logger *logger.Logger) *ProductHandler {
	return &ProductHandler{
		client:    client,
		stores:    stores,
		publisher: publisher,
		logger:    logger,
	}
}

// Get serves the full product record and, as side effects, records the view
// in the session's recently-viewed list and emits an activity event.
func (h *ProductHandler) Get(c *gin.Context) {
	handle := c.Param("handle")

	detail, err := h.client.ProductByHandle(c.Request.Context(), handle)
	if err != nil {
		if errors.Is(err, shopify.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		h.logger.Error("Failed to fetch product %s: %v", handle, err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Catalog unavailable"})
		return
	}

	session := sessionID(c)
	item := store.RecentlyViewedItem{
		ID:     detail.ID,
		Title:  detail.Title,
		Handle: detail.Handle,
		Price:  detail.MinPrice,
	}
	if len(detail.Images) > 0 {
		item.Image = detail.Images[0].URL
	}
	h.stores.RecentlyViewed(session).Record(item)
	h.publisher.ProductViewed(c.Request.Context(), session, detail.ID)

	c.JSON(http.StatusOK, gin.H{"data": detail})
}

// Related returns a best-effort similarity list for a product. The source
// matches by tag or vendor and may include the product itself; the client
// filters it out.
func (h *ProductHandler) Related(c *gin.Context) {
	handle := c.Param("handle")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "6"))

	detail, err := h.client.ProductByHandle(c.Request.Context(), handle)
	if err != nil {
		if errors.Is(err, shopify.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		h.logger.Error("Failed to fetch product %s: %v", handle, err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Catalog unavailable"})
		return
	}

	related, err := h.client.RelatedProducts(c.Request.Context(), shopify.RelatedQuery{
		ExcludeID: detail.ID,
		Tags:      detail.Tags,
		Vendor:    detail.Vendor,
		Limit:     limit,
	})
	if err != nil {
		h.logger.Error("Failed to fetch related products for %s: %v", handle, err)
		c.JSON(http.StatusOK, gin.H{"data": []shopify.ProductSummary{}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": related})
}
