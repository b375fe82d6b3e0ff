package handlers

import (
	"net/http"
	"strconv"

	"storefront/internal/catalog"
	"storefront/internal/logger"
	"storefront/internal/services/shopify"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	loader *catalog.Loader
	client *shopify.Client
	logger *logger.Logger
}

func NewCatalogHandler(loader *catalog.Loader, client *shopify.Client, logger *logger.Logger) *CatalogHandler {
	return &CatalogHandler{
		loader: loader,
		client: client,
		logger: logger,
	}
}

func filtersFromQuery(c *gin.Context) catalog.FilterState {
	minPrice, _ := strconv.ParseFloat(c.Query("min_price"), 64)
	maxPrice, _ := strconv.ParseFloat(c.Query("max_price"), 64)
	return catalog.FilterState{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		Vendor:   c.Query("vendor"),
		MinPrice: minPrice,
		MaxPrice: maxPrice,
		Sort:     catalog.SortKey(c.DefaultQuery("sort", string(catalog.SortNewest))),
	}
}

func (h *CatalogHandler) respondWindow(c *gin.Context) {
	view := h.loader.Window()
	payload := gin.H{
		"data": view.Items,
		"meta": gin.H{
			"total":        view.Total,
			"reveal_count": view.RevealCount,
			"has_more":     view.HasMore,
			"fetching":     view.Fetching,
		},
	}
	// A source failure degrades to an empty listing, not an error page.
	if err := h.loader.LastError(); err != nil {
		payload["error"] = "catalog unavailable"
	}
	c.JSON(http.StatusOK, payload)
}

// List applies the caller's filters and returns the revealed window.
func (h *CatalogHandler) List(c *gin.Context) {
	h.loader.Apply(filtersFromQuery(c))
	h.respondWindow(c)
}

// Reload re-fetches the first page; this is the user-initiated retry path.
func (h *CatalogHandler) Reload(c *gin.Context) {
	h.loader.LoadInitialPage(c.Request.Context())
	h.respondWindow(c)
}

// Reveal grows the visible window, fetching another page when the buffer is
// exhausted.
func (h *CatalogHandler) Reveal(c *gin.Context) {
	h.loader.Apply(filtersFromQuery(c))
	h.loader.RevealMore(c.Request.Context())
	h.respondWindow(c)
}

func (h *CatalogHandler) Facets(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.loader.Facets()})
}

// Latest serves the newest products for marketing surfaces. Source failures
// degrade to an empty list.
func (h *CatalogHandler) Latest(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "4"))
	items, err := h.client.LatestProducts(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("Failed to fetch latest products: %v", err)
		c.JSON(http.StatusOK, gin.H{"data": []shopify.ProductSummary{}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": items})
}

func (h *CatalogHandler) ByVendor(c *gin.Context) {
	vendor := c.Param("vendor")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "4"))
	items, err := h.client.ProductsByVendor(c.Request.Context(), vendor, limit)
	if err != nil {
		h.logger.Error("Failed to fetch products for vendor %s: %v", vendor, err)
		c.JSON(http.StatusOK, gin.H{"data": []shopify.ProductSummary{}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": items})
}
