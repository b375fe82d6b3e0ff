package handlers

import (
	"net/http"

	"storefront/internal/events"
	"storefront/internal/logger"
	"storefront/internal/store"

	"github.com/gin-gonic/gin"
)

type CartHandler struct {
	stores    *store.Manager
	publisher *events.Publisher
	logger    *logger.Logger
}

func NewCartHandler(stores *store.Manager, publisher *events.Publisher, logger *logger.Logger) *CartHandler {
	return &CartHandler{
		stores:    stores,
		publisher: publisher,
		logger:    logger,
	}
}

func cartState(cart *store.Cart) gin.H {
	return gin.H{
		"items":   cart.Items(),
		"saved":   cart.SavedItems(),
		"totals":  cart.Totals(),
		"is_open": cart.IsOpen(),
	}
}

func (h *CartHandler) Get(c *gin.Context) {
	cart := h.stores.Cart(sessionID(c))
	c.JSON(http.StatusOK, cartState(cart))
}

func (h *CartHandler) AddItem(c *gin.Context) {
	var item store.CartItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if item.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "item id is required"})
		return
	}

	session := sessionID(c)
	cart := h.stores.Cart(session)
	cart.AddItem(item)
	h.publisher.AddedToCart(c.Request.Context(), session, item.ID, item.Quantity)

	c.JSON(http.StatusOK, cartState(cart))
}

func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	var body struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cart := h.stores.Cart(sessionID(c))
	cart.UpdateQuantity(c.Param("id"), body.Quantity)
	c.JSON(http.StatusOK, cartState(cart))
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	cart := h.stores.Cart(sessionID(c))
	cart.RemoveItem(c.Param("id"))
	c.JSON(http.StatusOK, cartState(cart))
}

func (h *CartHandler) Clear(c *gin.Context) {
	cart := h.stores.Cart(sessionID(c))
	cart.Clear()
	c.JSON(http.StatusOK, cartState(cart))
}

func (h *CartHandler) Open(c *gin.Context) {
	cart := h.stores.Cart(sessionID(c))
	cart.Open()
	c.JSON(http.StatusOK, cartState(cart))
}

func (h *CartHandler) Close(c *gin.Context) {
	cart := h.stores.Cart(sessionID(c))
	cart.Close()
	c.JSON(http.StatusOK, cartState(cart))
}

func (h *CartHandler) SaveForLater(c *gin.Context) {
	cart := h.stores.Cart(sessionID(c))
	cart.SaveForLater(c.Param("id"))
	c.JSON(http.StatusOK, cartState(cart))
}

func (h *CartHandler) MoveToCart(c *gin.Context) {
	cart := h.stores.Cart(sessionID(c))
	cart.MoveToCart(c.Param("id"))
	c.JSON(http.StatusOK, cartState(cart))
}

func (h *CartHandler) RemoveSaved(c *gin.Context) {
	cart := h.stores.Cart(sessionID(c))
	cart.RemoveSaved(c.Param("id"))
	c.JSON(http.StatusOK, cartState(cart))
}
