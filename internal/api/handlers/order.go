package handlers

import (
	"net/http"
	"net/url"

	"shopsvc/internal/logger"
	"shopsvc/internal/shopify"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	orders *shopify.OrderService
	logger *logger.Logger
}

func NewOrderHandler(orders *shopify.OrderService, logger *logger.Logger) *OrderHandler {
	return &OrderHandler{
		orders: orders,
		logger: logger,
	}
}

func (h *OrderHandler) List(c *gin.Context) {
	orders, next, err := h.orders.ListOrders(c.Request.Context(), listParams(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":             orders,
		"next_page_params": url.Values(next),
	})
}

func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	order, err := h.orders.GetOrder(c.Request.Context(), id, listParams(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": order})
}

func (h *OrderHandler) Count(c *gin.Context) {
	count, err := h.orders.CountOrders(c.Request.Context(), listParams(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

// Lookup resolves an order name like "#1001" to its numeric id.
func (h *OrderHandler) Lookup(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	id, err := h.orders.OrderIDByName(c.Request.Context(), name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id})
}
