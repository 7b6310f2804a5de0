package handlers

import (
	"net/http"
	"net/url"

	"shopsvc/internal/logger"
	"shopsvc/internal/shopify"

	"github.com/gin-gonic/gin"
)

type CustomerHandler struct {
	customers *shopify.CustomerService
	logger    *logger.Logger
}

func NewCustomerHandler(customers *shopify.CustomerService, logger *logger.Logger) *CustomerHandler {
	return &CustomerHandler{
		customers: customers,
		logger:    logger,
	}
}

func (h *CustomerHandler) List(c *gin.Context) {
	customers, next, err := h.customers.ListCustomers(c.Request.Context(), listParams(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":             customers,
		"next_page_params": url.Values(next),
	})
}

// Exists checks for a customer by id or email.
func (h *CustomerHandler) Exists(c *gin.Context) {
	label := c.DefaultQuery("label", "id")
	value := c.Query("value")
	if value == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "value is required"})
		return
	}

	exists, err := h.customers.CustomerExists(c.Request.Context(), label, value)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"exists": exists})
}

func (h *CustomerHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	customer, err := h.customers.UpdateCustomer(c.Request.Context(), id, fields)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": customer})
}

// Merge folds a duplicate customer into an origin customer and deletes the
// duplicate.
func (h *CustomerHandler) Merge(c *gin.Context) {
	var req struct {
		Origin    shopify.Customer `json:"origin" binding:"required"`
		Duplicate shopify.Customer `json:"duplicate" binding:"required"`
		Fields    string           `json:"fields"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	customer, err := h.customers.MergeCustomers(c.Request.Context(), req.Origin, req.Duplicate, req.Fields)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": customer})
}
