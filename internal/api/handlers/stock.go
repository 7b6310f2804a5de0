package handlers

import (
	"net/http"
	"strconv"

	"shopsvc/internal/events"
	"shopsvc/internal/logger"
	"shopsvc/internal/models"
	"shopsvc/internal/shopify"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StockHandler struct {
	inventory *shopify.InventoryService
	resolver  *shopify.Resolver
	db        *gorm.DB
	events    *events.Publisher
	logger    *logger.Logger
}

func NewStockHandler(inventory *shopify.InventoryService, resolver *shopify.Resolver, db *gorm.DB, publisher *events.Publisher, logger *logger.Logger) *StockHandler {
	return &StockHandler{
		inventory: inventory,
		resolver:  resolver,
		db:        db,
		events:    publisher,
		logger:    logger,
	}
}

// Adjust applies a relative stock delta to the variant matching a sku or
// barcode.
func (h *StockHandler) Adjust(c *gin.Context) {
	var req struct {
		Identifier string `json:"identifier" binding:"required"`
		Kind       string `json:"kind"`
		Delta      int    `json:"delta" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Kind == "" {
		req.Kind = string(shopify.IdentifierSKU)
	}

	variant, err := h.inventory.AdjustByIdentifier(c.Request.Context(), req.Identifier, shopify.IdentifierKind(req.Kind), req.Delta)
	if err != nil {
		respondError(c, err)
		return
	}

	h.record(models.StockMutation{
		ProductID:      variant.ProductID,
		VariantID:      variant.VariantID,
		Identifier:     req.Identifier,
		IdentifierKind: req.Kind,
		Operation:      "adjust",
		OldQuantity:    variant.InventoryQuantity,
		NewQuantity:    variant.InventoryQuantity + req.Delta,
		Delta:          req.Delta,
	})
	h.publish(c, events.StockEvent{
		Type:        "stock.adjusted",
		ProductID:   variant.ProductID,
		VariantID:   variant.VariantID,
		Identifier:  req.Identifier,
		Kind:        req.Kind,
		OldQuantity: variant.InventoryQuantity,
		NewQuantity: variant.InventoryQuantity + req.Delta,
		Delta:       req.Delta,
	})

	c.JSON(http.StatusOK, gin.H{
		"status":     "adjusted",
		"product_id": variant.ProductID,
		"variant_id": variant.VariantID,
	})
}

// Set writes an absolute stock quantity. A request matching the current
// quantity is reported as an unchanged success, not a failure.
func (h *StockHandler) Set(c *gin.Context) {
	var req struct {
		Identifier string `json:"identifier" binding:"required"`
		Kind       string `json:"kind"`
		Quantity   *int   `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Kind == "" {
		req.Kind = string(shopify.IdentifierSKU)
	}

	update, err := h.inventory.SetByIdentifier(c.Request.Context(), req.Identifier, *req.Quantity, shopify.IdentifierKind(req.Kind))
	if shopify.IsNotModified(err) {
		c.JSON(http.StatusOK, gin.H{"status": "unchanged"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	h.record(models.StockMutation{
		ProductID:      update.ProductID,
		VariantID:      update.VariantID,
		Identifier:     req.Identifier,
		IdentifierKind: req.Kind,
		Operation:      "set",
		OldQuantity:    update.OldQuantity,
		NewQuantity:    *req.Quantity,
		Delta:          *req.Quantity - update.OldQuantity,
	})
	h.publish(c, events.StockEvent{
		Type:        "stock.set",
		ProductID:   update.ProductID,
		VariantID:   update.VariantID,
		Identifier:  req.Identifier,
		Kind:        req.Kind,
		OldQuantity: update.OldQuantity,
		NewQuantity: *req.Quantity,
	})

	c.JSON(http.StatusOK, gin.H{
		"status":       "updated",
		"product_id":   update.ProductID,
		"variant_id":   update.VariantID,
		"old_quantity": update.OldQuantity,
		"new_quantity": *req.Quantity,
	})
}

// Resolve looks up a variant record by sku or barcode without mutating
// anything.
func (h *StockHandler) Resolve(c *gin.Context) {
	identifier := c.Query("identifier")
	if identifier == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "identifier is required"})
		return
	}
	kind := c.DefaultQuery("kind", string(shopify.IdentifierSKU))

	variant, err := h.resolver.VariantByIdentifier(c.Request.Context(), identifier, shopify.IdentifierKind(kind))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": variant})
}

// Mutations lists the most recent audited stock writes.
func (h *StockHandler) Mutations(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	var mutations []models.StockMutation
	if err := h.db.Order("created_at DESC").Limit(limit).Find(&mutations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stock mutations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": mutations})
}

func (h *StockHandler) record(m models.StockMutation) {
	m.ID = uuid.New().String()
	if err := h.db.Create(&m).Error; err != nil {
		h.logger.Error("Failed to record stock mutation: %v", err)
	}
}

func (h *StockHandler) publish(c *gin.Context, event events.StockEvent) {
	// emission failures never fail the mutation that already happened
	_ = h.events.PublishStockEvent(c.Request.Context(), event)
}
