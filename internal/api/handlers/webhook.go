package handlers

import (
	"net/http"

	"shopsvc/internal/logger"
	"shopsvc/internal/shopify"

	"github.com/gin-gonic/gin"
)

type WebhookHandler struct {
	webhooks *shopify.WebhookService
	logger   *logger.Logger
}

func NewWebhookHandler(webhooks *shopify.WebhookService, logger *logger.Logger) *WebhookHandler {
	return &WebhookHandler{
		webhooks: webhooks,
		logger:   logger,
	}
}

// Create registers a webhook for a topic, or returns the existing
// subscription when one is already registered for it.
func (h *WebhookHandler) Create(c *gin.Context) {
	var req struct {
		Address string `json:"address" binding:"required"`
		Topic   string `json:"topic" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	webhook, err := h.webhooks.EnsureWebhook(c.Request.Context(), req.Address, req.Topic)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": webhook})
}

func (h *WebhookHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.webhooks.DeleteWebhook(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
