package handlers

import (
	"net/http"

	"shopsvc/internal/logger"
	"shopsvc/internal/shopify"

	"github.com/gin-gonic/gin"
)

type MaintenanceHandler struct {
	resort *shopify.ResortWorkflow
	logger *logger.Logger
}

func NewMaintenanceHandler(resort *shopify.ResortWorkflow, logger *logger.Logger) *MaintenanceHandler {
	return &MaintenanceHandler{
		resort: resort,
		logger: logger,
	}
}

// ResortVariants walks the full product listing and rewrites variant order
// by size. Runs synchronously; expect it to take a while on large catalogs.
func (h *MaintenanceHandler) ResortVariants(c *gin.Context) {
	stats, err := h.resort.Run(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": stats})
}
