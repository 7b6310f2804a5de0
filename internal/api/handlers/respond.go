package handlers

import (
	"net/http"
	"strconv"

	"shopsvc/internal/shopify"

	"github.com/gin-gonic/gin"
)

// respondError maps the service error taxonomy onto HTTP responses. Typed
// statuses (460 validation, 404 not found) pass through; untyped transport
// errors surface as a bad gateway.
func respondError(c *gin.Context, err error) {
	status := shopify.StatusOf(err)
	if status == 0 {
		status = http.StatusBadGateway
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}
