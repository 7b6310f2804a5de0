package handlers

import (
	"net/http"

	"shopsvc/internal/logger"
	"shopsvc/internal/shopify"

	"github.com/gin-gonic/gin"
)

// EntityHandler exposes the operations that work across every enumerated
// entity kind: tag mutation, batch delete and metafield reads.
type EntityHandler struct {
	tags   *shopify.TagService
	rest   *shopify.Client
	logger *logger.Logger
}

func NewEntityHandler(tags *shopify.TagService, rest *shopify.Client, logger *logger.Logger) *EntityHandler {
	return &EntityHandler{
		tags:   tags,
		rest:   rest,
		logger: logger,
	}
}

// MutateTags applies an add, remove or replace operation to an entity's tag
// string. Tags may be given as a sequence or as one comma-joined string.
func (h *EntityHandler) MutateTags(c *gin.Context) {
	et, err := shopify.ParseEntityType(c.Param("type"))
	if err != nil {
		respondError(c, err)
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req struct {
		Op           string                   `json:"op" binding:"required"`
		Tags         []string                 `json:"tags"`
		TagsString   string                   `json:"tags_string"`
		Replacements []shopify.TagReplacement `json:"replacements"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tags := req.Tags
	if len(tags) == 0 && req.TagsString != "" {
		tags = shopify.SplitTagArg(req.TagsString)
	}

	var final string
	switch req.Op {
	case "add":
		final, err = h.tags.Add(c.Request.Context(), et, id, tags)
	case "remove":
		final, err = h.tags.Remove(c.Request.Context(), et, id, tags)
	case "replace":
		final, err = h.tags.Replace(c.Request.Context(), et, id, req.Replacements)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "op must be add, remove or replace"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tags": final})
}

// Delete removes a batch of records of one kind.
func (h *EntityHandler) Delete(c *gin.Context) {
	et, err := shopify.ParseEntityType(c.Param("type"))
	if err != nil {
		respondError(c, err)
		return
	}

	var req struct {
		IDs []int64 `json:"ids" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.rest.DeleteEntities(c.Request.Context(), et, req.IDs); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// Metafields reads an entity's metafields. Accessor failures are reported in
// the body rather than as an error status, which is what existing consumers
// of this surface expect.
func (h *EntityHandler) Metafields(c *gin.Context) {
	et, err := shopify.ParseEntityType(c.Param("type"))
	if err != nil {
		respondError(c, err)
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	metafields, err := h.rest.ListMetafields(c.Request.Context(), et, id, listParams(c))
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": metafields})
}
