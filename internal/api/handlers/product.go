package handlers

import (
	"net/http"
	"net/url"

	"shopsvc/internal/logger"
	"shopsvc/internal/shopify"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	products *shopify.ProductService
	logger   *logger.Logger
}

func NewProductHandler(products *shopify.ProductService, logger *logger.Logger) *ProductHandler {
	return &ProductHandler{
		products: products,
		logger:   logger,
	}
}

// listParams passes the pagination/selection query values straight through
// to the platform.
func listParams(c *gin.Context) url.Values {
	params := url.Values{}
	for _, key := range []string{"limit", "page_info", "fields", "status", "ids"} {
		if v := c.Query(key); v != "" {
			params.Set(key, v)
		}
	}
	return params
}

func (h *ProductHandler) List(c *gin.Context) {
	products, next, err := h.products.ListProducts(c.Request.Context(), listParams(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":             products,
		"next_page_params": url.Values(next),
	})
}

func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	product, err := h.products.GetProduct(c.Request.Context(), id, listParams(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": product})
}

func (h *ProductHandler) Create(c *gin.Context) {
	var product shopify.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.products.CreateProduct(c.Request.Context(), product)
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusOK
	if result.Status == "created" {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"data": result.Product, "status": result.Status})
}

func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := h.products.UpdateProduct(c.Request.Context(), id, fields)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": product})
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.products.DeleteProducts(c.Request.Context(), []int64{id}); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

func (h *ProductHandler) Count(c *gin.Context) {
	count, err := h.products.CountProducts(c.Request.Context(), listParams(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

// ByTag resolves product ids carrying a tag; match controls wildcard
// placement (eq, like, like_before, like_after).
func (h *ProductHandler) ByTag(c *gin.Context) {
	tag := c.Query("tag")
	if tag == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tag is required"})
		return
	}
	match := shopify.MatchMode(c.DefaultQuery("match", string(shopify.MatchExact)))

	ids, err := h.products.ProductIDsByTag(c.Request.Context(), tag, match)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": ids})
}

// AddMetafields creates metafields on a product; ?retry=once enables the
// single delayed retry per metafield.
func (h *ProductHandler) AddMetafields(c *gin.Context) {
	h.addMetafields(c, shopify.EntityProduct)
}

// AddVariantMetafields is the variant-side counterpart of AddMetafields.
func (h *ProductHandler) AddVariantMetafields(c *gin.Context) {
	h.addMetafields(c, shopify.EntityProductVariant)
}

func (h *ProductHandler) addMetafields(c *gin.Context, et shopify.EntityType) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req struct {
		Metafields []shopify.Metafield `json:"metafields" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	retryOnce := c.Query("retry") == "once"

	if err := h.products.AddMetafields(c.Request.Context(), et, id, req.Metafields, retryOnce); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "created"})
}

func (h *ProductHandler) GetVariant(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	variant, err := h.products.GetVariant(c.Request.Context(), id, listParams(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": variant})
}

// VariantMetafields lists a variant's metafields; with ?key= it returns the
// single matching metafield instead.
func (h *ProductHandler) VariantMetafields(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	namespace := c.Query("namespace")

	if key := c.Query("key"); key != "" {
		metafield, err := h.products.GetVariantMetafield(c.Request.Context(), id, key, namespace)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": metafield})
		return
	}

	metafields, err := h.products.ListVariantMetafields(c.Request.Context(), id, namespace)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": metafields})
}
