package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"shopsvc/internal/logger"
)

// ProductService layers product and variant operations over the REST
// accessor and the resolver.
type ProductService struct {
	rest     *Client
	resolver *Resolver
	logger   *logger.Logger

	// single opt-in retry delay for metafield creation
	retryDelay time.Duration
}

func NewProductService(rest *Client, resolver *Resolver, log *logger.Logger) *ProductService {
	return &ProductService{
		rest:       rest,
		resolver:   resolver,
		logger:     log,
		retryDelay: 5 * time.Second,
	}
}

func (s *ProductService) GetProduct(ctx context.Context, id int64, params url.Values) (*Product, error) {
	var product Product
	if err := s.rest.GetEntity(ctx, EntityProduct, id, params, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *ProductService) ListProducts(ctx context.Context, params url.Values) ([]Product, PageParams, error) {
	var products []Product
	next, err := s.rest.ListEntities(ctx, EntityProduct, params, &products)
	if err != nil {
		return nil, nil, err
	}
	return products, next, nil
}

// CountProducts counts product variants, not products. Longstanding quirk
// kept for callers that size imports off this number.
func (s *ProductService) CountProducts(ctx context.Context, params url.Values) (int, error) {
	return s.rest.CountEntities(ctx, EntityProductVariant, params)
}

func (s *ProductService) UpdateProduct(ctx context.Context, id int64, fields interface{}) (*Product, error) {
	var product Product
	if err := s.rest.UpdateEntity(ctx, EntityProduct, id, fields, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *ProductService) DeleteProducts(ctx context.Context, ids []int64) error {
	return s.rest.DeleteEntities(ctx, EntityProduct, ids)
}

// ProductCreateResult reports whether a create call found an existing
// product instead of posting a new one.
type ProductCreateResult struct {
	Product *Product `json:"product"`
	Status  string   `json:"status"` // "created" or "unchanged"
}

// CreateProduct posts a new product unless one of the payload's variant SKUs
// already resolves to an existing product, in which case that product is
// returned unchanged. Variants are size-sorted before the write.
func (s *ProductService) CreateProduct(ctx context.Context, product Product) (*ProductCreateResult, error) {
	sku := ""
	if len(product.Variants) > 0 {
		sku = product.Variants[0].Sku
	}
	s.logger.Info("Handling %s - %s", product.Handle, sku)

	product.Variants = sortVariantsBySize(product.Variants)

	if existingID := s.productIDByVariants(ctx, product.Variants); existingID != "" {
		id, err := strconv.ParseInt(existingID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("resolved product id %q is not numeric: %w", existingID, err)
		}
		existing, err := s.GetProduct(ctx, id, nil)
		if err != nil {
			return nil, err
		}
		return &ProductCreateResult{Product: existing, Status: "unchanged"}, nil
	}

	var created Product
	if err := s.rest.CreateEntity(ctx, EntityProduct, product, &created); err != nil {
		return nil, err
	}
	return &ProductCreateResult{Product: &created, Status: "created"}, nil
}

// productIDByVariants returns the product id of the first variant SKU that
// resolves, or "" when none do. Resolution failures are treated as "not
// there" and the next variant is tried.
func (s *ProductService) productIDByVariants(ctx context.Context, variants []Variant) string {
	for _, v := range variants {
		if v.Sku == "" {
			continue
		}
		record, err := s.resolver.VariantByIdentifier(ctx, v.Sku, IdentifierSKU)
		if err != nil {
			continue
		}
		if record.ProductID != "" {
			return record.ProductID
		}
	}
	return ""
}

func (s *ProductService) GetVariant(ctx context.Context, id int64, params url.Values) (*Variant, error) {
	var variant Variant
	if err := s.rest.GetEntity(ctx, EntityProductVariant, id, params, &variant); err != nil {
		return nil, err
	}
	return &variant, nil
}

func (s *ProductService) ListVariantMetafields(ctx context.Context, variantID int64, namespace string) ([]Metafield, error) {
	params := url.Values{}
	if namespace != "" {
		params.Set("namespace", namespace)
	}
	return s.rest.ListMetafields(ctx, EntityProductVariant, variantID, params)
}

// GetVariantMetafield selects a variant metafield by key, optionally scoped
// to a namespace.
func (s *ProductService) GetVariantMetafield(ctx context.Context, variantID int64, key, namespace string) (*Metafield, error) {
	metafields, err := s.ListVariantMetafields(ctx, variantID, namespace)
	if err != nil {
		return nil, err
	}
	for i := range metafields {
		if metafields[i].Key == key {
			return &metafields[i], nil
		}
	}
	return nil, statusErrorf(http.StatusNotFound, "variant %d has no metafield %q", variantID, key)
}

// UpdateInventoryItems applies the same inventory-item fields to every
// variant of the product.
func (s *ProductService) UpdateInventoryItems(ctx context.Context, product Product, fields interface{}) error {
	for _, variant := range product.Variants {
		if err := s.rest.UpdateInventoryItem(ctx, variant.InventoryItemID, fields); err != nil {
			payload, _ := json.Marshal(fields)
			return fmt.Errorf("country_code_of_origin or harmonized_system_code not found or incorrect %s: %w", payload, err)
		}
	}
	return nil
}

// AddMetafields creates metafields one by one on a product or variant. With
// retryOnce set, each failed creation is retried a single time after a fixed
// delay; nothing else retries.
func (s *ProductService) AddMetafields(ctx context.Context, et EntityType, id int64, metafields []Metafield, retryOnce bool) error {
	if et != EntityProduct && et != EntityProductVariant {
		return statusErrorf(StatusInvalidInput, "metafields can only be added to Product or ProductVariant, got %q", et)
	}

	for _, metafield := range metafields {
		_, err := s.rest.CreateMetafield(ctx, et, id, metafield)
		if err == nil {
			continue
		}
		if !retryOnce {
			return err
		}
		s.logger.Error("metafield creation failed, retrying once: %v", err)
		time.Sleep(s.retryDelay)
		if _, err := s.rest.CreateMetafield(ctx, et, id, metafield); err != nil {
			return err
		}
	}
	return nil
}

// ProductIDsByTag exposes the tag lookup on the product surface.
func (s *ProductService) ProductIDsByTag(ctx context.Context, tag string, match MatchMode) ([]string, error) {
	return s.resolver.ProductIDsByTag(ctx, tag, match)
}
