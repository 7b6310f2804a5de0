package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"shopsvc/internal/logger"
)

// IdentifierKind selects which business identifier a variant lookup matches on.
type IdentifierKind string

const (
	IdentifierSKU     IdentifierKind = "sku"
	IdentifierBarcode IdentifierKind = "barcode"
)

func (k IdentifierKind) valid() bool {
	return k == IdentifierSKU || k == IdentifierBarcode
}

// SelectedOption is a variant option name/value pair as echoed by GraphQL.
type SelectedOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// VariantRecord is the flat result of resolving a business identifier to the
// platform's graph of ids. It is an immutable snapshot of remote state at
// query time; InventoryItemID and LocationID are always both present, or
// the resolution failed instead of returning a partial record.
type VariantRecord struct {
	ProductID         string           `json:"product_id"`
	VariantID         string           `json:"variant_id"`
	InventoryItemID   string           `json:"inventory_item_id"`
	LocationID        string           `json:"location_id"`
	Sku               string           `json:"sku"`
	Barcode           string           `json:"barcode"`
	InventoryQuantity int              `json:"inventory_quantity"`
	ProductTags       []string         `json:"product_tags"`
	Options           []SelectedOption `json:"options"`
}

// VariantFinder is the resolution capability consumed by the reconciliation
// engine.
type VariantFinder interface {
	VariantByIdentifier(ctx context.Context, value string, kind IdentifierKind) (*VariantRecord, error)
}

// Resolver maps business identifiers onto platform ids through fixed GraphQL
// lookups.
type Resolver struct {
	gql    GraphQL
	logger *logger.Logger
}

func NewResolver(gql GraphQL, log *logger.Logger) *Resolver {
	return &Resolver{
		gql:    gql,
		logger: log,
	}
}

type variantSearchData struct {
	ProductVariants struct {
		Edges []struct {
			Node struct {
				ID                string           `json:"id"`
				Sku               string           `json:"sku"`
				Barcode           string           `json:"barcode"`
				SelectedOptions   []SelectedOption `json:"selectedOptions"`
				InventoryQuantity int              `json:"inventoryQuantity"`
				Product           struct {
					ID     string   `json:"id"`
					Tags   []string `json:"tags"`
					Handle string   `json:"handle"`
				} `json:"product"`
				InventoryItem struct {
					ID              string `json:"id"`
					InventoryLevels struct {
						Edges []struct {
							Node struct {
								Location struct {
									ID string `json:"id"`
								} `json:"location"`
							} `json:"node"`
						} `json:"edges"`
					} `json:"inventoryLevels"`
				} `json:"inventoryItem"`
			} `json:"node"`
		} `json:"edges"`
	} `json:"productVariants"`
}

type idEdgesData struct {
	Edges []struct {
		Node struct {
			ID string `json:"id"`
		} `json:"node"`
	} `json:"edges"`
}

// VariantByIdentifier resolves a sku or barcode to a VariantRecord.
//
// The search query is not exact-match: the platform may fuzzy-match a nearby
// record, so the echoed identifier is compared byte-for-byte against the
// requested value and any mismatch fails closed.
func (r *Resolver) VariantByIdentifier(ctx context.Context, value string, kind IdentifierKind) (*VariantRecord, error) {
	if !kind.valid() {
		return nil, statusErrorf(StatusInvalidInput, "wrong identifier kind %q", kind)
	}

	resp, err := r.gql.Query(ctx, variantByIdentifierQuery(kind, value))
	if err != nil {
		return nil, err
	}
	if len(resp.Errors) > 0 {
		return nil, statusErrorf(StatusInvalidInput, "graphql error: %s", resp.ErrorMessages())
	}

	var data variantSearchData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to decode variant lookup: %w", err)
	}
	if len(data.ProductVariants.Edges) == 0 {
		return nil, statusErrorf(http.StatusNotFound, "the %s %q does not exist in the shop", kind, value)
	}

	node := data.ProductVariants.Edges[0].Node
	echoed := node.Sku
	if kind == IdentifierBarcode {
		echoed = node.Barcode
	}
	if echoed != value {
		return nil, statusErrorf(http.StatusNotFound,
			"incompatible %s: searched %q, shop returned %q", kind, value, echoed)
	}

	locationID := ""
	if levels := node.InventoryItem.InventoryLevels.Edges; len(levels) > 0 {
		locationID = decodeGID(levels[0].Node.Location.ID, "Location")
	}
	inventoryItemID := decodeGID(node.InventoryItem.ID, "InventoryItem")
	if inventoryItemID == "" || locationID == "" {
		return nil, statusErrorf(http.StatusNotFound, "missing data: inventory_item_id or location_id")
	}

	return &VariantRecord{
		ProductID:         decodeGID(node.Product.ID, "Product"),
		VariantID:         decodeGID(node.ID, "ProductVariant"),
		InventoryItemID:   inventoryItemID,
		LocationID:        locationID,
		Sku:               node.Sku,
		Barcode:           node.Barcode,
		InventoryQuantity: node.InventoryQuantity,
		ProductTags:       node.Product.Tags,
		Options:           node.SelectedOptions,
	}, nil
}

// ProductIDsByTag looks up product ids carrying a tag, with wildcard
// placement controlled by match. Zero matches is a hard not-found failure,
// never an empty slice.
func (r *Resolver) ProductIDsByTag(ctx context.Context, tag string, match MatchMode) ([]string, error) {
	resp, err := r.gql.Query(ctx, productsByTagQuery(tag, match))
	if err != nil {
		return nil, err
	}
	if len(resp.Errors) > 0 {
		return nil, statusErrorf(StatusInvalidInput, "graphql error: %s", resp.ErrorMessages())
	}

	var data struct {
		Products idEdgesData `json:"products"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to decode tag lookup: %w", err)
	}
	if len(data.Products.Edges) == 0 {
		return nil, statusErrorf(http.StatusNotFound, "no product with tag %q exists in the shop", tag)
	}

	ids := make([]string, 0, len(data.Products.Edges))
	for _, edge := range data.Products.Edges {
		ids = append(ids, decodeGID(edge.Node.ID, "Product"))
	}
	return ids, nil
}

// OrderIDByName resolves an order name (e.g. "#1001") to its numeric id.
func (r *Resolver) OrderIDByName(ctx context.Context, name string) (string, error) {
	resp, err := r.gql.Query(ctx, orderByNameQuery(name))
	if err != nil {
		return "", err
	}
	if len(resp.Errors) > 0 {
		return "", statusErrorf(StatusInvalidInput, "graphql error: %s", resp.ErrorMessages())
	}

	var data struct {
		Orders idEdgesData `json:"orders"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return "", fmt.Errorf("failed to decode order lookup: %w", err)
	}
	if len(data.Orders.Edges) == 0 {
		return "", statusErrorf(http.StatusNotFound, "the order named %q does not exist in the shop", name)
	}

	return decodeGID(data.Orders.Edges[0].Node.ID, "Order"), nil
}
