package shopify

import (
	"context"
	"net/http"

	"shopsvc/internal/logger"
)

// InventoryAPI is the slice of the REST accessor the reconciliation engine
// mutates stock through.
type InventoryAPI interface {
	AdjustInventoryLevel(ctx context.Context, adj InventoryAdjustment) error
	SetInventoryLevel(ctx context.Context, set InventoryLevelSet) error
}

// StockUpdate reports an absolute stock write so callers can audit the delta.
type StockUpdate struct {
	ProductID   string `json:"product_id"`
	VariantID   string `json:"variant_id"`
	OldQuantity int    `json:"old_quantity"`
}

// InventoryService reconciles a requested quantity against freshly resolved
// remote state before mutating. The read-compare-write sequence is best
// effort: a concurrent external mutation between the read and the write is
// not guarded against.
type InventoryService struct {
	rest     InventoryAPI
	resolver VariantFinder
	logger   *logger.Logger
}

func NewInventoryService(rest InventoryAPI, resolver VariantFinder, log *logger.Logger) *InventoryService {
	return &InventoryService{
		rest:     rest,
		resolver: resolver,
		logger:   log,
	}
}

// AdjustByIdentifier applies a relative stock adjustment to the variant
// matching the identifier and returns the record the adjustment was resolved
// against.
//
// When the resolved record carries no inventory item or location id the call
// returns without mutating anything and without error. That silent no-op is
// preserved observable behavior; in practice the resolver already fails such
// records with a not-found error before this branch is reached.
func (s *InventoryService) AdjustByIdentifier(ctx context.Context, identifier string, kind IdentifierKind, delta int) (*VariantRecord, error) {
	variant, err := s.resolver.VariantByIdentifier(ctx, identifier, kind)
	if err != nil {
		return nil, err
	}

	if variant.InventoryItemID == "" || variant.LocationID == "" {
		return variant, nil
	}

	err = s.rest.AdjustInventoryLevel(ctx, InventoryAdjustment{
		LocationID:          variant.LocationID,
		InventoryItemID:     variant.InventoryItemID,
		AvailableAdjustment: delta,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("The stock variant with the %s %q has successfully been adjusted by %d", kind, identifier, delta)
	return variant, nil
}

// SetByIdentifier writes an absolute stock quantity for the variant matching
// the identifier. A request matching the current quantity returns a
// not-modified error and issues no mutation; callers treat that as success
// with no work done.
func (s *InventoryService) SetByIdentifier(ctx context.Context, identifier string, quantity int, kind IdentifierKind) (*StockUpdate, error) {
	if !kind.valid() {
		return nil, statusErrorf(StatusInvalidInput, "wrong identifier kind %q", kind)
	}

	variant, err := s.resolver.VariantByIdentifier(ctx, identifier, kind)
	if err != nil {
		return nil, err
	}
	if variant.InventoryItemID == "" {
		return nil, statusErrorf(http.StatusNotFound, "inventory item id not found with the provided %s %q", kind, identifier)
	}

	if quantity == variant.InventoryQuantity {
		return nil, statusErrorf(http.StatusNotModified, "unchanged stock level")
	}

	err = s.rest.SetInventoryLevel(ctx, InventoryLevelSet{
		LocationID:      variant.LocationID,
		InventoryItemID: variant.InventoryItemID,
		Available:       quantity,
	})
	if err != nil {
		return nil, err
	}

	return &StockUpdate{
		ProductID:   variant.ProductID,
		VariantID:   variant.VariantID,
		OldQuantity: variant.InventoryQuantity,
	}, nil
}
