package shopify

import (
	"context"
	"net/url"
	"sort"

	"shopsvc/internal/logger"
)

// sizeOrdinals fixes the sort position of the common apparel size labels.
// Variants whose second option is not listed keep their original relative
// order behind the matched ones.
var sizeOrdinals = map[string]int{
	"xxs":  0,
	"xs":   1,
	"s":    2,
	"m":    3,
	"l":    4,
	"xl":   5,
	"xxl":  6,
	"xxxl": 7,
}

// ResortProductAPI is the product listing/update surface the workflow runs
// against.
type ResortProductAPI interface {
	ListProducts(ctx context.Context, params url.Values) ([]Product, PageParams, error)
	UpdateProduct(ctx context.Context, id int64, fields interface{}) (*Product, error)
}

type ResortStats struct {
	Pages   int `json:"pages"`
	Updated int `json:"updated"`
}

// ResortWorkflow walks every product page and rewrites each multi-variant
// product's variant order by size. The pagination cursor is threaded through
// the loop as a value, never stored on the workflow, so runs cannot leak
// state into each other.
type ResortWorkflow struct {
	products ResortProductAPI
	logger   *logger.Logger
}

func NewResortWorkflow(products ResortProductAPI, log *logger.Logger) *ResortWorkflow {
	return &ResortWorkflow{
		products: products,
		logger:   log,
	}
}

// Run iterates the full product listing. A failure while processing one page
// is logged and the workflow moves on to the next page; a failed page may be
// left partially updated, there is no rollback.
func (w *ResortWorkflow) Run(ctx context.Context) (*ResortStats, error) {
	stats := &ResortStats{}

	params := url.Values{"fields": {"id,variants"}}
	for {
		products, next, err := w.products.ListProducts(ctx, params)
		if err != nil {
			return stats, err
		}
		stats.Pages++

		w.processPage(ctx, products, stats)

		if next.Empty() {
			return stats, nil
		}
		params = url.Values(next)
	}
}

type productVariantsUpdate struct {
	ID       int64     `json:"id"`
	Variants []Variant `json:"variants"`
}

func (w *ResortWorkflow) processPage(ctx context.Context, products []Product, stats *ResortStats) {
	for _, product := range products {
		if len(product.Variants) <= 1 {
			continue
		}

		update := productVariantsUpdate{
			ID:       product.ID,
			Variants: sortVariantsBySize(product.Variants),
		}
		if _, err := w.products.UpdateProduct(ctx, product.ID, update); err != nil {
			w.logger.Error("Exception [%d]: %s", StatusOf(err), err)
			return
		}

		w.logger.Notice("Updated: %d", product.ID)
		stats.Updated++
	}
}

// sortVariantsBySize orders variants by the size ordinal of their second
// option. Unmatched variants follow the matched ones in their original
// relative order; when nothing matches the original order is returned
// untouched rather than appended after an empty prefix.
func sortVariantsBySize(variants []Variant) []Variant {
	type ranked struct {
		ordinal int
		variant Variant
	}

	var matched []ranked
	var rest []Variant
	for _, v := range variants {
		if v.Option2 != nil {
			if ordinal, ok := sizeOrdinals[*v.Option2]; ok {
				matched = append(matched, ranked{ordinal: ordinal, variant: v})
				continue
			}
		}
		rest = append(rest, v)
	}

	if len(matched) == 0 {
		return variants
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].ordinal < matched[j].ordinal
	})

	sorted := make([]Variant, 0, len(variants))
	for _, m := range matched {
		sorted = append(sorted, m.variant)
	}
	return append(sorted, rest...)
}
