package shopify

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"shopsvc/internal/logger"
)

type resortPage struct {
	products []Product
	next     PageParams
	err      error
}

// fakeResortAPI serves a fixed sequence of pages and records updates.
type fakeResortAPI struct {
	pages      []resortPage
	listCalls  []url.Values
	updates    []productVariantsUpdate
	updateErrs map[int64]error
}

func (f *fakeResortAPI) ListProducts(ctx context.Context, params url.Values) ([]Product, PageParams, error) {
	f.listCalls = append(f.listCalls, params)
	page := f.pages[0]
	f.pages = f.pages[1:]
	return page.products, page.next, page.err
}

func (f *fakeResortAPI) UpdateProduct(ctx context.Context, id int64, fields interface{}) (*Product, error) {
	update := fields.(productVariantsUpdate)
	if err := f.updateErrs[id]; err != nil {
		return nil, err
	}
	f.updates = append(f.updates, update)
	return &Product{ID: id}, nil
}

func sized(size string) *string {
	return &size
}

func sizedVariants(sizes ...string) []Variant {
	variants := make([]Variant, 0, len(sizes))
	for i, size := range sizes {
		variants = append(variants, Variant{ID: int64(i + 1), Option2: sized(size)})
	}
	return variants
}

func option2s(variants []Variant) []string {
	out := make([]string, 0, len(variants))
	for _, v := range variants {
		if v.Option2 == nil {
			out = append(out, "")
			continue
		}
		out = append(out, *v.Option2)
	}
	return out
}

func newTestResortWorkflow(api ResortProductAPI) *ResortWorkflow {
	return NewResortWorkflow(api, logger.New("error"))
}

func TestResortRunWalksAllPages(t *testing.T) {
	api := &fakeResortAPI{pages: []resortPage{
		{
			products: []Product{{ID: 1, Variants: sizedVariants("m", "xs", "l")}},
			next:     PageParams{"page_info": {"cursor-2"}, "limit": {"50"}},
		},
		{
			products: []Product{{ID: 2, Variants: sizedVariants("s")}},
			next:     PageParams{},
		},
	}}
	w := newTestResortWorkflow(api)

	stats, err := w.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if stats.Pages != 2 {
		t.Errorf("pages = %d, want 2", stats.Pages)
	}
	if stats.Updated != 1 {
		t.Errorf("updated = %d, want 1", stats.Updated)
	}

	if len(api.updates) != 1 {
		t.Fatalf("update calls = %d, want 1", len(api.updates))
	}
	got := option2s(api.updates[0].Variants)
	want := []string{"xs", "m", "l"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sorted sizes = %v, want %v", got, want)
		}
	}

	// second list call carries the cursor from the first page
	if len(api.listCalls) != 2 {
		t.Fatalf("list calls = %d, want 2", len(api.listCalls))
	}
	if api.listCalls[1].Get("page_info") != "cursor-2" {
		t.Errorf("second page params = %v", api.listCalls[1])
	}
}

func TestResortRunSkipsSingleVariantProducts(t *testing.T) {
	api := &fakeResortAPI{pages: []resortPage{
		{
			products: []Product{
				{ID: 1, Variants: sizedVariants("m")},
				{ID: 2, Variants: nil},
			},
			next: PageParams{},
		},
	}}
	w := newTestResortWorkflow(api)

	stats, err := w.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if stats.Updated != 0 || len(api.updates) != 0 {
		t.Errorf("updated = %d, update calls = %d, want 0/0", stats.Updated, len(api.updates))
	}
}

func TestResortRunContinuesAfterPageFailure(t *testing.T) {
	api := &fakeResortAPI{
		pages: []resortPage{
			{
				products: []Product{
					{ID: 1, Variants: sizedVariants("l", "s")},
					{ID: 2, Variants: sizedVariants("xl", "m")},
				},
				next: PageParams{"page_info": {"cursor-2"}},
			},
			{
				products: []Product{{ID: 3, Variants: sizedVariants("xxl", "xs")}},
				next:     PageParams{},
			},
		},
		updateErrs: map[int64]error{1: errors.New("internal server error")},
	}
	w := newTestResortWorkflow(api)

	stats, err := w.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	// the failed page is abandoned at product 1, so product 2 is never
	// touched, but the workflow still reaches product 3 on the next page
	if stats.Pages != 2 {
		t.Errorf("pages = %d, want 2", stats.Pages)
	}
	if len(api.updates) != 1 || api.updates[0].ID != 3 {
		t.Errorf("updates = %+v, want only product 3", api.updates)
	}
}

func TestResortRunPropagatesListError(t *testing.T) {
	api := &fakeResortAPI{pages: []resortPage{{err: errors.New("bad gateway")}}}
	w := newTestResortWorkflow(api)

	if _, err := w.Run(context.Background()); err == nil {
		t.Fatal("expected list error")
	}
}

func TestSortVariantsBySize(t *testing.T) {
	tests := []struct {
		name  string
		sizes []string
		want  []string
	}{
		{"full ladder", []string{"xxl", "s", "m", "xs"}, []string{"xs", "s", "m", "xxl"}},
		{"unmatched trail matched", []string{"l", "38", "m", "40"}, []string{"m", "l", "38", "40"}},
		{"duplicates keep order", []string{"m", "s", "m"}, []string{"s", "m", "m"}},
		{"uppercase is not a size", []string{"L", "M"}, []string{"L", "M"}},
		{"nothing matches", []string{"38", "40"}, []string{"38", "40"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := option2s(sortVariantsBySize(sizedVariants(tt.sizes...)))
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("sorted sizes = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestSortVariantsBySizeNilOption(t *testing.T) {
	variants := []Variant{
		{ID: 1, Option2: nil},
		{ID: 2, Option2: sized("s")},
	}
	sorted := sortVariantsBySize(variants)
	if sorted[0].ID != 2 || sorted[1].ID != 1 {
		t.Errorf("sorted ids = %d,%d, want 2,1", sorted[0].ID, sorted[1].ID)
	}
}
