package shopify

import (
	"strings"
	"testing"
)

func TestProductsByTagQueryMatchModes(t *testing.T) {
	tests := []struct {
		match  MatchMode
		filter string
	}{
		{MatchLike, `tag:*(red)*`},
		{MatchLikeAfter, `tag:(red)*`},
		{MatchLikeBefore, `tag:*(red)`},
		{MatchExact, `tag:red`},
		{MatchMode("anything-else"), `tag:(red)`},
	}

	for _, tt := range tests {
		t.Run(string(tt.match), func(t *testing.T) {
			query := productsByTagQuery("red", tt.match)
			if !strings.Contains(query, tt.filter) {
				t.Errorf("query for mode %q does not contain %q:\n%s", tt.match, tt.filter, query)
			}
		})
	}
}

func TestVariantByIdentifierQuery(t *testing.T) {
	query := variantByIdentifierQuery(IdentifierBarcode, `ABC-123`)
	if !strings.Contains(query, `barcode:ABC-123`) {
		t.Errorf("query missing barcode filter:\n%s", query)
	}
	for _, field := range []string{"inventoryQuantity", "inventoryItem", "inventoryLevels", "selectedOptions", "tags"} {
		if !strings.Contains(query, field) {
			t.Errorf("query missing %s selection", field)
		}
	}
}

func TestEscapeQueryValue(t *testing.T) {
	if got := escapeQueryValue(`he said "hi"`); got != `he said \"hi\"` {
		t.Errorf("quote escaping = %q", got)
	}
	if got := escapeQueryValue(`back\slash`); got != `back\\slash` {
		t.Errorf("backslash escaping = %q", got)
	}
}
