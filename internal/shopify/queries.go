package shopify

import (
	"fmt"
	"strings"
)

// MatchMode controls wildcard placement in tag-filter queries.
type MatchMode string

const (
	MatchExact      MatchMode = "eq"          // literal tag, no decoration
	MatchLike       MatchMode = "like"        // *(tag)*
	MatchLikeAfter  MatchMode = "like_after"  // (tag)*
	MatchLikeBefore MatchMode = "like_before" // *(tag)
)

// escapeQueryValue makes a value safe to interpolate into a Shopify search
// query string literal.
func escapeQueryValue(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	return strings.ReplaceAll(v, `"`, `\"`)
}

// variantByIdentifierQuery searches the first variant matching the sku or
// barcode, with enough nested data to reconcile inventory: the parent
// product, the inventory item and its first tracked locations.
func variantByIdentifierQuery(kind IdentifierKind, value string) string {
	return fmt.Sprintf(`
query {
  productVariants(first: 1, query: "%s:%s") {
    edges {
      node {
        id
        sku
        barcode
        selectedOptions {
          name
          value
        }
        inventoryQuantity
        product {
          id
          tags
          handle
        }
        inventoryItem {
          id
          inventoryLevels(first: 10) {
            edges {
              node {
                location {
                  id
                }
              }
            }
          }
        }
      }
    }
  }
}`, kind, escapeQueryValue(value))
}

func productsByTagQuery(tag string, match MatchMode) string {
	tag = escapeQueryValue(tag)

	var filter string
	switch match {
	case MatchLike:
		filter = "*(" + tag + ")*"
	case MatchLikeAfter:
		filter = "(" + tag + ")*"
	case MatchLikeBefore:
		filter = "*(" + tag + ")"
	case MatchExact:
		filter = tag
	default:
		filter = "(" + tag + ")"
	}

	return fmt.Sprintf(`
query {
  products(first: 250, query: "tag:%s") {
    edges {
      node {
        id
      }
    }
  }
}`, filter)
}

func orderByNameQuery(name string) string {
	return fmt.Sprintf(`
query {
  orders(first: 1, query: "name:%s") {
    edges {
      node {
        id
      }
    }
  }
}`, escapeQueryValue(name))
}
