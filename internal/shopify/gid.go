package shopify

import "strings"

// decodeGID strips the "gid://shopify/<entityType>/" prefix from a GraphQL
// node identifier, leaving the plain numeric id. The removal is a literal
// substring replacement: a malformed gid yields a wrong but non-error result,
// matching how the ids are consumed downstream.
func decodeGID(gid, entityType string) string {
	return strings.ReplaceAll(gid, "gid://shopify/"+entityType+"/", "")
}
