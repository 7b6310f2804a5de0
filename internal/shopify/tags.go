package shopify

import (
	"context"
	"strings"
)

// TagAccessor is the slice of the REST accessor the tag engine reads and
// writes the tags field through.
type TagAccessor interface {
	EntityTags(ctx context.Context, et EntityType, id int64) (string, error)
	UpdateEntityTags(ctx context.Context, et EntityType, id int64, tags string) error
}

// TagReplacement is one literal search/replace pair. Pairs are applied in
// slice order; overlapping search terms interact, there are no word-boundary
// semantics.
type TagReplacement struct {
	Search  string `json:"search"`
	Replace string `json:"replace"`
}

// TagService mutates the comma-separated tags field of any enumerated entity
// kind with read-modify-write round trips.
//
// The platform returns tags joined with ", " but accepts them joined with
// ",". That delimiter asymmetry is deliberate and must not be normalized.
type TagService struct {
	rest TagAccessor
}

func NewTagService(rest TagAccessor) *TagService {
	return &TagService{rest: rest}
}

// Add appends tags to the entity without deduplication and returns the
// written tag string.
func (s *TagService) Add(ctx context.Context, et EntityType, id int64, tagsToAdd []string) (string, error) {
	existing, err := s.rest.EntityTags(ctx, et, id)
	if err != nil {
		return "", err
	}

	added := strings.Join(tagsToAdd, ", ")
	final := added
	if existing != "" {
		// no space after the comma on this branch
		final = existing + "," + added
	}

	if err := s.rest.UpdateEntityTags(ctx, et, id, final); err != nil {
		return "", err
	}
	return final, nil
}

// Remove drops every existing tag whose trimmed value exactly equals one of
// tagsToRemove (case sensitive) and returns the written tag string.
func (s *TagService) Remove(ctx context.Context, et EntityType, id int64, tagsToRemove []string) (string, error) {
	existing, err := s.rest.EntityTags(ctx, et, id)
	if err != nil {
		return "", err
	}

	var remaining []string
	for _, present := range strings.Split(existing, ", ") {
		drop := false
		for _, candidate := range tagsToRemove {
			if candidate == strings.TrimSpace(present) {
				drop = true
				break
			}
		}
		if !drop {
			remaining = append(remaining, present)
		}
	}

	final := strings.Join(remaining, ",")
	if err := s.rest.UpdateEntityTags(ctx, et, id, final); err != nil {
		return "", err
	}
	return final, nil
}

// Replace applies each pair as a literal substring substitution over the raw
// tag string and returns the written result.
func (s *TagService) Replace(ctx context.Context, et EntityType, id int64, pairs []TagReplacement) (string, error) {
	existing, err := s.rest.EntityTags(ctx, et, id)
	if err != nil {
		return "", err
	}

	for _, pair := range pairs {
		existing = strings.ReplaceAll(existing, pair.Search, pair.Replace)
	}

	if err := s.rest.UpdateEntityTags(ctx, et, id, existing); err != nil {
		return "", err
	}
	return existing, nil
}

// SplitTagArg normalizes a tag argument that may arrive as a comma-joined
// string into a sequence.
func SplitTagArg(raw string) []string {
	if raw == "" {
		return nil
	}
	return strings.Split(raw, ",")
}
