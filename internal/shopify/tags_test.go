package shopify

import (
	"context"
	"testing"
)

// fakeTagStore implements TagAccessor over an in-memory tag string.
type fakeTagStore struct {
	tags    string
	written []string
	getErr  error
}

func (f *fakeTagStore) EntityTags(ctx context.Context, et EntityType, id int64) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	return f.tags, nil
}

func (f *fakeTagStore) UpdateEntityTags(ctx context.Context, et EntityType, id int64, tags string) error {
	f.tags = tags
	f.written = append(f.written, tags)
	return nil
}

func TestAddTagsToEmptyEntity(t *testing.T) {
	store := &fakeTagStore{tags: ""}
	svc := NewTagService(store)

	final, err := svc.Add(context.Background(), EntityProduct, 1, []string{"summer", "sale"})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if final != "summer, sale" {
		t.Errorf("expected %q, got %q", "summer, sale", final)
	}
}

func TestAddTagsToExistingEntity(t *testing.T) {
	store := &fakeTagStore{tags: "a"}
	svc := NewTagService(store)

	final, err := svc.Add(context.Background(), EntityProduct, 1, []string{"b"})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	// no space after the comma between existing and added tags
	if final != "a,b" {
		t.Errorf("expected %q, got %q", "a,b", final)
	}
}

func TestRemoveTags(t *testing.T) {
	store := &fakeTagStore{tags: "a, b, c"}
	svc := NewTagService(store)

	final, err := svc.Remove(context.Background(), EntityProduct, 1, []string{"b"})
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if final != "a,c" {
		t.Errorf("expected %q, got %q", "a,c", final)
	}
}

func TestRemoveTagsIsCaseSensitive(t *testing.T) {
	store := &fakeTagStore{tags: "Sale, sale"}
	svc := NewTagService(store)

	final, err := svc.Remove(context.Background(), EntityCustomer, 1, []string{"sale"})
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if final != "Sale" {
		t.Errorf("expected %q, got %q", "Sale", final)
	}
}

func TestReplaceTagsAppliesPairsInOrder(t *testing.T) {
	store := &fakeTagStore{tags: "old-summer, old-winter"}
	svc := NewTagService(store)

	final, err := svc.Replace(context.Background(), EntityProduct, 1, []TagReplacement{
		{Search: "old-", Replace: "new-"},
		{Search: "new-winter", Replace: "archived"},
	})
	if err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	if final != "new-summer, archived" {
		t.Errorf("expected %q, got %q", "new-summer, archived", final)
	}
}

func TestSplitTagArg(t *testing.T) {
	got := SplitTagArg("a,b, c")
	want := []string{"a", "b", " c"}
	if len(got) != len(want) {
		t.Fatalf("expected %d parts, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("part %d: expected %q, got %q", i, want[i], got[i])
		}
	}
	if SplitTagArg("") != nil {
		t.Error("expected nil for empty input")
	}
}
