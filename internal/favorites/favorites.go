package favorites

import (
	"context"
	"slices"

	"github.com/angelmondragon/secondnest/internal/catalog"
	"github.com/angelmondragon/secondnest/internal/state"
)

// StateKey names the persisted favorites entry.
const StateKey = "secondnest_favorites"

// Favorites is an ordered set of listing ids persisted under StateKey.
type Favorites struct {
	store state.Store
}

func New(store state.Store) *Favorites {
	return &Favorites{store: store}
}

// Snapshot returns the ids in the order they were favorited.
func (f *Favorites) Snapshot(ctx context.Context) ([]string, error) {
	ids, err := state.Load(ctx, f.store, StateKey, []string{})
	if err != nil {
		return nil, err
	}
	return dedupe(ids), nil
}

// Toggle adds id when absent and removes it when present. It reports whether
// id is a favorite afterwards.
func (f *Favorites) Toggle(ctx context.Context, id string) (bool, error) {
	ids, err := f.Snapshot(ctx)
	if err != nil {
		return false, err
	}

	favorited := false
	if idx := slices.Index(ids, id); idx >= 0 {
		ids = slices.Delete(ids, idx, idx+1)
	} else {
		ids = append(ids, id)
		favorited = true
	}

	if err := state.Save(ctx, f.store, StateKey, ids); err != nil {
		return false, err
	}
	return favorited, nil
}

// Contains reports whether id is a favorite.
func (f *Favorites) Contains(ctx context.Context, id string) (bool, error) {
	ids, err := f.Snapshot(ctx)
	if err != nil {
		return false, err
	}
	return slices.Contains(ids, id), nil
}

// Listings resolves favorites against the catalog in favorites order, skipping
// ids that are no longer listed.
func (f *Favorites) Listings(ctx context.Context, store catalog.Store) ([]catalog.Listing, error) {
	ids, err := f.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]catalog.Listing, 0, len(ids))
	for _, id := range ids {
		if l, ok := store.Get(id); ok {
			out = append(out, l)
		}
	}
	return out, nil
}

func dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
