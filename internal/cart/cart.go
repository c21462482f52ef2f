package cart

import (
	"context"
	"math"

	"github.com/angelmondragon/secondnest/internal/catalog"
	"github.com/angelmondragon/secondnest/internal/state"
)

// StateKey names the persisted cart entry.
const StateKey = "secondnest_cart"

// Line is a listing with the desired quantity. It persists as the listing's
// fields plus a quantity field.
type Line struct {
	catalog.Listing
	Quantity int `json:"quantity"`
}

// Cart is the read-mutate-write model over one persisted cart entry.
type Cart struct {
	store state.Store
}

// New binds a cart to a (usually session-scoped) state store.
func New(store state.Store) *Cart {
	return &Cart{store: store}
}

// Snapshot returns the current lines. It never contains duplicate ids or
// quantities below one, even when the persisted entry does.
func (c *Cart) Snapshot(ctx context.Context) ([]Line, error) {
	lines, err := state.Load(ctx, c.store, StateKey, []Line{})
	if err != nil {
		return nil, err
	}
	return normalize(lines), nil
}

// Add appends the listing with quantity one, or increments its existing line.
func (c *Cart) Add(ctx context.Context, listing catalog.Listing) ([]Line, error) {
	return c.mutate(ctx, func(lines []Line) []Line {
		for i := range lines {
			if lines[i].ID == listing.ID {
				lines[i].Quantity++
				return lines
			}
		}
		return append(lines, Line{Listing: listing, Quantity: 1})
	})
}

// Remove deletes the line for id. Unknown ids are a no-op.
func (c *Cart) Remove(ctx context.Context, id string) ([]Line, error) {
	return c.mutate(ctx, func(lines []Line) []Line {
		return removeLine(lines, id)
	})
}

// SetQuantity adjusts the line for id by delta. A result at or below zero removes the line;
// a sum past math.MaxInt saturates.
func (c *Cart) SetQuantity(ctx context.Context, id string, delta int) ([]Line, error) {
	return c.mutate(ctx, func(lines []Line) []Line {
		for i := range lines {
			if lines[i].ID != id {
				continue
			}
			next := addQuantity(lines[i].Quantity, delta)
			if next <= 0 {
				return removeLine(lines, id)
			}
			lines[i].Quantity = next
			return lines
		}
		return lines
	})
}

// Clear empties the cart.
func (c *Cart) Clear(ctx context.Context) error {
	return state.Save(ctx, c.store, StateKey, []Line{})
}

// ItemCount sums the quantities of every line.
func (c *Cart) ItemCount(ctx context.Context) (int, error) {
	lines, err := c.Snapshot(ctx)
	if err != nil {
		return 0, err
	}
	return CountItems(lines), nil
}

// CountItems sums line quantities.
func CountItems(lines []Line) int {
	total := 0
	for _, l := range lines {
		total += l.Quantity
	}
	return total
}

func (c *Cart) mutate(ctx context.Context, fn func([]Line) []Line) ([]Line, error) {
	lines, err := c.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	lines = fn(lines)
	if err := state.Save(ctx, c.store, StateKey, lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func removeLine(lines []Line, id string) []Line {
	out := lines[:0]
	for _, l := range lines {
		if l.ID != id {
			out = append(out, l)
		}
	}
	return out
}

// normalize merges duplicate ids into the first occurrence and drops lines with
// a quantity below one.
func normalize(lines []Line) []Line {
	out := make([]Line, 0, len(lines))
	index := make(map[string]int, len(lines))
	for _, l := range lines {
		if l.Quantity <= 0 || l.ID == "" {
			continue
		}
		if i, ok := index[l.ID]; ok {
			out[i].Quantity += l.Quantity
			continue
		}
		index[l.ID] = len(out)
		out = append(out, l)
	}
	return out
}

func addQuantity(quantity, delta int) int {
	if delta > 0 && quantity > math.MaxInt-delta {
		return math.MaxInt
	}
	return quantity + delta
}
