package collection

import (
	"context"
	"slices"
)

// InsertFunc makes one record durable.
type InsertFunc[T any] func(ctx context.Context, rec T) error

// Collection is an ordered in-memory sequence of records mirroring a table.
type Collection[T any] struct {
	items  []T
	insert InsertFunc[T]
}

// New creates a collection seeded with items (already durable) that
// persists new records through insert.
func New[T any](insert InsertFunc[T], items []T) *Collection[T] {
	return &Collection[T]{
		items:  slices.Clone(items),
		insert: insert,
	}
}

// All returns a copy of the records in their current order.
// Returns an empty slice (not nil) for an empty collection.
func (c *Collection[T]) All() []T {
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of records.
func (c *Collection[T]) Len() int {
	return len(c.items)
}

// Insert appends rec and writes it to the store.
// If the write fails the append is undone and the store error is returned,
// leaving the collection exactly as it was.
func (c *Collection[T]) Insert(ctx context.Context, rec T) error {
	c.items = append(c.items, rec)

	if err := c.insert(ctx, rec); err != nil {
		last := len(c.items) - 1
		var zero T
		c.items[last] = zero
		c.items = c.items[:last]
		return err
	}

	return nil
}

// removeFunc drops every record for which match returns true and reports
// how many were dropped. Relative order of the survivors is kept.
func (c *Collection[T]) removeFunc(match func(T) bool) int {
	before := len(c.items)
	c.items = slices.DeleteFunc(c.items, match)
	return before - len(c.items)
}

// sortStableFunc reorders records in place; equal records keep their order.
func (c *Collection[T]) sortStableFunc(compare func(a, b T) int) {
	slices.SortStableFunc(c.items, compare)
}
