package storage

import (
	"context"
	"errors"
	"fmt"
)

// Record is anything stored in a collection.
type Record interface {
	RecordID() string
}

// Collection is a JSON array of records under one key. Every mutation loads
// the whole array, changes it and saves it back; callers that write
// concurrently must serialize themselves.
type Collection[T Record] struct {
	store Store
	key   Key
}

func NewCollection[T Record](store Store, key Key) *Collection[T] {
	return &Collection[T]{store: store, key: key}
}

// All returns every record in stored order. A missing key is an empty
// collection.
func (c *Collection[T]) All(ctx context.Context) ([]T, error) {
	var items []T
	err := LoadJSON(ctx, c.store, c.key, &items)
	if errors.Is(err, ErrNotFound) {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", c.key, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// Get returns the record with the given ID or ErrNotFound.
func (c *Collection[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	items, err := c.All(ctx)
	if err != nil {
		return zero, err
	}
	for _, item := range items {
		if item.RecordID() == id {
			return item, nil
		}
	}
	return zero, ErrNotFound
}

// Put replaces the record with the same ID in place, or appends it.
func (c *Collection[T]) Put(ctx context.Context, item T) error {
	items, err := c.All(ctx)
	if err != nil {
		return err
	}

	replaced := false
	for i := range items {
		if items[i].RecordID() == item.RecordID() {
			items[i] = item
			replaced = true
			break
		}
	}
	if !replaced {
		items = append(items, item)
	}
	return c.Replace(ctx, items)
}

// Remove deletes the record with the given ID or returns ErrNotFound.
func (c *Collection[T]) Remove(ctx context.Context, id string) error {
	items, err := c.All(ctx)
	if err != nil {
		return err
	}

	out := items[:0]
	found := false
	for _, item := range items {
		if item.RecordID() == id {
			found = true
			continue
		}
		out = append(out, item)
	}
	if !found {
		return ErrNotFound
	}
	return c.Replace(ctx, out)
}

// Replace overwrites the whole collection.
func (c *Collection[T]) Replace(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	if err := SaveJSON(ctx, c.store, c.key, items); err != nil {
		return fmt.Errorf("save %s: %w", c.key, err)
	}
	return nil
}
