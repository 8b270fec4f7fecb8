package kv

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mamadbah2/herdbook/internal/domain/models"
)

// Collection is a typed view over the sequence stored under one key.
type Collection[T any] struct {
	backend Backend
	key     string
	seed    []T
}

// NewCollection binds key on backend. seed is persisted the first time the key is read
// while absent; a present-but-empty sequence is never re-seeded.
func NewCollection[T any](backend Backend, key string, seed []T) *Collection[T] {
	return &Collection[T]{backend: backend, key: key, seed: seed}
}

// Key returns the store key this collection is bound to.
func (c *Collection[T]) Key() string { return c.key }

// Read returns the stored sequence, seeding it on first access. Every call returns
// freshly decoded values, so callers may mutate the result freely.
func (c *Collection[T]) Read(ctx context.Context) ([]T, error) {
	payload, found, err := c.backend.Get(ctx, c.key)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", c.key, err)
	}
	if !found {
		payload, err = encode(c.seed)
		if err != nil {
			return nil, fmt.Errorf("encode seed for %s: %w", c.key, err)
		}
		if err := c.backend.Put(ctx, c.key, payload); err != nil {
			return nil, fmt.Errorf("seed %s: %w", c.key, err)
		}
	}

	var items []T
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", models.ErrStoreCorrupt, c.key, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// Write replaces the stored sequence with items.
func (c *Collection[T]) Write(ctx context.Context, items []T) error {
	payload, err := encode(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.key, err)
	}
	if err := c.backend.Put(ctx, c.key, payload); err != nil {
		return fmt.Errorf("write %s: %w", c.key, err)
	}
	return nil
}

func encode[T any](items []T) ([]byte, error) {
	if items == nil {
		items = []T{}
	}
	return json.Marshal(items)
}
