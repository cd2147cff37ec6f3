package repository

import (
	"context"
	"fmt"
	"sync"

	"medtrack/internal/kvstore"
)

// collection одна коллекция под одним ключом хранилища.
// Все изменения идут read-modify-write под mu, поэтому писатель всегда один.
type collection[T any] struct {
	mu    sync.Mutex
	store kvstore.Store
	key   string
}

func newCollection[T any](store kvstore.Store, key string) *collection[T] {
	return &collection[T]{store: store, key: key}
}

func (c *collection[T]) load(ctx context.Context) (T, bool, error) {
	var v T
	found, err := c.store.Get(ctx, c.key, &v)
	if err != nil {
		return v, false, fmt.Errorf("load %s: %w", c.key, err)
	}
	return v, found, nil
}

func (c *collection[T]) save(ctx context.Context, v T) error {
	if err := c.store.Set(ctx, c.key, v); err != nil {
		return fmt.Errorf("save %s: %w", c.key, err)
	}
	return nil
}

// read без блокировки записи: читатели видят последнее сохранённое состояние
func (c *collection[T]) read(ctx context.Context) (T, bool, error) {
	return c.load(ctx)
}

// mutate сохраняет значение, которое вернула fn; ошибка fn отменяет запись
func (c *collection[T]) mutate(ctx context.Context, fn func(cur T, found bool) (T, error)) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	cur, found, err := c.load(ctx)
	if err != nil {
		return cur, err
	}
	next, err := fn(cur, found)
	if err != nil {
		return cur, err
	}
	if err := c.save(ctx, next); err != nil {
		return cur, err
	}
	return next, nil
}

func (c *collection[T]) remove(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.store.Remove(ctx, c.key); err != nil {
		return fmt.Errorf("remove %s: %w", c.key, err)
	}
	return nil
}
