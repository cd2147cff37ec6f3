package repository

import (
	"context"

	"medtrack/internal/domain"
	"medtrack/internal/kvstore"
)

// CartStore корзина под ключом @cart
type CartStore struct {
	c *collection[[]domain.CartItem]
}

func NewCartStore(store kvstore.Store) *CartStore {
	return &CartStore{c: newCollection[[]domain.CartItem](store, kvstore.KeyCart)}
}

var _ CartRepository = (*CartStore)(nil)

func (s *CartStore) Items(ctx context.Context) ([]domain.CartItem, error) {
	items, _, err := s.c.read(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.CartItem{}
	}
	return items, nil
}

func (s *CartStore) Modify(ctx context.Context, fn func(items []domain.CartItem) ([]domain.CartItem, error)) ([]domain.CartItem, error) {
	return s.c.mutate(ctx, func(cur []domain.CartItem, _ bool) ([]domain.CartItem, error) {
		next, err := fn(cur)
		if err != nil {
			return nil, err
		}
		if next == nil {
			next = []domain.CartItem{}
		}
		return next, nil
	})
}

// Clear сохраняет пустую корзину, а не удаляет ключ
func (s *CartStore) Clear(ctx context.Context) error {
	_, err := s.c.mutate(ctx, func([]domain.CartItem, bool) ([]domain.CartItem, error) {
		return []domain.CartItem{}, nil
	})
	return err
}
