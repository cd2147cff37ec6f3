package repository

import (
	"context"

	"medtrack/internal/domain"
	"medtrack/internal/kvstore"
)

// OrderStore журнал заказов под ключом @orders, новые в начале
type OrderStore struct {
	c *collection[[]domain.Order]
}

func NewOrderStore(store kvstore.Store) *OrderStore {
	return &OrderStore{c: newCollection[[]domain.Order](store, kvstore.KeyOrders)}
}

var _ OrderRepository = (*OrderStore)(nil)

func (s *OrderStore) List(ctx context.Context) ([]domain.Order, error) {
	list, _, err := s.c.read(ctx)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []domain.Order{}
	}
	return list, nil
}

func (s *OrderStore) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	list, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].ID == id {
			cp := list[i]
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (s *OrderStore) Create(ctx context.Context, o *domain.Order) error {
	_, err := s.c.mutate(ctx, func(cur []domain.Order, _ bool) ([]domain.Order, error) {
		out := make([]domain.Order, 0, len(cur)+1)
		out = append(out, *o)
		return append(out, cur...), nil
	})
	return err
}

func (s *OrderStore) Modify(ctx context.Context, id string, fn func(o *domain.Order) error) (*domain.Order, error) {
	var updated *domain.Order
	_, err := s.c.mutate(ctx, func(cur []domain.Order, _ bool) ([]domain.Order, error) {
		for i := range cur {
			if cur[i].ID != id {
				continue
			}
			if err := fn(&cur[i]); err != nil {
				return nil, err
			}
			cp := cur[i]
			updated = &cp
			return cur, nil
		}
		return nil, ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
