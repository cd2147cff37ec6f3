package repository

import (
	"context"

	"medtrack/internal/domain"
	"medtrack/internal/kvstore"
)

// UserStore текущий пользователь под ключом @user
type UserStore struct {
	c *collection[*domain.User]
}

func NewUserStore(store kvstore.Store) *UserStore {
	return &UserStore{c: newCollection[*domain.User](store, kvstore.KeyUser)}
}

var _ UserRepository = (*UserStore)(nil)

func (s *UserStore) Get(ctx context.Context) (*domain.User, error) {
	u, found, err := s.c.read(ctx)
	if err != nil {
		return nil, err
	}
	if !found || u == nil {
		return nil, ErrNotFound
	}
	return u, nil
}

func (s *UserStore) Save(ctx context.Context, u *domain.User) error {
	cp := *u
	_, err := s.c.mutate(ctx, func(*domain.User, bool) (*domain.User, error) {
		return &cp, nil
	})
	return err
}

func (s *UserStore) Remove(ctx context.Context) error {
	return s.c.remove(ctx)
}

func (s *UserStore) Modify(ctx context.Context, fn func(u *domain.User) error) (*domain.User, error) {
	return s.c.mutate(ctx, func(cur *domain.User, found bool) (*domain.User, error) {
		if !found || cur == nil {
			return nil, ErrNotFound
		}
		if err := fn(cur); err != nil {
			return nil, err
		}
		return cur, nil
	})
}
