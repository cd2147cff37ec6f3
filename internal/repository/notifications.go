package repository

import (
	"context"

	"medtrack/internal/kvstore"
)

// NotificationMappingStore соответствие лекарство -> триггеры под @notification_mapping
type NotificationMappingStore struct {
	c *collection[map[string][]string]
}

func NewNotificationMappingStore(store kvstore.Store) *NotificationMappingStore {
	return &NotificationMappingStore{c: newCollection[map[string][]string](store, kvstore.KeyNotificationMapping)}
}

var _ NotificationMappingRepository = (*NotificationMappingStore)(nil)

func (s *NotificationMappingStore) IDs(ctx context.Context, medicationID string) ([]string, error) {
	m, _, err := s.c.read(ctx)
	if err != nil {
		return nil, err
	}
	ids := m[medicationID]
	out := make([]string, len(ids))
	copy(out, ids)
	return out, nil
}

func (s *NotificationMappingStore) Set(ctx context.Context, medicationID string, ids []string) error {
	_, err := s.c.mutate(ctx, func(cur map[string][]string, _ bool) (map[string][]string, error) {
		if cur == nil {
			cur = make(map[string][]string)
		}
		if len(ids) == 0 {
			delete(cur, medicationID)
			return cur, nil
		}
		cp := make([]string, len(ids))
		copy(cp, ids)
		cur[medicationID] = cp
		return cur, nil
	})
	return err
}

func (s *NotificationMappingStore) All(ctx context.Context) (map[string][]string, error) {
	m, _, err := s.c.read(ctx)
	if err != nil {
		return nil, err
	}
	if m == nil {
		m = make(map[string][]string)
	}
	return m, nil
}

func (s *NotificationMappingStore) Clear(ctx context.Context) error {
	return s.c.remove(ctx)
}
