package repository

import (
	"context"

	"medtrack/internal/domain"
	"medtrack/internal/kvstore"
)

// MedicationStore лекарства под ключом @medications.
// При первом чтении пустого хранилища записывается seed.
type MedicationStore struct {
	c    *collection[[]domain.Medication]
	seed []domain.Medication
}

func NewMedicationStore(store kvstore.Store, seed []domain.Medication) *MedicationStore {
	return &MedicationStore{c: newCollection[[]domain.Medication](store, kvstore.KeyMedications), seed: seed}
}

var _ MedicationRepository = (*MedicationStore)(nil)

func (s *MedicationStore) seeded(cur []domain.Medication, found bool) []domain.Medication {
	if found {
		return cur
	}
	out := make([]domain.Medication, len(s.seed))
	copy(out, s.seed)
	return out
}

func (s *MedicationStore) List(ctx context.Context) ([]domain.Medication, error) {
	list, found, err := s.c.read(ctx)
	if err != nil {
		return nil, err
	}
	if found {
		return list, nil
	}
	// initialize with seed data
	return s.c.mutate(ctx, func(cur []domain.Medication, found bool) ([]domain.Medication, error) {
		return s.seeded(cur, found), nil
	})
}

func (s *MedicationStore) GetByID(ctx context.Context, id string) (*domain.Medication, error) {
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

func (s *MedicationStore) Create(ctx context.Context, m *domain.Medication) error {
	_, err := s.c.mutate(ctx, func(cur []domain.Medication, found bool) ([]domain.Medication, error) {
		return append(s.seeded(cur, found), *m), nil
	})
	return err
}

func (s *MedicationStore) Update(ctx context.Context, m *domain.Medication) error {
	_, err := s.Modify(ctx, m.ID, func(cur *domain.Medication) error {
		*cur = *m
		return nil
	})
	return err
}

func (s *MedicationStore) Delete(ctx context.Context, id string) error {
	_, err := s.c.mutate(ctx, func(cur []domain.Medication, found bool) ([]domain.Medication, error) {
		list := s.seeded(cur, found)
		out := make([]domain.Medication, 0, len(list))
		for _, m := range list {
			if m.ID != id {
				out = append(out, m)
			}
		}
		if len(out) == len(list) {
			return nil, ErrNotFound
		}
		return out, nil
	})
	return err
}

func (s *MedicationStore) Modify(ctx context.Context, id string, fn func(m *domain.Medication) error) (*domain.Medication, error) {
	var updated *domain.Medication
	_, err := s.c.mutate(ctx, func(cur []domain.Medication, found bool) ([]domain.Medication, error) {
		list := s.seeded(cur, found)
		for i := range list {
			if list[i].ID != id {
				continue
			}
			if err := fn(&list[i]); err != nil {
				return nil, err
			}
			cp := list[i]
			updated = &cp
			return list, nil
		}
		return nil, ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
