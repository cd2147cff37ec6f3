package repository

import (
	"context"
	"errors"
	"sync"
	"testing"

	"medtrack/internal/domain"
	"medtrack/internal/kvstore"
)

func TestMedicationStore_SeedOnFirstRead(t *testing.T) {
	ctx := context.Background()
	kv := kvstore.NewMemoryStore()
	seed := []domain.Medication{{ID: "m1", Name: "Losartana", Active: true}}
	store := NewMedicationStore(kv, seed)

	list, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].ID != "m1" {
		t.Fatalf("expected seed, got %+v", list)
	}

	// seed persisted, a delete must stick
	if err := store.Delete(ctx, "m1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	list, _ = store.List(ctx)
	if len(list) != 0 {
		t.Fatalf("expected empty list after delete, got %d", len(list))
	}
}

func TestMedicationStore_CRUD(t *testing.T) {
	ctx := context.Background()
	store := NewMedicationStore(kvstore.NewMemoryStore(), nil)

	m := domain.Medication{ID: "a", Name: "A", Stock: 10, Active: true}
	if err := store.Create(ctx, &m); err != nil {
		t.Fatalf("create: %v", err)
	}
	got, err := store.GetByID(ctx, "a")
	if err != nil || got.Name != "A" {
		t.Fatalf("get: %v", err)
	}

	m.Name = "A+"
	if err := store.Update(ctx, &m); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ = store.GetByID(ctx, "a")
	if got.Name != "A+" {
		t.Fatalf("not updated: %q", got.Name)
	}

	if err := store.Update(ctx, &domain.Medication{ID: "zzz"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found on update, got %v", err)
	}
	if err := store.Delete(ctx, "zzz"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found on delete, got %v", err)
	}
	if err := store.Delete(ctx, "a"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.GetByID(ctx, "a"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found")
	}
}

func TestMedicationStore_ConcurrentModifyKeepsEveryUpdate(t *testing.T) {
	ctx := context.Background()
	store := NewMedicationStore(kvstore.NewMemoryStore(), nil)
	if err := store.Create(ctx, &domain.Medication{ID: "a", Stock: 100}); err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Modify(ctx, "a", func(m *domain.Medication) error {
				m.Stock--
				return nil
			})
			if err != nil {
				t.Errorf("modify: %v", err)
			}
		}()
	}
	wg.Wait()

	got, _ := store.GetByID(ctx, "a")
	if got.Stock != 60 {
		t.Fatalf("stock expected 60, got %d", got.Stock)
	}
}

func TestMedicationStore_ModifyErrorDoesNotWrite(t *testing.T) {
	ctx := context.Background()
	store := NewMedicationStore(kvstore.NewMemoryStore(), nil)
	_ = store.Create(ctx, &domain.Medication{ID: "a", Stock: 3})

	boom := errors.New("boom")
	_, err := store.Modify(ctx, "a", func(m *domain.Medication) error {
		m.Stock = 0
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	got, _ := store.GetByID(ctx, "a")
	if got.Stock != 3 {
		t.Fatalf("stock changed on failed modify: %d", got.Stock)
	}
}

func TestOrderStore_PrependAndModify(t *testing.T) {
	ctx := context.Background()
	store := NewOrderStore(kvstore.NewMemoryStore())

	list, err := store.List(ctx)
	if err != nil || len(list) != 0 {
		t.Fatalf("expected empty ledger: %v %v", list, err)
	}

	for _, id := range []string{"o1", "o2"} {
		o := domain.Order{ID: id, Status: domain.OrderStatusPending}
		if err := store.Create(ctx, &o); err != nil {
			t.Fatalf("create %s: %v", id, err)
		}
	}
	list, _ = store.List(ctx)
	if len(list) != 2 || list[0].ID != "o2" {
		t.Fatalf("expected most recent first, got %+v", list)
	}

	o, err := store.Modify(ctx, "o1", func(o *domain.Order) error {
		o.Status = domain.OrderStatusShipped
		return nil
	})
	if err != nil || o.Status != domain.OrderStatusShipped {
		t.Fatalf("modify: %v", err)
	}
	if _, err := store.Modify(ctx, "nope", func(*domain.Order) error { return nil }); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCartStore_ModifyAndClear(t *testing.T) {
	ctx := context.Background()
	store := NewCartStore(kvstore.NewMemoryStore())

	items, err := store.Modify(ctx, func(items []domain.CartItem) ([]domain.CartItem, error) {
		return append(items, domain.CartItem{ProductID: "p1", Quantity: 1, Price: 10}), nil
	})
	if err != nil || len(items) != 1 {
		t.Fatalf("modify: %v %v", items, err)
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	items, _ = store.Items(ctx)
	if items == nil || len(items) != 0 {
		t.Fatalf("expected empty non-nil cart, got %#v", items)
	}
}

func TestUserStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewUserStore(kvstore.NewMemoryStore())

	if _, err := store.Get(ctx); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := store.Modify(ctx, func(*domain.User) error { return nil }); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found on modify, got %v", err)
	}
	if err := store.Save(ctx, &domain.User{ID: "user-1", Name: "João"}); err != nil {
		t.Fatal(err)
	}
	u, err := store.Modify(ctx, func(u *domain.User) error {
		u.Address = "Rua X"
		return nil
	})
	if err != nil || u.Address != "Rua X" {
		t.Fatalf("modify: %v", err)
	}
	if err := store.Remove(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Get(ctx); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found after remove")
	}
}

func TestNotificationMappingStore(t *testing.T) {
	ctx := context.Background()
	store := NewNotificationMappingStore(kvstore.NewMemoryStore())

	if err := store.Set(ctx, "m1", []string{"t1", "t2"}); err != nil {
		t.Fatal(err)
	}
	if err := store.Set(ctx, "m2", []string{"t3"}); err != nil {
		t.Fatal(err)
	}
	ids, _ := store.IDs(ctx, "m1")
	if len(ids) != 2 {
		t.Fatalf("expected 2 ids, got %v", ids)
	}

	// empty list drops the entry
	if err := store.Set(ctx, "m1", nil); err != nil {
		t.Fatal(err)
	}
	all, _ := store.All(ctx)
	if _, ok := all["m1"]; ok {
		t.Fatalf("stale entry for m1 left: %v", all)
	}
	if len(all["m2"]) != 1 {
		t.Fatalf("m2 lost: %v", all)
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatal(err)
	}
	all, _ = store.All(ctx)
	if len(all) != 0 {
		t.Fatalf("expected empty mapping, got %v", all)
	}
}
