package service

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"medtrack/internal/catalog"
	"medtrack/internal/kvstore"
	"medtrack/internal/reminder"
	"medtrack/internal/repository"
)

type fakeReminders struct {
	mu        sync.Mutex
	scheduled map[string][]string
	cancelled []string
	err       error
}

func newFakeReminders() *fakeReminders {
	return &fakeReminders{scheduled: map[string][]string{}}
}

func (f *fakeReminders) ScheduleForMedication(_ context.Context, t reminder.Target) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.scheduled[t.ID] = append([]string(nil), t.Times...)
	return t.Times, nil
}

func (f *fakeReminders) CancelForMedication(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.scheduled, id)
	f.cancelled = append(f.cancelled, id)
	return f.err
}

type fixture struct {
	meds      *MedicationService
	orders    *OrderService
	cart      *CartService
	users     *UserService
	checkout  *CheckoutService
	recon     *ReconciliationService
	products  *ProductService
	reminders *fakeReminders
}

func setup(t *testing.T) *fixture {
	t.Helper()
	store := kvstore.NewMemoryStore()
	cat := catalog.Default()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	f := &fixture{reminders: newFakeReminders()}
	f.meds = NewMedicationService(repository.NewMedicationStore(store, cat.Medications()), f.reminders, log)
	f.orders = NewOrderService(repository.NewOrderStore(store))
	f.cart = NewCartService(repository.NewCartStore(store))
	f.users = NewUserService(repository.NewUserStore(store), NewTokens("test-secret", time.Hour))
	f.checkout = NewCheckoutService(f.users, f.cart, f.orders, log)
	f.recon = NewReconciliationService(f.meds, cat, f.orders, f.cart)
	f.products = NewProductService(cat, cat)
	return f
}
