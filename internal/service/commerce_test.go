package service

import (
	"context"
	"errors"
	"testing"

	"medtrack/internal/domain"
	"medtrack/internal/kvstore"
	"medtrack/internal/logger"
	"medtrack/internal/repository"
)

func product(id string, price float64) domain.PharmacyProduct {
	return domain.PharmacyProduct{ID: id, Name: "Produto " + id, Price: price, InStock: true}
}

func TestCartMergeAndTotals(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	if _, err := f.cart.Add(ctx, product("a", 10.10), 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := f.cart.Add(ctx, product("b", 0.2), 3); err != nil {
		t.Fatalf("add: %v", err)
	}
	// price snapshot is kept from the first add
	sum, err := f.cart.Add(ctx, product("a", 99), 1)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(sum.Items) != 2 || sum.Items[0].Quantity != 3 || sum.Items[0].Price != 10.10 {
		t.Fatalf("merge failed: %+v", sum.Items)
	}
	if sum.Total != 30.90 {
		t.Fatalf("expected total 30.90, got %v", sum.Total)
	}
	if sum.ItemCount != 6 {
		t.Fatalf("expected 6 units, got %d", sum.ItemCount)
	}
	total, _ := f.cart.Total(ctx)
	if total != sum.Total {
		t.Fatalf("total mismatch %v != %v", total, sum.Total)
	}
	if n, _ := f.cart.ItemCount(ctx); n != 6 {
		t.Fatalf("item count %d", n)
	}
	if _, err := f.cart.Add(ctx, product("c", 1), 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestCartUpdateQuantityZeroRemoves(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	_, _ = f.cart.Add(ctx, product("a", 5), 1)
	_, _ = f.cart.Add(ctx, product("b", 5), 1)

	sum, err := f.cart.UpdateQuantity(ctx, "a", 4)
	if err != nil || sum.Items[0].Quantity != 4 {
		t.Fatalf("update quantity: %+v %v", sum, err)
	}
	sum, err = f.cart.UpdateQuantity(ctx, "a", 0)
	if err != nil {
		t.Fatalf("update quantity 0: %v", err)
	}
	if len(sum.Items) != 1 || sum.Items[0].ProductID != "b" {
		t.Fatalf("expected only b, got %+v", sum.Items)
	}
	sum, _ = f.cart.Remove(ctx, "missing")
	if len(sum.Items) != 1 {
		t.Fatalf("remove of missing changed cart")
	}
	if err := f.cart.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	sum, _ = f.cart.Summary(ctx)
	if len(sum.Items) != 0 || sum.Total != 0 || sum.ItemCount != 0 {
		t.Fatalf("cart not empty: %+v", sum)
	}
}

func TestCreateOrder(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	first, err := f.orders.CreateOrder(ctx, "user-1", []domain.OrderItem{{ProductID: "p2", ProductName: "Dipirona", Quantity: 1, Price: 5}}, "Rua A, 1")
	if err != nil {
		t.Fatalf("create first: %v", err)
	}
	o, err := f.orders.CreateOrder(ctx, "user-1", []domain.OrderItem{{ProductID: "p1", ProductName: "Losartana", Quantity: 2, Price: 10}}, "Rua B, 2")
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if o.Total != 20 || o.Status != domain.OrderStatusPending || o.ID == "" {
		t.Fatalf("unexpected order: %+v", o)
	}
	list, _ := f.orders.List(ctx)
	if len(list) != 2 || list[0].ID != o.ID || list[1].ID != first.ID {
		t.Fatalf("expected newest first: %+v", list)
	}

	bad := [][]domain.OrderItem{
		nil,
		{{ProductID: "p1", Quantity: 0, Price: 1}},
		{{ProductID: "p1", Quantity: 1, Price: -1}},
	}
	for _, items := range bad {
		if _, err := f.orders.CreateOrder(ctx, "user-1", items, "Rua"); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected invalid input for %+v, got %v", items, err)
		}
	}
	if _, err := f.orders.CreateOrder(ctx, "", list[0].Items, "Rua"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for empty user, got %v", err)
	}
}

func TestUpdateOrderStatus(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	o, _ := f.orders.CreateOrder(ctx, "user-1", []domain.OrderItem{{ProductID: "p1", Quantity: 1, Price: 10}}, "Rua")

	got, err := f.orders.UpdateStatus(ctx, o.ID, domain.OrderStatusShipped)
	if err != nil || got.Status != domain.OrderStatusShipped {
		t.Fatalf("ship: %+v %v", got, err)
	}
	if got.Total != o.Total || len(got.Items) != 1 {
		t.Fatalf("fields other than status changed")
	}
	if _, err := f.orders.UpdateStatus(ctx, o.ID, "lost"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if _, err := f.orders.UpdateStatus(ctx, o.ID, domain.OrderStatusDelivered); err != nil {
		t.Fatalf("deliver: %v", err)
	}
	if _, err := f.orders.CancelOrder(ctx, o.ID); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected invalid state, got %v", err)
	}
	if got, err := f.orders.UpdateStatus(ctx, "missing", domain.OrderStatusShipped); got != nil || err != nil {
		t.Fatalf("expected no-op, got %v %v", got, err)
	}
}

func TestLowStockWithDeliveryStatus(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	entries, err := f.recon.LowStockWithDeliveryStatus(ctx)
	if err != nil {
		t.Fatalf("low stock: %v", err)
	}
	if len(entries) != 1 || entries[0].Medication.ID != "med-1" || entries[0].IsOnTheWay {
		t.Fatalf("unexpected entries: %+v", entries)
	}

	o, _ := f.orders.CreateOrder(ctx, "user-1", []domain.OrderItem{{ProductID: "p1", ProductName: "Losartana 50mg", Quantity: 1, Price: 22.9}}, "Rua")
	if _, err := f.orders.UpdateStatus(ctx, o.ID, domain.OrderStatusShipped); err != nil {
		t.Fatalf("ship: %v", err)
	}

	entries, _ = f.recon.LowStockWithDeliveryStatus(ctx)
	if len(entries) != 1 || !entries[0].IsOnTheWay {
		t.Fatalf("expected on the way: %+v", entries)
	}
	needs, _ := f.recon.NeedsPurchase(ctx)
	if len(needs) != 0 {
		t.Fatalf("expected nothing to buy, got %+v", needs)
	}

	// delivered orders no longer count
	if _, err := f.orders.UpdateStatus(ctx, o.ID, domain.OrderStatusDelivered); err != nil {
		t.Fatalf("deliver: %v", err)
	}
	entries, _ = f.recon.LowStockWithDeliveryStatus(ctx)
	if entries[0].IsOnTheWay {
		t.Fatalf("delivered order should not be on the way")
	}
}

func TestAddMissingToCart(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	added, sum, err := f.recon.AddMissingToCart(ctx)
	if err != nil {
		t.Fatalf("add missing: %v", err)
	}
	if len(added) != 1 || added[0].ID != "p1" {
		t.Fatalf("unexpected products: %+v", added)
	}
	if len(sum.Items) != 1 || sum.Items[0].Quantity != 1 || sum.Items[0].Price != 22.90 {
		t.Fatalf("unexpected cart: %+v", sum.Items)
	}

	p, err := f.recon.ProductForMedication(ctx, "med-2")
	if err != nil || p == nil || p.ID != "p5" {
		t.Fatalf("product for med-2: %+v %v", p, err)
	}
	if p, err := f.recon.ProductForMedication(ctx, "missing"); p != nil || err != nil {
		t.Fatalf("expected nil, got %v %v", p, err)
	}
}

func TestAddMissingToCartNoMatch(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	m := newMed()
	m.Name = "Xarope Caseiro"
	m.Stock = 0
	if _, err := f.meds.Add(ctx, m); err != nil {
		t.Fatalf("add: %v", err)
	}
	_, _ = f.meds.Restock(ctx, "med-1", 50)

	added, sum, err := f.recon.AddMissingToCart(ctx)
	if err != nil {
		t.Fatalf("add missing: %v", err)
	}
	if len(added) != 0 || len(sum.Items) != 0 {
		t.Fatalf("expected nothing added: %+v %+v", added, sum)
	}
}

func TestCheckout(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	if _, err := f.checkout.PlaceOrder(ctx, "Rua A"); !errors.Is(err, ErrNotSignedIn) {
		t.Fatalf("expected not signed in, got %v", err)
	}
	if _, err := f.users.SignIn(ctx, "joao@example.com", "secret"); err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if _, err := f.checkout.PlaceOrder(ctx, "Rua A"); !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected empty cart, got %v", err)
	}

	_, _ = f.cart.Add(ctx, product("p1", 22.90), 2)
	if _, err := f.checkout.PlaceOrder(ctx, " "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input without address, got %v", err)
	}

	o, err := f.checkout.PlaceOrder(ctx, "Rua A, 10")
	if err != nil {
		t.Fatalf("place order: %v", err)
	}
	if o.UserID != "user-1" || o.Total != 45.80 || o.ShippingAddress != "Rua A, 10" {
		t.Fatalf("unexpected order: %+v", o)
	}
	items, _ := f.cart.Items(ctx)
	if len(items) != 0 {
		t.Fatalf("cart not cleared")
	}
	addrs, _ := f.users.SavedAddresses(ctx)
	if len(addrs) != 1 || addrs[0] != "Rua A, 10" {
		t.Fatalf("address not saved: %v", addrs)
	}
	m, _ := f.meds.GetByID(ctx, "med-1")
	if m.Stock != 3 {
		t.Fatalf("checkout must not touch stock, got %d", m.Stock)
	}
}

func TestCheckoutFallsBackToUserAddress(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	_, _ = f.users.SignUp(ctx, "Maria", "maria@example.com", "pw")
	_, _ = f.users.UpdateAddress(ctx, "Av. Paulista, 1000")
	_, _ = f.cart.Add(ctx, product("p3", 12.90), 1)

	o, err := f.checkout.PlaceOrder(ctx, "")
	if err != nil {
		t.Fatalf("place order: %v", err)
	}
	if o.ShippingAddress != "Av. Paulista, 1000" {
		t.Fatalf("unexpected address %q", o.ShippingAddress)
	}
}

func TestUserSession(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	if u, err := f.users.Current(ctx); u != nil || err != nil {
		t.Fatalf("expected no user, got %v %v", u, err)
	}
	s, err := f.users.SignUp(ctx, "Maria", "maria@example.com", "pw")
	if err != nil {
		t.Fatalf("sign up: %v", err)
	}
	if len(s.User.ID) <= len("user-") || s.User.ID[:5] != "user-" {
		t.Fatalf("unexpected id %q", s.User.ID)
	}
	u, err := f.users.Authenticate(ctx, s.Token)
	if err != nil || u.ID != s.User.ID {
		t.Fatalf("authenticate: %v %v", u, err)
	}
	if _, err := f.users.Authenticate(ctx, "garbage"); !errors.Is(err, ErrNotSignedIn) {
		t.Fatalf("expected not signed in, got %v", err)
	}

	_, _ = f.users.AddSavedAddress(ctx, "Rua 1")
	_, _ = f.users.AddSavedAddress(ctx, "Rua 1")
	_, _ = f.users.AddSavedAddress(ctx, "Rua 2")
	addrs, _ := f.users.SavedAddresses(ctx)
	if len(addrs) != 2 || addrs[0] != "Rua 1" || addrs[1] != "Rua 2" {
		t.Fatalf("unexpected addresses: %v", addrs)
	}

	phone := "11 99999-0000"
	u, err = f.users.Update(ctx, UserPatch{Phone: &phone})
	if err != nil || u.Phone != phone || u.Name != "Maria" {
		t.Fatalf("update: %+v %v", u, err)
	}

	if err := f.users.SignOut(ctx); err != nil {
		t.Fatalf("sign out: %v", err)
	}
	if _, err := f.users.Authenticate(ctx, s.Token); !errors.Is(err, ErrNotSignedIn) {
		t.Fatalf("token must not outlive the session, got %v", err)
	}
	if _, err := f.users.UpdateAddress(ctx, "Rua 3"); !errors.Is(err, ErrNotSignedIn) {
		t.Fatalf("expected not signed in, got %v", err)
	}
}

func TestProductServiceList(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	all, _ := f.products.List(ctx, ProductFilter{})
	if len(all) != 9 {
		t.Fatalf("expected 9 products, got %d", len(all))
	}
	got, _ := f.products.List(ctx, ProductFilter{Category: "Analgésicos", Query: "para"})
	if len(got) != 1 || got[0].ID != "p3" {
		t.Fatalf("unexpected filter result: %+v", got)
	}
	if p, err := f.products.GetByID(ctx, "nope"); p != nil || err != nil {
		t.Fatalf("expected nil, got %v %v", p, err)
	}
	info, err := f.products.LookupBarcode(ctx, "7891010101010")
	if err != nil || info == nil || info.Name != "Dipirona Sódica" {
		t.Fatalf("barcode: %+v %v", info, err)
	}
}

type failingClearCart struct {
	repository.CartRepository
}

func (failingClearCart) Clear(context.Context) error {
	return errors.New("store unavailable")
}

func TestCheckoutKeepsOrderWhenCartClearFails(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	store := kvstore.NewMemoryStore()
	cart := NewCartService(failingClearCart{repository.NewCartStore(store)})
	checkout := NewCheckoutService(f.users, cart, f.orders, logger.Discard())

	_, _ = f.users.SignIn(ctx, "joao@example.com", "secret")
	_, _ = cart.Add(ctx, product("p1", 22.90), 1)

	o, err := checkout.PlaceOrder(ctx, "Rua A, 10")
	if err != nil {
		t.Fatalf("place order: %v", err)
	}
	if o == nil || o.Total != 22.90 {
		t.Fatalf("unexpected order: %+v", o)
	}
	list, _ := f.orders.List(ctx)
	if len(list) != 1 || list[0].ID != o.ID {
		t.Fatalf("order not stored: %+v", list)
	}
	addrs, _ := f.users.SavedAddresses(ctx)
	if len(addrs) != 1 {
		t.Fatalf("address not saved after clear failure: %v", addrs)
	}
}
