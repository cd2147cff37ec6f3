package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"medtrack/internal/domain"
)

var ErrEmptyCart = errors.New("cart is empty")

// CheckoutService оформление заказа из корзины. Оплата не проводится, запас не списывается.
// Шаги не транзакционны: при ошибке записи уже выполненные шаги остаются.
type CheckoutService struct {
	users  *UserService
	cart   *CartService
	orders *OrderService
	log    *slog.Logger
}

func NewCheckoutService(users *UserService, cart *CartService, orders *OrderService, log *slog.Logger) *CheckoutService {
	if log == nil {
		log = slog.Default()
	}
	return &CheckoutService{users: users, cart: cart, orders: orders, log: log.With("component", "checkout")}
}

// PlaceOrder пустой адрес заменяется адресом пользователя
func (s *CheckoutService) PlaceOrder(ctx context.Context, address string) (*domain.Order, error) {
	user, err := s.users.Current(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotSignedIn
	}

	address = strings.TrimSpace(address)
	if address == "" {
		address = user.Address
	}
	if address == "" {
		return nil, invalidInputf("shipping address is required")
	}

	items, err := s.cart.Items(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	lines := make([]domain.OrderItem, 0, len(items))
	for _, it := range items {
		lines = append(lines, domain.OrderItem{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			Price:       it.Price,
		})
	}

	order, err := s.orders.CreateOrder(ctx, user.ID, lines, address)
	if err != nil {
		return nil, err
	}
	// order is already stored, clear failure is only logged
	if err := s.cart.Clear(ctx); err != nil {
		s.log.WarnContext(ctx, "failed to clear cart", "order_id", order.ID, "error", err)
	}
	if _, err := s.users.AddSavedAddress(ctx, address); err != nil {
		s.log.WarnContext(ctx, "failed to save address", "order_id", order.ID, "error", err)
	}
	return order, nil
}
