package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"medtrack/internal/domain"
	"medtrack/internal/repository"
)

var ErrInvalidState = errors.New("invalid state")

// OrderService журнал заказов: создание и смена статуса.
// Создание заказа не меняет запас лекарств.
type OrderService struct {
	orders repository.OrderRepository
	now    func() time.Time
}

func NewOrderService(orders repository.OrderRepository) *OrderService {
	return &OrderService{orders: orders, now: time.Now}
}

// List заказы, новые первыми
func (s *OrderService) List(ctx context.Context) ([]domain.Order, error) {
	return s.orders.List(ctx)
}

// GetOrder nil, если заказа нет
func (s *OrderService) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	o, err := s.orders.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return o, err
}

// CreateOrder итог считается один раз при создании, статус pending
func (s *OrderService) CreateOrder(ctx context.Context, userID string, items []domain.OrderItem, shippingAddress string) (*domain.Order, error) {
	userID = strings.TrimSpace(userID)
	shippingAddress = strings.TrimSpace(shippingAddress)
	if userID == "" || shippingAddress == "" || len(items) == 0 {
		return nil, ErrInvalidInput
	}
	// validate items
	for _, it := range items {
		if it.ProductID == "" || it.Quantity <= 0 || it.Price < 0 {
			return nil, ErrInvalidInput
		}
	}

	o := domain.Order{
		ID:              uuid.NewString(),
		UserID:          userID,
		Items:           append([]domain.OrderItem(nil), items...),
		Total:           orderTotal(items),
		Status:          domain.OrderStatusPending,
		Date:            s.now().UTC(),
		ShippingAddress: shippingAddress,
	}
	if err := s.orders.Create(ctx, &o); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return &o, nil
}

// UpdateStatus меняет только статус. Из delivered и cancelled перейти нельзя.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	if id == "" || !status.Valid() {
		return nil, ErrInvalidInput
	}
	o, err := s.orders.Modify(ctx, id, func(o *domain.Order) error {
		if o.Status == status {
			return nil
		}
		if !o.Status.Open() {
			return fmt.Errorf("%w: order %s is %s", ErrInvalidState, o.ID, o.Status)
		}
		o.Status = status
		return nil
	})
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return o, err
}

// CancelOrder отмена из любого незавершённого статуса
func (s *OrderService) CancelOrder(ctx context.Context, id string) (*domain.Order, error) {
	return s.UpdateStatus(ctx, id, domain.OrderStatusCancelled)
}

// OpenOrders заказы в статусах pending, processing, shipped
func (s *OrderService) OpenOrders(ctx context.Context) ([]domain.Order, error) {
	list, err := s.orders.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Order, 0, len(list))
	for _, o := range list {
		if o.Status.Open() {
			out = append(out, o)
		}
	}
	return out, nil
}
