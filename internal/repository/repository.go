package repository

import (
	"context"
	"errors"

	"medtrack/internal/domain"
)

// ErrNotFound возвращается, когда сущность не найдена
var ErrNotFound = errors.New("not found")

// MedicationRepository интерфейс репозитория лекарств
type MedicationRepository interface {
	List(ctx context.Context) ([]domain.Medication, error)
	GetByID(ctx context.Context, id string) (*domain.Medication, error)
	Create(ctx context.Context, m *domain.Medication) error
	Update(ctx context.Context, m *domain.Medication) error
	Delete(ctx context.Context, id string) error
	// Modify применяет fn к лекарству под блокировкой коллекции и сохраняет результат
	Modify(ctx context.Context, id string, fn func(m *domain.Medication) error) (*domain.Medication, error)
}

// OrderRepository интерфейс журнала заказов, новые заказы первыми
type OrderRepository interface {
	List(ctx context.Context) ([]domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	Create(ctx context.Context, o *domain.Order) error
	Modify(ctx context.Context, id string, fn func(o *domain.Order) error) (*domain.Order, error)
}

// CartRepository интерфейс корзины
type CartRepository interface {
	Items(ctx context.Context) ([]domain.CartItem, error)
	Modify(ctx context.Context, fn func(items []domain.CartItem) ([]domain.CartItem, error)) ([]domain.CartItem, error)
	Clear(ctx context.Context) error
}

// UserRepository интерфейс текущего пользователя
type UserRepository interface {
	Get(ctx context.Context) (*domain.User, error)
	Save(ctx context.Context, u *domain.User) error
	Remove(ctx context.Context) error
	Modify(ctx context.Context, fn func(u *domain.User) error) (*domain.User, error)
}

// NotificationMappingRepository medicationID -> id триггеров планировщика
type NotificationMappingRepository interface {
	IDs(ctx context.Context, medicationID string) ([]string, error)
	// Set пустой список удаляет запись
	Set(ctx context.Context, medicationID string, ids []string) error
	All(ctx context.Context) (map[string][]string, error)
	Clear(ctx context.Context) error
}
