package service

import (
	"context"
	"fmt"

	"medtrack/internal/domain"
	"medtrack/internal/repository"
)

// CartLine товар и количество для добавления в корзину
type CartLine struct {
	Product  domain.PharmacyProduct
	Quantity int
}

// CartSummary содержимое корзины с итогами, итоги считаются при каждом чтении
type CartSummary struct {
	Items     []domain.CartItem `json:"items"`
	Total     float64           `json:"total"`
	ItemCount int               `json:"itemCount"`
}

// CartService корзина, одна позиция на товар
type CartService struct {
	repo repository.CartRepository
}

func NewCartService(repo repository.CartRepository) *CartService {
	return &CartService{repo: repo}
}

func (s *CartService) Items(ctx context.Context) ([]domain.CartItem, error) {
	return s.repo.Items(ctx)
}

func (s *CartService) Summary(ctx context.Context) (*CartSummary, error) {
	items, err := s.repo.Items(ctx)
	if err != nil {
		return nil, err
	}
	return summarize(items), nil
}

// Total сумма price*quantity, пересчитывается из сохранённых позиций
func (s *CartService) Total(ctx context.Context) (float64, error) {
	items, err := s.repo.Items(ctx)
	if err != nil {
		return 0, err
	}
	return cartTotal(items), nil
}

// ItemCount сумма количеств всех позиций
func (s *CartService) ItemCount(ctx context.Context) (int, error) {
	items, err := s.repo.Items(ctx)
	if err != nil {
		return 0, err
	}
	return summarize(items).ItemCount, nil
}

// Add существующая позиция увеличивает количество, новая фиксирует текущую цену товара
func (s *CartService) Add(ctx context.Context, product domain.PharmacyProduct, qty int) (*CartSummary, error) {
	return s.AddMany(ctx, []CartLine{{Product: product, Quantity: qty}})
}

// AddMany добавляет несколько товаров одной записью
func (s *CartService) AddMany(ctx context.Context, lines []CartLine) (*CartSummary, error) {
	for _, l := range lines {
		if l.Product.ID == "" || l.Quantity <= 0 {
			return nil, ErrInvalidInput
		}
	}
	items, err := s.repo.Modify(ctx, func(items []domain.CartItem) ([]domain.CartItem, error) {
		for _, l := range lines {
			items = merge(items, l)
		}
		return items, nil
	})
	if err != nil {
		return nil, fmt.Errorf("add to cart: %w", err)
	}
	return summarize(items), nil
}

func merge(items []domain.CartItem, l CartLine) []domain.CartItem {
	for i := range items {
		if items[i].ProductID == l.Product.ID {
			items[i].Quantity += l.Quantity
			return items
		}
	}
	return append(items, domain.CartItem{
		ProductID:   l.Product.ID,
		ProductName: l.Product.Name,
		Price:       l.Product.Price,
		Quantity:    l.Quantity,
	})
}

// Remove отсутствующий товар не ошибка
func (s *CartService) Remove(ctx context.Context, productID string) (*CartSummary, error) {
	items, err := s.repo.Modify(ctx, func(items []domain.CartItem) ([]domain.CartItem, error) {
		out := items[:0]
		for _, it := range items {
			if it.ProductID != productID {
				out = append(out, it)
			}
		}
		return out, nil
	})
	if err != nil {
		return nil, fmt.Errorf("remove from cart: %w", err)
	}
	return summarize(items), nil
}

// UpdateQuantity qty <= 0 удаляет позицию, иначе заменяет количество
func (s *CartService) UpdateQuantity(ctx context.Context, productID string, qty int) (*CartSummary, error) {
	if qty <= 0 {
		return s.Remove(ctx, productID)
	}
	items, err := s.repo.Modify(ctx, func(items []domain.CartItem) ([]domain.CartItem, error) {
		for i := range items {
			if items[i].ProductID == productID {
				items[i].Quantity = qty
			}
		}
		return items, nil
	})
	if err != nil {
		return nil, fmt.Errorf("update cart quantity: %w", err)
	}
	return summarize(items), nil
}

func (s *CartService) Clear(ctx context.Context) error {
	return s.repo.Clear(ctx)
}

func summarize(items []domain.CartItem) *CartSummary {
	if items == nil {
		items = []domain.CartItem{}
	}
	count := 0
	for _, it := range items {
		count += it.Quantity
	}
	return &CartSummary{Items: items, Total: cartTotal(items), ItemCount: count}
}
