package service

import (
	"context"
	"fmt"

	"medtrack/internal/catalog"
	"medtrack/internal/domain"
)

// ReconciliationService сверяет лекарства с низким запасом с каталогом и открытыми заказами
type ReconciliationService struct {
	medications *MedicationService
	catalog     catalog.Provider
	orders      *OrderService
	cart        *CartService
}

func NewReconciliationService(medications *MedicationService, c catalog.Provider, orders *OrderService, cart *CartService) *ReconciliationService {
	return &ReconciliationService{medications: medications, catalog: c, orders: orders, cart: cart}
}

// LowStockWithDeliveryStatus лекарства с низким запасом в порядке реестра.
// IsOnTheWay: товар найден и входит в заказ pending, processing или shipped.
func (s *ReconciliationService) LowStockWithDeliveryStatus(ctx context.Context) ([]domain.LowStockEntry, error) {
	low, err := s.medications.LowStock(ctx)
	if err != nil {
		return nil, err
	}

	var open []domain.Order
	loaded := false
	out := make([]domain.LowStockEntry, 0, len(low))
	for _, m := range low {
		entry := domain.LowStockEntry{Medication: m}
		product, err := s.catalog.FindProductForMedication(ctx, m.Name)
		if err != nil {
			return nil, fmt.Errorf("match product for %s: %w", m.ID, err)
		}
		if product != nil {
			// load ledger once, only when needed
			if !loaded {
				if open, err = s.orders.OpenOrders(ctx); err != nil {
					return nil, err
				}
				loaded = true
			}
			for _, o := range open {
				if o.Contains(product.ID) {
					entry.IsOnTheWay = true
					break
				}
			}
		}
		out = append(out, entry)
	}
	return out, nil
}

// NeedsPurchase записи без заказа в пути, для предупреждения на главном экране
func (s *ReconciliationService) NeedsPurchase(ctx context.Context) ([]domain.LowStockEntry, error) {
	all, err := s.LowStockWithDeliveryStatus(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.LowStockEntry, 0, len(all))
	for _, e := range all {
		if !e.IsOnTheWay {
			out = append(out, e)
		}
	}
	return out, nil
}

// AddMissingToCart кладёт в корзину по одной упаковке каждого лекарства, которое нужно купить.
// Пустой результат означает, что ни одно лекарство не сопоставилось с каталогом.
func (s *ReconciliationService) AddMissingToCart(ctx context.Context) ([]domain.PharmacyProduct, *CartSummary, error) {
	needs, err := s.NeedsPurchase(ctx)
	if err != nil {
		return nil, nil, err
	}
	products := make([]domain.PharmacyProduct, 0, len(needs))
	lines := make([]CartLine, 0, len(needs))
	for _, e := range needs {
		p, err := s.catalog.FindProductForMedication(ctx, e.Medication.Name)
		if err != nil {
			return nil, nil, fmt.Errorf("match product for %s: %w", e.Medication.ID, err)
		}
		if p == nil {
			continue
		}
		products = append(products, *p)
		lines = append(lines, CartLine{Product: *p, Quantity: 1})
	}
	if len(lines) == 0 {
		summary, err := s.cart.Summary(ctx)
		return products, summary, err
	}
	summary, err := s.cart.AddMany(ctx, lines)
	if err != nil {
		return nil, nil, err
	}
	return products, summary, nil
}

// ProductForMedication товар каталога для лекарства; nil, если лекарства или товара нет
func (s *ReconciliationService) ProductForMedication(ctx context.Context, medicationID string) (*domain.PharmacyProduct, error) {
	m, err := s.medications.GetByID(ctx, medicationID)
	if err != nil || m == nil {
		return nil, err
	}
	return s.catalog.FindProductForMedication(ctx, m.Name)
}
