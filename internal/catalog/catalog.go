// Package catalog read-only каталог аптеки и сопоставление лекарств с товарами.
package catalog

import (
	"context"
	"strings"

	"medtrack/internal/domain"
)

// Provider источник каталога. Реализации не изменяют товары.
type Provider interface {
	Products(ctx context.Context) ([]domain.PharmacyProduct, error)
	ProductByID(ctx context.Context, id string) (*domain.PharmacyProduct, error)
	Search(ctx context.Context, query string) ([]domain.PharmacyProduct, error)
	ByCategory(ctx context.Context, category string) ([]domain.PharmacyProduct, error)
	Categories(ctx context.Context) ([]string, error)
	FindProductForMedication(ctx context.Context, medicationName string) (*domain.PharmacyProduct, error)
}

// Static каталог из фиксированных списков
type Static struct {
	products    []domain.PharmacyProduct
	medications []domain.Medication
	barcodes    map[string]BarcodeInfo
}

var _ Provider = (*Static)(nil)

// NewStatic копирует переданные списки
func NewStatic(products []domain.PharmacyProduct, medications []domain.Medication, barcodes map[string]BarcodeInfo) *Static {
	s := &Static{
		products:    append([]domain.PharmacyProduct(nil), products...),
		medications: append([]domain.Medication(nil), medications...),
		barcodes:    make(map[string]BarcodeInfo, len(barcodes)),
	}
	for k, v := range barcodes {
		s.barcodes[k] = v
	}
	return s
}

// Default каталог с демонстрационными данными
func Default() *Static {
	return NewStatic(mockProducts, mockMedications, mockBarcodes)
}

func (s *Static) Products(ctx context.Context) ([]domain.PharmacyProduct, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]domain.PharmacyProduct(nil), s.products...), nil
}

// ProductByID nil, если товара нет
func (s *Static) ProductByID(ctx context.Context, id string) (*domain.PharmacyProduct, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for i := range s.products {
		if s.products[i].ID == id {
			cp := s.products[i]
			return &cp, nil
		}
	}
	return nil, nil
}

// Search подстрока в названии или категории, без учёта регистра
func (s *Static) Search(ctx context.Context, query string) ([]domain.PharmacyProduct, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]domain.PharmacyProduct, 0)
	for _, p := range s.products {
		if containsIgnoreCase(p.Name, query) || containsIgnoreCase(p.Category, query) {
			out = append(out, p)
		}
	}
	return out, nil
}

// ByCategory точное совпадение категории
func (s *Static) ByCategory(ctx context.Context, category string) ([]domain.PharmacyProduct, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]domain.PharmacyProduct, 0)
	for _, p := range s.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

// Categories в порядке первого появления
func (s *Static) Categories(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, p := range s.products {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	return out, nil
}

func (s *Static) FindProductForMedication(ctx context.Context, medicationName string) (*domain.PharmacyProduct, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return MatchProduct(s.products, medicationName), nil
}

// Medications стартовый список лекарств для пустого хранилища
func (s *Static) Medications() []domain.Medication {
	out := make([]domain.Medication, len(s.medications))
	for i, m := range s.medications {
		m.Times = append([]string(nil), m.Times...)
		out[i] = m
	}
	return out
}

// helper: case-insensitive contains
func containsIgnoreCase(s, substr string) bool {
	if substr == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
