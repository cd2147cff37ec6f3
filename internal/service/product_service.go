package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"medtrack/internal/catalog"
	"medtrack/internal/domain"
)

var ErrInvalidInput = errors.New("invalid input")

func invalidInput(err error) error {
	return fmt.Errorf("%w: %v", ErrInvalidInput, err)
}

func invalidInputf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidInput}, args...)...)
}

// BarcodeLookup поиск данных лекарства по штрихкоду
type BarcodeLookup interface {
	LookupBarcode(ctx context.Context, code string) (*catalog.BarcodeInfo, error)
}

// ProductFilter параметры выборки каталога
type ProductFilter struct {
	Query    string
	Category string
}

// ProductService доступ к каталогу аптеки только на чтение
type ProductService struct {
	catalog  catalog.Provider
	barcodes BarcodeLookup
}

func NewProductService(c catalog.Provider, barcodes BarcodeLookup) *ProductService {
	return &ProductService{catalog: c, barcodes: barcodes}
}

// GetByID nil, если товара нет
func (s *ProductService) GetByID(ctx context.Context, id string) (*domain.PharmacyProduct, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrInvalidInput
	}
	return s.catalog.ProductByID(ctx, id)
}

// List фильтр по категории и/или подстроке; без фильтров возвращает весь каталог
func (s *ProductService) List(ctx context.Context, f ProductFilter) ([]domain.PharmacyProduct, error) {
	var (
		list []domain.PharmacyProduct
		err  error
	)
	switch {
	case f.Category != "":
		list, err = s.catalog.ByCategory(ctx, f.Category)
	case f.Query != "":
		return s.catalog.Search(ctx, f.Query)
	default:
		return s.catalog.Products(ctx)
	}
	if err != nil || f.Query == "" {
		return list, err
	}
	q := strings.ToLower(f.Query)
	out := make([]domain.PharmacyProduct, 0, len(list))
	for _, p := range list {
		if strings.Contains(strings.ToLower(p.Name), q) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *ProductService) Categories(ctx context.Context) ([]string, error) {
	return s.catalog.Categories(ctx)
}

// LookupBarcode nil, если код неизвестен
func (s *ProductService) LookupBarcode(ctx context.Context, code string) (*catalog.BarcodeInfo, error) {
	if strings.TrimSpace(code) == "" {
		return nil, ErrInvalidInput
	}
	if s.barcodes == nil {
		return nil, nil
	}
	return s.barcodes.LookupBarcode(ctx, code)
}
