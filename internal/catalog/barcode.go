package catalog

import (
	"context"
	"strings"
)

// BarcodeInfo данные для предзаполнения формы лекарства
type BarcodeInfo struct {
	Name         string `json:"name"`
	Dosage       string `json:"dosage"`
	Form         string `json:"form"`
	Instructions string `json:"instructions,omitempty"`
}

// LookupBarcode nil, если код неизвестен
func (s *Static) LookupBarcode(ctx context.Context, code string) (*BarcodeInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	info, ok := s.barcodes[strings.TrimSpace(code)]
	if !ok {
		return nil, nil
	}
	return &info, nil
}
