package catalog

import (
	"strings"
	"unicode/utf8"

	"medtrack/internal/domain"
)

// minWordLen слова короче или равные 3 символам не участвуют в поиске по словам
const minWordLen = 4

// MatchProduct подбирает товар по названию лекарства. Эвристика, порядок проверок:
//  1. точное совпадение без учёта регистра;
//  2. одно название содержит другое;
//  3. первое слово длиннее 3 символов, найденное в названии товара.
//
// При нескольких кандидатах побеждает первый по порядку каталога.
func MatchProduct(products []domain.PharmacyProduct, medicationName string) *domain.PharmacyProduct {
	name := strings.ToLower(strings.TrimSpace(medicationName))
	if name == "" {
		return nil
	}

	lowered := make([]string, len(products))
	for i, p := range products {
		lowered[i] = strings.ToLower(p.Name)
	}

	for i := range products {
		if lowered[i] == name {
			return pick(products, i)
		}
	}
	for i := range products {
		if lowered[i] == "" {
			continue
		}
		if strings.Contains(lowered[i], name) || strings.Contains(name, lowered[i]) {
			return pick(products, i)
		}
	}
	for _, word := range strings.Fields(name) {
		if utf8.RuneCountInString(word) < minWordLen {
			continue
		}
		for i := range products {
			if strings.Contains(lowered[i], word) {
				return pick(products, i)
			}
		}
	}
	return nil
}

func pick(products []domain.PharmacyProduct, i int) *domain.PharmacyProduct {
	cp := products[i]
	return &cp
}
