package service

import (
	"github.com/shopspring/decimal"

	"medtrack/internal/domain"
)

// sumLines сумма price*quantity в десятичной арифметике, округление до сотых
func sumLines(n int, line func(i int) (price float64, qty int)) float64 {
	sum := decimal.Zero
	for i := 0; i < n; i++ {
		price, qty := line(i)
		sum = sum.Add(decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(qty))))
	}
	return sum.Round(2).InexactFloat64()
}

func cartTotal(items []domain.CartItem) float64 {
	return sumLines(len(items), func(i int) (float64, int) { return items[i].Price, items[i].Quantity })
}

func orderTotal(items []domain.OrderItem) float64 {
	return sumLines(len(items), func(i int) (float64, int) { return items[i].Price, items[i].Quantity })
}
