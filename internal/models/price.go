package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// SentinelPrice подставляется вместо отсутствующей или нечитаемой цены.
// Значение заведомо вне реального диапазона цен.
var SentinelPrice = decimal.New(99999, -2)

// NormalizePrice переводит «сырую» цену вида "3,50 €" в десятичное число с двумя знаками.
// nil, пустая строка и ошибка разбора дают SentinelPrice.
func NormalizePrice(raw *string) decimal.Decimal {
	if raw == nil {
		return SentinelPrice
	}

	s := strings.TrimSpace(*raw)
	s = strings.TrimSuffix(s, "€")
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", ".")

	if s == "" {
		return SentinelPrice
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return SentinelPrice
	}

	return d.Round(2)
}

// FormatPrice возвращает цену с двумя знаками после точки или nil для SentinelPrice.
func FormatPrice(d decimal.Decimal) *string {
	if d.Equal(SentinelPrice) {
		return nil
	}

	s := d.StringFixed(2)
	return &s
}
