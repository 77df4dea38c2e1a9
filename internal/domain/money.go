package domain

import (
	"math"
	"strings"

	"github.com/Rhymond/go-money"
)

// DefaultCurrency is used when no currency code is configured.
const DefaultCurrency = money.USD

// FormatSalary renders an amount with the currency's fixed symbol prefix.
// Unknown codes fall back to DefaultCurrency.
func FormatSalary(amount float64, currency string) string {
	code := strings.ToUpper(strings.TrimSpace(currency))
	if code == "" || money.GetCurrency(code) == nil {
		code = DefaultCurrency
	}
	return money.NewFromFloat(amount, code).Display()
}

// FormatAverage renders a rounded average the same way as a salary.
func FormatAverage(amount int64, currency string) string {
	return FormatSalary(float64(amount), currency)
}

// RoundHalfUp rounds a non-negative mean to the nearest integer.
func RoundHalfUp(v float64) int64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return int64(math.Round(v))
}
