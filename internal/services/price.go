package services

import (
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// ParsePrice reads a currency-formatted price such as "$10.00": the first
// character is the currency symbol and the rest must be a decimal amount.
func ParsePrice(price string) (decimal.Decimal, error) {
	price = strings.TrimSpace(price)
	_, size := utf8.DecodeRuneInString(price)
	if size == 0 || size >= len(price) {
		return decimal.Zero, ErrInvalidPrice
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(price[size:]))
	if err != nil || amount.IsNegative() {
		return decimal.Zero, ErrInvalidPrice
	}
	return amount, nil
}
