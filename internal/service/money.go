package service

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Currencies the provider treats as having no minor unit.
var zeroDecimalCurrencies = map[string]bool{
	"jpy": true,
	"krw": true,
	"vnd": true,
}

// roundMoney applies the platform's single rounding policy: half up at the
// smallest currency unit (two decimals).
func roundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// minorUnits converts a stored amount to the provider's integer
// representation (25000 for 250.00 SEK).
func minorUnits(amount decimal.Decimal, currency string) int64 {
	if zeroDecimalCurrencies[strings.ToLower(currency)] {
		return amount.Round(0).IntPart()
	}
	return roundMoney(amount).Shift(2).IntPart()
}
