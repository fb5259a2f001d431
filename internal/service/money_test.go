package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMinorUnits(t *testing.T) {
	tests := []struct {
		amount   string
		currency string
		want     int64
	}{
		{"250.00", "SEK", 25000},
		{"250.00", "sek", 25000},
		{"19.99", "usd", 1999},
		{"0.01", "eur", 1},
		{"100", "jpy", 100},
		{"1500", "KRW", 1500},
		{"10.005", "usd", 1001}, // half up
	}

	for _, tc := range tests {
		amount, err := decimal.NewFromString(tc.amount)
		assert.NoError(t, err)
		assert.Equal(t, tc.want, minorUnits(amount, tc.currency),
			"%s %s", tc.amount, tc.currency)
	}
}

func TestRoundMoneyHalfUp(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"4.9995", "5.00"},
		{"4.994", "4.99"},
		{"4.995", "5.00"},
		{"0.005", "0.01"},
	}

	for _, tc := range tests {
		in, _ := decimal.NewFromString(tc.in)
		want, _ := decimal.NewFromString(tc.want)
		assert.True(t, roundMoney(in).Equal(want), "%s -> %s", tc.in, tc.want)
	}
}
