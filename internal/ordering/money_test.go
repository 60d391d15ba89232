package ordering

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCalculateTotals(t *testing.T) {
	items := []PreparedLineItem{
		{LineTotal: dec("40")},
		{LineTotal: dec("60")},
	}
	totals := CalculateTotals(items, dec("10"), dec("0.15"))

	assert.True(t, totals.Subtotal.Equal(dec("100")), "subtotal %s", totals.Subtotal)
	assert.True(t, totals.DeliveryFee.Equal(dec("10")))
	assert.True(t, totals.VATAmount.Equal(dec("15")), "vat %s", totals.VATAmount)
	assert.True(t, totals.Total.Equal(dec("125")), "total %s", totals.Total)
}

func TestCalculateTotalsEmptyOrder(t *testing.T) {
	totals := CalculateTotals(nil, dec("5"), dec("0.15"))

	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.VATAmount.IsZero())
	assert.True(t, totals.Total.Equal(dec("5")))
}

func TestCalculateTotalsRoundsHalfAwayFromZero(t *testing.T) {
	// 10.10 * 0.15 = 1.515, which must round up to 1.52
	items := []PreparedLineItem{{LineTotal: dec("10.10")}}
	totals := CalculateTotals(items, decimal.Zero, dec("0.15"))

	assert.True(t, totals.VATAmount.Equal(dec("1.52")), "vat %s", totals.VATAmount)
	assert.True(t, totals.Total.Equal(dec("11.62")), "total %s", totals.Total)
}

func TestCalculateTotalsDeterministic(t *testing.T) {
	items := []PreparedLineItem{
		{LineTotal: dec("19.99")},
		{LineTotal: dec("3.33")},
		{LineTotal: dec("0.01")},
	}
	first := CalculateTotals(items, dec("7.50"), dec("0.15"))
	for i := 0; i < 10; i++ {
		again := CalculateTotals(items, dec("7.50"), dec("0.15"))
		assert.True(t, first.Total.Equal(again.Total))
		assert.True(t, first.VATAmount.Equal(again.VATAmount))
	}
}

func TestRound2(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"1.005", "1.01"},
		{"1.004", "1.00"},
		{"-1.005", "-1.01"},
		{"2.675", "2.68"},
		{"0", "0"},
	}
	for _, tc := range cases {
		got := Round2(dec(tc.in))
		assert.True(t, got.Equal(dec(tc.want)), "Round2(%s) = %s, want %s", tc.in, got, tc.want)
	}
}
