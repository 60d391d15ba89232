package ordering

import "github.com/shopspring/decimal"

// Round2 rounds a money amount to 2 decimal places, half away from zero.
// Every derived money value is rounded at the step it is computed, never
// carried in higher precision, so stored totals stay reproducible.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Totals is the money breakdown of an order. All fields are rounded to
// 2 decimal places.
type Totals struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	DeliveryFee decimal.Decimal `json:"delivery_fee"`
	VATAmount   decimal.Decimal `json:"vat_amount"`
	Total       decimal.Decimal `json:"total"`
}

// CalculateTotals computes an order's money breakdown from its prepared
// line items. Pure: no I/O, deterministic for identical inputs.
func CalculateTotals(items []PreparedLineItem, deliveryFee, taxRate decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.LineTotal)
	}
	subtotal = Round2(subtotal)
	fee := Round2(deliveryFee)
	vat := Round2(subtotal.Mul(taxRate))
	total := Round2(subtotal.Add(fee).Add(vat))

	return Totals{
		Subtotal:    subtotal,
		DeliveryFee: fee,
		VATAmount:   vat,
		Total:       total,
	}
}
