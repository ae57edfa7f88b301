// Package totals derives invoice money figures from line items.
package totals

import (
	"smartinvoice/internal/model"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Totals holds unrounded figures. Rounding belongs to the renderer.
type Totals struct {
	Subtotal  decimal.Decimal `json:"subtotal"`
	TaxAmount decimal.Decimal `json:"taxAmount"`
	Total     decimal.Decimal `json:"total"`
}

// Calculate returns subtotal = Σ quantity*rate, tax = subtotal*taxRate/100 and their sum.
func Calculate(items []model.LineItem, taxRate decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Amount())
	}
	tax := subtotal.Mul(taxRate).Div(hundred)
	return Totals{
		Subtotal:  subtotal,
		TaxAmount: tax,
		Total:     subtotal.Add(tax),
	}
}

// ForInvoice is Calculate applied to a whole document.
func ForInvoice(inv model.Invoice) Totals {
	return Calculate(inv.Items, inv.TaxRate)
}

// ShowTax reports whether the tax line is printed. A zero rate hides it.
func ShowTax(taxRate decimal.Decimal) bool {
	return taxRate.IsPositive()
}
