package totals

import (
	"testing"

	"smartinvoice/internal/model"

	"github.com/shopspring/decimal"
)

func item(q, r string) model.LineItem {
	return model.LineItem{ID: q + "x" + r, Quantity: decimal.RequireFromString(q), Rate: decimal.RequireFromString(r)}
}

func TestCalculateScenario(t *testing.T) {
	got := Calculate([]model.LineItem{item("2", "100")}, decimal.NewFromInt(6))
	if !got.Subtotal.Equal(decimal.NewFromInt(200)) {
		t.Errorf("subtotal = %s, want 200", got.Subtotal)
	}
	if !got.TaxAmount.Equal(decimal.NewFromInt(12)) {
		t.Errorf("tax = %s, want 12", got.TaxAmount)
	}
	if !got.Total.Equal(decimal.NewFromInt(212)) {
		t.Errorf("total = %s, want 212", got.Total)
	}
}

func TestCalculateZeroItems(t *testing.T) {
	got := Calculate(nil, decimal.NewFromInt(6))
	if !got.Subtotal.IsZero() || !got.TaxAmount.IsZero() || !got.Total.IsZero() {
		t.Fatalf("expected all zero, got %+v", got)
	}
}

func TestCalculateZeroTax(t *testing.T) {
	got := Calculate([]model.LineItem{item("3", "33.33")}, decimal.Zero)
	if !got.TaxAmount.IsZero() {
		t.Fatalf("tax = %s, want 0", got.TaxAmount)
	}
	if !got.Total.Equal(got.Subtotal) {
		t.Fatalf("total %s != subtotal %s", got.Total, got.Subtotal)
	}
	if ShowTax(decimal.Zero) {
		t.Fatal("zero rate must hide the tax line")
	}
	if !ShowTax(decimal.NewFromInt(6)) {
		t.Fatal("positive rate must show the tax line")
	}
}

func TestCalculateIsExact(t *testing.T) {
	items := []model.LineItem{item("0.1", "3"), item("0.2", "3"), item("1.5", "19.99")}
	got := Calculate(items, decimal.RequireFromString("8.25"))

	wantSub := decimal.RequireFromString("30.885")
	if !got.Subtotal.Equal(wantSub) {
		t.Fatalf("subtotal = %s, want %s", got.Subtotal, wantSub)
	}
	wantTax := decimal.RequireFromString("2.5480125")
	if !got.TaxAmount.Equal(wantTax) {
		t.Fatalf("tax = %s, want %s", got.TaxAmount, wantTax)
	}
	if !got.Total.Equal(wantSub.Add(wantTax)) {
		t.Fatalf("total = %s", got.Total)
	}
}

func TestForInvoice(t *testing.T) {
	inv := model.Invoice{TaxRate: decimal.NewFromInt(10), Items: []model.LineItem{item("1", "50"), item("2", "25")}}
	got := ForInvoice(inv)
	if !got.Total.Equal(decimal.NewFromInt(110)) {
		t.Fatalf("total = %s, want 110", got.Total)
	}
}
