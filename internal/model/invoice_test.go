package model

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

var testNow = time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC)

func TestLineItemAmount(t *testing.T) {
	item := LineItem{ID: "a", Quantity: decimal.NewFromFloat(2.5), Rate: decimal.NewFromInt(40)}
	if !item.Amount().Equal(decimal.NewFromInt(100)) {
		t.Fatalf("Amount() = %s, want 100", item.Amount())
	}
}

func TestNewLineItemDefaults(t *testing.T) {
	a, b := NewLineItem(), NewLineItem()
	if a.ID == "" || a.ID == b.ID {
		t.Fatalf("expected fresh unique ids, got %q and %q", a.ID, b.ID)
	}
	if !a.Quantity.Equal(decimal.NewFromInt(1)) || !a.Rate.IsZero() || a.Description != "" {
		t.Fatalf("unexpected blank item %+v", a)
	}
}

func TestTitleFollowsTaxNumber(t *testing.T) {
	inv := Invoice{SenderSstNo: "W10-1"}
	if inv.Title() != TitleTaxInvoice {
		t.Fatalf("expected tax invoice title, got %s", inv.Title())
	}
	inv.SenderSstNo = "   "
	if inv.Title() != TitleSimpleInvoice {
		t.Fatalf("blank tax number should give simple invoice, got %s", inv.Title())
	}
}

func TestValidate(t *testing.T) {
	base := NewDefaultInvoice(testNow)
	if err := base.Validate(); err != nil {
		t.Fatalf("default invoice should be valid: %v", err)
	}

	cases := map[string]func(inv *Invoice){
		"missing id":        func(inv *Invoice) { inv.ID = "" },
		"tax over 100":      func(inv *Invoice) { inv.TaxRate = decimal.NewFromInt(101) },
		"negative tax":      func(inv *Invoice) { inv.TaxRate = decimal.NewFromInt(-1) },
		"bad date":          func(inv *Invoice) { inv.Date = "14/10/2026" },
		"bad due date":      func(inv *Invoice) { inv.DueDate = "2026-13-01" },
		"duplicate item id": func(inv *Invoice) { inv.Items[1].ID = inv.Items[0].ID },
		"empty item id":     func(inv *Invoice) { inv.Items[0].ID = "" },
		"negative quantity": func(inv *Invoice) { inv.Items[0].Quantity = decimal.NewFromInt(-2) },
		"negative rate":     func(inv *Invoice) { inv.Items[1].Rate = decimal.NewFromInt(-5) },
	}
	for name, mutate := range cases {
		inv := base.Clone()
		mutate(&inv)
		err := inv.Validate()
		if err == nil {
			t.Errorf("%s: expected error", name)
			continue
		}
		var verr *ValidationError
		if !errors.As(err, &verr) || !errors.Is(err, ErrInvalidInvoice) {
			t.Errorf("%s: expected ValidationError wrapping ErrInvalidInvoice, got %v", name, err)
		}
	}
}

func TestValidateAllowsDueBeforeIssue(t *testing.T) {
	inv := NewDefaultInvoice(testNow)
	inv.DueDate = "2026-01-01"
	if err := inv.Validate(); err != nil {
		t.Fatalf("due date before issue date must not be rejected: %v", err)
	}
	if !inv.DueBeforeIssue() {
		t.Fatal("expected DueBeforeIssue flag")
	}
}

func TestNextFromCarriesSellerProfile(t *testing.T) {
	prev := NewDefaultInvoice(testNow)
	prev.Logo = "data:image/png;base64,AAAA"
	prev.Signature = "data:image/png;base64,BBBB"
	prev.Currency = "USD"
	prev.TaxRate = decimal.NewFromInt(8)

	next := prev.NextFrom("INV-004", testNow)

	if next.ID == prev.ID || next.ID == "" {
		t.Fatalf("expected a fresh id")
	}
	if next.InvoiceNumber != "INV-004" {
		t.Fatalf("number = %s", next.InvoiceNumber)
	}
	if next.SenderName != prev.SenderName || next.SenderSstNo != prev.SenderSstNo || next.SenderRegNo != prev.SenderRegNo ||
		next.SenderEmail != prev.SenderEmail || next.SenderAddress != prev.SenderAddress {
		t.Fatalf("sender identity not carried forward: %+v", next)
	}
	if next.Logo != prev.Logo || next.Signature != prev.Signature || next.Currency != "USD" || !next.TaxRate.Equal(prev.TaxRate) {
		t.Fatalf("branding/currency/tax not carried forward: %+v", next)
	}
	if next.ClientName != "" || next.ClientEmail != "" || next.ClientAddress != "" {
		t.Fatalf("client fields must reset: %+v", next)
	}
	if len(next.Items) != 1 || next.Items[0].Description != "" || next.Items[0].ID == "" {
		t.Fatalf("expected one blank item, got %+v", next.Items)
	}
	if next.Date != "2026-10-14" || next.DueDate != "2026-10-21" {
		t.Fatalf("dates = %s / %s", next.Date, next.DueDate)
	}
}

func TestCloneDoesNotShareItems(t *testing.T) {
	inv := NewDefaultInvoice(testNow)
	cp := inv.Clone()
	cp.Items[0].Description = "changed"
	if inv.Items[0].Description == "changed" {
		t.Fatal("clone shares item storage")
	}
}

func TestJSONUsesNumbersAndCamelCase(t *testing.T) {
	inv := Invoice{ID: "x", TaxRate: decimal.NewFromInt(6), Items: []LineItem{{ID: "1", Quantity: decimal.NewFromInt(2), Rate: decimal.NewFromInt(100)}}}
	b, err := json.Marshal(inv)
	if err != nil {
		t.Fatal(err)
	}
	s := string(b)
	for _, want := range []string{`"taxRate":6`, `"quantity":2`, `"rate":100`, `"invoiceNumber":""`} {
		if !strings.Contains(s, want) {
			t.Errorf("expected %s in %s", want, s)
		}
	}
}

func TestFormatInvoiceNumber(t *testing.T) {
	if got := FormatInvoiceNumber(7); got != "INV-007" {
		t.Fatalf("got %s", got)
	}
	if got := FormatInvoiceNumber(1234); got != "INV-1234" {
		t.Fatalf("got %s", got)
	}
}
