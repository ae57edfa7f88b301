package layout

import (
	"testing"

	"smartinvoice/internal/model"

	"github.com/shopspring/decimal"
)

func TestBuildSinglePageIsFirstAndLast(t *testing.T) {
	inv := model.Invoice{
		ID:          "doc",
		SenderSstNo: "W10",
		TaxRate:     decimal.NewFromInt(6),
		Items:       []model.LineItem{{ID: "1", Quantity: decimal.NewFromInt(2), Rate: decimal.NewFromInt(100)}},
	}
	view := Build(inv, DefaultCapacity)

	if len(view.Pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(view.Pages))
	}
	p := view.Pages[0]
	if !p.FullHeader || !p.Summary || p.CondensedHeader {
		t.Fatalf("single page must render full header and summary: %+v", p)
	}
	if view.Title != model.TitleTaxInvoice || !view.ShowTax {
		t.Fatalf("title=%s showTax=%v", view.Title, view.ShowTax)
	}
	if !view.Totals.Total.Equal(decimal.NewFromInt(212)) {
		t.Fatalf("total = %s", view.Totals.Total)
	}
	if p.Rows[0].Number != 1 || !p.Rows[0].Amount.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("row = %+v", p.Rows[0])
	}
}

func TestBuildMultiPageRoles(t *testing.T) {
	inv := model.Invoice{ID: "doc", Items: makeItems(25)}
	view := Build(inv, DefaultCapacity)

	if len(view.Pages) != 3 {
		t.Fatalf("expected 3 pages, got %d", len(view.Pages))
	}
	for i, p := range view.Pages {
		if p.Number != i+1 || p.Total != 3 {
			t.Errorf("page %d: number=%d total=%d", i, p.Number, p.Total)
		}
		if p.FullHeader != (i == 0) || p.CondensedHeader != (i != 0) || p.Summary != (i == 2) {
			t.Errorf("page %d flags: %+v", i, p)
		}
	}
	if view.Pages[2].Rows[0].Number != 24 {
		t.Fatalf("page 3 first row = %d", view.Pages[2].Rows[0].Number)
	}
	if view.ShowTax {
		t.Fatal("zero tax rate must hide the tax line")
	}
	if view.Title != model.TitleSimpleInvoice {
		t.Fatalf("title = %s", view.Title)
	}
}

func TestBuildEmptyDocument(t *testing.T) {
	view := Build(model.Invoice{ID: "doc"}, DefaultCapacity)
	if len(view.Pages) != 1 || !view.Pages[0].Empty() || len(view.Pages[0].Rows) != 0 {
		t.Fatalf("unexpected view %+v", view.Pages)
	}
	if !view.Totals.Subtotal.IsZero() {
		t.Fatalf("subtotal = %s", view.Totals.Subtotal)
	}
}
