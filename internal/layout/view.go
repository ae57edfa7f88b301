package layout

import (
	"smartinvoice/internal/model"
	"smartinvoice/internal/totals"

	"github.com/shopspring/decimal"
)

// View is everything a renderer needs: pages in print order with their role flags,
// continuous row numbers and the document totals. Renderers must not renumber rows.
type View struct {
	Invoice        model.Invoice `json:"invoice"`
	Title          string        `json:"title"`
	Totals         totals.Totals `json:"totals"`
	ShowTax        bool          `json:"showTax"`
	DueBeforeIssue bool          `json:"dueBeforeIssue"`
	Pages          []PageView    `json:"pages"`
}

// PageView is a Page annotated with the blocks it renders.
type PageView struct {
	Page
	Number int   `json:"number"`
	Total  int   `json:"total"`
	Rows   []Row `json:"rows"`

	// FullHeader draws logo, sender and client blocks. CondensedHeader draws
	// sender name, title, invoice number and "page X of N".
	FullHeader      bool `json:"fullHeader"`
	CondensedHeader bool `json:"condensedHeader"`
	// Summary draws totals, notes and signature.
	Summary bool `json:"summary"`
}

// Row is one numbered line item.
type Row struct {
	Number int             `json:"number"`
	Item   model.LineItem  `json:"item"`
	Amount decimal.Decimal `json:"amount"`
}

// Build paginates inv and derives its totals.
func Build(inv model.Invoice, c Capacity) View {
	pages := Paginate(inv.Items, c)
	sums := totals.ForInvoice(inv)

	view := View{
		Invoice:        inv,
		Title:          inv.Title(),
		Totals:         sums,
		ShowTax:        totals.ShowTax(inv.TaxRate),
		DueBeforeIssue: inv.DueBeforeIssue(),
		Pages:          make([]PageView, 0, len(pages)),
	}
	for _, p := range pages {
		rows := make([]Row, 0, len(p.Items))
		for i, item := range p.Items {
			rows = append(rows, Row{Number: p.Number(i), Item: item, Amount: item.Amount()})
		}
		view.Pages = append(view.Pages, PageView{
			Page:            p,
			Number:          p.Index + 1,
			Total:           len(pages),
			Rows:            rows,
			FullHeader:      p.IsFirst,
			CondensedHeader: !p.IsFirst,
			Summary:         p.IsLast,
		})
	}
	return view
}
