package render

import (
	"smartinvoice/internal/layout"
	"smartinvoice/internal/model"
)

// Renderer produces one output format from a paginated view.
type Renderer interface {
	Render(v layout.View, locale string) ([]byte, error)
	ContentType() string
}

// Printable is a layout.View with every visible string already localised. Both renderers draw
// from it so the PDF and the print page cannot disagree.
type Printable struct {
	Locale   string        `json:"locale"`
	Invoice  model.Invoice `json:"-"`
	Title    string        `json:"title"`
	Date     string        `json:"date"`
	DueDate  string        `json:"dueDate"`
	Subtotal string        `json:"subtotal"`
	TaxLabel string        `json:"taxLabel"`
	Tax      string        `json:"tax"`
	Total    string        `json:"total"`
	ShowTax  bool          `json:"showTax"`
	Pages    []PrintPage   `json:"pages"`

	labels Labels
}

// PrintPage is one page of a Printable.
type PrintPage struct {
	layout.PageView
	Label string     `json:"label"`
	Lines []PrintRow `json:"lines"`
}

// PrintRow is one formatted line item.
type PrintRow struct {
	Number      int    `json:"number"`
	Description string `json:"description"`
	Qty         string `json:"qty"`
	Rate        string `json:"rate"`
	Amount      string `json:"amount"`
}

// Prepare localises v for locale.
func Prepare(v layout.View, locale string) Printable {
	f := NewFormatter(locale)
	l := NewLabels(f.Locale)
	cur := v.Invoice.Currency

	p := Printable{
		Locale:   f.Locale,
		Invoice:  v.Invoice,
		Title:    l.Title(v.Title),
		Date:     f.Date(v.Invoice.Date),
		DueDate:  f.Date(v.Invoice.DueDate),
		Subtotal: f.Money(v.Totals.Subtotal, cur),
		TaxLabel: l.T(LabelTaxSst, f.Percent(v.Invoice.TaxRate)),
		Tax:      f.Money(v.Totals.TaxAmount, cur),
		Total:    f.Money(v.Totals.Total, cur),
		ShowTax:  v.ShowTax,
		Pages:    make([]PrintPage, 0, len(v.Pages)),
		labels:   l,
	}
	for _, pg := range v.Pages {
		lines := make([]PrintRow, 0, len(pg.Rows))
		for _, r := range pg.Rows {
			lines = append(lines, PrintRow{
				Number:      r.Number,
				Description: r.Item.Description,
				Qty:         r.Item.Quantity.String(),
				Rate:        f.Money(r.Item.Rate, cur),
				Amount:      f.Money(r.Amount, cur),
			})
		}
		p.Pages = append(p.Pages, PrintPage{PageView: pg, Label: l.PageOf(pg.Number, pg.Total), Lines: lines})
	}
	return p
}

// T exposes the label catalog to templates.
func (p Printable) T(key string) string {
	return p.labels.T(key)
}
