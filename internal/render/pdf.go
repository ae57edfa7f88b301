package render

import (
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"strings"

	"smartinvoice/internal/layout"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/page"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

var (
	colorInk   = &props.Color{Red: 29, Green: 29, Blue: 31}
	colorMuted = &props.Color{Red: 110, Green: 110, Blue: 115}
	colorBrand = &props.Color{Red: 0, Green: 113, Blue: 227}
)

var errBadDataURL = errors.New("unsupported image data url")

// PDFRenderer draws an A4 PDF with maroto, one PDF page per layout page.
type PDFRenderer struct{}

func NewPDFRenderer() *PDFRenderer { return &PDFRenderer{} }

func (r *PDFRenderer) ContentType() string { return "application/pdf" }

func (r *PDFRenderer) Render(v layout.View, locale string) (out []byte, err error) {
	// gofpdf panics on some malformed images.
	defer func() {
		if rec := recover(); rec != nil {
			out, err = nil, fmt.Errorf("pdf: render panicked: %v", rec)
		}
	}()
	p := Prepare(v, locale)

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(14).WithRightMargin(14).
		WithTopMargin(14).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(p.Title+" "+p.Invoice.InvoiceNumber, true).
		WithAuthor(p.Invoice.SenderName, true).
		Build()

	m := maroto.New(cfg)
	for _, pg := range p.Pages {
		m.AddPages(r.page(p, pg))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	return doc.GetBytes(), nil
}

func (r *PDFRenderer) page(p Printable, pg PrintPage) core.Page {
	var rows []core.Row
	if pg.FullHeader {
		rows = append(rows, fullHeaderRows(p)...)
	} else {
		rows = append(rows, condensedHeaderRow(p, pg))
	}
	rows = append(rows, line.NewRow(2, props.Line{Color: colorInk, Thickness: 0.4}))

	rows = append(rows, tableHeaderRow(p))
	if pg.Empty() {
		rows = append(rows, row.New(10).Add(col.New(12).Add(
			text.New(p.T(LabelNoItems), props.Text{Size: 9, Align: align.Center, Top: 3, Color: colorMuted}),
		)))
	}
	for _, ln := range pg.Lines {
		rows = append(rows, itemRow(ln))
	}

	if pg.Summary {
		rows = append(rows, line.NewRow(2, props.Line{Color: colorMuted, Thickness: 0.2}))
		rows = append(rows, totalsRow(p))
		rows = append(rows, summaryRows(p)...)
	}
	rows = append(rows, footerRow(p, pg))

	return page.New().Add(rows...)
}

func fullHeaderRows(p Printable) []core.Row {
	inv := p.Invoice

	left := col.New(7)
	left.Add(text.New(strings.ToUpper(inv.SenderName), props.Text{Style: fontstyle.Bold, Size: 13, Top: 1, Color: colorInk}))
	details := []string{inv.SenderAddress}
	if inv.SenderRegNo != "" {
		details = append(details, p.T(LabelRegNo)+": "+inv.SenderRegNo)
	}
	if inv.SenderSstNo != "" {
		details = append(details, p.T(LabelSstNo)+": "+inv.SenderSstNo)
	}
	details = append(details, p.T(LabelEmail)+": "+inv.SenderEmail)
	for i, d := range details {
		left.Add(text.New(d, props.Text{Size: 8, Top: 9 + float64(i)*4.5, Color: colorMuted}))
	}

	right := col.New(5).Add(
		text.New(strings.ToUpper(p.Title), props.Text{Style: fontstyle.Bold, Size: 16, Align: align.Right, Top: 1, Color: colorInk}),
		text.New(p.T(LabelNumber)+": "+inv.InvoiceNumber, props.Text{Size: 9, Align: align.Right, Top: 11}),
		text.New(p.T(LabelDate)+": "+p.Date, props.Text{Size: 9, Align: align.Right, Top: 16}),
		text.New(p.T(LabelDueDate)+": "+p.DueDate, props.Text{Size: 9, Align: align.Right, Top: 21}),
	)

	var rows []core.Row
	if img, ok := dataURLImage(inv.Logo, props.Rect{Percent: 90}); ok {
		rows = append(rows, row.New(22).Add(col.New(3).Add(img), col.New(9)))
	}
	rows = append(rows, row.New(36).Add(left, right))
	rows = append(rows,
		row.New(6).Add(col.New(12).Add(text.New(strings.ToUpper(p.T(LabelBillTo)), props.Text{Style: fontstyle.Bold, Size: 8, Top: 1, Color: colorMuted}))),
		row.New(22).Add(col.New(12).Add(
			text.New(inv.ClientName, props.Text{Style: fontstyle.Bold, Size: 10}),
			text.New(inv.ClientAddress, props.Text{Size: 8, Top: 5, Color: colorMuted}),
			text.New(inv.ClientEmail, props.Text{Size: 8, Top: 14, Color: colorMuted}),
		)),
	)
	return rows
}

func condensedHeaderRow(p Printable, pg PrintPage) core.Row {
	return row.New(14).Add(
		col.New(6).Add(text.New(strings.ToUpper(p.Invoice.SenderName), props.Text{Style: fontstyle.Bold, Size: 10, Top: 2})),
		col.New(6).Add(
			text.New(p.Title+" "+p.Invoice.InvoiceNumber, props.Text{Size: 9, Align: align.Right, Top: 1}),
			text.New(pg.Label, props.Text{Size: 8, Align: align.Right, Top: 6, Color: colorMuted}),
		),
	)
}

func tableHeaderRow(p Printable) core.Row {
	h := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Style: fontstyle.Bold, Size: 8, Align: a, Top: 2}))
	}
	return row.New(8).Add(
		h("#", 1, align.Left),
		h(p.T(LabelDescription), 5, align.Left),
		h(p.T(LabelQty), 2, align.Center),
		h(p.T(LabelRate), 2, align.Right),
		h(p.T(LabelAmount), 2, align.Right),
	)
}

func itemRow(ln PrintRow) core.Row {
	c := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8.5, Align: a, Top: 1.5}))
	}
	return row.New(8).Add(
		c(fmt.Sprintf("%d", ln.Number), 1, align.Left),
		c(ln.Description, 5, align.Left),
		c(ln.Qty, 2, align.Center),
		c(ln.Rate, 2, align.Right),
		c(ln.Amount, 2, align.Right),
	)
}

func totalsRow(p Printable) core.Row {
	labels := col.New(3)
	values := col.New(3)
	top := 1.0
	add := func(label, value string, bold bool) {
		style := fontstyle.Normal
		size := 9.0
		if bold {
			style, size = fontstyle.Bold, 11
		}
		labels.Add(text.New(label, props.Text{Style: style, Size: size, Align: align.Right, Top: top, Right: 2}))
		values.Add(text.New(value, props.Text{Style: style, Size: size, Align: align.Right, Top: top, Color: colorInk}))
		top += 6
	}
	add(p.T(LabelSubtotal), p.Subtotal, false)
	if p.ShowTax {
		add(p.TaxLabel, p.Tax, false)
	}
	add(p.T(LabelTotal), p.Total, true)

	return row.New(top + 2).Add(col.New(6), labels, values)
}

func summaryRows(p Printable) []core.Row {
	var rows []core.Row
	if p.Invoice.Notes != "" {
		rows = append(rows,
			row.New(6).Add(col.New(12).Add(text.New(p.T(LabelTermsNotes), props.Text{Style: fontstyle.Bold, Size: 8, Top: 2}))),
			row.New(18).Add(col.New(12).Add(text.New(p.Invoice.Notes, props.Text{Size: 8, Top: 1, Color: colorMuted}))),
		)
	}
	sig := col.New(4)
	if img, ok := dataURLImage(p.Invoice.Signature, props.Rect{Percent: 80, Center: true}); ok {
		sig.Add(img)
	}
	rows = append(rows,
		row.New(20).Add(col.New(8), sig),
		row.New(6).Add(col.New(8), col.New(4).Add(
			text.New(p.T(LabelAuthorizedSignature), props.Text{Size: 8, Align: align.Center, Top: 1}),
		)),
	)
	return rows
}

func footerRow(p Printable, pg PrintPage) core.Row {
	return row.New(8).Add(
		col.New(8).Add(text.New(p.T(LabelComputerGenerated), props.Text{Size: 7, Top: 3, Color: colorMuted})),
		col.New(4).Add(text.New(p.T(LabelBranding)+" | "+pg.Label, props.Text{Size: 7, Top: 3, Align: align.Right, Color: colorBrand})),
	)
}

// dataURLImage decodes a png or jpeg data URL. Anything else is skipped.
func dataURLImage(dataURL string, rect props.Rect) (core.Component, bool) {
	if dataURL == "" {
		return nil, false
	}
	b, ext, err := decodeDataURL(dataURL)
	if err != nil {
		log.Printf("pdf: skipping image: %v", err)
		return nil, false
	}
	return image.NewFromBytes(b, ext, rect), true
}

func decodeDataURL(s string) ([]byte, extension.Type, error) {
	meta, payload, ok := strings.Cut(s, ",")
	if !ok || !strings.HasPrefix(meta, "data:") || !strings.HasSuffix(meta, ";base64") {
		return nil, "", errBadDataURL
	}
	var ext extension.Type
	switch strings.TrimSuffix(strings.TrimPrefix(meta, "data:"), ";base64") {
	case "image/png":
		ext = extension.Png
	case "image/jpeg", "image/jpg":
		ext = extension.Jpg
	default:
		return nil, "", errBadDataURL
	}
	b, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", errBadDataURL, err)
	}
	return b, ext, nil
}
