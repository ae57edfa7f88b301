package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"smartinvoice/internal/layout"
)

// HTMLRenderer produces a self-contained print page. It is the fallback when PDF generation
// fails: the browser's print dialog turns it into paper or PDF.
type HTMLRenderer struct {
	tpl *template.Template
}

func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{tpl: template.Must(template.New("invoice").Funcs(template.FuncMap{
		// Only inline images are trusted; anything else is left to the escaper.
		"safeURL": func(s string) any {
			if strings.HasPrefix(s, "data:image/") {
				return template.URL(s)
			}
			return s
		},
	}).Parse(printTemplate))}
}

func (r *HTMLRenderer) ContentType() string { return "text/html; charset=utf-8" }

func (r *HTMLRenderer) Render(v layout.View, locale string) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.tpl.Execute(&buf, Prepare(v, locale)); err != nil {
		return nil, fmt.Errorf("html: execute template: %w", err)
	}
	return buf.Bytes(), nil
}

const printTemplate = `<!DOCTYPE html>
<html lang="{{.Locale}}">
<head>
<meta charset="utf-8">
<title>{{.Title}} {{.Invoice.InvoiceNumber}}</title>
<style>
@page { size: A4; margin: 0; }
body { margin: 0; font-family: -apple-system, Helvetica, Arial, sans-serif; font-size: 12px; color: #1d1d1f; }
.page { width: 21cm; min-height: 29.7cm; padding: 1.4cm; box-sizing: border-box; page-break-after: always; position: relative; }
.page.last { page-break-after: auto; }
.muted { color: #6e6e73; }
table { width: 100%; border-collapse: collapse; }
th, td { padding: 6px 4px; text-align: left; }
.num { text-align: right; }
footer { position: absolute; bottom: 1cm; left: 1.4cm; right: 1.4cm; font-size: 10px; display: flex; justify-content: space-between; }
</style>
</head>
<body onload="window.print()">
{{- $doc := . }}
{{- range .Pages }}
<section class="page{{if .IsLast}} last{{end}}" data-page="{{.Number}}">
{{- if .FullHeader }}
  <header class="full">
    {{- if $doc.Invoice.Logo }}<img class="logo" src="{{safeURL $doc.Invoice.Logo}}" alt="logo" height="64">{{end}}
    <h1>{{$doc.Invoice.SenderName}}</h1>
    <p class="muted">{{$doc.Invoice.SenderAddress}}</p>
    {{- if $doc.Invoice.SenderRegNo }}<p>{{$doc.T "regNo"}}: {{$doc.Invoice.SenderRegNo}}</p>{{end}}
    {{- if $doc.Invoice.SenderSstNo }}<p>{{$doc.T "sstNo"}}: {{$doc.Invoice.SenderSstNo}}</p>{{end}}
    <p>{{$doc.T "email"}}: {{$doc.Invoice.SenderEmail}}</p>
    <h2>{{$doc.Title}}</h2>
    <p>{{$doc.T "number"}}: {{$doc.Invoice.InvoiceNumber}}</p>
    <p>{{$doc.T "date"}}: {{$doc.Date}}</p>
    <p>{{$doc.T "dueDate"}}: {{$doc.DueDate}}</p>
    <h3>{{$doc.T "billTo"}}</h3>
    <p><strong>{{$doc.Invoice.ClientName}}</strong></p>
    <p class="muted">{{$doc.Invoice.ClientAddress}}</p>
    <p class="muted">{{$doc.Invoice.ClientEmail}}</p>
  </header>
{{- else }}
  <header class="condensed">
    <strong>{{$doc.Invoice.SenderName}}</strong>
    <span>{{$doc.Title}} {{$doc.Invoice.InvoiceNumber}}</span>
    <span class="muted">{{.Label}}</span>
  </header>
{{- end }}
  <table>
    <thead><tr><th>#</th><th>{{$doc.T "description"}}</th><th class="num">{{$doc.T "qty"}}</th><th class="num">{{$doc.T "rate"}}</th><th class="num">{{$doc.T "amount"}}</th></tr></thead>
    <tbody>
    {{- range .Lines }}
      <tr><td>{{.Number}}</td><td>{{.Description}}</td><td class="num">{{.Qty}}</td><td class="num">{{.Rate}}</td><td class="num">{{.Amount}}</td></tr>
    {{- else }}
      <tr><td colspan="5" class="muted">{{$doc.T "noItems"}}</td></tr>
    {{- end }}
    </tbody>
  </table>
{{- if .Summary }}
  <div class="summary">
    <p>{{$doc.T "subtotal"}}: {{$doc.Subtotal}}</p>
    {{- if $doc.ShowTax }}<p>{{$doc.TaxLabel}}: {{$doc.Tax}}</p>{{end}}
    <p><strong>{{$doc.T "total"}}: {{$doc.Total}}</strong></p>
    {{- if $doc.Invoice.Notes }}<h4>{{$doc.T "termsNotes"}}</h4><p class="muted">{{$doc.Invoice.Notes}}</p>{{end}}
    {{- if $doc.Invoice.Signature }}<img class="signature" src="{{safeURL $doc.Invoice.Signature}}" alt="signature" height="56">{{end}}
    <p>{{$doc.T "authorizedSignature"}}</p>
  </div>
{{- end }}
  <footer><span class="muted">{{$doc.T "computerGenerated"}}</span><span>{{$doc.T "branding"}} | {{.Label}}</span></footer>
</section>
{{- end }}
</body>
</html>
`
