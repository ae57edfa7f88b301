package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"time"

	"smartinvoice/internal/layout"
	"smartinvoice/internal/model"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

func testInvoice(n int) model.Invoice {
	inv := model.NewDefaultInvoice(time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC))
	inv.Items = nil
	for i := 0; i < n; i++ {
		it := model.NewLineItem()
		it.Description = fmt.Sprintf("Item %d", i+1)
		it.Quantity = decimal.NewFromInt(2)
		it.Rate = decimal.NewFromInt(100)
		inv.Items = append(inv.Items, it)
	}
	return inv
}

func pngDataURL(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.Black)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestNormalizeLocale(t *testing.T) {
	cases := map[string]string{"en": LocaleEN, "en-GB": LocaleEN, "ms-MY": LocaleMS, "ms": LocaleMS}
	for in, want := range cases {
		if got, ok := NormalizeLocale(in); !ok || got != want {
			t.Errorf("NormalizeLocale(%q) = %q, %v", in, got, ok)
		}
	}
	if _, ok := NormalizeLocale("fr"); ok {
		t.Error("fr should not be supported")
	}
}

func TestFormatterDate(t *testing.T) {
	if got := NewFormatter("en").Date("2026-10-14"); got != "14 October 2026" {
		t.Errorf("en date = %q", got)
	}
	if got := NewFormatter("ms").Date("2026-08-03"); got != "3 Ogos 2026" {
		t.Errorf("ms date = %q", got)
	}
	if got := NewFormatter("en").Date(""); got != "" {
		t.Errorf("empty date = %q", got)
	}
	if got := NewFormatter("en").Date("soon"); got != "soon" {
		t.Errorf("unparseable date = %q", got)
	}
}

func TestFormatterMoney(t *testing.T) {
	f := NewFormatter("en")
	got := f.Money(decimal.NewFromInt(212), "MYR")
	if !strings.HasSuffix(got, "212.00") || got == "212.00" {
		t.Errorf("Money(212, MYR) = %q, want symbol and two decimals", got)
	}
	if got := f.Money(decimal.RequireFromString("1234.5"), "ZZZ"); got != "ZZZ 1,234.50" {
		t.Errorf("unknown currency = %q", got)
	}
}

func TestLabels(t *testing.T) {
	ms := NewLabels("ms")
	if got := ms.T(LabelTaxInvoice); got != "Invois Cukai" {
		t.Errorf("ms taxInvoice = %q", got)
	}
	en := NewLabels("en")
	if got := en.PageOf(2, 3); got != "Page 2 of 3" {
		t.Errorf("PageOf = %q", got)
	}
	if got := en.T(LabelTaxSst, "6"); got != "SST (6%)" {
		t.Errorf("taxSst = %q", got)
	}
	if got := en.T("no-such-label"); got != "no-such-label" {
		t.Errorf("unknown key = %q", got)
	}
	if got := NewLabels("fr").T(LabelTotal); got != "Total" {
		t.Errorf("unsupported locale should fall back to English, got %q", got)
	}
}

func TestPrepareTitlesAndPageLabels(t *testing.T) {
	inv := testInvoice(9)
	inv.SenderSstNo = ""
	p := Prepare(layout.Build(inv, layout.DefaultCapacity), "en")
	if p.Title != "Invoice" {
		t.Fatalf("title = %q", p.Title)
	}
	if len(p.Pages) != 2 || p.Pages[1].Label != "Page 2 of 2" {
		t.Fatalf("pages = %d, label = %q", len(p.Pages), p.Pages[len(p.Pages)-1].Label)
	}
	if p.Pages[1].Lines[0].Number != 9 {
		t.Fatalf("second page starts at %d", p.Pages[1].Lines[0].Number)
	}
}

func TestPDFRendererProducesDocument(t *testing.T) {
	for _, n := range []int{0, 8, 25} {
		inv := testInvoice(n)
		inv.Logo = pngDataURL(t)
		inv.Signature = "data:text/plain;base64,aGk="
		out, err := NewPDFRenderer().Render(layout.Build(inv, layout.DefaultCapacity), "ms")
		if err != nil {
			t.Fatalf("%d items: render error = %v", n, err)
		}
		if !bytes.HasPrefix(out, []byte("%PDF-")) {
			t.Fatalf("%d items: output is not a PDF", n)
		}
	}
}

func TestDecodeDataURL(t *testing.T) {
	if _, _, err := decodeDataURL("https://example.com/logo.png"); err == nil {
		t.Error("remote urls must be rejected")
	}
	if _, _, err := decodeDataURL("data:image/gif;base64,R0lG"); err == nil {
		t.Error("gif must be rejected")
	}
	b, ext, err := decodeDataURL(pngDataURL(t))
	if err != nil || ext != "png" || len(b) == 0 {
		t.Fatalf("png = %d bytes, %q, %v", len(b), ext, err)
	}
}

func TestHTMLRendererPages(t *testing.T) {
	inv := testInvoice(9)
	inv.ClientName = "<script>alert(1)</script>"
	out, err := NewHTMLRenderer().Render(layout.Build(inv, layout.DefaultCapacity), "en")
	if err != nil {
		t.Fatal(err)
	}
	html := string(out)
	if n := strings.Count(html, `<section class="page`); n != 2 {
		t.Fatalf("pages = %d, want 2", n)
	}
	if strings.Count(html, "Subtotal:") != 1 {
		t.Error("totals must appear once, on the last page")
	}
	if !strings.Contains(html, "Page 2 of 2") {
		t.Error("condensed header missing page label")
	}
	if strings.Contains(html, "<script>alert") {
		t.Error("client name was not escaped")
	}
	if strings.Count(html, "Bill To") != 1 {
		t.Error("party block must appear only on the first page")
	}
}

func TestHTMLRendererEmptyInvoice(t *testing.T) {
	out, err := NewHTMLRenderer().Render(layout.Build(testInvoice(0), layout.DefaultCapacity), "ms")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), "Tiada item ditambah") {
		t.Error("empty page placeholder missing")
	}
}

func TestHistoryWorkbook(t *testing.T) {
	a := testInvoice(1)
	a.InvoiceNumber = "INV-001"
	b := testInvoice(2)
	b.InvoiceNumber = "INV-002"

	out, err := HistoryWorkbook([]model.Invoice{a, b}, "en")
	if err != nil {
		t.Fatal(err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(out))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := f.GetRows("Invoice")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want header + 2", len(rows))
	}
	if rows[0][0] != "Invoice No" || rows[2][0] != "INV-002" {
		t.Fatalf("rows = %v", rows)
	}
	if rows[2][7] != "424" {
		t.Fatalf("total cell = %q, want 424", rows[2][7])
	}
}
