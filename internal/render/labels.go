package render

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Label keys used on the printed invoice.
const (
	LabelTaxInvoice          = "taxInvoice"
	LabelSimpleInvoice       = "simpleInvoice"
	LabelRegNo               = "regNo"
	LabelSstNo               = "sstNo"
	LabelEmail               = "email"
	LabelBillTo              = "billTo"
	LabelNumber              = "number"
	LabelDate                = "date"
	LabelDueDate             = "dueDate"
	LabelDescription         = "description"
	LabelQty                 = "qty"
	LabelRate                = "rate"
	LabelAmount              = "amount"
	LabelSubtotal            = "subtotal"
	LabelTaxSst              = "taxSst"
	LabelTotal               = "total"
	LabelTermsNotes          = "termsNotes"
	LabelAuthorizedSignature = "authorizedSignature"
	LabelNoItems             = "noItems"
	LabelComputerGenerated   = "computerGenerated"
	LabelBranding            = "branding"
	LabelPageOf              = "pageOf"
	LabelInvoiceNumber       = "invoiceNumber"
	LabelClient              = "client"
	LabelCurrency            = "currency"
	LabelTax                 = "tax"
)

var translations = map[language.Tag]map[string]string{
	language.English: {
		LabelTaxInvoice:          "Tax Invoice",
		LabelSimpleInvoice:       "Invoice",
		LabelRegNo:               "Reg. No",
		LabelSstNo:               "SST No",
		LabelEmail:               "Email",
		LabelBillTo:              "Bill To",
		LabelNumber:              "Invoice No",
		LabelDate:                "Date",
		LabelDueDate:             "Due Date",
		LabelDescription:         "Description",
		LabelQty:                 "Qty",
		LabelRate:                "Rate",
		LabelAmount:              "Amount",
		LabelSubtotal:            "Subtotal",
		LabelTaxSst:              "SST (%s%%)",
		LabelTotal:               "Total",
		LabelTermsNotes:          "Terms & Notes",
		LabelAuthorizedSignature: "Authorised Signature",
		LabelNoItems:             "No items added yet",
		LabelComputerGenerated:   "This is a computer-generated document.",
		LabelBranding:            "Created with SmartInvoice",
		LabelPageOf:              "Page %d of %d",
		LabelInvoiceNumber:       "Invoice No",
		LabelClient:              "Client",
		LabelCurrency:            "Currency",
		LabelTax:                 "Tax",
	},
	language.Malay: {
		LabelTaxInvoice:          "Invois Cukai",
		LabelSimpleInvoice:       "Invois",
		LabelRegNo:               "No. Pendaftaran",
		LabelSstNo:               "No. SST",
		LabelEmail:               "E-mel",
		LabelBillTo:              "Bil Kepada",
		LabelNumber:              "No. Invois",
		LabelDate:                "Tarikh",
		LabelDueDate:             "Tarikh Akhir",
		LabelDescription:         "Keterangan",
		LabelQty:                 "Kuantiti",
		LabelRate:                "Kadar",
		LabelAmount:              "Jumlah",
		LabelSubtotal:            "Jumlah Kecil",
		LabelTaxSst:              "SST (%s%%)",
		LabelTotal:               "Jumlah Besar",
		LabelTermsNotes:          "Terma & Nota",
		LabelAuthorizedSignature: "Tandatangan Sah",
		LabelNoItems:             "Tiada item ditambah",
		LabelComputerGenerated:   "Ini adalah dokumen janaan komputer.",
		LabelBranding:            "Dicipta dengan SmartInvoice",
		LabelPageOf:              "Halaman %d daripada %d",
		LabelInvoiceNumber:       "No. Invois",
		LabelClient:              "Pelanggan",
		LabelCurrency:            "Mata Wang",
		LabelTax:                 "Cukai",
	},
}

var labelCatalog = buildCatalog()

func buildCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, msgs := range translations {
		for key, msg := range msgs {
			if err := b.SetString(tag, key, msg); err != nil {
				panic(err)
			}
		}
	}
	return b
}

// Labels resolves label keys for one locale. Unknown keys render as the key itself.
type Labels struct {
	printer *message.Printer
}

func NewLabels(locale string) Labels {
	tag := language.English
	if l, _ := NormalizeLocale(locale); l == LocaleMS {
		tag = language.Malay
	}
	return Labels{printer: message.NewPrinter(tag, message.Catalog(labelCatalog))}
}

// T returns the label for key, formatted with args when the label has verbs.
func (l Labels) T(key string, args ...any) string {
	return l.printer.Sprintf(key, args...)
}

// Title returns the document title label.
func (l Labels) Title(title string) string {
	return l.T(title)
}

// PageOf returns "Page x of n".
func (l Labels) PageOf(x, n int) string {
	return l.T(LabelPageOf, x, n)
}
