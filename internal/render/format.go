// Package render turns a layout.View into printable output: PDF, an HTML print page and the
// history spreadsheet. Money, dates and labels are localised for English and Malay.
package render

import (
	"fmt"
	"strings"
	"time"

	"smartinvoice/internal/model"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Supported locales.
const (
	LocaleEN = "en"
	LocaleMS = "ms"
)

var malayMonths = [...]string{
	"Januari", "Februari", "Mac", "April", "Mei", "Jun",
	"Julai", "Ogos", "September", "Oktober", "November", "Disember",
}

// NormalizeLocale maps a language tag or code to a supported locale. ok is false when the
// input names neither English nor Malay.
func NormalizeLocale(s string) (string, bool) {
	tag, err := language.Parse(strings.TrimSpace(s))
	if err != nil {
		return "", false
	}
	base, _ := tag.Base()
	switch base.String() {
	case LocaleEN:
		return LocaleEN, true
	case LocaleMS:
		return LocaleMS, true
	}
	return "", false
}

// Formatter formats amounts and dates the way the printed invoice shows them (en-MY / ms-MY).
type Formatter struct {
	Locale  string
	printer *message.Printer
}

func NewFormatter(locale string) Formatter {
	if l, ok := NormalizeLocale(locale); ok {
		locale = l
	} else {
		locale = LocaleEN
	}
	tag := language.MustParse("en-MY")
	if locale == LocaleMS {
		tag = language.MustParse("ms-MY")
	}
	return Formatter{Locale: locale, printer: message.NewPrinter(tag)}
}

// Money renders amount in the currency's symbol and minor-unit scale, e.g. "RM1,234.50".
// Unknown currency codes render as "CODE 1,234.50".
func (f Formatter) Money(amount decimal.Decimal, code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	unit, err := currency.ParseISO(code)
	if err != nil {
		return strings.TrimSpace(code + " " + f.number(amount, 2))
	}
	scale, _ := currency.Standard.Rounding(unit)
	sym := f.printer.Sprint(currency.NarrowSymbol(unit))
	return sym + f.number(amount, scale)
}

func (f Formatter) number(amount decimal.Decimal, scale int) string {
	v := amount.Round(int32(scale)).InexactFloat64()
	return f.printer.Sprint(number.Decimal(v, number.Scale(scale)))
}

// Date renders an ISO date in long form ("14 October 2026", "14 Oktober 2026"). Empty input
// renders as empty; unparseable input is returned unchanged.
func (f Formatter) Date(iso string) string {
	if iso == "" {
		return ""
	}
	t, err := time.Parse(model.DateLayout, iso)
	if err != nil {
		return iso
	}
	month := t.Month().String()
	if f.Locale == LocaleMS {
		month = malayMonths[t.Month()-1]
	}
	return fmt.Sprintf("%d %s %d", t.Day(), month, t.Year())
}

// Percent renders a tax rate without trailing zeros ("6", "6.5").
func (f Formatter) Percent(rate decimal.Decimal) string {
	return rate.String()
}
