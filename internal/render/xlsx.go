package render

import (
	"bytes"
	"fmt"

	"smartinvoice/internal/model"
	"smartinvoice/internal/totals"

	"github.com/xuri/excelize/v2"
)

// HistoryWorkbook writes one row per saved invoice. Amounts are numeric cells so the sheet
// can be summed; the currency sits in its own column.
func HistoryWorkbook(history []model.Invoice, locale string) ([]byte, error) {
	l := NewLabels(locale)

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := l.T(LabelSimpleInvoice)
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("xlsx: create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if sheet != "Sheet1" {
		_ = f.DeleteSheet("Sheet1")
	}

	headers := []any{
		l.T(LabelInvoiceNumber), l.T(LabelDate), l.T(LabelDueDate), l.T(LabelClient),
		l.T(LabelCurrency), l.T(LabelSubtotal), l.T(LabelTax), l.T(LabelTotal),
	}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return nil, fmt.Errorf("xlsx: write header: %w", err)
	}

	for i, inv := range history {
		sums := totals.ForInvoice(inv)
		row := []any{
			inv.InvoiceNumber, inv.Date, inv.DueDate, inv.ClientName, inv.Currency,
			sums.Subtotal.InexactFloat64(), sums.TaxAmount.InexactFloat64(), sums.Total.InexactFloat64(),
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("xlsx: write row %d: %w", i+2, err)
		}
	}

	_ = f.SetColWidth(sheet, "A", "A", 14)
	_ = f.SetColWidth(sheet, "B", "C", 12)
	_ = f.SetColWidth(sheet, "D", "D", 30)
	_ = f.SetColWidth(sheet, "E", "E", 10)
	_ = f.SetColWidth(sheet, "F", "H", 14)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("xlsx: write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
