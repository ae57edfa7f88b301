package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultNotes is printed on every fresh invoice.
const DefaultNotes = "Payment terms: 30 days.\nCheques payable to \"Inovasi Digital Sdn Bhd\".\nBank: Maybank Berhad (Account: 5140-1122-3344)"

const day = 24 * time.Hour

// FormatInvoiceNumber renders a sequence value as a display number, e.g. INV-007.
func FormatInvoiceNumber(seq int64) string {
	return fmt.Sprintf("INV-%03d", seq)
}

// NewDefaultInvoice returns the seeded sample document used when no draft exists.
func NewDefaultInvoice(now time.Time) Invoice {
	return Invoice{
		ID:            uuid.NewString(),
		InvoiceNumber: "INV-2024-001",
		Date:          now.Format(DateLayout),
		DueDate:       now.Add(14 * day).Format(DateLayout),
		SenderName:    "Inovasi Digital Sdn. Bhd.",
		SenderRegNo:   "202301001234 (123456-X)",
		SenderSstNo:   "W10-2301-32000123",
		SenderEmail:   "billing@inovasidigital.my",
		SenderAddress: "Level 23, Menara TRX, Tun Razak Exchange,\n55188 Kuala Lumpur, Malaysia",
		ClientName:    "Jabatan Teknologi Maklumat",
		ClientEmail:   "admin@jtm.gov.my",
		ClientAddress: "Aras 3, Blok B, Kompleks Kerajaan,\n62502 Putrajaya, Wilayah Persekutuan",
		Currency:      "MYR",
		TaxRate:       decimal.NewFromInt(6),
		Notes:         DefaultNotes,
		Items: []LineItem{
			{
				ID:          NewItemID(),
				Description: "Consultancy Services - System Architecture Review",
				Quantity:    decimal.NewFromInt(1),
				Rate:        decimal.NewFromInt(5500),
			},
			{
				ID:          NewItemID(),
				Description: "Server Migration & Deployment",
				Quantity:    decimal.NewFromInt(1),
				Rate:        decimal.NewFromInt(2400),
			},
		},
	}
}

// NextFrom starts a new document that keeps the seller profile of inv
// (sender identity, branding, currency, tax rate) and resets everything else.
func (inv Invoice) NextFrom(number string, now time.Time) Invoice {
	return Invoice{
		ID:            uuid.NewString(),
		InvoiceNumber: number,
		Date:          now.Format(DateLayout),
		DueDate:       now.Add(7 * day).Format(DateLayout),
		SenderName:    inv.SenderName,
		SenderRegNo:   inv.SenderRegNo,
		SenderSstNo:   inv.SenderSstNo,
		SenderEmail:   inv.SenderEmail,
		SenderAddress: inv.SenderAddress,
		Logo:          inv.Logo,
		Signature:     inv.Signature,
		Currency:      inv.Currency,
		TaxRate:       inv.TaxRate,
		Notes:         DefaultNotes,
		Items:         []LineItem{NewLineItem()},
	}
}
