package assistant

import (
	"smartinvoice/internal/model"

	"github.com/shopspring/decimal"
)

// PlaceholderDescription labels a repaired line item the model returned without a description.
const PlaceholderDescription = "Item"

// ItemPatch is a line item as the model may return it: every field optional.
type ItemPatch struct {
	ID          *string  `json:"id,omitempty"`
	Description *string  `json:"description,omitempty"`
	Quantity    *float64 `json:"quantity,omitempty" validate:"omitempty,gte=0"`
	Rate        *float64 `json:"rate,omitempty" validate:"omitempty,gte=0"`
}

// Patch is a partial invoice update. A nil field is absent and leaves the document untouched.
// Items, when present, is the complete replacement collection.
type Patch struct {
	InvoiceNumber *string      `json:"invoiceNumber,omitempty"`
	Date          *string      `json:"date,omitempty"`
	DueDate       *string      `json:"dueDate,omitempty"`
	ClientName    *string      `json:"clientName,omitempty"`
	ClientEmail   *string      `json:"clientEmail,omitempty"`
	ClientAddress *string      `json:"clientAddress,omitempty"`
	SenderName    *string      `json:"senderName,omitempty"`
	SenderRegNo   *string      `json:"senderRegNo,omitempty"`
	SenderSstNo   *string      `json:"senderSstNo,omitempty"`
	SenderEmail   *string      `json:"senderEmail,omitempty"`
	SenderAddress *string      `json:"senderAddress,omitempty"`
	Currency      *string      `json:"currency,omitempty"`
	TaxRate       *float64     `json:"taxRate,omitempty" validate:"omitempty,gte=0,lte=100"`
	Notes         *string      `json:"notes,omitempty"`
	Items         *[]ItemPatch `json:"items,omitempty"`
}

// Fields lists the JSON names of the fields present in p, in schema order.
func (p Patch) Fields() []string {
	present := []struct {
		name string
		set  bool
	}{
		{"invoiceNumber", p.InvoiceNumber != nil},
		{"date", p.Date != nil},
		{"dueDate", p.DueDate != nil},
		{"clientName", p.ClientName != nil},
		{"clientEmail", p.ClientEmail != nil},
		{"clientAddress", p.ClientAddress != nil},
		{"senderName", p.SenderName != nil},
		{"senderRegNo", p.SenderRegNo != nil},
		{"senderSstNo", p.SenderSstNo != nil},
		{"senderEmail", p.SenderEmail != nil},
		{"senderAddress", p.SenderAddress != nil},
		{"currency", p.Currency != nil},
		{"taxRate", p.TaxRate != nil},
		{"notes", p.Notes != nil},
		{"items", p.Items != nil},
	}
	fields := make([]string, 0, len(present))
	for _, f := range present {
		if f.set {
			fields = append(fields, f.name)
		}
	}
	return fields
}

// IsEmpty reports whether applying p changes nothing.
func (p Patch) IsEmpty() bool {
	return len(p.Fields()) == 0
}

// Repair completes every item of an items patch: a missing or repeated id gets a fresh one,
// a missing or blank description becomes PlaceholderDescription, a missing quantity becomes 1
// and a missing rate becomes 0.
func Repair(p *Patch, newID func() string) {
	if p.Items == nil {
		return
	}
	seen := make(map[string]struct{}, len(*p.Items))
	items := *p.Items
	for i := range items {
		it := &items[i]
		if it.ID == nil || *it.ID == "" || isSeen(seen, *it.ID) {
			id := newID()
			it.ID = &id
		}
		seen[*it.ID] = struct{}{}
		if it.Description == nil || *it.Description == "" {
			d := PlaceholderDescription
			it.Description = &d
		}
		if it.Quantity == nil {
			q := 1.0
			it.Quantity = &q
		}
		if it.Rate == nil {
			r := 0.0
			it.Rate = &r
		}
	}
}

func isSeen(seen map[string]struct{}, id string) bool {
	_, ok := seen[id]
	return ok
}

// Apply returns doc with every present field of p replaced. Scalars overwrite; items, when
// present, replace the whole collection even if empty. doc itself is never modified.
func Apply(doc model.Invoice, p Patch) model.Invoice {
	out := doc.Clone()

	setString(&out.InvoiceNumber, p.InvoiceNumber)
	setString(&out.Date, p.Date)
	setString(&out.DueDate, p.DueDate)
	setString(&out.ClientName, p.ClientName)
	setString(&out.ClientEmail, p.ClientEmail)
	setString(&out.ClientAddress, p.ClientAddress)
	setString(&out.SenderName, p.SenderName)
	setString(&out.SenderRegNo, p.SenderRegNo)
	setString(&out.SenderSstNo, p.SenderSstNo)
	setString(&out.SenderEmail, p.SenderEmail)
	setString(&out.SenderAddress, p.SenderAddress)
	setString(&out.Currency, p.Currency)
	setString(&out.Notes, p.Notes)
	if p.TaxRate != nil {
		out.TaxRate = decimal.NewFromFloat(*p.TaxRate)
	}

	if p.Items != nil {
		items := make([]model.LineItem, 0, len(*p.Items))
		for _, it := range *p.Items {
			items = append(items, it.lineItem())
		}
		out.Items = items
	}
	return out
}

// lineItem converts an item patch, falling back to the repair defaults for absent fields.
func (it ItemPatch) lineItem() model.LineItem {
	li := model.LineItem{
		ID:          model.NewItemID(),
		Description: PlaceholderDescription,
		Quantity:    decimal.NewFromInt(1),
		Rate:        decimal.Zero,
	}
	if it.ID != nil && *it.ID != "" {
		li.ID = *it.ID
	}
	if it.Description != nil && *it.Description != "" {
		li.Description = *it.Description
	}
	if it.Quantity != nil {
		li.Quantity = decimal.NewFromFloat(*it.Quantity)
	}
	if it.Rate != nil {
		li.Rate = decimal.NewFromFloat(*it.Rate)
	}
	return li
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
