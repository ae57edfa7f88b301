package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DateLayout is the ISO calendar date format used for Date and DueDate.
const DateLayout = "2006-01-02"

// Document title keys, resolved to labels at render time.
const (
	TitleTaxInvoice    = "taxInvoice"
	TitleSimpleInvoice = "simpleInvoice"
)

// ErrInvalidInvoice is the sentinel wrapped by every ValidationError.
var ErrInvalidInvoice = errors.New("invalid invoice")

var hundred = decimal.NewFromInt(100)

func init() {
	// Documents travel to the front end and to the assistant with numeric quantity/rate fields.
	decimal.MarshalJSONWithoutQuotes = true
}

// ValidationError reports the first invalid field of an invoice.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrInvalidInvoice.Error(), e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInvoice
}

// LineItem is one billable row. Its ID is unique within an invoice and never reused.
type LineItem struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
}

// Amount returns quantity * rate with no rounding.
func (i LineItem) Amount() decimal.Decimal {
	return i.Quantity.Mul(i.Rate)
}

// NewLineItem returns a blank row with a fresh identifier.
func NewLineItem() LineItem {
	return LineItem{
		ID:       NewItemID(),
		Quantity: decimal.NewFromInt(1),
		Rate:     decimal.Zero,
	}
}

// NewItemID generates a line item identifier.
func NewItemID() string {
	return uuid.NewString()
}

// Invoice is the canonical invoice document. ID is the history merge key.
type Invoice struct {
	ID            string          `json:"id"`
	InvoiceNumber string          `json:"invoiceNumber"`
	Date          string          `json:"date"`
	DueDate       string          `json:"dueDate"`
	SenderName    string          `json:"senderName"`
	SenderRegNo   string          `json:"senderRegNo"`
	SenderSstNo   string          `json:"senderSstNo"` // tax registration number
	SenderEmail   string          `json:"senderEmail"`
	SenderAddress string          `json:"senderAddress"`
	ClientName    string          `json:"clientName"`
	ClientEmail   string          `json:"clientEmail"`
	ClientAddress string          `json:"clientAddress"`
	Currency      string          `json:"currency"`
	TaxRate       decimal.Decimal `json:"taxRate"` // percentage, 0-100
	Notes         string          `json:"notes"`
	Items         []LineItem      `json:"items"`
	Logo          string          `json:"logo,omitempty"`      // data URL
	Signature     string          `json:"signature,omitempty"` // data URL
}

// IsTaxInvoice reports whether a sender tax registration number is present.
func (inv Invoice) IsTaxInvoice() bool {
	return strings.TrimSpace(inv.SenderSstNo) != ""
}

// Title returns the label key of the displayed document title.
func (inv Invoice) Title() string {
	if inv.IsTaxInvoice() {
		return TitleTaxInvoice
	}
	return TitleSimpleInvoice
}

// DueBeforeIssue flags a due date earlier than the issue date. It is informational only.
func (inv Invoice) DueBeforeIssue() bool {
	issue, err1 := time.Parse(DateLayout, inv.Date)
	due, err2 := time.Parse(DateLayout, inv.DueDate)
	if err1 != nil || err2 != nil {
		return false
	}
	return due.Before(issue)
}

// Clone returns a copy that shares no item storage with inv.
func (inv Invoice) Clone() Invoice {
	out := inv
	out.Items = make([]LineItem, len(inv.Items))
	copy(out.Items, inv.Items)
	return out
}

// Normalize fills a missing identifier and guarantees a non-nil item slice.
func (inv *Invoice) Normalize() {
	if inv.ID == "" {
		inv.ID = uuid.NewString()
	}
	if inv.Items == nil {
		inv.Items = []LineItem{}
	}
}

// Validate checks the document invariants.
func (inv Invoice) Validate() error {
	if strings.TrimSpace(inv.ID) == "" {
		return &ValidationError{Field: "id", Reason: "is required"}
	}
	if inv.TaxRate.IsNegative() || inv.TaxRate.GreaterThan(hundred) {
		return &ValidationError{Field: "taxRate", Reason: "must be between 0 and 100"}
	}
	if err := validateDate("date", inv.Date); err != nil {
		return err
	}
	if err := validateDate("dueDate", inv.DueDate); err != nil {
		return err
	}

	seen := make(map[string]struct{}, len(inv.Items))
	for idx, item := range inv.Items {
		field := fmt.Sprintf("items[%d]", idx)
		if item.ID == "" {
			return &ValidationError{Field: field + ".id", Reason: "is required"}
		}
		if _, dup := seen[item.ID]; dup {
			return &ValidationError{Field: field + ".id", Reason: "duplicates " + item.ID}
		}
		seen[item.ID] = struct{}{}
		if item.Quantity.IsNegative() {
			return &ValidationError{Field: field + ".quantity", Reason: "must not be negative"}
		}
		if item.Rate.IsNegative() {
			return &ValidationError{Field: field + ".rate", Reason: "must not be negative"}
		}
	}
	return nil
}

func validateDate(field, value string) error {
	if value == "" {
		return nil
	}
	if _, err := time.Parse(DateLayout, value); err != nil {
		return &ValidationError{Field: field, Reason: "must be YYYY-MM-DD"}
	}
	return nil
}
