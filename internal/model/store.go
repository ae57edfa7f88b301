package model

import "time"

// Store keys of the draft/history collaborator.
const (
	KeyDraft   = "invoiceDraft"
	KeyHistory = "invoiceHistory"
)

// SequenceInvoiceNumber names the counter behind generated invoice numbers.
const SequenceInvoiceNumber = "invoiceCounter"

// KVEntry is one JSON document stored under a logical key.
type KVEntry struct {
	Key       string    `gorm:"type:varchar(64);primaryKey" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (KVEntry) TableName() string {
	return "kv_entries"
}

// Sequence is an externally owned counter. Only the sequence repository mutates it.
type Sequence struct {
	Name      string    `gorm:"type:varchar(64);primaryKey" json:"name"`
	Value     int64     `gorm:"not null;default:0" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
