package invoice

import (
	"encoding/json"
	"fmt"
)

// Field keys, in report order.
const (
	KeyInvoiceNumber = "invoice_number"
	KeyDate          = "date"
	KeyTotalAmount   = "total_amount"
)

// Keys lists every field of a Record in the order reports render them.
var Keys = []string{KeyInvoiceNumber, KeyDate, KeyTotalAmount}

// Record is a complete invoice extraction. Values are the substrings captured
// from OCR text, stored verbatim.
type Record struct {
	InvoiceNumber string `json:"invoice_number"`
	Date          string `json:"date"`
	TotalAmount   string `json:"total_amount"`
}

// Field is one key/value pair of a Record.
type Field struct {
	Key   string
	Value string
}

// Fields returns the record's fields in report order.
func (r *Record) Fields() []Field {
	return []Field{
		{Key: KeyInvoiceNumber, Value: r.InvoiceNumber},
		{Key: KeyDate, Value: r.Date},
		{Key: KeyTotalAmount, Value: r.TotalAmount},
	}
}

// Get returns the value stored under key.
func (r *Record) Get(key string) (string, bool) {
	switch key {
	case KeyInvoiceNumber:
		return r.InvoiceNumber, true
	case KeyDate:
		return r.Date, true
	case KeyTotalAmount:
		return r.TotalAmount, true
	}
	return "", false
}

// Validate checks that every field is present and matches the character
// classes the parser captures.
func (r *Record) Validate() error {
	if r == nil {
		return fmt.Errorf("invoice record is nil")
	}
	if err := recordSchema.Validate(r.asMap()); err != nil {
		return fmt.Errorf("invoice record does not match schema: %w", err)
	}
	return nil
}

// MarshalIndentJSON renders the record as an indented JSON object with a
// trailing newline.
func (r *Record) MarshalIndentJSON() ([]byte, error) {
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

func (r *Record) asMap() map[string]any {
	m := make(map[string]any, len(Keys))
	for _, f := range r.Fields() {
		m[f.Key] = f.Value
	}
	return m
}
