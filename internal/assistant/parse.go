package assistant

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"smartinvoice/internal/model"

	"github.com/go-playground/validator/v10"
)

var (
	openingFence = regexp.MustCompile("^```(?:json)?\\s*")
	closingFence = regexp.MustCompile("\\s*```$")

	validate = validator.New()
)

// StripCodeFence removes a markdown code fence the model may wrap around its JSON.
func StripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	text = openingFence.ReplaceAllString(text, "")
	text = closingFence.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// Parse decodes a model response into a validated Patch.
//
// Empty or unparseable text yields an empty patch and no error. Parseable JSON whose fields
// have the wrong type or break a constraint yields an error wrapping ErrValidation. Unknown
// fields are ignored.
func Parse(text string) (Patch, error) {
	raw := []byte(StripCodeFence(text))
	if len(raw) == 0 || !json.Valid(raw) {
		return Patch{}, nil
	}
	if bytes.Equal(raw, []byte("null")) {
		return Patch{}, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return Patch{}, validationFailure(fmt.Errorf("response is not an object: %w", err))
	}
	if err := rejectNulls(fields); err != nil {
		return Patch{}, validationFailure(err)
	}
	known, err := knownFields(fields)
	if err != nil {
		return Patch{}, validationFailure(err)
	}

	var p Patch
	if err := json.Unmarshal(known, &p); err != nil {
		return Patch{}, validationFailure(err)
	}
	if err := check(p); err != nil {
		return Patch{}, validationFailure(err)
	}
	return p, nil
}

// rejectNulls treats an explicit null on a known field, or a null line item, as a type error.
func rejectNulls(fields map[string]json.RawMessage) error {
	for _, name := range (Patch{}).schemaFields() {
		v, ok := fields[name]
		if ok && bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			return fmt.Errorf("field %s: null is not allowed", name)
		}
	}
	rawItems, ok := fields["items"]
	if !ok {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(rawItems, &items); err != nil {
		return fmt.Errorf("field items: %w", err)
	}
	for i, it := range items {
		trimmed := bytes.TrimSpace(it)
		if len(trimmed) == 0 || trimmed[0] != '{' {
			return fmt.Errorf("field items[%d]: expected an object", i)
		}
		var itemFields map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &itemFields); err != nil {
			return fmt.Errorf("field items[%d]: %w", i, err)
		}
		for _, name := range itemFieldNames {
			if v, ok := itemFields[name]; ok && bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
				return fmt.Errorf("field items[%d].%s: null is not allowed", i, name)
			}
		}
	}
	return nil
}

var itemFieldNames = []string{"id", "description", "quantity", "rate"}

// knownFields re-encodes the object keeping only exact schema keys. encoding/json matches
// struct fields case-insensitively, so "Items" would otherwise decode as items.
func knownFields(fields map[string]json.RawMessage) ([]byte, error) {
	out := make(map[string]json.RawMessage, len(fields))
	for _, name := range (Patch{}).schemaFields() {
		if v, ok := fields[name]; ok {
			out[name] = v
		}
	}
	if rawItems, ok := out["items"]; ok {
		var items []map[string]json.RawMessage
		if err := json.Unmarshal(rawItems, &items); err != nil {
			return nil, fmt.Errorf("field items: %w", err)
		}
		kept := make([]map[string]json.RawMessage, len(items))
		for i, it := range items {
			kept[i] = make(map[string]json.RawMessage, len(itemFieldNames))
			for _, name := range itemFieldNames {
				if v, ok := it[name]; ok {
					kept[i][name] = v
				}
			}
		}
		b, err := json.Marshal(kept)
		if err != nil {
			return nil, fmt.Errorf("field items: %w", err)
		}
		out["items"] = b
	}
	return json.Marshal(out)
}

func check(p Patch) error {
	if err := validate.Struct(p); err != nil {
		return err
	}
	for _, d := range []struct {
		name string
		v    *string
	}{{"date", p.Date}, {"dueDate", p.DueDate}} {
		if d.v == nil || *d.v == "" {
			continue
		}
		if _, err := time.Parse(model.DateLayout, *d.v); err != nil {
			return fmt.Errorf("field %s: %q is not YYYY-MM-DD", d.name, *d.v)
		}
	}
	if p.Items == nil {
		return nil
	}
	for i, it := range *p.Items {
		if err := validate.Struct(it); err != nil {
			return fmt.Errorf("items[%d]: %w", i, err)
		}
	}
	return nil
}

// schemaFields lists every top-level field a patch may carry.
func (Patch) schemaFields() []string {
	return []string{
		"invoiceNumber", "date", "dueDate",
		"clientName", "clientEmail", "clientAddress",
		"senderName", "senderRegNo", "senderSstNo", "senderEmail", "senderAddress",
		"currency", "taxRate", "notes", "items",
	}
}
