package lead

import (
	"bytes"
	"encoding/json"
	"fmt"

	"lead-webhook-bridge/internal/model"
)

// --- Webhook delivery envelope ---

// Envelope is the body of one webhook delivery.
// Changes that fail to decode are collected in Invalid instead of failing the
// whole delivery; only a body that is not JSON at all is an error.
type Envelope struct {
	Object  string          `json:"object"`
	Entry   []Entry         `json:"entry"`
	Invalid []InvalidChange `json:"-"`
}

// Entry groups the changes for one page.
type Entry struct {
	ID      FlexibleID  `json:"id"`
	Time    json.Number `json:"time"`
	Changes []Change    `json:"changes"`
}

// Change is a single lead event.
type Change struct {
	Field string      `json:"field"`
	Value ChangeValue `json:"value"`
}

// InvalidChange is a change skipped while decoding an envelope.
type InvalidChange struct {
	Entry  int
	Change int
	Err    error
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *Envelope) UnmarshalJSON(data []byte) error {
	*e = Envelope{}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		// Valid JSON of the wrong shape carries no changes.
		return nil
	}
	_ = json.Unmarshal(top["object"], &e.Object)

	var entries []json.RawMessage
	if err := json.Unmarshal(top["entry"], &entries); err != nil {
		return nil
	}

	for i, rawEntry := range entries {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(rawEntry, &fields); err != nil {
			e.Invalid = append(e.Invalid, InvalidChange{Entry: i, Change: -1, Err: fmt.Errorf("entry: %w", err)})
			continue
		}

		var entry Entry
		_ = json.Unmarshal(fields["id"], &entry.ID)
		_ = json.Unmarshal(fields["time"], &entry.Time)

		var changes []json.RawMessage
		_ = json.Unmarshal(fields["changes"], &changes)
		for j, rawChange := range changes {
			var c Change
			if err := json.Unmarshal(rawChange, &c); err != nil {
				e.Invalid = append(e.Invalid, InvalidChange{Entry: i, Change: j, Err: err})
				continue
			}
			entry.Changes = append(entry.Changes, c)
		}
		e.Entry = append(e.Entry, entry)
	}
	return nil
}

// ValueKind tells how a change delivers its lead.
type ValueKind int

const (
	// ValueKindReference carries only a lead ID; the fields must be fetched.
	ValueKindReference ValueKind = iota
	// ValueKindInline embeds the answered fields.
	ValueKindInline
)

func (k ValueKind) String() string {
	if k == ValueKindInline {
		return "inline"
	}
	return "reference"
}

// ChangeValue is the lead payload of a change. Kind is decided while decoding:
// a non-empty field_data list selects ValueKindInline. Only leadgen_id is
// decoded strictly; the other keys fall back to their zero value.
type ChangeValue struct {
	Kind        ValueKind
	LeadID      string
	PageID      string
	FormID      string
	AdID        string
	CreatedTime json.Number
	FieldData   []model.FieldData
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *ChangeValue) UnmarshalJSON(data []byte) error {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return fmt.Errorf("change value: %w", err)
	}

	var leadID FlexibleID
	if raw, ok := keys["leadgen_id"]; ok {
		if err := json.Unmarshal(raw, &leadID); err != nil {
			return fmt.Errorf("change value: leadgen_id: %w", err)
		}
	}

	*v = ChangeValue{
		Kind:        ValueKindReference,
		LeadID:      string(leadID),
		PageID:      lenientID(keys["page_id"]),
		FormID:      lenientID(keys["form_id"]),
		AdID:        lenientID(keys["ad_id"]),
		CreatedTime: lenientNumber(keys["created_time"]),
	}

	var fields []model.FieldData
	if raw, ok := keys["field_data"]; ok && json.Unmarshal(raw, &fields) == nil && len(fields) > 0 {
		v.Kind = ValueKindInline
		v.FieldData = fields
	}
	return nil
}

func lenientID(raw json.RawMessage) string {
	var id FlexibleID
	if raw == nil || json.Unmarshal(raw, &id) != nil {
		return ""
	}
	return string(id)
}

func lenientNumber(raw json.RawMessage) json.Number {
	var n json.Number
	if raw == nil || json.Unmarshal(raw, &n) != nil {
		return ""
	}
	return n
}

// FlexibleID decodes an identifier sent either as a JSON string or a number.
type FlexibleID string

// UnmarshalJSON implements json.Unmarshaler.
func (id *FlexibleID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = FlexibleID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = FlexibleID(n.String())
	return nil
}

// --- Delivery ---

// Target is where one lead is delivered.
type Target struct {
	SheetName    string
	TemplateName string
	LanguageCode string
	Recipients   []string
}

// Sink names.
const (
	SinkSpreadsheet = "spreadsheet"
	SinkWhatsApp    = "whatsapp"
)

// SinkResult is the outcome of one sink write. Err is nil on success.
type SinkResult struct {
	Sink      string
	Recipient string
	Err       error
}

// OK reports whether the write succeeded.
func (r SinkResult) OK() bool { return r.Err == nil }

// ProcessDeliveryOutput summarises one webhook delivery.
type ProcessDeliveryOutput struct {
	Changes  int
	Skipped  int // changes that could not be decoded
	Resolved int
	Results  []SinkResult
}

// Failures counts failed sink writes.
func (o ProcessDeliveryOutput) Failures() int {
	n := 0
	for _, r := range o.Results {
		if !r.OK() {
			n++
		}
	}
	return n
}
