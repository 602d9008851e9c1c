package model

import "encoding/json"

// Field names used by the lead form.
const (
	FieldFullName    = "full_name"
	FieldEmail       = "email"
	FieldPhoneNumber = "phone_number"
)

// FieldData is one answered form field. The platform models every field as a list.
type FieldData struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// UnmarshalJSON implements json.Unmarshaler. Decoding never fails: a field
// that is not an object decodes to the zero value, a values key that is not a
// list counts as no values, and non-string values keep their JSON text.
func (f *FieldData) UnmarshalJSON(data []byte) error {
	*f = FieldData{}

	var raw struct {
		Name   json.RawMessage `json:"name"`
		Values json.RawMessage `json:"values"`
	}
	if json.Unmarshal(data, &raw) != nil {
		return nil
	}
	_ = json.Unmarshal(raw.Name, &f.Name)

	var values []json.RawMessage
	if json.Unmarshal(raw.Values, &values) != nil {
		return nil
	}
	f.Values = make([]string, 0, len(values))
	for _, v := range values {
		f.Values = append(f.Values, ValueText(v))
	}
	return nil
}

// ValueText renders one raw field value. Strings are unquoted, null is empty
// and anything else keeps its JSON text.
func ValueText(v json.RawMessage) string {
	var s string
	if json.Unmarshal(v, &s) == nil {
		return s
	}
	return string(v)
}

// Lead is the canonical lead record delivered to every sink.
// Absent fields are empty strings.
type Lead struct {
	FullName    string
	Email       string
	PhoneNumber string
}

// NewLeadFromFields builds a Lead taking the first value of each field.
// A field with no values counts as absent. Later duplicates of a name win.
func NewLeadFromFields(fields []FieldData) Lead {
	answers := make(map[string]string, len(fields))
	for _, f := range fields {
		if len(f.Values) == 0 {
			continue
		}
		answers[f.Name] = f.Values[0]
	}

	return Lead{
		FullName:    answers[FieldFullName],
		Email:       answers[FieldEmail],
		PhoneNumber: answers[FieldPhoneNumber],
	}
}

// Row returns the spreadsheet columns in their fixed order.
func (l Lead) Row() []string {
	return []string{l.FullName, l.Email, l.PhoneNumber}
}
