package graph

import (
	"encoding/json"
	"time"
)

// Config configures a Graph API client. One client talks to one API version.
type Config struct {
	BaseURL           string // defaults to DefaultBaseURL
	APIVersion        string // e.g. "v19.0"
	AccessToken       string
	Timeout           time.Duration
	RequestsPerSecond float64 // 0 disables throttling
}

// FieldData is one answered lead form field.
type FieldData struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// UnmarshalJSON implements json.Unmarshaler. Values of any JSON type are kept:
// strings as-is, null as "" and the rest as their JSON text.
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
	_ = json.Unmarshal(raw.Values, &values)
	for _, v := range values {
		var s string
		if json.Unmarshal(v, &s) != nil {
			s = string(v)
		}
		f.Values = append(f.Values, s)
	}
	return nil
}

// Lead is the lead-detail object returned by GET /{lead_id}.
type Lead struct {
	ID          string      `json:"id"`
	CreatedTime string      `json:"created_time,omitempty"`
	AdID        string      `json:"ad_id,omitempty"`
	FormID      string      `json:"form_id,omitempty"`
	FieldData   []FieldData `json:"field_data"`
}

// TemplateMessage is the body for POST /{phone_id}/messages with type=template.
type TemplateMessage struct {
	MessagingProduct string   `json:"messaging_product"`
	To               string   `json:"to"`
	Type             string   `json:"type"`
	Template         Template `json:"template"`
}

// Template names a pre-approved message template.
type Template struct {
	Name       string      `json:"name"`
	Language   Language    `json:"language"`
	Components []Component `json:"components"`
}

// Language selects the template translation.
type Language struct {
	Code string `json:"code"`
}

// Component is a template section (header, body, button).
type Component struct {
	Type       string      `json:"type"`
	Parameters []Parameter `json:"parameters"`
}

// Parameter is one positional template variable.
type Parameter struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// SendMessageResponse is the messages endpoint success body.
type SendMessageResponse struct {
	MessagingProduct string `json:"messaging_product"`
	Contacts         []struct {
		Input string `json:"input"`
		WaID  string `json:"wa_id"`
	} `json:"contacts"`
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
}

// errorEnvelope is the Graph API error body.
type errorEnvelope struct {
	Error struct {
		Message   string `json:"message"`
		Type      string `json:"type"`
		Code      int    `json:"code"`
		FBTraceID string `json:"fbtrace_id"`
	} `json:"error"`
}
