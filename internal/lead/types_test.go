package lead_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lead-webhook-bridge/internal/lead"
	"lead-webhook-bridge/internal/model"
)

func TestEnvelopeDecoding(t *testing.T) {
	body := `{
		"object": "page",
		"entry": [
			{"id": "111", "time": 1714557600, "changes": [
				{"field": "leadgen", "value": {"field_data": [{"name": "full_name", "values": ["Jane Doe"]}]}},
				{"field": "leadgen", "value": {"leadgen_id": "123", "page_id": "111", "form_id": 42, "created_time": 1714557600}}
			]},
			{"id": 222, "changes": [
				{"field": "leadgen", "value": {"leadgen_id": 456}},
				{"field": "leadgen", "value": {}}
			]}
		]
	}`

	var env lead.Envelope
	require.NoError(t, json.Unmarshal([]byte(body), &env))

	assert.Equal(t, "page", env.Object)
	require.Len(t, env.Entry, 2)
	assert.Equal(t, lead.FlexibleID("111"), env.Entry[0].ID)
	assert.Equal(t, lead.FlexibleID("222"), env.Entry[1].ID)
	assert.Equal(t, json.Number("1714557600"), env.Entry[0].Time)

	inline := env.Entry[0].Changes[0].Value
	assert.Equal(t, lead.ValueKindInline, inline.Kind)
	assert.Equal(t, []model.FieldData{{Name: "full_name", Values: []string{"Jane Doe"}}}, inline.FieldData)

	ref := env.Entry[0].Changes[1].Value
	assert.Equal(t, lead.ValueKindReference, ref.Kind)
	assert.Equal(t, "123", ref.LeadID)
	assert.Equal(t, "111", ref.PageID)
	assert.Equal(t, "42", ref.FormID)
	assert.Equal(t, json.Number("1714557600"), ref.CreatedTime)

	numeric := env.Entry[1].Changes[0].Value
	assert.Equal(t, lead.ValueKindReference, numeric.Kind)
	assert.Equal(t, "456", numeric.LeadID)

	empty := env.Entry[1].Changes[1].Value
	assert.Equal(t, lead.ValueKindReference, empty.Kind)
	assert.Empty(t, empty.LeadID)
}

func TestChangeValueEmptyFieldData(t *testing.T) {
	tcs := map[string]string{
		"null":     `{"leadgen_id": "9", "field_data": null}`,
		"empty":    `{"leadgen_id": "9", "field_data": []}`,
		"not list": `{"leadgen_id": "9", "field_data": "oops"}`,
	}
	for name, body := range tcs {
		t.Run(name, func(t *testing.T) {
			var v lead.ChangeValue
			require.NoError(t, json.Unmarshal([]byte(body), &v))

			assert.Equal(t, lead.ValueKindReference, v.Kind)
			assert.Empty(t, v.FieldData)
			assert.Equal(t, "9", v.LeadID)
		})
	}
}

func TestChangeValueLenientFields(t *testing.T) {
	var v lead.ChangeValue
	body := `{"page_id": true, "form_id": {}, "created_time": "soon",
		"field_data": [{"name": "full_name", "values": [42]}, "junk", {"name": "email", "values": "x"}]}`
	require.NoError(t, json.Unmarshal([]byte(body), &v))

	assert.Equal(t, lead.ValueKindInline, v.Kind)
	assert.Empty(t, v.PageID)
	assert.Empty(t, v.FormID)
	assert.Empty(t, v.CreatedTime)
	assert.Equal(t, []model.FieldData{
		{Name: "full_name", Values: []string{"42"}},
		{},
		{Name: "email"},
	}, v.FieldData)
}

func TestEnvelopeSkipsUndecodableChanges(t *testing.T) {
	body := `{"object": "page", "entry": [
		{"id": "1", "changes": [
			{"field": "leadgen", "value": {"field_data": [{"name": "full_name", "values": ["A"]}]}},
			{"field": "leadgen", "value": {"leadgen_id": true}},
			{"field": "leadgen", "value": "oops"}
		]},
		"not an entry",
		{"id": {"nested": 1}, "changes": [{"value": {"leadgen_id": "7"}}]}
	]}`

	var env lead.Envelope
	require.NoError(t, json.Unmarshal([]byte(body), &env))

	require.Len(t, env.Entry, 2)
	require.Len(t, env.Entry[0].Changes, 1)
	assert.Equal(t, lead.ValueKindInline, env.Entry[0].Changes[0].Value.Kind)
	assert.Empty(t, env.Entry[1].ID)
	require.Len(t, env.Entry[1].Changes, 1)
	assert.Equal(t, "7", env.Entry[1].Changes[0].Value.LeadID)

	require.Len(t, env.Invalid, 3)
	assert.Equal(t, 0, env.Invalid[0].Entry)
	assert.Equal(t, 1, env.Invalid[0].Change)
	assert.Equal(t, 2, env.Invalid[1].Change)
	assert.Equal(t, 1, env.Invalid[2].Entry)
	assert.Equal(t, -1, env.Invalid[2].Change)
	for _, bad := range env.Invalid {
		assert.Error(t, bad.Err)
	}
}

func TestEnvelopeDecodingShapes(t *testing.T) {
	t.Run("wrong shape is empty", func(t *testing.T) {
		for _, body := range []string{`[]`, `42`, `{"entry": "x"}`, `{"object": 1, "entry": null}`} {
			var env lead.Envelope
			require.NoError(t, json.Unmarshal([]byte(body), &env), body)
			assert.Empty(t, env.Entry, body)
			assert.Empty(t, env.Invalid, body)
		}
	})

	t.Run("not json", func(t *testing.T) {
		var env lead.Envelope
		assert.Error(t, json.Unmarshal([]byte(`{not json`), &env))
	})
}

func TestChangeValueRejectsNonObject(t *testing.T) {
	var v lead.ChangeValue
	assert.Error(t, json.Unmarshal([]byte(`"oops"`), &v))

	var id lead.FlexibleID
	assert.Error(t, json.Unmarshal([]byte(`true`), &id))
}

func TestProcessDeliveryOutputFailures(t *testing.T) {
	out := lead.ProcessDeliveryOutput{Results: []lead.SinkResult{
		{Sink: lead.SinkSpreadsheet},
		{Sink: lead.SinkWhatsApp, Recipient: "1", Err: lead.ErrNoRecipients},
		{Sink: lead.SinkWhatsApp, Recipient: "2"},
	}}
	assert.Equal(t, 1, out.Failures())
	assert.True(t, out.Results[0].OK())
	assert.False(t, out.Results[1].OK())
}

func TestValueKindString(t *testing.T) {
	assert.Equal(t, "inline", lead.ValueKindInline.String())
	assert.Equal(t, "reference", lead.ValueKindReference.String())
}
