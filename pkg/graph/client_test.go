package graph_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lead-webhook-bridge/pkg/graph"
)

func TestGetLead(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v18.0/123":
			if r.URL.Query().Get("access_token") != "page-token" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{
				"id": "123",
				"created_time": "2024-05-01T10:00:00+0000",
				"field_data": [
					{"name": "full_name", "values": ["Jane Doe"]},
					{"name": "email", "values": ["jane@example.com"]}
				]
			}`))
		case "/v18.0/mixed":
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"id": "mixed", "field_data": [
				{"name": "full_name", "values": ["Ana"]},
				{"name": "phone_number", "values": [15550001, null]}
			]}`))
		case "/v18.0/500":
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error":{"message":"Unknown error","type":"OAuthException","code":1}}`))
		case "/v18.0/garbled":
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{not json`))
		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`not found`))
		}
	}))
	defer ts.Close()

	client := graph.NewClient(graph.Config{
		BaseURL:     ts.URL,
		APIVersion:  "v18.0",
		AccessToken: "page-token",
	})

	t.Run("success", func(t *testing.T) {
		lead, err := client.GetLead(context.Background(), "123")
		require.NoError(t, err)
		assert.Equal(t, "123", lead.ID)
		require.Len(t, lead.FieldData, 2)
		assert.Equal(t, "full_name", lead.FieldData[0].Name)
		assert.Equal(t, []string{"Jane Doe"}, lead.FieldData[0].Values)
	})

	t.Run("non-string values", func(t *testing.T) {
		lead, err := client.GetLead(context.Background(), "mixed")
		require.NoError(t, err)
		require.Len(t, lead.FieldData, 2)
		assert.Equal(t, []string{"Ana"}, lead.FieldData[0].Values)
		assert.Equal(t, []string{"15550001", ""}, lead.FieldData[1].Values)
	})

	t.Run("non-success keeps body", func(t *testing.T) {
		_, err := client.GetLead(context.Background(), "500")
		require.Error(t, err)

		var apiErr *graph.APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
		assert.Contains(t, apiErr.Body, "Unknown error")
		assert.Equal(t, "Unknown error", apiErr.Message)
		assert.Equal(t, 1, apiErr.Code)
	})

	t.Run("plain body error", func(t *testing.T) {
		_, err := client.GetLead(context.Background(), "missing")
		var apiErr *graph.APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, "not found", apiErr.Body)
		assert.Contains(t, apiErr.Error(), "404")
	})

	t.Run("decode failure", func(t *testing.T) {
		_, err := client.GetLead(context.Background(), "garbled")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "decode")
	})

	t.Run("network failure", func(t *testing.T) {
		bad := graph.NewClient(graph.Config{APIVersion: "v18.0", Timeout: time.Second})
		bad.SetBaseURL("http://127.0.0.1:1")
		_, err := bad.GetLead(context.Background(), "123")
		require.Error(t, err)
	})
}

func TestSendTemplateMessage(t *testing.T) {
	var (
		gotAuth string
		gotPath string
		gotBody map[string]interface{}
	)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		gotBody = map[string]interface{}{}
		json.NewDecoder(r.Body).Decode(&gotBody)

		if gotBody["to"] == "fail" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":{"message":"Invalid parameter","code":100}}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"messaging_product":"whatsapp","contacts":[{"input":"15550001","wa_id":"15550001"}],"messages":[{"id":"wamid.1"}]}`))
	}))
	defer ts.Close()

	client := graph.NewClient(graph.Config{BaseURL: ts.URL, APIVersion: "v19.0", AccessToken: "secret"})

	t.Run("success", func(t *testing.T) {
		msg := graph.NewTemplateMessage("15550001", "lead_alert", "en_US", "Jane Doe", "jane@example.com", "N/A")
		resp, err := client.SendTemplateMessage(context.Background(), "phone-1", msg)
		require.NoError(t, err)
		require.Len(t, resp.Messages, 1)
		assert.Equal(t, "wamid.1", resp.Messages[0].ID)

		assert.Equal(t, "Bearer secret", gotAuth)
		assert.Equal(t, "/v19.0/phone-1/messages", gotPath)
		assert.Equal(t, "whatsapp", gotBody["messaging_product"])
		assert.Equal(t, "template", gotBody["type"])

		tmpl := gotBody["template"].(map[string]interface{})
		assert.Equal(t, "lead_alert", tmpl["name"])
		assert.Equal(t, "en_US", tmpl["language"].(map[string]interface{})["code"])

		components := tmpl["components"].([]interface{})
		require.Len(t, components, 1)
		body := components[0].(map[string]interface{})
		assert.Equal(t, "body", body["type"])

		params := body["parameters"].([]interface{})
		require.Len(t, params, 3)
		texts := make([]string, 0, 3)
		for _, p := range params {
			pm := p.(map[string]interface{})
			assert.Equal(t, "text", pm["type"])
			texts = append(texts, pm["text"].(string))
		}
		assert.Equal(t, []string{"Jane Doe", "jane@example.com", "N/A"}, texts)
	})

	t.Run("api failure", func(t *testing.T) {
		_, err := client.SendTemplateMessage(context.Background(), "phone-1", graph.NewTemplateMessage("fail", "t", "en"))
		var apiErr *graph.APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
		assert.Equal(t, 100, apiErr.Code)
	})
}

func TestRateLimitedClientHonoursContext(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"1","field_data":[]}`))
	}))
	defer ts.Close()

	client := graph.NewClient(graph.Config{BaseURL: ts.URL, APIVersion: "v19.0", RequestsPerSecond: 0.001})

	_, err := client.GetLead(context.Background(), "1")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = client.GetLead(ctx, "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limiter")
}
