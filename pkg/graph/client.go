package graph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/time/rate"
)

// Client is a minimal Graph API client covering lead retrieval and
// WhatsApp Cloud template messages.
type Client struct {
	baseURL     string
	apiVersion  string
	accessToken string
	httpClient  *http.Client
	limiter     *rate.Limiter
}

// NewClient creates a new Graph API client.
func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RequestsPerSecond > 0 {
		burst := int(cfg.RequestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		apiVersion:  cfg.APIVersion,
		accessToken: cfg.AccessToken,
		httpClient:  &http.Client{Timeout: timeout},
		limiter:     limiter,
	}
}

// SetBaseURL overrides the Graph host, for tests.
func (c *Client) SetBaseURL(baseURL string) {
	c.baseURL = strings.TrimRight(baseURL, "/")
}

func (c *Client) endpoint(parts ...string) string {
	segments := []string{c.baseURL}
	if c.apiVersion != "" {
		segments = append(segments, c.apiVersion)
	}
	for _, p := range parts {
		segments = append(segments, url.PathEscape(p))
	}
	return strings.Join(segments, "/")
}

// GetLead fetches full lead detail by ID via GET /{version}/{lead_id}.
func (c *Client) GetLead(ctx context.Context, leadID string) (*Lead, error) {
	q := url.Values{}
	q.Set("access_token", c.accessToken)
	u := c.endpoint(leadID) + "?" + q.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build get lead request: %w", err)
	}

	raw, err := c.do(httpReq)
	if err != nil {
		return nil, err
	}

	var lead Lead
	if err := json.Unmarshal(raw, &lead); err != nil {
		return nil, fmt.Errorf("failed to decode lead response: %w", err)
	}
	return &lead, nil
}

// SendTemplateMessage sends msg from the given WhatsApp phone number ID.
func (c *Client) SendTemplateMessage(ctx context.Context, phoneID string, msg TemplateMessage) (*SendMessageResponse, error) {
	body, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal template message: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(phoneID, "messages"), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build send message request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.accessToken))

	raw, err := c.do(httpReq)
	if err != nil {
		return nil, err
	}

	var out SendMessageResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to decode send message response: %w", err)
	}
	return &out, nil
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	if err := c.limiter.Wait(req.Context()); err != nil {
		return nil, fmt.Errorf("graph rate limiter: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call graph API: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read graph API response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newAPIError(resp.StatusCode, raw)
	}
	return raw, nil
}

// NewTemplateMessage builds a template message with a single body component
// whose text parameters follow params in order.
func NewTemplateMessage(to, templateName, languageCode string, params ...string) TemplateMessage {
	parameters := make([]Parameter, 0, len(params))
	for _, p := range params {
		parameters = append(parameters, Parameter{Type: ParameterTypeText, Text: p})
	}

	return TemplateMessage{
		MessagingProduct: MessagingProductWhatsApp,
		To:               to,
		Type:             MessageTypeTemplate,
		Template: Template{
			Name:     templateName,
			Language: Language{Code: languageCode},
			Components: []Component{
				{Type: ComponentTypeBody, Parameters: parameters},
			},
		},
	}
}
