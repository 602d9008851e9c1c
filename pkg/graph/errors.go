package graph

import (
	"encoding/json"
	"fmt"
)

// APIError is returned for any non-2xx Graph API response. Body keeps the raw
// response for diagnostics.
type APIError struct {
	StatusCode int
	Body       string
	Message    string
	Code       int
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("graph API error %d (code %d): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("graph API error %d: %s", e.StatusCode, e.Body)
}

func newAPIError(status int, raw []byte) *APIError {
	apiErr := &APIError{StatusCode: status, Body: string(raw)}

	var env errorEnvelope
	if err := json.Unmarshal(raw, &env); err == nil {
		apiErr.Message = env.Error.Message
		apiErr.Code = env.Error.Code
	}
	return apiErr
}
