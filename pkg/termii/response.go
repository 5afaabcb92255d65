package termii

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Response is the upstream reply exactly as received. Non-2xx statuses are
// returned as a Response too; inspect StatusCode or the body to detect
// failures reported by the API.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// IsSuccess reports whether the status code is in the 2xx range.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Decode unmarshals the JSON body into v.
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("failed to decode response body (status %d): %w", r.StatusCode, err)
	}
	return nil
}

// Map decodes a JSON object body into a generic map.
func (r *Response) Map() (map[string]any, error) {
	var m map[string]any
	if err := r.Decode(&m); err != nil {
		return nil, err
	}
	return m, nil
}

func (r *Response) String() string {
	return string(r.Body)
}
