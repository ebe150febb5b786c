package platform

import (
	"context"
	"encoding/json"
)

// BackendHealth is the payload of /health. Older backends answer a bare
// string, which lands in Status.
type BackendHealth struct {
	Status  string `json:"status" yaml:"status"`
	Version string `json:"version,omitempty" yaml:"version,omitempty"`
}

func (h *BackendHealth) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*h = BackendHealth{Status: s}
		return nil
	}
	type plain BackendHealth
	return json.Unmarshal(data, (*plain)(h))
}

// Health asks the backend for its status.
func (c *Client) Health(ctx context.Context) (*BackendHealth, error) {
	h, err := get[*BackendHealth](ctx, c, "/health", nil)
	if err != nil {
		return nil, err
	}
	if h == nil {
		h = &BackendHealth{}
	}
	return h, nil
}

// Ping checks that the backend answers envelopes at all.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.Health(ctx)
	return err
}
