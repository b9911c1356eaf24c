package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/khanonymous/relay-backend/internal/service"
)

const defaultTimeout = 10 * time.Second

// HTTPGateway delivers anonymized copies through the messaging front-end's
// webhook API. It is the outbound half of the relay; the inbound half arrives
// on the events surface.
type HTTPGateway struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPGateway creates a gateway client for the given front-end base URL
func NewHTTPGateway(baseURL, apiKey string) *HTTPGateway {
	return &HTTPGateway{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: defaultTimeout},
	}
}

var _ service.Gateway = (*HTTPGateway)(nil)

type deliverRequest struct {
	ToUser  int64  `json:"to_user"`
	Content string `json:"content"`
}

type deliverResponse struct {
	MessageID int64 `json:"message_id"`
}

type notifyRequest struct {
	User int64  `json:"user"`
	Text string `json:"text"`
}

// Deliver sends an anonymized copy and returns the front-end message id
// assigned to the receiver's copy.
func (g *HTTPGateway) Deliver(ctx context.Context, toUser int64, content string) (int64, error) {
	var resp deliverResponse
	if err := g.post(ctx, "/deliver", deliverRequest{ToUser: toUser, Content: content}, &resp); err != nil {
		return 0, err
	}
	return resp.MessageID, nil
}

// Notify sends a plain service notification, no correlation recorded
func (g *HTTPGateway) Notify(ctx context.Context, user int64, text string) error {
	return g.post(ctx, "/notify", notifyRequest{User: user, Text: text}, nil)
}

func (g *HTTPGateway) post(ctx context.Context, path string, payload, dest interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("gateway encode: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("gateway request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("gateway call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("gateway status %d: %s", resp.StatusCode, string(b))
	}

	if dest != nil {
		if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
			return fmt.Errorf("gateway decode: %w", err)
		}
	}
	return nil
}
