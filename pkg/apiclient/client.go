package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"

	"github.com/eventsqa/harness/pkg/envelope"
)

const DefaultBaseURL = "http://localhost:5500"

// Response is a raw API response. Envelope is nil when the body is not a valid envelope.
type Response struct {
	StatusCode int
	Body       []byte
	Envelope   *envelope.Envelope
}

// OK reports a 2xx status.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// JSON decodes the body into a generic object.
func (r *Response) JSON() (map[string]any, error) {
	var m map[string]any
	if err := json.Unmarshal(r.Body, &m); err != nil {
		return nil, fmt.Errorf("failed to decode response body: %w", err)
	}
	return m, nil
}

// Items returns the envelope data objects.
func (r *Response) Items() ([]map[string]any, error) {
	if r.Envelope == nil {
		return nil, fmt.Errorf("response with status %d has no envelope", r.StatusCode)
	}
	return r.Envelope.Items()
}

// Client talks to the Events REST API at BaseURL/api/<entity>.
type Client struct {
	BaseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// EntityURL returns the collection URL for entity, or the item URL when id is set.
func (c *Client) EntityURL(entity, id string) string {
	url := fmt.Sprintf("%s/api/%s", c.BaseURL, strings.ToLower(entity))
	if id != "" {
		url += "/" + id
	}
	return url
}

func (c *Client) Create(ctx context.Context, entity string, data map[string]any) (*Response, error) {
	return c.do(ctx, http.MethodPost, c.EntityURL(entity, ""), data)
}

func (c *Client) List(ctx context.Context, entity string) (*Response, error) {
	return c.do(ctx, http.MethodGet, c.EntityURL(entity, ""), nil)
}

func (c *Client) Get(ctx context.Context, entity, id string) (*Response, error) {
	return c.do(ctx, http.MethodGet, c.EntityURL(entity, id), nil)
}

func (c *Client) Update(ctx context.Context, entity, id string, data map[string]any) (*Response, error) {
	return c.do(ctx, http.MethodPut, c.EntityURL(entity, id), data)
}

func (c *Client) Delete(ctx context.Context, entity, id string) (*Response, error) {
	return c.do(ctx, http.MethodDelete, c.EntityURL(entity, id), nil)
}

// Metadata fetches GET /api/metadata.
func (c *Client) Metadata(ctx context.Context) (*Response, error) {
	return c.do(ctx, http.MethodGet, c.BaseURL+"/api/metadata", nil)
}

// Root fetches the bare base URL.
func (c *Client) Root(ctx context.Context) (*Response, error) {
	return c.do(ctx, http.MethodGet, c.BaseURL, nil)
}

// WaitForReady polls the metadata endpoint until it answers 200 or timeout elapses.
func (c *Client) WaitForReady(ctx context.Context, timeout time.Duration) error {
	log := zap.S().Named("api_client")

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 250 * time.Millisecond
	b.MaxInterval = 2 * time.Second

	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		resp, err := c.Metadata(ctx)
		if err != nil {
			return struct{}{}, err
		}
		if resp.StatusCode != http.StatusOK {
			return struct{}{}, fmt.Errorf("metadata returned %d", resp.StatusCode)
		}
		return struct{}{}, nil
	},
		backoff.WithBackOff(b),
		backoff.WithMaxElapsedTime(timeout),
		backoff.WithNotify(func(err error, next time.Duration) {
			log.Debugw("api not ready", "url", c.BaseURL, "error", err, "retry_in", next)
		}),
	)
	if err != nil {
		return fmt.Errorf("api at %s not ready after %s: %w", c.BaseURL, timeout, err)
	}
	log.Infow("api ready", "url", c.BaseURL)
	return nil
}

func (c *Client) do(ctx context.Context, method, url string, data map[string]any) (*Response, error) {
	var body io.Reader
	if data != nil {
		b, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, url, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	r := &Response{StatusCode: resp.StatusCode, Body: raw}
	if env, err := envelope.Decode(raw); err == nil {
		r.Envelope = env
	}

	zap.S().Named("api_client").Debugw("request", "method", method, "url", url, "status", resp.StatusCode)
	return r, nil
}
