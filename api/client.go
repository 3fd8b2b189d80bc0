package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/fwojciec/eventchat"
)

// Interface compliance checks.
var (
	_ eventchat.Streamer = (*Client)(nil)
	_ eventchat.Replier  = (*Client)(nil)
)

// Client talks to the assistant endpoints of one site.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a [Client].
type Option func(*Client)

// WithBaseURL sets the site base URL. Useful for testing with httptest.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(url, "/") }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a [Client] with the given options.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		httpClient: http.DefaultClient,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Stream posts req to the streaming endpoint and returns the unread event
// stream body. The caller must close it.
func (c *Client) Stream(ctx context.Context, req eventchat.Request) (io.ReadCloser, error) {
	resp, err := c.post(ctx, streamPath, "text/event-stream", req)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// Reply posts req to the non-streaming endpoint and decodes the full answer.
func (c *Client) Reply(ctx context.Context, req eventchat.Request) (eventchat.Reply, error) {
	resp, err := c.post(ctx, chatPath, "application/json", req)
	if err != nil {
		return eventchat.Reply{}, err
	}
	defer resp.Body.Close()

	var r apiReply
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return eventchat.Reply{}, fmt.Errorf("api: decode reply: %w", err)
	}
	reply := eventchat.Reply{Answer: eventchat.Answer{Text: r.Answer, FollowUp: r.FollowUp}}
	if len(r.Events) > 0 && string(r.Events) != "null" {
		events, err := eventchat.DecodeEvents(r.Events)
		if err != nil {
			return reply, fmt.Errorf("api: %w", err)
		}
		reply.Events = events
	}
	return reply, nil
}

func (c *Client) post(ctx context.Context, path, accept string, req eventchat.Request) (*http.Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	body, err := json.Marshal(apiRequest{
		Message:    strings.TrimSpace(req.Message),
		OnlyFuture: req.OnlyFuture,
	})
	if err != nil {
		return nil, fmt.Errorf("api: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("api: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", accept)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("api: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		return nil, parseHTTPError(resp)
	}
	return resp, nil
}

func parseHTTPError(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("api: HTTP %d (failed to read body: %w)", resp.StatusCode, err)
	}
	var apiErr apiErrorResponse
	if err := json.Unmarshal(body, &apiErr); err != nil || apiErr.Error == "" {
		return fmt.Errorf("api: HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return fmt.Errorf("api: HTTP %d: %s", resp.StatusCode, apiErr.Error)
}
