package browser

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	// DefaultBrowserbaseURL is the Browserbase REST API base URL
	DefaultBrowserbaseURL = "https://api.browserbase.com/v1"

	liveViewBaseURL = "https://browserbase.com/sessions/"
)

// BrowserbaseClient creates and releases remote browser sessions.
type BrowserbaseClient struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
}

// BrowserbaseOption configures a BrowserbaseClient.
type BrowserbaseOption func(*BrowserbaseClient)

// WithBrowserbaseURL overrides the API base URL.
func WithBrowserbaseURL(baseURL string) BrowserbaseOption {
	return func(c *BrowserbaseClient) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithBrowserbaseHTTPClient replaces the HTTP client used for API calls.
func WithBrowserbaseHTTPClient(h *http.Client) BrowserbaseOption {
	return func(c *BrowserbaseClient) {
		c.httpClient = h
	}
}

// NewBrowserbaseClient creates a client authenticated with apiKey.
func NewBrowserbaseClient(apiKey string, opts ...BrowserbaseOption) *BrowserbaseClient {
	c := &BrowserbaseClient{
		httpClient: &http.Client{},
		apiKey:     apiKey,
		baseURL:    DefaultBrowserbaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RemoteSession is a created Browserbase session.
type RemoteSession struct {
	ID         string `json:"id"`
	ConnectURL string `json:"connectUrl"`
	Region     string `json:"region"`
	Status     string `json:"status"`
}

// LiveViewURL returns the page where the session can be watched.
func (s *RemoteSession) LiveViewURL() string {
	return LiveViewURL(s.ID)
}

// LiveViewURL builds the live view reference for a session id.
func LiveViewURL(id string) string {
	return liveViewBaseURL + id
}

type createSessionRequest struct {
	ProjectID string `json:"projectId"`
	Region    string `json:"region,omitempty"`
	Timeout   int    `json:"timeout,omitempty"`
}

type updateSessionRequest struct {
	ProjectID string `json:"projectId"`
	Status    string `json:"status"`
}

// CreateSession starts a remote browser.
func (c *BrowserbaseClient) CreateSession(ctx context.Context, opts RemoteOptions) (*RemoteSession, error) {
	if opts.ProjectID == "" {
		return nil, fmt.Errorf("browserbase project id is required")
	}
	if opts.Region == "" {
		opts.Region = DefaultRemoteRegion
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultRemoteTimeout
	}

	var session RemoteSession
	err := c.do(ctx, http.MethodPost, "/sessions", createSessionRequest{
		ProjectID: opts.ProjectID,
		Region:    opts.Region,
		Timeout:   opts.Timeout,
	}, &session)
	if err != nil {
		return nil, fmt.Errorf("failed to create browserbase session: %w", err)
	}
	if session.ID == "" || session.ConnectURL == "" {
		return nil, fmt.Errorf("failed to create browserbase session: response missing id or connectUrl")
	}
	return &session, nil
}

// ReleaseSession asks Browserbase to end a session before its timeout.
func (c *BrowserbaseClient) ReleaseSession(ctx context.Context, projectID, id string) error {
	err := c.do(ctx, http.MethodPost, "/sessions/"+id, updateSessionRequest{
		ProjectID: projectID,
		Status:    "REQUEST_RELEASE",
	}, nil)
	if err != nil {
		return fmt.Errorf("failed to release browserbase session %s: %w", id, err)
	}
	return nil
}

func (c *BrowserbaseClient) do(ctx context.Context, method, path string, body, out interface{}) error {
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(bodyBytes))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-BB-API-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
