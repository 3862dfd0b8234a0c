package bazaar

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultEndpoint is the public bazaar snapshot URL.
const DefaultEndpoint = "https://api.hypixel.net/v2/skyblock/bazaar"

// StatusError reports a non-success HTTP status from the API.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected HTTP status: %d", e.Code)
}

// APIError reports an API-level failure (success=false in the payload).
type APIError struct {
	Cause string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API unavailable: %s", e.Cause)
}

// TransportError wraps a network-level failure reaching the API.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return fmt.Sprintf("HTTP error: %v", e.Err) }
func (e *TransportError) Unwrap() error { return e.Err }

// ParseError wraps a malformed payload.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return fmt.Sprintf("parse error: %v", e.Err) }
func (e *ParseError) Unwrap() error { return e.Err }

// Client fetches bazaar snapshots. The zero value is not usable; construct
// via NewClient so the HTTP client always has a timeout.
type Client struct {
	Endpoint   string
	HTTPClient *http.Client
}

// NewClient returns a Client for the given endpoint. An empty endpoint
// selects DefaultEndpoint; a zero timeout defaults to 10 seconds.
func NewClient(endpoint string, timeout time.Duration) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		Endpoint:   endpoint,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// Fetch retrieves one full bazaar snapshot. Errors are typed so callers can
// distinguish transport, protocol, and API-reported failures.
func (c *Client) Fetch(ctx context.Context) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Endpoint, nil)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Code: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	var parsed Response
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &ParseError{Err: err}
	}

	if !parsed.Success {
		cause := parsed.Cause
		if cause == "" {
			cause = "Unknown error"
		}
		return nil, &APIError{Cause: cause}
	}

	return &parsed, nil
}
