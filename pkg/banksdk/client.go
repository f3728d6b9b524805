package banksdk

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client is the single outbound channel to the ledger service. It carries no
// credentials itself; authenticated calls go through a Session, which reads
// the current token at call time.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a ledger service client with a default request timeout.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// url builds a complete URL by appending the path to the base URL.
func (c *Client) url(path string) string {
	return c.BaseURL + path
}

// do performs one HTTP request. A non-empty token is attached as a bearer
// credential; an empty token sends the request unauthenticated and lets the
// server reject it. The request body, when non-nil, is encoded as JSON.
//
// The gateway never retries, queues or deduplicates: each call is an
// independent fire-and-observe operation.
func (c *Client) do(
	ctx context.Context,
	method, path string,
	body any,
	token string,
) (*http.Response, *APIError) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, unexpectedError(err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), reader)
	if err != nil {
		return nil, unexpectedError(err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		// No response arrived: distinct from "server rejected".
		return nil, networkError(err)
	}

	return resp, nil
}

// decodeJSON decodes a successful response into target, or normalizes a
// non-2xx response into an *APIError. target may be nil when the caller only
// cares about the status.
func decodeJSON(resp *http.Response, target any) *APIError {
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return unexpectedError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return parseErrorResponse(resp.StatusCode, bodyBytes)
	}

	if target == nil {
		return nil
	}

	if err := json.Unmarshal(bodyBytes, target); err != nil {
		return unexpectedError(err)
	}

	return nil
}

// Health checks ledger service liveness. Unauthenticated.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	resp, apiErr := c.do(ctx, http.MethodGet, "/livez", nil, "")
	if apiErr != nil {
		return nil, apiErr
	}

	var health HealthResponse
	if apiErr := decodeJSON(resp, &health); apiErr != nil {
		return nil, apiErr
	}

	return &health, nil
}
