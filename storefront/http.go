package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

const (
	headerContentType    = "Content-Type"
	headerUserAgent      = "User-Agent"
	headerIdempotencyKey = "X-Idempotency-Key"
	contentTypeJSON      = "application/json"
	clientUserAgent      = "fteam-storefront-go/1.0.0"
)

type idempotencyKeyContextKey struct{}

// WithIdempotencyKey returns a context carrying a client-generated key.
// The key is sent as the X-Idempotency-Key header on the request made
// with that context.
func WithIdempotencyKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, idempotencyKeyContextKey{}, key)
}

func idempotencyKeyFromContext(ctx context.Context) string {
	key, _ := ctx.Value(idempotencyKeyContextKey{}).(string)
	return key
}

// doRequest performs an HTTP request against a service base URL and
// handles common error cases.
func (c *Client) doRequest(ctx context.Context, method, base string, query url.Values, body interface{}, result interface{}) error {
	reqURL := base
	if len(query) > 0 {
		reqURL = base + "?" + query.Encode()
	}

	// Prepare request body
	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set(headerUserAgent, clientUserAgent)
	if body != nil {
		req.Header.Set(headerContentType, contentTypeJSON)
	}
	if key := idempotencyKeyFromContext(ctx); key != "" {
		req.Header.Set(headerIdempotencyKey, key)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		return parseError(resp.StatusCode, respBody)
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}

	return nil
}

// get performs a GET request against a service base URL.
func (c *Client) get(ctx context.Context, base string, query url.Values, result interface{}) error {
	return c.doRequest(ctx, http.MethodGet, base, query, nil, result)
}

// post performs a POST request against a service base URL.
func (c *Client) post(ctx context.Context, base string, body interface{}, result interface{}) error {
	return c.doRequest(ctx, http.MethodPost, base, nil, body, result)
}

// put performs a PUT request against a service base URL.
func (c *Client) put(ctx context.Context, base string, body interface{}, result interface{}) error {
	return c.doRequest(ctx, http.MethodPut, base, nil, body, result)
}

// delete performs a DELETE request with a body against a service base URL.
func (c *Client) delete(ctx context.Context, base string, body interface{}, result interface{}) error {
	return c.doRequest(ctx, http.MethodDelete, base, nil, body, result)
}
