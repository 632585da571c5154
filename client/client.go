// Package client is the Go client for the pharmacy API: a thin JSON HTTP
// layer plus one facade method per endpoint. Failures are normalized into a
// single error path carrying the server's message when one is present.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/mylittlefarma/pharmacy-api/logging"
)

// Client issues JSON requests against a fixed base URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the given base URL, e.g. "http://localhost:5000".
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

// apiError is a failure the server described. The message comes from the
// response's error or message field when present.
type apiError struct {
	StatusCode int
	Message    string
}

func (e *apiError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// errorBody covers both failure shapes the server produces: handlers write
// {success:false, error} and the auth endpoints write {message}.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Request sends one JSON request and decodes the response into out when out
// is non-nil. Non-2xx responses become an error carrying the server's
// error or message field; every failure is logged. No retries, no timeout
// beyond what ctx imposes.
func (c *Client) Request(ctx context.Context, method, endpoint string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logging.Error("Request failed", "method", method, "endpoint", endpoint, "error", err)
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		logging.Error("Failed to read response", "method", method, "endpoint", endpoint, "error", err)
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		_ = json.Unmarshal(data, &eb)

		msg := eb.Error
		if msg == "" {
			msg = eb.Message
		}

		logging.Error("Request rejected",
			"method", method,
			"endpoint", endpoint,
			"status", resp.StatusCode,
			"message", msg,
		)
		return &apiError{StatusCode: resp.StatusCode, Message: msg}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			logging.Error("Failed to decode response", "method", method, "endpoint", endpoint, "error", err)
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
