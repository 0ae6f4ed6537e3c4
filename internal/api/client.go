// Package api is the HTTP client for the clinic backend. Every method maps to
// one backend endpoint and returns typed responses or an *Error.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RequestIDHeader carries a per-request correlation id
const RequestIDHeader = "X-Request-ID"

// Error is a non-2xx response from the backend
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("HTTP %d: %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("HTTP %d: %s", e.Status, e.Message)
}

// StatusCode extracts the HTTP status from err, or 0 if err is not an *Error
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// Client talks JSON to the backend
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for baseURL with the given request timeout
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the backend address
func (c *Client) BaseURL() string {
	return c.baseURL
}

// errorBody is the backend's failure shape: {"error": "..."} or {"message": "..."}
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// do sends a JSON request and decodes a JSON response into out (if non-nil)
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	reqID := uuid.NewString()
	req.Header.Set(RequestIDHeader, reqID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		slog.Debug("api: request failed", "method", method, "path", redactPath(path), "request_id", reqID, "err", err)
		return fmt.Errorf("%s %s: %w", method, redactPath(path), err)
	}
	defer resp.Body.Close()

	slog.Debug("api: response", "method", method, "path", redactPath(path), "status", resp.StatusCode,
		"request_id", reqID, "duration", time.Since(start))

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{Status: resp.StatusCode}
		var eb errorBody
		if json.Unmarshal(data, &eb) == nil {
			apiErr.Message = eb.Error
			if apiErr.Message == "" {
				apiErr.Message = eb.Message
			}
		}
		if apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(string(data))
		}
		return apiErr
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// redactPath hides path-embedded tokens from logs and errors. The backend
// takes tokens as the last path segment on protected routes.
func redactPath(path string) string {
	if i := strings.Index(path, "?"); i >= 0 {
		path = path[:i]
	}
	parts := strings.Split(path, "/")
	if len(parts) > 2 && len(parts[len(parts)-1]) > 32 {
		parts[len(parts)-1] = "***"
	}
	return strings.Join(parts, "/")
}
