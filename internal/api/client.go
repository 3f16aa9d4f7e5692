// Package api provides the resilient HTTP client for the BuildBidz backend,
// plus typed wrappers for each backend capability.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/buildbidz/buildbidz-go/internal/errors"
)

// TokenSource supplies the bearer token for authenticated calls. An empty
// token means the request is sent unauthenticated.
type TokenSource interface {
	Token() string
}

// Config holds client settings. Zero values fall back to defaults matching
// the web client: 3 retries, 1s base delay, 60s request timeout.
type Config struct {
	BaseURL    string
	MaxRetries int
	BaseDelay  time.Duration
	Timeout    time.Duration
}

// Client performs outbound requests with credential attachment and bounded
// exponential-backoff retry on transient failures (network errors, 5xx, 429).
type Client struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
	maxRetries int
	baseDelay  time.Duration
	logger     zerolog.Logger

	// wait is swapped out in tests to avoid real sleeps.
	wait func(ctx context.Context, d time.Duration) error
}

// NewClient creates a Client. tokens may be nil for unauthenticated use.
func NewClient(cfg Config, tokens TokenSource, logger zerolog.Logger) *Client {
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.BaseDelay == 0 {
		cfg.BaseDelay = time.Second
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		tokens:  tokens,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		maxRetries: cfg.MaxRetries,
		baseDelay:  cfg.BaseDelay,
		logger:     logger,
		wait:       sleepContext,
	}
}

// Do performs a JSON request against path and decodes a 2xx response body
// into out (which may be nil). body is JSON-encoded when non-nil.
func (c *Client) Do(ctx context.Context, method, path string, body, out interface{}) error {
	var encoded []byte
	if body != nil {
		var err error
		encoded, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
	}
	return c.doWithRetry(ctx, method, path, encoded, "application/json", out)
}

// DoMultipart performs a multipart POST with one file part and optional text
// fields, decoding a 2xx response into out. The content type, including the
// generated boundary, comes from the multipart writer.
func (c *Client) DoMultipart(ctx context.Context, path string, fields map[string]string, fileField, fileName string, file io.Reader, out interface{}) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return fmt.Errorf("failed to write form field %s: %w", name, err)
		}
	}

	part, err := writer.CreateFormFile(fileField, fileName)
	if err != nil {
		return fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("failed to write file data: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close multipart writer: %w", err)
	}

	return c.doWithRetry(ctx, http.MethodPost, path, buf.Bytes(), writer.FormDataContentType(), out)
}

// doWithRetry issues the request, retrying transient failures with
// exponential backoff (delay = base * 2^attempt). Terminal client errors
// (4xx other than 429) are returned after a single attempt. Once the attempt
// budget is exhausted the last response or transport error is surfaced.
func (c *Client) doWithRetry(ctx context.Context, method, path string, body []byte, contentType string, out interface{}) error {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			delay := c.baseDelay * (1 << (attempt - 1))
			c.logger.Debug().
				Str("method", method).
				Str("path", path).
				Int("attempt", attempt).
				Dur("delay", delay).
				Msg("retrying request")
			if err := c.wait(ctx, delay); err != nil {
				return err
			}
		}

		resp, err := c.send(ctx, method, path, body, contentType)
		if err != nil {
			lastErr = err
			if ctx.Err() != nil {
				return err
			}
			continue
		}

		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			// Transient server-side failure; keep the decoded error in case
			// this was the final attempt.
			lastErr = c.responseError(resp)
			resp.Body.Close()
			continue
		}

		return c.decode(resp, out)
	}

	return errors.Wrap(errors.ErrAPIRequest,
		fmt.Sprintf("%s %s failed after %d attempts", method, path, c.maxRetries+1), lastErr)
}

// send issues a single request with credential attachment.
func (c *Client) send(ctx context.Context, method, path string, body []byte, contentType string) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", contentType)
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach server: %w", err)
	}
	return resp, nil
}

// decode consumes the response: 2xx bodies are decoded into out, everything
// else becomes an APIError with the extracted detail message.
func (c *Client) decode(resp *http.Response, out interface{}) error {
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.responseError(resp)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// responseError extracts a structured error message from the response body.
// The backend reports errors as {"detail": "..."} (sometimes an object with
// a "message" field) or {"message": "..."}; anything unparseable falls back
// to the generic "API Error: <status>" message.
func (c *Client) responseError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))

	var parsed struct {
		Detail  json.RawMessage `json:"detail"`
		Message string          `json:"message"`
	}

	detail := ""
	if err := json.Unmarshal(body, &parsed); err == nil {
		switch {
		case len(parsed.Detail) > 0:
			var s string
			if err := json.Unmarshal(parsed.Detail, &s); err == nil {
				detail = s
			} else {
				var obj struct {
					Message string `json:"message"`
				}
				if err := json.Unmarshal(parsed.Detail, &obj); err == nil {
					detail = obj.Message
				}
			}
		case parsed.Message != "":
			detail = parsed.Message
		}
	}

	return errors.NewAPIError(resp.StatusCode, detail)
}

// Ping probes backend reachability with a single attempt and no retry. Any
// HTTP response counts as reachable; only a transport failure does not.
func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.send(ctx, http.MethodGet, "/health", nil, "")
	if err != nil {
		return errors.Wrap(errors.ErrUnreachable, "backend unreachable", err)
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return nil
}

// sleepContext sleeps for d or until ctx is cancelled.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
