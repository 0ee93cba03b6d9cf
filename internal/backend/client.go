// Package backend talks to the cinema reservation REST API. Every call takes
// the caller's credential explicitly; the client holds no user state.
package backend

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

	"github.com/cenkalti/backoff/v5"
	"github.com/go-playground/validator/v10"
	"github.com/metinatakli/cinex-web/internal/domain"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const maxResponseBytes = 4 << 20

type Client struct {
	baseURL   string
	http      *http.Client
	logger    *slog.Logger
	validator *validator.Validate
	retries   uint
	backOff   func() backoff.BackOff
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.http = c
	}
}

func WithTimeout(d time.Duration) Option {
	return func(client *Client) {
		client.http.Timeout = d
	}
}

// WithRetries sets how many times an idempotent read is attempted in total.
func WithRetries(n uint) Option {
	return func(client *Client) {
		client.retries = max(n, 1)
	}
}

// WithBackOff sets the delay policy between read attempts. The factory is
// called once per operation.
func WithBackOff(f func() backoff.BackOff) Option {
	return func(client *Client) {
		client.backOff = f
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(client *Client) {
		client.logger = logger
	}
}

func New(baseURL string, validator *validator.Validate, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   10 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger:    slog.New(slog.DiscardHandler),
		validator: validator,
		retries:   3,
		backOff:   defaultBackOff,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func defaultBackOff() backoff.BackOff {
	return backoff.NewExponentialBackOff()
}

// do sends one request and decodes a 2xx JSON answer into out. Non-2xx
// answers are mapped onto the domain errors.
func (c *Client) do(ctx context.Context, cred domain.Credential, method, path string, body, out any, header http.Header) error {
	var reader io.Reader
	if body != nil {
		js, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(js)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if !cred.IsZero() {
		req.Header.Set("Authorization", "Bearer "+cred.Token)
	}
	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.WarnContext(ctx, "backend request failed", "method", method, "path", path, "error", err)
		return fmt.Errorf("%w: %v", domain.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	c.logger.DebugContext(ctx, "backend request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start))

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%w: reading response: %v", domain.ErrBackendUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return responseError(resp.StatusCode, data)
	}

	if out == nil || len(data) == 0 {
		return nil
	}

	err = json.Unmarshal(data, out)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	return nil
}

func (c *Client) validate(v any) error {
	if c.validator == nil {
		return nil
	}

	err := c.validator.Struct(v)
	if err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("%w: %s failed on %s", ErrMalformedResponse, verrs[0].Namespace(), verrs[0].Tag())
		}
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	return nil
}
