package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
)

// maxResponseBytes bounds how much of a response body is read
const maxResponseBytes = 4 << 20

// ClientOptions configures the Client
type ClientOptions struct {
	Endpoint   string        // full URL of the generate endpoint
	Timeout    time.Duration // 0 leaves the request bounded only by ctx
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client issues generate calls against the content service
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
	results    *resultValidator
}

// NewClient creates a new generate client
func NewClient(opts ClientOptions) (*Client, error) {
	u, err := url.Parse(opts.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("parsing endpoint: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("endpoint must be an http(s) URL: %q", opts.Endpoint)
	}

	results, err := newResultValidator()
	if err != nil {
		return nil, err
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		endpoint:   u.String(),
		httpClient: httpClient,
		logger:     logger,
		results:    results,
	}, nil
}

// Endpoint returns the URL requests are sent to
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Generate sends exactly one POST carrying req and decodes the response.
// Non-2xx status, an undecodable body or success=false yield a *ServerError;
// a request that could not be completed yields a *TransportError.
func (c *Client) Generate(ctx context.Context, req Request) (Result, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return Result{}, fmt.Errorf("encoding request: %w", err)
	}

	requestID := AttemptID(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("building request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", requestID)

	c.logger.Debug("sending generate request",
		"request_id", requestID,
		"endpoint", c.endpoint,
		"platforms", req.Platforms,
		"scheduled", req.Scheduled(),
	)

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Debug("generate request failed", "request_id", requestID, "error", err)
		return Result{}, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return Result{}, &TransportError{Err: fmt.Errorf("reading response: %w", err)}
	}

	c.logger.Debug("generate response received",
		"request_id", requestID,
		"status", resp.StatusCode,
		"bytes", len(raw),
		"elapsed", time.Since(start),
	)

	return c.decode(resp.StatusCode, raw)
}

func (c *Client) decode(status int, raw []byte) (Result, error) {
	var result Result
	decodeErr := json.Unmarshal(raw, &result)
	if decodeErr == nil {
		decodeErr = c.results.check(raw)
	}

	if status < 200 || status > 299 {
		se := &ServerError{StatusCode: status}
		if decodeErr == nil {
			se.Message = result.Error
		}
		return Result{}, se
	}
	if decodeErr != nil {
		return Result{}, &ServerError{StatusCode: status, Err: decodeErr}
	}
	if !result.Success {
		return Result{}, &ServerError{StatusCode: status, Message: result.Error}
	}
	return result, nil
}
