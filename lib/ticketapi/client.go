// Copyright 2026 The Storefront Authors
// SPDX-License-Identifier: Apache-2.0

package ticketapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/popuweekendclub/storefront/lib/clock"
	"github.com/popuweekendclub/storefront/lib/netutil"
	"github.com/popuweekendclub/storefront/lib/secret"
	"github.com/popuweekendclub/storefront/lib/version"
)

// Config holds configuration for creating a Client.
type Config struct {
	// BaseURL is the API root, e.g. "https://tickets.example.com/api/v1".
	// Must use HTTPS. A trailing "/participant" segment is accepted
	// and stripped, so the participant endpoint URL can be used as is.
	BaseURL string

	// Token is the bearer token sent with every request.
	Token string

	// TokenSecret holds the bearer token in locked memory. Used
	// instead of Token when set. The caller keeps ownership and must
	// not close it while the client is in use.
	TokenSecret *secret.Buffer

	// HTTPClient is used for all requests. Defaults to
	// http.DefaultClient. Set its Timeout to bound each call.
	HTTPClient *http.Client

	// Clock measures call durations for logging. Defaults to
	// clock.Real().
	Clock clock.Clock

	// Logger receives per-call debug records and failure warnings.
	// Defaults to slog.Default().
	Logger *slog.Logger
}

// Client is a typed ticketing API client. It holds no per-order state
// and is safe for concurrent use.
type Client struct {
	baseURL     string
	token       string
	tokenSecret *secret.Buffer
	httpClient  *http.Client
	clock       clock.Clock
	logger      *slog.Logger
}

// NewClient creates a Client. Returns an error wrapping
// ErrConfigMissing when BaseURL is empty or no token is given, and an
// error when BaseURL is not HTTPS.
func NewClient(config Config) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(config.BaseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("ticketapi: %w: base URL is empty", ErrConfigMissing)
	}
	if strings.TrimSpace(config.Token) == "" && config.TokenSecret == nil {
		return nil, fmt.Errorf("ticketapi: %w: token is empty", ErrConfigMissing)
	}
	if !strings.HasPrefix(baseURL, "https://") {
		return nil, fmt.Errorf("ticketapi: API client requires HTTPS (got %q)", baseURL)
	}
	baseURL = strings.TrimSuffix(baseURL, "/participant")

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	clk := config.Clock
	if clk == nil {
		clk = clock.Real()
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:     baseURL,
		token:       config.Token,
		tokenSecret: config.TokenSecret,
		httpClient:  httpClient,
		clock:       clk,
		logger:      logger,
	}, nil
}

// BaseURL returns the normalized API root the client sends to.
func (client *Client) BaseURL() string {
	return client.baseURL
}

func (client *Client) bearerToken() string {
	if client.tokenSecret != nil {
		return client.tokenSecret.String()
	}
	return client.token
}

// do sends one authenticated JSON request and returns the response
// body of a 2xx response. requestBody is JSON-encoded when non-nil.
//
// Transport failures return an *Error of kind ErrUpstreamUnavailable.
// Non-2xx responses return an *Error of the given kind carrying the
// upstream message.
func (client *Client) do(ctx context.Context, op string, kind error, method, path string, requestBody any) ([]byte, error) {
	var bodyReader io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return nil, fmt.Errorf("ticketapi: %s: encoding request body: %w", op, err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, client.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("ticketapi: %s: creating request: %w", op, err)
	}
	requestID := uuid.NewString()
	request.Header.Set("Authorization", "Bearer "+client.bearerToken())
	request.Header.Set("Accept", "application/json")
	request.Header.Set("X-Request-ID", requestID)
	request.Header.Set("User-Agent", version.UserAgent())
	if requestBody != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	logger := client.logger.With("op", op, "method", method, "path", path, "request_id", requestID)
	started := client.clock.Now()

	response, err := client.httpClient.Do(request)
	if err != nil {
		logger.Warn("ticketing API request failed", "error", err)
		return nil, &Error{Kind: ErrUpstreamUnavailable, Op: op, Err: err}
	}
	defer response.Body.Close()

	body, err := netutil.ReadResponse(response.Body)
	if err != nil {
		logger.Warn("reading ticketing API response failed", "status", response.StatusCode, "error", err)
		return nil, &Error{Kind: ErrUpstreamUnavailable, Op: op, StatusCode: response.StatusCode, Err: err}
	}

	logger.Debug("ticketing API request",
		"status", response.StatusCode,
		"duration", clock.Since(client.clock, started),
	)

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		message := netutil.ErrorMessage(body)
		if message == "" {
			message = http.StatusText(response.StatusCode)
		}
		return nil, &Error{Kind: kind, Op: op, StatusCode: response.StatusCode, Message: message}
	}
	return body, nil
}

// decode unmarshals a 2xx body into result. Bodies of the form
// {"data": ...} are unwrapped first. A body that does not decode is
// reported as ErrUpstreamUnavailable: the call may have succeeded
// upstream, but the client cannot tell what it returned.
func decode(op string, body []byte, result any) error {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '{' && json.Unmarshal(trimmed, &envelope) == nil && len(envelope.Data) > 0 && !bytes.Equal(envelope.Data, []byte("null")) {
		trimmed = envelope.Data
	}
	if err := json.Unmarshal(trimmed, result); err != nil {
		return &Error{Kind: ErrUpstreamUnavailable, Op: op, Message: "unreadable response", Err: err}
	}
	return nil
}
