// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package rsgb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/rs/xid"

	"github.com/DayleDrinkwater/UKRepeaters-To-VGC/internal/apierror"
	"github.com/DayleDrinkwater/UKRepeaters-To-VGC/internal/config"
	vgcerrors "github.com/DayleDrinkwater/UKRepeaters-To-VGC/internal/errors"
	"github.com/DayleDrinkwater/UKRepeaters-To-VGC/internal/logx"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

// maxResponseBytes caps the directory response body.
const maxResponseBytes = 10 * 1024 * 1024

// HTTPClient implements Client against the directory's REST endpoints.
type HTTPClient struct {
	baseURL   string
	client    *http.Client
	inspector apierror.Inspector
	logger    *slog.Logger
	userAgent string
}

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithLogger sets the logger used for request and response events.
func WithLogger(logger *slog.Logger) Option {
	return func(c *HTTPClient) {
		c.logger = logger
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *HTTPClient) {
		c.userAgent = ua
	}
}

// WithTimeout bounds each request, including reading the body.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) {
		c.client.Timeout = d
	}
}

// WithTransport replaces the base round tripper. Tests use it to inject
// failures below the logging and size-limit layers.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *HTTPClient) {
		c.client.Transport = rt
	}
}

// NewHTTPClient creates a directory client rooted at baseURL
// (e.g. "https://api-beta.rsgb.online").
func NewHTTPClient(baseURL string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        2,
				IdleConnTimeout:     30 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
				ForceAttemptHTTP2:   true,
			},
		},
		inspector: apierror.NewInspector(),
		logger:    logx.Nop(),
		userAgent: "vgc-repeaters/dev",
	}

	for _, opt := range opts {
		opt(c)
	}

	c.client.Transport = &directoryTransport{
		base:      c.client.Transport,
		userAgent: c.userAgent,
		logger:    c.logger,
	}

	return c
}

// Endpoint returns the URL queried for scope and locator.
func (c *HTTPClient) Endpoint(scope config.Scope, locator string) string {
	if scope == config.ScopeNationwide {
		return c.baseURL + "/all/systems"
	}
	return c.baseURL + "/locator/" + url.PathEscape(strings.ToUpper(strings.TrimSpace(locator)))
}

// FetchRepeaters performs one GET and decodes the data array.
func (c *HTTPClient) FetchRepeaters(ctx context.Context, scope config.Scope, locator string) ([]Repeater, error) {
	endpoint := c.Endpoint(scope, locator)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", endpoint, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, c.mapError(err, endpoint)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused; the body is not needed.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, c.mapError(&apierror.StatusError{StatusCode: resp.StatusCode, URL: endpoint}, endpoint)
	}

	var body Response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		if c.inspector.IsTimeout(err) || c.inspector.IsNetworkError(err) {
			return nil, c.mapError(err, endpoint)
		}
		return nil, fmt.Errorf("decode response from %s: %v: %w", endpoint, err, vgcerrors.ErrMalformedResponse)
	}

	if body.Data == nil {
		return nil, fmt.Errorf("response from %s has no data array: %w", endpoint, vgcerrors.ErrMalformedResponse)
	}

	return *body.Data, nil
}

// mapError maps transport and status failures onto ErrNetworkFailure with
// an actionable message.
func (c *HTTPClient) mapError(err error, endpoint string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("request to %s canceled: %w", endpoint, vgcerrors.ErrNetworkFailure)
	}

	if c.inspector.IsTimeout(err) {
		return fmt.Errorf("repeater directory did not answer in time. Try again or raise --timeout: %w", vgcerrors.ErrNetworkFailure)
	}

	if c.inspector.IsNotFoundError(err) {
		return fmt.Errorf("%v. Check the grid locator: %w", err, vgcerrors.ErrNetworkFailure)
	}

	if c.inspector.IsServerError(err) {
		return fmt.Errorf("%v. The directory may be down, try again later: %w", err, vgcerrors.ErrNetworkFailure)
	}

	if c.inspector.IsNetworkError(err) {
		return fmt.Errorf("network error connecting to %s. Please check your internet connection and try again: %w", endpoint, vgcerrors.ErrNetworkFailure)
	}

	return fmt.Errorf("failed to fetch repeaters from %s: %v: %w", endpoint, err, vgcerrors.ErrNetworkFailure)
}

// limitedReader wraps a ReadCloser with a size limit to prevent excessive memory usage.
type limitedReader struct {
	io.ReadCloser
	limit int64
	read  int64
}

// Read implements io.Reader with size limit enforcement.
func (lr *limitedReader) Read(p []byte) (n int, err error) {
	if lr.read >= lr.limit {
		return 0, fmt.Errorf("response size exceeded limit of %d bytes", lr.limit)
	}

	remaining := lr.limit - lr.read
	if int64(len(p)) > remaining {
		p = p[:remaining]
	}

	n, err = lr.ReadCloser.Read(p)
	lr.read += int64(n)

	return n, err
}

// directoryTransport sets request headers, logs each exchange with a
// request ID and caps the response size.
type directoryTransport struct {
	base      http.RoundTripper
	userAgent string
	logger    *slog.Logger
}

// RoundTrip implements http.RoundTripper
func (t *directoryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone the request to avoid modifying the original
	req = req.Clone(req.Context())

	requestID := xid.New().String()
	req.Header.Set("User-Agent", t.userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	t.logger.Debug("directory request",
		slog.String(logx.FieldRequestID, requestID),
		slog.String(logx.FieldURL, req.URL.String()),
	)

	start := time.Now()

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		t.logger.Debug("directory request failed",
			slog.String(logx.FieldRequestID, requestID),
			logx.Error(err),
		)
		return nil, err
	}

	t.logger.Debug("directory response",
		slog.String(logx.FieldRequestID, requestID),
		slog.Int(logx.FieldHTTPStatus, resp.StatusCode),
		slog.Int64(logx.FieldDurationMs, time.Since(start).Milliseconds()),
	)

	if resp.Body != nil {
		resp.Body = &limitedReader{
			ReadCloser: resp.Body,
			limit:      maxResponseBytes,
		}
	}

	return resp, nil
}
