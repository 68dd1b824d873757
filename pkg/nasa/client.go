// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package nasa

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/spacedata/nasa-explorer/pkg/errors"
	"github.com/spacedata/nasa-explorer/pkg/serializer"
)

const (
	// DefaultBaseURL is the NASA Open APIs host.
	DefaultBaseURL = "https://api.nasa.gov"

	// DefaultImagesBaseURL is the NASA Image and Video Library host.
	DefaultImagesBaseURL = "https://images-api.nasa.gov"

	// DemoAPIKey is NASA's shared, heavily rate limited key.
	DemoAPIKey = "DEMO_KEY"
)

// Client calls NASA APIs. It holds no mutable state and is safe for
// concurrent use.
type Client struct {
	apiKey        string
	baseURL       string
	imagesBaseURL string
	http          *serializer.HTTPClient
}

// Option is a functional option for configuring Client instances.
type Option func(*Client)

// WithAPIKey sets the key injected as api_key on every api.nasa.gov call.
func WithAPIKey(key string) Option {
	return func(c *Client) {
		if key != "" {
			c.apiKey = key
		}
	}
}

// WithBaseURL overrides the api.nasa.gov base URL.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithImagesBaseURL overrides the image library base URL.
func WithImagesBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.imagesBaseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithHTTPClient sets the outbound transport.
func WithHTTPClient(h *serializer.HTTPClient) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// NewClient creates a Client with the provided options.
func NewClient(opts ...Option) *Client {
	c := &Client{
		apiKey:        DemoAPIKey,
		baseURL:       DefaultBaseURL,
		imagesBaseURL: DefaultImagesBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = serializer.NewHTTPClient()
	}
	return c
}

// BaseURL returns the api.nasa.gov base URL in use.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// APIKey returns the API key in use.
func (c *Client) APIKey() string {
	return c.apiKey
}

// Get performs one GET of path for the operation described by d and
// returns the body when the status is 2xx and the body is valid JSON.
//
// Only the parameters named in d.Forward are sent. Cancellation of ctx
// does not abort the call; d.Timeout does. Failures are returned as a
// *errors.StructuredError carrying d.Code.
func (c *Client) Get(ctx context.Context, d Descriptor, path string, params url.Values) (json.RawMessage, error) {
	target, err := c.buildURL(d, path, params)
	if err != nil {
		return nil, errors.WrapWithContext(d.Code, fmt.Sprintf("Failed to fetch %s: invalid request URL", d.What),
			err, map[string]any{"path": path})
	}

	// a departed client must not waste the upstream quota already spent
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.Timeout)
	defer cancel()

	start := time.Now()
	resp, err := c.http.Get(ctx, target)
	upstreamDuration.WithLabelValues(d.Name).Observe(time.Since(start).Seconds())

	if err != nil {
		upstreamRequests.WithLabelValues(d.Name, outcomeError).Inc()
		redactURL(err)
		reason := transportReason(err, d.Timeout)
		slog.Warn("upstream request failed", "operation", d.Name, "path", path, "error", reason)
		return nil, errors.WrapWithContext(d.Code, fmt.Sprintf("Failed to fetch %s: %s", d.What, reason),
			err, map[string]any{"path": path})
	}

	if !resp.OK() {
		upstreamRequests.WithLabelValues(d.Name, outcomeStatus).Inc()
		reason := upstreamMessage(resp.Body)
		if reason == "" {
			reason = fmt.Sprintf("upstream returned status %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
		}
		slog.Warn("upstream returned error status",
			"operation", d.Name, "path", path, "status", resp.StatusCode, "reason", reason)
		return nil, errors.NewWithContext(d.Code, fmt.Sprintf("Failed to fetch %s: %s", d.What, reason),
			map[string]any{"path": path, "upstreamStatus": resp.StatusCode})
	}

	if !json.Valid(resp.Body) {
		upstreamRequests.WithLabelValues(d.Name, outcomeError).Inc()
		return nil, errors.NewWithContext(d.Code, fmt.Sprintf("Failed to fetch %s: upstream returned invalid JSON", d.What),
			map[string]any{"path": path, "upstreamStatus": resp.StatusCode})
	}

	upstreamRequests.WithLabelValues(d.Name, outcomeSuccess).Inc()
	slog.Debug("upstream request completed",
		"operation", d.Name, "path", path, "status", resp.StatusCode, "bytes", len(resp.Body))
	return json.RawMessage(resp.Body), nil
}

func (c *Client) buildURL(d Descriptor, path string, params url.Values) (string, error) {
	base := c.baseURL
	if d.Images {
		base = c.imagesBaseURL
	}

	u, err := url.Parse(base + path)
	if err != nil {
		return "", err
	}

	q := url.Values{}
	for _, name := range d.Forward {
		if v := strings.TrimSpace(params.Get(name)); v != "" {
			q.Set(name, v)
		}
	}
	for name, vals := range d.Defaults {
		if q.Get(name) == "" && len(vals) > 0 {
			q.Set(name, vals[0])
		}
	}
	if !d.Images {
		q.Set("api_key", c.apiKey)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// transportReason describes a transport failure without echoing the
// request URL, which carries the API key.
func transportReason(err error, timeout time.Duration) string {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return fmt.Sprintf("timeout of %s exceeded", timeout)
	}
	var ue *url.Error
	if stderrors.As(err, &ue) {
		return ue.Err.Error()
	}
	return err.Error()
}

// redactURL drops the query string, and with it the API key, from any
// *url.Error in err's chain.
func redactURL(err error) {
	var ue *url.Error
	if stderrors.As(err, &ue) {
		if i := strings.IndexByte(ue.URL, '?'); i >= 0 {
			ue.URL = ue.URL[:i]
		}
	}
}

// upstreamMessage pulls a human readable reason out of an error body.
// NASA services disagree on the shape: msg, error.message, message,
// reason or a bare error string.
func upstreamMessage(body []byte) string {
	var doc struct {
		Msg     string          `json:"msg"`
		Message string          `json:"message"`
		Reason  string          `json:"reason"`
		Error   json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &doc); err != nil {
		return ""
	}
	if doc.Msg != "" {
		return doc.Msg
	}
	if len(doc.Error) > 0 {
		var nested struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(doc.Error, &nested) == nil && nested.Message != "" {
			return nested.Message
		}
	}
	if doc.Message != "" {
		return doc.Message
	}
	if doc.Reason != "" {
		return doc.Reason
	}
	if len(doc.Error) > 0 {
		var s string
		if json.Unmarshal(doc.Error, &s) == nil {
			return s
		}
	}
	return ""
}
