// Package catalog is the HTTP client of the catalog API.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/publicsuffix"

	"github.com/DjordjeVuckovic/title-hunter/internal/apperr"
)

const (
	DefaultBaseURL   = "http://localhost:8080/api"
	DefaultTimeout   = 10 * time.Second
	defaultUserAgent = "title-hunter/0.1"
	maxErrorBody     = 64 << 10
)

// Client talks to the catalog API. The session cookie set by the identity
// endpoints is kept in a cookie jar and sent with every later request.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	log       *slog.Logger
}

type Option func(*Client)

// WithHTTPClient uses a copy of hc as the underlying client; hc itself is
// never modified. Its cookie jar is kept when set, otherwise a new one is
// attached to the copy. A nil hc is ignored.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc == nil {
			return
		}
		cp := *hc
		c.http = &cp
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua = strings.TrimSpace(ua); ua != "" {
			c.userAgent = ua
		}
	}
}

// NewClient builds a client for the API rooted at baseURL,
// e.g. "http://localhost:8080/api".
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}

	c := &Client{
		baseURL:   base,
		http:      &http.Client{Timeout: DefaultTimeout},
		userAgent: defaultUserAgent,
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.http.Jar == nil {
		jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		if err != nil {
			return nil, fmt.Errorf("create cookie jar: %w", err)
		}
		c.http.Jar = jar
	}

	return c, nil
}

// BaseURL returns the API root the client sends requests to.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Ping checks that the API answers.
func (c *Client) Ping(ctx context.Context) error {
	return c.get(ctx, "/genres", nil, nil)
}

func (c *Client) get(ctx context.Context, path string, query url.Values, dest any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, dest)
}

func (c *Client) post(ctx context.Context, path string, body, dest any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, dest)
}

// do sends a request and decodes a JSON response into dest. A dest of type
// *[]byte receives the raw body.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, dest any) error {
	reqURL := c.resolve(path, query)

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s body: %w", path, err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("Catalog request failed", "method", method, "path", path, "error", err)
		return apperr.NewTransport(path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.log.Debug("Catalog request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apperr.NewStatus(path, resp.StatusCode, errorMessage(resp))
	}
	if resp.StatusCode == http.StatusNoContent || dest == nil {
		return nil
	}

	if raw, ok := dest.(*[]byte); ok {
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return apperr.NewTransport(path, fmt.Errorf("read response: %w", err))
		}
		*raw = data
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode %s response: %v: %w", path, err, apperr.ErrMalformedResponse)
	}
	return nil
}

func (c *Client) resolve(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// errorMessage extracts "message" or "error" from a JSON error body, or the
// plain text of any other body.
func errorMessage(resp *http.Response) string {
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return ""
	}

	if strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
		var body struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		if err := json.Unmarshal(data, &body); err != nil {
			return ""
		}
		if body.Message != "" {
			return body.Message
		}
		return body.Error
	}

	return strings.TrimSpace(string(data))
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse catalog base url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("catalog base url %q has no host", raw)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
