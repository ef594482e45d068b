package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Request is a single collection request.
type Request struct {
	URL       string
	Body      []byte
	UserAgent string
}

// Response is what the collection endpoint answered. ContentType holds the
// lower-cased media type without parameters.
type Response struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// Success reports whether the status code is 2xx.
func (r *Response) Success() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Transport defines the interface for delivering hits.
// Non-2xx statuses are returned as a Response, not an error.
type Transport interface {
	Post(ctx context.Context, req Request) (*Response, error)
}

// Config holds HTTP transport settings.
type Config struct {
	Proxy   string
	Timeout time.Duration
}

// HTTPTransport implements Transport using HTTP
type HTTPTransport struct {
	client *http.Client
}

// NewHTTP creates a new HTTP transport
func NewHTTP(cfg Config) (*HTTPTransport, error) {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}

	rt := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.Proxy != "" {
		proxyURL, err := url.Parse(cfg.Proxy)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy url %q: %w", cfg.Proxy, err)
		}
		rt.Proxy = http.ProxyURL(proxyURL)
	}

	return &HTTPTransport{
		client: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: rt,
		},
	}, nil
}

// Post sends the request body to req.URL
func (t *HTTPTransport) Post(ctx context.Context, req Request) (*Response, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, req.URL, bytes.NewReader(req.Body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if req.UserAgent != "" {
		httpReq.Header.Set("User-Agent", req.UserAgent)
	}

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return &Response{
		StatusCode:  resp.StatusCode,
		ContentType: mediaType(resp.Header.Get("Content-Type")),
		Body:        body,
	}, nil
}

func mediaType(contentType string) string {
	if contentType == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mt, _, _ = strings.Cut(contentType, ";")
	}
	return strings.ToLower(strings.TrimSpace(mt))
}
