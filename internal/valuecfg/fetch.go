package valuecfg

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"segbox/internal/debug"
	appErrors "segbox/internal/errors"
)

const (
	// DefaultTimeout bounds a single remote fetch.
	DefaultTimeout = 10 * time.Second

	// maxDocumentBytes caps the size of a remote document.
	maxDocumentBytes = 4 << 20

	userAgent = "segbox-config-fetcher"
)

// Fetcher retrieves configuration documents over HTTP. It never retries.
type Fetcher struct {
	httpClient *http.Client
	timeout    time.Duration
	maxBytes   int64
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithHTTPClient sets the HTTP client used for requests. The client is never
// modified; a nil client keeps the default.
func WithHTTPClient(client *http.Client) FetcherOption {
	return func(f *Fetcher) {
		if client != nil {
			f.httpClient = client
		}
	}
}

// WithTimeout bounds each fetch. Zero disables the bound.
func WithTimeout(timeout time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.timeout = timeout
	}
}

// NewFetcher creates a fetcher with DefaultTimeout.
func NewFetcher(opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		httpClient: http.DefaultClient,
		timeout:    DefaultTimeout,
		maxBytes:   maxDocumentBytes,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch issues a GET for url and decodes the body. Transport failures,
// non-2xx responses and oversized bodies are CodeConfigFetch; malformed
// bodies are CodeConfigDecode.
func (f *Fetcher) Fetch(ctx context.Context, url string) (Config, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}
	log := debug.FromContext(ctx).WithValues("url", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Config{}, appErrors.New(appErrors.CodeConfigFetch, "create request", err)
	}
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9")
	req.Header.Set("User-Agent", userAgent)

	log.V(1).Info("fetching configuration")
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return Config{}, appErrors.New(appErrors.CodeConfigFetch, fmt.Sprintf("fetch %s", url), err)
	}
	defer func() { _ = resp.Body.Close() }()
	log.V(1).Info("configuration response", "status", resp.StatusCode, "contentType", resp.Header.Get("Content-Type"))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Config{}, appErrors.New(appErrors.CodeConfigFetch, fmt.Sprintf("fetch %s: status %d", url, resp.StatusCode), nil)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return Config{}, appErrors.New(appErrors.CodeConfigFetch, fmt.Sprintf("read %s", url), err)
	}
	if int64(len(body)) > f.maxBytes {
		return Config{}, appErrors.New(appErrors.CodeConfigFetch,
			fmt.Sprintf("fetch %s: document exceeds %d bytes", url, f.maxBytes), nil)
	}
	return Decode(body, FormatForContentType(resp.Header.Get("Content-Type")))
}
