// Package fetch implements the Fetcher interface.
// It performs HTTP GET requests against the WordPress REST API and decodes
// one page of posts per call.
package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gaurav-prasanna/wpimport/core"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "wpimport/1.0 (https://github.com/gaurav-prasanna/wpimport)"

	// maxErrorBody bounds how much of a failed response is read for the
	// error message.
	maxErrorBody = 64 << 10
)

// codeInvalidPage is the REST error code for a page past the last one.
const codeInvalidPage = "rest_post_invalid_page_number"

// ErrPageOutOfRange is returned when the requested page is past the last
// page of posts.
var ErrPageOutOfRange = errors.New("page number out of range")

// APIError is a non-2xx response from the REST API.
type APIError struct {
	URL        string
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("unexpected status %d for %s: %s: %s", e.StatusCode, e.URL, e.Code, e.Message)
	}
	return fmt.Sprintf("unexpected status %d for %s", e.StatusCode, e.URL)
}

// Is reports an out-of-range page as ErrPageOutOfRange.
func (e *APIError) Is(target error) bool {
	return target == ErrPageOutOfRange && e.Code == codeInvalidPage
}

// HTTPFetcher fetches pages of posts via HTTP.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
}

// Option configures an HTTPFetcher.
type Option func(*HTTPFetcher)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(f *HTTPFetcher) {
		if d > 0 {
			f.client.Timeout = d
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *HTTPFetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

// WithHTTPClient replaces the underlying client.
func WithHTTPClient(c *http.Client) Option {
	return func(f *HTTPFetcher) {
		if c != nil {
			f.client = c
		}
	}
}

// New creates an HTTPFetcher with a sensible timeout.
func New(opts ...Option) *HTTPFetcher {
	f := &HTTPFetcher{
		client:    &http.Client{Timeout: defaultTimeout},
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FetchPage retrieves and decodes the posts at url. The url must already
// carry its page, per_page and _embed query parameters.
func (f *HTTPFetcher) FetchPage(ctx context.Context, url string) (*core.PostPage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, decodeAPIError(url, resp)
	}

	var posts []core.RawPost
	if err := json.NewDecoder(resp.Body).Decode(&posts); err != nil {
		return nil, fmt.Errorf("decoding posts from %s: %w", url, err)
	}

	return &core.PostPage{
		URL:        url,
		Posts:      posts,
		Total:      headerInt(resp.Header, "X-WP-Total"),
		TotalPages: headerInt(resp.Header, "X-WP-TotalPages"),
	}, nil
}

// decodeAPIError reads the {code, message} body WordPress sends with errors.
func decodeAPIError(url string, resp *http.Response) error {
	apiErr := &APIError{URL: url, StatusCode: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return apiErr
	}

	var payload struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &payload) == nil {
		apiErr.Code = payload.Code
		apiErr.Message = payload.Message
	}
	return apiErr
}

func headerInt(h http.Header, key string) int {
	n, err := strconv.Atoi(h.Get(key))
	if err != nil {
		return 0
	}
	return n
}
