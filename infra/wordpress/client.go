package wordpress

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/CrestNiraj12/cardfeed/infra/auth"
)

const (
	userAgent       = "cardfeed/1.0 (+https://github.com/CrestNiraj12/cardfeed)"
	maxErrorSnippet = 512
)

// Client is a thin HTTP wrapper for the WordPress REST API.
// It handles base URL construction and credential injection. It never
// retries; the transport timeout is the only time limit.
type Client struct {
	baseURL string
	creds   auth.CredentialProvider
	http    *http.Client
}

// NewClient creates a WordPress API client. baseURL is the REST root,
// e.g. "https://example.com/wp-json/wp/v2".
func NewClient(baseURL string, creds auth.CredentialProvider, timeout time.Duration) *Client {
	if creds == nil {
		creds = auth.Anonymous{}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		creds:   creds,
		http:    &http.Client{Timeout: timeout},
	}
}

// APIError is returned for responses outside the 2xx range.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Body       []byte
}

func (e *APIError) Error() string {
	body := strings.TrimSpace(string(e.Body))
	if len(body) > maxErrorSnippet {
		cut := maxErrorSnippet
		for cut > 0 && !utf8.RuneStart(body[cut]) {
			cut--
		}
		body = body[:cut] + "..."
	}
	return fmt.Sprintf("API %s %s returned %d: %s", e.Method, e.Path, e.StatusCode, body)
}

// URL returns the absolute URL for an API path.
func (c *Client) URL(path string) string {
	return c.baseURL + path
}

// Get performs a GET request and returns the response body.
func (c *Client) Get(ctx context.Context, path string) ([]byte, error) {
	header, err := c.creds.Authorization()
	if err != nil {
		return nil, fmt.Errorf("auth: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(path), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if header != "" {
		req.Header.Set("Authorization", header)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{
			Method:     http.MethodGet,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       data,
		}
	}

	return data, nil
}
