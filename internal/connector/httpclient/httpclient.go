package httpclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"github.com/crimson-sun/ideastream/internal/model"
)

// Client is an HTTP client with optional Bearer auth and a base URL.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// APIError represents a non-2xx HTTP response. Body is the upstream
// response body, verbatim.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	body := e.Body
	if body == "" {
		body = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("API error %d: %s", e.StatusCode, body)
}

// Option configures Client behavior.
type Option func(*Client)

// WithTimeout bounds the whole exchange, including reading the stream.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// New creates a Client for baseURL. An empty token sends no Authorization header.
func New(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// File is a multipart file part.
type File struct {
	Field string
	Name  string
	Data  []byte
}

// PostStream sends a multipart POST and returns the response body unread.
// The form is always sent, empty when there are no files.
//
// Returns *APIError for non-2xx responses and *model.TransportError when the
// request never completed. No retries: a failed analysis is surfaced, not
// repeated.
func (c *Client) PostStream(ctx context.Context, path string, query url.Values, files ...File) (io.ReadCloser, error) {
	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	var form bytes.Buffer
	mw := multipart.NewWriter(&form)
	for _, f := range files {
		part, err := mw.CreateFormFile(f.Field, f.Name)
		if err != nil {
			return nil, fmt.Errorf("httpclient: building form: %w", err)
		}
		if _, err := part.Write(f.Data); err != nil {
			return nil, fmt.Errorf("httpclient: building form: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("httpclient: building form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fullURL, &form)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &model.TransportError{Op: "open", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, &model.TransportError{Op: "read", Err: err}
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	if resp.Body == nil {
		return nil, &model.TransportError{Op: "open", Err: model.ErrNoBody}
	}
	return resp.Body, nil
}
