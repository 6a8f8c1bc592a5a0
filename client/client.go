// Package client provides programmatic access to the blog API and the
// auto-save coordination used by editor frontends.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"inkwell/app/models"
)

// APIError is a non-2xx response decoded from the API's error body.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Client is a thin wrapper over the blog REST API. All methods take a
// context and return the server's canonical snapshot of the blog.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the API at baseURL, e.g. "http://localhost:8080".
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// ListBlogs fetches all blogs.
func (c *Client) ListBlogs(ctx context.Context) ([]*models.Blog, error) {
	var blogs []*models.Blog
	err := c.do(ctx, http.MethodGet, "/api/blogs", nil, &blogs)
	return blogs, err
}

// ListBlogsByStatus fetches blogs with the given status.
func (c *Client) ListBlogsByStatus(ctx context.Context, status models.Status) ([]*models.Blog, error) {
	var blogs []*models.Blog
	path := "/api/blogs?status=" + url.QueryEscape(string(status))
	err := c.do(ctx, http.MethodGet, path, nil, &blogs)
	return blogs, err
}

// GetBlog fetches a single blog by id.
func (c *Client) GetBlog(ctx context.Context, id int) (*models.Blog, error) {
	var blog models.Blog
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/blogs/%d", id), nil, &blog)
	if err != nil {
		return nil, err
	}
	return &blog, nil
}

// SaveDraft saves the payload as a draft, creating or updating depending on
// whether it carries an id.
func (c *Client) SaveDraft(ctx context.Context, in models.BlogInput) (*models.Blog, error) {
	var blog models.Blog
	err := c.do(ctx, http.MethodPost, "/api/blogs/save-draft", in, &blog)
	if err != nil {
		return nil, err
	}
	return &blog, nil
}

// Publish saves the payload as published.
func (c *Client) Publish(ctx context.Context, in models.BlogInput) (*models.Blog, error) {
	var blog models.Blog
	err := c.do(ctx, http.MethodPost, "/api/blogs/publish", in, &blog)
	if err != nil {
		return nil, err
	}
	return &blog, nil
}

// UpdateBlog updates the blog with the given id.
func (c *Client) UpdateBlog(ctx context.Context, id int, in models.BlogInput) (*models.Blog, error) {
	var blog models.Blog
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/blogs/%d", id), in, &blog)
	if err != nil {
		return nil, err
	}
	return &blog, nil
}

// DeleteBlog deletes the blog with the given id.
func (c *Client) DeleteBlog(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/blogs/%d", id), nil, nil)
}

// AutoSaveDelay fetches the server's auto-save debounce delay. Pass the
// result to NewAutoSaver via WithDelay so editor and server agree on the
// save cadence.
func (c *Client) AutoSaveDelay(ctx context.Context) (time.Duration, error) {
	var cfg struct {
		AutoSaveDelayMS int64 `json:"autosave_delay_ms"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/config", nil, &cfg); err != nil {
		return 0, err
	}
	return time.Duration(cfg.AutoSaveDelayMS) * time.Millisecond, nil
}

// DraftSaver adapts the save-draft endpoint to a SaveFunc for an
// AutoSaver. When onSaved is non-nil it receives the server's canonical
// snapshot, which carries the assigned id the first time a draft is saved;
// feed that id back into subsequent Update calls so later saves update the
// same post instead of creating new ones.
func (c *Client) DraftSaver(onSaved func(*models.Blog)) SaveFunc {
	return func(ctx context.Context, d Draft) error {
		blog, err := c.SaveDraft(ctx, models.BlogInput{
			ID:      d.ID,
			Title:   d.Title,
			Content: d.Content,
			Tags:    d.Tags,
		})
		if err != nil {
			return err
		}
		if onSaved != nil {
			onSaved(blog)
		}
		return nil
	}
}

// do issues a request and decodes the response into out. Non-2xx responses
// become an *APIError carrying the server's message. No retries.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var errBody struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errBody); err == nil && errBody.Message != "" {
			apiErr.Message = errBody.Message
		} else {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %v", err)
	}
	return nil
}
