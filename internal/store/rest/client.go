// Package rest implements businessunit.Store against the business unit
// REST API served by internal/server.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/hay-kot/criterio"

	"github.com/colonyops/unitdesk/internal/core/businessunit"
	"github.com/colonyops/unitdesk/internal/server"
)

// APIError is returned for non-2xx responses.
type APIError struct {
	StatusCode int
	Message    string
	Fields     map[string]string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("api: %d %s", e.StatusCode, e.Message)
}

// Unwrap maps well known statuses onto domain errors so callers can use
// errors.Is, and 422 responses onto criterio field errors.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusNotFound:
		return businessunit.ErrNotFound
	case http.StatusConflict:
		return businessunit.ErrAlreadyExists
	case http.StatusUnprocessableEntity:
		return e.fieldErrors()
	}
	return nil
}

func (e *APIError) fieldErrors() error {
	if len(e.Fields) == 0 {
		return nil
	}

	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs criterio.FieldErrorsBuilder
	for _, name := range names {
		errs = errs.Append(name, errors.New(e.Fields[name]))
	}
	return errs.ToError()
}

// Client talks to the business unit API.
type Client struct {
	baseURL string
	http    *http.Client
}

var _ businessunit.Store = (*Client)(nil)

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.http = hc }
}

// New creates a client for the API rooted at baseURL. A zero timeout
// leaves requests bounded only by their context.
func New(baseURL string, timeout time.Duration, opts ...ClientOption) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", baseURL)
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Create posts a new unit. The server assigns its ID.
func (c *Client) Create(ctx context.Context, u businessunit.Unit) (businessunit.Unit, error) {
	var out businessunit.Unit
	err := c.do(ctx, http.MethodPost, server.BasePath, u, &out)
	return out, err
}

// Get fetches a unit by ID.
func (c *Client) Get(ctx context.Context, id string) (businessunit.Unit, error) {
	var out businessunit.Unit
	err := c.do(ctx, http.MethodGet, server.BasePath+"/"+url.PathEscape(id), nil, &out)
	return out, err
}

// Update replaces the unit with u.ID.
func (c *Client) Update(ctx context.Context, u businessunit.Unit) (businessunit.Unit, error) {
	var out businessunit.Unit
	err := c.do(ctx, http.MethodPut, server.BasePath+"/"+url.PathEscape(u.ID), u, &out)
	return out, err
}

// List fetches every unit.
func (c *Client) List(ctx context.Context) ([]businessunit.Unit, error) {
	out := []businessunit.Unit{}
	err := c.do(ctx, http.MethodGet, server.BasePath, nil, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var er server.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&er); err == nil {
			apiErr.Message = er.Error
			apiErr.Fields = er.Fields
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
