// Package cloudclient is a typed HTTP client for the workbench cloud API.
package cloudclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rflorenc/cloud-resource-workbench/internal/enumor"
	"github.com/rflorenc/cloud-resource-workbench/internal/models"
	"github.com/rflorenc/cloud-resource-workbench/internal/property"
)

// UserHeader carries the operator name on every request.
const UserHeader = "X-Bkapi-User-Name"

// envelope is the standard response wrapper of the API.
type envelope struct {
	Code    int32           `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// APIError is returned for non-2xx responses or non-zero envelope codes.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Code       int32
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("%s %s: HTTP %d: code %d: %s", e.Method, e.Path, e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("%s %s: HTTP %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
}

// Client talks to one workbench API endpoint.
type Client struct {
	baseURL    string
	header     http.Header
	httpClient *http.Client
}

// Option configures a Client.
type Option func(c *Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithHeader adds a header sent on every request.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.header.Set(key, value)
	}
}

// WithUser sets the operator name.
func WithUser(user string) Option {
	return WithHeader(UserHeader, user)
}

// New creates a Client. baseURL is the API prefix, e.g. "http://localhost:8080".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		header:     make(http.Header),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ResCountsBySecrets returns the resource counts reachable through the
// secrets named in secretIDs.
func (c *Client) ResCountsBySecrets(ctx context.Context, vendor enumor.Vendor, secretIDs map[string]string) ([]models.ResourceCount, error) {
	path := fmt.Sprintf("/api/v1/cloud/vendors/%s/accounts/res_counts/by_secrets", url.PathEscape(string(vendor)))
	var result models.ResourceCountResult
	if err := c.do(ctx, http.MethodPost, path, secretIDs, &result); err != nil {
		return nil, err
	}
	return result.Items, nil
}

// CreateSecret stores a new secret and returns it with its key masked.
func (c *Client) CreateSecret(ctx context.Context, sec *models.Secret) (*models.Secret, error) {
	out := new(models.Secret)
	if err := c.do(ctx, http.MethodPost, "/api/v1/cloud/secrets", sec, out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListSecrets lists the stored secrets of vendor, or all when vendor is empty.
func (c *Client) ListSecrets(ctx context.Context, vendor enumor.Vendor) ([]models.Secret, error) {
	path := "/api/v1/cloud/secrets"
	if vendor != "" {
		path += "?" + url.Values{"vendor": {string(vendor)}}.Encode()
	}
	var result struct {
		Details []models.Secret `json:"details"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}
	return result.Details, nil
}

// SyncSecret starts a resource sync task and returns its id.
func (c *Client) SyncSecret(ctx context.Context, secretID string) (string, error) {
	var result struct {
		TaskID string `json:"task_id"`
	}
	path := "/api/v1/cloud/secrets/" + url.PathEscape(secretID) + "/sync"
	if err := c.do(ctx, http.MethodPost, path, nil, &result); err != nil {
		return "", err
	}
	return result.TaskID, nil
}

// TaskProperties returns the field descriptors of the task list.
func (c *Client) TaskProperties(ctx context.Context) (property.List, error) {
	var props property.List
	if err := c.do(ctx, http.MethodGet, "/api/v1/task/properties", nil, &props); err != nil {
		return nil, err
	}
	return props, nil
}

// TaskListResult is one page of tasks.
type TaskListResult struct {
	Count   int            `json:"count"`
	Details []*models.Task `json:"details"`
}

// ListTasks lists tasks matching filter.
func (c *Client) ListTasks(ctx context.Context, filter *property.Filter, page models.Page) (*TaskListResult, error) {
	req := map[string]interface{}{"filter": filter, "page": page}
	out := new(TaskListResult)
	if err := c.do(ctx, http.MethodPost, "/api/v1/tasks/list", req, out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetTask returns one task.
func (c *Client) GetTask(ctx context.Context, id string) (*models.Task, error) {
	out := new(models.Task)
	if err := c.do(ctx, http.MethodGet, "/api/v1/tasks/"+url.PathEscape(id), nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

// do performs a request and unmarshals the envelope data into dest.
func (c *Client) do(ctx context.Context, method, path string, payload, dest interface{}) error {
	var bodyReader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshaling body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	for k, v := range c.header {
		req.Header[k] = v
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	var env envelope
	if jsonErr := json.Unmarshal(body, &env); jsonErr != nil {
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return &APIError{Method: method, Path: path, StatusCode: resp.StatusCode, Message: truncate(string(body), 200)}
		}
		return fmt.Errorf("parsing response of %s %s: %w", method, path, jsonErr)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 || env.Code != 0 {
		return &APIError{Method: method, Path: path, StatusCode: resp.StatusCode, Code: env.Code, Message: env.Message}
	}

	if dest == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, dest); err != nil {
		return fmt.Errorf("parsing data of %s %s: %w", method, path, err)
	}
	return nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
