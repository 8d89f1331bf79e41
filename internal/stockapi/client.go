package stockapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
)

// Resource names recognized by the backend.
const (
	ResourceWarehouses  = "warehouses"
	ResourceInventories = "inventories"
)

// DomainError is a backend failure translated into a fixed user-facing
// message. Error() returns the message so callers can show it directly;
// the raw cause stays available for logs via Unwrap.
type DomainError struct {
	Resource string
	Status   int
	Message  string
	Err      error
}

func (e *DomainError) Error() string { return e.Message }

func (e *DomainError) Unwrap() error { return e.Err }

// Client is the single point of contact with the backend REST API. All
// failures come back as *DomainError with a pre-formatted message; callers
// never see a raw transport error.
type Client struct {
	baseURL  string
	client   *http.Client
	messages Messages
	logger   *slog.Logger
}

func New(baseURL string, messages Messages, logger *slog.Logger) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		client:   &http.Client{},
		messages: messages,
		logger:   logger,
	}
}

// GetAll fetches every record in a resource collection, decoding the JSON
// array into out (a pointer to a slice).
func (c *Client) GetAll(ctx context.Context, resource string, out any) error {
	return c.do(ctx, http.MethodGet, fmt.Sprintf("/%s", resource), resource, nil, out)
}

// GetByID fetches one record. Non-positive ids never reach the server: the
// backend is authoritative on existence, but an id that can't exist is
// reported with the same "not found" message a 404 would produce.
func (c *Client) GetByID(ctx context.Context, resource string, id int64, out any) error {
	if id <= 0 {
		return &DomainError{
			Resource: resource,
			Status:   http.StatusNotFound,
			Message:  c.messages.resolve(resource, http.StatusNotFound),
		}
	}
	return c.do(ctx, http.MethodGet, fmt.Sprintf("/%s/%d", resource, id), resource, nil, out)
}

// Add creates a new record. The caller maps form fields to the backend's
// wire shape before calling.
func (c *Client) Add(ctx context.Context, resource string, payload any) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/%s/add", resource), resource, payload, nil)
}

// Edit performs a full update of record id.
func (c *Client) Edit(ctx context.Context, resource string, id int64, payload any) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/%s/%d/edit", resource, id), resource, payload, nil)
}

// Delete removes record id. Deleting an already-deleted id fails with the
// resource's "not found" message; the caller reports it, not swallows it.
func (c *Client) Delete(ctx context.Context, resource string, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/%s/%d", resource, id), resource, nil, nil)
}

// InventoryByWarehouse lists the inventory items held by one warehouse.
func (c *Client) InventoryByWarehouse(ctx context.Context, resource string, id int64, out any) error {
	return c.do(ctx, http.MethodGet, fmt.Sprintf("/%s/%d/inventories", resource, id), resource, nil, out)
}

// Categories fetches the resource's category options.
func (c *Client) Categories(ctx context.Context, resource string, out any) error {
	return c.do(ctx, http.MethodGet, fmt.Sprintf("/%s/categories", resource), resource, nil, out)
}

// do issues one request and funnels every failure through the message
// resolver. out, when non-nil, receives the decoded JSON response body.
func (c *Client) do(ctx context.Context, method, path, resource string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return c.fail(resource, 0, fmt.Errorf("marshal payload: %w", err))
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return c.fail(resource, 0, fmt.Errorf("create request: %w", err))
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return c.fail(resource, 0, fmt.Errorf("%s %s: %w", method, path, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.fail(resource, resp.StatusCode, fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return c.fail(resource, 0, fmt.Errorf("decode response: %w", err))
		}
	}

	return nil
}

func (c *Client) fail(resource string, status int, cause error) error {
	c.logger.Error("api request failed", "resource", resource, "status", status, "error", cause)
	return &DomainError{
		Resource: resource,
		Status:   status,
		Message:  c.messages.resolve(resource, status),
		Err:      cause,
	}
}
