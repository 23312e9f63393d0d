package gatesdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client is a typed client for the gatekeep service. Admin operations send
// AdminToken as a bearer token; public operations work without one.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	AdminToken string
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// SubmitWhitelistRequest submits an access request for an email. Public.
func (c *Client) SubmitWhitelistRequest(ctx context.Context, req SubmitRequest) (*WhitelistRequest, error) {
	var out WhitelistRequest
	if err := c.doJSON(ctx, http.MethodPost, "/v1/whitelist-requests", req, false, http.StatusCreated, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListWhitelistRequests lists requests, newest first. Admin.
// An empty status lists all; page and limit fall back to server defaults
// when zero.
func (c *Client) ListWhitelistRequests(ctx context.Context, status string, page, limit int) (*ListResponse, error) {
	q := url.Values{}
	if status != "" {
		q.Set("status", status)
	}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	path := "/v1/whitelist-requests"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var out ListResponse
	if err := c.doJSON(ctx, http.MethodGet, path, nil, true, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ReviewWhitelistRequest approves or rejects a pending request. Admin.
func (c *Client) ReviewWhitelistRequest(ctx context.Context, id string, req ReviewRequest) (*ReviewResponse, error) {
	var out ReviewResponse
	path := "/v1/whitelist-requests/" + url.PathEscape(id)
	if err := c.doJSON(ctx, http.MethodPut, path, req, true, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteWhitelistRequest removes a request outright. Admin.
func (c *Client) DeleteWhitelistRequest(ctx context.Context, id string) error {
	path := "/v1/whitelist-requests/" + url.PathEscape(id)
	return c.doJSON(ctx, http.MethodDelete, path, nil, true, http.StatusOK, nil)
}

// Register creates an account through the registration gate. Public.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	var out RegisterResponse
	if err := c.doJSON(ctx, http.MethodPost, "/v1/register", req, false, http.StatusCreated, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Livez checks liveness.
func (c *Client) Livez(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/livez")
}

// Readyz checks readiness, including database connectivity.
func (c *Client) Readyz(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/readyz")
}

func (c *Client) health(ctx context.Context, path string) (*HealthResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	// Health endpoints return the payload bare, not in the envelope, and a
	// degraded readyz still carries a decodable body.
	var out HealthResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &out, nil
}

// doJSON sends a request with an optional JSON body and decodes the
// envelope's data field into out.
func (c *Client) doJSON(
	ctx context.Context,
	method, path string,
	payload any,
	admin bool,
	expectedStatus int,
	out any,
) error {
	var body io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if admin {
		req.Header.Set("Authorization", "Bearer "+c.AdminToken)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != expectedStatus {
		return parseErrorResponse(resp.StatusCode, bodyBytes)
	}

	if out == nil {
		return nil
	}

	var env struct {
		Success bool            `json:"success"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(bodyBytes, &env); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if len(env.Data) == 0 {
		return fmt.Errorf("response envelope has no data")
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("failed to decode response data: %w", err)
	}

	return nil
}
