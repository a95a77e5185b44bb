package taskapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client is a client for the TaskFlow API. It provides the unauthenticated
// operations and creates authenticated Sessions.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a new TaskFlow API client.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Register creates a new organization with its first admin user and returns
// an authenticated session for that user.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*Session, error) {
	var tokenResp TokenResponse
	if err := c.postJSON(ctx, "/v1/auth/register", req, &tokenResp, http.StatusCreated); err != nil {
		return nil, err
	}
	return newSession(c, tokenResp), nil
}

// Login exchanges credentials for an authenticated session.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	var tokenResp TokenResponse
	req := LoginRequest{Email: email, Password: password}
	if err := c.postJSON(ctx, "/v1/auth/login", req, &tokenResp, http.StatusOK); err != nil {
		return nil, err
	}
	return newSession(c, tokenResp), nil
}

// NewSessionFromToken creates a session from an existing access token, e.g.
// one stored by a previous login.
func (c *Client) NewSessionFromToken(accessToken string) *Session {
	return &Session{client: c, accessToken: accessToken}
}

// GetLiveness checks whether the service process is up.
func (c *Client) GetLiveness(ctx context.Context) (HealthResponse, error) {
	var health HealthResponse
	err := c.getJSON(ctx, "/livez", &health)
	return health, err
}

// GetReadiness checks whether the service can reach its dependencies.
func (c *Client) GetReadiness(ctx context.Context) (HealthResponse, error) {
	var health HealthResponse
	err := c.getJSON(ctx, "/readyz", &health)
	return health, err
}

// ============================================================================
// HTTP Helpers
// ============================================================================

// url builds a complete URL by appending the path to the base URL.
func (c *Client) url(path string) string {
	return c.BaseURL + path
}

func (c *Client) postJSON(ctx context.Context, path string, body, target any, expectedStatus int) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(path), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}

	return decodeJSON(resp, target, expectedStatus)
}

func (c *Client) getJSON(ctx context.Context, path string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(path), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}

	return decodeJSON(resp, target, http.StatusOK)
}

// decodeJSON decodes a JSON response into target, returning a typed
// *APIError when the status differs from expectedStatus.
func decodeJSON(resp *http.Response, target any, expectedStatus int) error {
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != expectedStatus {
		return parseErrorResponse(resp, bodyBytes)
	}

	if target == nil {
		return nil
	}
	if err := json.Unmarshal(bodyBytes, target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// checkStatusNoContent returns a typed error if the response status is not
// 204 No Content.
func checkStatusNoContent(resp *http.Response) error {
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return parseErrorResponse(resp, bodyBytes)
	}
	return nil
}
