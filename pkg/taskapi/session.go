package taskapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
)

// Session is an authenticated handle on the TaskFlow API. Tokens are not
// refreshed: when the access token expires, callers log in again.
type Session struct {
	client      *Client
	accessToken string
}

func newSession(c *Client, tokenResp TokenResponse) *Session {
	return &Session{client: c, accessToken: tokenResp.AccessToken}
}

// AccessToken exposes the raw bearer token, e.g. for persisting across
// process restarts.
func (s *Session) AccessToken() string { return s.accessToken }

// ============================================================================
// Organization Operations
// ============================================================================

// GetOrganization returns the caller's organization.
func (s *Session) GetOrganization(ctx context.Context) (Organization, error) {
	var org Organization
	err := s.doJSON(ctx, http.MethodGet, "/v1/organizations/me", nil, &org, http.StatusOK)
	return org, err
}

// UpdateOrganization applies a partial update to the caller's organization.
// Requires the admin role.
func (s *Session) UpdateOrganization(ctx context.Context, req UpdateOrganizationRequest) (Organization, error) {
	var org Organization
	err := s.doJSON(ctx, http.MethodPatch, "/v1/organizations/me", req, &org, http.StatusOK)
	return org, err
}

// ============================================================================
// User Operations
// ============================================================================

// GetMe returns the caller's own user record.
func (s *Session) GetMe(ctx context.Context) (User, error) {
	var user User
	err := s.doJSON(ctx, http.MethodGet, "/v1/auth/me", nil, &user, http.StatusOK)
	return user, err
}

// ListUsers returns a page of the organization's members.
func (s *Session) ListUsers(ctx context.Context, page, pageSize int) (UserPage, error) {
	var result UserPage
	err := s.doJSON(ctx, http.MethodGet, "/v1/users"+pageQuery(page, pageSize), nil, &result, http.StatusOK)
	return result, err
}

// GetUser returns one member of the organization by id.
func (s *Session) GetUser(ctx context.Context, id string) (User, error) {
	var user User
	err := s.doJSON(ctx, http.MethodGet, "/v1/users/"+url.PathEscape(id), nil, &user, http.StatusOK)
	return user, err
}

// DeleteUser removes a member of the organization. Requires the admin role;
// tasks assigned to the user are removed with it.
func (s *Session) DeleteUser(ctx context.Context, id string) error {
	return s.doNoContent(ctx, http.MethodDelete, "/v1/users/"+url.PathEscape(id))
}

// ============================================================================
// Task Operations
// ============================================================================

// CreateTask creates a task in the caller's organization.
func (s *Session) CreateTask(ctx context.Context, req CreateTaskRequest) (Task, error) {
	var task Task
	err := s.doJSON(ctx, http.MethodPost, "/v1/tasks", req, &task, http.StatusCreated)
	return task, err
}

// ListTasks returns a page of the organization's tasks.
func (s *Session) ListTasks(ctx context.Context, page, pageSize int) (TaskPage, error) {
	var result TaskPage
	err := s.doJSON(ctx, http.MethodGet, "/v1/tasks"+pageQuery(page, pageSize), nil, &result, http.StatusOK)
	return result, err
}

// GetTask returns one task by id.
func (s *Session) GetTask(ctx context.Context, id string) (Task, error) {
	var task Task
	err := s.doJSON(ctx, http.MethodGet, "/v1/tasks/"+url.PathEscape(id), nil, &task, http.StatusOK)
	return task, err
}

// UpdateTask applies a partial update to a task.
func (s *Session) UpdateTask(ctx context.Context, id string, req UpdateTaskRequest) (Task, error) {
	var task Task
	err := s.doJSON(ctx, http.MethodPatch, "/v1/tasks/"+url.PathEscape(id), req, &task, http.StatusOK)
	return task, err
}

// DeleteTask removes a task.
func (s *Session) DeleteTask(ctx context.Context, id string) error {
	return s.doNoContent(ctx, http.MethodDelete, "/v1/tasks/"+url.PathEscape(id))
}

// ============================================================================
// HTTP Helpers
// ============================================================================

func pageQuery(page, pageSize int) string {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if pageSize > 0 {
		q.Set("page_size", strconv.Itoa(pageSize))
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

func (s *Session) doRequest(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.client.url(path), reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.accessToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	return resp, nil
}

func (s *Session) doJSON(ctx context.Context, method, path string, body, target any, expectedStatus int) error {
	resp, err := s.doRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	return decodeJSON(resp, target, expectedStatus)
}

func (s *Session) doNoContent(ctx context.Context, method, path string) error {
	resp, err := s.doRequest(ctx, method, path, nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}
