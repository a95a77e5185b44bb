package taskapi

import "time"

// ============================================================================
// Internal Response Types (used for JSON unmarshaling)
// ============================================================================

// ErrorResponse is the error envelope carried by every non-2xx response.
// This is used internally for parsing; client code should use APIError.
type ErrorResponse struct {
	// Error is the machine-readable error code (e.g. "not_found").
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error.
	ErrorDescription string `json:"error_description"`
}

// ============================================================================
// Auth Types
// ============================================================================

// RegisterRequest creates a new organization together with its first admin
// user. POST /v1/auth/register.
type RegisterRequest struct {
	OrganizationName string `json:"organization_name"`
	OrganizationSlug string `json:"organization_slug"`
	Email            string `json:"email"`
	Password         string `json:"password"`
	FullName         string `json:"full_name,omitempty"`
}

// LoginRequest exchanges credentials for an access token.
// POST /v1/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse is returned from the register and login endpoints.
type TokenResponse struct {
	// AccessToken is the JWT used to authenticate API requests.
	AccessToken string `json:"access_token"`

	// TokenType is always "Bearer".
	TokenType string `json:"token_type"`

	// ExpiresIn is the lifetime in seconds of the access token.
	ExpiresIn int `json:"expires_in"`
}

// ============================================================================
// Organization Types
// ============================================================================

// Organization is the public representation of a tenant.
type Organization struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UpdateOrganizationRequest is a partial update; absent fields are left
// untouched. PATCH /v1/organizations/me.
type UpdateOrganizationRequest struct {
	Name Optional[string] `json:"name,omitzero"`
	Slug Optional[string] `json:"slug,omitzero"`
}

// ============================================================================
// User Types
// ============================================================================

// User is the public representation of an organization member. The password
// hash never leaves the server.
type User struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	FullName       string    `json:"full_name,omitempty"`
	Role           string    `json:"role"`
	OrganizationID string    `json:"organization_id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// UserPage is a pagination window over an organization's members.
type UserPage struct {
	Items    []User `json:"items"`
	Total    int64  `json:"total"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
	Pages    int    `json:"pages"`
}

// ============================================================================
// Task Types
// ============================================================================

// Task statuses and priorities accepted by the API.
const (
	TaskStatusTodo       = "todo"
	TaskStatusInProgress = "in_progress"
	TaskStatusDone       = "done"

	TaskPriorityLow    = "low"
	TaskPriorityMedium = "medium"
	TaskPriorityHigh   = "high"
)

// Task is the public representation of a task.
type Task struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description,omitempty"`
	Status         string    `json:"status"`
	Priority       string    `json:"priority"`
	OrganizationID string    `json:"organization_id"`
	AssigneeID     *string   `json:"assignee_id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// CreateTaskRequest creates a new task. Only Title is required; Status
// defaults to "todo" and Priority to "medium". POST /v1/tasks.
type CreateTaskRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Status      string  `json:"status,omitempty"`
	Priority    string  `json:"priority,omitempty"`
	AssigneeID  *string `json:"assignee_id,omitempty"`
}

// UpdateTaskRequest is a partial update; absent fields are left untouched
// and explicit nulls clear Description or AssigneeID. PATCH /v1/tasks/{id}.
type UpdateTaskRequest struct {
	Title       Optional[string] `json:"title,omitzero"`
	Description Optional[string] `json:"description,omitzero"`
	Status      Optional[string] `json:"status,omitzero"`
	Priority    Optional[string] `json:"priority,omitzero"`
	AssigneeID  Optional[string] `json:"assignee_id,omitzero"`
}

// TaskPage is a pagination window over an organization's tasks.
type TaskPage struct {
	Items    []Task `json:"items"`
	Total    int64  `json:"total"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
	Pages    int    `json:"pages"`
}

// ============================================================================
// Health Types
// ============================================================================

// HealthChecks reports the state of each critical dependency.
type HealthChecks struct {
	Database string `json:"database,omitempty"`
	Notifier string `json:"notifier,omitempty"`
}

// HealthResponse is returned from the /livez and /readyz endpoints.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}
