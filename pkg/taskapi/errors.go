package taskapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/taskflowhq/taskflow/pkg/httpx"
)

// ============================================================================
// API Error Codes
// ============================================================================

const (
	ErrorCodeInvalidRequest     = "invalid_request"
	ErrorCodeInvalidCredentials = "invalid_credentials"
	ErrorCodeUnauthenticated    = "unauthenticated"
	ErrorCodeForbidden          = "forbidden"
	ErrorCodeNotFound           = "not_found"
	ErrorCodeDuplicateSlug      = "duplicate_slug"
	ErrorCodeDuplicateEmail     = "duplicate_email"
	ErrorCodeAssigneeNotFound   = "assignee_not_found"
	ErrorCodeServerError        = "server_error"
)

// ============================================================================
// APIError
// ============================================================================

// APIError is the error envelope every non-2xx response carries. It
// implements the error interface and is shared by the server (to write HTTP
// responses) and the SDK client (to represent them).
type APIError struct {
	// StatusCode is the HTTP status code for this error.
	StatusCode int `json:"-"`

	// Code is the machine-readable error code (e.g. "not_found").
	Code string `json:"error"`

	// Description is a human-readable description of the error.
	Description string `json:"error_description"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// WriteError writes this APIError to an HTTP response writer.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":             e.Code,
		"error_description": e.Description,
	})
}

// ============================================================================
// Predefined API Errors
// ============================================================================

var (
	// ErrInvalidRequest is returned when the request body or parameters are
	// malformed or fail validation.
	ErrInvalidRequest = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "the request is malformed or missing required parameters",
	}

	// ErrInvalidCredentials is returned on login failure. The description
	// never distinguishes an unknown email from a wrong password.
	ErrInvalidCredentials = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidCredentials,
		Description: "incorrect email or password",
	}

	// ErrUnauthenticated is returned when the access token is missing,
	// invalid, expired, or references a user that no longer exists.
	ErrUnauthenticated = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeUnauthenticated,
		Description: "the access token is missing, invalid or expired",
	}

	// ErrForbidden is returned when the caller is authenticated but its
	// role does not allow the operation.
	ErrForbidden = &APIError{
		StatusCode:  http.StatusForbidden,
		Code:        ErrorCodeForbidden,
		Description: "insufficient permissions",
	}

	// ErrNotFound is returned when the resource does not exist within the
	// caller's organization. Cross-tenant resources get the same answer.
	ErrNotFound = &APIError{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeNotFound,
		Description: "resource not found",
	}

	// ErrDuplicateSlug is returned when the organization slug is taken.
	ErrDuplicateSlug = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeDuplicateSlug,
		Description: "organization slug is already taken",
	}

	// ErrDuplicateEmail is returned when the email is already registered.
	ErrDuplicateEmail = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeDuplicateEmail,
		Description: "email is already registered",
	}

	// ErrAssigneeNotFound is returned when a task assignee does not
	// reference a user of the caller's organization.
	ErrAssigneeNotFound = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeAssigneeNotFound,
		Description: "assignee does not exist in this organization",
	}

	// ErrServerError is returned for unexpected internal failures.
	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "internal server error",
	}

	// ErrMethodNotAllowed is returned when the HTTP method is not allowed.
	ErrMethodNotAllowed = &APIError{
		StatusCode:  http.StatusMethodNotAllowed,
		Code:        ErrorCodeInvalidRequest,
		Description: "method not allowed",
	}
)

// NewAPIError creates an APIError with a custom description while keeping the
// envelope shape.
func NewAPIError(statusCode int, code, description string) *APIError {
	return &APIError{
		StatusCode:  statusCode,
		Code:        code,
		Description: description,
	}
}

// ============================================================================
// Error Parsing Helpers
// ============================================================================

// parseErrorResponse parses an HTTP error response into a typed *APIError.
// Returns nil for 2xx responses.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        errResp.Error,
			Description: errResp.ErrorDescription,
		}
	}

	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeServerError,
		Description: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
