package http

import (
	"net/http"
	"net/mail"
	"strings"

	"github.com/taskflowhq/taskflow/internal/api/service"
	"github.com/taskflowhq/taskflow/pkg/httpx"
	"github.com/taskflowhq/taskflow/pkg/taskapi"
)

// Registration limits. Slugs are the only part of a tenant that appears in
// URLs and must stay lowercase kebab-case.
const (
	minPasswordLength = 8
	maxSlugLength     = 50
)

type RegisterHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP handles new tenant registration.
//
//	@Summary		Register a new organization
//	@Description	Creates a new organization together with its first user, who becomes admin.
//	@Description	Returns an access token for the new admin, so registration doubles as login.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		taskapi.RegisterRequest	true	"Registration details"
//	@Success		201		{object}	taskapi.TokenResponse	"access_token, token_type, expires_in"
//	@Failure		400		{object}	taskapi.ErrorResponse	"Validation failure, duplicate slug or duplicate email"
//	@Router			/v1/auth/register [post].
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req taskapi.RegisterRequest
	if !decodeBody(w, r, &req) {
		return
	}

	req.OrganizationName = strings.TrimSpace(req.OrganizationName)
	req.OrganizationSlug = strings.TrimSpace(req.OrganizationSlug)
	req.Email = strings.TrimSpace(req.Email)
	req.FullName = strings.TrimSpace(req.FullName)

	if msg := validateRegister(req); msg != "" {
		taskapi.NewAPIError(http.StatusBadRequest, taskapi.ErrorCodeInvalidRequest, msg).WriteError(w)
		return
	}

	_, token, err := h.AuthService.Register(r.Context(), service.RegisterParams{
		OrganizationName: req.OrganizationName,
		OrganizationSlug: req.OrganizationSlug,
		Email:            req.Email,
		Password:         req.Password,
		FullName:         req.FullName,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusCreated, taskapi.TokenResponse{
		AccessToken: token.AccessToken,
		TokenType:   "Bearer",
		ExpiresIn:   token.ExpiresIn,
	})
}

func validateRegister(req taskapi.RegisterRequest) string {
	if req.OrganizationName == "" {
		return "organization_name is required"
	}
	if !validSlug(req.OrganizationSlug) {
		return "organization_slug must be 1-50 lowercase letters, digits or hyphens"
	}
	if !validEmail(req.Email) {
		return "email is not a valid address"
	}
	if len(req.Password) < minPasswordLength {
		return "password must be at least 8 characters"
	}
	return ""
}

func validSlug(slug string) bool {
	if slug == "" || len(slug) > maxSlugLength {
		return false
	}
	if strings.HasPrefix(slug, "-") || strings.HasSuffix(slug, "-") {
		return false
	}
	for _, c := range slug {
		switch {
		case c >= 'a' && c <= 'z':
		case c >= '0' && c <= '9':
		case c == '-':
		default:
			return false
		}
	}
	return true
}

func validEmail(email string) bool {
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

type LoginHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP handles credential login.
//
//	@Summary		Log in with email and password
//	@Description	Exchanges credentials for an access token. An unknown email and a wrong
//	@Description	password produce the identical error.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		taskapi.LoginRequest	true	"Credentials"
//	@Success		200		{object}	taskapi.TokenResponse	"access_token, token_type, expires_in"
//	@Failure		400		{object}	taskapi.ErrorResponse	"Malformed request"
//	@Failure		401		{object}	taskapi.ErrorResponse	"Invalid credentials"
//	@Router			/v1/auth/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req taskapi.LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if req.Email == "" || req.Password == "" {
		taskapi.ErrInvalidRequest.WriteError(w)
		return
	}

	_, token, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, taskapi.TokenResponse{
		AccessToken: token.AccessToken,
		TokenType:   "Bearer",
		ExpiresIn:   token.ExpiresIn,
	})
}
