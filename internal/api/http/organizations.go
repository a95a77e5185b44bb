package http

import (
	"net/http"
	"strings"

	"github.com/taskflowhq/taskflow/internal/api/domain"
	"github.com/taskflowhq/taskflow/internal/api/service"
	"github.com/taskflowhq/taskflow/pkg/httpx"
	"github.com/taskflowhq/taskflow/pkg/taskapi"
)

type OrganizationHandler struct {
	OrganizationService *service.OrganizationService
}

// HandleGet returns the caller's organization.
//
//	@Summary		Get own organization
//	@Description	Returns the organization the authenticated user belongs to.
//	@Tags			Organizations
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	taskapi.Organization
//	@Failure		401	{object}	taskapi.ErrorResponse	"Invalid or missing access token"
//	@Router			/v1/organizations/me [get].
func (h *OrganizationHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	org, err := h.OrganizationService.Get(r.Context(), httpx.OrgIDFromCtx(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toOrganization(org))
}

// HandlePatch applies a partial update to the caller's organization.
//
//	@Summary		Update own organization
//	@Description	Partially updates the organization. Only supplied fields change. Admin only.
//	@Tags			Organizations
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		taskapi.UpdateOrganizationRequest	true	"Fields to change"
//	@Success		200		{object}	taskapi.Organization
//	@Failure		400		{object}	taskapi.ErrorResponse	"Validation failure or duplicate slug"
//	@Failure		401		{object}	taskapi.ErrorResponse	"Invalid or missing access token"
//	@Failure		403		{object}	taskapi.ErrorResponse	"Caller is not an admin"
//	@Router			/v1/organizations/me [patch].
func (h *OrganizationHandler) HandlePatch(w http.ResponseWriter, r *http.Request) {
	var req taskapi.UpdateOrganizationRequest
	if !decodeBody(w, r, &req) {
		return
	}

	patch, msg := organizationPatch(req)
	if msg != "" {
		taskapi.NewAPIError(http.StatusBadRequest, taskapi.ErrorCodeInvalidRequest, msg).WriteError(w)
		return
	}

	org, err := h.OrganizationService.Update(r.Context(), httpx.OrgIDFromCtx(r.Context()), patch)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toOrganization(org))
}

func organizationPatch(req taskapi.UpdateOrganizationRequest) (domain.OrganizationPatch, string) {
	var patch domain.OrganizationPatch

	if req.Name.IsSet() {
		name, ok := req.Name.Get()
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return patch, "name cannot be null or empty"
		}
		patch.Name = domain.FieldOf(name)
	}
	if req.Slug.IsSet() {
		slug, ok := req.Slug.Get()
		if !ok || !validSlug(slug) {
			return patch, "slug must be 1-50 lowercase letters, digits or hyphens"
		}
		patch.Slug = domain.FieldOf(slug)
	}
	return patch, ""
}
