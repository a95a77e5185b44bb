package http

import (
	"net/http"

	"github.com/taskflowhq/taskflow/internal/api/service"
	"github.com/taskflowhq/taskflow/pkg/httpx"
	"github.com/taskflowhq/taskflow/pkg/taskapi"
)

type UsersHandler struct {
	UserService *service.UserService
}

// HandleMe returns the caller's own user record.
//
//	@Summary		Get own user
//	@Description	Returns the authenticated user's record.
//	@Tags			Users
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	taskapi.User
//	@Failure		401	{object}	taskapi.ErrorResponse	"Invalid or missing access token"
//	@Router			/v1/auth/me [get].
func (h *UsersHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user, err := h.UserService.Get(ctx, httpx.UserIDFromCtx(ctx), httpx.OrgIDFromCtx(ctx))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUser(user))
}

// HandleList returns a pagination window of the organization's members.
//
//	@Summary		List organization members
//	@Description	Returns one page of the organization's members in creation order.
//	@Tags			Users
//	@Security		BearerAuth
//	@Produce		json
//	@Param			page		query		int	false	"Page number (default 1)"
//	@Param			page_size	query		int	false	"Page size (default 20, max 100)"
//	@Success		200			{object}	taskapi.UserPage
//	@Failure		401			{object}	taskapi.ErrorResponse	"Invalid or missing access token"
//	@Router			/v1/users [get].
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	page := pageFromQuery(r)
	users, total, err := h.UserService.List(r.Context(), httpx.OrgIDFromCtx(r.Context()), page)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	items := make([]taskapi.User, 0, len(users))
	for _, u := range users {
		items = append(items, toUser(u))
	}
	httpx.WriteJSON(w, http.StatusOK, taskapi.UserPage{
		Items:    items,
		Total:    total,
		Page:     page.Page,
		PageSize: page.Size,
		Pages:    page.Pages(total),
	})
}

// HandleGet returns one organization member by id.
//
//	@Summary		Get an organization member
//	@Description	Returns one member of the caller's organization. Users of other
//	@Description	organizations are indistinguishable from missing ones.
//	@Tags			Users
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"User id"
//	@Success		200	{object}	taskapi.User
//	@Failure		401	{object}	taskapi.ErrorResponse	"Invalid or missing access token"
//	@Failure		404	{object}	taskapi.ErrorResponse	"User not found"
//	@Router			/v1/users/{id} [get].
func (h *UsersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	user, err := h.UserService.Get(r.Context(), r.PathValue("id"), httpx.OrgIDFromCtx(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUser(user))
}

// HandleDelete removes an organization member.
//
//	@Summary		Delete an organization member
//	@Description	Removes a member of the caller's organization. Tasks assigned to the
//	@Description	member are removed with it. Admin only.
//	@Tags			Users
//	@Security		BearerAuth
//	@Param			id	path	string	true	"User id"
//	@Success		204	"User deleted"
//	@Failure		401	{object}	taskapi.ErrorResponse	"Invalid or missing access token"
//	@Failure		403	{object}	taskapi.ErrorResponse	"Caller is not an admin"
//	@Failure		404	{object}	taskapi.ErrorResponse	"User not found"
//	@Router			/v1/users/{id} [delete].
func (h *UsersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	err := h.UserService.Delete(r.Context(), r.PathValue("id"), httpx.OrgIDFromCtx(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
