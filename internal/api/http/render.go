package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/taskflowhq/taskflow/internal/api/domain"
	"github.com/taskflowhq/taskflow/internal/api/service"
	"github.com/taskflowhq/taskflow/internal/api/store"
	"github.com/taskflowhq/taskflow/pkg/slogx"
	"github.com/taskflowhq/taskflow/pkg/taskapi"
)

// toOrganization converts a domain organization to its wire form.
func toOrganization(o domain.Organization) taskapi.Organization {
	return taskapi.Organization{
		ID:        o.ID,
		Name:      o.Name,
		Slug:      o.Slug,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

// toUser converts a domain user to its wire form. The hash stays behind.
func toUser(u domain.User) taskapi.User {
	return taskapi.User{
		ID:             u.ID,
		Email:          u.Email,
		FullName:       u.FullName,
		Role:           string(u.Role),
		OrganizationID: u.OrgID,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

func toTask(t domain.Task) taskapi.Task {
	return taskapi.Task{
		ID:             t.ID,
		Title:          t.Title,
		Description:    t.Description,
		Status:         string(t.Status),
		Priority:       string(t.Priority),
		OrganizationID: t.OrgID,
		AssigneeID:     t.AssigneeID,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}

// decodeBody decodes a JSON request body, rejecting unparseable input.
func decodeBody(w http.ResponseWriter, r *http.Request, target any) bool {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		taskapi.ErrInvalidRequest.WriteError(w)
		return false
	}
	return true
}

// pageFromQuery reads and clamps the pagination window from the query
// string. Unparseable values fall back to defaults rather than erroring.
func pageFromQuery(r *http.Request) domain.PageRequest {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	size, _ := strconv.Atoi(q.Get("page_size"))
	return domain.NewPageRequest(page, size)
}

// writeServiceError maps service and store sentinels onto the wire error
// envelope. Anything unrecognized is logged and reported as a 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		taskapi.ErrNotFound.WriteError(w)
	case errors.Is(err, service.ErrUnauthenticated):
		taskapi.ErrUnauthenticated.WriteError(w)
	case errors.Is(err, service.ErrInvalidCredentials):
		taskapi.ErrInvalidCredentials.WriteError(w)
	case errors.Is(err, service.ErrSlugTaken):
		taskapi.ErrDuplicateSlug.WriteError(w)
	case errors.Is(err, service.ErrEmailTaken):
		taskapi.ErrDuplicateEmail.WriteError(w)
	case errors.Is(err, service.ErrAssigneeNotFound):
		taskapi.ErrAssigneeNotFound.WriteError(w)
	default:
		slogx.FromContext(r.Context()).Error("request failed", "err", err)
		taskapi.ErrServerError.WriteError(w)
	}
}
