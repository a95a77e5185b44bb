package http

import (
	"net/http"
	"strings"

	"github.com/taskflowhq/taskflow/internal/api/domain"
	"github.com/taskflowhq/taskflow/internal/api/service"
	"github.com/taskflowhq/taskflow/pkg/httpx"
	"github.com/taskflowhq/taskflow/pkg/taskapi"
)

const maxTitleLength = 200

type TasksHandler struct {
	TaskService *service.TaskService
}

// HandleCreate creates a task in the caller's organization.
//
//	@Summary		Create a task
//	@Description	Creates a task. Status defaults to "todo" and priority to "medium".
//	@Description	The assignee, when given, must be a member of the caller's organization.
//	@Tags			Tasks
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		taskapi.CreateTaskRequest	true	"Task details"
//	@Success		201		{object}	taskapi.Task
//	@Failure		400		{object}	taskapi.ErrorResponse	"Validation failure or unknown assignee"
//	@Failure		401		{object}	taskapi.ErrorResponse	"Invalid or missing access token"
//	@Router			/v1/tasks [post].
func (h *TasksHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req taskapi.CreateTaskRequest
	if !decodeBody(w, r, &req) {
		return
	}

	params, msg := createTaskParams(req)
	if msg != "" {
		taskapi.NewAPIError(http.StatusBadRequest, taskapi.ErrorCodeInvalidRequest, msg).WriteError(w)
		return
	}

	task, err := h.TaskService.Create(r.Context(), httpx.OrgIDFromCtx(r.Context()), params)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toTask(task))
}

// HandleList returns a pagination window of the organization's tasks.
//
//	@Summary		List tasks
//	@Description	Returns one page of the organization's tasks in creation order.
//	@Tags			Tasks
//	@Security		BearerAuth
//	@Produce		json
//	@Param			page		query		int	false	"Page number (default 1)"
//	@Param			page_size	query		int	false	"Page size (default 20, max 100)"
//	@Success		200			{object}	taskapi.TaskPage
//	@Failure		401			{object}	taskapi.ErrorResponse	"Invalid or missing access token"
//	@Router			/v1/tasks [get].
func (h *TasksHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	page := pageFromQuery(r)
	tasks, total, err := h.TaskService.List(r.Context(), httpx.OrgIDFromCtx(r.Context()), page)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	items := make([]taskapi.Task, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, toTask(t))
	}
	httpx.WriteJSON(w, http.StatusOK, taskapi.TaskPage{
		Items:    items,
		Total:    total,
		Page:     page.Page,
		PageSize: page.Size,
		Pages:    page.Pages(total),
	})
}

// HandleGet returns one task by id.
//
//	@Summary		Get a task
//	@Description	Returns one task of the caller's organization. Tasks of other
//	@Description	organizations are indistinguishable from missing ones.
//	@Tags			Tasks
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"Task id"
//	@Success		200	{object}	taskapi.Task
//	@Failure		401	{object}	taskapi.ErrorResponse	"Invalid or missing access token"
//	@Failure		404	{object}	taskapi.ErrorResponse	"Task not found"
//	@Router			/v1/tasks/{id} [get].
func (h *TasksHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	task, err := h.TaskService.Get(r.Context(), r.PathValue("id"), httpx.OrgIDFromCtx(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toTask(task))
}

// HandlePatch applies a partial update to a task.
//
//	@Summary		Update a task
//	@Description	Partially updates a task. Absent fields are untouched; description and
//	@Description	assignee_id accept an explicit null to clear them.
//	@Tags			Tasks
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Task id"
//	@Param			request	body		taskapi.UpdateTaskRequest	true	"Fields to change"
//	@Success		200		{object}	taskapi.Task
//	@Failure		400		{object}	taskapi.ErrorResponse	"Validation failure or unknown assignee"
//	@Failure		401		{object}	taskapi.ErrorResponse	"Invalid or missing access token"
//	@Failure		404		{object}	taskapi.ErrorResponse	"Task not found"
//	@Router			/v1/tasks/{id} [patch].
func (h *TasksHandler) HandlePatch(w http.ResponseWriter, r *http.Request) {
	var req taskapi.UpdateTaskRequest
	if !decodeBody(w, r, &req) {
		return
	}

	patch, msg := taskPatch(req)
	if msg != "" {
		taskapi.NewAPIError(http.StatusBadRequest, taskapi.ErrorCodeInvalidRequest, msg).WriteError(w)
		return
	}

	task, err := h.TaskService.Update(r.Context(), r.PathValue("id"), httpx.OrgIDFromCtx(r.Context()), patch)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toTask(task))
}

// HandleDelete removes a task.
//
//	@Summary		Delete a task
//	@Description	Removes a task of the caller's organization.
//	@Tags			Tasks
//	@Security		BearerAuth
//	@Param			id	path	string	true	"Task id"
//	@Success		204	"Task deleted"
//	@Failure		401	{object}	taskapi.ErrorResponse	"Invalid or missing access token"
//	@Failure		404	{object}	taskapi.ErrorResponse	"Task not found"
//	@Router			/v1/tasks/{id} [delete].
func (h *TasksHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	err := h.TaskService.Delete(r.Context(), r.PathValue("id"), httpx.OrgIDFromCtx(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func createTaskParams(req taskapi.CreateTaskRequest) (service.CreateTaskParams, string) {
	title := strings.TrimSpace(req.Title)
	if title == "" || len(title) > maxTitleLength {
		return service.CreateTaskParams{}, "title must be 1-200 characters"
	}

	status := domain.TaskStatus(req.Status)
	if req.Status == "" {
		status = domain.StatusTodo
	} else if !status.Valid() {
		return service.CreateTaskParams{}, "status must be one of todo, in_progress, done"
	}

	priority := domain.TaskPriority(req.Priority)
	if req.Priority == "" {
		priority = domain.PriorityMedium
	} else if !priority.Valid() {
		return service.CreateTaskParams{}, "priority must be one of low, medium, high"
	}

	return service.CreateTaskParams{
		Title:       title,
		Description: req.Description,
		Status:      status,
		Priority:    priority,
		AssigneeID:  req.AssigneeID,
	}, ""
}

func taskPatch(req taskapi.UpdateTaskRequest) (domain.TaskPatch, string) {
	var patch domain.TaskPatch

	if req.Title.IsSet() {
		title, ok := req.Title.Get()
		title = strings.TrimSpace(title)
		if !ok || title == "" || len(title) > maxTitleLength {
			return patch, "title must be 1-200 characters and cannot be null"
		}
		patch.Title = domain.FieldOf(title)
	}
	if req.Description.IsSet() {
		if req.Description.IsNull() {
			patch.Description = domain.NullField[string]()
		} else {
			desc, _ := req.Description.Get()
			patch.Description = domain.FieldOf(desc)
		}
	}
	if req.Status.IsSet() {
		raw, ok := req.Status.Get()
		status := domain.TaskStatus(raw)
		if !ok || !status.Valid() {
			return patch, "status must be one of todo, in_progress, done"
		}
		patch.Status = domain.FieldOf(status)
	}
	if req.Priority.IsSet() {
		raw, ok := req.Priority.Get()
		priority := domain.TaskPriority(raw)
		if !ok || !priority.Valid() {
			return patch, "priority must be one of low, medium, high"
		}
		patch.Priority = domain.FieldOf(priority)
	}
	if req.AssigneeID.IsSet() {
		if req.AssigneeID.IsNull() {
			patch.AssigneeID = domain.NullField[string]()
		} else {
			assignee, _ := req.AssigneeID.Get()
			if assignee == "" {
				return patch, "assignee_id cannot be empty; use null to unassign"
			}
			patch.AssigneeID = domain.FieldOf(assignee)
		}
	}
	return patch, ""
}
