/*
Package taskapi provides a client SDK for the TaskFlow API.

# Client vs Session

The package is organized around two types:

  - Client: unauthenticated operations (register, login, health checks)
  - Session: authenticated operations carrying a bearer token

Create a Client to reach public endpoints and obtain sessions:

	client := taskapi.NewClient("https://api.example.com")

	session, err := client.Register(ctx, taskapi.RegisterRequest{
		OrganizationName: "Acme Corp",
		OrganizationSlug: "acme",
		Email:            "admin@acme.test",
		Password:         "a-long-password",
	})

Or log in with existing credentials:

	session, err := client.Login(ctx, "admin@acme.test", "a-long-password")

Use a Session for everything tenant-scoped:

	task, err := session.CreateTask(ctx, taskapi.CreateTaskRequest{
		Title:    "Ship the release",
		Priority: taskapi.TaskPriorityHigh,
	})

	page, err := session.ListTasks(ctx, 1, 20)

# Partial Updates

PATCH requests use Optional fields. An Optional left at its zero value is
omitted from the request entirely; Some sets a value and Null sends an
explicit JSON null (clearing the field, where the API allows it):

	updated, err := session.UpdateTask(ctx, task.ID, taskapi.UpdateTaskRequest{
		Status:     taskapi.Some(taskapi.TaskStatusDone),
		AssigneeID: taskapi.Null[string](),
	})

# Error Handling

Every non-2xx response is returned as *APIError carrying the HTTP status and
the machine-readable code:

	_, err := session.GetTask(ctx, id)
	var apiErr *taskapi.APIError
	if errors.As(err, &apiErr) && apiErr.Code == taskapi.ErrorCodeNotFound {
		// the task does not exist in this organization
	}

Tokens are not refreshed automatically; when a session expires, log in again.
*/
package taskapi
