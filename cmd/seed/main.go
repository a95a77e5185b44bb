// Command seed provisions a demo tenant against a running API instance.
// Useful for local development and smoke testing:
//
//	go run ./cmd/seed -url http://localhost:8080
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/taskflowhq/taskflow/pkg/taskapi"
)

func main() {
	var (
		baseURL  = flag.String("url", "http://localhost:8080", "API base URL")
		slug     = flag.String("slug", "acme", "organization slug")
		email    = flag.String("email", "admin@acme.test", "admin email")
		password = flag.String("password", "correct horse battery staple", "admin password")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client := taskapi.NewClient(*baseURL)

	session, err := client.Register(ctx, taskapi.RegisterRequest{
		OrganizationName: "Acme Corp",
		OrganizationSlug: *slug,
		Email:            *email,
		Password:         *password,
		FullName:         "Demo Admin",
	})
	if err != nil {
		// A rerun against the same database logs in instead.
		var apiErr *taskapi.APIError
		if errors.As(err, &apiErr) &&
			(apiErr.Code == taskapi.ErrorCodeDuplicateSlug || apiErr.Code == taskapi.ErrorCodeDuplicateEmail) {
			session, err = client.Login(ctx, *email, *password)
		}
		if err != nil {
			log.Fatalf("failed to provision tenant: %v", err)
		}
	}

	me, err := session.GetMe(ctx)
	if err != nil {
		log.Fatalf("failed to load admin user: %v", err)
	}

	seedTasks := []taskapi.CreateTaskRequest{
		{Title: "Set up the project board", Priority: taskapi.TaskPriorityHigh, AssigneeID: &me.ID},
		{Title: "Write the onboarding doc", Description: "Cover local setup and deploys"},
		{Title: "Review open pull requests", Status: taskapi.TaskStatusInProgress},
	}
	for _, req := range seedTasks {
		task, err := session.CreateTask(ctx, req)
		if err != nil {
			log.Fatalf("failed to seed task %q: %v", req.Title, err)
		}
		fmt.Printf("created task %s  %s\n", task.ID, task.Title)
	}

	org, err := session.GetOrganization(ctx)
	if err != nil {
		log.Fatalf("failed to load organization: %v", err)
	}
	fmt.Printf("tenant ready: %s (%s), admin %s\n", org.Name, org.Slug, me.Email)
}
