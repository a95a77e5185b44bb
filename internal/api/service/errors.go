package service

import "errors"

// Sentinel errors returned by the services. HTTP handlers map these onto the
// wire error envelope; services never see status codes.
var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrSlugTaken          = errors.New("slug_taken")
	ErrEmailTaken         = errors.New("email_taken")
	ErrAssigneeNotFound   = errors.New("assignee_not_found")
)
