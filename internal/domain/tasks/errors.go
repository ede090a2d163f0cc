package tasks

import "errors"

var (
	ErrNotAssigned      = errors.New("user is not assigned to this task")
	ErrAlreadyActive    = errors.New("user already has an active time tracking session")
	ErrNoActiveSession  = errors.New("user has no active time tracking session")
	ErrAlreadyAssigned  = errors.New("user is already assigned to this task")
	ErrLastAssignee     = errors.New("task must keep at least one assignee")
	ErrPermissionDenied = errors.New("permission denied")
	ErrTaskNotFound     = errors.New("task not found")
	ErrValidation       = errors.New("invalid task input")
)
