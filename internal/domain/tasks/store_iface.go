package tasks

import (
	"context"
	"time"
)

type Filter struct {
	Status     string
	AssigneeID string
	AssignedBy string
	DueBefore  time.Time
	DueAfter   time.Time
	Limit      int
	Offset     int
}

type StoreAPI interface {
	Get(ctx context.Context, taskID string) (*Task, error)
	Insert(ctx context.Context, task *Task) error
	Replace(ctx context.Context, task *Task) error
	Delete(ctx context.Context, taskID string) error
	List(ctx context.Context, filter Filter) ([]*Task, error)
	// FindCreatedBetween returns tasks created inside the window whose
	// status is in statuses (all statuses when empty).
	FindCreatedBetween(ctx context.Context, start, end time.Time, statuses []string) ([]*Task, error)
	FindByAssignee(ctx context.Context, userID string, start, end time.Time) ([]*Task, error)
}
