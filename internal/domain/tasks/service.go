package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/apardew63/crm-server/internal/domain/auth"
	"github.com/apardew63/crm-server/internal/domain/notifications"
)

// Notifier delivers fire-and-forget notifications; failures are logged,
// never propagated.
type Notifier interface {
	Create(ctx context.Context, userID, ntype, title, body string) error
}

// UserDirectory answers whether a user id is known to the identity
// store.
type UserDirectory interface {
	UserExists(ctx context.Context, userID string) (bool, error)
}

type Service struct {
	store  StoreAPI
	notify Notifier
	users  UserDirectory
}

func NewService(store StoreAPI, notify Notifier, users UserDirectory) *Service {
	return &Service{store: store, notify: notify, users: users}
}

type AssigneeInput struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
}

type CreateInput struct {
	Title          string
	Description    string
	Assignees      []AssigneeInput
	DueDate        time.Time
	EstimatedHours *float64
	CustomFields   map[string]FieldValue
}

func (s *Service) Create(ctx context.Context, actor auth.Actor, input CreateInput) (*Task, error) {
	if input.Title == "" {
		return nil, fmt.Errorf("%w: title required", ErrValidation)
	}
	if len(input.Assignees) == 0 {
		return nil, fmt.Errorf("%w: at least one assignee required", ErrValidation)
	}
	if input.DueDate.IsZero() {
		return nil, fmt.Errorf("%w: due date required", ErrValidation)
	}
	if input.EstimatedHours != nil && *input.EstimatedHours < 0 {
		return nil, fmt.Errorf("%w: estimated hours must not be negative", ErrValidation)
	}
	for key, value := range input.CustomFields {
		if key == "" || !value.Valid() {
			return nil, fmt.Errorf("%w: custom field %q must hold exactly one scalar value", ErrValidation, key)
		}
	}

	now := time.Now().UTC()
	task := &Task{
		ID:           uuid.NewString(),
		Title:        input.Title,
		Description:  input.Description,
		AssignedBy:   actor.UserID,
		Status:       StatusPending,
		Progress:     Progress{CurrentPhase: PhasePlanning, Blockers: []Blocker{}, Milestones: []Milestone{}},
		DueDate:      input.DueDate,
		TimeTracking: []LedgerEntry{},
		CustomFields: input.CustomFields,
	}
	if input.EstimatedHours != nil {
		hours := *input.EstimatedHours
		task.EstimatedHours = &hours
	}

	for _, assignee := range input.Assignees {
		if err := s.checkUserKnown(ctx, assignee.UserID); err != nil {
			return nil, err
		}
		if err := AddAssignee(task, assignee.UserID, assignee.Role, now); err != nil {
			return nil, err
		}
	}

	ApplyInvariants(task, now)
	if err := s.store.Insert(ctx, task); err != nil {
		return nil, err
	}

	for _, assignee := range task.Assignees {
		s.send(ctx, assignee.UserID, notifications.TypeTaskAssigned, "New task assigned",
			fmt.Sprintf("You were assigned to task %q", task.Title))
	}
	return task, nil
}

// Get loads a task and recomputes its derived state; a freshly overdue
// task is written back so the transition is persisted exactly once.
func (s *Service) Get(ctx context.Context, taskID string) (*Task, error) {
	task, err := s.store.Get(ctx, taskID)
	if err != nil {
		return nil, err
	}
	before := task.Status
	ApplyInvariants(task, time.Now().UTC())
	if task.Status != before {
		if err := s.store.Replace(ctx, task); err != nil {
			return nil, err
		}
	}
	return task, nil
}

func (s *Service) List(ctx context.Context, filter Filter) ([]*Task, error) {
	found, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	for _, task := range found {
		ApplyInvariants(task, now)
	}
	return found, nil
}

type UpdateInput struct {
	Title          *string
	Description    *string
	DueDate        *time.Time
	EstimatedHours *float64
	CustomFields   map[string]FieldValue
}

func (s *Service) Update(ctx context.Context, actor auth.Actor, taskID string, input UpdateInput) (*Task, error) {
	return s.mutate(ctx, taskID, func(task *Task, now time.Time) error {
		if !CanMutateRestrictedFields(actor, task) {
			return ErrPermissionDenied
		}
		if input.Title != nil {
			if *input.Title == "" {
				return fmt.Errorf("%w: title required", ErrValidation)
			}
			task.Title = *input.Title
		}
		if input.Description != nil {
			task.Description = *input.Description
		}
		if input.DueDate != nil && !input.DueDate.IsZero() {
			task.DueDate = *input.DueDate
		}
		if input.EstimatedHours != nil {
			if *input.EstimatedHours < 0 {
				return fmt.Errorf("%w: estimated hours must not be negative", ErrValidation)
			}
			hours := *input.EstimatedHours
			task.EstimatedHours = &hours
		}
		for key, value := range input.CustomFields {
			if key == "" || !value.Valid() {
				return fmt.Errorf("%w: custom field %q must hold exactly one scalar value", ErrValidation, key)
			}
			if task.CustomFields == nil {
				task.CustomFields = map[string]FieldValue{}
			}
			task.CustomFields[key] = value
		}
		return nil
	})
}

func (s *Service) Delete(ctx context.Context, actor auth.Actor, taskID string) error {
	task, err := s.store.Get(ctx, taskID)
	if err != nil {
		return err
	}
	if !CanDelete(actor, task) {
		return ErrPermissionDenied
	}
	return s.store.Delete(ctx, taskID)
}

func (s *Service) StartTracking(ctx context.Context, actor auth.Actor, taskID string) (*Task, error) {
	task, err := s.mutate(ctx, taskID, func(task *Task, now time.Time) error {
		return StartTracking(task, actor.UserID, now)
	})
	if err != nil {
		return nil, err
	}
	if task.AssignedBy != actor.UserID {
		s.send(ctx, task.AssignedBy, notifications.TypeTaskStarted, "Task work started",
			fmt.Sprintf("Work started on task %q", task.Title))
	}
	return task, nil
}

func (s *Service) StopTracking(ctx context.Context, actor auth.Actor, taskID, notes string) (*Task, error) {
	return s.mutate(ctx, taskID, func(task *Task, now time.Time) error {
		return StopTracking(task, actor.UserID, notes, now)
	})
}

func (s *Service) ChangeStatus(ctx context.Context, actor auth.Actor, taskID, status, reason string) (*Task, error) {
	task, err := s.mutate(ctx, taskID, func(task *Task, now time.Time) error {
		if !CanUpdateStatus(actor, task) {
			return ErrPermissionDenied
		}
		return ChangeStatus(task, status, actor.UserID, reason, now)
	})
	if err != nil {
		return nil, err
	}
	if task.AssignedBy != actor.UserID {
		s.send(ctx, task.AssignedBy, notifications.TypeTaskStatusChanged, "Task status changed",
			fmt.Sprintf("Task %q is now %s", task.Title, task.Status))
	}
	return task, nil
}

func (s *Service) Complete(ctx context.Context, actor auth.Actor, taskID, reason string) (*Task, error) {
	task, err := s.mutate(ctx, taskID, func(task *Task, now time.Time) error {
		if !CanUpdateStatus(actor, task) {
			return ErrPermissionDenied
		}
		return Complete(task, actor.UserID, reason, now)
	})
	if err != nil {
		return nil, err
	}
	if task.AssignedBy != actor.UserID {
		s.send(ctx, task.AssignedBy, notifications.TypeTaskCompleted, "Task completed",
			fmt.Sprintf("Task %q was completed", task.Title))
	}
	return task, nil
}

func (s *Service) AddAssignee(ctx context.Context, actor auth.Actor, taskID, userID, role string) (*Task, error) {
	task, err := s.mutate(ctx, taskID, func(task *Task, now time.Time) error {
		if !CanMutateRestrictedFields(actor, task) {
			return ErrPermissionDenied
		}
		if err := s.checkUserKnown(ctx, userID); err != nil {
			return err
		}
		return AddAssignee(task, userID, role, now)
	})
	if err != nil {
		return nil, err
	}
	s.send(ctx, userID, notifications.TypeTaskAssigned, "New task assigned",
		fmt.Sprintf("You were assigned to task %q", task.Title))
	return task, nil
}

func (s *Service) RemoveAssignee(ctx context.Context, actor auth.Actor, taskID, userID string) (*Task, error) {
	return s.mutate(ctx, taskID, func(task *Task, now time.Time) error {
		if !CanMutateRestrictedFields(actor, task) {
			return ErrPermissionDenied
		}
		return RemoveAssignee(task, userID, now)
	})
}

func (s *Service) UpdateProgress(ctx context.Context, actor auth.Actor, taskID string, percentage float64, phase string) (*Task, error) {
	return s.mutate(ctx, taskID, func(task *Task, now time.Time) error {
		if !CanUpdateStatus(actor, task) {
			return ErrPermissionDenied
		}
		return UpdateProgress(task, percentage, phase)
	})
}

func (s *Service) AddBlocker(ctx context.Context, actor auth.Actor, taskID, description, severity string) (*Task, error) {
	return s.mutate(ctx, taskID, func(task *Task, now time.Time) error {
		if !CanUpdateStatus(actor, task) {
			return ErrPermissionDenied
		}
		_, err := AddBlocker(task, description, severity, actor.UserID, now)
		return err
	})
}

func (s *Service) ResolveBlocker(ctx context.Context, actor auth.Actor, taskID, blockerID string) (*Task, error) {
	return s.mutate(ctx, taskID, func(task *Task, now time.Time) error {
		if !CanUpdateStatus(actor, task) {
			return ErrPermissionDenied
		}
		ResolveBlocker(task, blockerID, now)
		return nil
	})
}

func (s *Service) AddMilestone(ctx context.Context, actor auth.Actor, taskID, title string, dueDate time.Time) (*Task, error) {
	return s.mutate(ctx, taskID, func(task *Task, now time.Time) error {
		if !CanMutateRestrictedFields(actor, task) {
			return ErrPermissionDenied
		}
		_, err := AddMilestone(task, title, dueDate)
		return err
	})
}

func (s *Service) CompleteMilestone(ctx context.Context, actor auth.Actor, taskID, milestoneID string) (*Task, error) {
	return s.mutate(ctx, taskID, func(task *Task, now time.Time) error {
		if !CanUpdateStatus(actor, task) {
			return ErrPermissionDenied
		}
		CompleteMilestone(task, milestoneID, now)
		return nil
	})
}

// mutate is the single read-modify-write path: load, recompute derived
// state, apply the mutation, recompute again, persist.
func (s *Service) mutate(ctx context.Context, taskID string, fn func(task *Task, now time.Time) error) (*Task, error) {
	task, err := s.store.Get(ctx, taskID)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	ApplyInvariants(task, now)
	if err := fn(task, now); err != nil {
		return nil, err
	}
	ApplyInvariants(task, now)
	if err := s.store.Replace(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *Service) checkUserKnown(ctx context.Context, userID string) error {
	if userID == "" {
		return fmt.Errorf("%w: assignee user id required", ErrValidation)
	}
	if s.users == nil {
		return nil
	}
	known, err := s.users.UserExists(ctx, userID)
	if err != nil {
		return err
	}
	if !known {
		return fmt.Errorf("%w: unknown user %s", ErrValidation, userID)
	}
	return nil
}

func (s *Service) send(ctx context.Context, userID, ntype, title, body string) {
	if s.notify == nil || userID == "" {
		return
	}
	if err := s.notify.Create(ctx, userID, ntype, title, body); err != nil {
		slog.Warn("task notification failed", "type", ntype, "err", err)
	}
}
