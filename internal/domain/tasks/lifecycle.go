package tasks

import (
	"fmt"
	"time"
)

// systemActor is recorded in status history for transitions nobody
// requested explicitly, such as the overdue recomputation.
const systemActor = "system"

// ChangeStatus moves the task to a new status, recording history and
// applying the entry side effects of the target state. Setting the
// current status again is a no-op.
func ChangeStatus(t *Task, status, changedBy, reason string, now time.Time) error {
	if !ValidStatus(status) {
		return fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}
	if t.Status == status {
		return nil
	}
	transition(t, status, changedBy, reason, now)
	return nil
}

// Complete marks the task completed on behalf of changedBy.
func Complete(t *Task, changedBy, reason string, now time.Time) error {
	if reason == "" {
		reason = "Task completed"
	}
	return ChangeStatus(t, StatusCompleted, changedBy, reason, now)
}

func transition(t *Task, status, changedBy, reason string, now time.Time) {
	t.Status = status
	t.StatusHistory = append(t.StatusHistory, StatusChange{
		Status:    status,
		ChangedBy: changedBy,
		ChangedAt: now,
		Reason:    reason,
	})

	switch status {
	case StatusInProgress:
		if t.StartDate == nil {
			start := now
			t.StartDate = &start
		}
	case StatusCompleted:
		completed := now
		t.CompletedDate = &completed
		forceStopAll(t, "Task completed", now)
		t.Progress.CurrentPhase = PhaseCompleted
		t.Progress.Percentage = 100
	}
}

// ApplyInvariants recomputes the task's derived state. It is idempotent
// and runs at every mutation site and before every persisted read or
// write, so an overdue task surfaces as overdue without a background
// sweep.
func ApplyInvariants(t *Task, now time.Time) {
	if !t.DueDate.IsZero() && now.After(t.DueDate) {
		switch t.Status {
		case StatusCompleted, StatusCancelled, StatusOverdue:
		default:
			transition(t, StatusOverdue, systemActor, "Past due date", now)
		}
	}

	if t.Progress.Percentage < 0 {
		t.Progress.Percentage = 0
	}
	if t.Progress.Percentage > 100 {
		t.Progress.Percentage = 100
	}

	t.IsBeingTracked = false
	for i := range t.TimeTracking {
		if t.TimeTracking[i].IsActive {
			t.IsBeingTracked = true
			break
		}
	}
}
