package tasks

import (
	"fmt"
	"time"
)

// AddAssignee appends a roster entry and a zeroed ledger entry for the
// user. The first assignee on a task defaults to the primary role.
func AddAssignee(t *Task, userID, role string, now time.Time) error {
	if userID == "" {
		return fmt.Errorf("%w: assignee user id required", ErrValidation)
	}
	if role == "" {
		role = AssigneeRoleCollaborator
	}
	if len(t.Assignees) == 0 && role == AssigneeRoleCollaborator {
		role = AssigneeRolePrimary
	}
	if !ValidAssigneeRole(role) {
		return fmt.Errorf("%w: unknown assignee role %q", ErrValidation, role)
	}
	if t.Assigned(userID) {
		return ErrAlreadyAssigned
	}

	t.Assignees = append(t.Assignees, Assignee{UserID: userID, Role: role, AssignedAt: now})
	if t.Ledger(userID) == nil {
		t.TimeTracking = append(t.TimeTracking, LedgerEntry{UserID: userID, Sessions: []Session{}})
	}
	return nil
}

// RemoveAssignee drops the roster and ledger entries for the user. A
// task always keeps at least one assignee; an active session is closed
// before removal.
func RemoveAssignee(t *Task, userID string, now time.Time) error {
	idx := -1
	for i := range t.Assignees {
		if t.Assignees[i].UserID == userID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotAssigned
	}
	if len(t.Assignees) <= 1 {
		return ErrLastAssignee
	}

	if entry := t.Ledger(userID); entry != nil && entry.IsActive {
		closeSession(entry, "Removed from task", now)
	}

	t.Assignees = append(t.Assignees[:idx], t.Assignees[idx+1:]...)
	for i := range t.TimeTracking {
		if t.TimeTracking[i].UserID == userID {
			t.TimeTracking = append(t.TimeTracking[:i], t.TimeTracking[i+1:]...)
			break
		}
	}
	return nil
}
