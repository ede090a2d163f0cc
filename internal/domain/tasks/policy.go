package tasks

import "github.com/apardew63/crm-server/internal/domain/auth"

// CanDelete allows admins, project managers, and the task creator when
// their designation is project_manager.
func CanDelete(actor auth.Actor, t *Task) bool {
	switch actor.Role {
	case auth.RoleAdmin, auth.RoleProjectManager:
		return true
	}
	return t.AssignedBy == actor.UserID && actor.Designation == auth.DesignationProjectManager
}

// CanMutateRestrictedFields gates edits to fields beyond status,
// progress, and comments: title, description, due date, estimate,
// roster, custom fields.
func CanMutateRestrictedFields(actor auth.Actor, t *Task) bool {
	switch actor.Role {
	case auth.RoleAdmin, auth.RoleProjectManager:
		return true
	}
	return t.AssignedBy == actor.UserID
}

// CanUpdateStatus allows assignees and anyone who can mutate the task.
func CanUpdateStatus(actor auth.Actor, t *Task) bool {
	if CanMutateRestrictedFields(actor, t) {
		return true
	}
	return t.Assigned(actor.UserID)
}
