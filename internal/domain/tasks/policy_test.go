package tasks

import (
	"testing"

	"github.com/apardew63/crm-server/internal/domain/auth"
)

func TestCanDelete(t *testing.T) {
	task := &Task{ID: "task-1", AssignedBy: "creator-1"}

	admin := auth.Actor{UserID: "u1", Role: auth.RoleAdmin}
	if !CanDelete(admin, task) {
		t.Fatal("admin should be able to delete")
	}

	pm := auth.Actor{UserID: "u2", Role: auth.RoleProjectManager}
	if !CanDelete(pm, task) {
		t.Fatal("project manager should be able to delete")
	}

	creatorPM := auth.Actor{UserID: "creator-1", Role: auth.RoleEmployee, Designation: auth.DesignationProjectManager}
	if !CanDelete(creatorPM, task) {
		t.Fatal("creating employee with project_manager designation should be able to delete")
	}

	creatorPlain := auth.Actor{UserID: "creator-1", Role: auth.RoleEmployee, Designation: "developer"}
	if CanDelete(creatorPlain, task) {
		t.Fatal("creating employee without project_manager designation should not delete")
	}

	stranger := auth.Actor{UserID: "u3", Role: auth.RoleEmployee, Designation: auth.DesignationProjectManager}
	if CanDelete(stranger, task) {
		t.Fatal("non-creator employee should not delete")
	}
}

func TestCanMutateRestrictedFields(t *testing.T) {
	task := &Task{ID: "task-1", AssignedBy: "creator-1"}

	creator := auth.Actor{UserID: "creator-1", Role: auth.RoleEmployee}
	if !CanMutateRestrictedFields(creator, task) {
		t.Fatal("creator should be able to edit restricted fields")
	}

	assignee := auth.Actor{UserID: "emp-1", Role: auth.RoleEmployee}
	if CanMutateRestrictedFields(assignee, task) {
		t.Fatal("plain assignee should not edit restricted fields")
	}
}

func TestCanUpdateStatusAllowsAssignees(t *testing.T) {
	task := &Task{ID: "task-1", AssignedBy: "creator-1"}
	if err := AddAssignee(task, "emp-1", "", task.CreatedAt); err != nil {
		t.Fatalf("add: %v", err)
	}

	assignee := auth.Actor{UserID: "emp-1", Role: auth.RoleEmployee}
	if !CanUpdateStatus(assignee, task) {
		t.Fatal("assignee should be able to update status")
	}

	stranger := auth.Actor{UserID: "u9", Role: auth.RoleEmployee}
	if CanUpdateStatus(stranger, task) {
		t.Fatal("stranger should not update status")
	}
}
