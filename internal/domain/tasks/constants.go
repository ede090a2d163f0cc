package tasks

const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
	StatusOverdue    = "overdue"

	AssigneeRolePrimary      = "primary"
	AssigneeRoleCollaborator = "collaborator"
	AssigneeRoleReviewer     = "reviewer"

	PhasePlanning    = "planning"
	PhaseDevelopment = "development"
	PhaseTesting     = "testing"
	PhaseReview      = "review"
	PhaseDeployment  = "deployment"
	PhaseCompleted   = "completed"

	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

func ValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled, StatusOverdue:
		return true
	}
	return false
}

func ValidAssigneeRole(role string) bool {
	switch role {
	case AssigneeRolePrimary, AssigneeRoleCollaborator, AssigneeRoleReviewer:
		return true
	}
	return false
}

func ValidPhase(phase string) bool {
	switch phase {
	case PhasePlanning, PhaseDevelopment, PhaseTesting, PhaseReview, PhaseDeployment, PhaseCompleted:
		return true
	}
	return false
}

func ValidSeverity(severity string) bool {
	switch severity {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}
