package tasks

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// UpdateProgress sets the completion percentage (clamped to [0,100])
// and, when phase is non-empty, the current phase.
func UpdateProgress(t *Task, percentage float64, phase string) error {
	if phase != "" {
		if !ValidPhase(phase) {
			return fmt.Errorf("%w: unknown phase %q", ErrValidation, phase)
		}
		t.Progress.CurrentPhase = phase
	}
	if percentage < 0 {
		percentage = 0
	}
	if percentage > 100 {
		percentage = 100
	}
	t.Progress.Percentage = percentage
	return nil
}

func AddBlocker(t *Task, description, severity, reportedBy string, now time.Time) (*Blocker, error) {
	if description == "" {
		return nil, fmt.Errorf("%w: blocker description required", ErrValidation)
	}
	if severity == "" {
		severity = SeverityMedium
	}
	if !ValidSeverity(severity) {
		return nil, fmt.Errorf("%w: unknown severity %q", ErrValidation, severity)
	}

	t.Progress.Blockers = append(t.Progress.Blockers, Blocker{
		ID:          uuid.NewString(),
		Description: description,
		Severity:    severity,
		ReportedBy:  reportedBy,
		ReportedAt:  now,
	})
	return &t.Progress.Blockers[len(t.Progress.Blockers)-1], nil
}

// ResolveBlocker marks the blocker resolved. An unknown blocker ID is a
// no-op, not an error.
func ResolveBlocker(t *Task, blockerID string, now time.Time) {
	for i := range t.Progress.Blockers {
		if t.Progress.Blockers[i].ID == blockerID {
			t.Progress.Blockers[i].Resolved = true
			resolved := now
			t.Progress.Blockers[i].ResolvedAt = &resolved
			return
		}
	}
}

func AddMilestone(t *Task, title string, dueDate time.Time) (*Milestone, error) {
	if title == "" {
		return nil, fmt.Errorf("%w: milestone title required", ErrValidation)
	}
	t.Progress.Milestones = append(t.Progress.Milestones, Milestone{
		ID:      uuid.NewString(),
		Title:   title,
		DueDate: dueDate,
	})
	return &t.Progress.Milestones[len(t.Progress.Milestones)-1], nil
}

// CompleteMilestone marks the milestone done. Like ResolveBlocker, an
// unknown ID is a no-op.
func CompleteMilestone(t *Task, milestoneID string, now time.Time) {
	for i := range t.Progress.Milestones {
		if t.Progress.Milestones[i].ID == milestoneID {
			t.Progress.Milestones[i].Completed = true
			completed := now
			t.Progress.Milestones[i].CompletedAt = &completed
			return
		}
	}
}
