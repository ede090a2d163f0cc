package tasks

import (
	"errors"
	"testing"
	"time"
)

func TestUpdateProgressClampsPercentage(t *testing.T) {
	task := newTrackedTask(t)

	if err := UpdateProgress(task, 150, ""); err != nil {
		t.Fatalf("update: %v", err)
	}
	if task.Progress.Percentage != 100 {
		t.Fatalf("expected 100, got %v", task.Progress.Percentage)
	}

	if err := UpdateProgress(task, -5, ""); err != nil {
		t.Fatalf("update: %v", err)
	}
	if task.Progress.Percentage != 0 {
		t.Fatalf("expected 0, got %v", task.Progress.Percentage)
	}
}

func TestUpdateProgressRejectsUnknownPhase(t *testing.T) {
	task := newTrackedTask(t)
	task.Progress.CurrentPhase = PhaseDevelopment

	err := UpdateProgress(task, 50, "shipping")
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if task.Progress.CurrentPhase != PhaseDevelopment {
		t.Fatalf("phase changed on rejected update: %q", task.Progress.CurrentPhase)
	}
}

func TestAddBlockerDefaultsToMediumSeverity(t *testing.T) {
	task := newTrackedTask(t)
	now := time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC)

	blocker, err := AddBlocker(task, "waiting on API keys", "", "emp-1", now)
	if err != nil {
		t.Fatalf("add blocker: %v", err)
	}
	if blocker.Severity != SeverityMedium {
		t.Fatalf("expected medium severity, got %q", blocker.Severity)
	}
	if blocker.ID == "" {
		t.Fatal("expected generated blocker id")
	}
}

func TestResolveBlocker(t *testing.T) {
	task := newTrackedTask(t)
	now := time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC)

	blocker, err := AddBlocker(task, "waiting on API keys", SeverityHigh, "emp-1", now)
	if err != nil {
		t.Fatalf("add blocker: %v", err)
	}

	ResolveBlocker(task, blocker.ID, now.Add(time.Hour))
	if !task.Progress.Blockers[0].Resolved || task.Progress.Blockers[0].ResolvedAt == nil {
		t.Fatalf("expected resolved blocker, got %+v", task.Progress.Blockers[0])
	}
}

func TestResolveBlockerUnknownIDIsNoOp(t *testing.T) {
	task := newTrackedTask(t)
	now := time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC)

	if _, err := AddBlocker(task, "waiting on API keys", "", "emp-1", now); err != nil {
		t.Fatalf("add blocker: %v", err)
	}

	ResolveBlocker(task, "no-such-blocker", now)
	if task.Progress.Blockers[0].Resolved {
		t.Fatal("unrelated blocker resolved")
	}
}

func TestCompleteMilestone(t *testing.T) {
	task := newTrackedTask(t)
	due := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)

	milestone, err := AddMilestone(task, "Design sign-off", due)
	if err != nil {
		t.Fatalf("add milestone: %v", err)
	}

	done := due.Add(-24 * time.Hour)
	CompleteMilestone(task, milestone.ID, done)
	got := task.Progress.Milestones[0]
	if !got.Completed || got.CompletedAt == nil || !got.CompletedAt.Equal(done) {
		t.Fatalf("expected completed milestone at %v, got %+v", done, got)
	}

	CompleteMilestone(task, "no-such-milestone", done)
}
