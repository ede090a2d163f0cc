package tasks

import (
	"errors"
	"testing"
	"time"
)

func newTrackedTask(t *testing.T) *Task {
	t.Helper()
	task := &Task{
		ID:         "task-1",
		Title:      "Ship onboarding flow",
		AssignedBy: "manager-1",
		Status:     StatusPending,
		DueDate:    time.Date(2026, 3, 10, 17, 0, 0, 0, time.UTC),
	}
	if err := AddAssignee(task, "emp-1", "", time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("add assignee: %v", err)
	}
	return task
}

func TestStartTrackingPromotesPendingTask(t *testing.T) {
	task := newTrackedTask(t)
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	if err := StartTracking(task, "emp-1", now); err != nil {
		t.Fatalf("start: %v", err)
	}

	if task.Status != StatusInProgress {
		t.Fatalf("expected in_progress, got %q", task.Status)
	}
	if task.StartDate == nil || !task.StartDate.Equal(now) {
		t.Fatalf("expected start date %v, got %v", now, task.StartDate)
	}
	entry := task.Ledger("emp-1")
	if entry == nil || !entry.IsActive || entry.CurrentSessionStart == nil {
		t.Fatalf("expected active session, got %+v", entry)
	}
}

func TestStopTrackingAccumulatesLedger(t *testing.T) {
	task := newTrackedTask(t)
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	if err := StartTracking(task, "emp-1", base); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := StopTracking(task, "emp-1", "morning", base.Add(90*time.Minute)); err != nil {
		t.Fatalf("stop: %v", err)
	}
	if err := StartTracking(task, "emp-1", base.Add(4*time.Hour)); err != nil {
		t.Fatalf("restart: %v", err)
	}
	if err := StopTracking(task, "emp-1", "afternoon", base.Add(4*time.Hour+30*time.Minute)); err != nil {
		t.Fatalf("stop again: %v", err)
	}

	entry := task.Ledger("emp-1")
	if len(entry.Sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(entry.Sessions))
	}
	var sum int64
	for _, s := range entry.Sessions {
		sum += s.Duration
	}
	if entry.TotalTimeSpent != sum {
		t.Fatalf("total %d does not equal session sum %d", entry.TotalTimeSpent, sum)
	}
	want := (2 * time.Hour).Milliseconds()
	if entry.TotalTimeSpent != want {
		t.Fatalf("expected %d ms, got %d", want, entry.TotalTimeSpent)
	}
	if entry.IsActive || entry.CurrentSessionStart != nil {
		t.Fatalf("expected closed session, got %+v", entry)
	}
}

func TestStopTrackingImmediatelyRecordsZeroDuration(t *testing.T) {
	task := newTrackedTask(t)
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	if err := StartTracking(task, "emp-1", now); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := StopTracking(task, "emp-1", "", now); err != nil {
		t.Fatalf("stop: %v", err)
	}

	entry := task.Ledger("emp-1")
	if entry.TotalTimeSpent != 0 {
		t.Fatalf("expected zero total, got %d", entry.TotalTimeSpent)
	}
	if len(entry.Sessions) != 1 || entry.Sessions[0].Duration != 0 {
		t.Fatalf("expected one zero-length session, got %+v", entry.Sessions)
	}
	if entry.IsActive {
		t.Fatal("expected inactive entry")
	}
}

func TestStartTrackingTwiceRejected(t *testing.T) {
	task := newTrackedTask(t)
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	if err := StartTracking(task, "emp-1", now); err != nil {
		t.Fatalf("start: %v", err)
	}
	entry := task.Ledger("emp-1")
	startedAt := *entry.CurrentSessionStart

	err := StartTracking(task, "emp-1", now.Add(time.Hour))
	if !errors.Is(err, ErrAlreadyActive) {
		t.Fatalf("expected ErrAlreadyActive, got %v", err)
	}
	if !entry.CurrentSessionStart.Equal(startedAt) || len(entry.Sessions) != 0 {
		t.Fatalf("ledger changed on rejected start: %+v", entry)
	}
}

func TestStopTrackingWithoutSession(t *testing.T) {
	task := newTrackedTask(t)
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	if err := StopTracking(task, "emp-1", "", now); !errors.Is(err, ErrNoActiveSession) {
		t.Fatalf("expected ErrNoActiveSession, got %v", err)
	}
}

func TestStartTrackingRequiresAssignment(t *testing.T) {
	task := newTrackedTask(t)
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	if err := StartTracking(task, "outsider", now); !errors.Is(err, ErrNotAssigned) {
		t.Fatalf("expected ErrNotAssigned, got %v", err)
	}
}
