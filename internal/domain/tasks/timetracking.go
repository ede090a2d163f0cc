package tasks

import "time"

// StartTracking opens a time tracking session for userID. A pending
// task is promoted to in_progress as a side effect.
func StartTracking(t *Task, userID string, now time.Time) error {
	if !t.Assigned(userID) {
		return ErrNotAssigned
	}

	entry := t.Ledger(userID)
	if entry != nil && entry.IsActive {
		return ErrAlreadyActive
	}
	if entry == nil {
		t.TimeTracking = append(t.TimeTracking, LedgerEntry{UserID: userID, Sessions: []Session{}})
		entry = &t.TimeTracking[len(t.TimeTracking)-1]
	}

	start := now
	entry.IsActive = true
	entry.CurrentSessionStart = &start

	if t.Status == StatusPending {
		transition(t, StatusInProgress, userID, "Time tracking started", now)
	}
	return nil
}

// StopTracking closes the active session for userID, folding its
// duration into the accumulated total.
func StopTracking(t *Task, userID, notes string, now time.Time) error {
	entry := t.Ledger(userID)
	if entry == nil || !entry.IsActive || entry.CurrentSessionStart == nil {
		return ErrNoActiveSession
	}
	closeSession(entry, notes, now)
	return nil
}

func closeSession(entry *LedgerEntry, notes string, now time.Time) {
	start := *entry.CurrentSessionStart
	duration := now.Sub(start).Milliseconds()
	if duration < 0 {
		duration = 0
	}
	entry.Sessions = append(entry.Sessions, Session{
		StartTime: start,
		EndTime:   now,
		Duration:  duration,
		Notes:     notes,
	})
	entry.TotalTimeSpent += duration
	entry.IsActive = false
	entry.CurrentSessionStart = nil
}

// forceStopAll closes every active session, tagging each with notes.
func forceStopAll(t *Task, notes string, now time.Time) {
	for i := range t.TimeTracking {
		entry := &t.TimeTracking[i]
		if entry.IsActive && entry.CurrentSessionStart != nil {
			closeSession(entry, notes, now)
		}
	}
}
