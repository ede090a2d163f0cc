package tasks

import "time"

type Assignee struct {
	UserID     string    `bson:"userId" json:"userId"`
	Role       string    `bson:"role" json:"role"`
	AssignedAt time.Time `bson:"assignedAt" json:"assignedAt"`
}

type Session struct {
	StartTime time.Time `bson:"startTime" json:"startTime"`
	EndTime   time.Time `bson:"endTime" json:"endTime"`
	Duration  int64     `bson:"duration" json:"duration"`
	Notes     string    `bson:"notes,omitempty" json:"notes,omitempty"`
}

// LedgerEntry is the per-user time tracking record embedded in a task.
// TotalTimeSpent and Duration are elapsed milliseconds.
type LedgerEntry struct {
	UserID              string     `bson:"userId" json:"userId"`
	TotalTimeSpent      int64      `bson:"totalTimeSpent" json:"totalTimeSpent"`
	Sessions            []Session  `bson:"sessions" json:"sessions"`
	IsActive            bool       `bson:"isActive" json:"isActive"`
	CurrentSessionStart *time.Time `bson:"currentSessionStart,omitempty" json:"currentSessionStart,omitempty"`
}

type Blocker struct {
	ID          string     `bson:"id" json:"id"`
	Description string     `bson:"description" json:"description"`
	Severity    string     `bson:"severity" json:"severity"`
	ReportedBy  string     `bson:"reportedBy" json:"reportedBy"`
	ReportedAt  time.Time  `bson:"reportedAt" json:"reportedAt"`
	Resolved    bool       `bson:"resolved" json:"resolved"`
	ResolvedAt  *time.Time `bson:"resolvedAt,omitempty" json:"resolvedAt,omitempty"`
}

type Milestone struct {
	ID          string     `bson:"id" json:"id"`
	Title       string     `bson:"title" json:"title"`
	DueDate     time.Time  `bson:"dueDate" json:"dueDate"`
	Completed   bool       `bson:"completed" json:"completed"`
	CompletedAt *time.Time `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
}

type Progress struct {
	CurrentPhase string      `bson:"currentPhase" json:"currentPhase"`
	Percentage   float64     `bson:"percentage" json:"percentage"`
	Blockers     []Blocker   `bson:"blockers" json:"blockers"`
	Milestones   []Milestone `bson:"milestones" json:"milestones"`
}

type StatusChange struct {
	Status    string    `bson:"status" json:"status"`
	ChangedBy string    `bson:"changedBy" json:"changedBy"`
	ChangedAt time.Time `bson:"changedAt" json:"changedAt"`
	Reason    string    `bson:"reason,omitempty" json:"reason,omitempty"`
}

// FieldValue is a scalar custom-field value. Exactly one of the typed
// members is set.
type FieldValue struct {
	String *string  `bson:"string,omitempty" json:"string,omitempty"`
	Number *float64 `bson:"number,omitempty" json:"number,omitempty"`
	Bool   *bool    `bson:"bool,omitempty" json:"bool,omitempty"`
}

func (v FieldValue) Valid() bool {
	set := 0
	if v.String != nil {
		set++
	}
	if v.Number != nil {
		set++
	}
	if v.Bool != nil {
		set++
	}
	return set == 1
}

type Task struct {
	ID             string                `bson:"_id" json:"id"`
	Title          string                `bson:"title" json:"title"`
	Description    string                `bson:"description" json:"description"`
	Assignees      []Assignee            `bson:"assignees" json:"assignees"`
	AssignedBy     string                `bson:"assignedBy" json:"assignedBy"`
	Status         string                `bson:"status" json:"status"`
	Progress       Progress              `bson:"progress" json:"progress"`
	DueDate        time.Time             `bson:"dueDate" json:"dueDate"`
	StartDate      *time.Time            `bson:"startDate,omitempty" json:"startDate,omitempty"`
	CompletedDate  *time.Time            `bson:"completedDate,omitempty" json:"completedDate,omitempty"`
	EstimatedHours *float64              `bson:"estimatedHours,omitempty" json:"estimatedHours,omitempty"`
	TimeTracking   []LedgerEntry         `bson:"timeTracking" json:"timeTracking"`
	StatusHistory  []StatusChange        `bson:"statusHistory" json:"statusHistory"`
	IsBeingTracked bool                  `bson:"isBeingTracked" json:"isBeingTracked"`
	CustomFields   map[string]FieldValue `bson:"customFields,omitempty" json:"customFields,omitempty"`
	CreatedAt      time.Time             `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time             `bson:"updatedAt" json:"updatedAt"`
}

// Assigned reports whether userID is on the roster.
func (t *Task) Assigned(userID string) bool {
	for i := range t.Assignees {
		if t.Assignees[i].UserID == userID {
			return true
		}
	}
	return false
}

// Ledger returns the time tracking entry for userID, or nil.
func (t *Task) Ledger(userID string) *LedgerEntry {
	for i := range t.TimeTracking {
		if t.TimeTracking[i].UserID == userID {
			return &t.TimeTracking[i]
		}
	}
	return nil
}

// PrimaryAssignee returns the assignee tagged primary, falling back to
// the first roster entry.
func (t *Task) PrimaryAssignee() *Assignee {
	for i := range t.Assignees {
		if t.Assignees[i].Role == AssigneeRolePrimary {
			return &t.Assignees[i]
		}
	}
	if len(t.Assignees) > 0 {
		return &t.Assignees[0]
	}
	return nil
}
