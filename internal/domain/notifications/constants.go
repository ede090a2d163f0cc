package notifications

const (
	TypeTaskAssigned        = "task_assigned"
	TypeTaskStarted         = "task_started"
	TypeTaskCompleted       = "task_completed"
	TypeTaskStatusChanged   = "task_status_changed"
	TypePerformanceRecorded = "performance_recorded"
)
