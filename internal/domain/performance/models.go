package performance

import "time"

// Performance is a materialized per-employee snapshot over a fixed
// window. Counters are set at calculation time (or patched later);
// OverallScore and Grade are derived and recomputed on every mutation.
type Performance struct {
	ID         string    `bson:"_id" json:"id"`
	EmployeeID string    `bson:"employeeId" json:"employeeId"`
	Period     string    `bson:"period" json:"period"`
	StartDate  time.Time `bson:"startDate" json:"startDate"`
	EndDate    time.Time `bson:"endDate" json:"endDate"`

	TasksCompleted            int     `bson:"tasksCompleted" json:"tasksCompleted"`
	TasksAssigned             int     `bson:"tasksAssigned" json:"tasksAssigned"`
	TasksOverdue              int     `bson:"tasksOverdue" json:"tasksOverdue"`
	AverageTaskCompletionTime float64 `bson:"averageTaskCompletionTime" json:"averageTaskCompletionTime"`

	AttendanceDays   int `bson:"attendanceDays" json:"attendanceDays"`
	TotalWorkingDays int `bson:"totalWorkingDays" json:"totalWorkingDays"`
	LateArrivals     int `bson:"lateArrivals" json:"lateArrivals"`
	EarlyDepartures  int `bson:"earlyDepartures" json:"earlyDepartures"`

	SalesCalls       int     `bson:"salesCalls" json:"salesCalls"`
	SalesConversions int     `bson:"salesConversions" json:"salesConversions"`
	RevenueGenerated float64 `bson:"revenueGenerated" json:"revenueGenerated"`
	DealsClosed      int     `bson:"dealsClosed" json:"dealsClosed"`

	OverallScore float64 `bson:"overallScore" json:"overallScore"`
	Grade        string  `bson:"grade" json:"grade"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
