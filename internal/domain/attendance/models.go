package attendance

import "time"

const (
	StatusPresent = "present"
	StatusLate    = "late"
	StatusAbsent  = "absent"

	DateLayout = "2006-01-02"
)

type Record struct {
	ID         string     `bson:"_id" json:"id"`
	EmployeeID string     `bson:"employeeId" json:"employeeId"`
	Date       string     `bson:"date" json:"date"`
	CheckIn    *time.Time `bson:"checkIn,omitempty" json:"checkIn,omitempty"`
	CheckOut   *time.Time `bson:"checkOut,omitempty" json:"checkOut,omitempty"`
	Status     string     `bson:"status" json:"status"`
	CreatedAt  time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// Stats is the per-window attendance summary consumed by performance
// snapshots.
type Stats struct {
	DaysPresent     int `json:"daysPresent"`
	WorkingDays     int `json:"workingDays"`
	LateArrivals    int `json:"lateArrivals"`
	EarlyDepartures int `json:"earlyDepartures"`
}
