package attendance

import "time"

// Rules holds the workday boundaries used to classify arrivals and
// departures. Times are wall-clock "HH:MM" strings.
type Rules struct {
	WorkdayStart string
	WorkdayEnd   string
	GraceMinutes int
}

func DefaultRules() Rules {
	return Rules{WorkdayStart: "09:00", WorkdayEnd: "17:00", GraceMinutes: 15}
}

// WorkingDays returns the number of weekdays in [start, end] inclusive.
func WorkingDays(start, end time.Time) int {
	if end.Before(start) {
		return 0
	}
	days := 0
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		switch day.Weekday() {
		case time.Saturday, time.Sunday:
		default:
			days++
		}
	}
	return days
}

// IsLate reports whether checkIn falls after workday start plus grace.
func (r Rules) IsLate(checkIn time.Time) bool {
	boundary, err := time.Parse("15:04", r.WorkdayStart)
	if err != nil {
		return false
	}
	limit := boundary.Add(time.Duration(r.GraceMinutes) * time.Minute)
	arrived := checkIn.Hour()*60 + checkIn.Minute()
	return arrived > limit.Hour()*60+limit.Minute()
}

// IsEarlyDeparture reports whether checkOut falls before workday end.
func (r Rules) IsEarlyDeparture(checkOut time.Time) bool {
	boundary, err := time.Parse("15:04", r.WorkdayEnd)
	if err != nil {
		return false
	}
	left := checkOut.Hour()*60 + checkOut.Minute()
	return left < boundary.Hour()*60+boundary.Minute()
}

// SummarizeWindow folds attendance records into window stats.
func SummarizeWindow(records []*Record, rules Rules, start, end time.Time) Stats {
	stats := Stats{WorkingDays: WorkingDays(start, end)}
	for _, record := range records {
		if record == nil || record.CheckIn == nil {
			continue
		}
		stats.DaysPresent++
		if rules.IsLate(*record.CheckIn) {
			stats.LateArrivals++
		}
		if record.CheckOut != nil && rules.IsEarlyDeparture(*record.CheckOut) {
			stats.EarlyDepartures++
		}
	}
	return stats
}
