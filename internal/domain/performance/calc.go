package performance

import "math"

// Component weights of the overall score. When an employee has no sales
// calls the sales term and its weight simply drop out; the remaining
// terms are NOT renormalized, so the maximum attainable score is 75.
const (
	weightTaskCompletion = 0.30
	weightAttendance     = 0.25
	weightOnTime         = 0.20
	weightSales          = 0.25
)

func TaskCompletionRate(p *Performance) float64 {
	if p.TasksAssigned == 0 {
		return 0
	}
	return float64(p.TasksCompleted) / float64(p.TasksAssigned) * 100
}

func AttendanceRate(p *Performance) float64 {
	if p.TotalWorkingDays == 0 {
		return 0
	}
	return float64(p.AttendanceDays) / float64(p.TotalWorkingDays) * 100
}

// OnTimeRate defaults to 100 when nothing was assigned, unlike the
// other rates which default to 0.
func OnTimeRate(p *Performance) float64 {
	if p.TasksAssigned == 0 {
		return 100
	}
	return float64(p.TasksAssigned-p.TasksOverdue) / float64(p.TasksAssigned) * 100
}

func SalesConversionRate(p *Performance) float64 {
	if p.SalesCalls == 0 {
		return 0
	}
	return float64(p.SalesConversions) / float64(p.SalesCalls) * 100
}

func ComputeOverallScore(p *Performance) float64 {
	score := TaskCompletionRate(p)*weightTaskCompletion +
		AttendanceRate(p)*weightAttendance +
		OnTimeRate(p)*weightOnTime
	if p.SalesCalls > 0 {
		score += SalesConversionRate(p) * weightSales
	}
	return round2(score)
}

// GradeFor maps an overall score to a letter grade. The score is
// rounded before the threshold comparison.
func GradeFor(score float64) string {
	rounded := math.Round(score)
	switch {
	case rounded >= 95:
		return "A+"
	case rounded >= 90:
		return "A"
	case rounded >= 85:
		return "B+"
	case rounded >= 80:
		return "B"
	case rounded >= 75:
		return "C+"
	case rounded >= 70:
		return "C"
	case rounded >= 60:
		return "D"
	default:
		return "F"
	}
}

// Recalculate refreshes the derived fields. Call it after any counter
// mutation and before persisting.
func Recalculate(p *Performance) {
	p.OverallScore = ComputeOverallScore(p)
	p.Grade = GradeFor(p.OverallScore)
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}

func round1(value float64) float64 {
	return math.Round(value*10) / 10
}
