package performance

import "testing"

func TestComputeOverallScorePerfectWithSales(t *testing.T) {
	p := &Performance{
		TasksAssigned:    10,
		TasksCompleted:   10,
		TasksOverdue:     0,
		AttendanceDays:   20,
		TotalWorkingDays: 20,
		SalesCalls:       8,
		SalesConversions: 8,
	}
	Recalculate(p)

	if p.OverallScore != 100 {
		t.Fatalf("expected 100, got %v", p.OverallScore)
	}
	if p.Grade != "A+" {
		t.Fatalf("expected A+, got %q", p.Grade)
	}
}

func TestComputeOverallScoreWithoutSalesCapsAt75(t *testing.T) {
	p := &Performance{
		TasksAssigned:    10,
		TasksCompleted:   10,
		AttendanceDays:   20,
		TotalWorkingDays: 20,
	}
	Recalculate(p)

	if p.OverallScore != 75 {
		t.Fatalf("expected 75 without sales weight, got %v", p.OverallScore)
	}
	if p.Grade != "C+" {
		t.Fatalf("expected C+, got %q", p.Grade)
	}
}

func TestOnTimeRateDefaultsTo100WithNoAssignments(t *testing.T) {
	p := &Performance{}
	if rate := OnTimeRate(p); rate != 100 {
		t.Fatalf("expected 100, got %v", rate)
	}
	if rate := TaskCompletionRate(p); rate != 0 {
		t.Fatalf("expected 0 completion rate, got %v", rate)
	}
	if rate := AttendanceRate(p); rate != 0 {
		t.Fatalf("expected 0 attendance rate, got %v", rate)
	}

	Recalculate(p)
	if p.OverallScore != 20 {
		t.Fatalf("expected 20 from the on-time term alone, got %v", p.OverallScore)
	}
}

func TestGradeThresholdsRoundBeforeComparing(t *testing.T) {
	if grade := GradeFor(94.999); grade != "A+" {
		t.Fatalf("94.999 should round to 95 and grade A+, got %q", grade)
	}
	if grade := GradeFor(94.4); grade != "A" {
		t.Fatalf("94.4 should round to 94 and grade A, got %q", grade)
	}
	if grade := GradeFor(59.4); grade != "F" {
		t.Fatalf("59.4 should grade F, got %q", grade)
	}
	if grade := GradeFor(59.5); grade != "D" {
		t.Fatalf("59.5 should round to 60 and grade D, got %q", grade)
	}
}

func TestRecalculateRefreshesDerivedFields(t *testing.T) {
	p := &Performance{
		TasksAssigned:    4,
		TasksCompleted:   2,
		TasksOverdue:     1,
		AttendanceDays:   18,
		TotalWorkingDays: 20,
		SalesCalls:       10,
		SalesConversions: 4,
	}
	Recalculate(p)

	// 50*0.30 + 90*0.25 + 75*0.20 + 40*0.25 = 62.50
	if p.OverallScore != 62.5 {
		t.Fatalf("expected 62.5, got %v", p.OverallScore)
	}
	if p.Grade != "D" {
		t.Fatalf("expected D, got %q", p.Grade)
	}

	p.TasksCompleted = 4
	p.TasksOverdue = 0
	Recalculate(p)
	if p.OverallScore <= 62.5 {
		t.Fatalf("expected score to rise after counter patch, got %v", p.OverallScore)
	}
}
