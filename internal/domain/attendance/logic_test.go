package attendance

import (
	"testing"
	"time"
)

func TestWorkingDays(t *testing.T) {
	// Monday 2026-03-02 through Sunday 2026-03-08: five weekdays.
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)
	if days := WorkingDays(start, end); days != 5 {
		t.Fatalf("expected 5 working days, got %d", days)
	}

	if days := WorkingDays(start, start); days != 1 {
		t.Fatalf("expected 1 working day for a single Monday, got %d", days)
	}

	saturday := time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)
	if days := WorkingDays(saturday, saturday); days != 0 {
		t.Fatalf("expected 0 working days for a Saturday, got %d", days)
	}

	if days := WorkingDays(end, start); days != 0 {
		t.Fatalf("expected 0 for inverted range, got %d", days)
	}
}

func TestIsLate(t *testing.T) {
	rules := Rules{WorkdayStart: "09:00", WorkdayEnd: "17:00", GraceMinutes: 15}

	onTime := time.Date(2026, 3, 2, 9, 10, 0, 0, time.UTC)
	if rules.IsLate(onTime) {
		t.Fatal("arrival within grace should not be late")
	}

	boundary := time.Date(2026, 3, 2, 9, 15, 0, 0, time.UTC)
	if rules.IsLate(boundary) {
		t.Fatal("arrival exactly at the grace boundary should not be late")
	}

	late := time.Date(2026, 3, 2, 9, 16, 0, 0, time.UTC)
	if !rules.IsLate(late) {
		t.Fatal("arrival past grace should be late")
	}
}

func TestIsEarlyDeparture(t *testing.T) {
	rules := DefaultRules()

	early := time.Date(2026, 3, 2, 16, 59, 0, 0, time.UTC)
	if !rules.IsEarlyDeparture(early) {
		t.Fatal("leaving before workday end should count as early")
	}

	onTime := time.Date(2026, 3, 2, 17, 0, 0, 0, time.UTC)
	if rules.IsEarlyDeparture(onTime) {
		t.Fatal("leaving at workday end should not count as early")
	}
}

func TestSummarizeWindow(t *testing.T) {
	rules := DefaultRules()
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC)

	lateIn := time.Date(2026, 3, 2, 9, 45, 0, 0, time.UTC)
	normalIn := time.Date(2026, 3, 3, 8, 55, 0, 0, time.UTC)
	earlyOut := time.Date(2026, 3, 3, 15, 30, 0, 0, time.UTC)

	records := []*Record{
		{EmployeeID: "emp-1", Date: "2026-03-02", CheckIn: &lateIn},
		{EmployeeID: "emp-1", Date: "2026-03-03", CheckIn: &normalIn, CheckOut: &earlyOut},
		{EmployeeID: "emp-1", Date: "2026-03-04"},
		nil,
	}

	stats := SummarizeWindow(records, rules, start, end)
	if stats.WorkingDays != 5 {
		t.Fatalf("expected 5 working days, got %d", stats.WorkingDays)
	}
	if stats.DaysPresent != 2 {
		t.Fatalf("expected 2 days present, got %d", stats.DaysPresent)
	}
	if stats.LateArrivals != 1 {
		t.Fatalf("expected 1 late arrival, got %d", stats.LateArrivals)
	}
	if stats.EarlyDepartures != 1 {
		t.Fatalf("expected 1 early departure, got %d", stats.EarlyDepartures)
	}
}
