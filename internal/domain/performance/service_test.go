package performance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/apardew63/crm-server/internal/domain/attendance"
	"github.com/apardew63/crm-server/internal/domain/sales"
	"github.com/apardew63/crm-server/internal/domain/tasks"
)

type fakeStore struct {
	records map[string]*Performance
}

func newFakeStore() *fakeStore {
	return &fakeStore{records: map[string]*Performance{}}
}

func (f *fakeStore) Get(ctx context.Context, id string) (*Performance, error) {
	record, ok := f.records[id]
	if !ok {
		return nil, ErrSnapshotNotFound
	}
	copied := *record
	return &copied, nil
}

func (f *fakeStore) Find(ctx context.Context, employeeID, period string, start, end time.Time) (*Performance, error) {
	for _, record := range f.records {
		if record.EmployeeID == employeeID && record.Period == period &&
			record.StartDate.Equal(start) && record.EndDate.Equal(end) {
			copied := *record
			return &copied, nil
		}
	}
	return nil, ErrSnapshotNotFound
}

func (f *fakeStore) Insert(ctx context.Context, record *Performance) error {
	copied := *record
	f.records[record.ID] = &copied
	return nil
}

func (f *fakeStore) Replace(ctx context.Context, record *Performance) error {
	if _, ok := f.records[record.ID]; !ok {
		return ErrSnapshotNotFound
	}
	copied := *record
	f.records[record.ID] = &copied
	return nil
}

func (f *fakeStore) ListByEmployee(ctx context.Context, employeeID string, limit, offset int) ([]*Performance, error) {
	var out []*Performance
	for _, record := range f.records {
		if record.EmployeeID == employeeID {
			copied := *record
			out = append(out, &copied)
		}
	}
	return out, nil
}

type fakeTaskSource struct {
	assigned []*tasks.Task
	window   []*tasks.Task
}

func (f *fakeTaskSource) FindByAssignee(ctx context.Context, userID string, start, end time.Time) ([]*tasks.Task, error) {
	return f.assigned, nil
}

func (f *fakeTaskSource) FindCreatedBetween(ctx context.Context, start, end time.Time, statuses []string) ([]*tasks.Task, error) {
	return f.window, nil
}

type fakeAttendanceSource struct {
	stats attendance.Stats
}

func (f *fakeAttendanceSource) WindowStats(ctx context.Context, employeeID string, start, end time.Time) (attendance.Stats, error) {
	return f.stats, nil
}

type fakeSalesSource struct {
	totals sales.Totals
}

func (f *fakeSalesSource) WindowTotals(ctx context.Context, employeeID string, start, end time.Time) (sales.Totals, error) {
	return f.totals, nil
}

type fakeNotifier struct {
	sent []string
}

func (f *fakeNotifier) Create(ctx context.Context, userID, ntype, title, body string) error {
	f.sent = append(f.sent, ntype+":"+userID)
	return nil
}

func snapshotWindow() (time.Time, time.Time) {
	return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
}

func TestCreateSnapshotAggregatesSources(t *testing.T) {
	start, end := snapshotWindow()
	created := start.Add(24 * time.Hour)
	completed := created.Add(48 * time.Hour)

	source := &fakeTaskSource{assigned: []*tasks.Task{
		{ID: "t1", Status: tasks.StatusCompleted, CreatedAt: created, CompletedDate: &completed},
		{ID: "t2", Status: tasks.StatusOverdue, CreatedAt: created},
		{ID: "t3", Status: tasks.StatusInProgress, CreatedAt: created},
		nil,
	}}
	attendanceSource := &fakeAttendanceSource{stats: attendance.Stats{
		DaysPresent: 18, WorkingDays: 22, LateArrivals: 2, EarlyDepartures: 1,
	}}
	salesSource := &fakeSalesSource{totals: sales.Totals{
		Calls: 10, Conversions: 4, Revenue: 5200, DealsClosed: 3,
	}}
	notifier := &fakeNotifier{}
	service := NewService(newFakeStore(), source, attendanceSource, salesSource, notifier)

	record, err := service.CreateSnapshot(context.Background(), "emp-1", PeriodMonthly, start, end)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if record.TasksAssigned != 3 || record.TasksCompleted != 1 || record.TasksOverdue != 1 {
		t.Fatalf("unexpected task counters: %+v", record)
	}
	if record.AverageTaskCompletionTime != 48 {
		t.Fatalf("expected 48h average completion, got %v", record.AverageTaskCompletionTime)
	}
	if record.AttendanceDays != 18 || record.TotalWorkingDays != 22 {
		t.Fatalf("unexpected attendance counters: %+v", record)
	}
	if record.SalesCalls != 10 || record.RevenueGenerated != 5200 {
		t.Fatalf("unexpected sales counters: %+v", record)
	}
	if record.OverallScore == 0 || record.Grade == "" {
		t.Fatalf("derived fields not computed: %+v", record)
	}
	if len(notifier.sent) != 1 || notifier.sent[0] != "performance_recorded:emp-1" {
		t.Fatalf("expected recording notification, got %v", notifier.sent)
	}
}

func TestCreateSnapshotRejectsDuplicateWindow(t *testing.T) {
	start, end := snapshotWindow()
	service := NewService(newFakeStore(), &fakeTaskSource{}, &fakeAttendanceSource{}, &fakeSalesSource{}, nil)

	if _, err := service.CreateSnapshot(context.Background(), "emp-1", PeriodMonthly, start, end); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := service.CreateSnapshot(context.Background(), "emp-1", PeriodMonthly, start, end)
	if !errors.Is(err, ErrDuplicateSnapshot) {
		t.Fatalf("expected ErrDuplicateSnapshot, got %v", err)
	}
}

func TestCreateSnapshotValidatesInput(t *testing.T) {
	start, end := snapshotWindow()
	service := NewService(newFakeStore(), &fakeTaskSource{}, &fakeAttendanceSource{}, &fakeSalesSource{}, nil)

	if _, err := service.CreateSnapshot(context.Background(), "", PeriodMonthly, start, end); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for empty employee, got %v", err)
	}
	if _, err := service.CreateSnapshot(context.Background(), "emp-1", "fortnightly", start, end); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for unknown period, got %v", err)
	}
	if _, err := service.CreateSnapshot(context.Background(), "emp-1", PeriodMonthly, end, start); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for inverted window, got %v", err)
	}
}

func TestUpdateCountersRecomputesScore(t *testing.T) {
	start, end := snapshotWindow()
	store := newFakeStore()
	service := NewService(store, &fakeTaskSource{}, &fakeAttendanceSource{}, &fakeSalesSource{}, nil)

	record, err := service.CreateSnapshot(context.Background(), "emp-1", PeriodMonthly, start, end)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	assigned, completed := 10, 9
	patched, err := service.UpdateCounters(context.Background(), record.ID, CounterPatch{
		TasksAssigned:  &assigned,
		TasksCompleted: &completed,
	})
	if err != nil {
		t.Fatalf("patch: %v", err)
	}
	if patched.OverallScore <= record.OverallScore {
		t.Fatalf("expected score to rise, got %v -> %v", record.OverallScore, patched.OverallScore)
	}

	stored, err := store.Get(context.Background(), record.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.OverallScore != patched.OverallScore || stored.Grade != patched.Grade {
		t.Fatalf("persisted record stale: %+v vs %+v", stored, patched)
	}
}

func TestUpdateCountersRejectsNegativeValues(t *testing.T) {
	start, end := snapshotWindow()
	store := newFakeStore()
	service := NewService(store, &fakeTaskSource{}, &fakeAttendanceSource{}, &fakeSalesSource{}, nil)

	record, err := service.CreateSnapshot(context.Background(), "emp-1", PeriodMonthly, start, end)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	bad := -3
	if _, err := service.UpdateCounters(context.Background(), record.ID, CounterPatch{SalesCalls: &bad}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	stored, err := store.Get(context.Background(), record.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.SalesCalls != record.SalesCalls {
		t.Fatalf("counter changed despite rejection: %+v", stored)
	}
}

func TestEmployeeOfTheMonthServiceValidatesWindow(t *testing.T) {
	start, end := snapshotWindow()
	service := NewService(newFakeStore(), &fakeTaskSource{}, &fakeAttendanceSource{}, &fakeSalesSource{}, nil)

	if _, err := service.EmployeeOfTheMonth(context.Background(), end, start); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	result, err := service.EmployeeOfTheMonth(context.Background(), start, end)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.EmployeeOfTheMonth != nil {
		t.Fatalf("expected empty result, got %+v", result)
	}
}
