package performance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/apardew63/crm-server/internal/domain/attendance"
	"github.com/apardew63/crm-server/internal/domain/notifications"
	"github.com/apardew63/crm-server/internal/domain/sales"
	"github.com/apardew63/crm-server/internal/domain/tasks"
)

type TaskSource interface {
	FindByAssignee(ctx context.Context, userID string, start, end time.Time) ([]*tasks.Task, error)
	FindCreatedBetween(ctx context.Context, start, end time.Time, statuses []string) ([]*tasks.Task, error)
}

type AttendanceSource interface {
	WindowStats(ctx context.Context, employeeID string, start, end time.Time) (attendance.Stats, error)
}

type SalesSource interface {
	WindowTotals(ctx context.Context, employeeID string, start, end time.Time) (sales.Totals, error)
}

type Notifier interface {
	Create(ctx context.Context, userID, ntype, title, body string) error
}

type Service struct {
	store      StoreAPI
	taskSource TaskSource
	attendance AttendanceSource
	sales      SalesSource
	notify     Notifier
}

func NewService(store StoreAPI, taskSource TaskSource, attendanceSource AttendanceSource, salesSource SalesSource, notify Notifier) *Service {
	return &Service{
		store:      store,
		taskSource: taskSource,
		attendance: attendanceSource,
		sales:      salesSource,
		notify:     notify,
	}
}

// CreateSnapshot materializes a performance record for the employee
// over the window, aggregating tasks, attendance, and sales. The
// window is immutable once created; only one record may exist per
// employee+period+window.
func (s *Service) CreateSnapshot(ctx context.Context, employeeID, period string, start, end time.Time) (*Performance, error) {
	if employeeID == "" {
		return nil, fmt.Errorf("%w: employee id required", ErrValidation)
	}
	if !ValidPeriod(period) {
		return nil, fmt.Errorf("%w: unknown period %q", ErrValidation, period)
	}
	if start.IsZero() || end.IsZero() || end.Before(start) {
		return nil, fmt.Errorf("%w: start date must be on or before end date", ErrValidation)
	}

	if existing, err := s.store.Find(ctx, employeeID, period, start, end); err == nil && existing != nil {
		return nil, ErrDuplicateSnapshot
	}

	record := &Performance{
		ID:         uuid.NewString(),
		EmployeeID: employeeID,
		Period:     period,
		StartDate:  start,
		EndDate:    end,
	}

	windowTasks, err := s.taskSource.FindByAssignee(ctx, employeeID, start, end)
	if err != nil {
		return nil, err
	}
	fillTaskCounters(record, windowTasks)

	stats, err := s.attendance.WindowStats(ctx, employeeID, start, end)
	if err != nil {
		return nil, err
	}
	record.AttendanceDays = stats.DaysPresent
	record.TotalWorkingDays = stats.WorkingDays
	record.LateArrivals = stats.LateArrivals
	record.EarlyDepartures = stats.EarlyDepartures

	totals, err := s.sales.WindowTotals(ctx, employeeID, start, end)
	if err != nil {
		return nil, err
	}
	record.SalesCalls = totals.Calls
	record.SalesConversions = totals.Conversions
	record.RevenueGenerated = totals.Revenue
	record.DealsClosed = totals.DealsClosed

	Recalculate(record)
	if err := s.store.Insert(ctx, record); err != nil {
		return nil, err
	}

	if s.notify != nil {
		title := "Performance recorded"
		body := fmt.Sprintf("Your %s performance was recorded: %s (%.2f)", period, record.Grade, record.OverallScore)
		if err := s.notify.Create(ctx, employeeID, notifications.TypePerformanceRecorded, title, body); err != nil {
			slog.Warn("performance notification failed", "err", err)
		}
	}
	return record, nil
}

func fillTaskCounters(record *Performance, windowTasks []*tasks.Task) {
	var completionHoursSum float64
	for _, task := range windowTasks {
		if task == nil {
			continue
		}
		record.TasksAssigned++
		switch task.Status {
		case tasks.StatusCompleted:
			record.TasksCompleted++
			if task.CompletedDate != nil {
				completionHoursSum += task.CompletedDate.Sub(task.CreatedAt).Hours()
			}
		case tasks.StatusOverdue:
			record.TasksOverdue++
		}
	}
	if record.TasksCompleted > 0 {
		record.AverageTaskCompletionTime = round2(completionHoursSum / float64(record.TasksCompleted))
	}
}

func (s *Service) Get(ctx context.Context, id string) (*Performance, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) ListByEmployee(ctx context.Context, employeeID string, limit, offset int) ([]*Performance, error) {
	return s.store.ListByEmployee(ctx, employeeID, limit, offset)
}

// CounterPatch carries optional counter overrides. Window and identity
// fields cannot be patched.
type CounterPatch struct {
	TasksCompleted            *int
	TasksAssigned             *int
	TasksOverdue              *int
	AverageTaskCompletionTime *float64
	AttendanceDays            *int
	TotalWorkingDays          *int
	LateArrivals              *int
	EarlyDepartures           *int
	SalesCalls                *int
	SalesConversions          *int
	RevenueGenerated          *float64
	DealsClosed               *int
}

// UpdateCounters applies a patch and synchronously recomputes the
// derived score and grade before persisting.
func (s *Service) UpdateCounters(ctx context.Context, id string, patch CounterPatch) (*Performance, error) {
	record, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	apply := func(target *int, value *int, field string) error {
		if value == nil {
			return nil
		}
		if *value < 0 {
			return fmt.Errorf("%w: %s must not be negative", ErrValidation, field)
		}
		*target = *value
		return nil
	}
	applyFloat := func(target *float64, value *float64, field string) error {
		if value == nil {
			return nil
		}
		if *value < 0 {
			return fmt.Errorf("%w: %s must not be negative", ErrValidation, field)
		}
		*target = *value
		return nil
	}

	steps := []error{
		apply(&record.TasksCompleted, patch.TasksCompleted, "tasksCompleted"),
		apply(&record.TasksAssigned, patch.TasksAssigned, "tasksAssigned"),
		apply(&record.TasksOverdue, patch.TasksOverdue, "tasksOverdue"),
		applyFloat(&record.AverageTaskCompletionTime, patch.AverageTaskCompletionTime, "averageTaskCompletionTime"),
		apply(&record.AttendanceDays, patch.AttendanceDays, "attendanceDays"),
		apply(&record.TotalWorkingDays, patch.TotalWorkingDays, "totalWorkingDays"),
		apply(&record.LateArrivals, patch.LateArrivals, "lateArrivals"),
		apply(&record.EarlyDepartures, patch.EarlyDepartures, "earlyDepartures"),
		apply(&record.SalesCalls, patch.SalesCalls, "salesCalls"),
		apply(&record.SalesConversions, patch.SalesConversions, "salesConversions"),
		applyFloat(&record.RevenueGenerated, patch.RevenueGenerated, "revenueGenerated"),
		apply(&record.DealsClosed, patch.DealsClosed, "dealsClosed"),
	}
	for _, stepErr := range steps {
		if stepErr != nil {
			return nil, stepErr
		}
	}

	Recalculate(record)
	if err := s.store.Replace(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// EmployeeOfTheMonth runs the ranking engine over tasks created in the
// window.
func (s *Service) EmployeeOfTheMonth(ctx context.Context, start, end time.Time) (MonthResult, error) {
	if start.IsZero() || end.IsZero() || end.Before(start) {
		return MonthResult{}, fmt.Errorf("%w: start date must be on or before end date", ErrValidation)
	}
	windowTasks, err := s.taskSource.FindCreatedBetween(ctx, start, end, []string{tasks.StatusCompleted, tasks.StatusInProgress})
	if err != nil {
		return MonthResult{}, err
	}
	return CalculateEmployeeOfTheMonth(windowTasks, start, end), nil
}
