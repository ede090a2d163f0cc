package performance

import (
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/apardew63/crm-server/internal/domain/tasks"
)

// Per task-assignee scoring points.
const (
	pointsCompletion = 50
	pointsOnTime     = 30
	pointsLate       = 10
	pointsEfficiency = 20
	pointsActiveWork = 10
)

type EmployeeScore struct {
	EmployeeID         string  `json:"employeeId"`
	TotalScore         int     `json:"totalScore"`
	TasksCompleted     int     `json:"tasksCompleted"`
	TasksInProgress    int     `json:"tasksInProgress"`
	OnTimeCompletions  int     `json:"onTimeCompletions"`
	OverdueCompletions int     `json:"overdueCompletions"`
	TotalTimeSpent     int64   `json:"totalTimeSpent"`
	TotalHoursWorked   float64 `json:"totalHoursWorked"`
	AverageProgress    float64 `json:"averageProgress"`
	CompletionRate     float64 `json:"completionRate"`
	OnTimeRate         float64 `json:"onTimeRate"`

	progressSum   float64
	progressCount int
}

type MonthResult struct {
	EmployeeOfTheMonth *EmployeeScore  `json:"employeeOfTheMonth"`
	TopPerformers      []EmployeeScore `json:"topPerformers"`
	AllRankings        []EmployeeScore `json:"allRankings"`
	PeriodStart        time.Time       `json:"periodStart"`
	PeriodEnd          time.Time       `json:"periodEnd"`
}

// CalculateEmployeeOfTheMonth ranks every assignee of the window's
// completed and in-progress tasks by weighted score. It is a pure
// aggregation: re-running it over unchanged data yields an identical
// result. Malformed records are skipped per item rather than failing
// the whole window.
func CalculateEmployeeOfTheMonth(windowTasks []*tasks.Task, start, end time.Time) MonthResult {
	scores := make(map[string]*EmployeeScore)
	var order []string

	for _, task := range windowTasks {
		if task == nil {
			continue
		}
		if task.Status != tasks.StatusCompleted && task.Status != tasks.StatusInProgress {
			continue
		}
		for _, assignee := range task.Assignees {
			if assignee.UserID == "" {
				slog.Warn("scoring skipped assignee with empty user id", "task", task.ID)
				continue
			}

			record, ok := scores[assignee.UserID]
			if !ok {
				record = &EmployeeScore{EmployeeID: assignee.UserID}
				scores[assignee.UserID] = record
				order = append(order, assignee.UserID)
			}

			actualMs := int64(0)
			if entry := task.Ledger(assignee.UserID); entry != nil {
				if entry.TotalTimeSpent < 0 {
					slog.Warn("scoring skipped malformed ledger entry", "task", task.ID, "user", assignee.UserID)
					continue
				}
				actualMs = entry.TotalTimeSpent
			}
			record.TotalTimeSpent += actualMs

			switch task.Status {
			case tasks.StatusCompleted:
				record.TasksCompleted++
				record.TotalScore += pointsCompletion
				if task.CompletedDate != nil && !task.CompletedDate.After(task.DueDate) {
					record.OnTimeCompletions++
					record.TotalScore += pointsOnTime
				} else {
					record.OverdueCompletions++
					record.TotalScore += pointsLate
				}
				if task.EstimatedHours != nil {
					actualHours := float64(actualMs) / float64(time.Hour.Milliseconds())
					if actualHours < *task.EstimatedHours {
						record.TotalScore += pointsEfficiency
					}
				}
			case tasks.StatusInProgress:
				record.TasksInProgress++
				record.TotalScore += pointsActiveWork
			}

			if task.Progress.Percentage > 0 {
				record.TotalScore += int(math.Floor(task.Progress.Percentage / 10))
				record.progressSum += task.Progress.Percentage
				record.progressCount++
			}
		}
	}

	// Only employees with at least one completion are ranked, even
	// though in-progress work earned points.
	var rankings []EmployeeScore
	for _, employeeID := range order {
		record := scores[employeeID]
		finalize(record)
		if record.TasksCompleted > 0 {
			rankings = append(rankings, *record)
		}
	}
	sort.SliceStable(rankings, func(i, j int) bool {
		return rankings[i].TotalScore > rankings[j].TotalScore
	})

	result := MonthResult{
		AllRankings: rankings,
		PeriodStart: start,
		PeriodEnd:   end,
	}
	if len(rankings) > 0 {
		winner := rankings[0]
		result.EmployeeOfTheMonth = &winner
	}
	top := len(rankings)
	if top > 5 {
		top = 5
	}
	result.TopPerformers = append([]EmployeeScore(nil), rankings[:top]...)
	return result
}

func finalize(record *EmployeeScore) {
	if record.progressCount > 0 {
		record.AverageProgress = round2(record.progressSum / float64(record.progressCount))
	}
	if total := record.TasksCompleted + record.TasksInProgress; total > 0 {
		record.CompletionRate = round2(float64(record.TasksCompleted) / float64(total) * 100)
	}
	if record.TasksCompleted > 0 {
		record.OnTimeRate = round2(float64(record.OnTimeCompletions) / float64(record.TasksCompleted) * 100)
	}
	record.TotalHoursWorked = round1(float64(record.TotalTimeSpent) / float64(time.Hour.Milliseconds()))
}
