package reportshandler

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jung-kurt/gofpdf"

	"github.com/apardew63/crm-server/internal/domain/auth"
	"github.com/apardew63/crm-server/internal/domain/performance"
	"github.com/apardew63/crm-server/internal/transport/http/api"
	"github.com/apardew63/crm-server/internal/transport/http/middleware"
	"github.com/apardew63/crm-server/internal/transport/http/shared"
)

// Directory resolves employee ids to emails for display on reports.
type Directory interface {
	UserEmail(ctx context.Context, userID string) (string, error)
}

type Handler struct {
	Performance *performance.Service
	Directory   Directory
}

func NewHandler(performanceService *performance.Service, directory Directory) *Handler {
	return &Handler{Performance: performanceService, Directory: directory}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.Use(middleware.RequireRole(auth.RoleAdmin, auth.RoleProjectManager))
		r.Get("/employee-of-the-month.pdf", h.handleMonthReport)
	})
}

func (h *Handler) handleMonthReport(w http.ResponseWriter, r *http.Request) {
	validator := shared.NewValidator()
	start, okStart := validator.Date("start", r.URL.Query().Get("start"))
	end, okEnd := validator.Date("end", r.URL.Query().Get("end"))
	if okStart && okEnd {
		validator.DateOrder("start", start, "end", end)
	}
	if validator.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	result, err := h.Performance.EmployeeOfTheMonth(r.Context(), start, end)
	if err != nil {
		slog.Warn("month report failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to build report", middleware.GetRequestID(r.Context()))
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Employee of the Month")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s to %s",
		result.PeriodStart.Format("2006-01-02"), result.PeriodEnd.Format("2006-01-02")))
	pdf.Ln(10)

	if result.EmployeeOfTheMonth == nil {
		pdf.Cell(0, 8, "No completed tasks in this period.")
	} else {
		winner := result.EmployeeOfTheMonth
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, fmt.Sprintf("Winner: %s", h.displayName(r.Context(), winner.EmployeeID)))
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 12)
		pdf.Cell(0, 8, fmt.Sprintf("Score: %d", winner.TotalScore))
		pdf.Ln(7)
		pdf.Cell(0, 8, fmt.Sprintf("Tasks completed: %d (%d on time)", winner.TasksCompleted, winner.OnTimeCompletions))
		pdf.Ln(7)
		pdf.Cell(0, 8, fmt.Sprintf("Hours worked: %.1f", winner.TotalHoursWorked))
		pdf.Ln(12)

		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, "Top performers")
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 11)
		for i, score := range result.TopPerformers {
			pdf.Cell(0, 7, fmt.Sprintf("%d. %s - %d points, %d tasks, %.1f hours",
				i+1, h.displayName(r.Context(), score.EmployeeID), score.TotalScore,
				score.TasksCompleted, score.TotalHoursWorked))
			pdf.Ln(6)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		slog.Warn("month report render failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to render report", middleware.GetRequestID(r.Context()))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="employee-of-the-month.pdf"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (h *Handler) displayName(ctx context.Context, employeeID string) string {
	if h.Directory == nil {
		return employeeID
	}
	email, err := h.Directory.UserEmail(ctx, employeeID)
	if err != nil || email == "" {
		return employeeID
	}
	return email
}
