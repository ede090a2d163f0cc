package performancehandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/apardew63/crm-server/internal/domain/auth"
	"github.com/apardew63/crm-server/internal/domain/performance"
	"github.com/apardew63/crm-server/internal/transport/http/api"
	"github.com/apardew63/crm-server/internal/transport/http/middleware"
	"github.com/apardew63/crm-server/internal/transport/http/shared"
)

type Handler struct {
	Service *performance.Service
}

func NewHandler(service *performance.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/performance", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/employee-of-the-month", h.handleEmployeeOfTheMonth)
		r.Get("/{recordID}", h.handleGet)
		r.Get("/employees/{employeeID}", h.handleListByEmployee)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleProjectManager)).Post("/", h.handleCreateSnapshot)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleProjectManager)).Patch("/{recordID}", h.handleUpdateCounters)
	})
}

func (h *Handler) handleCreateSnapshot(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		EmployeeID string `json:"employeeId"`
		Period     string `json:"period"`
		StartDate  string `json:"startDate"`
		EndDate    string `json:"endDate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	validator := shared.NewValidator()
	validator.Required("employeeId", payload.EmployeeID, "employee id is required")
	start, okStart := validator.Date("startDate", payload.StartDate)
	end, okEnd := validator.Date("endDate", payload.EndDate)
	if okStart && okEnd {
		validator.DateOrder("startDate", start, "endDate", end)
	}
	if validator.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	record, err := h.Service.CreateSnapshot(r.Context(), payload.EmployeeID, payload.Period, start, end)
	if err != nil {
		writePerformanceError(w, r, err)
		return
	}
	api.Created(w, record, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	record, err := h.Service.Get(r.Context(), chi.URLParam(r, "recordID"))
	if err != nil {
		writePerformanceError(w, r, err)
		return
	}
	api.Success(w, record, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListByEmployee(w http.ResponseWriter, r *http.Request) {
	pagination := shared.ParsePagination(r, 20, 100)
	records, err := h.Service.ListByEmployee(r.Context(), chi.URLParam(r, "employeeID"), pagination.Limit, pagination.Offset)
	if err != nil {
		writePerformanceError(w, r, err)
		return
	}
	api.Success(w, records, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateCounters(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		TasksCompleted            *int     `json:"tasksCompleted"`
		TasksAssigned             *int     `json:"tasksAssigned"`
		TasksOverdue              *int     `json:"tasksOverdue"`
		AverageTaskCompletionTime *float64 `json:"averageTaskCompletionTime"`
		AttendanceDays            *int     `json:"attendanceDays"`
		TotalWorkingDays          *int     `json:"totalWorkingDays"`
		LateArrivals              *int     `json:"lateArrivals"`
		EarlyDepartures           *int     `json:"earlyDepartures"`
		SalesCalls                *int     `json:"salesCalls"`
		SalesConversions          *int     `json:"salesConversions"`
		RevenueGenerated          *float64 `json:"revenueGenerated"`
		DealsClosed               *int     `json:"dealsClosed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	record, err := h.Service.UpdateCounters(r.Context(), chi.URLParam(r, "recordID"), performance.CounterPatch{
		TasksCompleted:            payload.TasksCompleted,
		TasksAssigned:             payload.TasksAssigned,
		TasksOverdue:              payload.TasksOverdue,
		AverageTaskCompletionTime: payload.AverageTaskCompletionTime,
		AttendanceDays:            payload.AttendanceDays,
		TotalWorkingDays:          payload.TotalWorkingDays,
		LateArrivals:              payload.LateArrivals,
		EarlyDepartures:           payload.EarlyDepartures,
		SalesCalls:                payload.SalesCalls,
		SalesConversions:          payload.SalesConversions,
		RevenueGenerated:          payload.RevenueGenerated,
		DealsClosed:               payload.DealsClosed,
	})
	if err != nil {
		writePerformanceError(w, r, err)
		return
	}
	api.Success(w, record, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleEmployeeOfTheMonth(w http.ResponseWriter, r *http.Request) {
	validator := shared.NewValidator()
	start, okStart := validator.Date("start", r.URL.Query().Get("start"))
	end, okEnd := validator.Date("end", r.URL.Query().Get("end"))
	if okStart && okEnd {
		validator.DateOrder("start", start, "end", end)
	}
	if validator.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	result, err := h.Service.EmployeeOfTheMonth(r.Context(), start, end)
	if err != nil {
		writePerformanceError(w, r, err)
		return
	}
	api.Success(w, result, middleware.GetRequestID(r.Context()))
}

func writePerformanceError(w http.ResponseWriter, r *http.Request, err error) {
	reqID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, performance.ErrSnapshotNotFound):
		api.Fail(w, http.StatusNotFound, "performance_not_found", err.Error(), reqID)
	case errors.Is(err, performance.ErrDuplicateSnapshot):
		api.Fail(w, http.StatusConflict, "performance_exists", err.Error(), reqID)
	case errors.Is(err, performance.ErrValidation):
		api.Fail(w, http.StatusBadRequest, "validation_error", err.Error(), reqID)
	default:
		slog.Warn("performance operation failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "performance_operation_failed", "performance operation failed", reqID)
	}
}
