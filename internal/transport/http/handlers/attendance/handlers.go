package attendancehandler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/apardew63/crm-server/internal/domain/attendance"
	"github.com/apardew63/crm-server/internal/transport/http/api"
	"github.com/apardew63/crm-server/internal/transport/http/middleware"
	"github.com/apardew63/crm-server/internal/transport/http/shared"
)

type Handler struct {
	Service *attendance.Service
}

func NewHandler(service *attendance.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/attendance", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/check-in", h.handleCheckIn)
		r.Post("/check-out", h.handleCheckOut)
		r.Get("/", h.handleList)
	})
}

func (h *Handler) handleCheckIn(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetUser(r.Context())
	record, err := h.Service.CheckIn(r.Context(), actor.UserID)
	if err != nil {
		writeAttendanceError(w, r, err)
		return
	}
	api.Created(w, record, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCheckOut(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetUser(r.Context())
	record, err := h.Service.CheckOut(r.Context(), actor.UserID)
	if err != nil {
		writeAttendanceError(w, r, err)
		return
	}
	api.Success(w, record, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetUser(r.Context())

	employeeID := r.URL.Query().Get("employee")
	if employeeID == "" {
		employeeID = actor.UserID
	}

	validator := shared.NewValidator()
	start, okStart := validator.Date("start", r.URL.Query().Get("start"))
	end, okEnd := validator.Date("end", r.URL.Query().Get("end"))
	if okStart && okEnd {
		validator.DateOrder("start", start, "end", end)
	}
	if validator.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	records, err := h.Service.ListRange(r.Context(), employeeID, start, end)
	if err != nil {
		writeAttendanceError(w, r, err)
		return
	}
	api.Success(w, records, middleware.GetRequestID(r.Context()))
}

func writeAttendanceError(w http.ResponseWriter, r *http.Request, err error) {
	reqID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		api.Fail(w, http.StatusConflict, "already_checked_in", err.Error(), reqID)
	case errors.Is(err, attendance.ErrNotCheckedIn):
		api.Fail(w, http.StatusBadRequest, "not_checked_in", err.Error(), reqID)
	case errors.Is(err, attendance.ErrRecordNotFound):
		api.Fail(w, http.StatusNotFound, "attendance_not_found", err.Error(), reqID)
	default:
		slog.Warn("attendance operation failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "attendance_operation_failed", "attendance operation failed", reqID)
	}
}
