package saleshandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/apardew63/crm-server/internal/domain/sales"
	"github.com/apardew63/crm-server/internal/transport/http/api"
	"github.com/apardew63/crm-server/internal/transport/http/middleware"
	"github.com/apardew63/crm-server/internal/transport/http/shared"
)

type Handler struct {
	Service *sales.Service
}

func NewHandler(service *sales.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/sales", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/calls", h.handleLogCall)
		r.Get("/calls", h.handleList)
	})
}

func (h *Handler) handleLogCall(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetUser(r.Context())

	var payload struct {
		ClientName string  `json:"clientName"`
		Outcome    string  `json:"outcome"`
		DealValue  float64 `json:"dealValue"`
		Notes      string  `json:"notes"`
		CallTime   string  `json:"callTime"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	var callTime time.Time
	if payload.CallTime != "" {
		parsed, err := shared.ParseDate(payload.CallTime)
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_payload", "callTime must be a valid date", middleware.GetRequestID(r.Context()))
			return
		}
		callTime = parsed
	}

	call, err := h.Service.LogCall(r.Context(), actor.UserID, payload.ClientName, payload.Outcome, payload.Notes, payload.DealValue, callTime)
	if err != nil {
		writeSalesError(w, r, err)
		return
	}
	api.Created(w, call, middleware.GetRequestID(r.Context()))
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

	calls, err := h.Service.ListRange(r.Context(), employeeID, start, end)
	if err != nil {
		writeSalesError(w, r, err)
		return
	}
	api.Success(w, calls, middleware.GetRequestID(r.Context()))
}

func writeSalesError(w http.ResponseWriter, r *http.Request, err error) {
	reqID := middleware.GetRequestID(r.Context())
	if errors.Is(err, sales.ErrValidation) {
		api.Fail(w, http.StatusBadRequest, "validation_error", err.Error(), reqID)
		return
	}
	slog.Warn("sales operation failed", "err", err)
	api.Fail(w, http.StatusInternalServerError, "sales_operation_failed", "sales operation failed", reqID)
}
