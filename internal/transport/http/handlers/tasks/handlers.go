package taskshandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/apardew63/crm-server/internal/domain/tasks"
	"github.com/apardew63/crm-server/internal/transport/http/api"
	"github.com/apardew63/crm-server/internal/transport/http/middleware"
	"github.com/apardew63/crm-server/internal/transport/http/shared"
)

type Handler struct {
	Service *tasks.Service
}

func NewHandler(service *tasks.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/tasks", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/{taskID}", h.handleGet)
		r.Put("/{taskID}", h.handleUpdate)
		r.Delete("/{taskID}", h.handleDelete)
		r.Post("/{taskID}/status", h.handleChangeStatus)
		r.Post("/{taskID}/complete", h.handleComplete)
		r.Post("/{taskID}/time/start", h.handleStartTracking)
		r.Post("/{taskID}/time/stop", h.handleStopTracking)
		r.Post("/{taskID}/assignees", h.handleAddAssignee)
		r.Delete("/{taskID}/assignees/{userID}", h.handleRemoveAssignee)
		r.Put("/{taskID}/progress", h.handleUpdateProgress)
		r.Post("/{taskID}/blockers", h.handleAddBlocker)
		r.Post("/{taskID}/blockers/{blockerID}/resolve", h.handleResolveBlocker)
		r.Post("/{taskID}/milestones", h.handleAddMilestone)
		r.Post("/{taskID}/milestones/{milestoneID}/complete", h.handleCompleteMilestone)
	})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetUser(r.Context())

	var payload struct {
		Title          string                      `json:"title"`
		Description    string                      `json:"description"`
		Assignees      []tasks.AssigneeInput       `json:"assignees"`
		DueDate        string                      `json:"dueDate"`
		EstimatedHours *float64                    `json:"estimatedHours"`
		CustomFields   map[string]tasks.FieldValue `json:"customFields"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	validator := shared.NewValidator()
	validator.Required("title", payload.Title, "title is required")
	dueDate, _ := validator.Date("dueDate", payload.DueDate)
	if validator.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	task, err := h.Service.Create(r.Context(), actor, tasks.CreateInput{
		Title:          payload.Title,
		Description:    payload.Description,
		Assignees:      payload.Assignees,
		DueDate:        dueDate,
		EstimatedHours: payload.EstimatedHours,
		CustomFields:   payload.CustomFields,
	})
	if err != nil {
		writeTaskError(w, r, err)
		return
	}
	api.Created(w, task, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	task, err := h.Service.Get(r.Context(), chi.URLParam(r, "taskID"))
	if err != nil {
		writeTaskError(w, r, err)
		return
	}
	api.Success(w, task, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	pagination := shared.ParsePagination(r, 50, 200)
	filter := tasks.Filter{
		Status:     r.URL.Query().Get("status"),
		AssigneeID: r.URL.Query().Get("assignee"),
		AssignedBy: r.URL.Query().Get("assignedBy"),
		Limit:      pagination.Limit,
		Offset:     pagination.Offset,
	}
	if raw := r.URL.Query().Get("dueBefore"); raw != "" {
		if parsed, err := shared.ParseDate(raw); err == nil {
			filter.DueBefore = parsed
		}
	}
	if raw := r.URL.Query().Get("dueAfter"); raw != "" {
		if parsed, err := shared.ParseDate(raw); err == nil {
			filter.DueAfter = parsed
		}
	}

	found, err := h.Service.List(r.Context(), filter)
	if err != nil {
		writeTaskError(w, r, err)
		return
	}
	api.Success(w, found, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetUser(r.Context())

	var payload struct {
		Title          *string                     `json:"title"`
		Description    *string                     `json:"description"`
		DueDate        *string                     `json:"dueDate"`
		EstimatedHours *float64                    `json:"estimatedHours"`
		CustomFields   map[string]tasks.FieldValue `json:"customFields"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	input := tasks.UpdateInput{
		Title:          payload.Title,
		Description:    payload.Description,
		EstimatedHours: payload.EstimatedHours,
		CustomFields:   payload.CustomFields,
	}
	if payload.DueDate != nil {
		validator := shared.NewValidator()
		dueDate, _ := validator.Date("dueDate", *payload.DueDate)
		if validator.Reject(w, middleware.GetRequestID(r.Context())) {
			return
		}
		input.DueDate = &dueDate
	}

	task, err := h.Service.Update(r.Context(), actor, chi.URLParam(r, "taskID"), input)
	if err != nil {
		writeTaskError(w, r, err)
		return
	}
	api.Success(w, task, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetUser(r.Context())
	if err := h.Service.Delete(r.Context(), actor, chi.URLParam(r, "taskID")); err != nil {
		writeTaskError(w, r, err)
		return
	}
	api.Success(w, map[string]any{"deleted": true}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleChangeStatus(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetUser(r.Context())

	var payload struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	task, err := h.Service.ChangeStatus(r.Context(), actor, chi.URLParam(r, "taskID"), payload.Status, payload.Reason)
	if err != nil {
		writeTaskError(w, r, err)
		return
	}
	api.Success(w, task, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleComplete(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetUser(r.Context())

	var payload struct {
		Reason string `json:"reason"`
	}
	// body is optional for completion
	_ = json.NewDecoder(r.Body).Decode(&payload)

	task, err := h.Service.Complete(r.Context(), actor, chi.URLParam(r, "taskID"), payload.Reason)
	if err != nil {
		writeTaskError(w, r, err)
		return
	}
	api.Success(w, task, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleStartTracking(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetUser(r.Context())
	task, err := h.Service.StartTracking(r.Context(), actor, chi.URLParam(r, "taskID"))
	if err != nil {
		writeTaskError(w, r, err)
		return
	}
	api.Success(w, task, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleStopTracking(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetUser(r.Context())

	var payload struct {
		Notes string `json:"notes"`
	}
	_ = json.NewDecoder(r.Body).Decode(&payload)

	task, err := h.Service.StopTracking(r.Context(), actor, chi.URLParam(r, "taskID"), payload.Notes)
	if err != nil {
		writeTaskError(w, r, err)
		return
	}
	api.Success(w, task, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleAddAssignee(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetUser(r.Context())

	var payload struct {
		UserID string `json:"userId"`
		Role   string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	task, err := h.Service.AddAssignee(r.Context(), actor, chi.URLParam(r, "taskID"), payload.UserID, payload.Role)
	if err != nil {
		writeTaskError(w, r, err)
		return
	}
	api.Success(w, task, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleRemoveAssignee(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetUser(r.Context())
	task, err := h.Service.RemoveAssignee(r.Context(), actor, chi.URLParam(r, "taskID"), chi.URLParam(r, "userID"))
	if err != nil {
		writeTaskError(w, r, err)
		return
	}
	api.Success(w, task, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateProgress(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetUser(r.Context())

	var payload struct {
		Percentage float64 `json:"percentage"`
		Phase      string  `json:"phase"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	task, err := h.Service.UpdateProgress(r.Context(), actor, chi.URLParam(r, "taskID"), payload.Percentage, payload.Phase)
	if err != nil {
		writeTaskError(w, r, err)
		return
	}
	api.Success(w, task, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleAddBlocker(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetUser(r.Context())

	var payload struct {
		Description string `json:"description"`
		Severity    string `json:"severity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	task, err := h.Service.AddBlocker(r.Context(), actor, chi.URLParam(r, "taskID"), payload.Description, payload.Severity)
	if err != nil {
		writeTaskError(w, r, err)
		return
	}
	api.Success(w, task, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleResolveBlocker(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetUser(r.Context())
	task, err := h.Service.ResolveBlocker(r.Context(), actor, chi.URLParam(r, "taskID"), chi.URLParam(r, "blockerID"))
	if err != nil {
		writeTaskError(w, r, err)
		return
	}
	api.Success(w, task, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleAddMilestone(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetUser(r.Context())

	var payload struct {
		Title   string `json:"title"`
		DueDate string `json:"dueDate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	validator := shared.NewValidator()
	validator.Required("title", payload.Title, "title is required")
	dueDate, _ := validator.Date("dueDate", payload.DueDate)
	if validator.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	task, err := h.Service.AddMilestone(r.Context(), actor, chi.URLParam(r, "taskID"), payload.Title, dueDate)
	if err != nil {
		writeTaskError(w, r, err)
		return
	}
	api.Success(w, task, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCompleteMilestone(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetUser(r.Context())
	task, err := h.Service.CompleteMilestone(r.Context(), actor, chi.URLParam(r, "taskID"), chi.URLParam(r, "milestoneID"))
	if err != nil {
		writeTaskError(w, r, err)
		return
	}
	api.Success(w, task, middleware.GetRequestID(r.Context()))
}

func writeTaskError(w http.ResponseWriter, r *http.Request, err error) {
	reqID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, tasks.ErrTaskNotFound):
		api.Fail(w, http.StatusNotFound, "task_not_found", err.Error(), reqID)
	case errors.Is(err, tasks.ErrPermissionDenied):
		api.Fail(w, http.StatusForbidden, "forbidden", err.Error(), reqID)
	case errors.Is(err, tasks.ErrAlreadyActive):
		api.Fail(w, http.StatusConflict, "session_already_active", err.Error(), reqID)
	case errors.Is(err, tasks.ErrAlreadyAssigned):
		api.Fail(w, http.StatusConflict, "already_assigned", err.Error(), reqID)
	case errors.Is(err, tasks.ErrNoActiveSession):
		api.Fail(w, http.StatusBadRequest, "no_active_session", err.Error(), reqID)
	case errors.Is(err, tasks.ErrLastAssignee):
		api.Fail(w, http.StatusBadRequest, "last_assignee", err.Error(), reqID)
	case errors.Is(err, tasks.ErrNotAssigned):
		api.Fail(w, http.StatusBadRequest, "not_assigned", err.Error(), reqID)
	case errors.Is(err, tasks.ErrValidation):
		api.Fail(w, http.StatusBadRequest, "validation_error", err.Error(), reqID)
	default:
		slog.Warn("task operation failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "task_operation_failed", "task operation failed", reqID)
	}
}
