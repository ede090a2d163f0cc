package authhandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/apardew63/crm-server/internal/domain/auth"
	"github.com/apardew63/crm-server/internal/transport/http/api"
	"github.com/apardew63/crm-server/internal/transport/http/middleware"
	"github.com/apardew63/crm-server/internal/transport/http/shared"
)

type Handler struct {
	Service *auth.Service
}

func NewHandler(service *auth.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/login", h.handleLogin)
	r.Route("/users", func(r chi.Router) {
		r.Use(middleware.RequireRole(auth.RoleAdmin, auth.RoleProjectManager))
		r.Get("/", h.handleListUsers)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Post("/", h.handleCreateUser)
	})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if payload.Email == "" || payload.Password == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "email and password are required", middleware.GetRequestID(r.Context()))
		return
	}

	user, token, err := h.Service.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]any{"token": token, "user": user}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	pagination := shared.ParsePagination(r, 50, 200)
	users, err := h.Service.ListUsers(r.Context(), pagination.Limit, pagination.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "user_list_failed", "failed to list users", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, users, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email       string `json:"email"`
		Name        string `json:"name"`
		Password    string `json:"password"`
		Role        string `json:"role"`
		Designation string `json:"designation"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	validator := shared.NewValidator()
	validator.Required("email", payload.Email, "email is required")
	validator.Required("password", payload.Password, "password is required")
	if payload.Role == "" {
		payload.Role = auth.RoleEmployee
	}
	if !auth.ValidRole(payload.Role) {
		validator.Add("role", "must be one of admin, project_manager, employee")
	}
	if validator.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	userID, err := h.Service.CreateUser(r.Context(), auth.User{
		Email:       payload.Email,
		Name:        payload.Name,
		Role:        payload.Role,
		Designation: payload.Designation,
	}, payload.Password)
	if errors.Is(err, auth.ErrEmailTaken) {
		api.Fail(w, http.StatusConflict, "email_taken", "email already registered", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "user_create_failed", "failed to create user", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": userID}, middleware.GetRequestID(r.Context()))
}
