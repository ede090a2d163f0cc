package auth

import "time"

const (
	RoleAdmin          = "admin"
	RoleProjectManager = "project_manager"
	RoleEmployee       = "employee"

	DesignationProjectManager = "project_manager"

	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Designation  string    `json:"designation"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Actor is the caller identity consumed by domain policy checks.
type Actor struct {
	UserID      string
	Role        string
	Designation string
}

func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleProjectManager, RoleEmployee:
		return true
	}
	return false
}
