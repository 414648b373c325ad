package service

import "github.com/campusdesk/support-api/internal/models"

// Actor identifies the authenticated user performing an operation.
type Actor struct {
	UserID string
	Email  string
	Role   string
}

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}
