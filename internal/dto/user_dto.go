package dto

import (
	"time"

	"github.com/campusdesk/support-api/internal/models"
)

// ChangeRoleRequest captures an admin role assignment.
type ChangeRoleRequest struct {
	Role string `json:"role"`
}

// UserResponse serialises a user profile with its active role.
type UserResponse struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	FullName  *string   `json:"full_name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUserResponse converts a profile and role into a DTO.
func NewUserResponse(profile models.UserProfile, role string) UserResponse {
	return UserResponse{
		UserID:    profile.UserID,
		Email:     profile.Email,
		FullName:  profile.FullName,
		Role:      role,
		CreatedAt: profile.CreatedAt,
	}
}

// UserListResponse wraps the admin user listing with role counts.
type UserListResponse struct {
	Items        []UserResponse `json:"items"`
	AdminCount   int            `json:"admin_count"`
	StudentCount int            `json:"student_count"`
}
