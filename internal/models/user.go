package models

import "time"

// Application roles.
const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

// AppRoles enumerates the closed role set.
var AppRoles = []string{RoleStudent, RoleAdmin}

// UserProfile stores identity details for a registered user.
type UserProfile struct {
	UserID    string    `gorm:"primaryKey;size:36" json:"user_id"`
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	FullName  *string   `gorm:"size:255" json:"full_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserRole binds a user to their single active role.
type UserRole struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"size:36;uniqueIndex;not null" json:"user_id"`
	Role      string    `gorm:"size:16;not null" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
