package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/campusdesk/support-api/internal/models"
)

// UserWithRole joins a profile with its active role.
type UserWithRole struct {
	Profile models.UserProfile
	Role    string
}

// UserRepository exposes persistence helpers for user profiles and roles.
type UserRepository interface {
	ListWithRoles(ctx context.Context) ([]UserWithRole, error)
	GetProfile(ctx context.Context, userID string) (models.UserProfile, error)
	GetRole(ctx context.Context, userID string) (string, error)
	SetRole(ctx context.Context, userID, role string) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository constructs the user repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) ListWithRoles(ctx context.Context) ([]UserWithRole, error) {
	var profiles []models.UserProfile
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&profiles).Error; err != nil {
		return nil, err
	}

	var roles []models.UserRole
	if err := r.db.WithContext(ctx).Find(&roles).Error; err != nil {
		return nil, err
	}

	roleByUser := make(map[string]string, len(roles))
	for _, role := range roles {
		roleByUser[role.UserID] = role.Role
	}

	users := make([]UserWithRole, 0, len(profiles))
	for _, profile := range profiles {
		role, ok := roleByUser[profile.UserID]
		if !ok {
			role = models.RoleStudent
		}
		users = append(users, UserWithRole{Profile: profile, Role: role})
	}

	return users, nil
}

func (r *userRepository) GetProfile(ctx context.Context, userID string) (models.UserProfile, error) {
	var profile models.UserProfile
	err := r.db.WithContext(ctx).First(&profile, "user_id = ?", userID).Error
	return profile, err
}

func (r *userRepository) GetRole(ctx context.Context, userID string) (string, error) {
	var role models.UserRole
	err := r.db.WithContext(ctx).First(&role, "user_id = ?", userID).Error
	if err != nil {
		return "", err
	}
	return role.Role, nil
}

func (r *userRepository) SetRole(ctx context.Context, userID, role string) error {
	result := r.db.WithContext(ctx).Model(&models.UserRole{}).
		Where("user_id = ?", userID).
		Update("role", role)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
