package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/campusdesk/support-api/internal/dto"
	"github.com/campusdesk/support-api/internal/models"
	"github.com/campusdesk/support-api/internal/repository"
)

// UserService exposes admin user and role management.
type UserService interface {
	List(ctx context.Context) (dto.UserListResponse, error)
	ChangeRole(ctx context.Context, userID string, actor Actor, newRole string) (dto.UserResponse, error)
}

type userService struct {
	repo     repository.UserRepository
	activity ActivityService
	logger   zerolog.Logger
}

// NewUserService constructs the user management service.
func NewUserService(repo repository.UserRepository, activity ActivityService, logger zerolog.Logger) UserService {
	return &userService{
		repo:     repo,
		activity: activity,
		logger:   logger.With().Str("component", "user_service").Logger(),
	}
}

func (s *userService) List(ctx context.Context) (dto.UserListResponse, error) {
	users, err := s.repo.ListWithRoles(ctx)
	if err != nil {
		return dto.UserListResponse{}, err
	}

	response := dto.UserListResponse{Items: make([]dto.UserResponse, 0, len(users))}
	for _, user := range users {
		response.Items = append(response.Items, dto.NewUserResponse(user.Profile, user.Role))
		switch user.Role {
		case models.RoleAdmin:
			response.AdminCount++
		default:
			response.StudentCount++
		}
	}

	return response, nil
}

func (s *userService) ChangeRole(ctx context.Context, userID string, actor Actor, newRole string) (dto.UserResponse, error) {
	if !contains(models.AppRoles, newRole) {
		return dto.UserResponse{}, newValidationError("role", "unknown role")
	}

	profile, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.UserResponse{}, ErrUserNotFound
		}
		return dto.UserResponse{}, err
	}

	oldRole, err := s.repo.GetRole(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			oldRole = models.RoleStudent
		} else {
			return dto.UserResponse{}, err
		}
	}

	if err := s.repo.SetRole(ctx, userID, newRole); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.UserResponse{}, ErrUserNotFound
		}
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to change role")
		return dto.UserResponse{}, err
	}

	if oldRole != newRole {
		s.activity.RoleChanged(ctx, actor.Email, userID, oldRole, newRole)
	}

	return dto.NewUserResponse(profile, newRole), nil
}
