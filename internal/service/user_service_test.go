package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/campusdesk/support-api/internal/models"
	"github.com/campusdesk/support-api/internal/repository"
)

type userRepoStub struct {
	profiles map[string]models.UserProfile
	roles    map[string]string
}

func newUserRepoStub() *userRepoStub {
	return &userRepoStub{
		profiles: make(map[string]models.UserProfile),
		roles:    make(map[string]string),
	}
}

func (s *userRepoStub) addUser(userID, email, role string) {
	s.profiles[userID] = models.UserProfile{UserID: userID, Email: email}
	if role != "" {
		s.roles[userID] = role
	}
}

func (s *userRepoStub) ListWithRoles(ctx context.Context) ([]repository.UserWithRole, error) {
	users := make([]repository.UserWithRole, 0, len(s.profiles))
	for userID, profile := range s.profiles {
		role, ok := s.roles[userID]
		if !ok {
			role = models.RoleStudent
		}
		users = append(users, repository.UserWithRole{Profile: profile, Role: role})
	}
	return users, nil
}

func (s *userRepoStub) GetProfile(ctx context.Context, userID string) (models.UserProfile, error) {
	profile, ok := s.profiles[userID]
	if !ok {
		return models.UserProfile{}, gorm.ErrRecordNotFound
	}
	return profile, nil
}

func (s *userRepoStub) GetRole(ctx context.Context, userID string) (string, error) {
	role, ok := s.roles[userID]
	if !ok {
		return "", gorm.ErrRecordNotFound
	}
	return role, nil
}

func (s *userRepoStub) SetRole(ctx context.Context, userID, role string) error {
	if _, ok := s.roles[userID]; !ok {
		return gorm.ErrRecordNotFound
	}
	s.roles[userID] = role
	return nil
}

func TestUserListCountsRoles(t *testing.T) {
	repo := newUserRepoStub()
	repo.addUser("user-1", "one@campus.test", models.RoleAdmin)
	repo.addUser("user-2", "two@campus.test", models.RoleStudent)
	repo.addUser("user-3", "three@campus.test", "")

	svc := NewUserService(repo, newActivityService(&memoryActivityRepo{}), testLogger())

	response, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, response.Items, 3)
	require.Equal(t, 1, response.AdminCount)
	require.Equal(t, 2, response.StudentCount)
}

func TestChangeRoleLogsTransition(t *testing.T) {
	repo := newUserRepoStub()
	repo.addUser("user-1", "one@campus.test", models.RoleStudent)

	activity := &memoryActivityRepo{}
	svc := NewUserService(repo, newActivityService(activity), testLogger())
	admin := Actor{UserID: "admin-1", Email: "admin@campus.test", Role: models.RoleAdmin}

	updated, err := svc.ChangeRole(context.Background(), "user-1", admin, models.RoleAdmin)
	require.NoError(t, err)
	require.Equal(t, models.RoleAdmin, updated.Role)

	entries := activity.byAction(models.ActionRoleChanged)
	require.Len(t, entries, 1)
	require.Equal(t, models.RoleStudent, entries[0].Metadata["old_value"])
	require.Equal(t, models.RoleAdmin, entries[0].Metadata["new_value"])

	// Assigning the role the user already holds is not audited.
	_, err = svc.ChangeRole(context.Background(), "user-1", admin, models.RoleAdmin)
	require.NoError(t, err)
	require.Len(t, activity.byAction(models.ActionRoleChanged), 1)
}

func TestChangeRoleValidation(t *testing.T) {
	repo := newUserRepoStub()
	repo.addUser("user-1", "one@campus.test", models.RoleStudent)

	svc := NewUserService(repo, newActivityService(&memoryActivityRepo{}), testLogger())
	admin := Actor{UserID: "admin-1", Email: "admin@campus.test", Role: models.RoleAdmin}

	_, err := svc.ChangeRole(context.Background(), "user-1", admin, "superuser")
	require.True(t, IsValidation(err))

	_, err = svc.ChangeRole(context.Background(), "ghost", admin, models.RoleAdmin)
	require.ErrorIs(t, err, ErrUserNotFound)
}
