package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/campusdesk/support-api/internal/dto"
	"github.com/campusdesk/support-api/internal/models"
	"github.com/campusdesk/support-api/internal/observability"
	"github.com/campusdesk/support-api/internal/repository"
)

// RequestService orchestrates request creation, listing and status
// transitions.
type RequestService interface {
	Create(ctx context.Context, actor Actor, payload dto.CreateRequestRequest) (dto.RequestResponse, error)
	Get(ctx context.Context, id string, actor Actor) (dto.RequestResponse, error)
	ListMine(ctx context.Context, actor Actor) ([]dto.RequestResponse, error)
	ListQueue(ctx context.Context) ([]dto.RequestResponse, error)
	ListResolved(ctx context.Context) ([]dto.ResolvedRequestResponse, error)
	UpdateStatus(ctx context.Context, id string, actor Actor, payload dto.UpdateStatusRequest) (dto.RequestResponse, error)
}

type requestService struct {
	repo      repository.RequestRepository
	validator *validator.Validate
	activity  ActivityService
	logger    zerolog.Logger
}

// NewRequestService constructs the request lifecycle service.
func NewRequestService(repo repository.RequestRepository, validate *validator.Validate, activity ActivityService, logger zerolog.Logger) RequestService {
	return &requestService{
		repo:      repo,
		validator: validate,
		activity:  activity,
		logger:    logger.With().Str("component", "request_service").Logger(),
	}
}

func (s *requestService) Create(ctx context.Context, actor Actor, payload dto.CreateRequestRequest) (dto.RequestResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.RequestResponse{}, err
	}

	if err := validateRequestKind(payload); err != nil {
		return dto.RequestResponse{}, err
	}

	request := models.Request{
		ID:            uuid.NewString(),
		StudentID:     actor.UserID,
		RequestType:   payload.RequestType,
		TrainingLevel: payload.TrainingLevel,
		Title:         strings.TrimSpace(payload.Title),
		Description:   strings.TrimSpace(payload.Description),
		Priority:      models.MinPriority,
		Status:        models.StatusOpen,
	}

	switch payload.RequestType {
	case models.RequestTypeIssue:
		category := payload.IssueCategory
		request.IssueCategory = &category
	case models.RequestTypeException:
		exceptionType := payload.ExceptionType
		request.ExceptionType = &exceptionType
	}

	if trimmed := strings.TrimSpace(payload.AffectedActivity); trimmed != "" {
		request.AffectedActivity = &trimmed
	}

	if err := s.repo.Create(ctx, &request); err != nil {
		s.logger.Error().Err(err).Str("student_id", actor.UserID).Msg("failed to create request")
		return dto.RequestResponse{}, err
	}

	return dto.NewRequestResponse(request), nil
}

func (s *requestService) Get(ctx context.Context, id string, actor Actor) (dto.RequestResponse, error) {
	request, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.RequestResponse{}, ErrRequestNotFound
		}
		return dto.RequestResponse{}, err
	}

	if !actor.IsAdmin() && request.StudentID != actor.UserID {
		return dto.RequestResponse{}, ErrNotRequestOwner
	}

	return dto.NewRequestResponse(request), nil
}

func (s *requestService) ListMine(ctx context.Context, actor Actor) ([]dto.RequestResponse, error) {
	requests, err := s.repo.List(ctx, repository.RequestFilter{
		StudentID: actor.UserID,
		Order:     repository.RequestOrderRecent,
	})
	if err != nil {
		return nil, err
	}

	return newRequestResponses(requests), nil
}

// ListQueue returns the admin triage queue: highest priority first, oldest
// first within a priority band.
func (s *requestService) ListQueue(ctx context.Context) ([]dto.RequestResponse, error) {
	requests, err := s.repo.List(ctx, repository.RequestFilter{Order: repository.RequestOrderQueue})
	if err != nil {
		return nil, err
	}

	return newRequestResponses(requests), nil
}

func (s *requestService) ListResolved(ctx context.Context) ([]dto.ResolvedRequestResponse, error) {
	requests, err := s.repo.List(ctx, repository.RequestFilter{
		Status: models.StatusResolved,
		Order:  repository.RequestOrderRecent,
	})
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ResolvedRequestResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, dto.NewResolvedRequestResponse(request))
	}

	return responses, nil
}

// UpdateStatus writes the new status and, when a response is supplied,
// overwrites the admin response (an empty string clears it). A STATUS_UPDATED
// audit entry is emitted only when the status actually changed.
func (s *requestService) UpdateStatus(ctx context.Context, id string, actor Actor, payload dto.UpdateStatusRequest) (dto.RequestResponse, error) {
	if !isKnownStatus(payload.Status) {
		return dto.RequestResponse{}, newValidationError("status", "unknown status")
	}

	request, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.RequestResponse{}, ErrRequestNotFound
		}
		return dto.RequestResponse{}, err
	}

	oldStatus := request.Status
	updates := map[string]interface{}{"status": payload.Status}
	if payload.AdminResponse != nil {
		updates["admin_response"] = *payload.AdminResponse
	}

	updated, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.RequestResponse{}, ErrRequestNotFound
		}
		s.logger.Error().Err(err).Str("request_id", id).Msg("failed to update request status")
		return dto.RequestResponse{}, err
	}

	if oldStatus != payload.Status {
		observability.StatusUpdates().WithLabelValues(payload.Status).Inc()
		s.activity.StatusUpdated(ctx, actor.Email, id, oldStatus, payload.Status)
	}

	return dto.NewRequestResponse(updated), nil
}

func newRequestResponses(requests []models.Request) []dto.RequestResponse {
	responses := make([]dto.RequestResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, dto.NewRequestResponse(request))
	}
	return responses
}

// validateRequestKind enforces that exactly one of issue category or
// exception type is set, consistent with the request type.
func validateRequestKind(payload dto.CreateRequestRequest) error {
	switch payload.RequestType {
	case models.RequestTypeIssue:
		if payload.IssueCategory == "" {
			return newValidationError("issue_category", "required for issue requests")
		}
		if payload.ExceptionType != "" {
			return newValidationError("exception_type", "must not be set for issue requests")
		}
		if !contains(models.IssueCategories, payload.IssueCategory) {
			return newValidationError("issue_category", "unknown issue category")
		}
	case models.RequestTypeException:
		if payload.ExceptionType == "" {
			return newValidationError("exception_type", "required for exception requests")
		}
		if payload.IssueCategory != "" {
			return newValidationError("issue_category", "must not be set for exception requests")
		}
		if !contains(models.ExceptionTypes, payload.ExceptionType) {
			return newValidationError("exception_type", "unknown exception type")
		}
	default:
		return newValidationError("request_type", "unknown request type")
	}

	if !contains(models.TrainingLevels, payload.TrainingLevel) {
		return newValidationError("training_level", "unknown training level")
	}

	return nil
}

func isKnownStatus(status string) bool {
	return contains(models.RequestStatuses, status)
}

func contains(values []string, value string) bool {
	for _, candidate := range values {
		if candidate == value {
			return true
		}
	}
	return false
}
