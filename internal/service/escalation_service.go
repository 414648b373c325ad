package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/campusdesk/support-api/internal/dto"
	"github.com/campusdesk/support-api/internal/models"
	"github.com/campusdesk/support-api/internal/observability"
	"github.com/campusdesk/support-api/internal/repository"
)

// EscalationDecision is the outcome of evaluating the escalation policy.
type EscalationDecision struct {
	Allowed    bool
	Reason     string
	RetryAfter time.Duration
}

// CanEscalate evaluates the escalation policy rules in order: maximum
// priority, terminal status, then cooldown since the most recent escalation.
func CanEscalate(priority int, status string, lastEscalatedAt *time.Time, now time.Time, cooldown time.Duration) EscalationDecision {
	if priority >= models.MaxPriority {
		return EscalationDecision{Reason: "maximum priority reached"}
	}

	if models.IsTerminalStatus(status) {
		return EscalationDecision{Reason: "request is closed"}
	}

	if lastEscalatedAt != nil {
		elapsed := now.Sub(*lastEscalatedAt)
		if elapsed < cooldown {
			remaining := cooldown - elapsed
			minutes := int(math.Ceil(remaining.Minutes()))
			return EscalationDecision{
				Reason:     fmt.Sprintf("wait %d minutes before next escalation", minutes),
				RetryAfter: remaining,
			}
		}
	}

	return EscalationDecision{Allowed: true}
}

// EscalationService orchestrates priority escalation on requests.
type EscalationService interface {
	Check(ctx context.Context, requestID string, actor Actor) (dto.EscalationCheckResponse, error)
	Escalate(ctx context.Context, requestID string, actor Actor, reason string) (dto.EscalateResponse, error)
	History(ctx context.Context, requestID string, actor Actor) ([]dto.EscalationResponse, error)
}

type escalationService struct {
	escalations repository.EscalationRepository
	requests    repository.RequestRepository
	cooldown    time.Duration
	now         func() time.Time
	logger      zerolog.Logger
}

// NewEscalationService constructs the escalation service.
func NewEscalationService(escalations repository.EscalationRepository, requests repository.RequestRepository, cooldown time.Duration, logger zerolog.Logger) EscalationService {
	if cooldown <= 0 {
		cooldown = time.Hour
	}
	return &escalationService{
		escalations: escalations,
		requests:    requests,
		cooldown:    cooldown,
		now:         time.Now,
		logger:      logger.With().Str("component", "escalation_service").Logger(),
	}
}

func (s *escalationService) Check(ctx context.Context, requestID string, actor Actor) (dto.EscalationCheckResponse, error) {
	request, err := s.loadOwned(ctx, requestID, actor)
	if err != nil {
		return dto.EscalationCheckResponse{}, err
	}

	lastEscalatedAt, err := s.lastEscalatedAt(ctx, requestID)
	if err != nil {
		return dto.EscalationCheckResponse{}, err
	}

	decision := CanEscalate(request.Priority, request.Status, lastEscalatedAt, s.now(), s.cooldown)
	return dto.NewEscalationCheckResponse(decision.Allowed, decision.Reason, decision.RetryAfter), nil
}

func (s *escalationService) Escalate(ctx context.Context, requestID string, actor Actor, reason string) (dto.EscalateResponse, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return dto.EscalateResponse{}, newValidationError("reason", "escalation reason is required")
	}

	// Escalation is a student action on their own request. Admins may still
	// read the decision and history.
	if actor.IsAdmin() {
		return dto.EscalateResponse{}, ErrEscalationStudentOnly
	}

	if _, err := s.loadOwned(ctx, requestID, actor); err != nil {
		return dto.EscalateResponse{}, err
	}

	escalation := models.Escalation{
		ID:        uuid.NewString(),
		RequestID: requestID,
		Reason:    reason,
		CreatedAt: s.now(),
	}

	// The policy is re-evaluated against the row state read inside the
	// append transaction, not the state the caller saw.
	updated, err := s.escalations.Append(ctx, &escalation, func(request models.Request, lastEscalatedAt *time.Time) error {
		decision := CanEscalate(request.Priority, request.Status, lastEscalatedAt, s.now(), s.cooldown)
		if !decision.Allowed {
			return &PolicyViolationError{Reason: decision.Reason, RetryAfter: decision.RetryAfter}
		}
		return nil
	})
	if err != nil {
		switch {
		case IsPolicyViolation(err):
			observability.Escalations().WithLabelValues("blocked").Inc()
			return dto.EscalateResponse{}, err
		case errors.Is(err, gorm.ErrRecordNotFound):
			return dto.EscalateResponse{}, ErrRequestNotFound
		default:
			observability.Escalations().WithLabelValues("error").Inc()
			s.logger.Error().Err(err).Str("request_id", requestID).Msg("escalation failed")
			return dto.EscalateResponse{}, err
		}
	}

	observability.Escalations().WithLabelValues("escalated").Inc()
	s.logger.Info().
		Str("request_id", requestID).
		Int("priority", updated.Priority).
		Msg("request escalated")

	return dto.EscalateResponse{
		Escalation:  dto.NewEscalationResponse(escalation),
		NewPriority: updated.Priority,
		Message:     fmt.Sprintf("Priority escalated to %d", updated.Priority),
	}, nil
}

func (s *escalationService) History(ctx context.Context, requestID string, actor Actor) ([]dto.EscalationResponse, error) {
	if _, err := s.loadOwned(ctx, requestID, actor); err != nil {
		return nil, err
	}

	escalations, err := s.escalations.ListByRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.EscalationResponse, 0, len(escalations))
	for _, escalation := range escalations {
		responses = append(responses, dto.NewEscalationResponse(escalation))
	}

	return responses, nil
}

// loadOwned fetches the request and enforces that non-admin actors only
// touch their own requests.
func (s *escalationService) loadOwned(ctx context.Context, requestID string, actor Actor) (models.Request, error) {
	request, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Request{}, ErrRequestNotFound
		}
		return models.Request{}, err
	}

	if !actor.IsAdmin() && request.StudentID != actor.UserID {
		return models.Request{}, ErrNotRequestOwner
	}

	return request, nil
}

func (s *escalationService) lastEscalatedAt(ctx context.Context, requestID string) (*time.Time, error) {
	escalations, err := s.escalations.ListByRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if len(escalations) == 0 {
		return nil, nil
	}
	return &escalations[0].CreatedAt, nil
}
