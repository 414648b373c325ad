package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/campusdesk/support-api/internal/dto"
	"github.com/campusdesk/support-api/internal/models"
	"github.com/campusdesk/support-api/internal/repository"
)

// NoteService exposes admin note management on requests.
type NoteService interface {
	Create(ctx context.Context, requestID string, actor Actor, payload dto.NoteCreateRequest) (dto.NoteResponse, error)
	ListByRequest(ctx context.Context, requestID string, actor Actor) ([]dto.NoteResponse, error)
}

type noteService struct {
	notes    repository.NoteRepository
	requests repository.RequestRepository
	activity ActivityService
	logger   zerolog.Logger
}

// NewNoteService constructs the note service.
func NewNoteService(notes repository.NoteRepository, requests repository.RequestRepository, activity ActivityService, logger zerolog.Logger) NoteService {
	return &noteService{
		notes:    notes,
		requests: requests,
		activity: activity,
		logger:   logger.With().Str("component", "note_service").Logger(),
	}
}

func (s *noteService) Create(ctx context.Context, requestID string, actor Actor, payload dto.NoteCreateRequest) (dto.NoteResponse, error) {
	note := strings.TrimSpace(payload.Note)
	if note == "" {
		return dto.NoteResponse{}, newValidationError("note", "note text is required")
	}

	if _, err := s.requests.GetByID(ctx, requestID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.NoteResponse{}, ErrRequestNotFound
		}
		return dto.NoteResponse{}, err
	}

	record := models.AdminNote{
		ID:               uuid.NewString(),
		RequestID:        requestID,
		AdminID:          actor.UserID,
		Note:             note,
		VisibleToStudent: payload.VisibleToStudent,
	}

	if err := s.notes.Create(ctx, &record); err != nil {
		s.logger.Error().Err(err).Str("request_id", requestID).Msg("failed to create note")
		return dto.NoteResponse{}, err
	}

	s.activity.NoteAdded(ctx, actor.Email, requestID, note)

	return dto.NewNoteResponse(record), nil
}

// ListByRequest returns all notes for admins; students see only notes on
// their own requests that are marked visible.
func (s *noteService) ListByRequest(ctx context.Context, requestID string, actor Actor) ([]dto.NoteResponse, error) {
	request, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}

	visibleOnly := false
	if !actor.IsAdmin() {
		if request.StudentID != actor.UserID {
			return nil, ErrNotRequestOwner
		}
		visibleOnly = true
	}

	notes, err := s.notes.ListByRequest(ctx, requestID, visibleOnly)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.NoteResponse, 0, len(notes))
	for _, note := range notes {
		responses = append(responses, dto.NewNoteResponse(note))
	}

	return responses, nil
}
