package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"github.com/campusdesk/support-api/internal/dto"
	"github.com/campusdesk/support-api/internal/models"
	"github.com/campusdesk/support-api/internal/observability"
	"github.com/campusdesk/support-api/internal/repository"
)

const notePreviewLimit = 100

// ActivityMetadata is the closed set of audit metadata shapes. Each action
// kind fixes its shape at compile time instead of passing an untyped bag.
type ActivityMetadata interface {
	toJSONMap() datatypes.JSONMap
}

// ValueChange records an old/new pair for status and role transitions.
type ValueChange struct {
	Old string
	New string
}

func (m ValueChange) toJSONMap() datatypes.JSONMap {
	return datatypes.JSONMap{"old_value": m.Old, "new_value": m.New}
}

// TitleRef records the title of a created or deleted announcement.
type TitleRef struct {
	Title string
}

func (m TitleRef) toJSONMap() datatypes.JSONMap {
	return datatypes.JSONMap{"title": m.Title}
}

// QuestionRef records the question of a created or deleted FAQ.
type QuestionRef struct {
	Question string
}

func (m QuestionRef) toJSONMap() datatypes.JSONMap {
	return datatypes.JSONMap{"question": m.Question}
}

// FieldChanges records which fields an edit touched.
type FieldChanges struct {
	Fields []string
}

func (m FieldChanges) toJSONMap() datatypes.JSONMap {
	fields := make([]interface{}, 0, len(m.Fields))
	for _, field := range m.Fields {
		fields = append(fields, field)
	}
	return datatypes.JSONMap{"fields": fields}
}

// NotePreview records a truncated preview of an admin note.
type NotePreview struct {
	Preview string
}

func (m NotePreview) toJSONMap() datatypes.JSONMap {
	preview := m.Preview
	// Truncate on runes, not bytes, so a multi-byte character at the
	// boundary is dropped whole instead of split.
	if runes := []rune(preview); len(runes) > notePreviewLimit {
		preview = string(runes[:notePreviewLimit])
	}
	return datatypes.JSONMap{"note_preview": preview}
}

// ActivityRecorder appends audit trail entries for privileged mutations.
// Recording is best-effort: a failed write is counted and logged but never
// surfaced to the caller of the primary action it accompanies.
type ActivityRecorder interface {
	Record(ctx context.Context, actorEmail, actionType, targetID, targetType string, metadata ActivityMetadata)
}

// ActivityService exposes audit trail recording and the admin listing.
type ActivityService interface {
	ActivityRecorder
	StatusUpdated(ctx context.Context, actorEmail, requestID, oldStatus, newStatus string)
	RoleChanged(ctx context.Context, actorEmail, userID, oldRole, newRole string)
	AnnouncementCreated(ctx context.Context, actorEmail, announcementID, title string)
	AnnouncementUpdated(ctx context.Context, actorEmail, announcementID string, fields []string)
	AnnouncementDeleted(ctx context.Context, actorEmail, announcementID, title string)
	FAQCreated(ctx context.Context, actorEmail, faqID, question string)
	FAQEdited(ctx context.Context, actorEmail, faqID string, fields []string)
	FAQDeleted(ctx context.Context, actorEmail, faqID, question string)
	NoteAdded(ctx context.Context, actorEmail, requestID, note string)
	List(ctx context.Context, req dto.ActivityListRequest) ([]dto.ActivityLogResponse, error)
}

type activityService struct {
	repo     repository.ActivityLogRepository
	maxLimit int
	logger   zerolog.Logger
}

// NewActivityService constructs the activity log service. maxLimit caps the
// number of entries the admin listing returns.
func NewActivityService(repo repository.ActivityLogRepository, maxLimit int, logger zerolog.Logger) ActivityService {
	if maxLimit <= 0 {
		maxLimit = 500
	}
	return &activityService{
		repo:     repo,
		maxLimit: maxLimit,
		logger:   logger.With().Str("component", "activity_service").Logger(),
	}
}

func (s *activityService) Record(ctx context.Context, actorEmail, actionType, targetID, targetType string, metadata ActivityMetadata) {
	if strings.TrimSpace(actorEmail) == "" {
		s.logger.Error().Str("action", actionType).Msg("no actor email for activity entry")
		return
	}

	entry := models.ActivityLog{
		ActorEmail: actorEmail,
		ActionType: actionType,
		TargetID:   targetID,
		TargetType: targetType,
		Metadata:   datatypes.JSONMap{},
	}
	if metadata != nil {
		entry.Metadata = metadata.toJSONMap()
	}

	if err := s.repo.Create(ctx, &entry); err != nil {
		observability.ActivityLogFailures().Inc()
		s.logger.Error().Err(err).
			Str("action", actionType).
			Str("target_id", targetID).
			Msg("failed to persist activity log")
	}
}

func (s *activityService) StatusUpdated(ctx context.Context, actorEmail, requestID, oldStatus, newStatus string) {
	s.Record(ctx, actorEmail, models.ActionStatusUpdated, requestID, models.TargetRequest, ValueChange{Old: oldStatus, New: newStatus})
}

func (s *activityService) RoleChanged(ctx context.Context, actorEmail, userID, oldRole, newRole string) {
	s.Record(ctx, actorEmail, models.ActionRoleChanged, userID, models.TargetUser, ValueChange{Old: oldRole, New: newRole})
}

func (s *activityService) AnnouncementCreated(ctx context.Context, actorEmail, announcementID, title string) {
	s.Record(ctx, actorEmail, models.ActionAnnouncementCreated, announcementID, models.TargetAnnouncement, TitleRef{Title: title})
}

func (s *activityService) AnnouncementUpdated(ctx context.Context, actorEmail, announcementID string, fields []string) {
	s.Record(ctx, actorEmail, models.ActionAnnouncementUpdated, announcementID, models.TargetAnnouncement, FieldChanges{Fields: fields})
}

func (s *activityService) AnnouncementDeleted(ctx context.Context, actorEmail, announcementID, title string) {
	s.Record(ctx, actorEmail, models.ActionAnnouncementDeleted, announcementID, models.TargetAnnouncement, TitleRef{Title: title})
}

func (s *activityService) FAQCreated(ctx context.Context, actorEmail, faqID, question string) {
	s.Record(ctx, actorEmail, models.ActionFAQCreated, faqID, models.TargetFAQ, QuestionRef{Question: question})
}

func (s *activityService) FAQEdited(ctx context.Context, actorEmail, faqID string, fields []string) {
	s.Record(ctx, actorEmail, models.ActionFAQEdited, faqID, models.TargetFAQ, FieldChanges{Fields: fields})
}

func (s *activityService) FAQDeleted(ctx context.Context, actorEmail, faqID, question string) {
	s.Record(ctx, actorEmail, models.ActionFAQDeleted, faqID, models.TargetFAQ, QuestionRef{Question: question})
}

func (s *activityService) NoteAdded(ctx context.Context, actorEmail, requestID, note string) {
	s.Record(ctx, actorEmail, models.ActionNoteAdded, requestID, models.TargetRequest, NotePreview{Preview: note})
}

func (s *activityService) List(ctx context.Context, req dto.ActivityListRequest) ([]dto.ActivityLogResponse, error) {
	limit := req.Limit
	if limit <= 0 || limit > s.maxLimit {
		limit = s.maxLimit
	}

	entries, err := s.repo.List(ctx, repository.ActivityLogFilter{
		ActorEmail: strings.TrimSpace(req.ActorEmail),
		ActionType: strings.TrimSpace(req.ActionType),
		TargetType: strings.TrimSpace(req.TargetType),
		Limit:      limit,
	})
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ActivityLogResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, dto.NewActivityLogResponse(entry))
	}

	return responses, nil
}
