package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/campusdesk/support-api/internal/dto"
	"github.com/campusdesk/support-api/internal/models"
	"github.com/campusdesk/support-api/internal/repository"
)

const activeAnnouncementCacheKey = "announcements:active:v1"

// AnnouncementService exposes the public announcement listing and admin CRUD.
type AnnouncementService interface {
	ListActive(ctx context.Context) (dto.AnnouncementListResponse, error)
	List(ctx context.Context) ([]dto.AnnouncementResponse, error)
	Create(ctx context.Context, actor Actor, payload dto.AnnouncementCreateRequest) (dto.AnnouncementResponse, error)
	Update(ctx context.Context, id string, actor Actor, payload dto.AnnouncementUpdateRequest) (dto.AnnouncementResponse, error)
	Delete(ctx context.Context, id string, actor Actor) error
}

type announcementService struct {
	repo      repository.AnnouncementRepository
	validator *validator.Validate
	activity  ActivityService
	cache     *redis.Client
	ttl       time.Duration
	policy    *bluemonday.Policy
	logger    zerolog.Logger
}

// NewAnnouncementService constructs the announcement service. The cache
// client may be nil.
func NewAnnouncementService(repo repository.AnnouncementRepository, validate *validator.Validate, activity ActivityService, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) AnnouncementService {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	policy := bluemonday.UGCPolicy()
	policy.AllowElements("p", "strong", "em", "a", "ul", "ol", "li", "br")
	policy.AllowAttrs("href", "title", "target").OnElements("a")
	return &announcementService{
		repo:      repo,
		validator: validate,
		activity:  activity,
		cache:     cache,
		ttl:       ttl,
		policy:    policy,
		logger:    logger.With().Str("component", "announcement_service").Logger(),
	}
}

func (s *announcementService) ListActive(ctx context.Context) (dto.AnnouncementListResponse, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, activeAnnouncementCacheKey).Result(); err == nil && cached != "" {
			var response dto.AnnouncementListResponse
			if err := json.Unmarshal([]byte(cached), &response); err == nil {
				response.CacheHit = true
				return response, nil
			}
		}
	}

	items, err := s.repo.List(ctx, repository.AnnouncementFilter{ActiveOnly: true})
	if err != nil {
		return dto.AnnouncementListResponse{}, err
	}

	responses := make([]dto.AnnouncementResponse, 0, len(items))
	for _, item := range items {
		response := dto.NewAnnouncementResponse(item)
		response.Body = s.policy.Sanitize(response.Body)
		responses = append(responses, response)
	}

	response := dto.AnnouncementListResponse{Items: responses}

	if s.cache != nil {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, activeAnnouncementCacheKey, payload, s.ttl).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to cache announcements")
			}
		}
	}

	return response, nil
}

func (s *announcementService) List(ctx context.Context) ([]dto.AnnouncementResponse, error) {
	items, err := s.repo.List(ctx, repository.AnnouncementFilter{})
	if err != nil {
		return nil, err
	}

	responses := make([]dto.AnnouncementResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, dto.NewAnnouncementResponse(item))
	}

	return responses, nil
}

func (s *announcementService) Create(ctx context.Context, actor Actor, payload dto.AnnouncementCreateRequest) (dto.AnnouncementResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AnnouncementResponse{}, err
	}

	announcement := models.Announcement{
		ID:           uuid.NewString(),
		Title:        strings.TrimSpace(payload.Title),
		Body:         payload.Body,
		DisplayOrder: payload.DisplayOrder,
		Active:       true,
	}

	if err := s.repo.Create(ctx, &announcement); err != nil {
		s.logger.Error().Err(err).Msg("failed to create announcement")
		return dto.AnnouncementResponse{}, err
	}

	s.invalidateCache(ctx)
	s.activity.AnnouncementCreated(ctx, actor.Email, announcement.ID, announcement.Title)

	return dto.NewAnnouncementResponse(announcement), nil
}

func (s *announcementService) Update(ctx context.Context, id string, actor Actor, payload dto.AnnouncementUpdateRequest) (dto.AnnouncementResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AnnouncementResponse{}, err
	}

	updates := make(map[string]interface{})
	changedFields := make([]string, 0)

	if payload.Title != nil {
		updates["title"] = strings.TrimSpace(*payload.Title)
		changedFields = append(changedFields, "title")
	}
	if payload.Body != nil {
		updates["body"] = *payload.Body
		changedFields = append(changedFields, "body")
	}
	if payload.DisplayOrder != nil {
		updates["display_order"] = *payload.DisplayOrder
		changedFields = append(changedFields, "display_order")
	}
	if payload.Active != nil {
		updates["active"] = *payload.Active
		changedFields = append(changedFields, "active")
	}

	if len(updates) == 0 {
		announcement, err := s.repo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return dto.AnnouncementResponse{}, ErrAnnouncementNotFound
			}
			return dto.AnnouncementResponse{}, err
		}
		return dto.NewAnnouncementResponse(announcement), nil
	}

	announcement, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AnnouncementResponse{}, ErrAnnouncementNotFound
		}
		s.logger.Error().Err(err).Str("announcement_id", id).Msg("failed to update announcement")
		return dto.AnnouncementResponse{}, err
	}

	s.invalidateCache(ctx)
	s.activity.AnnouncementUpdated(ctx, actor.Email, id, changedFields)

	return dto.NewAnnouncementResponse(announcement), nil
}

func (s *announcementService) Delete(ctx context.Context, id string, actor Actor) error {
	announcement, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAnnouncementNotFound
		}
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAnnouncementNotFound
		}
		s.logger.Error().Err(err).Str("announcement_id", id).Msg("failed to delete announcement")
		return err
	}

	s.invalidateCache(ctx)
	s.activity.AnnouncementDeleted(ctx, actor.Email, id, announcement.Title)

	return nil
}

func (s *announcementService) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, activeAnnouncementCacheKey).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to invalidate announcement cache")
	}
}
