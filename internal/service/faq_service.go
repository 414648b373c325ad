package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/campusdesk/support-api/internal/dto"
	"github.com/campusdesk/support-api/internal/models"
	"github.com/campusdesk/support-api/internal/observability"
	"github.com/campusdesk/support-api/internal/repository"
)

const (
	faqMatchLimit     = 5
	minKeywordLength  = 3
	activeFAQCacheKey = "faqs:active:v1"
)

// MatchFAQs filters active FAQs down to the ones worth suggesting for a
// draft request. Category must match exactly; free text is tokenised by
// whitespace, lower-cased, and tokens shorter than three characters are
// dropped. With no usable tokens every category match is returned. The
// result keeps the input ordering and is capped at five entries. This is a
// recall aid, not a search index.
func MatchFAQs(faqs []models.FAQ, category, freeText string) []models.FAQ {
	if category == "" {
		return []models.FAQ{}
	}

	keywords := make([]string, 0)
	for _, token := range strings.Fields(strings.ToLower(freeText)) {
		if len(token) >= minKeywordLength {
			keywords = append(keywords, token)
		}
	}

	matched := make([]models.FAQ, 0, faqMatchLimit)
	for _, faq := range faqs {
		if !faq.Active || faq.Category != category {
			continue
		}

		if len(keywords) > 0 {
			haystack := strings.ToLower(faq.Question + " " + faq.Answer + " " + strings.Join(faq.Keywords, " "))
			found := false
			for _, keyword := range keywords {
				if strings.Contains(haystack, keyword) {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}

		matched = append(matched, faq)
		if len(matched) == faqMatchLimit {
			break
		}
	}

	return matched
}

// FAQService exposes FAQ matching and admin CRUD.
type FAQService interface {
	Match(ctx context.Context, category, freeText string) ([]dto.FAQResponse, error)
	List(ctx context.Context) ([]dto.FAQResponse, error)
	Create(ctx context.Context, actor Actor, payload dto.FAQCreateRequest) (dto.FAQResponse, error)
	Update(ctx context.Context, id string, actor Actor, payload dto.FAQUpdateRequest) (dto.FAQResponse, error)
	Delete(ctx context.Context, id string, actor Actor) error
}

type faqService struct {
	repo      repository.FAQRepository
	validator *validator.Validate
	activity  ActivityService
	cache     *redis.Client
	ttl       time.Duration
	logger    zerolog.Logger
}

// NewFAQService constructs the FAQ service. The cache client may be nil.
func NewFAQService(repo repository.FAQRepository, validate *validator.Validate, activity ActivityService, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) FAQService {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &faqService{
		repo:      repo,
		validator: validate,
		activity:  activity,
		cache:     cache,
		ttl:       ttl,
		logger:    logger.With().Str("component", "faq_service").Logger(),
	}
}

func (s *faqService) Match(ctx context.Context, category, freeText string) ([]dto.FAQResponse, error) {
	start := time.Now()
	defer func() {
		observability.FAQMatchLatency().Observe(time.Since(start).Seconds())
	}()

	category = strings.TrimSpace(category)
	if category == "" {
		return []dto.FAQResponse{}, nil
	}
	if !contains(models.IssueCategories, category) {
		return nil, newValidationError("category", "unknown issue category")
	}

	faqs, err := s.activeFAQs(ctx)
	if err != nil {
		return nil, err
	}

	matched := MatchFAQs(faqs, category, freeText)
	responses := make([]dto.FAQResponse, 0, len(matched))
	for _, faq := range matched {
		responses = append(responses, dto.NewFAQResponse(faq))
	}

	return responses, nil
}

func (s *faqService) List(ctx context.Context) ([]dto.FAQResponse, error) {
	faqs, err := s.repo.List(ctx, repository.FAQFilter{})
	if err != nil {
		return nil, err
	}

	responses := make([]dto.FAQResponse, 0, len(faqs))
	for _, faq := range faqs {
		responses = append(responses, dto.NewFAQResponse(faq))
	}

	return responses, nil
}

func (s *faqService) Create(ctx context.Context, actor Actor, payload dto.FAQCreateRequest) (dto.FAQResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.FAQResponse{}, err
	}
	if !contains(models.IssueCategories, payload.Category) {
		return dto.FAQResponse{}, newValidationError("category", "unknown issue category")
	}

	faq := models.FAQ{
		ID:       uuid.NewString(),
		Category: payload.Category,
		Question: strings.TrimSpace(payload.Question),
		Answer:   strings.TrimSpace(payload.Answer),
		Keywords: payload.Keywords,
		Active:   true,
	}

	if err := s.repo.Create(ctx, &faq); err != nil {
		s.logger.Error().Err(err).Msg("failed to create faq")
		return dto.FAQResponse{}, err
	}

	s.invalidateCache(ctx)
	s.activity.FAQCreated(ctx, actor.Email, faq.ID, faq.Question)

	return dto.NewFAQResponse(faq), nil
}

func (s *faqService) Update(ctx context.Context, id string, actor Actor, payload dto.FAQUpdateRequest) (dto.FAQResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.FAQResponse{}, err
	}

	updates := make(map[string]interface{})
	changedFields := make([]string, 0)

	if payload.Category != nil {
		if !contains(models.IssueCategories, *payload.Category) {
			return dto.FAQResponse{}, newValidationError("category", "unknown issue category")
		}
		updates["category"] = *payload.Category
		changedFields = append(changedFields, "category")
	}
	if payload.Question != nil {
		updates["question"] = strings.TrimSpace(*payload.Question)
		changedFields = append(changedFields, "question")
	}
	if payload.Answer != nil {
		updates["answer"] = strings.TrimSpace(*payload.Answer)
		changedFields = append(changedFields, "answer")
	}
	if payload.Keywords != nil {
		updates["keywords"] = models.EncodeKeywords(payload.Keywords)
		changedFields = append(changedFields, "keywords")
	}
	if payload.Active != nil {
		updates["active"] = *payload.Active
		changedFields = append(changedFields, "active")
	}

	if len(updates) == 0 {
		faq, err := s.repo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return dto.FAQResponse{}, ErrFAQNotFound
			}
			return dto.FAQResponse{}, err
		}
		return dto.NewFAQResponse(faq), nil
	}

	faq, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.FAQResponse{}, ErrFAQNotFound
		}
		s.logger.Error().Err(err).Str("faq_id", id).Msg("failed to update faq")
		return dto.FAQResponse{}, err
	}

	s.invalidateCache(ctx)
	s.activity.FAQEdited(ctx, actor.Email, id, changedFields)

	return dto.NewFAQResponse(faq), nil
}

func (s *faqService) Delete(ctx context.Context, id string, actor Actor) error {
	faq, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFAQNotFound
		}
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFAQNotFound
		}
		s.logger.Error().Err(err).Str("faq_id", id).Msg("failed to delete faq")
		return err
	}

	s.invalidateCache(ctx)
	s.activity.FAQDeleted(ctx, actor.Email, id, faq.Question)

	return nil
}

func (s *faqService) activeFAQs(ctx context.Context) ([]models.FAQ, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, activeFAQCacheKey).Result(); err == nil && cached != "" {
			var faqs []models.FAQ
			if err := json.Unmarshal([]byte(cached), &faqs); err == nil {
				return faqs, nil
			}
		}
	}

	faqs, err := s.repo.List(ctx, repository.FAQFilter{ActiveOnly: true})
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if payload, err := json.Marshal(faqs); err == nil {
			if err := s.cache.Set(ctx, activeFAQCacheKey, payload, s.ttl).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to cache active faqs")
			}
		}
	}

	return faqs, nil
}

func (s *faqService) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, activeFAQCacheKey).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to invalidate faq cache")
	}
}
