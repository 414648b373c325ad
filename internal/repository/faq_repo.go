package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/campusdesk/support-api/internal/models"
)

// FAQFilter narrows FAQ list queries.
type FAQFilter struct {
	Category   string
	ActiveOnly bool
}

// FAQRepository exposes persistence helpers for FAQs.
type FAQRepository interface {
	List(ctx context.Context, filter FAQFilter) ([]models.FAQ, error)
	GetByID(ctx context.Context, id string) (models.FAQ, error)
	Create(ctx context.Context, faq *models.FAQ) error
	Update(ctx context.Context, id string, updates map[string]interface{}) (models.FAQ, error)
	Delete(ctx context.Context, id string) error
}

type faqRepository struct {
	db *gorm.DB
}

// NewFAQRepository constructs the FAQ repository.
func NewFAQRepository(db *gorm.DB) FAQRepository {
	return &faqRepository{db: db}
}

func (r *faqRepository) List(ctx context.Context, filter FAQFilter) ([]models.FAQ, error) {
	query := r.db.WithContext(ctx).Model(&models.FAQ{})

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.ActiveOnly {
		query = query.Where("active = ?", true)
	}

	var faqs []models.FAQ
	if err := query.Order("category ASC, created_at DESC").Find(&faqs).Error; err != nil {
		return nil, err
	}

	return faqs, nil
}

func (r *faqRepository) GetByID(ctx context.Context, id string) (models.FAQ, error) {
	var faq models.FAQ
	err := r.db.WithContext(ctx).First(&faq, "id = ?", id).Error
	return faq, err
}

func (r *faqRepository) Create(ctx context.Context, faq *models.FAQ) error {
	return r.db.WithContext(ctx).Create(faq).Error
}

func (r *faqRepository) Update(ctx context.Context, id string, updates map[string]interface{}) (models.FAQ, error) {
	result := r.db.WithContext(ctx).Model(&models.FAQ{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return models.FAQ{}, result.Error
	}
	if result.RowsAffected == 0 {
		return models.FAQ{}, gorm.ErrRecordNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *faqRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.FAQ{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
