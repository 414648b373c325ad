package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/campusdesk/support-api/internal/models"
)

// AnnouncementFilter narrows announcement list queries.
type AnnouncementFilter struct {
	ActiveOnly bool
}

// AnnouncementRepository exposes persistence helpers for announcements.
type AnnouncementRepository interface {
	List(ctx context.Context, filter AnnouncementFilter) ([]models.Announcement, error)
	GetByID(ctx context.Context, id string) (models.Announcement, error)
	Create(ctx context.Context, announcement *models.Announcement) error
	Update(ctx context.Context, id string, updates map[string]interface{}) (models.Announcement, error)
	Delete(ctx context.Context, id string) error
}

type announcementRepository struct {
	db *gorm.DB
}

// NewAnnouncementRepository constructs the repository implementation.
func NewAnnouncementRepository(db *gorm.DB) AnnouncementRepository {
	return &announcementRepository{db: db}
}

func (r *announcementRepository) List(ctx context.Context, filter AnnouncementFilter) ([]models.Announcement, error) {
	query := r.db.WithContext(ctx).Model(&models.Announcement{})

	if filter.ActiveOnly {
		query = query.Where("active = ?", true)
	}

	var items []models.Announcement
	if err := query.Order("display_order ASC, created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}

	return items, nil
}

func (r *announcementRepository) GetByID(ctx context.Context, id string) (models.Announcement, error) {
	var announcement models.Announcement
	err := r.db.WithContext(ctx).First(&announcement, "id = ?", id).Error
	return announcement, err
}

func (r *announcementRepository) Create(ctx context.Context, announcement *models.Announcement) error {
	return r.db.WithContext(ctx).Create(announcement).Error
}

func (r *announcementRepository) Update(ctx context.Context, id string, updates map[string]interface{}) (models.Announcement, error) {
	result := r.db.WithContext(ctx).Model(&models.Announcement{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return models.Announcement{}, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Announcement{}, gorm.ErrRecordNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *announcementRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.Announcement{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
