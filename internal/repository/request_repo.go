package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/campusdesk/support-api/internal/models"
)

// Request list orderings.
const (
	RequestOrderQueue  = "queue"  // priority desc, created asc (admin triage)
	RequestOrderRecent = "recent" // created desc
)

// RequestFilter narrows request list queries.
type RequestFilter struct {
	StudentID string
	Status    string
	Order     string
	Limit     int
}

// RequestRepository exposes persistence helpers for requests.
type RequestRepository interface {
	Create(ctx context.Context, request *models.Request) error
	GetByID(ctx context.Context, id string) (models.Request, error)
	List(ctx context.Context, filter RequestFilter) ([]models.Request, error)
	Update(ctx context.Context, id string, updates map[string]interface{}) (models.Request, error)
}

type requestRepository struct {
	db *gorm.DB
}

// NewRequestRepository constructs the repository implementation.
func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &requestRepository{db: db}
}

func (r *requestRepository) Create(ctx context.Context, request *models.Request) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *requestRepository) GetByID(ctx context.Context, id string) (models.Request, error) {
	var request models.Request
	err := r.db.WithContext(ctx).First(&request, "id = ?", id).Error
	return request, err
}

func (r *requestRepository) List(ctx context.Context, filter RequestFilter) ([]models.Request, error) {
	query := r.db.WithContext(ctx).Model(&models.Request{})

	if filter.StudentID != "" {
		query = query.Where("student_id = ?", filter.StudentID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	switch filter.Order {
	case RequestOrderQueue:
		query = query.Order("priority DESC, created_at ASC")
	default:
		query = query.Order("created_at DESC")
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var requests []models.Request
	if err := query.Find(&requests).Error; err != nil {
		return nil, err
	}

	return requests, nil
}

func (r *requestRepository) Update(ctx context.Context, id string, updates map[string]interface{}) (models.Request, error) {
	result := r.db.WithContext(ctx).Model(&models.Request{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return models.Request{}, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Request{}, gorm.ErrRecordNotFound
	}

	return r.GetByID(ctx, id)
}
