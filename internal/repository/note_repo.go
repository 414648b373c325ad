package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/campusdesk/support-api/internal/models"
)

// NoteRepository persists admin notes attached to requests.
type NoteRepository interface {
	Create(ctx context.Context, note *models.AdminNote) error
	ListByRequest(ctx context.Context, requestID string, visibleOnly bool) ([]models.AdminNote, error)
}

type noteRepository struct {
	db *gorm.DB
}

// NewNoteRepository constructs the note repository.
func NewNoteRepository(db *gorm.DB) NoteRepository {
	return &noteRepository{db: db}
}

func (r *noteRepository) Create(ctx context.Context, note *models.AdminNote) error {
	return r.db.WithContext(ctx).Create(note).Error
}

func (r *noteRepository) ListByRequest(ctx context.Context, requestID string, visibleOnly bool) ([]models.AdminNote, error) {
	query := r.db.WithContext(ctx).Where("request_id = ?", requestID)
	if visibleOnly {
		query = query.Where("visible_to_student = ?", true)
	}

	var notes []models.AdminNote
	if err := query.Order("created_at DESC").Find(&notes).Error; err != nil {
		return nil, err
	}

	return notes, nil
}
