package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/campusdesk/support-api/internal/models"
)

// EscalationDecision re-evaluates the escalation policy against the freshly
// read request state inside the append transaction. Returning a non-nil error
// aborts the transaction before anything is written, closing the window
// between a read-time check and the write.
type EscalationDecision func(request models.Request, lastEscalatedAt *time.Time) error

// EscalationRepository persists escalation events and the associated
// priority bump as a single unit of work.
type EscalationRepository interface {
	ListByRequest(ctx context.Context, requestID string) ([]models.Escalation, error)
	Append(ctx context.Context, escalation *models.Escalation, decide EscalationDecision) (models.Request, error)
}

type escalationRepository struct {
	db *gorm.DB
}

// NewEscalationRepository constructs the escalation repository.
func NewEscalationRepository(db *gorm.DB) EscalationRepository {
	return &escalationRepository{db: db}
}

func (r *escalationRepository) ListByRequest(ctx context.Context, requestID string) ([]models.Escalation, error) {
	var escalations []models.Escalation
	err := r.db.WithContext(ctx).
		Where("request_id = ?", requestID).
		Order("created_at DESC").
		Find(&escalations).Error
	if err != nil {
		return nil, err
	}

	return escalations, nil
}

// Append inserts the escalation record and raises the owning request's
// priority in one transaction. The escalation row is only kept when the
// priority bump succeeds, so a blocked or failed bump never leaves an
// orphan escalation behind.
func (r *escalationRepository) Append(ctx context.Context, escalation *models.Escalation, decide EscalationDecision) (models.Request, error) {
	var updated models.Request

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var request models.Request
		if err := tx.First(&request, "id = ?", escalation.RequestID).Error; err != nil {
			return err
		}

		var lastEscalatedAt *time.Time
		var latest models.Escalation
		err := tx.Where("request_id = ?", escalation.RequestID).
			Order("created_at DESC").
			First(&latest).Error
		switch {
		case err == nil:
			lastEscalatedAt = &latest.CreatedAt
		case err != gorm.ErrRecordNotFound:
			return err
		}

		if decide != nil {
			if err := decide(request, lastEscalatedAt); err != nil {
				return err
			}
		}

		if err := tx.Create(escalation).Error; err != nil {
			return err
		}

		// Single conditional update instead of read-then-write so two
		// racing escalations cannot both bump from the same stale value.
		result := tx.Model(&models.Request{}).
			Where("id = ? AND priority < ?", escalation.RequestID, models.MaxPriority).
			Update("priority", gorm.Expr(
				"CASE WHEN priority < ? THEN priority + 1 ELSE ? END",
				models.MaxPriority, models.MaxPriority,
			))
		if result.Error != nil {
			return result.Error
		}

		return tx.First(&updated, "id = ?", escalation.RequestID).Error
	})
	if err != nil {
		return models.Request{}, err
	}

	return updated, nil
}
