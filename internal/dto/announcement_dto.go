package dto

import (
	"time"

	"github.com/campusdesk/support-api/internal/models"
)

// AnnouncementCreateRequest captures the payload for creating an announcement.
type AnnouncementCreateRequest struct {
	Title        string `json:"title" validate:"required,min=3,max=255"`
	Body         string `json:"body" validate:"required"`
	DisplayOrder int    `json:"display_order" validate:"gte=0"`
}

// AnnouncementUpdateRequest captures partial announcement updates.
type AnnouncementUpdateRequest struct {
	Title        *string `json:"title" validate:"omitempty,min=3,max=255"`
	Body         *string `json:"body" validate:"omitempty,min=1"`
	DisplayOrder *int    `json:"display_order" validate:"omitempty,gte=0"`
	Active       *bool   `json:"active"`
}

// AnnouncementResponse serialises an announcement for API consumers.
type AnnouncementResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Body         string    `json:"body"`
	DisplayOrder int       `json:"display_order"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewAnnouncementResponse converts an announcement model into a DTO.
func NewAnnouncementResponse(announcement models.Announcement) AnnouncementResponse {
	return AnnouncementResponse{
		ID:           announcement.ID,
		Title:        announcement.Title,
		Body:         announcement.Body,
		DisplayOrder: announcement.DisplayOrder,
		Active:       announcement.Active,
		CreatedAt:    announcement.CreatedAt,
		UpdatedAt:    announcement.UpdatedAt,
	}
}

// AnnouncementListResponse wraps the public announcement listing.
type AnnouncementListResponse struct {
	Items    []AnnouncementResponse `json:"items"`
	CacheHit bool                   `json:"-"`
}
