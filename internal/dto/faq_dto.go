package dto

import (
	"time"

	"github.com/campusdesk/support-api/internal/models"
)

// FAQCreateRequest captures the payload for creating an FAQ.
type FAQCreateRequest struct {
	Category string   `json:"category" validate:"required"`
	Question string   `json:"question" validate:"required,min=5,max=512"`
	Answer   string   `json:"answer" validate:"required,min=5"`
	Keywords []string `json:"keywords" validate:"omitempty,dive,min=1"`
}

// FAQUpdateRequest captures partial FAQ updates.
type FAQUpdateRequest struct {
	Category *string  `json:"category" validate:"omitempty"`
	Question *string  `json:"question" validate:"omitempty,min=5,max=512"`
	Answer   *string  `json:"answer" validate:"omitempty,min=5"`
	Keywords []string `json:"keywords" validate:"omitempty,dive,min=1"`
	Active   *bool    `json:"active"`
}

// FAQResponse serialises an FAQ for API consumers.
type FAQResponse struct {
	ID        string    `json:"id"`
	Category  string    `json:"category"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Keywords  []string  `json:"keywords"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewFAQResponse converts an FAQ model into a DTO.
func NewFAQResponse(faq models.FAQ) FAQResponse {
	keywords := faq.Keywords
	if keywords == nil {
		keywords = []string{}
	}
	return FAQResponse{
		ID:        faq.ID,
		Category:  faq.Category,
		Question:  faq.Question,
		Answer:    faq.Answer,
		Keywords:  keywords,
		Active:    faq.Active,
		CreatedAt: faq.CreatedAt,
		UpdatedAt: faq.UpdatedAt,
	}
}
