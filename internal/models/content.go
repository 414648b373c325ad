package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// FAQ is a curated answer shown to students while they draft a request.
// Keywords are stored as a delimited text column and hydrated on read.
type FAQ struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Category    string    `gorm:"size:64;not null;index" json:"category"`
	Question    string    `gorm:"size:512;not null" json:"question"`
	Answer      string    `gorm:"type:text;not null" json:"answer"`
	KeywordsRaw string    `gorm:"column:keywords;type:text" json:"-"`
	// No column default: gorm skips zero-valued fields that carry one on
	// insert, which would turn Active=false into true. Callers set it.
	Active      bool      `gorm:"not null;index" json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Keywords    []string  `gorm:"-" json:"keywords"`
}

// BeforeSave normalises keyword data before persisting.
func (f *FAQ) BeforeSave(tx *gorm.DB) error {
	f.KeywordsRaw = EncodeKeywords(f.Keywords)
	return nil
}

// AfterFind hydrates the keyword list after retrieval.
func (f *FAQ) AfterFind(tx *gorm.DB) error {
	f.Keywords = decodeKeywords(f.KeywordsRaw)
	return nil
}

// EncodeKeywords flattens a keyword list into the delimited column form.
func EncodeKeywords(keywords []string) string {
	if len(keywords) == 0 {
		return ""
	}
	cleaned := make([]string, 0, len(keywords))
	for _, keyword := range keywords {
		trimmed := strings.TrimSpace(strings.ToLower(keyword))
		if trimmed == "" {
			continue
		}
		cleaned = append(cleaned, trimmed)
	}
	if len(cleaned) == 0 {
		return ""
	}
	return "|" + strings.Join(cleaned, "|") + "|"
}

func decodeKeywords(raw string) []string {
	raw = strings.Trim(raw, "|")
	if raw == "" {
		return []string{}
	}
	parts := strings.Split(raw, "|")
	keywords := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		keywords = append(keywords, trimmed)
	}
	return keywords
}

// Announcement represents a broadcast message displayed on the student board.
// Ordering is display_order ascending with ties broken by recency.
type Announcement struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Title        string    `gorm:"size:255;not null" json:"title"`
	Body         string    `gorm:"type:text;not null" json:"body"`
	DisplayOrder int       `gorm:"not null;default:0;index" json:"display_order"`
	Active       bool      `gorm:"not null;index" json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
