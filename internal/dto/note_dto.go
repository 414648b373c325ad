package dto

import (
	"time"

	"github.com/campusdesk/support-api/internal/models"
)

// NoteCreateRequest captures the payload for attaching an admin note.
type NoteCreateRequest struct {
	Note             string `json:"note"`
	VisibleToStudent bool   `json:"visible_to_student"`
}

// NoteResponse serialises an admin note.
type NoteResponse struct {
	ID               string    `json:"id"`
	RequestID        string    `json:"request_id"`
	AdminID          string    `json:"admin_id"`
	Note             string    `json:"note"`
	VisibleToStudent bool      `json:"visible_to_student"`
	CreatedAt        time.Time `json:"created_at"`
}

// NewNoteResponse converts an admin note model into a DTO.
func NewNoteResponse(note models.AdminNote) NoteResponse {
	return NoteResponse{
		ID:               note.ID,
		RequestID:        note.RequestID,
		AdminID:          note.AdminID,
		Note:             note.Note,
		VisibleToStudent: note.VisibleToStudent,
		CreatedAt:        note.CreatedAt,
	}
}
