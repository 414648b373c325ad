package dto

import (
	"time"

	"github.com/campusdesk/support-api/internal/models"
)

// ActivityListRequest defines filters for the admin activity log listing.
type ActivityListRequest struct {
	ActorEmail string
	ActionType string
	TargetType string
	Limit      int
}

// ActivityLogResponse serialises an audit trail entry.
type ActivityLogResponse struct {
	ID         uint                   `json:"id"`
	ActorEmail string                 `json:"actor_email"`
	ActionType string                 `json:"action_type"`
	TargetID   string                 `json:"target_id"`
	TargetType string                 `json:"target_type"`
	Metadata   map[string]interface{} `json:"metadata"`
	CreatedAt  time.Time              `json:"created_at"`
}

// NewActivityLogResponse converts an activity log model into a DTO.
func NewActivityLogResponse(entry models.ActivityLog) ActivityLogResponse {
	metadata := make(map[string]interface{}, len(entry.Metadata))
	for key, value := range entry.Metadata {
		metadata[key] = value
	}
	return ActivityLogResponse{
		ID:         entry.ID,
		ActorEmail: entry.ActorEmail,
		ActionType: entry.ActionType,
		TargetID:   entry.TargetID,
		TargetType: entry.TargetType,
		Metadata:   metadata,
		CreatedAt:  entry.CreatedAt,
	}
}
