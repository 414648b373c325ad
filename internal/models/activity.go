package models

import (
	"time"

	"gorm.io/datatypes"
)

// Activity log action kinds written by privileged mutations.
const (
	ActionStatusUpdated       = "STATUS_UPDATED"
	ActionRoleChanged         = "ROLE_CHANGED"
	ActionAnnouncementCreated = "ANNOUNCEMENT_CREATED"
	ActionAnnouncementUpdated = "ANNOUNCEMENT_UPDATED"
	ActionAnnouncementDeleted = "ANNOUNCEMENT_DELETED"
	ActionFAQCreated          = "FAQ_CREATED"
	ActionFAQEdited           = "FAQ_EDITED"
	ActionFAQDeleted          = "FAQ_DELETED"
	ActionNoteAdded           = "NOTE_ADDED"
)

// Activity log target types.
const (
	TargetRequest      = "request"
	TargetUser         = "user"
	TargetAnnouncement = "announcement"
	TargetFAQ          = "faq"
)

// ActivityLog captures one immutable audit trail entry for an admin action.
type ActivityLog struct {
	ID         uint              `gorm:"primaryKey" json:"id"`
	ActorEmail string            `gorm:"size:255;not null;index" json:"actor_email"`
	ActionType string            `gorm:"size:64;not null;index" json:"action_type"`
	TargetID   string            `gorm:"size:36;not null" json:"target_id"`
	TargetType string            `gorm:"size:32;not null;index" json:"target_type"`
	Metadata   datatypes.JSONMap `gorm:"type:json" json:"metadata"`
	CreatedAt  time.Time         `gorm:"index" json:"created_at"`
}
