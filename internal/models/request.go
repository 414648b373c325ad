package models

import "time"

// Request type discriminators.
const (
	RequestTypeIssue     = "issue"
	RequestTypeException = "exception"
)

// Request statuses. Approved, rejected and resolved are terminal for
// escalation purposes.
const (
	StatusOpen        = "open"
	StatusUnderReview = "under_review"
	StatusApproved    = "approved"
	StatusRejected    = "rejected"
	StatusResolved    = "resolved"
)

// Priority bounds for requests.
const (
	MinPriority = 1
	MaxPriority = 5
)

// IssueCategories enumerates the closed set of issue categories.
var IssueCategories = []string{
	"registration_eligibility",
	"payment_refund",
	"activity_points",
	"training_schedule",
	"portal_technical",
	"level_3_one_on_one",
	"other",
}

// ExceptionTypes enumerates the closed set of exception request types.
var ExceptionTypes = []string{
	"medical_emergency",
	"personal_unforeseen",
	"missed_activity",
	"deadline_extension",
	"reattempt_request",
}

// TrainingLevels enumerates the supported training levels.
var TrainingLevels = []string{"level_1", "level_2", "level_3"}

// RequestStatuses enumerates all request statuses.
var RequestStatuses = []string{
	StatusOpen,
	StatusUnderReview,
	StatusApproved,
	StatusRejected,
	StatusResolved,
}

// Request represents a student-submitted issue or exception ticket.
// Exactly one of IssueCategory/ExceptionType is set, matching RequestType.
type Request struct {
	ID               string    `gorm:"primaryKey;size:36" json:"id"`
	StudentID        string    `gorm:"size:36;index;not null" json:"student_id"`
	RequestType      string    `gorm:"size:16;not null" json:"request_type"`
	IssueCategory    *string   `gorm:"size:64" json:"issue_category"`
	ExceptionType    *string   `gorm:"size:64" json:"exception_type"`
	TrainingLevel    string    `gorm:"size:16;not null" json:"training_level"`
	AffectedActivity *string   `gorm:"size:255" json:"affected_activity"`
	Title            string    `gorm:"size:255;not null" json:"title"`
	Description      string    `gorm:"type:text;not null" json:"description"`
	Priority         int       `gorm:"not null;default:1;index" json:"priority"`
	Status           string    `gorm:"size:32;not null;default:open;index" json:"status"`
	AdminResponse    *string   `gorm:"type:text" json:"admin_response"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// IsTerminal reports whether the request status admits no further escalation.
func (r Request) IsTerminal() bool {
	return IsTerminalStatus(r.Status)
}

// IsTerminalStatus reports whether the given status closes a request.
func IsTerminalStatus(status string) bool {
	switch status {
	case StatusApproved, StatusRejected, StatusResolved:
		return true
	}
	return false
}

// Escalation records a single reasoned priority-increase event on a request.
// Rows are append-only.
type Escalation struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	RequestID string    `gorm:"size:36;index;not null" json:"request_id"`
	Reason    string    `gorm:"type:text;not null" json:"reason"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// AdminNote is an internal note an admin attaches to a request. Notes marked
// visible_to_student appear in the student's request view.
type AdminNote struct {
	ID               string    `gorm:"primaryKey;size:36" json:"id"`
	RequestID        string    `gorm:"size:36;index;not null" json:"request_id"`
	AdminID          string    `gorm:"size:36;not null" json:"admin_id"`
	Note             string    `gorm:"type:text;not null" json:"note"`
	VisibleToStudent bool      `gorm:"not null;default:false" json:"visible_to_student"`
	CreatedAt        time.Time `json:"created_at"`
}
