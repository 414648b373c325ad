package dto

import (
	"time"

	"github.com/campusdesk/support-api/internal/models"
)

// CreateRequestRequest captures the payload for submitting a new request.
type CreateRequestRequest struct {
	RequestType      string `json:"request_type" validate:"required,oneof=issue exception"`
	IssueCategory    string `json:"issue_category" validate:"omitempty"`
	ExceptionType    string `json:"exception_type" validate:"omitempty"`
	TrainingLevel    string `json:"training_level" validate:"required"`
	AffectedActivity string `json:"affected_activity" validate:"omitempty,max=255"`
	Title            string `json:"title" validate:"required,min=3,max=255"`
	Description      string `json:"description" validate:"required,min=10"`
}

// UpdateStatusRequest captures an admin status transition. A non-nil empty
// AdminResponse clears the stored response.
type UpdateStatusRequest struct {
	Status        string  `json:"status"`
	AdminResponse *string `json:"admin_response"`
}

// RequestResponse serialises a request for API consumers.
type RequestResponse struct {
	ID               string    `json:"id"`
	StudentID        string    `json:"student_id"`
	RequestType      string    `json:"request_type"`
	IssueCategory    *string   `json:"issue_category"`
	ExceptionType    *string   `json:"exception_type"`
	TrainingLevel    string    `json:"training_level"`
	AffectedActivity *string   `json:"affected_activity"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Priority         int       `json:"priority"`
	Status           string    `json:"status"`
	AdminResponse    *string   `json:"admin_response"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// NewRequestResponse converts a request model into a DTO.
func NewRequestResponse(request models.Request) RequestResponse {
	return RequestResponse{
		ID:               request.ID,
		StudentID:        request.StudentID,
		RequestType:      request.RequestType,
		IssueCategory:    request.IssueCategory,
		ExceptionType:    request.ExceptionType,
		TrainingLevel:    request.TrainingLevel,
		AffectedActivity: request.AffectedActivity,
		Title:            request.Title,
		Description:      request.Description,
		Priority:         request.Priority,
		Status:           request.Status,
		AdminResponse:    request.AdminResponse,
		CreatedAt:        request.CreatedAt,
		UpdatedAt:        request.UpdatedAt,
	}
}

// ResolvedRequestResponse is the trimmed shape served by the resolved-cases
// library: no student identity, no description, just the outcome.
type ResolvedRequestResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	RequestType   string    `json:"request_type"`
	IssueCategory *string   `json:"issue_category"`
	ExceptionType *string   `json:"exception_type"`
	TrainingLevel string    `json:"training_level"`
	AdminResponse *string   `json:"admin_response"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewResolvedRequestResponse converts a request into the library DTO.
func NewResolvedRequestResponse(request models.Request) ResolvedRequestResponse {
	return ResolvedRequestResponse{
		ID:            request.ID,
		Title:         request.Title,
		RequestType:   request.RequestType,
		IssueCategory: request.IssueCategory,
		ExceptionType: request.ExceptionType,
		TrainingLevel: request.TrainingLevel,
		AdminResponse: request.AdminResponse,
		CreatedAt:     request.CreatedAt,
	}
}
