package dto

import (
	"math"
	"time"

	"github.com/campusdesk/support-api/internal/models"
)

// EscalateRequest captures the payload for escalating a request.
type EscalateRequest struct {
	Reason string `json:"reason"`
}

// EscalationResponse serialises a single escalation event.
type EscalationResponse struct {
	ID        string    `json:"id"`
	RequestID string    `json:"request_id"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}

// NewEscalationResponse converts an escalation model into a DTO.
func NewEscalationResponse(escalation models.Escalation) EscalationResponse {
	return EscalationResponse{
		ID:        escalation.ID,
		RequestID: escalation.RequestID,
		Reason:    escalation.Reason,
		CreatedAt: escalation.CreatedAt,
	}
}

// EscalationCheckResponse reports whether an escalation would currently be
// allowed, and if not, why.
type EscalationCheckResponse struct {
	Allowed          bool   `json:"allowed"`
	Reason           string `json:"reason,omitempty"`
	RemainingMinutes int    `json:"remaining_minutes,omitempty"`
}

// NewEscalationCheckResponse builds a check response from a policy decision.
func NewEscalationCheckResponse(allowed bool, reason string, retryAfter time.Duration) EscalationCheckResponse {
	response := EscalationCheckResponse{Allowed: allowed, Reason: reason}
	if retryAfter > 0 {
		response.RemainingMinutes = int(math.Ceil(retryAfter.Minutes()))
	}
	return response
}

// EscalateResponse is returned after a successful escalation. Message is the
// priority-changed notification value for the caller to surface.
type EscalateResponse struct {
	Escalation  EscalationResponse `json:"escalation"`
	NewPriority int                `json:"new_priority"`
	Message     string             `json:"message"`
}
