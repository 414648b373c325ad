package service

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for unknown identifiers and ownership mismatches.
var (
	ErrRequestNotFound      = errors.New("request not found")
	ErrFAQNotFound          = errors.New("faq not found")
	ErrAnnouncementNotFound = errors.New("announcement not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrNotRequestOwner      = errors.New("request belongs to another student")

	// ErrEscalationStudentOnly rejects escalation attempts by admin actors.
	// Admins adjust priority through the status workflow, not by escalating
	// on a student's behalf.
	ErrEscalationStudentOnly = errors.New("escalation is available to the requesting student only")
)

// ValidationError reports malformed input: a bad enum value, a missing
// required field, or an inconsistent category/type pairing. Unknown enum
// values are rejected, never coerced.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is a domain validation error.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// PolicyViolationError reports an escalation blocked by the cooldown,
// terminal-state or max-priority rules. It is an expected, recoverable
// outcome rendered as a user-facing message.
type PolicyViolationError struct {
	Reason     string
	RetryAfter time.Duration
}

func (e *PolicyViolationError) Error() string {
	return e.Reason
}

// IsPolicyViolation reports whether err is an escalation policy block.
func IsPolicyViolation(err error) bool {
	var pe *PolicyViolationError
	return errors.As(err, &pe)
}
