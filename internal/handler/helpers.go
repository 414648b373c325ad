package handler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/campusdesk/support-api/internal/middleware"
	"github.com/campusdesk/support-api/internal/service"
	"github.com/campusdesk/support-api/internal/utils"
)

func parseQueryInt(c *fiber.Ctx, key string) (int, error) {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return 0, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	return parsed, nil
}

func localString(c *fiber.Ctx, key string) string {
	if v := c.Locals(key); v != nil {
		if str, ok := v.(string); ok {
			return strings.TrimSpace(str)
		}
	}
	return ""
}

func actorFromContext(c *fiber.Ctx) service.Actor {
	return service.Actor{
		UserID: localString(c, "user_id"),
		Email:  localString(c, "user_email"),
		Role:   localString(c, "user_role"),
	}
}

func requestLogger(base zerolog.Logger, c *fiber.Ctx) *zerolog.Logger {
	logger := base
	if c != nil {
		if correlation := middleware.GetCorrelationID(c); correlation != "" {
			logger = base.With().Str("correlation_id", correlation).Logger()
		}
	}
	return &logger
}

func isValidationError(err error) bool {
	var validationErrors validator.ValidationErrors
	return errors.As(err, &validationErrors)
}

// sendDomainError maps the service error taxonomy onto HTTP responses.
// Store failures get a generic message; everything else is user-facing.
func sendDomainError(c *fiber.Ctx, logger *zerolog.Logger, err error, fallback string) error {
	switch {
	case isValidationError(err), service.IsValidation(err):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case service.IsPolicyViolation(err):
		var policyErr *service.PolicyViolationError
		if errors.As(err, &policyErr) && policyErr.RetryAfter > 0 {
			return utils.SendErrorWithRetry(c, fiber.StatusConflict, err.Error(), policyErr.RetryAfter)
		}
		return utils.SendError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, service.ErrNotRequestOwner),
		errors.Is(err, service.ErrEscalationStudentOnly):
		return utils.SendError(c, fiber.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrRequestNotFound),
		errors.Is(err, service.ErrFAQNotFound),
		errors.Is(err, service.ErrAnnouncementNotFound),
		errors.Is(err, service.ErrUserNotFound):
		return utils.SendError(c, fiber.StatusNotFound, err.Error())
	default:
		logger.Error().Err(err).Msg(fallback)
		return utils.SendError(c, fiber.StatusInternalServerError, fallback)
	}
}
