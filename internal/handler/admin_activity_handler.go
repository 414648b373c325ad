package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/campusdesk/support-api/internal/dto"
	"github.com/campusdesk/support-api/internal/service"
	"github.com/campusdesk/support-api/internal/utils"
)

// AdminActivityHandler serves the audit trail listing.
type AdminActivityHandler struct {
	service service.ActivityService
	logger  zerolog.Logger
}

// NewAdminActivityHandler constructs the handler.
func NewAdminActivityHandler(service service.ActivityService, logger zerolog.Logger) *AdminActivityHandler {
	return &AdminActivityHandler{
		service: service,
		logger:  logger.With().Str("component", "admin_activity_handler").Logger(),
	}
}

// Register attaches routes.
func (h *AdminActivityHandler) Register(router fiber.Router) {
	router.Get("", h.list)
}

func (h *AdminActivityHandler) list(c *fiber.Ctx) error {
	limit, err := parseQueryInt(c, "limit")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid limit")
	}

	entries, err := h.service.List(c.Context(), dto.ActivityListRequest{
		ActorEmail: c.Query("actor"),
		ActionType: c.Query("action"),
		TargetType: c.Query("target_type"),
		Limit:      limit,
	})
	if err != nil {
		return sendDomainError(c, requestLogger(h.logger, c), err, "failed to list activity logs")
	}

	return utils.SendSuccess(c, "activity logs retrieved", entries)
}
