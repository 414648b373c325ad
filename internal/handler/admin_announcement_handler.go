package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/campusdesk/support-api/internal/dto"
	"github.com/campusdesk/support-api/internal/service"
	"github.com/campusdesk/support-api/internal/utils"
)

// AdminAnnouncementHandler manages admin announcement routes.
type AdminAnnouncementHandler struct {
	service service.AnnouncementService
	logger  zerolog.Logger
}

// NewAdminAnnouncementHandler constructs the handler.
func NewAdminAnnouncementHandler(service service.AnnouncementService, logger zerolog.Logger) *AdminAnnouncementHandler {
	return &AdminAnnouncementHandler{
		service: service,
		logger:  logger.With().Str("component", "admin_announcement_handler").Logger(),
	}
}

// Register attaches routes.
func (h *AdminAnnouncementHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Patch("/:id", h.update)
	router.Delete("/:id", h.remove)
}

func (h *AdminAnnouncementHandler) list(c *fiber.Ctx) error {
	announcements, err := h.service.List(c.Context())
	if err != nil {
		return sendDomainError(c, requestLogger(h.logger, c), err, "failed to list announcements")
	}

	return utils.SendSuccess(c, "announcements retrieved", announcements)
}

func (h *AdminAnnouncementHandler) create(c *fiber.Ctx) error {
	var payload dto.AnnouncementCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	actor := actorFromContext(c)
	announcement, err := h.service.Create(c.Context(), actor, payload)
	if err != nil {
		return sendDomainError(c, requestLogger(h.logger, c), err, "failed to create announcement")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "announcement created", announcement)
}

func (h *AdminAnnouncementHandler) update(c *fiber.Ctx) error {
	var payload dto.AnnouncementUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	actor := actorFromContext(c)
	announcement, err := h.service.Update(c.Context(), c.Params("id"), actor, payload)
	if err != nil {
		return sendDomainError(c, requestLogger(h.logger, c), err, "failed to update announcement")
	}

	return utils.SendSuccess(c, "announcement updated", announcement)
}

func (h *AdminAnnouncementHandler) remove(c *fiber.Ctx) error {
	actor := actorFromContext(c)
	if err := h.service.Delete(c.Context(), c.Params("id"), actor); err != nil {
		return sendDomainError(c, requestLogger(h.logger, c), err, "failed to delete announcement")
	}

	return utils.SendSuccess(c, "announcement deleted", nil)
}
