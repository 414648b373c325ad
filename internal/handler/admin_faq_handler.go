package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/campusdesk/support-api/internal/dto"
	"github.com/campusdesk/support-api/internal/service"
	"github.com/campusdesk/support-api/internal/utils"
)

// AdminFAQHandler manages admin FAQ routes.
type AdminFAQHandler struct {
	service service.FAQService
	logger  zerolog.Logger
}

// NewAdminFAQHandler constructs the handler.
func NewAdminFAQHandler(service service.FAQService, logger zerolog.Logger) *AdminFAQHandler {
	return &AdminFAQHandler{
		service: service,
		logger:  logger.With().Str("component", "admin_faq_handler").Logger(),
	}
}

// Register attaches routes.
func (h *AdminFAQHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Patch("/:id", h.update)
	router.Delete("/:id", h.remove)
}

func (h *AdminFAQHandler) list(c *fiber.Ctx) error {
	faqs, err := h.service.List(c.Context())
	if err != nil {
		return sendDomainError(c, requestLogger(h.logger, c), err, "failed to list faqs")
	}

	return utils.SendSuccess(c, "faqs retrieved", faqs)
}

func (h *AdminFAQHandler) create(c *fiber.Ctx) error {
	var payload dto.FAQCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	actor := actorFromContext(c)
	faq, err := h.service.Create(c.Context(), actor, payload)
	if err != nil {
		return sendDomainError(c, requestLogger(h.logger, c), err, "failed to create faq")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "faq created", faq)
}

func (h *AdminFAQHandler) update(c *fiber.Ctx) error {
	var payload dto.FAQUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	actor := actorFromContext(c)
	faq, err := h.service.Update(c.Context(), c.Params("id"), actor, payload)
	if err != nil {
		return sendDomainError(c, requestLogger(h.logger, c), err, "failed to update faq")
	}

	return utils.SendSuccess(c, "faq updated", faq)
}

func (h *AdminFAQHandler) remove(c *fiber.Ctx) error {
	actor := actorFromContext(c)
	if err := h.service.Delete(c.Context(), c.Params("id"), actor); err != nil {
		return sendDomainError(c, requestLogger(h.logger, c), err, "failed to delete faq")
	}

	return utils.SendSuccess(c, "faq deleted", nil)
}
