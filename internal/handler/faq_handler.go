package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/campusdesk/support-api/internal/service"
	"github.com/campusdesk/support-api/internal/utils"
)

// FAQHandler serves FAQ suggestions to students drafting a request.
type FAQHandler struct {
	service service.FAQService
	logger  zerolog.Logger
}

// NewFAQHandler constructs the handler.
func NewFAQHandler(service service.FAQService, logger zerolog.Logger) *FAQHandler {
	return &FAQHandler{
		service: service,
		logger:  logger.With().Str("component", "faq_handler").Logger(),
	}
}

// Register wires routes for FAQ matching.
func (h *FAQHandler) Register(router fiber.Router) {
	router.Get("/match", h.match)
}

func (h *FAQHandler) match(c *fiber.Ctx) error {
	faqs, err := h.service.Match(c.Context(), c.Query("category"), c.Query("q"))
	if err != nil {
		return sendDomainError(c, requestLogger(h.logger, c), err, "failed to match faqs")
	}

	return utils.SendSuccess(c, "faqs matched", faqs)
}
