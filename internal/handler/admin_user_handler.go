package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/campusdesk/support-api/internal/dto"
	"github.com/campusdesk/support-api/internal/service"
	"github.com/campusdesk/support-api/internal/utils"
)

// AdminUserHandler manages user role administration.
type AdminUserHandler struct {
	service service.UserService
	logger  zerolog.Logger
}

// NewAdminUserHandler constructs the handler.
func NewAdminUserHandler(service service.UserService, logger zerolog.Logger) *AdminUserHandler {
	return &AdminUserHandler{
		service: service,
		logger:  logger.With().Str("component", "admin_user_handler").Logger(),
	}
}

// Register attaches routes.
func (h *AdminUserHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Patch("/:id/role", h.changeRole)
}

func (h *AdminUserHandler) list(c *fiber.Ctx) error {
	users, err := h.service.List(c.Context())
	if err != nil {
		return sendDomainError(c, requestLogger(h.logger, c), err, "failed to list users")
	}

	return utils.SendSuccess(c, "users retrieved", users)
}

func (h *AdminUserHandler) changeRole(c *fiber.Ctx) error {
	var payload dto.ChangeRoleRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	actor := actorFromContext(c)
	user, err := h.service.ChangeRole(c.Context(), c.Params("id"), actor, payload.Role)
	if err != nil {
		return sendDomainError(c, requestLogger(h.logger, c), err, "failed to change role")
	}

	return utils.SendSuccess(c, "role updated", user)
}
