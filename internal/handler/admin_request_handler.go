package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/campusdesk/support-api/internal/dto"
	"github.com/campusdesk/support-api/internal/service"
	"github.com/campusdesk/support-api/internal/utils"
)

// AdminRequestHandler manages the admin triage queue.
type AdminRequestHandler struct {
	requests service.RequestService
	notes    service.NoteService
	logger   zerolog.Logger
}

// NewAdminRequestHandler constructs the handler.
func NewAdminRequestHandler(requests service.RequestService, notes service.NoteService, logger zerolog.Logger) *AdminRequestHandler {
	return &AdminRequestHandler{
		requests: requests,
		notes:    notes,
		logger:   logger.With().Str("component", "admin_request_handler").Logger(),
	}
}

// Register attaches routes.
func (h *AdminRequestHandler) Register(router fiber.Router) {
	router.Get("", h.listQueue)
	router.Patch("/:id/status", h.updateStatus)
	router.Post("/:id/notes", h.createNote)
}

func (h *AdminRequestHandler) listQueue(c *fiber.Ctx) error {
	requests, err := h.requests.ListQueue(c.Context())
	if err != nil {
		return sendDomainError(c, requestLogger(h.logger, c), err, "failed to list requests")
	}

	return utils.SendSuccess(c, "requests retrieved", requests)
}

func (h *AdminRequestHandler) updateStatus(c *fiber.Ctx) error {
	var payload dto.UpdateStatusRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	actor := actorFromContext(c)
	request, err := h.requests.UpdateStatus(c.Context(), c.Params("id"), actor, payload)
	if err != nil {
		return sendDomainError(c, requestLogger(h.logger, c), err, "failed to update request")
	}

	return utils.SendSuccess(c, "request updated", request)
}

func (h *AdminRequestHandler) createNote(c *fiber.Ctx) error {
	var payload dto.NoteCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	actor := actorFromContext(c)
	note, err := h.notes.Create(c.Context(), c.Params("id"), actor, payload)
	if err != nil {
		return sendDomainError(c, requestLogger(h.logger, c), err, "failed to create note")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "note added", note)
}
