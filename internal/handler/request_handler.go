package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/campusdesk/support-api/internal/dto"
	"github.com/campusdesk/support-api/internal/middleware"
	"github.com/campusdesk/support-api/internal/service"
	"github.com/campusdesk/support-api/internal/utils"
)

// RequestHandler handles student-facing request endpoints.
type RequestHandler struct {
	requests    service.RequestService
	escalations service.EscalationService
	notes       service.NoteService
	logger      zerolog.Logger
}

// NewRequestHandler constructs the handler.
func NewRequestHandler(requests service.RequestService, escalations service.EscalationService, notes service.NoteService, logger zerolog.Logger) *RequestHandler {
	return &RequestHandler{
		requests:    requests,
		escalations: escalations,
		notes:       notes,
		logger:      logger.With().Str("component", "request_handler").Logger(),
	}
}

// Register wires routes for requests.
func (h *RequestHandler) Register(router fiber.Router) {
	router.Post("", h.create)
	router.Get("/mine", h.listMine)
	router.Get("/resolved", h.listResolved)
	router.Get("/:id", h.get)
	router.Get("/:id/can-escalate", h.checkEscalation)
	router.Post("/:id/escalate", middleware.RateLimit("escalate", 5, time.Minute), h.escalate)
	router.Get("/:id/escalations", h.listEscalations)
	router.Get("/:id/notes", h.listNotes)
}

func (h *RequestHandler) create(c *fiber.Ctx) error {
	var payload dto.CreateRequestRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	actor := actorFromContext(c)
	request, err := h.requests.Create(c.Context(), actor, payload)
	if err != nil {
		return sendDomainError(c, requestLogger(h.logger, c), err, "failed to create request")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "request submitted", request)
}

func (h *RequestHandler) listMine(c *fiber.Ctx) error {
	actor := actorFromContext(c)
	requests, err := h.requests.ListMine(c.Context(), actor)
	if err != nil {
		return sendDomainError(c, requestLogger(h.logger, c), err, "failed to list requests")
	}

	return utils.SendSuccess(c, "requests retrieved", requests)
}

func (h *RequestHandler) listResolved(c *fiber.Ctx) error {
	requests, err := h.requests.ListResolved(c.Context())
	if err != nil {
		return sendDomainError(c, requestLogger(h.logger, c), err, "failed to list resolved requests")
	}

	return utils.SendSuccess(c, "resolved requests retrieved", requests)
}

func (h *RequestHandler) get(c *fiber.Ctx) error {
	actor := actorFromContext(c)
	request, err := h.requests.Get(c.Context(), c.Params("id"), actor)
	if err != nil {
		return sendDomainError(c, requestLogger(h.logger, c), err, "failed to load request")
	}

	return utils.SendSuccess(c, "request retrieved", request)
}

func (h *RequestHandler) checkEscalation(c *fiber.Ctx) error {
	actor := actorFromContext(c)
	decision, err := h.escalations.Check(c.Context(), c.Params("id"), actor)
	if err != nil {
		return sendDomainError(c, requestLogger(h.logger, c), err, "failed to evaluate escalation")
	}

	return utils.SendSuccess(c, "escalation evaluated", decision)
}

func (h *RequestHandler) escalate(c *fiber.Ctx) error {
	var payload dto.EscalateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	actor := actorFromContext(c)
	result, err := h.escalations.Escalate(c.Context(), c.Params("id"), actor, payload.Reason)
	if err != nil {
		return sendDomainError(c, requestLogger(h.logger, c), err, "failed to escalate request")
	}

	return utils.SendSuccess(c, result.Message, result)
}

func (h *RequestHandler) listEscalations(c *fiber.Ctx) error {
	actor := actorFromContext(c)
	escalations, err := h.escalations.History(c.Context(), c.Params("id"), actor)
	if err != nil {
		return sendDomainError(c, requestLogger(h.logger, c), err, "failed to list escalations")
	}

	return utils.SendSuccess(c, "escalations retrieved", escalations)
}

func (h *RequestHandler) listNotes(c *fiber.Ctx) error {
	actor := actorFromContext(c)
	notes, err := h.notes.ListByRequest(c.Context(), c.Params("id"), actor)
	if err != nil {
		return sendDomainError(c, requestLogger(h.logger, c), err, "failed to list notes")
	}

	return utils.SendSuccess(c, "notes retrieved", notes)
}
