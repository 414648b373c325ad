package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/campusdesk/support-api/internal/dto"
	"github.com/campusdesk/support-api/internal/service"
	"github.com/campusdesk/support-api/internal/utils"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

// withActor injects the identity locals normally set by the JWT middleware.
func withActor(app *fiber.App, actor service.Actor) {
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", actor.UserID)
		c.Locals("user_email", actor.Email)
		c.Locals("user_role", actor.Role)
		return c.Next()
	})
}

func decodeResponse(t *testing.T, response *http.Response) utils.APIResponse {
	t.Helper()

	body, err := io.ReadAll(response.Body)
	require.NoError(t, err)
	require.NoError(t, response.Body.Close())

	var decoded utils.APIResponse
	require.NoError(t, json.Unmarshal(body, &decoded))
	return decoded
}

// mockRequestService implements service.RequestService with function fields.
type mockRequestService struct {
	createFn       func(ctx context.Context, actor service.Actor, payload dto.CreateRequestRequest) (dto.RequestResponse, error)
	getFn          func(ctx context.Context, id string, actor service.Actor) (dto.RequestResponse, error)
	listMineFn     func(ctx context.Context, actor service.Actor) ([]dto.RequestResponse, error)
	listQueueFn    func(ctx context.Context) ([]dto.RequestResponse, error)
	listResolvedFn func(ctx context.Context) ([]dto.ResolvedRequestResponse, error)
	updateStatusFn func(ctx context.Context, id string, actor service.Actor, payload dto.UpdateStatusRequest) (dto.RequestResponse, error)
}

func (m *mockRequestService) Create(ctx context.Context, actor service.Actor, payload dto.CreateRequestRequest) (dto.RequestResponse, error) {
	return m.createFn(ctx, actor, payload)
}

func (m *mockRequestService) Get(ctx context.Context, id string, actor service.Actor) (dto.RequestResponse, error) {
	return m.getFn(ctx, id, actor)
}

func (m *mockRequestService) ListMine(ctx context.Context, actor service.Actor) ([]dto.RequestResponse, error) {
	return m.listMineFn(ctx, actor)
}

func (m *mockRequestService) ListQueue(ctx context.Context) ([]dto.RequestResponse, error) {
	return m.listQueueFn(ctx)
}

func (m *mockRequestService) ListResolved(ctx context.Context) ([]dto.ResolvedRequestResponse, error) {
	return m.listResolvedFn(ctx)
}

func (m *mockRequestService) UpdateStatus(ctx context.Context, id string, actor service.Actor, payload dto.UpdateStatusRequest) (dto.RequestResponse, error) {
	return m.updateStatusFn(ctx, id, actor, payload)
}

// mockEscalationService implements service.EscalationService.
type mockEscalationService struct {
	checkFn    func(ctx context.Context, requestID string, actor service.Actor) (dto.EscalationCheckResponse, error)
	escalateFn func(ctx context.Context, requestID string, actor service.Actor, reason string) (dto.EscalateResponse, error)
	historyFn  func(ctx context.Context, requestID string, actor service.Actor) ([]dto.EscalationResponse, error)
}

func (m *mockEscalationService) Check(ctx context.Context, requestID string, actor service.Actor) (dto.EscalationCheckResponse, error) {
	return m.checkFn(ctx, requestID, actor)
}

func (m *mockEscalationService) Escalate(ctx context.Context, requestID string, actor service.Actor, reason string) (dto.EscalateResponse, error) {
	return m.escalateFn(ctx, requestID, actor, reason)
}

func (m *mockEscalationService) History(ctx context.Context, requestID string, actor service.Actor) ([]dto.EscalationResponse, error) {
	return m.historyFn(ctx, requestID, actor)
}

// mockNoteService implements service.NoteService.
type mockNoteService struct {
	createFn func(ctx context.Context, requestID string, actor service.Actor, payload dto.NoteCreateRequest) (dto.NoteResponse, error)
	listFn   func(ctx context.Context, requestID string, actor service.Actor) ([]dto.NoteResponse, error)
}

func (m *mockNoteService) Create(ctx context.Context, requestID string, actor service.Actor, payload dto.NoteCreateRequest) (dto.NoteResponse, error) {
	return m.createFn(ctx, requestID, actor, payload)
}

func (m *mockNoteService) ListByRequest(ctx context.Context, requestID string, actor service.Actor) ([]dto.NoteResponse, error) {
	return m.listFn(ctx, requestID, actor)
}

// mockAnnouncementService implements service.AnnouncementService.
type mockAnnouncementService struct {
	listActiveFn func(ctx context.Context) (dto.AnnouncementListResponse, error)
	listFn       func(ctx context.Context) ([]dto.AnnouncementResponse, error)
	createFn     func(ctx context.Context, actor service.Actor, payload dto.AnnouncementCreateRequest) (dto.AnnouncementResponse, error)
	updateFn     func(ctx context.Context, id string, actor service.Actor, payload dto.AnnouncementUpdateRequest) (dto.AnnouncementResponse, error)
	deleteFn     func(ctx context.Context, id string, actor service.Actor) error
}

func (m *mockAnnouncementService) ListActive(ctx context.Context) (dto.AnnouncementListResponse, error) {
	return m.listActiveFn(ctx)
}

func (m *mockAnnouncementService) List(ctx context.Context) ([]dto.AnnouncementResponse, error) {
	return m.listFn(ctx)
}

func (m *mockAnnouncementService) Create(ctx context.Context, actor service.Actor, payload dto.AnnouncementCreateRequest) (dto.AnnouncementResponse, error) {
	return m.createFn(ctx, actor, payload)
}

func (m *mockAnnouncementService) Update(ctx context.Context, id string, actor service.Actor, payload dto.AnnouncementUpdateRequest) (dto.AnnouncementResponse, error) {
	return m.updateFn(ctx, id, actor, payload)
}

func (m *mockAnnouncementService) Delete(ctx context.Context, id string, actor service.Actor) error {
	return m.deleteFn(ctx, id, actor)
}
