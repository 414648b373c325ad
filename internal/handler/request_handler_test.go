package handler

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/campusdesk/support-api/internal/dto"
	"github.com/campusdesk/support-api/internal/models"
	"github.com/campusdesk/support-api/internal/service"
)

func newRequestApp(requests service.RequestService, escalations service.EscalationService, notes service.NoteService) *fiber.App {
	app := fiber.New()
	withActor(app, service.Actor{UserID: "student-1", Email: "student@campus.test", Role: models.RoleStudent})
	NewRequestHandler(requests, escalations, notes, testLogger()).Register(app.Group("/requests"))
	return app
}

func TestEscalateReturnsNewPriority(t *testing.T) {
	escalations := &mockEscalationService{
		escalateFn: func(ctx context.Context, requestID string, actor service.Actor, reason string) (dto.EscalateResponse, error) {
			require.Equal(t, "req-1", requestID)
			require.Equal(t, "student-1", actor.UserID)
			require.Equal(t, "no reply for two weeks", reason)
			return dto.EscalateResponse{NewPriority: 4, Message: "Priority escalated to 4"}, nil
		},
	}
	app := newRequestApp(&mockRequestService{}, escalations, &mockNoteService{})

	body := strings.NewReader(`{"reason":"no reply for two weeks"}`)
	request := httptest.NewRequest(fiber.MethodPost, "/requests/req-1/escalate", body)
	request.Header.Set("Content-Type", fiber.MIMEApplicationJSON)

	response, err := app.Test(request)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, response.StatusCode)

	decoded := decodeResponse(t, response)
	require.True(t, decoded.Success)
}

func TestEscalateBlockedMapsToConflict(t *testing.T) {
	escalations := &mockEscalationService{
		escalateFn: func(ctx context.Context, requestID string, actor service.Actor, reason string) (dto.EscalateResponse, error) {
			return dto.EscalateResponse{}, &service.PolicyViolationError{
				Reason:     "wait 30 minutes before next escalation",
				RetryAfter: 30 * time.Minute,
			}
		},
	}
	app := newRequestApp(&mockRequestService{}, escalations, &mockNoteService{})

	body := strings.NewReader(`{"reason":"still waiting"}`)
	request := httptest.NewRequest(fiber.MethodPost, "/requests/req-1/escalate", body)
	request.Header.Set("Content-Type", fiber.MIMEApplicationJSON)

	response, err := app.Test(request)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusConflict, response.StatusCode)
	require.Equal(t, "1800", response.Header.Get(fiber.HeaderRetryAfter))

	decoded := decodeResponse(t, response)
	require.False(t, decoded.Success)
	require.Equal(t, "wait 30 minutes before next escalation", decoded.Message)
}

func TestCanEscalateCheck(t *testing.T) {
	escalations := &mockEscalationService{
		checkFn: func(ctx context.Context, requestID string, actor service.Actor) (dto.EscalationCheckResponse, error) {
			return dto.EscalationCheckResponse{Allowed: false, Reason: "maximum priority reached"}, nil
		},
	}
	app := newRequestApp(&mockRequestService{}, escalations, &mockNoteService{})

	response, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/requests/req-1/can-escalate", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, response.StatusCode)
}

func TestGetRequestOwnershipMapsToForbidden(t *testing.T) {
	requests := &mockRequestService{
		getFn: func(ctx context.Context, id string, actor service.Actor) (dto.RequestResponse, error) {
			return dto.RequestResponse{}, service.ErrNotRequestOwner
		},
	}
	app := newRequestApp(requests, &mockEscalationService{}, &mockNoteService{})

	response, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/requests/req-1", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, response.StatusCode)
}

func TestCreateRequestRejectsMalformedBody(t *testing.T) {
	app := newRequestApp(&mockRequestService{}, &mockEscalationService{}, &mockNoteService{})

	request := httptest.NewRequest(fiber.MethodPost, "/requests", strings.NewReader("{not json"))
	request.Header.Set("Content-Type", fiber.MIMEApplicationJSON)

	response, err := app.Test(request)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, response.StatusCode)
}
