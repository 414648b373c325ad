package service

import (
	"context"
	"io"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/campusdesk/support-api/internal/models"
	"github.com/campusdesk/support-api/internal/repository"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

// requestRepoStub keeps requests in memory, keyed by id.
type requestRepoStub struct {
	requests map[string]models.Request
}

func newRequestRepoStub(requests ...models.Request) *requestRepoStub {
	stub := &requestRepoStub{requests: make(map[string]models.Request)}
	for _, request := range requests {
		stub.requests[request.ID] = request
	}
	return stub
}

func (s *requestRepoStub) Create(ctx context.Context, request *models.Request) error {
	request.CreatedAt = time.Now()
	request.UpdatedAt = request.CreatedAt
	s.requests[request.ID] = *request
	return nil
}

func (s *requestRepoStub) GetByID(ctx context.Context, id string) (models.Request, error) {
	request, ok := s.requests[id]
	if !ok {
		return models.Request{}, gorm.ErrRecordNotFound
	}
	return request, nil
}

func (s *requestRepoStub) List(ctx context.Context, filter repository.RequestFilter) ([]models.Request, error) {
	requests := make([]models.Request, 0, len(s.requests))
	for _, request := range s.requests {
		if filter.StudentID != "" && request.StudentID != filter.StudentID {
			continue
		}
		if filter.Status != "" && request.Status != filter.Status {
			continue
		}
		requests = append(requests, request)
	}
	return requests, nil
}

func (s *requestRepoStub) Update(ctx context.Context, id string, updates map[string]interface{}) (models.Request, error) {
	request, ok := s.requests[id]
	if !ok {
		return models.Request{}, gorm.ErrRecordNotFound
	}
	if status, ok := updates["status"].(string); ok {
		request.Status = status
	}
	if response, ok := updates["admin_response"].(string); ok {
		request.AdminResponse = &response
	}
	request.UpdatedAt = time.Now()
	s.requests[id] = request
	return request, nil
}

// escalationRepoStub mirrors the transactional append semantics in memory.
type escalationRepoStub struct {
	requests    *requestRepoStub
	escalations []models.Escalation
}

func (s *escalationRepoStub) ListByRequest(ctx context.Context, requestID string) ([]models.Escalation, error) {
	matched := make([]models.Escalation, 0)
	for i := len(s.escalations) - 1; i >= 0; i-- {
		if s.escalations[i].RequestID == requestID {
			matched = append(matched, s.escalations[i])
		}
	}
	return matched, nil
}

func (s *escalationRepoStub) Append(ctx context.Context, escalation *models.Escalation, decide repository.EscalationDecision) (models.Request, error) {
	request, ok := s.requests.requests[escalation.RequestID]
	if !ok {
		return models.Request{}, gorm.ErrRecordNotFound
	}

	var lastEscalatedAt *time.Time
	if history, _ := s.ListByRequest(ctx, escalation.RequestID); len(history) > 0 {
		lastEscalatedAt = &history[0].CreatedAt
	}

	if decide != nil {
		if err := decide(request, lastEscalatedAt); err != nil {
			return models.Request{}, err
		}
	}

	s.escalations = append(s.escalations, *escalation)
	if request.Priority < models.MaxPriority {
		request.Priority++
	}
	s.requests.requests[request.ID] = request

	return request, nil
}

// memoryActivityRepo collects audit entries in memory.
type memoryActivityRepo struct {
	entries []models.ActivityLog
	err     error
}

func (m *memoryActivityRepo) Create(ctx context.Context, entry *models.ActivityLog) error {
	if m.err != nil {
		return m.err
	}
	entry.ID = uint(len(m.entries) + 1)
	entry.CreatedAt = time.Now()
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *memoryActivityRepo) List(ctx context.Context, filter repository.ActivityLogFilter) ([]models.ActivityLog, error) {
	entries := append([]models.ActivityLog(nil), m.entries...)
	if filter.Limit > 0 && len(entries) > filter.Limit {
		entries = entries[:filter.Limit]
	}
	return entries, nil
}

func (m *memoryActivityRepo) byAction(action string) []models.ActivityLog {
	matched := make([]models.ActivityLog, 0)
	for _, entry := range m.entries {
		if entry.ActionType == action {
			matched = append(matched, entry)
		}
	}
	return matched
}

func newActivityService(repo repository.ActivityLogRepository) ActivityService {
	return NewActivityService(repo, 500, testLogger())
}
