package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/campusdesk/support-api/internal/models"
)

func TestCanEscalateMaxPriority(t *testing.T) {
	now := time.Now()
	recent := now.Add(-5 * time.Minute)

	decision := CanEscalate(models.MaxPriority, models.StatusOpen, &recent, now, time.Hour)

	require.False(t, decision.Allowed)
	require.Equal(t, "maximum priority reached", decision.Reason)
	require.Zero(t, decision.RetryAfter)
}

func TestCanEscalateTerminalStatus(t *testing.T) {
	now := time.Now()

	for _, status := range []string{models.StatusApproved, models.StatusRejected, models.StatusResolved} {
		decision := CanEscalate(2, status, nil, now, time.Hour)
		require.False(t, decision.Allowed, status)
		require.Equal(t, "request is closed", decision.Reason, status)
	}

	for _, status := range []string{models.StatusOpen, models.StatusUnderReview} {
		decision := CanEscalate(2, status, nil, now, time.Hour)
		require.True(t, decision.Allowed, status)
	}
}

func TestCanEscalateCooldownWindow(t *testing.T) {
	now := time.Now()
	cooldown := time.Hour

	halfway := now.Add(-30 * time.Minute)
	decision := CanEscalate(3, models.StatusOpen, &halfway, now, cooldown)
	require.False(t, decision.Allowed)
	require.Equal(t, "wait 30 minutes before next escalation", decision.Reason)
	require.Equal(t, 30*time.Minute, decision.RetryAfter)

	// Partial minutes round up, never down to zero.
	almost := now.Add(-59*time.Minute - 30*time.Second)
	decision = CanEscalate(3, models.StatusOpen, &almost, now, cooldown)
	require.False(t, decision.Allowed)
	require.Equal(t, "wait 1 minutes before next escalation", decision.Reason)

	expired := now.Add(-61 * time.Minute)
	decision = CanEscalate(3, models.StatusOpen, &expired, now, cooldown)
	require.True(t, decision.Allowed)
	require.Empty(t, decision.Reason)
}

func TestCanEscalateRuleOrder(t *testing.T) {
	// Max priority wins over terminal status and cooldown, terminal status
	// over cooldown.
	now := time.Now()
	recent := now.Add(-time.Minute)

	decision := CanEscalate(models.MaxPriority, models.StatusResolved, &recent, now, time.Hour)
	require.Equal(t, "maximum priority reached", decision.Reason)

	decision = CanEscalate(3, models.StatusResolved, &recent, now, time.Hour)
	require.Equal(t, "request is closed", decision.Reason)
}

func newEscalationFixture(t *testing.T, request models.Request) (*escalationService, *escalationRepoStub) {
	t.Helper()

	requests := newRequestRepoStub(request)
	escalations := &escalationRepoStub{requests: requests}
	svc := NewEscalationService(escalations, requests, time.Hour, testLogger()).(*escalationService)
	return svc, escalations
}

func TestEscalateBumpsPriorityAndRecordsReason(t *testing.T) {
	svc, escalations := newEscalationFixture(t, models.Request{
		ID:        "req-1",
		StudentID: "student-1",
		Status:    models.StatusOpen,
		Priority:  3,
	})

	actor := Actor{UserID: "student-1", Email: "student@campus.test", Role: models.RoleStudent}
	result, err := svc.Escalate(context.Background(), "req-1", actor, "no reply for two weeks")

	require.NoError(t, err)
	require.Equal(t, 4, result.NewPriority)
	require.Equal(t, "Priority escalated to 4", result.Message)
	require.Len(t, escalations.escalations, 1)
	require.Equal(t, "no reply for two weeks", escalations.escalations[0].Reason)
	require.Equal(t, "req-1", escalations.escalations[0].RequestID)
}

func TestEscalateRejectsEmptyReason(t *testing.T) {
	svc, escalations := newEscalationFixture(t, models.Request{
		ID:        "req-1",
		StudentID: "student-1",
		Status:    models.StatusOpen,
		Priority:  2,
	})

	actor := Actor{UserID: "student-1", Role: models.RoleStudent}
	_, err := svc.Escalate(context.Background(), "req-1", actor, "   ")

	require.True(t, IsValidation(err))
	require.Empty(t, escalations.escalations)
}

func TestEscalateBlockedByCooldown(t *testing.T) {
	svc, escalations := newEscalationFixture(t, models.Request{
		ID:        "req-1",
		StudentID: "student-1",
		Status:    models.StatusOpen,
		Priority:  2,
	})

	base := time.Now()
	svc.now = func() time.Time { return base }

	actor := Actor{UserID: "student-1", Role: models.RoleStudent}
	_, err := svc.Escalate(context.Background(), "req-1", actor, "first escalation")
	require.NoError(t, err)

	svc.now = func() time.Time { return base.Add(30 * time.Minute) }
	_, err = svc.Escalate(context.Background(), "req-1", actor, "second escalation")
	require.True(t, IsPolicyViolation(err))
	require.Len(t, escalations.escalations, 1)

	check, err := svc.Check(context.Background(), "req-1", actor)
	require.NoError(t, err)
	require.False(t, check.Allowed)
	require.Equal(t, 30, check.RemainingMinutes)

	svc.now = func() time.Time { return base.Add(61 * time.Minute) }
	_, err = svc.Escalate(context.Background(), "req-1", actor, "second escalation")
	require.NoError(t, err)
	require.Len(t, escalations.escalations, 2)
}

func TestEscalateBlockedAtMaxPriority(t *testing.T) {
	svc, escalations := newEscalationFixture(t, models.Request{
		ID:        "req-1",
		StudentID: "student-1",
		Status:    models.StatusOpen,
		Priority:  models.MaxPriority,
	})

	actor := Actor{UserID: "student-1", Role: models.RoleStudent}
	_, err := svc.Escalate(context.Background(), "req-1", actor, "still stuck")

	require.True(t, IsPolicyViolation(err))
	require.EqualError(t, err, "maximum priority reached")
	require.Empty(t, escalations.escalations)
}

func TestEscalateRequiresOwnership(t *testing.T) {
	svc, _ := newEscalationFixture(t, models.Request{
		ID:        "req-1",
		StudentID: "student-1",
		Status:    models.StatusOpen,
		Priority:  2,
	})

	other := Actor{UserID: "student-2", Role: models.RoleStudent}
	_, err := svc.Escalate(context.Background(), "req-1", other, "not mine")
	require.ErrorIs(t, err, ErrNotRequestOwner)

	// Escalation is a student action. Admins are rejected even though they
	// can read any request.
	admin := Actor{UserID: "admin-1", Email: "admin@campus.test", Role: models.RoleAdmin}
	_, err = svc.Escalate(context.Background(), "req-1", admin, "flagged in triage")
	require.ErrorIs(t, err, ErrEscalationStudentOnly)

	check, err := svc.Check(context.Background(), "req-1", admin)
	require.NoError(t, err)
	require.True(t, check.Allowed)

	_, err = svc.History(context.Background(), "req-1", admin)
	require.NoError(t, err)
}

func TestEscalateUnknownRequest(t *testing.T) {
	svc, _ := newEscalationFixture(t, models.Request{
		ID:        "req-1",
		StudentID: "student-1",
		Status:    models.StatusOpen,
		Priority:  2,
	})

	actor := Actor{UserID: "student-1", Role: models.RoleStudent}
	_, err := svc.Escalate(context.Background(), "missing", actor, "help")
	require.ErrorIs(t, err, ErrRequestNotFound)
}

func TestEscalationHistoryNewestFirst(t *testing.T) {
	svc, _ := newEscalationFixture(t, models.Request{
		ID:        "req-1",
		StudentID: "student-1",
		Status:    models.StatusOpen,
		Priority:  1,
	})

	base := time.Now()
	actor := Actor{UserID: "student-1", Role: models.RoleStudent}

	svc.now = func() time.Time { return base }
	_, err := svc.Escalate(context.Background(), "req-1", actor, "first")
	require.NoError(t, err)

	svc.now = func() time.Time { return base.Add(2 * time.Hour) }
	_, err = svc.Escalate(context.Background(), "req-1", actor, "second")
	require.NoError(t, err)

	history, err := svc.History(context.Background(), "req-1", actor)
	require.NoError(t, err)
	require.Len(t, history, 2)
	require.Equal(t, "second", history[0].Reason)
	require.Equal(t, "first", history[1].Reason)
}
