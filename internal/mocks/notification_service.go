package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"garasiku/internal/domain"
)

type NotificationService struct {
	mock.Mock
}

func (m *NotificationService) Build(recipient string, kind domain.NotificationKind, payload domain.NotificationPayload, priority domain.NotificationPriority, actionRequired bool, ttl time.Duration) *domain.Notification {
	args := m.Called(recipient, kind, payload, priority, actionRequired, ttl)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*domain.Notification)
}

func (m *NotificationService) Dispatch(ctx context.Context, notifs ...*domain.Notification) {
	callArgs := make([]interface{}, 0, len(notifs)+1)
	callArgs = append(callArgs, ctx)
	for _, n := range notifs {
		callArgs = append(callArgs, n)
	}
	m.Called(callArgs...)
}

func (m *NotificationService) List(ctx context.Context, identity string, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error) {
	args := m.Called(ctx, identity, unreadOnly, params)
	return args.Get(0).(domain.PaginatedResponse[domain.Notification]), args.Error(1)
}

func (m *NotificationService) GetUnreadCount(ctx context.Context, identity string) (int64, error) {
	args := m.Called(ctx, identity)
	return args.Get(0).(int64), args.Error(1)
}

func (m *NotificationService) MarkAsRead(ctx context.Context, id uuid.UUID, identity string) error {
	args := m.Called(ctx, id, identity)
	return args.Error(0)
}

func (m *NotificationService) MarkAllAsRead(ctx context.Context, identity string) error {
	args := m.Called(ctx, identity)
	return args.Error(0)
}

func (m *NotificationService) Delete(ctx context.Context, id uuid.UUID, identity string) error {
	args := m.Called(ctx, id, identity)
	return args.Error(0)
}

func (m *NotificationService) SweepExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}
