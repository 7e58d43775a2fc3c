package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"garasiku/internal/domain"
)

type EmailTransport struct {
	mock.Mock
}

func (m *EmailTransport) Deliver(ctx context.Context, notif *domain.Notification) error {
	args := m.Called(ctx, notif)
	return args.Error(0)
}
