package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"garasiku/internal/domain"
)

type TransferLogRepository struct {
	mock.Mock
}

func (m *TransferLogRepository) Create(ctx context.Context, entry *domain.TransferLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *TransferLogRepository) ListByVehicle(ctx context.Context, vehicleID uuid.UUID) ([]domain.TransferLog, error) {
	args := m.Called(ctx, vehicleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TransferLog), args.Error(1)
}
