package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"garasiku/internal/domain"
)

type VehicleRepository struct {
	mock.Mock
}

func (m *VehicleRepository) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}

func (m *VehicleRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}

func (m *VehicleRepository) ListByOwner(ctx context.Context, ownerIdentity string, params domain.PaginationParams) ([]domain.Vehicle, int64, error) {
	args := m.Called(ctx, ownerIdentity, params)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Vehicle), args.Get(1).(int64), args.Error(2)
}

func (m *VehicleRepository) TransferOwnership(ctx context.Context, id uuid.UUID, newOwner, previousOwner string, at time.Time) error {
	args := m.Called(ctx, id, newOwner, previousOwner, at)
	return args.Error(0)
}
