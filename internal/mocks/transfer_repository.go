package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"garasiku/internal/domain"
)

type TransferRepository struct {
	mock.Mock
}

func (m *TransferRepository) Create(ctx context.Context, req *domain.TransferRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *TransferRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.TransferRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransferRequest), args.Error(1)
}

func (m *TransferRepository) GetOpenByVehicle(ctx context.Context, vehicleID uuid.UUID) (*domain.TransferRequest, error) {
	args := m.Called(ctx, vehicleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransferRequest), args.Error(1)
}

func (m *TransferRepository) ListIncoming(ctx context.Context, identity string, recentTerminalSince time.Time, params domain.PaginationParams) ([]domain.TransferRequest, int64, error) {
	args := m.Called(ctx, identity, recentTerminalSince, params)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.TransferRequest), args.Get(1).(int64), args.Error(2)
}

func (m *TransferRepository) ListOutgoing(ctx context.Context, identity string, recentTerminalSince time.Time, params domain.PaginationParams) ([]domain.TransferRequest, int64, error) {
	args := m.Called(ctx, identity, recentTerminalSince, params)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.TransferRequest), args.Get(1).(int64), args.Error(2)
}

func (m *TransferRepository) ListAwaitingByRecipient(ctx context.Context, identity string) ([]domain.TransferRequest, error) {
	args := m.Called(ctx, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TransferRequest), args.Error(1)
}

func (m *TransferRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.TransferStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *TransferRepository) ExpireOpenBefore(ctx context.Context, now time.Time) ([]domain.TransferRequest, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TransferRequest), args.Error(1)
}
