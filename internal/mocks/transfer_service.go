package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"garasiku/internal/domain"
)

type TransferService struct {
	mock.Mock
}

func (m *TransferService) Create(ctx context.Context, fromIdentity string, input domain.CreateTransferInput) (*domain.TransferRequest, error) {
	args := m.Called(ctx, fromIdentity, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransferRequest), args.Error(1)
}

func (m *TransferService) GetByID(ctx context.Context, id uuid.UUID, identity string) (*domain.TransferRequest, error) {
	args := m.Called(ctx, id, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransferRequest), args.Error(1)
}

func (m *TransferService) ListIncoming(ctx context.Context, identity string, params domain.PaginationParams) (domain.PaginatedResponse[domain.TransferRequest], error) {
	args := m.Called(ctx, identity, params)
	return args.Get(0).(domain.PaginatedResponse[domain.TransferRequest]), args.Error(1)
}

func (m *TransferService) ListOutgoing(ctx context.Context, identity string, params domain.PaginationParams) (domain.PaginatedResponse[domain.TransferRequest], error) {
	args := m.Called(ctx, identity, params)
	return args.Get(0).(domain.PaginatedResponse[domain.TransferRequest]), args.Error(1)
}

func (m *TransferService) Accept(ctx context.Context, id uuid.UUID, actingIdentity string) (*domain.Vehicle, error) {
	args := m.Called(ctx, id, actingIdentity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}

func (m *TransferService) Decline(ctx context.Context, id uuid.UUID, actingIdentity string) (*domain.TransferRequest, error) {
	args := m.Called(ctx, id, actingIdentity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransferRequest), args.Error(1)
}

func (m *TransferService) Activate(ctx context.Context, toIdentity string) (int, error) {
	args := m.Called(ctx, toIdentity)
	return args.Int(0), args.Error(1)
}

func (m *TransferService) SweepExpired(ctx context.Context, now time.Time) (int, error) {
	args := m.Called(ctx, now)
	return args.Int(0), args.Error(1)
}
