package vehicle

import (
	"context"

	"github.com/google/uuid"

	"garasiku/internal/domain"
	"garasiku/internal/repository"
	"garasiku/internal/service/transfer"
)

// Service is the owner-scoped read surface the client needs around the
// transfer flow: the garage list, a single vehicle, and its transfer
// history. Vehicle writes stay with the coordinator's accept transition.
type Service interface {
	ListByOwner(ctx context.Context, identity string, params domain.PaginationParams) (domain.PaginatedResponse[domain.Vehicle], error)
	GetByID(ctx context.Context, id uuid.UUID, identity string) (*domain.Vehicle, error)
	History(ctx context.Context, id uuid.UUID, identity string) ([]domain.TransferLog, error)
}

type service struct {
	store repository.TxStore
}

func NewService(store repository.TxStore) Service {
	return &service{store: store}
}

func (s *service) ListByOwner(ctx context.Context, identity string, params domain.PaginationParams) (domain.PaginatedResponse[domain.Vehicle], error) {
	vehicles, total, err := s.store.Repos().Vehicle.ListByOwner(ctx, identity, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Vehicle]{}, err
	}
	return domain.NewPaginatedResponse(vehicles, params.Page, params.PageSize, total), nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID, identity string) (*domain.Vehicle, error) {
	v, err := s.get(ctx, id, identity)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (s *service) History(ctx context.Context, id uuid.UUID, identity string) ([]domain.TransferLog, error) {
	if _, err := s.get(ctx, id, identity); err != nil {
		return nil, err
	}
	return s.store.Repos().TransferLog.ListByVehicle(ctx, id)
}

// get hides vehicles the caller does not own behind ErrNotFound, the same
// way the coordinator hides other people's transfer requests.
func (s *service) get(ctx context.Context, id uuid.UUID, identity string) (*domain.Vehicle, error) {
	v, err := s.store.Repos().Vehicle.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !transfer.SameIdentity(v.OwnerIdentity, identity) {
		return nil, domain.ErrNotFound
	}
	return v, nil
}
