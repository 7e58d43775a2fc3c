package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"garasiku/internal/domain"
)

type VehicleRepository interface {
	Create(ctx context.Context, vehicle *domain.Vehicle) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Vehicle, error)
	ListByOwner(ctx context.Context, ownerIdentity string, params domain.PaginationParams) ([]domain.Vehicle, int64, error)
	TransferOwnership(ctx context.Context, id uuid.UUID, newOwner, previousOwner string, at time.Time) error
}

type vehicleRepository struct {
	q Querier
}

func NewVehicleRepository(q Querier) VehicleRepository {
	return &vehicleRepository{q: q}
}

func (r *vehicleRepository) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	query := `
		INSERT INTO vehicles (id, owner_identity, make, model, year, plate_number)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	return r.q.QueryRowxContext(ctx, query,
		vehicle.ID, vehicle.OwnerIdentity, vehicle.Make, vehicle.Model,
		vehicle.Year, vehicle.PlateNumber,
	).Scan(&vehicle.CreatedAt, &vehicle.UpdatedAt)
}

func (r *vehicleRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Vehicle, error) {
	var vehicle domain.Vehicle
	query := `SELECT * FROM vehicles WHERE id = $1`
	if err := r.q.GetContext(ctx, &vehicle, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &vehicle, nil
}

func (r *vehicleRepository) ListByOwner(ctx context.Context, ownerIdentity string, params domain.PaginationParams) ([]domain.Vehicle, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM vehicles WHERE owner_identity = $1`
	if err := r.q.GetContext(ctx, &total, countQuery, ownerIdentity); err != nil {
		return nil, 0, err
	}

	var vehicles []domain.Vehicle
	query := `
		SELECT * FROM vehicles
		WHERE owner_identity = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	err := r.q.SelectContext(ctx, &vehicles, query, ownerIdentity, params.PageSize, params.Offset())
	return vehicles, total, err
}

// TransferOwnership is only invoked by the coordinator's accept transition,
// inside the same transaction as the request status flip and the log append.
func (r *vehicleRepository) TransferOwnership(ctx context.Context, id uuid.UUID, newOwner, previousOwner string, at time.Time) error {
	query := `
		UPDATE vehicles
		SET owner_identity = $2, previous_owner_identity = $3, last_transferred_at = $4, updated_at = NOW()
		WHERE id = $1`

	res, err := r.q.ExecContext(ctx, query, id, newOwner, previousOwner, at)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
