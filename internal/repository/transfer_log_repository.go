package repository

import (
	"context"

	"github.com/google/uuid"

	"garasiku/internal/domain"
)

// TransferLogRepository is append-only: rows are never updated or deleted.
type TransferLogRepository interface {
	Create(ctx context.Context, entry *domain.TransferLog) error
	ListByVehicle(ctx context.Context, vehicleID uuid.UUID) ([]domain.TransferLog, error)
}

type transferLogRepository struct {
	q Querier
}

func NewTransferLogRepository(q Querier) TransferLogRepository {
	return &transferLogRepository{q: q}
}

func (r *transferLogRepository) Create(ctx context.Context, entry *domain.TransferLog) error {
	query := `
		INSERT INTO transfer_logs (id, vehicle_id, from_identity, to_identity, transfer_request_id, committed_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.q.ExecContext(ctx, query,
		entry.ID, entry.VehicleID, entry.FromIdentity, entry.ToIdentity,
		entry.TransferRequestID, entry.CommittedAt,
	)
	return err
}

func (r *transferLogRepository) ListByVehicle(ctx context.Context, vehicleID uuid.UUID) ([]domain.TransferLog, error) {
	var entries []domain.TransferLog
	query := `
		SELECT * FROM transfer_logs
		WHERE vehicle_id = $1
		ORDER BY committed_at DESC`
	err := r.q.SelectContext(ctx, &entries, query, vehicleID)
	return entries, err
}
