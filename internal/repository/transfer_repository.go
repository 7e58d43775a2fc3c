package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"garasiku/internal/domain"
)

// openStatuses renders domain.OpenTransferStatuses as a pq array so every
// query that means "non-terminal" shares the one definition.
func openStatuses() pq.StringArray {
	statuses := make(pq.StringArray, len(domain.OpenTransferStatuses))
	for i, s := range domain.OpenTransferStatuses {
		statuses[i] = string(s)
	}
	return statuses
}

type TransferRepository interface {
	Create(ctx context.Context, req *domain.TransferRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.TransferRequest, error)
	GetOpenByVehicle(ctx context.Context, vehicleID uuid.UUID) (*domain.TransferRequest, error)
	ListIncoming(ctx context.Context, identity string, recentTerminalSince time.Time, params domain.PaginationParams) ([]domain.TransferRequest, int64, error)
	ListOutgoing(ctx context.Context, identity string, recentTerminalSince time.Time, params domain.PaginationParams) ([]domain.TransferRequest, int64, error)
	ListAwaitingByRecipient(ctx context.Context, identity string) ([]domain.TransferRequest, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.TransferStatus) error
	ExpireOpenBefore(ctx context.Context, now time.Time) ([]domain.TransferRequest, error)
}

type transferRepository struct {
	q Querier
}

func NewTransferRepository(q Querier) TransferRepository {
	return &transferRepository{q: q}
}

func (r *transferRepository) Create(ctx context.Context, req *domain.TransferRequest) error {
	query := `
		INSERT INTO transfer_requests
			(id, vehicle_id, from_identity, to_identity, recipient_registered, vehicle_snapshot, message, status, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`

	return r.q.QueryRowxContext(ctx, query,
		req.ID, req.VehicleID, req.FromIdentity, req.ToIdentity,
		req.RecipientRegistered, req.VehicleSnapshot, req.Message,
		req.Status, req.ExpiresAt,
	).Scan(&req.CreatedAt, &req.UpdatedAt)
}

func (r *transferRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.TransferRequest, error) {
	var req domain.TransferRequest
	query := `SELECT * FROM transfer_requests WHERE id = $1`
	if err := r.q.GetContext(ctx, &req, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &req, nil
}

// GetOpenByVehicle returns the vehicle's non-terminal request, or nil when
// there is none. The coordinator uses it to enforce the one-open-request
// invariant at creation time.
func (r *transferRepository) GetOpenByVehicle(ctx context.Context, vehicleID uuid.UUID) (*domain.TransferRequest, error) {
	var req domain.TransferRequest
	query := `
		SELECT * FROM transfer_requests
		WHERE vehicle_id = $1 AND status = ANY($2)
		LIMIT 1`
	err := r.q.GetContext(ctx, &req, query, vehicleID, openStatuses())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *transferRepository) ListIncoming(ctx context.Context, identity string, recentTerminalSince time.Time, params domain.PaginationParams) ([]domain.TransferRequest, int64, error) {
	return r.listForParty(ctx, "to_identity", identity, recentTerminalSince, params)
}

func (r *transferRepository) ListOutgoing(ctx context.Context, identity string, recentTerminalSince time.Time, params domain.PaginationParams) ([]domain.TransferRequest, int64, error) {
	return r.listForParty(ctx, "from_identity", identity, recentTerminalSince, params)
}

// listForParty returns the party's non-terminal requests plus terminal ones
// resolved after recentTerminalSince, newest first, for history display.
func (r *transferRepository) listForParty(ctx context.Context, column, identity string, recentTerminalSince time.Time, params domain.PaginationParams) ([]domain.TransferRequest, int64, error) {
	params.Validate()

	where := ` WHERE ` + column + ` = $1 AND (status = ANY($2) OR updated_at >= $3)`

	var total int64
	countQuery := `SELECT COUNT(*) FROM transfer_requests` + where
	if err := r.q.GetContext(ctx, &total, countQuery, identity,
		openStatuses(), recentTerminalSince); err != nil {
		return nil, 0, err
	}

	var requests []domain.TransferRequest
	query := `SELECT * FROM transfer_requests` + where + `
		ORDER BY created_at DESC
		LIMIT $4 OFFSET $5`
	err := r.q.SelectContext(ctx, &requests, query, identity,
		openStatuses(), recentTerminalSince,
		params.PageSize, params.Offset())
	return requests, total, err
}

func (r *transferRepository) ListAwaitingByRecipient(ctx context.Context, identity string) ([]domain.TransferRequest, error) {
	var requests []domain.TransferRequest
	query := `
		SELECT * FROM transfer_requests
		WHERE to_identity = $1 AND status = $2
		ORDER BY created_at ASC`
	err := r.q.SelectContext(ctx, &requests, query, identity, domain.TransferAwaitingRegistration)
	return requests, err
}

// UpdateStatus flips a request into the given status. The WHERE clause only
// matches non-terminal rows, so a request that already reached a terminal
// status reports ErrAlreadyResolved instead of being overwritten. This is
// what makes duplicate Accept/Decline calls no-ops at the storage level.
func (r *transferRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.TransferStatus) error {
	query := `
		UPDATE transfer_requests
		SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status = ANY($3)`

	res, err := r.q.ExecContext(ctx, query, id, status, openStatuses())
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrAlreadyResolved
	}
	return nil
}

func (r *transferRepository) ExpireOpenBefore(ctx context.Context, now time.Time) ([]domain.TransferRequest, error) {
	var expired []domain.TransferRequest
	query := `
		UPDATE transfer_requests
		SET status = $1, updated_at = NOW()
		WHERE status = ANY($2) AND expires_at < $3
		RETURNING *`
	err := r.q.SelectContext(ctx, &expired, query, domain.TransferExpired,
		openStatuses(), now)
	return expired, err
}
