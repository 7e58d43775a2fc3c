package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"garasiku/internal/domain"
)

type NotificationRepository interface {
	Create(ctx context.Context, notif *domain.Notification) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error)
	ListByRecipient(ctx context.Context, identity string, unreadOnly bool, params domain.PaginationParams) ([]domain.Notification, int64, error)
	MarkAsRead(ctx context.Context, id uuid.UUID, identity string) error
	MarkAllAsRead(ctx context.Context, identity string) error
	CountUnread(ctx context.Context, identity string) (int64, error)
	Delete(ctx context.Context, id uuid.UUID, identity string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type notificationRepository struct {
	q Querier
}

func NewNotificationRepository(q Querier) NotificationRepository {
	return &notificationRepository{q: q}
}

func (r *notificationRepository) Create(ctx context.Context, notif *domain.Notification) error {
	query := `
		INSERT INTO notifications
			(id, recipient_identity, kind, title, body, payload, priority, action_required, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at`

	return r.q.QueryRowxContext(ctx, query,
		notif.ID, notif.RecipientIdentity, notif.Kind, notif.Title, notif.Body,
		notif.Payload, notif.Priority, notif.ActionRequired, notif.ExpiresAt,
	).Scan(&notif.CreatedAt)
}

func (r *notificationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error) {
	var notif domain.Notification
	query := `SELECT * FROM notifications WHERE id = $1`
	if err := r.q.GetContext(ctx, &notif, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &notif, nil
}

func (r *notificationRepository) ListByRecipient(ctx context.Context, identity string, unreadOnly bool, params domain.PaginationParams) ([]domain.Notification, int64, error) {
	params.Validate()

	where := ` WHERE recipient_identity = $1`
	if unreadOnly {
		where += ` AND is_read = false`
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM notifications` + where
	if err := r.q.GetContext(ctx, &total, countQuery, identity); err != nil {
		return nil, 0, err
	}

	var notifications []domain.Notification
	query := `SELECT * FROM notifications` + where + `
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	err := r.q.SelectContext(ctx, &notifications, query, identity, params.PageSize, params.Offset())
	return notifications, total, err
}

// MarkAsRead is scoped to the recipient: a notification can only be mutated
// by the identity it was created for.
func (r *notificationRepository) MarkAsRead(ctx context.Context, id uuid.UUID, identity string) error {
	query := `
		UPDATE notifications
		SET is_read = true, read_at = NOW()
		WHERE id = $1 AND recipient_identity = $2 AND is_read = false`

	res, err := r.q.ExecContext(ctx, query, id, identity)
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

func (r *notificationRepository) MarkAllAsRead(ctx context.Context, identity string) error {
	query := `
		UPDATE notifications
		SET is_read = true, read_at = NOW()
		WHERE recipient_identity = $1 AND is_read = false`
	_, err := r.q.ExecContext(ctx, query, identity)
	return err
}

func (r *notificationRepository) CountUnread(ctx context.Context, identity string) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM notifications WHERE recipient_identity = $1 AND is_read = false`
	err := r.q.GetContext(ctx, &count, query, identity)
	return count, err
}

func (r *notificationRepository) Delete(ctx context.Context, id uuid.UUID, identity string) error {
	query := `DELETE FROM notifications WHERE id = $1 AND recipient_identity = $2`

	res, err := r.q.ExecContext(ctx, query, id, identity)
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

func (r *notificationRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	query := `DELETE FROM notifications WHERE expires_at IS NOT NULL AND expires_at < $1`

	res, err := r.q.ExecContext(ctx, query, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
