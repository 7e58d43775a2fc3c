package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"garasiku/internal/domain"
	"garasiku/internal/repository"
	"garasiku/internal/service/changefeed"
	"garasiku/internal/service/email"
)

const (
	unreadCacheTTL     = time.Minute
	deliveryAttempts   = 3
	deliveryRetryDelay = 5 * time.Second
)

// Service creates and serves in-app notification records. Record creation is
// split in two: Build constructs the record so the coordinator can persist it
// inside the same transaction as the state transition it accompanies, and
// Dispatch runs after commit to hand the record to the transport.
type Service interface {
	Build(recipient string, kind domain.NotificationKind, payload domain.NotificationPayload, priority domain.NotificationPriority, actionRequired bool, ttl time.Duration) *domain.Notification
	Dispatch(ctx context.Context, notifs ...*domain.Notification)

	List(ctx context.Context, identity string, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error)
	GetUnreadCount(ctx context.Context, identity string) (int64, error)
	MarkAsRead(ctx context.Context, id uuid.UUID, identity string) error
	MarkAllAsRead(ctx context.Context, identity string) error
	Delete(ctx context.Context, id uuid.UUID, identity string) error
	SweepExpired(ctx context.Context, now time.Time) (int64, error)
}

type service struct {
	store     repository.TxStore
	redis     *redis.Client
	transport email.Transport
	feed      changefeed.Publisher
}

func NewService(store repository.TxStore, redisClient *redis.Client, transport email.Transport, feed changefeed.Publisher) Service {
	return &service{
		store:     store,
		redis:     redisClient,
		transport: transport,
		feed:      feed,
	}
}

func (s *service) Build(recipient string, kind domain.NotificationKind, payload domain.NotificationPayload, priority domain.NotificationPriority, actionRequired bool, ttl time.Duration) *domain.Notification {
	title, body := copyFor(kind, payload)
	data, _ := json.Marshal(payload)

	notif := &domain.Notification{
		ID:                uuid.New(),
		RecipientIdentity: recipient,
		Kind:              kind,
		Title:             title,
		Body:              body,
		Payload:           data,
		Priority:          priority,
		ActionRequired:    actionRequired,
	}

	if ttl > 0 {
		expiresAt := time.Now().UTC().Add(ttl)
		notif.ExpiresAt = &expiresAt
	}

	return notif
}

// Dispatch performs the post-commit side effects for already persisted
// notifications: transport delivery, unread cache invalidation and a change
// feed event. Callers must only pass records that committed.
func (s *service) Dispatch(ctx context.Context, notifs ...*domain.Notification) {
	for _, notif := range notifs {
		if notif == nil {
			continue
		}

		s.invalidateUnreadCache(ctx, notif.RecipientIdentity)
		if s.feed != nil {
			s.feed.Publish(ctx, notif.RecipientIdentity, changefeed.Event{
				Type:     changefeed.EventNotificationCreated,
				RecordID: notif.ID,
				At:       time.Now().UTC(),
			})
		}

		if s.transport != nil {
			go s.deliver(notif)
		}
	}
}

// deliver retries a few times so transient transport failures still end in
// an at-least-once delivery. Duplicates are acceptable, lost deliveries are
// not; the in-app record is the source of truth either way.
func (s *service) deliver(notif *domain.Notification) {
	ctx := context.Background()
	for attempt := 1; attempt <= deliveryAttempts; attempt++ {
		if err := s.transport.Deliver(ctx, notif); err == nil {
			return
		}
		time.Sleep(time.Duration(attempt) * deliveryRetryDelay)
	}
}

func (s *service) List(ctx context.Context, identity string, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error) {
	notifications, total, err := s.store.Repos().Notification.ListByRecipient(ctx, identity, unreadOnly, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Notification]{}, err
	}

	return domain.NewPaginatedResponse(notifications, params.Page, params.PageSize, total), nil
}

func (s *service) GetUnreadCount(ctx context.Context, identity string) (int64, error) {
	cacheKey := unreadCacheKey(identity)

	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			if count, err := strconv.ParseInt(cached, 10, 64); err == nil {
				return count, nil
			}
		}
	}

	count, err := s.store.Repos().Notification.CountUnread(ctx, identity)
	if err != nil {
		return 0, err
	}

	if s.redis != nil {
		_ = s.redis.Set(ctx, cacheKey, strconv.FormatInt(count, 10), unreadCacheTTL).Err()
	}

	return count, nil
}

func (s *service) MarkAsRead(ctx context.Context, id uuid.UUID, identity string) error {
	if err := s.store.Repos().Notification.MarkAsRead(ctx, id, identity); err != nil {
		return err
	}
	s.invalidateUnreadCache(ctx, identity)
	return nil
}

func (s *service) MarkAllAsRead(ctx context.Context, identity string) error {
	if err := s.store.Repos().Notification.MarkAllAsRead(ctx, identity); err != nil {
		return err
	}
	s.invalidateUnreadCache(ctx, identity)
	return nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID, identity string) error {
	if err := s.store.Repos().Notification.Delete(ctx, id, identity); err != nil {
		return err
	}
	s.invalidateUnreadCache(ctx, identity)
	return nil
}

func (s *service) SweepExpired(ctx context.Context, now time.Time) (int64, error) {
	deleted, err := s.store.Repos().Notification.DeleteExpired(ctx, now)
	if err != nil {
		return 0, err
	}

	if deleted > 0 && s.redis != nil {
		keys, _ := s.redis.Keys(ctx, "notif:unread:*").Result()
		if len(keys) > 0 {
			_ = s.redis.Del(ctx, keys...).Err()
		}
	}

	return deleted, nil
}

func (s *service) invalidateUnreadCache(ctx context.Context, identity string) {
	if s.redis != nil {
		_ = s.redis.Del(ctx, unreadCacheKey(identity)).Err()
	}
}

func unreadCacheKey(identity string) string {
	return fmt.Sprintf("notif:unread:%s", identity)
}

func copyFor(kind domain.NotificationKind, payload domain.NotificationPayload) (title, body string) {
	vehicle := payload.VehicleSnapshot.Label()

	switch kind {
	case domain.NotifTransferRequested:
		return "Permintaan Transfer Kendaraan",
			fmt.Sprintf("%s ingin mengalihkan kepemilikan %s kepada Anda", payload.CounterpartyIdentity, vehicle)
	case domain.NotifTransferAccepted:
		return "Transfer Kendaraan Diterima",
			fmt.Sprintf("%s menerima transfer %s", payload.CounterpartyIdentity, vehicle)
	default:
		return string(kind), vehicle
	}
}
