package transfer

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"garasiku/internal/domain"
	"garasiku/internal/repository"
	"garasiku/internal/service/changefeed"
	"garasiku/internal/service/notification"
)

// recentTerminalWindow controls how long resolved requests keep showing up
// in the incoming/outgoing lists for history display.
const recentTerminalWindow = 30 * 24 * time.Hour

// IdentityResolver reports whether an account exists for an identity, used
// at creation time to pick the initial request status.
type IdentityResolver interface {
	Exists(ctx context.Context, identity string) (bool, error)
}

// Service is the transfer coordinator: stateless logic over the
// transactional store. It may be called concurrently from any number of
// devices; correctness is delegated to RunInTx.
type Service interface {
	Create(ctx context.Context, fromIdentity string, input domain.CreateTransferInput) (*domain.TransferRequest, error)
	GetByID(ctx context.Context, id uuid.UUID, identity string) (*domain.TransferRequest, error)
	ListIncoming(ctx context.Context, identity string, params domain.PaginationParams) (domain.PaginatedResponse[domain.TransferRequest], error)
	ListOutgoing(ctx context.Context, identity string, params domain.PaginationParams) (domain.PaginatedResponse[domain.TransferRequest], error)
	Accept(ctx context.Context, id uuid.UUID, actingIdentity string) (*domain.Vehicle, error)
	Decline(ctx context.Context, id uuid.UUID, actingIdentity string) (*domain.TransferRequest, error)
	Activate(ctx context.Context, toIdentity string) (int, error)
	SweepExpired(ctx context.Context, now time.Time) (int, error)
}

type service struct {
	store    repository.TxStore
	resolver IdentityResolver
	notifSvc notification.Service
	feed     changefeed.Publisher
	ttl      time.Duration
	notifTTL time.Duration
}

func NewService(store repository.TxStore, resolver IdentityResolver, notifSvc notification.Service, feed changefeed.Publisher, ttl, notifTTL time.Duration) Service {
	if ttl <= 0 {
		ttl = domain.DefaultTransferTTL
	}
	return &service{
		store:    store,
		resolver: resolver,
		notifSvc: notifSvc,
		feed:     feed,
		ttl:      ttl,
		notifTTL: notifTTL,
	}
}

// Identities are emails; compare them case-insensitively so the guards do
// not depend on how the caller typed the address.
func normalizeIdentity(identity string) string {
	return strings.ToLower(strings.TrimSpace(identity))
}

// SameIdentity reports whether two identities refer to the same account.
func SameIdentity(a, b string) bool {
	return normalizeIdentity(a) == normalizeIdentity(b)
}

func (s *service) Create(ctx context.Context, fromIdentity string, input domain.CreateTransferInput) (*domain.TransferRequest, error) {
	from := normalizeIdentity(fromIdentity)
	to := normalizeIdentity(input.ToIdentity)

	if from == to {
		return nil, domain.ErrSelfTransfer
	}

	registered, err := s.resolver.Exists(ctx, to)
	if err != nil {
		return nil, err
	}

	status := domain.TransferPending
	if !registered {
		status = domain.TransferAwaitingRegistration
	}

	now := time.Now().UTC()
	req := &domain.TransferRequest{
		ID:                  uuid.New(),
		VehicleID:           input.VehicleID,
		FromIdentity:        from,
		ToIdentity:          to,
		RecipientRegistered: registered,
		Message:             input.Message,
		Status:              status,
		ExpiresAt:           now.Add(s.ttl),
	}

	var notif *domain.Notification
	err = s.store.RunInTx(ctx, func(r *repository.Repositories) error {
		vehicle, err := r.Vehicle.GetByID(ctx, input.VehicleID)
		if err != nil {
			return err
		}
		if normalizeIdentity(vehicle.OwnerIdentity) != from {
			return domain.ErrNotOwner
		}

		open, err := r.Transfer.GetOpenByVehicle(ctx, input.VehicleID)
		if err != nil {
			return err
		}
		if open != nil {
			return domain.ErrTransferAlreadyPending
		}

		req.VehicleSnapshot = domain.NewVehicleSnapshot(vehicle)
		if err := r.Transfer.Create(ctx, req); err != nil {
			return err
		}

		notif = s.notifSvc.Build(to, domain.NotifTransferRequested, domain.NotificationPayload{
			TransferRequestID:    req.ID,
			VehicleSnapshot:      req.VehicleSnapshot,
			CounterpartyIdentity: from,
		}, domain.PriorityHigh, true, s.notifTTL)

		return r.Notification.Create(ctx, notif)
	})
	if err != nil {
		return nil, err
	}

	s.notifSvc.Dispatch(ctx, notif)
	s.publishTransfer(ctx, req)

	return req, nil
}

// GetByID is visible to the two parties only; anyone else gets ErrNotFound
// rather than a permission hint. A stale open request past its deadline is
// flipped to Expired as a by-product of the read.
func (s *service) GetByID(ctx context.Context, id uuid.UUID, identity string) (*domain.TransferRequest, error) {
	req, err := s.store.Repos().Transfer.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	caller := normalizeIdentity(identity)
	if req.FromIdentity != caller && req.ToIdentity != caller {
		return nil, domain.ErrNotFound
	}

	now := time.Now().UTC()
	if !req.Status.Terminal() && IsExpired(req, now) {
		err := s.store.RunInTx(ctx, func(r *repository.Repositories) error {
			return r.Transfer.UpdateStatus(ctx, req.ID, domain.TransferExpired)
		})
		if err != nil && !errors.Is(err, domain.ErrAlreadyResolved) {
			return nil, err
		}
		req.Status = domain.TransferExpired
		req.UpdatedAt = now
		s.publishTransfer(ctx, req)
	}

	return req, nil
}

func (s *service) ListIncoming(ctx context.Context, identity string, params domain.PaginationParams) (domain.PaginatedResponse[domain.TransferRequest], error) {
	since := time.Now().UTC().Add(-recentTerminalWindow)
	requests, total, err := s.store.Repos().Transfer.ListIncoming(ctx, normalizeIdentity(identity), since, params)
	if err != nil {
		return domain.PaginatedResponse[domain.TransferRequest]{}, err
	}
	return domain.NewPaginatedResponse(requests, params.Page, params.PageSize, total), nil
}

func (s *service) ListOutgoing(ctx context.Context, identity string, params domain.PaginationParams) (domain.PaginatedResponse[domain.TransferRequest], error) {
	since := time.Now().UTC().Add(-recentTerminalWindow)
	requests, total, err := s.store.Repos().Transfer.ListOutgoing(ctx, normalizeIdentity(identity), since, params)
	if err != nil {
		return domain.PaginatedResponse[domain.TransferRequest]{}, err
	}
	return domain.NewPaginatedResponse(requests, params.Page, params.PageSize, total), nil
}

// Accept commits the ownership handoff: status flip, vehicle mutation,
// transfer log append and the sender's notification all land in one
// transaction or not at all. Expiry is re-evaluated inside that same
// transaction, so an Accept racing the deadline cannot slip through a
// read-then-act window; the expired flip is committed before the error is
// reported.
func (s *service) Accept(ctx context.Context, id uuid.UUID, actingIdentity string) (*domain.Vehicle, error) {
	acting := normalizeIdentity(actingIdentity)

	var (
		req     *domain.TransferRequest
		vehicle *domain.Vehicle
		notif   *domain.Notification
		expired bool
	)

	err := s.store.RunInTx(ctx, func(r *repository.Repositories) error {
		req, vehicle, notif, expired = nil, nil, nil, false

		var err error
		req, err = r.Transfer.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if req.ToIdentity != acting {
			return domain.ErrNotRecipient
		}
		if req.Status.Terminal() {
			return domain.ErrAlreadyResolved
		}

		now := time.Now().UTC()
		if IsExpired(req, now) {
			expired = true
			return r.Transfer.UpdateStatus(ctx, req.ID, domain.TransferExpired)
		}

		vehicle, err = r.Vehicle.GetByID(ctx, req.VehicleID)
		if err != nil {
			return err
		}

		if err := r.Transfer.UpdateStatus(ctx, req.ID, domain.TransferAccepted); err != nil {
			return err
		}

		previousOwner := vehicle.OwnerIdentity
		if err := r.Vehicle.TransferOwnership(ctx, vehicle.ID, req.ToIdentity, previousOwner, now); err != nil {
			return err
		}
		vehicle.OwnerIdentity = req.ToIdentity
		vehicle.PreviousOwnerIdentity = &previousOwner
		vehicle.LastTransferredAt = &now

		if err := r.TransferLog.Create(ctx, &domain.TransferLog{
			ID:                uuid.New(),
			VehicleID:         req.VehicleID,
			FromIdentity:      req.FromIdentity,
			ToIdentity:        req.ToIdentity,
			TransferRequestID: req.ID,
			CommittedAt:       now,
		}); err != nil {
			return err
		}

		req.Status = domain.TransferAccepted
		req.UpdatedAt = now

		notif = s.notifSvc.Build(req.FromIdentity, domain.NotifTransferAccepted, domain.NotificationPayload{
			TransferRequestID:    req.ID,
			VehicleSnapshot:      req.VehicleSnapshot,
			CounterpartyIdentity: req.ToIdentity,
		}, domain.PriorityNormal, false, s.notifTTL)

		return r.Notification.Create(ctx, notif)
	})
	if err != nil {
		return nil, err
	}

	if expired {
		req.Status = domain.TransferExpired
		s.publishTransfer(ctx, req)
		return nil, domain.ErrRequestExpired
	}

	s.notifSvc.Dispatch(ctx, notif)
	s.publishTransfer(ctx, req)
	s.publishVehicle(ctx, vehicle, req)

	return vehicle, nil
}

// Decline shares Accept's guards but never touches the vehicle and never
// writes a transfer log row.
func (s *service) Decline(ctx context.Context, id uuid.UUID, actingIdentity string) (*domain.TransferRequest, error) {
	acting := normalizeIdentity(actingIdentity)

	var (
		req     *domain.TransferRequest
		expired bool
	)

	err := s.store.RunInTx(ctx, func(r *repository.Repositories) error {
		req, expired = nil, false

		var err error
		req, err = r.Transfer.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if req.ToIdentity != acting {
			return domain.ErrNotRecipient
		}
		if req.Status.Terminal() {
			return domain.ErrAlreadyResolved
		}

		now := time.Now().UTC()
		if IsExpired(req, now) {
			expired = true
			return r.Transfer.UpdateStatus(ctx, req.ID, domain.TransferExpired)
		}

		if err := r.Transfer.UpdateStatus(ctx, req.ID, domain.TransferDeclined); err != nil {
			return err
		}
		req.Status = domain.TransferDeclined
		req.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}

	if expired {
		req.Status = domain.TransferExpired
		s.publishTransfer(ctx, req)
		return nil, domain.ErrRequestExpired
	}

	s.publishTransfer(ctx, req)
	return req, nil
}

// Activate flips an identity's AwaitingRegistration requests to Pending once
// the recipient has completed account creation. Requests already past their
// deadline expire instead. Pure status flips; ownership never changes here.
func (s *service) Activate(ctx context.Context, toIdentity string) (int, error) {
	to := normalizeIdentity(toIdentity)

	var activated int
	var touched []*domain.TransferRequest

	err := s.store.RunInTx(ctx, func(r *repository.Repositories) error {
		activated = 0
		touched = touched[:0]

		requests, err := r.Transfer.ListAwaitingByRecipient(ctx, to)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		for i := range requests {
			req := &requests[i]
			next := domain.TransferPending
			if IsExpired(req, now) {
				next = domain.TransferExpired
			}
			if err := r.Transfer.UpdateStatus(ctx, req.ID, next); err != nil {
				return err
			}
			req.Status = next
			req.UpdatedAt = now
			if next == domain.TransferPending {
				activated++
			}
			touched = append(touched, req)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	for _, req := range touched {
		s.publishTransfer(ctx, req)
	}

	return activated, nil
}

// SweepExpired flips every open request past its deadline. Purely for list
// freshness: the transactional re-check in Accept/Decline already protects
// correctness without it.
func (s *service) SweepExpired(ctx context.Context, now time.Time) (int, error) {
	expired, err := s.store.Repos().Transfer.ExpireOpenBefore(ctx, now)
	if err != nil {
		return 0, err
	}

	for i := range expired {
		s.publishTransfer(ctx, &expired[i])
	}

	return len(expired), nil
}

func (s *service) publishTransfer(ctx context.Context, req *domain.TransferRequest) {
	if s.feed == nil {
		return
	}
	event := changefeed.Event{
		Type:     changefeed.EventTransferUpdated,
		RecordID: req.ID,
		At:       time.Now().UTC(),
	}
	s.feed.Publish(ctx, req.FromIdentity, event)
	s.feed.Publish(ctx, req.ToIdentity, event)
}

func (s *service) publishVehicle(ctx context.Context, vehicle *domain.Vehicle, req *domain.TransferRequest) {
	if s.feed == nil {
		return
	}
	event := changefeed.Event{
		Type:     changefeed.EventVehicleUpdated,
		RecordID: vehicle.ID,
		At:       time.Now().UTC(),
	}
	s.feed.Publish(ctx, req.FromIdentity, event)
	s.feed.Publish(ctx, req.ToIdentity, event)
}
