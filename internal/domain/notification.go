package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID                uuid.UUID            `json:"id" db:"id"`
	RecipientIdentity string               `json:"recipient_identity" db:"recipient_identity"`
	Kind              NotificationKind     `json:"kind" db:"kind"`
	Title             string               `json:"title" db:"title"`
	Body              string               `json:"body" db:"body"`
	Payload           json.RawMessage      `json:"payload,omitempty" db:"payload"`
	Priority          NotificationPriority `json:"priority" db:"priority"`
	ActionRequired    bool                 `json:"action_required" db:"action_required"`
	IsRead            bool                 `json:"is_read" db:"is_read"`
	ReadAt            *time.Time           `json:"read_at,omitempty" db:"read_at"`
	CreatedAt         time.Time            `json:"created_at" db:"created_at"`
	ExpiresAt         *time.Time           `json:"expires_at,omitempty" db:"expires_at"`
}

type NotificationKind string

const (
	NotifTransferRequested NotificationKind = "TransferRequested"
	NotifTransferAccepted  NotificationKind = "TransferAccepted"
)

type NotificationPriority string

const (
	PriorityNormal NotificationPriority = "normal"
	PriorityHigh   NotificationPriority = "high"
)

// NotificationPayload is the structured payload attached to transfer
// lifecycle notifications.
type NotificationPayload struct {
	TransferRequestID    uuid.UUID       `json:"transfer_request_id"`
	VehicleSnapshot      VehicleSnapshot `json:"vehicle_snapshot"`
	CounterpartyIdentity string          `json:"counterparty_identity"`
}
