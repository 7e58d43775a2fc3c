package domain

import (
	"time"

	"github.com/google/uuid"
)

// DefaultTransferTTL is how long a transfer request stays actionable
// before it becomes eligible for expiry.
const DefaultTransferTTL = 7 * 24 * time.Hour

type TransferRequest struct {
	ID                  uuid.UUID       `json:"id" db:"id"`
	VehicleID           uuid.UUID       `json:"vehicle_id" db:"vehicle_id"`
	FromIdentity        string          `json:"from_identity" db:"from_identity"`
	ToIdentity          string          `json:"to_identity" db:"to_identity"`
	RecipientRegistered bool            `json:"recipient_registered" db:"recipient_registered"`
	VehicleSnapshot     VehicleSnapshot `json:"vehicle_snapshot" db:"vehicle_snapshot"`
	Message             *string         `json:"message,omitempty" db:"message"`
	Status              TransferStatus  `json:"status" db:"status"`
	CreatedAt           time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at" db:"updated_at"`
	ExpiresAt           time.Time       `json:"expires_at" db:"expires_at"`
}

type TransferStatus string

const (
	TransferAwaitingRegistration TransferStatus = "AwaitingRegistration"
	TransferPending              TransferStatus = "Pending"
	TransferAccepted             TransferStatus = "Accepted"
	TransferDeclined             TransferStatus = "Declined"
	TransferExpired              TransferStatus = "Expired"
)

// Terminal reports whether no further transition is permitted.
func (s TransferStatus) Terminal() bool {
	switch s {
	case TransferAccepted, TransferDeclined, TransferExpired:
		return true
	}
	return false
}

// OpenTransferStatuses are the non-terminal statuses. At most one request
// per vehicle may hold one of these at any time.
var OpenTransferStatuses = []TransferStatus{TransferAwaitingRegistration, TransferPending}

type CreateTransferInput struct {
	VehicleID  uuid.UUID `json:"vehicle_id" validate:"required"`
	ToIdentity string    `json:"to_identity" validate:"required,email"`
	Message    *string   `json:"message,omitempty" validate:"omitempty,max=500"`
}
