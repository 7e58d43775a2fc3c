package domain

import (
	"time"

	"github.com/google/uuid"
)

// TransferLog is the append-only audit trail of committed ownership
// transfers. Rows are written exactly once per accepted transfer and are
// never updated or deleted.
type TransferLog struct {
	ID                uuid.UUID `json:"id" db:"id"`
	VehicleID         uuid.UUID `json:"vehicle_id" db:"vehicle_id"`
	FromIdentity      string    `json:"from_identity" db:"from_identity"`
	ToIdentity        string    `json:"to_identity" db:"to_identity"`
	TransferRequestID uuid.UUID `json:"transfer_request_id" db:"transfer_request_id"`
	CommittedAt       time.Time `json:"committed_at" db:"committed_at"`
}
