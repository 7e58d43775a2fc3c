package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Vehicle struct {
	ID                    uuid.UUID  `json:"id" db:"id"`
	OwnerIdentity         string     `json:"owner_identity" db:"owner_identity"`
	PreviousOwnerIdentity *string    `json:"previous_owner_identity,omitempty" db:"previous_owner_identity"`
	LastTransferredAt     *time.Time `json:"last_transferred_at,omitempty" db:"last_transferred_at"`
	Make                  string     `json:"make" db:"make"`
	Model                 string     `json:"model" db:"model"`
	Year                  int        `json:"year" db:"year"`
	PlateNumber           string     `json:"plate_number" db:"plate_number"`
	CreatedAt             time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at" db:"updated_at"`
}

// VehicleSnapshot is the immutable copy of the descriptive fields captured
// when a transfer request is created, so the request stays displayable even
// after the vehicle changes hands again. Stored as jsonb.
type VehicleSnapshot struct {
	Make        string `json:"make"`
	Model       string `json:"model"`
	Year        int    `json:"year"`
	PlateNumber string `json:"plate_number"`
}

func NewVehicleSnapshot(v *Vehicle) VehicleSnapshot {
	return VehicleSnapshot{
		Make:        v.Make,
		Model:       v.Model,
		Year:        v.Year,
		PlateNumber: v.PlateNumber,
	}
}

func (s VehicleSnapshot) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *VehicleSnapshot) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("unsupported vehicle snapshot type %T", src)
	}
}

// Label is the short display name used in notification copy.
func (s VehicleSnapshot) Label() string {
	return fmt.Sprintf("%s %s (%s)", s.Make, s.Model, s.PlateNumber)
}
