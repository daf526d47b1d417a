package vitals

import (
	"time"

	"github.com/google/uuid"
)

// Measurement is a single vitals reading, e.g. blood pressure, weight or
// blood sugar.
type Measurement struct {
	ID        uuid.UUID `db:"id" json:"id"`
	OwnerID   uuid.UUID `db:"owner_id" json:"owner_id"`
	Timestamp time.Time `db:"timestamp" json:"timestamp"`
	Type      string    `db:"type" json:"type"`
	Value     float64   `db:"value" json:"value"`
	Unit      string    `db:"unit" json:"unit"`
}
