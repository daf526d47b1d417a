package reminder

import (
	"time"

	"github.com/google/uuid"
)

// Reminder is a recurring medication or measurement prompt. TimeOfDay is an
// "HH:MM" wall-clock string; DaysOfWeek holds repeat days, 0=Monday through
// 6=Sunday. Delivery of notifications is outside this service.
type Reminder struct {
	ID         uuid.UUID `db:"id" json:"id"`
	OwnerID    uuid.UUID `db:"owner_id" json:"owner_id"`
	Title      string    `db:"title" json:"title"`
	TimeOfDay  string    `db:"time_of_day" json:"time_of_day"`
	DaysOfWeek []int32   `db:"days_of_week" json:"days_of_week"`
	IsActive   bool      `db:"is_active" json:"is_active"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
