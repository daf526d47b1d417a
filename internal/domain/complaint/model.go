package complaint

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Complaint statuses. Transitions are free-form in both directions; nothing
// in the model forbids reopening a resolved complaint.
const (
	StatusActive   = "active"
	StatusResolved = "resolved"
)

// Complaint is a patient-reported symptom, optionally linked to the
// treatment course addressing it.
type Complaint struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	OwnerID       uuid.UUID  `db:"owner_id" json:"owner_id"`
	CourseID      *uuid.UUID `db:"course_id" json:"course_id,omitempty"`
	ComplaintText string     `db:"complaint_text" json:"complaint_text"`
	StartDate     *time.Time `db:"start_date" json:"start_date,omitempty"`
	Status        string     `db:"status" json:"status"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
}

// SortNewestFirst orders complaints by creation time descending, ties broken
// by id descending, matching the record listing rule.
func SortNewestFirst(complaints []*Complaint) {
	sort.SliceStable(complaints, func(i, j int) bool {
		if !complaints[i].CreatedAt.Equal(complaints[j].CreatedAt) {
			return complaints[i].CreatedAt.After(complaints[j].CreatedAt)
		}
		return complaints[i].ID.String() > complaints[j].ID.String()
	})
}
