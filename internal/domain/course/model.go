package course

import (
	"time"

	"github.com/google/uuid"

	"github.com/healthfolio/healthfolio/internal/domain/complaint"
	"github.com/healthfolio/healthfolio/internal/domain/record"
)

// TreatmentCourse is a named grouping of records and complaints representing
// one treatment episode. Status is a free-form label; "active" is the
// default.
type TreatmentCourse struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	OwnerID   uuid.UUID  `db:"owner_id" json:"owner_id"`
	Name      string     `db:"name" json:"name"`
	StartDate *time.Time `db:"start_date" json:"start_date,omitempty"`
	Status    string     `db:"status" json:"status"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
}

// Detail is the read-side view of a course: the course itself plus its
// linked records and complaints, both newest-first. Empty lists are empty
// slices, never nil.
type Detail struct {
	Course     *TreatmentCourse       `json:"course"`
	Records    []*record.Record       `json:"records"`
	Complaints []*complaint.Complaint `json:"complaints"`
}
