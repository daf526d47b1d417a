package record

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Kind discriminates the two record variants. It is fixed at creation and
// never changes for the lifetime of a record.
type Kind string

const (
	KindEncounter   Kind = "encounter"
	KindObservation Kind = "observation"
)

func (k Kind) Valid() bool {
	return k == KindEncounter || k == KindObservation
}

// EncounterDetails holds the fields of a doctor-visit record.
type EncounterDetails struct {
	DoctorName        *string `db:"doctor_name" json:"doctor_name,omitempty"`
	ClinicName        *string `db:"clinic_name" json:"clinic_name,omitempty"`
	PatientComplaints *string `db:"patient_complaints" json:"patient_complaints,omitempty"`
	ConclusionText    *string `db:"conclusion_text" json:"conclusion_text,omitempty"`
	DiagnosisCode     *string `db:"diagnosis_code" json:"diagnosis_code,omitempty"`
	MedicationName    *string `db:"medication_name" json:"medication_name,omitempty"`
}

// ObservationDetails holds the fields of a lab-result record.
type ObservationDetails struct {
	LabName        *string `db:"lab_name" json:"lab_name,omitempty"`
	TestName       *string `db:"test_name" json:"test_name,omitempty"`
	Result         *string `db:"result" json:"result,omitempty"`
	ReferenceRange *string `db:"reference_range" json:"reference_range,omitempty"`
}

// Record is a single clinical event owned by one user. Exactly one of
// Encounter and Observation is non-nil, matching Kind: the variants share
// identity, lifecycle and course linkage but never mix fields.
type Record struct {
	ID            uuid.UUID           `db:"id" json:"id"`
	OwnerID       uuid.UUID           `db:"owner_id" json:"owner_id"`
	Date          time.Time           `db:"date" json:"date"`
	Kind          Kind                `db:"kind" json:"kind"`
	CourseID      *uuid.UUID          `db:"course_id" json:"course_id,omitempty"`
	AttachmentRef *string             `db:"attachment_ref" json:"attachment_ref,omitempty"`
	Encounter     *EncounterDetails   `json:"encounter,omitempty"`
	Observation   *ObservationDetails `json:"observation,omitempty"`
	CreatedAt     time.Time           `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time           `db:"updated_at" json:"updated_at"`
}

// Normalize clears any detail fields that do not belong to the record's kind
// and ensures the matching detail struct is present. Supplying fields of the
// other variant is lenient: they are dropped, not rejected.
func (r *Record) Normalize() {
	switch r.Kind {
	case KindEncounter:
		r.Observation = nil
		if r.Encounter == nil {
			r.Encounter = &EncounterDetails{}
		}
	case KindObservation:
		r.Encounter = nil
		if r.Observation == nil {
			r.Observation = &ObservationDetails{}
		}
	}
}

// SortNewestFirst orders records by date descending, ties broken by id
// descending. Listing order is a user-facing contract, not a storage
// accident.
func SortNewestFirst(records []*Record) {
	sort.SliceStable(records, func(i, j int) bool {
		if !records[i].Date.Equal(records[j].Date) {
			return records[i].Date.After(records[j].Date)
		}
		return records[i].ID.String() > records[j].ID.String()
	})
}
