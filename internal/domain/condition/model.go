package condition

import "github.com/google/uuid"

// Allergy is a shared lookup entry. Rows are global, not per-user; users
// attach to them through an association table.
type Allergy struct {
	ID   uuid.UUID `db:"id" json:"id"`
	Name string    `db:"name" json:"name"`
}

// ChronicDisease is a shared lookup entry, optionally carrying an ICD-10
// code. User-added entries have no code.
type ChronicDisease struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	ICD10Code *string   `db:"icd10_code" json:"icd10_code,omitempty"`
}

// UserConditions is the set of allergies and chronic diseases attached to
// one account, as shown on the profile page.
type UserConditions struct {
	Allergies       []*Allergy        `json:"allergies"`
	ChronicDiseases []*ChronicDisease `json:"chronic_diseases"`
}
