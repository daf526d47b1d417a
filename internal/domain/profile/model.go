package profile

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the one-per-user body metrics sheet shown on the profile page
// and in the shared snapshot. All measurement fields are optional; they are
// filled in gradually as the user records checkup results.
type Profile struct {
	ID                    uuid.UUID `db:"id" json:"id"`
	UserID                uuid.UUID `db:"user_id" json:"user_id"`
	Address               *string   `db:"address" json:"address,omitempty"`
	AttachedClinic        *string   `db:"attached_clinic" json:"attached_clinic,omitempty"`
	EmergencyContactName  *string   `db:"emergency_contact_name" json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone *string   `db:"emergency_contact_phone" json:"emergency_contact_phone,omitempty"`
	Height                *float64  `db:"height" json:"height,omitempty"`
	Weight                *float64  `db:"weight" json:"weight,omitempty"`
	OptimalWeight         *float64  `db:"optimal_weight" json:"optimal_weight,omitempty"`
	BodyMassIndex         *float64  `db:"body_mass_index" json:"body_mass_index,omitempty"`
	BasalMetabolism       *int      `db:"basal_metabolism" json:"basal_metabolism,omitempty"`
	SkeletalMuscleMass    *float64  `db:"skeletal_muscle_mass" json:"skeletal_muscle_mass,omitempty"`
	FatMassKg             *float64  `db:"fat_mass_kg" json:"fat_mass_kg,omitempty"`
	FatMassPercent        *float64  `db:"fat_mass_percent" json:"fat_mass_percent,omitempty"`
	WaistHipRatio         *float64  `db:"waist_hip_ratio" json:"waist_hip_ratio,omitempty"`
	WaistCircumference    *float64  `db:"waist_circumference" json:"waist_circumference,omitempty"`
	FatCorrection         *float64  `db:"fat_correction" json:"fat_correction,omitempty"`
	MuscleCorrection      *float64  `db:"muscle_correction" json:"muscle_correction,omitempty"`
	VisceralFat           *int      `db:"visceral_fat" json:"visceral_fat,omitempty"`
	SubcutaneousFat       *float64  `db:"subcutaneous_fat" json:"subcutaneous_fat,omitempty"`
	TotalBioAge           *int      `db:"total_bio_age" json:"total_bio_age,omitempty"`
	PhysicalAge           *int      `db:"physical_age" json:"physical_age,omitempty"`
	VascularAge           *int      `db:"vascular_age" json:"vascular_age,omitempty"`
	CardioAge             *int      `db:"cardio_age" json:"cardio_age,omitempty"`
	ImmuneAge             *int      `db:"immune_age" json:"immune_age,omitempty"`
	MetabolicAge          *int      `db:"metabolic_age" json:"metabolic_age,omitempty"`
	JointAge              *int      `db:"joint_age" json:"joint_age,omitempty"`
	KidneyAge             *int      `db:"kidney_age" json:"kidney_age,omitempty"`
	UpdatedAt             time.Time `db:"updated_at" json:"updated_at"`
}
