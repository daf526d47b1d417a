package profile

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const profCols = `id, user_id, address, attached_clinic, emergency_contact_name, emergency_contact_phone,
	height, weight, optimal_weight, body_mass_index, basal_metabolism, skeletal_muscle_mass,
	fat_mass_kg, fat_mass_percent, waist_hip_ratio, waist_circumference, fat_correction, muscle_correction,
	visceral_fat, subcutaneous_fat,
	total_bio_age, physical_age, vascular_age, cardio_age, immune_age, metabolic_age, joint_age, kidney_age,
	updated_at`

func (r *repoPG) GetByUserID(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	var p Profile
	err := r.pool.QueryRow(ctx, `SELECT `+profCols+` FROM profiles WHERE user_id = $1`, userID).Scan(
		&p.ID, &p.UserID, &p.Address, &p.AttachedClinic, &p.EmergencyContactName, &p.EmergencyContactPhone,
		&p.Height, &p.Weight, &p.OptimalWeight, &p.BodyMassIndex, &p.BasalMetabolism, &p.SkeletalMuscleMass,
		&p.FatMassKg, &p.FatMassPercent, &p.WaistHipRatio, &p.WaistCircumference, &p.FatCorrection, &p.MuscleCorrection,
		&p.VisceralFat, &p.SubcutaneousFat,
		&p.TotalBioAge, &p.PhysicalAge, &p.VascularAge, &p.CardioAge, &p.ImmuneAge, &p.MetabolicAge, &p.JointAge, &p.KidneyAge,
		&p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repoPG) Upsert(ctx context.Context, p *Profile) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO profiles (
			id, user_id, address, attached_clinic, emergency_contact_name, emergency_contact_phone,
			height, weight, optimal_weight, body_mass_index, basal_metabolism, skeletal_muscle_mass,
			fat_mass_kg, fat_mass_percent, waist_hip_ratio, waist_circumference, fat_correction, muscle_correction,
			visceral_fat, subcutaneous_fat,
			total_bio_age, physical_age, vascular_age, cardio_age, immune_age, metabolic_age, joint_age, kidney_age
		) VALUES (
			$1,$2,$3,$4,$5,$6,
			$7,$8,$9,$10,$11,$12,
			$13,$14,$15,$16,$17,$18,
			$19,$20,
			$21,$22,$23,$24,$25,$26,$27,$28
		)
		ON CONFLICT (user_id) DO UPDATE SET
			address=EXCLUDED.address, attached_clinic=EXCLUDED.attached_clinic,
			emergency_contact_name=EXCLUDED.emergency_contact_name, emergency_contact_phone=EXCLUDED.emergency_contact_phone,
			height=EXCLUDED.height, weight=EXCLUDED.weight, optimal_weight=EXCLUDED.optimal_weight,
			body_mass_index=EXCLUDED.body_mass_index, basal_metabolism=EXCLUDED.basal_metabolism,
			skeletal_muscle_mass=EXCLUDED.skeletal_muscle_mass, fat_mass_kg=EXCLUDED.fat_mass_kg,
			fat_mass_percent=EXCLUDED.fat_mass_percent, waist_hip_ratio=EXCLUDED.waist_hip_ratio,
			waist_circumference=EXCLUDED.waist_circumference, fat_correction=EXCLUDED.fat_correction,
			muscle_correction=EXCLUDED.muscle_correction, visceral_fat=EXCLUDED.visceral_fat,
			subcutaneous_fat=EXCLUDED.subcutaneous_fat, total_bio_age=EXCLUDED.total_bio_age,
			physical_age=EXCLUDED.physical_age, vascular_age=EXCLUDED.vascular_age, cardio_age=EXCLUDED.cardio_age,
			immune_age=EXCLUDED.immune_age, metabolic_age=EXCLUDED.metabolic_age, joint_age=EXCLUDED.joint_age,
			kidney_age=EXCLUDED.kidney_age, updated_at=NOW()`,
		p.ID, p.UserID, p.Address, p.AttachedClinic, p.EmergencyContactName, p.EmergencyContactPhone,
		p.Height, p.Weight, p.OptimalWeight, p.BodyMassIndex, p.BasalMetabolism, p.SkeletalMuscleMass,
		p.FatMassKg, p.FatMassPercent, p.WaistHipRatio, p.WaistCircumference, p.FatCorrection, p.MuscleCorrection,
		p.VisceralFat, p.SubcutaneousFat,
		p.TotalBioAge, p.PhysicalAge, p.VascularAge, p.CardioAge, p.ImmuneAge, p.MetabolicAge, p.JointAge, p.KidneyAge,
	)
	return err
}
