package condition

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

func (r *repoPG) ListAllergies(ctx context.Context) ([]*Allergy, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM allergies ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAllergies(rows)
}

func (r *repoPG) ListDiseases(ctx context.Context) ([]*ChronicDisease, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, icd10_code FROM chronic_diseases ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectDiseases(rows)
}

func (r *repoPG) GetAllergyByName(ctx context.Context, name string) (*Allergy, error) {
	var a Allergy
	err := r.pool.QueryRow(ctx, `SELECT id, name FROM allergies WHERE name = $1`, name).Scan(&a.ID, &a.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repoPG) CreateAllergy(ctx context.Context, a *Allergy) error {
	a.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `INSERT INTO allergies (id, name) VALUES ($1, $2)`, a.ID, a.Name)
	return err
}

func (r *repoPG) GetDiseaseByName(ctx context.Context, name string) (*ChronicDisease, error) {
	var d ChronicDisease
	err := r.pool.QueryRow(ctx, `SELECT id, name, icd10_code FROM chronic_diseases WHERE name = $1`, name).
		Scan(&d.ID, &d.Name, &d.ICD10Code)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *repoPG) CreateDisease(ctx context.Context, d *ChronicDisease) error {
	d.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `INSERT INTO chronic_diseases (id, name, icd10_code) VALUES ($1, $2, $3)`,
		d.ID, d.Name, d.ICD10Code)
	return err
}

func (r *repoPG) LinkAllergies(ctx context.Context, userID uuid.UUID, allergyIDs []uuid.UUID) error {
	for _, id := range allergyIDs {
		_, err := r.pool.Exec(ctx, `
			INSERT INTO user_allergies (user_id, allergy_id) VALUES ($1, $2)
			ON CONFLICT DO NOTHING`, userID, id)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *repoPG) LinkDiseases(ctx context.Context, userID uuid.UUID, diseaseIDs []uuid.UUID) error {
	for _, id := range diseaseIDs {
		_, err := r.pool.Exec(ctx, `
			INSERT INTO user_diseases (user_id, disease_id) VALUES ($1, $2)
			ON CONFLICT DO NOTHING`, userID, id)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *repoPG) AllergiesForUser(ctx context.Context, userID uuid.UUID) ([]*Allergy, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT a.id, a.name FROM allergies a
		JOIN user_allergies ua ON ua.allergy_id = a.id
		WHERE ua.user_id = $1 ORDER BY a.name`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAllergies(rows)
}

func (r *repoPG) DiseasesForUser(ctx context.Context, userID uuid.UUID) ([]*ChronicDisease, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT d.id, d.name, d.icd10_code FROM chronic_diseases d
		JOIN user_diseases ud ON ud.disease_id = d.id
		WHERE ud.user_id = $1 ORDER BY d.name`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectDiseases(rows)
}

func collectAllergies(rows pgx.Rows) ([]*Allergy, error) {
	var as []*Allergy
	for rows.Next() {
		var a Allergy
		if err := rows.Scan(&a.ID, &a.Name); err != nil {
			return nil, err
		}
		as = append(as, &a)
	}
	return as, rows.Err()
}

func collectDiseases(rows pgx.Rows) ([]*ChronicDisease, error) {
	var ds []*ChronicDisease
	for rows.Next() {
		var d ChronicDisease
		if err := rows.Scan(&d.ID, &d.Name, &d.ICD10Code); err != nil {
			return nil, err
		}
		ds = append(ds, &d)
	}
	return ds, rows.Err()
}
