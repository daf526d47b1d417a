package record

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

// Both variants live in one table; the kind column decides which group of
// columns is meaningful. Scanning rebuilds the tagged union.
const recCols = `id, owner_id, date, kind, course_id, attachment_ref,
	doctor_name, clinic_name, patient_complaints, conclusion_text, diagnosis_code, medication_name,
	lab_name, test_name, result, reference_range,
	created_at, updated_at`

func (r *repoPG) Create(ctx context.Context, rec *Record) error {
	rec.ID = uuid.New()
	enc, obs := splitDetails(rec)
	_, err := r.pool.Exec(ctx, `
		INSERT INTO records (
			id, owner_id, date, kind, course_id, attachment_ref,
			doctor_name, clinic_name, patient_complaints, conclusion_text, diagnosis_code, medication_name,
			lab_name, test_name, result, reference_range
		) VALUES (
			$1,$2,$3,$4,$5,$6,
			$7,$8,$9,$10,$11,$12,
			$13,$14,$15,$16
		)`,
		rec.ID, rec.OwnerID, rec.Date, rec.Kind, rec.CourseID, rec.AttachmentRef,
		enc.DoctorName, enc.ClinicName, enc.PatientComplaints, enc.ConclusionText, enc.DiagnosisCode, enc.MedicationName,
		obs.LabName, obs.TestName, obs.Result, obs.ReferenceRange,
	)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Record, error) {
	rec, err := scanRec(r.pool.QueryRow(ctx, `SELECT `+recCols+` FROM records WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return rec, err
}

func (r *repoPG) Update(ctx context.Context, rec *Record) error {
	enc, obs := splitDetails(rec)
	_, err := r.pool.Exec(ctx, `
		UPDATE records SET
			date=$2, course_id=$3, attachment_ref=$4,
			doctor_name=$5, clinic_name=$6, patient_complaints=$7, conclusion_text=$8, diagnosis_code=$9, medication_name=$10,
			lab_name=$11, test_name=$12, result=$13, reference_range=$14,
			updated_at=NOW()
		WHERE id = $1`,
		rec.ID, rec.Date, rec.CourseID, rec.AttachmentRef,
		enc.DoctorName, enc.ClinicName, enc.PatientComplaints, enc.ConclusionText, enc.DiagnosisCode, enc.MedicationName,
		obs.LabName, obs.TestName, obs.Result, obs.ReferenceRange,
	)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM records WHERE id = $1`, id)
	return err
}

func (r *repoPG) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*Record, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM records WHERE owner_id = $1`, ownerID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+recCols+` FROM records WHERE owner_id = $1 ORDER BY date DESC, id DESC LIMIT $2 OFFSET $3`,
		ownerID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	recs, err := collectRecs(rows)
	return recs, total, err
}

func (r *repoPG) ListAllByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Record, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+recCols+` FROM records WHERE owner_id = $1 ORDER BY date DESC, id DESC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRecs(rows)
}

func (r *repoPG) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*Record, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+recCols+` FROM records WHERE course_id = $1 ORDER BY date DESC, id DESC`, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRecs(rows)
}

// splitDetails flattens the variant structs into two full column sets for
// storage. Only the active variant carries values; the other side is all
// NULLs.
func splitDetails(rec *Record) (EncounterDetails, ObservationDetails) {
	var enc EncounterDetails
	var obs ObservationDetails
	if rec.Encounter != nil {
		enc = *rec.Encounter
	}
	if rec.Observation != nil {
		obs = *rec.Observation
	}
	return enc, obs
}

func scanRec(row pgx.Row) (*Record, error) {
	var rec Record
	var enc EncounterDetails
	var obs ObservationDetails
	err := row.Scan(
		&rec.ID, &rec.OwnerID, &rec.Date, &rec.Kind, &rec.CourseID, &rec.AttachmentRef,
		&enc.DoctorName, &enc.ClinicName, &enc.PatientComplaints, &enc.ConclusionText, &enc.DiagnosisCode, &enc.MedicationName,
		&obs.LabName, &obs.TestName, &obs.Result, &obs.ReferenceRange,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	switch rec.Kind {
	case KindEncounter:
		rec.Encounter = &enc
	case KindObservation:
		rec.Observation = &obs
	}
	return &rec, nil
}

func collectRecs(rows pgx.Rows) ([]*Record, error) {
	var recs []*Record
	for rows.Next() {
		rec, err := scanRec(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}
