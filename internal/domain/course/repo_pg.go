package course

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

const tcCols = `id, owner_id, name, start_date, status, created_at, updated_at`

func (r *repoPG) Create(ctx context.Context, tc *TreatmentCourse) error {
	tc.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO treatment_courses (id, owner_id, name, start_date, status)
		VALUES ($1,$2,$3,$4,$5)`,
		tc.ID, tc.OwnerID, tc.Name, tc.StartDate, tc.Status,
	)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*TreatmentCourse, error) {
	tc, err := scanCourse(r.pool.QueryRow(ctx, `SELECT `+tcCols+` FROM treatment_courses WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return tc, err
}

func (r *repoPG) Update(ctx context.Context, tc *TreatmentCourse) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE treatment_courses SET name=$2, start_date=$3, status=$4, updated_at=NOW()
		WHERE id = $1`,
		tc.ID, tc.Name, tc.StartDate, tc.Status,
	)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	// Linked records and complaints keep existing with course_id cleared.
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `UPDATE records SET course_id = NULL WHERE course_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `UPDATE complaints SET course_id = NULL WHERE course_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM treatment_courses WHERE id = $1`, id); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *repoPG) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*TreatmentCourse, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM treatment_courses WHERE owner_id = $1`, ownerID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+tcCols+` FROM treatment_courses WHERE owner_id = $1 ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`,
		ownerID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var tcs []*TreatmentCourse
	for rows.Next() {
		tc, err := scanCourse(rows)
		if err != nil {
			return nil, 0, err
		}
		tcs = append(tcs, tc)
	}
	return tcs, total, rows.Err()
}

func scanCourse(row pgx.Row) (*TreatmentCourse, error) {
	var tc TreatmentCourse
	err := row.Scan(&tc.ID, &tc.OwnerID, &tc.Name, &tc.StartDate, &tc.Status, &tc.CreatedAt, &tc.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &tc, nil
}
